package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jiorblanc/estoque/config"
	"github.com/jiorblanc/estoque/models"
)

// MovementController serves movement history and manual entries.
type MovementController struct {
	store *models.Store
	log   *logrus.Logger
}

// NewMovementController creates a new MovementController.
func NewMovementController(store *models.Store, log *logrus.Logger) *MovementController {
	return &MovementController{store: store, log: log}
}

// ListMovements returns the movement history, newest first.
// GET /api/movements?sku=...&reason=...&days=30
func (mc *MovementController) ListMovements(c *gin.Context) {
	filter := models.MovementFilter{
		Sku:    c.Query("sku"),
		Reason: c.Query("reason"),
	}
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days"})
			return
		}
		filter.Days = days
	}

	rows, err := mc.store.Movements(c.Request.Context(), filter)
	if err != nil {
		config.LogError(mc.log, "handlers", "ListMovements", "query", filter, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movements"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateMovementRequest is a manual stock movement. Qty is always
// given as a positive count except for "ajuste", where the operator
// supplies the signed delta directly.
type CreateMovementRequest struct {
	Sku    string `json:"sku" binding:"required"`
	Qty    int    `json:"qty" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// CreateMovement records a manual movement. Entries add stock, sales
// subtract it.
// POST /api/movements
func (mc *MovementController) CreateMovement(c *gin.Context) {
	var req CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	qty := req.Qty
	switch req.Reason {
	case models.ReasonEntrada:
		if qty < 0 {
			qty = -qty
		}
	case models.ReasonVenda, models.ReasonVendaPdf:
		if qty > 0 {
			qty = -qty
		}
	case models.ReasonAjuste:
		// signed as given
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown reason", "reason": req.Reason})
		return
	}

	err := mc.store.RecordMovement(c.Request.Context(), req.Sku, qty, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSkuNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
		case errors.Is(err, models.ErrZeroQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity cannot be zero"})
		default:
			config.LogError(mc.log, "handlers", "CreateMovement", "record", req, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record movement"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sku": req.Sku, "qty": qty, "reason": req.Reason})
}

// GetSales summarizes units sold per variant over a period.
// GET /api/movements/sales?days=30
func (mc *MovementController) GetSales(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days"})
			return
		}
		days = parsed
	}

	rows, err := mc.store.Sales(c.Request.Context(), days)
	if err != nil {
		config.LogError(mc.log, "handlers", "GetSales", "query", days, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "rows": rows})
}
