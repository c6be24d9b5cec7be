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

// default threshold for the critical stock filter
const defaultCriticalValue = 3

// StockController serves stock position and inventory-count endpoints.
type StockController struct {
	store *models.Store
	log   *logrus.Logger
}

// NewStockController creates a new StockController.
func NewStockController(store *models.Store, log *logrus.Logger) *StockController {
	return &StockController{store: store, log: log}
}

// GetStock returns the stock position per variant.
// GET /api/stock?filter=...&critical=true&critical_value=3
func (sc *StockController) GetStock(c *gin.Context) {
	filter := models.StockFilter{
		FilterText:    c.Query("filter"),
		CriticalValue: defaultCriticalValue,
	}
	if c.Query("critical") == "true" {
		filter.CriticalOnly = true
	}
	if raw := c.Query("critical_value"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid critical_value"})
			return
		}
		filter.CriticalValue = value
	}

	rows, err := sc.store.Stock(c.Request.Context(), filter)
	if err != nil {
		config.LogError(sc.log, "handlers", "GetStock", "query", filter, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// StockValueResponse is the stock valuation with its totals.
type StockValueResponse struct {
	Rows   []models.StockRow      `json:"rows"`
	Totals models.StockValueTotal `json:"totals"`
}

// GetStockValue returns the valued stock position and its totals.
// GET /api/stock/value?filter=...
func (sc *StockController) GetStockValue(c *gin.Context) {
	rows, totals, err := sc.store.StockValue(c.Request.Context(), c.Query("filter"))
	if err != nil {
		config.LogError(sc.log, "handlers", "GetStockValue", "query", c.Query("filter"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock value"})
		return
	}
	c.JSON(http.StatusOK, StockValueResponse{Rows: rows, Totals: totals})
}

// AdjustToCountRequest fixes a variant's stock to a counted total.
type AdjustToCountRequest struct {
	Sku     string `json:"sku" binding:"required"`
	Counted *int   `json:"counted" binding:"required"`
}

// AdjustToCount records an adjustment movement so the variant's stock
// equals the counted quantity.
// POST /api/stock/count
func (sc *StockController) AdjustToCount(c *gin.Context) {
	var req AdjustToCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if *req.Counted < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Counted quantity cannot be negative"})
		return
	}

	delta, err := sc.store.AdjustToCount(c.Request.Context(), req.Sku, *req.Counted)
	if err != nil {
		if errors.Is(err, models.ErrSkuNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
			return
		}
		config.LogError(sc.log, "handlers", "AdjustToCount", "adjust", req, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust stock"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sku": req.Sku, "counted": *req.Counted, "delta": delta})
}
