package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jiorblanc/estoque/config"
	"github.com/jiorblanc/estoque/models"
)

// MappingController maintains the document SKU to catalog SKU table.
type MappingController struct {
	store *models.Store
	log   *logrus.Logger
}

// NewMappingController creates a new MappingController.
func NewMappingController(store *models.Store, log *logrus.Logger) *MappingController {
	return &MappingController{store: store, log: log}
}

// ListMappings returns all saved SKU mappings.
// GET /api/mappings
func (mc *MappingController) ListMappings(c *gin.Context) {
	mappings, err := mc.store.Mappings(c.Request.Context())
	if err != nil {
		config.LogError(mc.log, "handlers", "ListMappings", "query", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list mappings"})
		return
	}
	c.JSON(http.StatusOK, mappings)
}

// UpsertMappingRequest binds a document SKU to a catalog SKU.
type UpsertMappingRequest struct {
	SkuPdf     string `json:"sku_pdf" binding:"required"`
	SkuEstoque string `json:"sku_estoque" binding:"required"`
}

// UpsertMapping creates or replaces a mapping for a document SKU.
// PUT /api/mappings
func (mc *MappingController) UpsertMapping(c *gin.Context) {
	var req UpsertMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := mc.store.UpsertMapping(c.Request.Context(), req.SkuPdf, req.SkuEstoque); err != nil {
		config.LogError(mc.log, "handlers", "UpsertMapping", "upsert", req, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save mapping"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mapping saved"})
}

// DeleteMapping removes a mapping by its document SKU.
// DELETE /api/mappings/:sku_pdf
func (mc *MappingController) DeleteMapping(c *gin.Context) {
	skuPdf := c.Param("sku_pdf")
	if err := mc.store.DeleteMapping(c.Request.Context(), skuPdf); err != nil {
		if errors.Is(err, models.ErrMappingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mapping not found"})
			return
		}
		config.LogError(mc.log, "handlers", "DeleteMapping", "delete", skuPdf, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete mapping"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mapping deleted"})
}
