package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/jiorblanc/estoque/config"
	"github.com/jiorblanc/estoque/models"
)

// CatalogController handles product and variant maintenance.
type CatalogController struct {
	store *models.Store
	log   *logrus.Logger
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(store *models.Store, log *logrus.Logger) *CatalogController {
	return &CatalogController{store: store, log: log}
}

// ListProducts returns all products.
// GET /api/products
func (cc *CatalogController) ListProducts(c *gin.Context) {
	products, err := cc.store.Products(c.Request.Context())
	if err != nil {
		config.LogError(cc.log, "handlers", "ListProducts", "query", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// UpdateProductCostRequest sets a product's default unit cost.
type UpdateProductCostRequest struct {
	Category      string          `json:"category" binding:"required"`
	Subtype       string          `json:"subtype" binding:"required"`
	CustoUnitario decimal.Decimal `json:"custo_unitario"`
}

// UpdateProductCost updates the default cost of one product.
// PUT /api/products/cost
func (cc *CatalogController) UpdateProductCost(c *gin.Context) {
	var req UpdateProductCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	err := cc.store.UpdateProductCost(c.Request.Context(), req.Category, req.Subtype, req.CustoUnitario)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		config.LogError(cc.log, "handlers", "UpdateProductCost", "update", req, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cost"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cost updated"})
}

// UpdateSkuBaseRequest renames a product's SKU base.
type UpdateSkuBaseRequest struct {
	Category string `json:"category" binding:"required"`
	Subtype  string `json:"subtype" binding:"required"`
	SkuBase  string `json:"sku_base" binding:"required"`
}

// UpdateSkuBase sets a product's SKU base and regenerates every variant
// SKU under it.
// PUT /api/products/sku-base
func (cc *CatalogController) UpdateSkuBase(c *gin.Context) {
	var req UpdateSkuBaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	regenerated, err := cc.store.UpdateSkuBaseBulk(c.Request.Context(), req.Category, req.Subtype, req.SkuBase)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		config.LogError(cc.log, "handlers", "UpdateSkuBase", "update", req, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update SKU base"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "SKU base updated", "regenerated_variants": regenerated})
}

// ListVariants returns all variants.
// GET /api/variants
func (cc *CatalogController) ListVariants(c *gin.Context) {
	variants, err := cc.store.Variants(c.Request.Context())
	if err != nil {
		config.LogError(cc.log, "handlers", "ListVariants", "query", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list variants"})
		return
	}
	c.JSON(http.StatusOK, variants)
}

// GetVariant returns one variant by SKU.
// GET /api/variants/:sku
func (cc *CatalogController) GetVariant(c *gin.Context) {
	sku := c.Param("sku")
	variant, err := cc.store.VariantBySku(c.Request.Context(), sku)
	if err != nil {
		if errors.Is(err, models.ErrSkuNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
			return
		}
		config.LogError(cc.log, "handlers", "GetVariant", "query", sku, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch variant"})
		return
	}
	c.JSON(http.StatusOK, variant)
}

// CreateVariant creates a variant, creating its product when needed.
// POST /api/variants
func (cc *CatalogController) CreateVariant(c *gin.Context) {
	var req models.NewVariant
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	variant, err := cc.store.CreateVariant(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateSku) {
			c.JSON(http.StatusConflict, gin.H{"error": "SKU already exists"})
			return
		}
		config.LogError(cc.log, "handlers", "CreateVariant", "create", req, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create variant"})
		return
	}
	c.JSON(http.StatusCreated, variant)
}

// UpdateVariant updates a variant identified by its current SKU.
// PUT /api/variants/:sku
func (cc *CatalogController) UpdateVariant(c *gin.Context) {
	sku := c.Param("sku")

	var req models.NewVariant
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	variant, err := cc.store.UpdateVariant(c.Request.Context(), sku, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSkuNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
		case errors.Is(err, models.ErrDuplicateSku):
			c.JSON(http.StatusConflict, gin.H{"error": "SKU already exists"})
		default:
			config.LogError(cc.log, "handlers", "UpdateVariant", "update", req, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update variant"})
		}
		return
	}
	c.JSON(http.StatusOK, variant)
}

// DeleteVariant removes a variant with its movement history and
// mappings.
// DELETE /api/variants/:sku
func (cc *CatalogController) DeleteVariant(c *gin.Context) {
	sku := c.Param("sku")
	if err := cc.store.DeleteVariant(c.Request.Context(), sku); err != nil {
		if errors.Is(err, models.ErrSkuNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
			return
		}
		config.LogError(cc.log, "handlers", "DeleteVariant", "delete", sku, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete variant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Variant deleted"})
}
