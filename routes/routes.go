package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jiorblanc/estoque/handlers"
)

// RegisterRoutes registers all API routes.
func RegisterRoutes(r *gin.Engine,
	documents *handlers.DocumentController,
	catalog *handlers.CatalogController,
	stock *handlers.StockController,
	movements *handlers.MovementController,
	mappings *handlers.MappingController,
	export *handlers.ExportController,
) {
	api := r.Group("/api")

	docs := api.Group("/documents")
	{
		docs.POST("/parse", documents.ParseDocument)
		docs.POST("/parse-lines", documents.ParseDocumentLines)
		docs.POST("/commit", documents.CommitDocument)
	}

	products := api.Group("/products")
	{
		products.GET("", catalog.ListProducts)
		products.PUT("/cost", catalog.UpdateProductCost)
		products.PUT("/sku-base", catalog.UpdateSkuBase)
	}

	variants := api.Group("/variants")
	{
		variants.GET("", catalog.ListVariants)
		variants.POST("", catalog.CreateVariant)
		variants.GET("/:sku", catalog.GetVariant)
		variants.PUT("/:sku", catalog.UpdateVariant)
		variants.DELETE("/:sku", catalog.DeleteVariant)
	}

	stockGroup := api.Group("/stock")
	{
		stockGroup.GET("", stock.GetStock)
		stockGroup.GET("/value", stock.GetStockValue)
		stockGroup.POST("/count", stock.AdjustToCount)
	}

	movementGroup := api.Group("/movements")
	{
		movementGroup.GET("", movements.ListMovements)
		movementGroup.POST("", movements.CreateMovement)
		movementGroup.GET("/sales", movements.GetSales)
	}

	mappingGroup := api.Group("/mappings")
	{
		mappingGroup.GET("", mappings.ListMappings)
		mappingGroup.PUT("", mappings.UpsertMapping)
		mappingGroup.DELETE("/:sku_pdf", mappings.DeleteMapping)
	}

	exportGroup := api.Group("/export")
	{
		exportGroup.GET("/stock/csv", export.ExportStockCSV)
		exportGroup.GET("/stock/xlsx", export.ExportStockXLSX)
		exportGroup.GET("/movements/csv", export.ExportMovementsCSV)
		exportGroup.GET("/variants/csv", export.ExportVariantsCSV)
	}
}
