package handlers

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/jiorblanc/estoque/config"
	"github.com/jiorblanc/estoque/models"
)

// StockSource provides the rows the stock exports read from.
type StockSource interface {
	Stock(ctx context.Context, filter models.StockFilter) ([]models.StockRow, error)
}

// ExportSource provides everything the export endpoints read from.
type ExportSource interface {
	StockSource
	Movements(ctx context.Context, filter models.MovementFilter) ([]models.MovementRow, error)
	Variants(ctx context.Context) ([]models.Variant, error)
}

// ExportController writes stock, movement and variant listings as CSV or
// XLSX downloads.
type ExportController struct {
	source ExportSource
	log    *logrus.Logger
}

// NewExportController creates a new ExportController.
func NewExportController(source ExportSource, log *logrus.Logger) *ExportController {
	return &ExportController{source: source, log: log}
}

var stockExportHeaders = []string{
	"sku", "categoria", "subtipo", "cor", "tamanho",
	"estoque", "custo_unitario", "valor_estoque",
}

func (ec *ExportController) fetchStock(c *gin.Context) ([]models.StockRow, bool) {
	filter := models.StockFilter{FilterText: c.Query("filter")}
	rows, err := ec.source.Stock(c.Request.Context(), filter)
	if err != nil {
		config.LogError(ec.log, "handlers", "fetchStock", "export query", filter, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock"})
		return nil, false
	}
	return rows, true
}

func writeCSV(c *gin.Context, log *logrus.Logger, filename string, headers []string, records [][]string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(headers); err != nil {
		config.LogError(log, "handlers", "writeCSV", "write header", filename, err)
		return
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			config.LogError(log, "handlers", "writeCSV", "write row", filename, err)
			return
		}
	}
	writer.Flush()
}

// ExportStockCSV streams the stock position as a CSV attachment.
// GET /api/export/stock/csv?filter=...
func (ec *ExportController) ExportStockCSV(c *gin.Context) {
	rows, ok := ec.fetchStock(c)
	if !ok {
		return
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Sku, row.Categoria, row.Subtipo, row.Cor, row.Tamanho,
			fmt.Sprint(row.Estoque),
			row.CustoUnitario.StringFixed(2),
			row.ValorEstoque.StringFixed(2),
		})
	}
	writeCSV(c, ec.log, "estoque.csv", stockExportHeaders, records)
}

// ExportMovementsCSV streams the movement history as a CSV attachment.
// GET /api/export/movements/csv?sku=...&reason=...&days=30
func (ec *ExportController) ExportMovementsCSV(c *gin.Context) {
	filter := models.MovementFilter{Sku: c.Query("sku"), Reason: c.Query("reason")}
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days"})
			return
		}
		filter.Days = days
	}
	rows, err := ec.source.Movements(c.Request.Context(), filter)
	if err != nil {
		config.LogError(ec.log, "handlers", "ExportMovementsCSV", "export query", filter, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movements"})
		return
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Sku, row.Categoria, row.Subtipo, row.Cor, row.Tamanho,
			fmt.Sprint(row.Qty), row.Reason, row.Ts.Format(time.RFC3339),
		})
	}
	headers := []string{"sku", "categoria", "subtipo", "cor", "tamanho", "qty", "reason", "ts"}
	writeCSV(c, ec.log, "movimentacoes.csv", headers, records)
}

// ExportVariantsCSV streams the variant catalog as a CSV attachment.
// GET /api/export/variants/csv
func (ec *ExportController) ExportVariantsCSV(c *gin.Context) {
	variants, err := ec.source.Variants(c.Request.Context())
	if err != nil {
		config.LogError(ec.log, "handlers", "ExportVariantsCSV", "export query", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch variants"})
		return
	}

	records := make([][]string, 0, len(variants))
	for _, v := range variants {
		cost := ""
		if v.CustoUnitario != nil {
			cost = v.CustoUnitario.StringFixed(2)
		}
		records = append(records, []string{
			v.Sku, v.Color, v.Size, cost,
		})
	}
	headers := []string{"sku", "cor", "tamanho", "custo_unitario"}
	writeCSV(c, ec.log, "variantes.csv", headers, records)
}

// ExportStockXLSX streams the stock position as an XLSX attachment.
// GET /api/export/stock/xlsx?filter=...
func (ec *ExportController) ExportStockXLSX(c *gin.Context) {
	rows, ok := ec.fetchStock(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	col := 'A'
	for _, h := range stockExportHeaders {
		f.SetCellValue(sheet, string(col)+"1", h)
		col++
	}

	for i, row := range rows {
		rowNo := fmt.Sprint(i + 2)
		f.SetCellValue(sheet, "A"+rowNo, row.Sku)
		f.SetCellValue(sheet, "B"+rowNo, row.Categoria)
		f.SetCellValue(sheet, "C"+rowNo, row.Subtipo)
		f.SetCellValue(sheet, "D"+rowNo, row.Cor)
		f.SetCellValue(sheet, "E"+rowNo, row.Tamanho)
		f.SetCellValue(sheet, "F"+rowNo, row.Estoque)
		f.SetCellValue(sheet, "G"+rowNo, row.CustoUnitario.InexactFloat64())
		f.SetCellValue(sheet, "H"+rowNo, row.ValorEstoque.InexactFloat64())
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=estoque.xlsx")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		config.LogError(ec.log, "handlers", "ExportStockXLSX", "write file", nil, err)
	}
}
