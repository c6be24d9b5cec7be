package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/jiorblanc/estoque/config"
	"github.com/jiorblanc/estoque/models"
)

type fakeExportSource struct {
	stockRows    []models.StockRow
	movementRows []models.MovementRow
	variants     []models.Variant
	lastFilter   models.StockFilter
}

func (f *fakeExportSource) Stock(_ context.Context, filter models.StockFilter) ([]models.StockRow, error) {
	f.lastFilter = filter
	return f.stockRows, nil
}

func (f *fakeExportSource) Movements(_ context.Context, _ models.MovementFilter) ([]models.MovementRow, error) {
	return f.movementRows, nil
}

func (f *fakeExportSource) Variants(_ context.Context) ([]models.Variant, error) {
	return f.variants, nil
}

func exportStockRows() []models.StockRow {
	return []models.StockRow{
		{
			Sku:           "VES-TOP-AZUL-P",
			Categoria:     "VES-TOP",
			Subtipo:       "TOP",
			Cor:           "Azul",
			Tamanho:       "P",
			Estoque:       8,
			CustoUnitario: decimal.NewFromFloat(12.50),
			ValorEstoque:  decimal.NewFromFloat(100.00),
		},
		{
			Sku:           "VES-MOLETOM-CINZA-M",
			Categoria:     "VES-MOLETOM",
			Subtipo:       "MOLETOM",
			Cor:           "Cinza",
			Tamanho:       "M",
			Estoque:       3,
			CustoUnitario: decimal.NewFromFloat(40),
			ValorEstoque:  decimal.NewFromFloat(120),
		},
	}
}

func newExportRouter(source ExportSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewExportController(source, config.GetLogger())
	r := gin.New()
	r.GET("/api/export/stock/csv", ctrl.ExportStockCSV)
	r.GET("/api/export/stock/xlsx", ctrl.ExportStockXLSX)
	r.GET("/api/export/movements/csv", ctrl.ExportMovementsCSV)
	r.GET("/api/export/variants/csv", ctrl.ExportVariantsCSV)
	return r
}

func getExport(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExportStockCSV(t *testing.T) {
	source := &fakeExportSource{stockRows: exportStockRows()}
	r := newExportRouter(source)

	w := getExport(r, "/api/export/stock/csv?filter=VES")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "estoque.csv")
	assert.Equal(t, "VES", source.lastFilter.FilterText)

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, strings.Join(stockExportHeaders, ","), lines[0])
	assert.Equal(t, "VES-TOP-AZUL-P,VES-TOP,TOP,Azul,P,8,12.50,100.00", lines[1])
	assert.Equal(t, "VES-MOLETOM-CINZA-M,VES-MOLETOM,MOLETOM,Cinza,M,3,40.00,120.00", lines[2])
}

func TestExportMovementsCSV(t *testing.T) {
	ts := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	source := &fakeExportSource{movementRows: []models.MovementRow{
		{Sku: "VES-TOP-AZUL-P", Categoria: "VES-TOP", Subtipo: "TOP", Cor: "Azul", Tamanho: "P", Qty: -2, Reason: "venda_pdf", Ts: ts},
	}}
	r := newExportRouter(source)

	w := getExport(r, "/api/export/movements/csv")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "movimentacoes.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "VES-TOP-AZUL-P,VES-TOP,TOP,Azul,P,-2,venda_pdf,2026-08-30T14:00:00Z", lines[1])
}

func TestExportVariantsCSV(t *testing.T) {
	cost := decimal.NewFromFloat(25.90)
	source := &fakeExportSource{variants: []models.Variant{
		{Sku: "VES-TOP-AZUL-P", Color: "Azul", Size: "P", CustoUnitario: &cost},
		{Sku: "VES-TOP-AZUL-M", Color: "Azul", Size: "M"},
	}}
	r := newExportRouter(source)

	w := getExport(r, "/api/export/variants/csv")

	assert.Equal(t, http.StatusOK, w.Code)
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "VES-TOP-AZUL-P,Azul,P,25.90", lines[1])
	assert.Equal(t, "VES-TOP-AZUL-M,Azul,M,", lines[2])
}

func TestExportStockXLSX(t *testing.T) {
	source := &fakeExportSource{stockRows: exportStockRows()}
	r := newExportRouter(source)

	w := getExport(r, "/api/export/stock/xlsx")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "estoque.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	assert.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Sheet1", "A1")
	assert.NoError(t, err)
	assert.Equal(t, "sku", header)

	sku, err := f.GetCellValue("Sheet1", "A2")
	assert.NoError(t, err)
	assert.Equal(t, "VES-TOP-AZUL-P", sku)

	qty, err := f.GetCellValue("Sheet1", "F3")
	assert.NoError(t, err)
	assert.Equal(t, "3", qty)
}
