package models

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockRow is one line of the stock listing: a variant joined with its
// product, the derived balance and its valuation. Cost resolution is
// variant cost first, then the product default.
type StockRow struct {
	Sku           string          `json:"sku"`
	Categoria     string          `json:"categoria"`
	Subtipo       string          `json:"subtipo"`
	Cor           string          `json:"cor"`
	Tamanho       string          `json:"tamanho"`
	Estoque       int             `json:"estoque"`
	CustoUnitario decimal.Decimal `json:"custo_unitario"`
	ValorEstoque  decimal.Decimal `json:"valor_estoque"`
}

// StockFilter narrows the stock listing. FilterText matches SKU, category,
// subtype, color or size; CriticalOnly keeps rows at or below
// CriticalValue.
type StockFilter struct {
	FilterText    string
	CriticalOnly  bool
	CriticalValue int
}

func (s *Store) stockQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table("variants v").
		Select(`v.sku, p.category AS categoria, p.subtype AS subtipo,
			v.color AS cor, v.size AS tamanho,
			COALESCE(SUM(m.qty), 0) AS estoque,
			COALESCE(v.custo_unitario, p.custo_unitario, 0) AS custo_unitario,
			(COALESCE(SUM(m.qty), 0) * COALESCE(v.custo_unitario, p.custo_unitario, 0)) AS valor_estoque`).
		Joins("JOIN products p ON p.id = v.product_id").
		Joins("LEFT JOIN movements m ON m.variant_id = v.id").
		Group("v.id, v.sku, p.category, p.subtype, v.color, v.size, p.custo_unitario, v.custo_unitario")
}

// Stock lists the current balance and valuation of every variant.
func (s *Store) Stock(ctx context.Context, filter StockFilter) ([]StockRow, error) {
	query := s.stockQuery(ctx)

	if filter.FilterText != "" {
		like := "%" + filter.FilterText + "%"
		query = query.Where(
			"v.sku LIKE ? OR p.category LIKE ? OR p.subtype LIKE ? OR v.color LIKE ? OR v.size LIKE ?",
			like, like, like, like, like)
	}
	if filter.CriticalOnly && filter.CriticalValue > 0 {
		query = query.Having("COALESCE(SUM(m.qty), 0) <= ?", filter.CriticalValue)
	}

	var rows []StockRow
	err := query.Order("p.category, p.subtype, v.color, v.size").Scan(&rows).Error
	return rows, err
}

// StockValueTotal sums the valuation of the whole catalog.
type StockValueTotal struct {
	TotalUnits int             `json:"total_units"`
	TotalValue decimal.Decimal `json:"total_value"`
	Variants   int             `json:"variants"`
}

// StockValue returns the per-variant valuation rows plus the totals.
func (s *Store) StockValue(ctx context.Context, filterText string) ([]StockRow, StockValueTotal, error) {
	rows, err := s.Stock(ctx, StockFilter{FilterText: filterText})
	if err != nil {
		return nil, StockValueTotal{}, err
	}

	total := StockValueTotal{Variants: len(rows)}
	for _, row := range rows {
		total.TotalUnits += row.Estoque
		total.TotalValue = total.TotalValue.Add(row.ValorEstoque)
	}
	return rows, total, nil
}

// SalesRow aggregates sold units per product/color/size over the sale
// movement reasons.
type SalesRow struct {
	Categoria         string          `json:"categoria"`
	Subtipo           string          `json:"subtipo"`
	Cor               string          `json:"cor"`
	Tamanho           string          `json:"tamanho"`
	QuantidadeVendida int             `json:"quantidade_vendida"`
	NumeroVendas      int             `json:"numero_vendas"`
	CustoUnitario     decimal.Decimal `json:"custo_unitario"`
	ValorTotalVendido decimal.Decimal `json:"valor_total_vendido"`
}

// Sales summarizes sale movements ("venda" and "venda_pdf"), optionally
// limited to the last N days, most-sold first.
func (s *Store) Sales(ctx context.Context, days int) ([]SalesRow, error) {
	query := s.db.WithContext(ctx).Table("movements m").
		Select(`p.category AS categoria, p.subtype AS subtipo, v.color AS cor, v.size AS tamanho,
			ABS(SUM(m.qty)) AS quantidade_vendida,
			COUNT(*) AS numero_vendas,
			COALESCE(v.custo_unitario, p.custo_unitario, 0) AS custo_unitario,
			(ABS(SUM(m.qty)) * COALESCE(v.custo_unitario, p.custo_unitario, 0)) AS valor_total_vendido`).
		Joins("JOIN variants v ON v.id = m.variant_id").
		Joins("JOIN products p ON p.id = v.product_id").
		Where("m.reason IN ?", []string{ReasonVenda, ReasonVendaPdf})

	if days > 0 {
		query = query.Where("m.ts >= NOW() - INTERVAL ? DAY", days)
	}

	var rows []SalesRow
	err := query.
		Group("p.category, p.subtype, v.color, v.size, p.custo_unitario, v.custo_unitario").
		Order("quantidade_vendida DESC").
		Scan(&rows).Error
	return rows, err
}
