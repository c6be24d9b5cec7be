package models

import (
	"context"

	"gorm.io/gorm"

	"github.com/jiorblanc/estoque"
)

// Store is the persistence facade over the catalog database. It
// implements estoque.MovementStore and supplies the per-run snapshots
// the reconciliation pipeline consumes.
type Store struct {
	db *gorm.DB
}

// NewStore wraps a gorm connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// statically ensure Store satisfies the commit contract
var _ estoque.MovementStore = (*Store)(nil)

// CatalogVariants returns every variant with its derived stock balance,
// shaped for a reconciliation snapshot.
func (s *Store) CatalogVariants(ctx context.Context) ([]estoque.CatalogVariant, error) {
	var variants []estoque.CatalogVariant
	err := s.db.WithContext(ctx).Table("variants v").
		Select("v.sku AS sku, COALESCE(SUM(m.qty), 0) AS current_stock").
		Joins("LEFT JOIN movements m ON m.variant_id = v.id").
		Group("v.id, v.sku").
		Scan(&variants).Error
	return variants, err
}

// MappingEntries returns all persisted SKU overrides, shaped for a
// reconciliation snapshot.
func (s *Store) MappingEntries(ctx context.Context) ([]estoque.MappingEntry, error) {
	mappings, err := s.Mappings(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]estoque.MappingEntry, 0, len(mappings))
	for _, m := range mappings {
		entries = append(entries, estoque.MappingEntry{SkuPdf: m.SkuPdf, SkuEstoque: m.SkuEstoque})
	}
	return entries, nil
}
