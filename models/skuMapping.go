package models

import (
	"context"
	"errors"

	"gorm.io/gorm/clause"
)

// SkuMapping is a persisted override from an as-extracted document SKU to
// a catalog SKU. At most one active mapping exists per SkuPdf; writes are
// last-wins.
type SkuMapping struct {
	ID         int    `gorm:"primary_key" json:"id"`
	SkuPdf     string `gorm:"size:150;not null;uniqueIndex" json:"sku_pdf"`
	SkuEstoque string `gorm:"size:100;not null;index" json:"sku_estoque"`
}

// UpsertMapping persists a skuPdf -> skuEstoque override, replacing any
// earlier target for the same skuPdf.
func (s *Store) UpsertMapping(ctx context.Context, skuPdf, skuEstoque string) error {
	mapping := SkuMapping{SkuPdf: skuPdf, SkuEstoque: skuEstoque}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sku_pdf"}},
		DoUpdates: clause.AssignmentColumns([]string{"sku_estoque"}),
	}).Create(&mapping).Error
}

// Mappings lists all persisted overrides ordered by document SKU.
func (s *Store) Mappings(ctx context.Context) ([]SkuMapping, error) {
	var mappings []SkuMapping
	err := s.db.WithContext(ctx).Order("sku_pdf").Find(&mappings).Error
	return mappings, err
}

// DeleteMapping removes one override by document SKU.
func (s *Store) DeleteMapping(ctx context.Context, skuPdf string) error {
	result := s.db.WithContext(ctx).Where("sku_pdf = ?", skuPdf).Delete(&SkuMapping{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMappingNotFound
	}
	return nil
}

var ErrMappingNotFound = errors.New("mapping not found")
