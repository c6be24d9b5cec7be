package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product groups variants of the same garment: a category ("vestido") and
// subtype ("moletom") pair, unique together. SkuBase is the prefix used
// when generating variant SKUs; CustoUnitario is the default unit cost a
// variant inherits when it has none of its own.
type Product struct {
	ID            int             `gorm:"primary_key" json:"id"`
	Category      string          `gorm:"size:100;not null;uniqueIndex:idx_products_category_subtype" json:"category" binding:"required"`
	Subtype       string          `gorm:"size:100;not null;uniqueIndex:idx_products_category_subtype" json:"subtype" binding:"required"`
	SkuBase       string          `gorm:"size:100" json:"sku_base"`
	CustoUnitario decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"custo_unitario"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// getOrCreateProduct finds the product for a (category, subtype) pair or
// creates it, updating sku_base and cost when given. Runs inside the
// caller's transaction.
func getOrCreateProduct(tx *gorm.DB, category, subtype, skuBase string, custoUnitario decimal.Decimal) (*Product, error) {
	var product Product
	err := tx.Where("category = ? AND subtype = ?", category, subtype).First(&product).Error
	if err == nil {
		updates := map[string]any{}
		if skuBase != "" {
			updates["sku_base"] = skuBase
		}
		if !custoUnitario.IsZero() {
			updates["custo_unitario"] = custoUnitario
		}
		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return nil, err
			}
		}
		return &product, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	product = Product{
		Category:      category,
		Subtype:       subtype,
		SkuBase:       skuBase,
		CustoUnitario: custoUnitario,
	}
	if err := tx.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Products lists all products ordered by category and subtype.
func (s *Store) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	err := s.db.WithContext(ctx).Order("category, subtype").Find(&products).Error
	return products, err
}

// UpdateProductCost sets the default unit cost of one product. Variants
// without their own cost pick it up immediately through the COALESCE in
// the stock queries.
func (s *Store) UpdateProductCost(ctx context.Context, category, subtype string, custo decimal.Decimal) error {
	result := s.db.WithContext(ctx).Model(&Product{}).
		Where("category = ? AND subtype = ?", category, subtype).
		Update("custo_unitario", custo)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
