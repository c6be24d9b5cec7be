package models

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// Variant is one sellable item: a product in a specific color and size,
// identified by a unique SKU. CustoUnitario overrides the product's
// default cost when set.
type Variant struct {
	ID            int              `gorm:"primary_key" json:"id"`
	ProductId     int              `gorm:"index;not null" json:"product_id"`
	Color         string           `gorm:"size:100;not null" json:"color" binding:"required"`
	Size          string           `gorm:"size:20;not null" json:"size" binding:"required"`
	Sku           string           `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	CustoUnitario *decimal.Decimal `gorm:"type:decimal(20,4)" json:"custo_unitario"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

// NewVariant is the payload for creating a variant. Sku overrides the
// generated SKUBASE-Color-Size form when given.
type NewVariant struct {
	Category             string           `json:"category" binding:"required"`
	Subtype              string           `json:"subtype" binding:"required"`
	Color                string           `json:"color" binding:"required"`
	Size                 string           `json:"size" binding:"required"`
	SkuBase              string           `json:"sku_base"`
	Sku                  string           `json:"sku"`
	CustoUnitarioProduto decimal.Decimal  `json:"custo_unitario_produto"`
	CustoUnitario        *decimal.Decimal `json:"custo_unitario"`
}

var (
	colorCharRe = regexp.MustCompile(`[^a-zA-Z0-9ÁÀÂÃÉÈÊÍÌÎÓÒÔÕÚÙÛÇáàâãéèêíìîóòôõúùûç ]`)
	sizeCharRe  = regexp.MustCompile(`[^A-Za-z0-9]`)

	titleCaser = cases.Title(language.BrazilianPortuguese)
)

// GenerateSku builds the canonical SKUBASE-Color-Size SKU. Hyphens inside
// the base are kept; the color is title-cased with spaces removed and the
// size is upper-cased alphanumerics.
func GenerateSku(skuBase, color, size string) string {
	cleanColor := strings.TrimSpace(colorCharRe.ReplaceAllString(strings.TrimSpace(color), ""))
	cleanColor = strings.ReplaceAll(titleCaser.String(cleanColor), " ", "")
	cleanSize := sizeCharRe.ReplaceAllString(strings.ToUpper(strings.TrimSpace(size)), "")
	cleanBase := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(skuBase)), " ", "")
	return cleanBase + "-" + cleanColor + "-" + cleanSize
}

// CreateVariant creates a variant (and its product when needed) in one
// transaction and returns the stored variant.
func (s *Store) CreateVariant(ctx context.Context, input NewVariant) (*Variant, error) {
	sku := strings.TrimSpace(input.Sku)
	if sku == "" {
		base := input.SkuBase
		if base == "" {
			base = strings.ToUpper(strings.TrimSpace(input.Category[:min(3, len(input.Category))]))
		}
		sku = GenerateSku(base, input.Color, input.Size)
	}

	var variant Variant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := getOrCreateProduct(tx, input.Category, input.Subtype, input.SkuBase, input.CustoUnitarioProduto)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&Variant{}).Where("sku = ?", sku).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateSku
		}

		variant = Variant{
			ProductId:     product.ID,
			Color:         input.Color,
			Size:          input.Size,
			Sku:           sku,
			CustoUnitario: input.CustoUnitario,
		}
		return tx.Create(&variant).Error
	})
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// UpdateVariant renames and re-parents a variant. Movements and mappings
// follow via the variant id; a SKU rename invalidates no history.
func (s *Store) UpdateVariant(ctx context.Context, oldSku string, input NewVariant) (*Variant, error) {
	newSku := strings.TrimSpace(input.Sku)
	if newSku == "" {
		newSku = GenerateSku(input.SkuBase, input.Color, input.Size)
	}

	var variant Variant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sku = ?", oldSku).First(&variant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSkuNotFound
			}
			return err
		}

		if newSku != oldSku {
			var count int64
			if err := tx.Model(&Variant{}).Where("sku = ? AND id <> ?", newSku, variant.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateSku
			}
		}

		product, err := getOrCreateProduct(tx, input.Category, input.Subtype, input.SkuBase, input.CustoUnitarioProduto)
		if err != nil {
			return err
		}

		oldProductId := variant.ProductId
		variant.ProductId = product.ID
		variant.Color = input.Color
		variant.Size = input.Size
		variant.Sku = newSku
		variant.CustoUnitario = input.CustoUnitario
		if err := tx.Save(&variant).Error; err != nil {
			return err
		}
		if oldProductId != product.ID {
			return deleteProductIfEmpty(tx, oldProductId)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// DeleteVariant removes a variant with its movements and mappings. The
// parent product is removed too when no variants remain under it.
func (s *Store) DeleteVariant(ctx context.Context, sku string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var variant Variant
		if err := tx.Where("sku = ?", sku).First(&variant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSkuNotFound
			}
			return err
		}
		if err := tx.Where("variant_id = ?", variant.ID).Delete(&Movement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sku_estoque = ?", variant.Sku).Delete(&SkuMapping{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&variant).Error; err != nil {
			return err
		}
		return deleteProductIfEmpty(tx, variant.ProductId)
	})
}

func deleteProductIfEmpty(tx *gorm.DB, productId int) error {
	var count int64
	if err := tx.Model(&Variant{}).Where("product_id = ?", productId).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Where("id = ?", productId).Delete(&Product{}).Error
}

// UpdateSkuBaseBulk sets a product's SKU base and regenerates the SKU of
// every variant under it. Returns the number of regenerated variants.
func (s *Store) UpdateSkuBaseBulk(ctx context.Context, category, subtype, newSkuBase string) (int, error) {
	var regenerated int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product Product
		if err := tx.Where("category = ? AND subtype = ?", category, subtype).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		var variants []Variant
		if err := tx.Where("product_id = ?", product.ID).Find(&variants).Error; err != nil {
			return err
		}
		for _, v := range variants {
			newSku := GenerateSku(newSkuBase, v.Color, v.Size)
			if err := tx.Model(&Variant{}).Where("id = ?", v.ID).Update("sku", newSku).Error; err != nil {
				return err
			}
		}
		regenerated = len(variants)

		return tx.Model(&product).Update("sku_base", strings.TrimSpace(newSkuBase)).Error
	})
	return regenerated, err
}

// VariantBySku loads one variant.
func (s *Store) VariantBySku(ctx context.Context, sku string) (*Variant, error) {
	var variant Variant
	err := s.db.WithContext(ctx).Where("sku = ?", sku).First(&variant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSkuNotFound
	}
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// Variants lists all variants ordered by SKU.
func (s *Store) Variants(ctx context.Context) ([]Variant, error) {
	var variants []Variant
	err := s.db.WithContext(ctx).Order("sku").Find(&variants).Error
	return variants, err
}
