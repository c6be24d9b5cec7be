package models

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Movement is one signed stock change for a variant. The ledger is
// append-only: current stock is always SUM(qty) per variant, never a
// stored counter, so the balance can be re-derived at any time.
type Movement struct {
	ID        int       `gorm:"primary_key" json:"id"`
	VariantId int       `gorm:"index;not null" json:"variant_id"`
	Qty       int       `gorm:"not null" json:"qty"`
	Reason    string    `gorm:"size:50;not null;index" json:"reason"`
	Ts        time.Time `gorm:"autoCreateTime;index" json:"ts"`
}

// Movement reasons. Entrance is positive, sales are negative, adjustment
// carries the operator's sign.
const (
	ReasonEntrada  = "entrada"
	ReasonVenda    = "venda"
	ReasonVendaPdf = "venda_pdf"
	ReasonAjuste   = "ajuste"
)

// RecordMovement appends a movement for the variant with the given SKU.
// The variant row is locked for the duration of the transaction so two
// concurrent commits against the same SKU serialize instead of both
// reading a stale balance.
func (s *Store) RecordMovement(ctx context.Context, sku string, qty int, reason string) error {
	if qty == 0 {
		return ErrZeroQuantity
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var variant Variant
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("sku = ?", sku).First(&variant).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSkuNotFound
			}
			return err
		}
		return tx.Create(&Movement{VariantId: variant.ID, Qty: qty, Reason: reason}).Error
	})
}

// AdjustToCount records an "ajuste" movement bringing the variant's
// balance to the counted quantity. Returns the applied delta; a zero
// delta records nothing.
func (s *Store) AdjustToCount(ctx context.Context, sku string, counted int) (int, error) {
	var delta int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var variant Variant
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("sku = ?", sku).First(&variant).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSkuNotFound
			}
			return err
		}

		var current int
		if err := tx.Model(&Movement{}).
			Where("variant_id = ?", variant.ID).
			Select("COALESCE(SUM(qty), 0)").Scan(&current).Error; err != nil {
			return err
		}

		delta = counted - current
		if delta == 0 {
			return nil
		}
		return tx.Create(&Movement{VariantId: variant.ID, Qty: delta, Reason: ReasonAjuste}).Error
	})
	return delta, err
}

// MovementFilter narrows the movement history listing. Zero values mean
// no filtering on that field.
type MovementFilter struct {
	Sku    string
	Reason string
	Days   int
}

// MovementRow is one history entry joined with its variant and product.
type MovementRow struct {
	ID        int       `json:"id"`
	Sku       string    `json:"sku"`
	Categoria string    `json:"categoria"`
	Subtipo   string    `json:"subtipo"`
	Cor       string    `json:"cor"`
	Tamanho   string    `json:"tamanho"`
	Qty       int       `json:"qty"`
	Reason    string    `json:"reason"`
	Ts        time.Time `json:"ts"`
}

// Movements lists the movement ledger, newest first.
func (s *Store) Movements(ctx context.Context, filter MovementFilter) ([]MovementRow, error) {
	query := s.db.WithContext(ctx).Table("movements m").
		Select(`m.id, v.sku, p.category AS categoria, p.subtype AS subtipo,
			v.color AS cor, v.size AS tamanho, m.qty, m.reason, m.ts`).
		Joins("JOIN variants v ON v.id = m.variant_id").
		Joins("JOIN products p ON p.id = v.product_id")

	if filter.Sku != "" {
		query = query.Where("v.sku = ?", filter.Sku)
	}
	if filter.Reason != "" {
		query = query.Where("m.reason = ?", filter.Reason)
	}
	if filter.Days > 0 {
		query = query.Where("m.ts >= ?", time.Now().AddDate(0, 0, -filter.Days))
	}

	var rows []MovementRow
	err := query.Order("m.ts DESC").Scan(&rows).Error
	return rows, err
}
