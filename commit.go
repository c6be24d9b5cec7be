package estoque

import (
	"context"
	"fmt"
)

// MovementStore is the write side of the catalog collaborator. The store
// must serialize concurrent movement commits per SKU so that two
// simultaneous reconciliations cannot both read the same stale balance.
type MovementStore interface {
	// RecordMovement appends a signed stock movement; it fails when the
	// SKU does not exist in the catalog.
	RecordMovement(ctx context.Context, sku string, qty int, reason string) error

	// UpsertMapping persists a skuPdf -> skuEstoque override, last write
	// wins per skuPdf.
	UpsertMapping(ctx context.Context, skuPdf, skuEstoque string) error
}

// CommitRow is one preview row the operator submits for commit. A
// corrected quantity, when present, always overrides the extracted one.
type CommitRow struct {
	SkuPdf            string `json:"sku_pdf"`
	Sku               string `json:"sku" binding:"required"`
	Quantity          int    `json:"quantity"`
	CorrectedQuantity *int   `json:"corrected_quantity,omitempty"`
}

// EffectiveQuantity returns the corrected quantity when present,
// otherwise the extracted quantity.
func (r CommitRow) EffectiveQuantity() int {
	if r.CorrectedQuantity != nil {
		return *r.CorrectedQuantity
	}
	return r.Quantity
}

// CommitOptions controls a commit batch.
type CommitOptions struct {
	// Reason tag recorded on every movement, e.g. "venda_pdf"
	Reason string

	// Operator confirmation for rows above HighQuantityThreshold
	ConfirmHigh bool

	// Persist skuPdf -> sku mappings for successfully committed rows
	SaveMappings bool
}

// CommitSummary reports the outcome of a commit batch.
type CommitSummary struct {
	Committed     int `json:"committed"`
	MappingsSaved int `json:"mappings_saved"`
	Skipped       int `json:"skipped"`
	Errored       int `json:"errored"`
}

// CommitBatch applies confirmed preview rows as stock decrements through
// the store. Validation is fail-closed for the whole batch: any row with
// an effective quantity <= 0, or an unconfirmed high quantity, rejects
// the batch before anything commits. Per-row outcomes after validation
// are independent: rows whose SKU is empty or absent from the catalog
// are skipped, store failures are counted and processing continues.
func CommitBatch(ctx context.Context, rows []CommitRow, catalog *CatalogSnapshot, store MovementStore, opts CommitOptions) (CommitSummary, error) {
	var summary CommitSummary

	if len(rows) == 0 {
		return summary, ErrNoItemsFound
	}

	needsConfirmation := false
	for i, row := range rows {
		qty := row.EffectiveQuantity()
		if qty <= 0 {
			return summary, fmt.Errorf("row %d (%s): %w", i, row.Sku, ErrInvalidQuantity)
		}
		if qty > HighQuantityThreshold {
			needsConfirmation = true
		}
	}
	if needsConfirmation && !opts.ConfirmHigh {
		return summary, ErrUnconfirmedHighQuantity
	}

	for _, row := range rows {
		sanitized := SanitizeSku(row.Sku)
		if sanitized == "" {
			summary.Skipped++
			continue
		}
		canonical, ok := catalog.Canonical(sanitized)
		if !ok {
			summary.Skipped++
			continue
		}

		qty := row.EffectiveQuantity()
		if err := store.RecordMovement(ctx, canonical, -qty, opts.Reason); err != nil {
			summary.Errored++
			continue
		}
		summary.Committed++

		if opts.SaveMappings && row.SkuPdf != "" {
			// a failed mapping upsert never undoes a committed movement
			if err := store.UpsertMapping(ctx, SanitizeSku(row.SkuPdf), canonical); err == nil {
				summary.MappingsSaved++
			}
		}
	}

	return summary, nil
}
