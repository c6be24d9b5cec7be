// Package estoque reconstructs (SKU, quantity) sale facts from noisy
// text extracted out of vendor sales-report PDFs (UpSeller layout) and
// reconciles them against a live inventory catalog.
//
// The pipeline runs in strict sequence per document:
//
//	raw lines -> NormalizeLines -> Scanner -> Resolver -> Simulate -> CommitBatch
//
// All stages before CommitBatch are pure; catalog and mapping state is
// captured once per run in a CatalogSnapshot / MappingTable so that no
// stage reads ambient global state.
package estoque

// ExtractionFact is a (SKU token, quantity) pair as extracted from the
// document, before any catalog resolution. SkuPdf is upper-cased and
// whitespace-stripped; Quantity is always in [1, 999].
type ExtractionFact struct {
	// SKU exactly as recovered from the document text
	SkuPdf string `json:"sku_pdf"`

	// Units sold according to the document
	Quantity int `json:"quantity"`
}

// ResolvedFact is an ExtractionFact after catalog resolution. Sku equals
// SkuPdf when neither the mapping table nor normalized catalog matching
// produced a canonical SKU.
type ResolvedFact struct {
	ExtractionFact

	// Canonical catalog SKU, or the raw token when unresolved
	Sku string `json:"sku"`

	// True only when the persisted mapping table supplied the SKU
	Mapped bool `json:"mapped"`
}

// CatalogVariant is the read-only slice of the live catalog this package
// needs: a unique SKU and its current stock balance.
type CatalogVariant struct {
	Sku          string `json:"sku"`
	CurrentStock int    `json:"current_stock"`
}

// MappingEntry is a persisted manual override from an as-extracted SKU to
// a canonical catalog SKU. At most one entry exists per SkuPdf.
type MappingEntry struct {
	SkuPdf     string `json:"sku_pdf"`
	SkuEstoque string `json:"sku_estoque"`
}

// MovementStatus classifies the simulated stock balance after applying a
// fact as a decrement.
type MovementStatus string

const (
	// StatusOK means stock stays positive after the decrement
	StatusOK MovementStatus = "OK"

	// StatusZeroes means the decrement consumes the exact remaining stock
	StatusZeroes MovementStatus = "ZEROES"

	// StatusNegative means the decrement overdraws current stock
	StatusNegative MovementStatus = "NEGATIVE"
)

// SimulatedMovement is the preview of one fact applied as a stock
// decrement. It never mutates catalog stock; committing is a separate,
// explicit step.
type SimulatedMovement struct {
	ResolvedFact

	// Catalog stock at simulation time; 0 when the SKU is not in the catalog
	StockBefore int `json:"stock_before"`

	// StockBefore minus Quantity
	StockAfter int `json:"stock_after"`

	Status MovementStatus `json:"status"`

	// True when Quantity exceeds HighQuantityThreshold
	HighQuantity bool `json:"high_quantity"`

	// False when the resolved SKU does not exist in the live catalog;
	// such rows are shown so an operator can pick a target manually
	InCatalog bool `json:"in_catalog"`
}
