package estoque

import "testing"

func testCatalog() *CatalogSnapshot {
	return NewCatalogSnapshot([]CatalogVariant{
		{Sku: "VES-TOP-AZUL-P", CurrentStock: 10},
		{Sku: "VES-SAIA-ROSA-M", CurrentStock: 3},
		{Sku: "VES-MOLETOM-CINZA-GG", CurrentStock: 0},
		// both normalize to VESCARECAPRETOM
		{Sku: "VES-CARECA-PRETO-M", CurrentStock: 5},
		{Sku: "VESCARECA-PRETO-M", CurrentStock: 2},
	})
}

func TestCatalogSnapshotStock(t *testing.T) {
	catalog := testCatalog()

	if qty, ok := catalog.Stock("VES-TOP-AZUL-P"); !ok || qty != 10 {
		t.Errorf("Stock() = (%d, %v), want (10, true)", qty, ok)
	}
	if _, ok := catalog.Stock("NAO-EXISTE-P"); ok {
		t.Error("Stock() found a SKU that is not in the catalog")
	}
}

func TestCatalogSnapshotCanonical(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name  string
		sku   string
		want  string
		found bool
	}{
		{"Exact SKU", "VES-TOP-AZUL-P", "VES-TOP-AZUL-P", true},
		{"Lowercase with spaces", " ves-top-azul-p ", "VES-TOP-AZUL-P", true},
		{"Unknown SKU", "NAO-EXISTE-P", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := catalog.Canonical(tt.sku)
			if ok != tt.found || got != tt.want {
				t.Errorf("Canonical(%q) = (%q, %v), want (%q, %v)", tt.sku, got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	catalog := testCatalog()
	mappings := NewMappingTable([]MappingEntry{
		{SkuPdf: "VESTIDO-MOL-GG", SkuEstoque: "VES-MOLETOM-CINZA-GG"},
		{SkuPdf: "VESTIDO-MOL-GG", SkuEstoque: "VES-MOLETOM-CINZA-GG"},
	})
	resolver := NewResolver(catalog, mappings)

	tests := []struct {
		name       string
		fact       ExtractionFact
		wantSku    string
		wantMapped bool
	}{
		{
			name:       "Mapping table wins",
			fact:       ExtractionFact{SkuPdf: "VESTIDO-MOL-GG", Quantity: 5},
			wantSku:    "VES-MOLETOM-CINZA-GG",
			wantMapped: true,
		},
		{
			name:       "Normalized single match is not flagged as mapped",
			fact:       ExtractionFact{SkuPdf: "VESSAIA-ROSA-M", Quantity: 1},
			wantSku:    "VES-SAIA-ROSA-M",
			wantMapped: false,
		},
		{
			name:       "Ambiguous normalized key falls back to token",
			fact:       ExtractionFact{SkuPdf: "VES-CARECAPRETO-M", Quantity: 2},
			wantSku:    "VES-CARECAPRETO-M",
			wantMapped: false,
		},
		{
			name:       "Unknown token falls back to itself",
			fact:       ExtractionFact{SkuPdf: "XYZ-FOO-BAR-P", Quantity: 1},
			wantSku:    "XYZ-FOO-BAR-P",
			wantMapped: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(tt.fact)
			if got.Sku != tt.wantSku || got.Mapped != tt.wantMapped {
				t.Errorf("Resolve(%q) = (%q, mapped=%v), want (%q, mapped=%v)",
					tt.fact.SkuPdf, got.Sku, got.Mapped, tt.wantSku, tt.wantMapped)
			}
			if got.Quantity != tt.fact.Quantity {
				t.Errorf("Resolve() changed quantity: %d, want %d", got.Quantity, tt.fact.Quantity)
			}
		})
	}
}

func TestResolveAllPreservesOrder(t *testing.T) {
	resolver := NewResolver(testCatalog(), NewMappingTable(nil))
	facts := []ExtractionFact{
		{SkuPdf: "VES-TOP-AZUL-P", Quantity: 2},
		{SkuPdf: "XYZ-FOO-BAR-P", Quantity: 1},
	}
	resolved := resolver.ResolveAll(facts)
	if len(resolved) != 2 {
		t.Fatalf("ResolveAll() returned %d facts, want 2", len(resolved))
	}
	if resolved[0].Sku != "VES-TOP-AZUL-P" || resolved[1].Sku != "XYZ-FOO-BAR-P" {
		t.Errorf("ResolveAll() order: got [%s %s]", resolved[0].Sku, resolved[1].Sku)
	}
}
