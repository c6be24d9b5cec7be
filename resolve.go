package estoque

// CatalogSnapshot is an immutable view of the live catalog taken at the
// start of a run. It indexes the catalog three ways: exact SKU for stock
// lookups, sanitized SKU for recovering the exact stored casing at commit
// time, and normalized key for matching across formatting variance.
type CatalogSnapshot struct {
	stock        map[string]int
	bySanitized  map[string]string
	byNormalized map[string][]string
}

// NewCatalogSnapshot indexes the given catalog variants.
func NewCatalogSnapshot(variants []CatalogVariant) *CatalogSnapshot {
	snap := &CatalogSnapshot{
		stock:        make(map[string]int, len(variants)),
		bySanitized:  make(map[string]string, len(variants)),
		byNormalized: make(map[string][]string, len(variants)),
	}
	for _, v := range variants {
		snap.stock[v.Sku] = v.CurrentStock
		snap.bySanitized[SanitizeSku(v.Sku)] = v.Sku
		key := NormalizeKey(v.Sku)
		snap.byNormalized[key] = append(snap.byNormalized[key], v.Sku)
	}
	return snap
}

// Stock returns the current stock for an exact catalog SKU and whether
// the SKU exists in the catalog.
func (s *CatalogSnapshot) Stock(sku string) (int, bool) {
	qty, ok := s.stock[sku]
	return qty, ok
}

// Canonical maps a SKU in any formatting to the exact SKU stored in the
// catalog, via sanitized comparison.
func (s *CatalogSnapshot) Canonical(sku string) (string, bool) {
	orig, ok := s.bySanitized[SanitizeSku(sku)]
	return orig, ok
}

// matchNormalized returns the single catalog SKU sharing the normalized
// key, or false when zero or several SKUs normalize to it. Ambiguous keys
// deliberately do not match: picking one silently could decrement the
// wrong variant.
func (s *CatalogSnapshot) matchNormalized(key string) (string, bool) {
	candidates := s.byNormalized[key]
	if len(candidates) != 1 {
		return "", false
	}
	return candidates[0], true
}

// MappingTable is the persisted skuPdf -> skuEstoque override table,
// keyed by sanitized SkuPdf. Last entry wins for a duplicated key, which
// matches the store's at-most-one-active-mapping contract.
type MappingTable map[string]string

// NewMappingTable indexes persisted mapping entries by sanitized key.
func NewMappingTable(entries []MappingEntry) MappingTable {
	table := make(MappingTable, len(entries))
	for _, e := range entries {
		table[SanitizeSku(e.SkuPdf)] = e.SkuEstoque
	}
	return table
}

// Resolver maps extracted SKU tokens to canonical catalog SKUs. Both the
// catalog snapshot and the mapping table are read-only; writing a new
// mapping is a separate operator-confirmed action at commit time.
type Resolver struct {
	catalog  *CatalogSnapshot
	mappings MappingTable
}

// NewResolver builds a Resolver over per-run snapshots of the catalog and
// the mapping table.
func NewResolver(catalog *CatalogSnapshot, mappings MappingTable) *Resolver {
	return &Resolver{catalog: catalog, mappings: mappings}
}

// Resolve maps one fact's SKU token to a catalog SKU. Resolution order:
// persisted mapping by sanitized key, then normalized-equality matching
// against the catalog (single match only), then the token itself. It is
// total: the resolved SKU is never empty, so unresolved facts still show
// up in the preview for manual correction.
func (r *Resolver) Resolve(fact ExtractionFact) ResolvedFact {
	resolved := ResolvedFact{ExtractionFact: fact, Sku: fact.SkuPdf}

	if target, ok := r.mappings[SanitizeSku(fact.SkuPdf)]; ok {
		resolved.Sku = target
		resolved.Mapped = true
		return resolved
	}

	if sku, ok := r.catalog.matchNormalized(NormalizeKey(fact.SkuPdf)); ok {
		resolved.Sku = sku
	}
	return resolved
}

// ResolveAll resolves an ordered fact list, preserving order.
func (r *Resolver) ResolveAll(facts []ExtractionFact) []ResolvedFact {
	resolved := make([]ResolvedFact, 0, len(facts))
	for _, f := range facts {
		resolved = append(resolved, r.Resolve(f))
	}
	return resolved
}
