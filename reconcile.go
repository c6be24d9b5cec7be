package estoque

// HighQuantityThreshold gates commit batches: any fact above this quantity
// must be explicitly confirmed by the operator before the batch commits.
const HighQuantityThreshold = 99

// Simulation is the preview of a whole document applied against current
// catalog stock, plus the document-level gating decision.
type Simulation struct {
	Movements []SimulatedMovement `json:"movements"`

	// True when at least one movement carries HighQuantity; committing is
	// blocked until the operator confirms having reviewed those rows
	RequiresConfirmation bool `json:"requires_confirmation"`
}

// Simulate projects each resolved fact as a stock decrement against the
// snapshot. It is a pure projection: catalog stock is never mutated, and
// a SKU missing from the catalog simulates from a zero balance rather
// than aborting the run.
func Simulate(facts []ResolvedFact, catalog *CatalogSnapshot) Simulation {
	sim := Simulation{Movements: make([]SimulatedMovement, 0, len(facts))}
	for _, fact := range facts {
		before, inCatalog := catalog.Stock(fact.Sku)
		if !inCatalog {
			if canonical, ok := catalog.Canonical(fact.Sku); ok {
				before, _ = catalog.Stock(canonical)
				inCatalog = true
			}
		}
		after := before - fact.Quantity

		mv := SimulatedMovement{
			ResolvedFact: fact,
			StockBefore:  before,
			StockAfter:   after,
			Status:       classify(after),
			HighQuantity: fact.Quantity > HighQuantityThreshold,
			InCatalog:    inCatalog,
		}
		if mv.HighQuantity {
			sim.RequiresConfirmation = true
		}
		sim.Movements = append(sim.Movements, mv)
	}
	return sim
}

func classify(stockAfter int) MovementStatus {
	switch {
	case stockAfter < 0:
		return StatusNegative
	case stockAfter == 0:
		return StatusZeroes
	default:
		return StatusOK
	}
}
