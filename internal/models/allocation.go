package models

import "time"

// AssetClass identifies one of the fixed investment categories a portfolio
// is allocated across.
type AssetClass string

const (
	AssetEquities        AssetClass = "equities"
	AssetBonds           AssetClass = "bonds"
	AssetRealEstate      AssetClass = "real_estate"
	AssetCashEquivalents AssetClass = "cash_equivalents"
	AssetAlternatives    AssetClass = "alternatives"
)

// AssetClasses returns the closed set of asset classes in display order.
func AssetClasses() []AssetClass {
	return []AssetClass{
		AssetEquities,
		AssetBonds,
		AssetRealEstate,
		AssetCashEquivalents,
		AssetAlternatives,
	}
}

// AllocationCandidate maps asset classes to percentage weights (0-100).
// Candidates produced by the completion service are untrusted until they
// pass parsing, validation, and constraint adjustment.
type AllocationCandidate map[AssetClass]float64

// Sum returns the total of all weights.
func (a AllocationCandidate) Sum() float64 {
	var total float64
	for _, w := range a {
		total += w
	}
	return total
}

// Clone returns an independent copy of the candidate.
func (a AllocationCandidate) Clone() AllocationCandidate {
	out := make(AllocationCandidate, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// SumTolerance is the permitted rounding drift on the 100% sum invariant.
const SumTolerance = 0.5

// Provenance records how a Portfolio was produced.
type Provenance string

const (
	ProvenanceAI       Provenance = "ai-generated"
	ProvenanceFallback Provenance = "fallback-rule-based"
)

// Portfolio is the finalized recommendation returned to the caller. It is
// immutable once constructed and the sole artifact of a pipeline run.
type Portfolio struct {
	Allocation     AllocationCandidate `json:"allocation"`
	Sectors        map[string]float64  `json:"sectors,omitempty"`   // equity sleeve breakdown, percent of portfolio
	Geography      map[string]float64  `json:"geography,omitempty"` // equity sleeve breakdown, percent of portfolio
	ExpectedReturn float64             `json:"expected_return"`     // annualized percent
	RiskLevel      string              `json:"risk_level"`
	Rationale      string              `json:"rationale"`
	Provenance     Provenance          `json:"provenance"`
	GeneratedAt    time.Time           `json:"generated_at"`
}
