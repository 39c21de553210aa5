package advisor

import (
	"time"

	"github.com/finadvise/finadvise/internal/models"
)

// Equity sleeve split used to derive the optional sector and geography
// sub-allocations. Values are fractions of the equity weight.
var (
	equitySectorSplit = map[string]float64{
		"large_cap":     0.50,
		"mid_cap":       0.30,
		"international": 0.20,
	}
	equityGeographySplit = map[string]float64{
		"domestic":      0.70,
		"international": 0.30,
	}
)

func riskLevelLabel(tier models.RiskTolerance) string {
	switch tier {
	case models.RiskConservative:
		return "Conservative"
	case models.RiskAggressive:
		return "Aggressive"
	default:
		return "Moderate"
	}
}

// newPortfolio finalizes a constraint-satisfying allocation into the
// immutable Portfolio artifact.
func newPortfolio(allocation models.AllocationCandidate, rationale string, provenance models.Provenance, tier models.RiskTolerance) *models.Portfolio {
	equity := allocation[models.AssetEquities]

	sectors := make(map[string]float64, len(equitySectorSplit))
	for sector, share := range equitySectorSplit {
		sectors[sector] = equity * share
	}
	geography := make(map[string]float64, len(equityGeographySplit))
	for region, share := range equityGeographySplit {
		geography[region] = equity * share
	}

	return &models.Portfolio{
		Allocation:     allocation,
		Sectors:        sectors,
		Geography:      geography,
		ExpectedReturn: ExpectedReturn(allocation),
		RiskLevel:      riskLevelLabel(tier),
		Rationale:      rationale,
		Provenance:     provenance,
		GeneratedAt:    time.Now().UTC(),
	}
}
