package advisor

import (
	"fmt"
	"strings"

	"github.com/finadvise/finadvise/internal/models"
)

// horizon bands used by both the risk score and the fallback table.
type horizon int

const (
	horizonShort  horizon = iota // under 3 years
	horizonMedium                // 3 to 10 years
	horizonLong                  // over 10 years
)

func horizonBand(years int) horizon {
	switch {
	case years < 3:
		return horizonShort
	case years <= 10:
		return horizonMedium
	default:
		return horizonLong
	}
}

func (h horizon) String() string {
	switch h {
	case horizonShort:
		return "short"
	case horizonMedium:
		return "medium"
	default:
		return "long"
	}
}

// fallbackTable is the deterministic allocation lookup keyed by risk tier
// (from the risk score band) crossed with horizon band. Every cell sums to
// 100 and respects its tier's class ceilings, so this path cannot fail
// validation.
var fallbackTable = map[models.RiskTolerance]map[horizon]models.AllocationCandidate{
	models.RiskConservative: {
		horizonShort:  {models.AssetEquities: 15, models.AssetBonds: 35, models.AssetRealEstate: 5, models.AssetCashEquivalents: 40, models.AssetAlternatives: 5},
		horizonMedium: {models.AssetEquities: 25, models.AssetBonds: 40, models.AssetRealEstate: 10, models.AssetCashEquivalents: 20, models.AssetAlternatives: 5},
		horizonLong:   {models.AssetEquities: 35, models.AssetBonds: 40, models.AssetRealEstate: 10, models.AssetCashEquivalents: 10, models.AssetAlternatives: 5},
	},
	models.RiskModerate: {
		horizonShort:  {models.AssetEquities: 30, models.AssetBonds: 35, models.AssetRealEstate: 10, models.AssetCashEquivalents: 20, models.AssetAlternatives: 5},
		horizonMedium: {models.AssetEquities: 45, models.AssetBonds: 30, models.AssetRealEstate: 10, models.AssetCashEquivalents: 10, models.AssetAlternatives: 5},
		horizonLong:   {models.AssetEquities: 55, models.AssetBonds: 20, models.AssetRealEstate: 10, models.AssetCashEquivalents: 5, models.AssetAlternatives: 10},
	},
	models.RiskAggressive: {
		horizonShort:  {models.AssetEquities: 45, models.AssetBonds: 25, models.AssetRealEstate: 10, models.AssetCashEquivalents: 15, models.AssetAlternatives: 5},
		horizonMedium: {models.AssetEquities: 60, models.AssetBonds: 15, models.AssetRealEstate: 10, models.AssetCashEquivalents: 5, models.AssetAlternatives: 10},
		horizonLong:   {models.AssetEquities: 70, models.AssetBonds: 10, models.AssetRealEstate: 5, models.AssetCashEquivalents: 0, models.AssetAlternatives: 15},
	},
}

// historicalReturns holds static annualized historical-average return
// figures per asset class, in percent. No live market data is consulted.
var historicalReturns = map[models.AssetClass]float64{
	models.AssetEquities:        7.0,
	models.AssetBonds:           3.5,
	models.AssetRealEstate:      6.0,
	models.AssetCashEquivalents: 1.5,
	models.AssetAlternatives:    5.0,
}

// FallbackAllocation returns the deterministic allocation for a risk score
// and horizon. Identical inputs always yield identical allocations.
func FallbackAllocation(riskScore float64, horizonYears int) models.AllocationCandidate {
	tier := EffectiveTier(riskScore)
	return fallbackTable[tier][horizonBand(horizonYears)].Clone()
}

// ExpectedReturn computes the weighted annualized return estimate from the
// static historical averages.
func ExpectedReturn(allocation models.AllocationCandidate) float64 {
	var total float64
	for class, weight := range allocation {
		total += weight / 100 * historicalReturns[class]
	}
	return total
}

// fallbackRationale synthesizes explanation text for the rule-based path.
func fallbackRationale(riskScore float64, horizonYears int, allocation models.AllocationCandidate) string {
	tier := EffectiveTier(riskScore)
	band := horizonBand(horizonYears)

	var b strings.Builder
	fmt.Fprintf(&b, "Rule-based allocation for a %s risk profile (score %.0f/100) over a %s horizon of %d years. ",
		tier, riskScore, band, horizonYears)
	fmt.Fprintf(&b, "The mix holds %.0f%% equities for growth and %.0f%% bonds for stability, ",
		allocation[models.AssetEquities], allocation[models.AssetBonds])
	fmt.Fprintf(&b, "with %.0f%% real estate, %.0f%% cash equivalents, and %.0f%% alternatives for diversification. ",
		allocation[models.AssetRealEstate], allocation[models.AssetCashEquivalents], allocation[models.AssetAlternatives])
	fmt.Fprintf(&b, "Expected annual return of %.1f%% is based on long-run historical averages.",
		ExpectedReturn(allocation))
	return b.String()
}
