package advisor

import (
	"fmt"
	"math"

	"github.com/finadvise/finadvise/internal/models"
)

// Repair tolerance: proposals whose raw sum falls outside this range are
// considered too far from a valid portfolio to rescale honestly.
const (
	minRepairableSum = 50.0
	maxRepairableSum = 200.0
)

const weightEpsilon = 1e-9

// classCeilings caps each asset class per risk tier. Every fallback table
// cell satisfies the ceilings of its own tier by construction.
var classCeilings = map[models.RiskTolerance]map[models.AssetClass]float64{
	models.RiskConservative: {
		models.AssetEquities:        40,
		models.AssetBonds:           70,
		models.AssetRealEstate:      20,
		models.AssetCashEquivalents: 60,
		models.AssetAlternatives:    10,
	},
	models.RiskModerate: {
		models.AssetEquities:        70,
		models.AssetBonds:           60,
		models.AssetRealEstate:      30,
		models.AssetCashEquivalents: 40,
		models.AssetAlternatives:    15,
	},
	models.RiskAggressive: {
		models.AssetEquities:        90,
		models.AssetBonds:           50,
		models.AssetRealEstate:      35,
		models.AssetCashEquivalents: 30,
		models.AssetAlternatives:    25,
	},
}

// EffectiveTier derives the risk tier from the 0-100 risk score band.
// Adjuster ceilings and the fallback table share this banding so both
// paths validate against one ceiling regime.
func EffectiveTier(riskScore float64) models.RiskTolerance {
	switch {
	case riskScore <= 33:
		return models.RiskConservative
	case riskScore <= 66:
		return models.RiskModerate
	default:
		return models.RiskAggressive
	}
}

// CeilingFor returns the per-class weight ceiling for a tier.
func CeilingFor(tier models.RiskTolerance, class models.AssetClass) float64 {
	return classCeilings[tier][class]
}

// AdjustAllocation repairs a structurally valid candidate so it satisfies
// all portfolio invariants: weights rescaled to sum exactly 100, then
// clipped to the tier's per-class ceilings with the excess redistributed
// proportionally to the remaining headroom. It fails with *RepairError
// when the proposal cannot be repaired within tolerance; the violation is
// reported, never silently absorbed.
func AdjustAllocation(candidate models.AllocationCandidate, tier models.RiskTolerance) (models.AllocationCandidate, error) {
	sum := candidate.Sum()
	if sum < minRepairableSum || sum > maxRepairableSum {
		return nil, &RepairError{Reason: fmt.Sprintf("allocation sum %.1f outside repairable range [%.0f, %.0f]",
			sum, minRepairableSum, maxRepairableSum)}
	}

	adjusted := candidate.Clone()
	scale := 100 / sum
	for class, weight := range adjusted {
		adjusted[class] = weight * scale
	}

	ceilings := classCeilings[tier]

	// Clip violations and measure both the excess and the headroom left
	// in the unclipped classes.
	var excess float64
	clipped := make(map[models.AssetClass]bool)
	for class, weight := range adjusted {
		if ceiling := ceilings[class]; weight > ceiling {
			excess += weight - ceiling
			adjusted[class] = ceiling
			clipped[class] = true
		}
	}

	if excess > weightEpsilon {
		var headroom float64
		for class, weight := range adjusted {
			if !clipped[class] {
				headroom += ceilings[class] - weight
			}
		}
		if headroom < excess-weightEpsilon {
			return nil, &RepairError{Reason: fmt.Sprintf("excess %.1f%% cannot be absorbed, remaining headroom %.1f%%",
				excess, headroom)}
		}

		// Redistribution proportional to headroom never pushes a class
		// past its own ceiling.
		for class, weight := range adjusted {
			if clipped[class] {
				continue
			}
			share := (ceilings[class] - weight) / headroom
			adjusted[class] = weight + excess*share
		}
	}

	if diff := math.Abs(adjusted.Sum() - 100); diff > models.SumTolerance {
		return nil, &RepairError{Reason: fmt.Sprintf("sum invariant violated after redistribution: off by %.2f", diff)}
	}

	return adjusted, nil
}
