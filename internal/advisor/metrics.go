package advisor

import (
	"github.com/finadvise/finadvise/internal/models"
)

// Risk score weighting constants. The score blends stated tolerance with
// age, horizon, and debt load, clamped to [0, 100].
const (
	riskBaseConservative = 20.0
	riskBaseModerate     = 50.0
	riskBaseAggressive   = 80.0

	riskAgePivot     = 40.0 // ages below the pivot add points, above subtract
	riskAgeWeight    = 0.5
	riskAgeAdjLimit  = 10.0
	riskHorizonShift = 10.0 // short horizon subtracts, long adds
	riskDebtPenalty  = 25.0 // multiplied by the debt-to-income fraction

	highDebtLoadThreshold = 0.43
	emergencyFundMonths   = 6.0
)

// ComputeMetrics derives the FinancialMetrics snapshot from a validated
// profile. It is pure: no side effects and no failure modes, since
// malformed input is rejected before this stage.
func ComputeMetrics(profile models.UserProfile) models.FinancialMetrics {
	income := profile.GrossMonthlyIncome()
	expenses := profile.TotalExpenses()
	debtPayments := profile.TotalDebtPayments()

	capacity := income - (expenses + debtPayments)
	if capacity < 0 {
		capacity = 0
	}

	var dti, savingsRate float64
	if income > 0 {
		dti = debtPayments / income
		savingsRate = (income - expenses) / income
	}

	var fundMonths float64
	if expenses > 0 {
		fundMonths = profile.Savings / expenses
	}
	fundTarget := emergencyFundMonths * expenses
	fundGap := fundTarget - profile.Savings
	if fundGap < 0 {
		fundGap = 0
	}

	return models.FinancialMetrics{
		GrossMonthlyIncome:  income,
		InvestmentCapacity:  capacity,
		DebtToIncome:        dti,
		HighDebtLoad:        dti > highDebtLoadThreshold,
		SavingsRate:         savingsRate,
		RiskScore:           riskScore(profile, dti),
		EmergencyFundMonths: fundMonths,
		EmergencyFundTarget: fundTarget,
		EmergencyFundGap:    fundGap,
	}
}

// riskScore combines tolerance base points, an age adjustment (younger
// scores higher), a horizon adjustment (longer scores higher), and a
// debt penalty into a 0-100 scalar.
func riskScore(profile models.UserProfile, dti float64) float64 {
	var base float64
	switch profile.RiskTolerance {
	case models.RiskConservative:
		base = riskBaseConservative
	case models.RiskAggressive:
		base = riskBaseAggressive
	default:
		base = riskBaseModerate
	}

	ageAdj := (riskAgePivot - float64(profile.Age)) * riskAgeWeight
	ageAdj = clamp(ageAdj, -riskAgeAdjLimit, riskAgeAdjLimit)

	var horizonAdj float64
	switch horizonBand(profile.TimeHorizonYears) {
	case horizonShort:
		horizonAdj = -riskHorizonShift
	case horizonLong:
		horizonAdj = riskHorizonShift
	}

	score := base + ageAdj + horizonAdj - dti*riskDebtPenalty
	return clamp(score, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
