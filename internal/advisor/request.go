package advisor

import (
	"fmt"

	"github.com/finadvise/finadvise/internal/models"
)

// AdviceRequest is the structured payload handed to the completion client.
// It merges the derived metrics with the risk preferences and classified
// goals. Pure data: building it performs no network access.
type AdviceRequest struct {
	Metrics          models.FinancialMetrics
	RiskTolerance    models.RiskTolerance
	TimeHorizonYears int
	Goals            []models.GoalRecord
}

// NewAdviceRequest assembles the payload, failing only on missing
// required fields.
func NewAdviceRequest(metrics models.FinancialMetrics, tolerance models.RiskTolerance, horizonYears int, goals []models.GoalRecord) (*AdviceRequest, error) {
	if !tolerance.Valid() {
		return nil, fmt.Errorf("advice request: missing risk tolerance")
	}
	if horizonYears <= 0 {
		return nil, fmt.Errorf("advice request: missing time horizon")
	}

	return &AdviceRequest{
		Metrics:          metrics,
		RiskTolerance:    tolerance,
		TimeHorizonYears: horizonYears,
		Goals:            goals,
	}, nil
}
