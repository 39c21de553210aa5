package advisor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finadvise/finadvise/internal/metrics"
	"github.com/finadvise/finadvise/internal/models"
)

// Engine runs the recommendation synthesis pipeline. All state is
// request-scoped; a single Engine serves concurrent requests without
// shared mutable state.
type Engine struct {
	completer Completer
	logger    *slog.Logger
	collector *metrics.Collector
}

// NewEngine constructs the pipeline. A nil completer disables the
// external path entirely, so every request resolves through the fallback
// rule engine. The collector is optional.
func NewEngine(completer Completer, logger *slog.Logger, collector *metrics.Collector) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		completer: completer,
		logger:    logger,
		collector: collector,
	}
}

// Advise turns a user profile into a finalized, constraint-satisfying
// portfolio. The only error a caller can see is input validation; every
// external-service, parse, and repair failure is absorbed by the fallback
// path and reflected solely in the portfolio's provenance and rationale.
func (e *Engine) Advise(ctx context.Context, profile models.UserProfile) (*models.Portfolio, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	fm := ComputeMetrics(profile)
	goals := ClassifyGoals(profile.Goals)
	tier := EffectiveTier(fm.RiskScore)

	e.logger.Debug("metrics computed",
		"investment_capacity", fm.InvestmentCapacity,
		"risk_score", fm.RiskScore,
		"debt_to_income", fm.DebtToIncome,
		"goals", len(goals))

	if e.completer == nil {
		e.logger.Info("completion service not configured, using fallback allocation")
		return e.fallback(fm, profile.TimeHorizonYears, tier), nil
	}

	req, err := NewAdviceRequest(fm, profile.RiskTolerance, profile.TimeHorizonYears, goals)
	if err != nil {
		e.logger.Warn("advice request construction failed, using fallback", "error", err)
		return e.fallback(fm, profile.TimeHorizonYears, tier), nil
	}

	start := time.Now()
	raw, err := e.completer.Complete(ctx, systemPrompt, buildUserPrompt(req))
	if e.collector != nil {
		e.collector.ObserveCompletionDuration(time.Since(start).Seconds())
	}
	if err != nil {
		e.recordServiceFailure(err)
		return e.fallback(fm, profile.TimeHorizonYears, tier), nil
	}

	candidate, rationale, err := ParseAllocation(raw)
	if err != nil {
		if e.collector != nil {
			e.collector.RecordCompletionFailure(string(FailureMalformed))
		}
		e.logger.Warn("allocation proposal rejected, using fallback", "error", err)
		return e.fallback(fm, profile.TimeHorizonYears, tier), nil
	}

	adjusted, err := AdjustAllocation(candidate, tier)
	if err != nil {
		// Quality signal: the proposal was far outside acceptable bounds.
		if e.collector != nil {
			e.collector.RecordRepairFailure()
		}
		e.logger.Error("constraint repair failed, using fallback",
			"error", err,
			"proposal_sum", candidate.Sum(),
			"tier", tier)
		return e.fallback(fm, profile.TimeHorizonYears, tier), nil
	}

	if rationale == "" {
		rationale = fallbackRationale(fm.RiskScore, profile.TimeHorizonYears, adjusted)
	}

	portfolio := newPortfolio(adjusted, rationale, models.ProvenanceAI, tier)
	if e.collector != nil {
		e.collector.RecordRecommendation(string(models.ProvenanceAI))
	}
	e.logger.Info("portfolio produced",
		"provenance", portfolio.Provenance,
		"expected_return", portfolio.ExpectedReturn,
		"risk_level", portfolio.RiskLevel)
	return portfolio, nil
}

func (e *Engine) recordServiceFailure(err error) {
	kind := FailureUnavailable
	var se *ServiceError
	if errors.As(err, &se) {
		kind = se.Kind
	}
	if e.collector != nil {
		e.collector.RecordCompletionFailure(string(kind))
	}
	e.logger.Warn("completion service failed, using fallback", "kind", kind, "error", err)
}

func (e *Engine) fallback(fm models.FinancialMetrics, horizonYears int, tier models.RiskTolerance) *models.Portfolio {
	allocation := FallbackAllocation(fm.RiskScore, horizonYears)
	rationale := fallbackRationale(fm.RiskScore, horizonYears, allocation)

	portfolio := newPortfolio(allocation, rationale, models.ProvenanceFallback, tier)
	if e.collector != nil {
		e.collector.RecordRecommendation(string(models.ProvenanceFallback))
	}
	e.logger.Info("portfolio produced",
		"provenance", portfolio.Provenance,
		"expected_return", portfolio.ExpectedReturn,
		"risk_level", portfolio.RiskLevel)
	return portfolio
}
