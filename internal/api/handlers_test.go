package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finadvise/finadvise/internal/advisor"
	"github.com/finadvise/finadvise/internal/metrics"
	"github.com/finadvise/finadvise/internal/models"
)

type fixedCompleter struct {
	response string
}

func (f *fixedCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	return f.response, nil
}

const completionResponse = `{"allocations": {"equities": 55, "bonds": 20, "real_estate": 10, "cash_equivalents": 5, "alternatives": 10}, "rationale": "Long horizon supports a growth tilt."}`

func newTestHandler(completer advisor.Completer) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := advisor.NewEngine(completer, logger, nil)
	return NewHandler(engine, logger)
}

func validProfileBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"monthly_salary":     80000,
		"fixed_expenses":     30000,
		"variable_expenses":  20000,
		"age":                30,
		"risk_tolerance":     "moderate",
		"time_horizon_years": 15,
		"goals":              []string{"retirement"},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestRecommendationHandlerSuccess(t *testing.T) {
	h := newTestHandler(&fixedCompleter{response: completionResponse})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", validProfileBody(t))
	rec := httptest.NewRecorder()

	h.RecommendationHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var portfolio models.Portfolio
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&portfolio))
	assert.Equal(t, models.ProvenanceAI, portfolio.Provenance)
	assert.InDelta(t, 100, portfolio.Allocation.Sum(), models.SumTolerance)
	assert.Equal(t, "Long horizon supports a growth tilt.", portfolio.Rationale)
}

func TestRecommendationHandlerFallbackProvenance(t *testing.T) {
	// No completer configured: every request resolves through the rule engine.
	h := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", validProfileBody(t))
	rec := httptest.NewRecorder()

	h.RecommendationHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var portfolio models.Portfolio
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&portfolio))
	assert.Equal(t, models.ProvenanceFallback, portfolio.Provenance)
	assert.NotEmpty(t, portfolio.Rationale)
}

func TestRecommendationHandlerInvalidProfile(t *testing.T) {
	h := newTestHandler(nil)

	body, err := json.Marshal(map[string]any{
		"monthly_salary":     -100,
		"age":                30,
		"risk_tolerance":     "moderate",
		"time_horizon_years": 0,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewBuffer(body))
	rec := httptest.NewRecorder()

	h.RecommendationHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error    string   `json:"error"`
		Problems []string `json:"problems"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "invalid user profile", resp.Error)
	assert.GreaterOrEqual(t, len(resp.Problems), 2, "all validation problems should be reported together")
}

func TestRecommendationHandlerMalformedBody(t *testing.T) {
	h := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.RecommendationHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendationHandlerMethodNotAllowed(t *testing.T) {
	h := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	rec := httptest.NewRecorder()

	h.RecommendationHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	h := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	h.HealthHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestRouterRoutes(t *testing.T) {
	h := newTestHandler(nil)
	collector, err := metrics.NewCollector()
	require.NoError(t, err)
	router := NewRouter(h, collector)

	tests := []struct {
		name   string
		method string
		path   string
		body   *bytes.Buffer
		want   int
	}{
		{"recommendations", http.MethodPost, "/api/v1/recommendations", validProfileBody(t), http.StatusOK},
		{"health", http.MethodGet, "/api/health", nil, http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", nil, http.StatusOK},
		{"unknown path", http.MethodGet, "/nope", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != nil {
				req = httptest.NewRequest(tt.method, tt.path, tt.body)
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
