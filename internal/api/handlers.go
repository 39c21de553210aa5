package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/finadvise/finadvise/internal/advisor"
	"github.com/finadvise/finadvise/internal/models"
)

// Handler exposes the recommendation pipeline over HTTP. The HTTP layer
// is a thin caller: it pre-validates nothing beyond JSON shape and hands
// the profile to the engine, which owns all domain validation.
type Handler struct {
	engine    *advisor.Engine
	logger    *slog.Logger
	startTime time.Time
}

// NewHandler wires the pipeline engine into the HTTP surface.
func NewHandler(engine *advisor.Engine, logger *slog.Logger) *Handler {
	return &Handler{
		engine:    engine,
		logger:    logger,
		startTime: time.Now(),
	}
}

type errorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems,omitempty"`
}

// RecommendationHandler handles POST /api/v1/recommendations.
func (h *Handler) RecommendationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.NewString()
	logger := h.logger.With("request_id", requestID)

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		logger.Warn("malformed request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON body"}, logger)
		return
	}

	start := time.Now()
	portfolio, err := h.engine.Advise(r.Context(), profile)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			logger.Info("profile rejected", "problems", ve.Problems)
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user profile", Problems: ve.Problems}, logger)
			return
		}
		// The engine contract only surfaces validation errors; anything
		// else indicates a programming bug.
		logger.Error("unexpected pipeline error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"}, logger)
		return
	}

	logger.Info("recommendation served",
		"provenance", portfolio.Provenance,
		"duration_ms", time.Since(start).Milliseconds())

	w.Header().Set("X-Request-ID", requestID)
	writeJSON(w, http.StatusOK, portfolio, logger)
}

// HealthHandler handles GET /api/health.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startTime).Seconds()),
	}, h.logger)
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
