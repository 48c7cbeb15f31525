package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"driftgraph/application/ports"
	"driftgraph/application/services"
	"driftgraph/domain/core/aggregates"
	"driftgraph/domain/core/valueobjects"
	apperrors "driftgraph/pkg/errors"
	"driftgraph/pkg/utils"
)

// DriftHandler handles exploration step HTTP requests
type DriftHandler struct {
	sessions ports.SessionRepository
	drift    *services.DriftService
	logger   *zap.Logger
}

// NewDriftHandler creates a new drift handler
func NewDriftHandler(sessions ports.SessionRepository, drift *services.DriftService, logger *zap.Logger) *DriftHandler {
	return &DriftHandler{sessions: sessions, drift: drift, logger: logger}
}

// DriftStepRequest represents the request body for one exploration step
type DriftStepRequest struct {
	From        string  `json:"from" validate:"required"`
	Distance    float64 `json:"distance" validate:"gte=0,lte=1"`
	Temperature float64 `json:"temperature" validate:"gte=0,lte=1"`
}

// Step handles POST /sessions/{sessionID}/drift
func (h *DriftHandler) Step(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req DriftStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	fromID, err := valueobjects.NewConceptIDFromString(req.From)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid concept id: "+req.From)
		return
	}

	var result services.StepResult
	err = h.sessions.WithSession(r.Context(), sessionID, func(g *aggregates.ConceptGraph) error {
		var stepErr error
		result, stepErr = h.drift.Step(r.Context(), g, fromID, req.Distance, req.Temperature)
		return stepErr
	})
	if err != nil {
		if appErr := apperrors.GetAppError(err); appErr != nil {
			h.respondError(w, appErr.HTTPStatus, appErr.Message)
			return
		}
		h.logger.Error("Drift step failed", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "Drift step failed")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// respondJSON sends a JSON response
func (h *DriftHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError sends an error response
func (h *DriftHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
