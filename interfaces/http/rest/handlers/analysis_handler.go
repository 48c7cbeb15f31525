package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"driftgraph/application/queries"
	"driftgraph/application/queries/bus"
	apperrors "driftgraph/pkg/errors"
)

// AnalysisHandler handles read-only graph analysis HTTP requests
type AnalysisHandler struct {
	queryBus *bus.QueryBus
	logger   *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(queryBus *bus.QueryBus, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{queryBus: queryBus, logger: logger}
}

// GetSnapshot handles GET /sessions/{sessionID}/snapshot
func (h *AnalysisHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.SnapshotQuery{SessionID: chi.URLParam(r, "sessionID")}, "Failed to export snapshot")
}

// GetBridges handles GET /sessions/{sessionID}/bridges
func (h *AnalysisHandler) GetBridges(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.BridgeNodesQuery{SessionID: chi.URLParam(r, "sessionID")}, "Failed to find bridges")
}

// GetGaps handles GET /sessions/{sessionID}/gaps
func (h *AnalysisHandler) GetGaps(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.StructuralGapsQuery{SessionID: chi.URLParam(r, "sessionID")}, "Failed to find gaps")
}

// GetClusters handles GET /sessions/{sessionID}/clusters?threshold=
func (h *AnalysisHandler) GetClusters(w http.ResponseWriter, r *http.Request) {
	q := queries.ClustersQuery{SessionID: chi.URLParam(r, "sessionID")}
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid threshold: "+raw)
			return
		}
		q.Threshold = &threshold
	}
	h.ask(w, r, q, "Failed to detect clusters")
}

// GetCentrality handles GET /sessions/{sessionID}/concepts/{conceptID}/centrality
func (h *AnalysisHandler) GetCentrality(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.CentralityQuery{
		SessionID: chi.URLParam(r, "sessionID"),
		ConceptID: chi.URLParam(r, "conceptID"),
	}, "Failed to estimate centrality")
}

// GetPrompt handles GET /sessions/{sessionID}/prompt
func (h *AnalysisHandler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.PromptQuery{SessionID: chi.URLParam(r, "sessionID")}, "Failed to build prompt")
}

// Calibrate handles GET /calibrate?distance=&temperature=
func (h *AnalysisHandler) Calibrate(w http.ResponseWriter, r *http.Request) {
	distance, err := parseUnitParam(r, "distance")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	temperature, err := parseUnitParam(r, "temperature")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.ask(w, r, queries.CalibrateQuery{Distance: distance, Temperature: temperature}, "Failed to calibrate")
}

// ask dispatches a query and writes the result or the mapped error
func (h *AnalysisHandler) ask(w http.ResponseWriter, r *http.Request, q bus.Query, fallback string) {
	result, err := h.queryBus.Ask(r.Context(), q)
	if err != nil {
		if appErr := apperrors.GetAppError(err); appErr != nil {
			h.respondError(w, appErr.HTTPStatus, appErr.Message)
			return
		}
		h.logger.Error(fallback, zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, fallback)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// parseUnitParam reads a [0,1] float query parameter, defaulting to 0
func parseUnitParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid " + name + ": " + raw)
	}
	return v, nil
}

// respondJSON sends a JSON response
func (h *AnalysisHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError sends an error response
func (h *AnalysisHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
