package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"driftgraph/application/commands"
	"driftgraph/application/commands/bus"
	apperrors "driftgraph/pkg/errors"
	"driftgraph/pkg/utils"
)

// ConceptHandler handles concept and relation HTTP requests
type ConceptHandler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewConceptHandler creates a new concept handler
func NewConceptHandler(commandBus *bus.CommandBus, logger *zap.Logger) *ConceptHandler {
	return &ConceptHandler{commandBus: commandBus, logger: logger}
}

// AddConceptRequest represents the request body for adding a concept
type AddConceptRequest struct {
	ConceptID      string                 `json:"conceptId,omitempty"`
	Content        string                 `json:"content" validate:"required,min=1,max=500"`
	Source         string                 `json:"source,omitempty"`
	DriftDistance  *float64               `json:"driftDistance,omitempty" validate:"omitempty,gte=0,lte=1"`
	SemanticVector []float64              `json:"semanticVector,omitempty"`
	CreatedAt      string                 `json:"createdAt,omitempty"` // RFC3339; server clock when omitted
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// LinkConceptsRequest represents the request body for linking concepts
type LinkConceptsRequest struct {
	SourceID string                 `json:"sourceId" validate:"required"`
	TargetID string                 `json:"targetId" validate:"required"`
	Relation string                 `json:"relation" validate:"required"`
	Weight   float64                `json:"weight" validate:"gte=0,lte=1"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// VisitConceptRequest represents the request body for recording a visit
type VisitConceptRequest struct {
	ConceptID string `json:"conceptId" validate:"required"`
}

// AddConcept handles POST /sessions/{sessionID}/concepts
func (h *ConceptHandler) AddConcept(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req AddConceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	cmd := commands.AddConceptCommand{
		SessionID:      sessionID,
		ConceptID:      req.ConceptID,
		Content:        req.Content,
		Source:         req.Source,
		DriftDistance:  req.DriftDistance,
		SemanticVector: req.SemanticVector,
		Metadata:       req.Metadata,
	}
	if req.CreatedAt != "" {
		createdAt, err := utils.ParseRFC3339(req.CreatedAt)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid createdAt: "+err.Error())
			return
		}
		cmd.CreatedAt = createdAt
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.handleError(w, err, "Failed to add concept")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Concept added",
		"createdAt": utils.NowRFC3339(),
	})
}

// LinkConcepts handles POST /sessions/{sessionID}/relations
func (h *ConceptHandler) LinkConcepts(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req LinkConceptsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	cmd := commands.LinkConceptsCommand{
		SessionID: sessionID,
		SourceID:  req.SourceID,
		TargetID:  req.TargetID,
		Relation:  req.Relation,
		Weight:    req.Weight,
		Metadata:  req.Metadata,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.handleError(w, err, "Failed to link concepts")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Concepts linked",
		"createdAt": utils.NowRFC3339(),
	})
}

// VisitConcept handles POST /sessions/{sessionID}/visits
func (h *ConceptHandler) VisitConcept(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req VisitConceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	cmd := commands.VisitConceptCommand{
		SessionID: sessionID,
		ConceptID: req.ConceptID,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.handleError(w, err, "Failed to record visit")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Visit recorded",
	})
}

// handleError maps application errors onto HTTP responses
func (h *ConceptHandler) handleError(w http.ResponseWriter, err error, fallback string) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		h.respondError(w, appErr.HTTPStatus, appErr.Message)
		return
	}
	h.logger.Error(fallback, zap.Error(err))
	h.respondError(w, http.StatusInternalServerError, fallback)
}

// respondJSON sends a JSON response
func (h *ConceptHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError sends an error response
func (h *ConceptHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
