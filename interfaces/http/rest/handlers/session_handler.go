package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"driftgraph/application/ports"
	"driftgraph/pkg/auth"
)

// SessionHandler handles session lifecycle HTTP requests
type SessionHandler struct {
	sessions ports.SessionRepository
	logger   *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions ports.SessionRepository, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// CreateSessionResponse represents the response for creating a session
type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	sessionID, err := h.sessions.Create(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	h.respondJSON(w, http.StatusCreated, CreateSessionResponse{
		SessionID: sessionID.String(),
		UserID:    userID,
	})
}

// DeleteSession handles DELETE /sessions/{sessionID}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		h.respondError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	h.sessions.Delete(r.Context(), sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// respondJSON sends a JSON response
func (h *SessionHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError sends an error response
func (h *SessionHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
