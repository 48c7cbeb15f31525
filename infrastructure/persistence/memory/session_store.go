package memory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	domaincfg "driftgraph/domain/config"
	"driftgraph/domain/core/aggregates"
	apperrors "driftgraph/pkg/errors"
)

// session pairs one graph with the mutex that serializes access to it
type session struct {
	mu    sync.Mutex
	graph *aggregates.ConceptGraph
}

// SessionStore is an in-memory session repository. Sessions are
// independent; only the registry map itself is shared. Each session's
// graph is guarded by its own mutex, so work in one session never blocks
// another.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	cfg      *domaincfg.DomainConfig
	logger   *zap.Logger
}

// NewSessionStore creates an empty in-memory session store
func NewSessionStore(cfg *domaincfg.DomainConfig, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		cfg:      cfg,
		logger:   logger,
	}
}

// Create starts a new exploration session and returns its identifier
func (s *SessionStore) Create(ctx context.Context, userID string) (aggregates.SessionID, error) {
	g := aggregates.NewConceptGraph(userID, s.cfg)

	s.mu.Lock()
	s.sessions[g.ID().String()] = &session{graph: g}
	count := len(s.sessions)
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("session created",
			zap.String("sessionID", g.ID().String()),
			zap.String("userID", userID),
			zap.Int("activeSessions", count),
		)
	}
	return g.ID(), nil
}

// WithSession runs fn with exclusive access to the session's graph
func (s *SessionStore) WithSession(ctx context.Context, id string, fn func(g *aggregates.ConceptGraph) error) error {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return apperrors.NewNotFoundError("session " + id)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(sess.graph)
}

// Delete removes a session. Removing an unknown session is a no-op.
func (s *SessionStore) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of active sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
