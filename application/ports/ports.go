package ports

import (
	"context"

	"driftgraph/domain/core/aggregates"
)

// Association is one traversal candidate supplied by the association
// data provider for a given concept.
type Association struct {
	Concept  string  `json:"concept"`
	Distance float64 `json:"distance"`
	Reason   string  `json:"reason"`
	// Domain is the provider's label for the conceptual domain the
	// candidate belongs to. The exploratory selection policy uses it to
	// make cross-domain jumps.
	Domain string `json:"domain,omitempty"`
}

// AssociationProvider supplies raw edge candidates for a concept. The
// engine treats the provider as an external collaborator; implementations
// may be backed by NLP services or, in-process, by a static lexicon.
type AssociationProvider interface {
	Associations(ctx context.Context, concept string) ([]Association, error)
}

// SessionRepository owns the live exploration sessions. Every session is
// an independent ConceptGraph; sessions share no state and may be used
// fully in parallel. All access to one session's graph goes through
// WithSession, which holds that session's mutex for the duration of fn.
// That mutex is the single mutual-exclusion boundary the engine requires.
type SessionRepository interface {
	Create(ctx context.Context, userID string) (aggregates.SessionID, error)
	WithSession(ctx context.Context, id string, fn func(g *aggregates.ConceptGraph) error) error
	Delete(ctx context.Context, id string)
}
