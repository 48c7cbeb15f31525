package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"driftgraph/application/commands"
	"driftgraph/application/commands/bus"
	"driftgraph/application/ports"
	"driftgraph/domain/core/aggregates"
	"driftgraph/domain/core/entities"
	"driftgraph/domain/core/valueobjects"
	apperrors "driftgraph/pkg/errors"
)

// AddConceptHandler handles AddConceptCommand
type AddConceptHandler struct {
	sessions ports.SessionRepository
	logger   *zap.Logger
}

// NewAddConceptHandler creates an add-concept handler
func NewAddConceptHandler(sessions ports.SessionRepository, logger *zap.Logger) *AddConceptHandler {
	return &AddConceptHandler{sessions: sessions, logger: logger}
}

// Handle inserts the concept into the session graph
func (h *AddConceptHandler) Handle(ctx context.Context, cmd bus.Command) error {
	addCmd, ok := cmd.(commands.AddConceptCommand)
	if !ok {
		return fmt.Errorf("invalid command type %T", cmd)
	}

	return h.sessions.WithSession(ctx, addCmd.SessionID, func(g *aggregates.ConceptGraph) error {
		var id valueobjects.ConceptID
		if addCmd.ConceptID == "" {
			id = valueobjects.NewConceptID()
		} else {
			var err error
			id, err = valueobjects.NewConceptIDFromString(addCmd.ConceptID)
			if err != nil {
				return apperrors.NewValidationError(err.Error())
			}
		}

		concept, err := entities.NewConcept(id, addCmd.Content, entities.ConceptAttrs{
			Source:         addCmd.Source,
			DriftDistance:  addCmd.DriftDistance,
			SemanticVector: addCmd.SemanticVector,
			CreatedAt:      addCmd.CreatedAt,
			Metadata:       addCmd.Metadata,
		})
		if err != nil {
			return err
		}

		if err := g.AddConcept(concept); err != nil {
			return err
		}

		drainEvents(g, h.logger)
		return nil
	})
}

// LinkConceptsHandler handles LinkConceptsCommand
type LinkConceptsHandler struct {
	sessions ports.SessionRepository
	logger   *zap.Logger
}

// NewLinkConceptsHandler creates a link-concepts handler
func NewLinkConceptsHandler(sessions ports.SessionRepository, logger *zap.Logger) *LinkConceptsHandler {
	return &LinkConceptsHandler{sessions: sessions, logger: logger}
}

// Handle inserts the edge into the session graph
func (h *LinkConceptsHandler) Handle(ctx context.Context, cmd bus.Command) error {
	linkCmd, ok := cmd.(commands.LinkConceptsCommand)
	if !ok {
		return fmt.Errorf("invalid command type %T", cmd)
	}

	relation, err := entities.ParseRelationType(linkCmd.Relation)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	return h.sessions.WithSession(ctx, linkCmd.SessionID, func(g *aggregates.ConceptGraph) error {
		sourceID, err := valueobjects.NewConceptIDFromString(linkCmd.SourceID)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		targetID, err := valueobjects.NewConceptIDFromString(linkCmd.TargetID)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}

		if _, err := g.Link(sourceID, targetID, relation, linkCmd.Weight, linkCmd.Metadata); err != nil {
			return err
		}

		drainEvents(g, h.logger)
		return nil
	})
}

// VisitConceptHandler handles VisitConceptCommand
type VisitConceptHandler struct {
	sessions ports.SessionRepository
	logger   *zap.Logger
}

// NewVisitConceptHandler creates a visit-concept handler
func NewVisitConceptHandler(sessions ports.SessionRepository, logger *zap.Logger) *VisitConceptHandler {
	return &VisitConceptHandler{sessions: sessions, logger: logger}
}

// Handle records the visit in the traversal history
func (h *VisitConceptHandler) Handle(ctx context.Context, cmd bus.Command) error {
	visitCmd, ok := cmd.(commands.VisitConceptCommand)
	if !ok {
		return fmt.Errorf("invalid command type %T", cmd)
	}

	return h.sessions.WithSession(ctx, visitCmd.SessionID, func(g *aggregates.ConceptGraph) error {
		id, err := valueobjects.NewConceptIDFromString(visitCmd.ConceptID)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}

		if err := g.Visit(id); err != nil {
			return err
		}

		drainEvents(g, h.logger)
		return nil
	})
}

// drainEvents flushes the aggregate's uncommitted events into the
// structured log. The engine has no external event bus; the log is the
// event sink.
func drainEvents(g *aggregates.ConceptGraph, logger *zap.Logger) {
	if logger == nil {
		g.MarkEventsAsCommitted()
		return
	}
	for _, event := range g.UncommittedEvents() {
		logger.Debug("domain event",
			zap.String("type", event.EventType()),
			zap.String("sessionID", event.AggregateID()),
			zap.Time("occurredAt", event.OccurredAt()),
		)
	}
	g.MarkEventsAsCommitted()
}
