package events

import "time"

// DomainEvent is implemented by all events emitted by the concept graph
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// BaseEvent provides the common event fields
type BaseEvent struct {
	SessionID string
	Type      string
	Timestamp time.Time
}

// EventType returns the event type name
func (e BaseEvent) EventType() string { return e.Type }

// AggregateID returns the id of the session graph that emitted the event
func (e BaseEvent) AggregateID() string { return e.SessionID }

// OccurredAt returns when the event occurred
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// ConceptAdded is emitted when a concept node is inserted
type ConceptAdded struct {
	BaseEvent
	ConceptID string
	Source    string
}

// NewConceptAdded creates a ConceptAdded event
func NewConceptAdded(sessionID, conceptID, source string, at time.Time) ConceptAdded {
	return ConceptAdded{
		BaseEvent: BaseEvent{SessionID: sessionID, Type: "graph.concept_added", Timestamp: at},
		ConceptID: conceptID,
		Source:    source,
	}
}

// ConceptsLinked is emitted when an edge is inserted
type ConceptsLinked struct {
	BaseEvent
	SourceID string
	TargetID string
	Relation string
	Weight   float64
}

// NewConceptsLinked creates a ConceptsLinked event
func NewConceptsLinked(sessionID, sourceID, targetID, relation string, weight float64, at time.Time) ConceptsLinked {
	return ConceptsLinked{
		BaseEvent: BaseEvent{SessionID: sessionID, Type: "graph.concepts_linked", Timestamp: at},
		SourceID:  sourceID,
		TargetID:  targetID,
		Relation:  relation,
		Weight:    weight,
	}
}

// ConceptVisited is emitted when a concept is recorded in traversal history
type ConceptVisited struct {
	BaseEvent
	ConceptID string
}

// NewConceptVisited creates a ConceptVisited event
func NewConceptVisited(sessionID, conceptID string, at time.Time) ConceptVisited {
	return ConceptVisited{
		BaseEvent: BaseEvent{SessionID: sessionID, Type: "graph.concept_visited", Timestamp: at},
		ConceptID: conceptID,
	}
}
