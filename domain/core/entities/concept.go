package entities

import (
	"time"

	"driftgraph/domain/core/valueobjects"
	pkgerrors "driftgraph/pkg/errors"
)

// Concept is the entity representing a visited concept in an exploration
// session. Once inserted into a graph it is never mutated through any
// path other than the graph's own API; metadata is the only field a
// caller may write after insertion, and the engine treats it as opaque.
type Concept struct {
	id             valueobjects.ConceptID
	content        string
	createdAt      time.Time
	semanticVector []float64
	driftDistance  *float64
	source         string
	metadata       map[string]interface{}
}

// ConceptAttrs carries the optional attributes of a new concept
type ConceptAttrs struct {
	SemanticVector []float64
	DriftDistance  *float64
	Source         string
	CreatedAt      time.Time // zero value means the store assigns its clock
	Metadata       map[string]interface{}
}

// NewConcept creates a new concept with validation
func NewConcept(id valueobjects.ConceptID, content string, attrs ConceptAttrs) (*Concept, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("concept id cannot be empty")
	}
	if content == "" {
		return nil, pkgerrors.NewValidationError("concept content cannot be empty")
	}

	c := &Concept{
		id:        id,
		content:   content,
		createdAt: attrs.CreatedAt,
		source:    attrs.Source,
		metadata:  make(map[string]interface{}),
	}

	if len(attrs.SemanticVector) > 0 {
		c.semanticVector = make([]float64, len(attrs.SemanticVector))
		copy(c.semanticVector, attrs.SemanticVector)
	}
	if attrs.DriftDistance != nil {
		d := *attrs.DriftDistance
		c.driftDistance = &d
	}
	for k, v := range attrs.Metadata {
		c.metadata[k] = v
	}

	return c, nil
}

// ID returns the concept's unique identifier
func (c *Concept) ID() valueobjects.ConceptID {
	return c.id
}

// Content returns the concept's content string
func (c *Concept) Content() string {
	return c.content
}

// CreatedAt returns when the concept was created
func (c *Concept) CreatedAt() time.Time {
	return c.createdAt
}

// CreationTimestampMilli returns the creation time in Unix milliseconds
func (c *Concept) CreationTimestampMilli() int64 {
	return c.createdAt.UnixMilli()
}

// EnsureCreatedAt assigns a creation time if none was supplied. The store
// calls this at insertion; it is a no-op once a timestamp is set.
func (c *Concept) EnsureCreatedAt(t time.Time) {
	if c.createdAt.IsZero() {
		c.createdAt = t
	}
}

// SemanticVector returns a copy of the optional embedding vector
func (c *Concept) SemanticVector() []float64 {
	if c.semanticVector == nil {
		return nil
	}
	v := make([]float64, len(c.semanticVector))
	copy(v, c.semanticVector)
	return v
}

// DriftDistance returns the drift distance and whether one was recorded
func (c *Concept) DriftDistance() (float64, bool) {
	if c.driftDistance == nil {
		return 0, false
	}
	return *c.driftDistance, true
}

// DriftDistanceOrZero returns the drift distance, treating a missing
// value as 0. Gap detection compares on this basis only.
func (c *Concept) DriftDistanceOrZero() float64 {
	if c.driftDistance == nil {
		return 0
	}
	return *c.driftDistance
}

// Source returns the optional source label
func (c *Concept) Source() string {
	return c.source
}

// Metadata returns a copy of the metadata map
func (c *Concept) Metadata() map[string]interface{} {
	m := make(map[string]interface{}, len(c.metadata))
	for k, v := range c.metadata {
		m[k] = v
	}
	return m
}

// SetMetadata writes a metadata entry. Metadata is opaque to the engine;
// only external consumers interpret its contents.
func (c *Concept) SetMetadata(key string, value interface{}) {
	c.metadata[key] = value
}
