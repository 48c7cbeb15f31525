package commands

import (
	"time"

	"driftgraph/pkg/utils"
)

// AddConceptCommand inserts a concept node into a session graph
type AddConceptCommand struct {
	SessionID      string `validate:"required"`
	ConceptID      string // optional, generated if empty
	Content        string `validate:"required"`
	Source         string
	DriftDistance  *float64
	SemanticVector []float64
	CreatedAt      time.Time // optional, the store's clock when zero
	Metadata       map[string]interface{}
}

// Validate checks the command fields
func (c AddConceptCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// LinkConceptsCommand inserts a directed, typed, weighted edge
type LinkConceptsCommand struct {
	SessionID string `validate:"required"`
	SourceID  string `validate:"required"`
	TargetID  string `validate:"required"`
	Relation  string `validate:"required"`
	Weight    float64
	Metadata  map[string]interface{}
}

// Validate checks the command fields
func (c LinkConceptsCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// VisitConceptCommand appends a concept to the traversal history
type VisitConceptCommand struct {
	SessionID string `validate:"required"`
	ConceptID string `validate:"required"`
}

// Validate checks the command fields
func (c VisitConceptCommand) Validate() error {
	return utils.ValidateStruct(c)
}
