package queries

import "driftgraph/pkg/utils"

// SnapshotQuery requests a full read-only export of a session graph
type SnapshotQuery struct {
	SessionID string `validate:"required"`
}

// Validate checks the query fields
func (q SnapshotQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// BridgeNodesQuery requests the session's bridge concepts
type BridgeNodesQuery struct {
	SessionID string `validate:"required"`
}

// Validate checks the query fields
func (q BridgeNodesQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// StructuralGapsQuery requests unconnected-but-related concept pairs
type StructuralGapsQuery struct {
	SessionID string `validate:"required"`
}

// Validate checks the query fields
func (q StructuralGapsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ClustersQuery requests the session's concept clusters. Threshold
// overrides the configured edge weight cutoff when set.
type ClustersQuery struct {
	SessionID string   `validate:"required"`
	Threshold *float64 `validate:"omitempty,gte=0,lte=1"`
}

// Validate checks the query fields
func (q ClustersQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// CentralityQuery requests the approximate betweenness of one concept
type CentralityQuery struct {
	SessionID string `validate:"required"`
	ConceptID string `validate:"required"`
}

// Validate checks the query fields
func (q CentralityQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// PromptQuery requests a creative prompt assembled from the session graph
type PromptQuery struct {
	SessionID string `validate:"required"`
}

// Validate checks the query fields
func (q PromptQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// CalibrateQuery requests the effective traversal parameters for a
// desired drift distance and temperature. It does not touch any session
// state.
type CalibrateQuery struct {
	Distance    float64 `validate:"gte=0,lte=1"`
	Temperature float64 `validate:"gte=0,lte=1"`
}

// Validate checks the query fields
func (q CalibrateQuery) Validate() error {
	return utils.ValidateStruct(q)
}
