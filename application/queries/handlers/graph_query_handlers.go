package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"driftgraph/application/ports"
	"driftgraph/application/queries"
	"driftgraph/application/queries/bus"
	"driftgraph/application/services"
	"driftgraph/domain/core/aggregates"
	"driftgraph/domain/core/valueobjects"
	apperrors "driftgraph/pkg/errors"
)

// BridgeNodeView is the read model for one bridge concept
type BridgeNodeView struct {
	ConceptID  string  `json:"conceptId"`
	Content    string  `json:"content"`
	Centrality float64 `json:"centrality"`
	Clusters   []int   `json:"clusters"`
}

// BridgeNodesResult is the read model for the bridge-nodes query
type BridgeNodesResult struct {
	SessionID string           `json:"sessionId"`
	Bridges   []BridgeNodeView `json:"bridges"`
}

// StructuralGapView is the read model for one structural gap
type StructuralGapView struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Reason string `json:"reason"`
}

// StructuralGapsResult is the read model for the structural-gaps query
type StructuralGapsResult struct {
	SessionID string              `json:"sessionId"`
	Gaps      []StructuralGapView `json:"gaps"`
}

// ClustersResult is the read model for the clusters query
type ClustersResult struct {
	SessionID string     `json:"sessionId"`
	Threshold float64    `json:"threshold"`
	Clusters  [][]string `json:"clusters"`
}

// CentralityResult is the read model for the centrality query
type CentralityResult struct {
	SessionID  string  `json:"sessionId"`
	ConceptID  string  `json:"conceptId"`
	Centrality float64 `json:"centrality"`
}

// SnapshotHandler handles SnapshotQuery
type SnapshotHandler struct {
	sessions ports.SessionRepository
}

// NewSnapshotHandler creates a snapshot query handler
func NewSnapshotHandler(sessions ports.SessionRepository) *SnapshotHandler {
	return &SnapshotHandler{sessions: sessions}
}

// Handle exports the full session graph
func (h *SnapshotHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.SnapshotQuery)
	if !ok {
		return nil, fmt.Errorf("invalid query type %T", query)
	}

	var snapshot aggregates.Snapshot
	err := h.sessions.WithSession(ctx, q.SessionID, func(g *aggregates.ConceptGraph) error {
		snapshot = g.Export()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// BridgeNodesHandler handles BridgeNodesQuery
type BridgeNodesHandler struct {
	sessions ports.SessionRepository
}

// NewBridgeNodesHandler creates a bridge-nodes query handler
func NewBridgeNodesHandler(sessions ports.SessionRepository) *BridgeNodesHandler {
	return &BridgeNodesHandler{sessions: sessions}
}

// Handle returns the session's bridge concepts, highest centrality first
func (h *BridgeNodesHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.BridgeNodesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid query type %T", query)
	}

	result := BridgeNodesResult{SessionID: q.SessionID, Bridges: []BridgeNodeView{}}
	err := h.sessions.WithSession(ctx, q.SessionID, func(g *aggregates.ConceptGraph) error {
		for _, bridge := range g.BridgeNodes() {
			view := BridgeNodeView{
				ConceptID:  bridge.ID.String(),
				Centrality: bridge.Centrality,
				Clusters:   bridge.Clusters,
			}
			if c, err := g.GetConcept(bridge.ID); err == nil {
				view.Content = c.Content()
			}
			result.Bridges = append(result.Bridges, view)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// StructuralGapsHandler handles StructuralGapsQuery
type StructuralGapsHandler struct {
	sessions ports.SessionRepository
}

// NewStructuralGapsHandler creates a structural-gaps query handler
func NewStructuralGapsHandler(sessions ports.SessionRepository) *StructuralGapsHandler {
	return &StructuralGapsHandler{sessions: sessions}
}

// Handle returns unconnected concept pairs that plausibly belong together
func (h *StructuralGapsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.StructuralGapsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid query type %T", query)
	}

	result := StructuralGapsResult{SessionID: q.SessionID, Gaps: []StructuralGapView{}}
	err := h.sessions.WithSession(ctx, q.SessionID, func(g *aggregates.ConceptGraph) error {
		for _, gap := range g.StructuralGaps() {
			result.Gaps = append(result.Gaps, StructuralGapView{
				A:      gap.A.String(),
				B:      gap.B.String(),
				Reason: gap.Reason,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ClustersHandler handles ClustersQuery
type ClustersHandler struct {
	sessions ports.SessionRepository
}

// NewClustersHandler creates a clusters query handler
func NewClustersHandler(sessions ports.SessionRepository) *ClustersHandler {
	return &ClustersHandler{sessions: sessions}
}

// Handle returns the session's weight-thresholded clusters
func (h *ClustersHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ClustersQuery)
	if !ok {
		return nil, fmt.Errorf("invalid query type %T", query)
	}

	result := ClustersResult{SessionID: q.SessionID, Clusters: [][]string{}}
	err := h.sessions.WithSession(ctx, q.SessionID, func(g *aggregates.ConceptGraph) error {
		threshold := g.Config().ClusterWeightThreshold
		if q.Threshold != nil {
			threshold = *q.Threshold
		}
		result.Threshold = threshold
		for _, cluster := range g.Clusters(threshold) {
			ids := make([]string, len(cluster))
			for i, id := range cluster {
				ids[i] = id.String()
			}
			result.Clusters = append(result.Clusters, ids)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CentralityHandler handles CentralityQuery
type CentralityHandler struct {
	sessions ports.SessionRepository
}

// NewCentralityHandler creates a centrality query handler
func NewCentralityHandler(sessions ports.SessionRepository) *CentralityHandler {
	return &CentralityHandler{sessions: sessions}
}

// Handle returns the approximate betweenness of one concept
func (h *CentralityHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.CentralityQuery)
	if !ok {
		return nil, fmt.Errorf("invalid query type %T", query)
	}

	result := CentralityResult{SessionID: q.SessionID, ConceptID: q.ConceptID}
	err := h.sessions.WithSession(ctx, q.SessionID, func(g *aggregates.ConceptGraph) error {
		id, err := valueobjects.NewConceptIDFromString(q.ConceptID)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		score, err := g.Centrality(id)
		if err != nil {
			return err
		}
		result.Centrality = score
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PromptHandler handles PromptQuery
type PromptHandler struct {
	sessions ports.SessionRepository
	prompts  *services.PromptService
	logger   *zap.Logger
}

// NewPromptHandler creates a prompt query handler
func NewPromptHandler(sessions ports.SessionRepository, prompts *services.PromptService, logger *zap.Logger) *PromptHandler {
	return &PromptHandler{sessions: sessions, prompts: prompts, logger: logger}
}

// Handle assembles a creative prompt from the session graph
func (h *PromptHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.PromptQuery)
	if !ok {
		return nil, fmt.Errorf("invalid query type %T", query)
	}

	var prompt services.Prompt
	err := h.sessions.WithSession(ctx, q.SessionID, func(g *aggregates.ConceptGraph) error {
		prompt = h.prompts.BuildPrompt(g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prompt, nil
}

// CalibrateHandler handles CalibrateQuery
type CalibrateHandler struct {
	calibrator *services.Calibrator
}

// NewCalibrateHandler creates a calibrate query handler
func NewCalibrateHandler(calibrator *services.Calibrator) *CalibrateHandler {
	return &CalibrateHandler{calibrator: calibrator}
}

// Handle computes effective traversal parameters for the requested
// distance and temperature
func (h *CalibrateHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.CalibrateQuery)
	if !ok {
		return nil, fmt.Errorf("invalid query type %T", query)
	}
	return h.calibrator.Calibrate(q.Distance, q.Temperature), nil
}
