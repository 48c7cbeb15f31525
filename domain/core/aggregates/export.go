package aggregates

import "time"

// Snapshot is a read-only export of the session graph for visualization
// or logging. Building it has no side effects.
type Snapshot struct {
	SessionID string          `json:"sessionId"`
	Nodes     []SnapshotNode  `json:"nodes"`
	Edges     []SnapshotEdge  `json:"edges"`
	History   []SnapshotVisit `json:"history"`
	Metrics   SnapshotMetrics `json:"metrics"`
}

// SnapshotNode is the exported form of a concept
type SnapshotNode struct {
	ID             string                 `json:"id"`
	Content        string                 `json:"content"`
	CreatedAtMilli int64                  `json:"createdAtMilli"`
	DriftDistance  *float64               `json:"driftDistance,omitempty"`
	Source         string                 `json:"source,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// SnapshotEdge is the exported form of an edge
type SnapshotEdge struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Relation string  `json:"relation"`
	Weight   float64 `json:"weight"`
}

// SnapshotVisit is one exported traversal history entry
type SnapshotVisit struct {
	ConceptID string    `json:"conceptId"`
	At        time.Time `json:"at"`
}

// SnapshotMetrics summarizes the session graph
type SnapshotMetrics struct {
	NodeCount       int     `json:"nodeCount"`
	EdgeCount       int     `json:"edgeCount"`
	Diversity       float64 `json:"diversity"`
	StructuralHoles int     `json:"structuralHoles"`
}

// Export builds a snapshot of all nodes, edges, the traversal history,
// and summary metrics.
func (g *ConceptGraph) Export() Snapshot {
	nodes := make([]SnapshotNode, 0, len(g.order))
	for _, id := range g.order {
		c := g.nodes[id]
		node := SnapshotNode{
			ID:             c.ID().String(),
			Content:        c.Content(),
			CreatedAtMilli: c.CreationTimestampMilli(),
			Source:         c.Source(),
		}
		if d, ok := c.DriftDistance(); ok {
			node.DriftDistance = &d
		}
		if m := c.Metadata(); len(m) > 0 {
			node.Metadata = m
		}
		nodes = append(nodes, node)
	}

	edges := make([]SnapshotEdge, 0, len(g.edges))
	for _, e := range g.edges {
		edges = append(edges, SnapshotEdge{
			Source:   e.SourceID.String(),
			Target:   e.TargetID.String(),
			Relation: e.Type.String(),
			Weight:   e.Weight,
		})
	}

	history := make([]SnapshotVisit, 0, len(g.history))
	for _, v := range g.history {
		history = append(history, SnapshotVisit{ConceptID: v.ConceptID.String(), At: v.At})
	}

	return Snapshot{
		SessionID: g.id.String(),
		Nodes:     nodes,
		Edges:     edges,
		History:   history,
		Metrics: SnapshotMetrics{
			NodeCount:       len(g.nodes),
			EdgeCount:       len(g.edges),
			Diversity:       g.Diversity(),
			StructuralHoles: len(g.StructuralHoles()),
		},
	}
}
