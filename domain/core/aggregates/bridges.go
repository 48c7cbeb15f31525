package aggregates

import (
	"fmt"
	"math"
	"sort"

	"driftgraph/domain/core/entities"
	"driftgraph/domain/core/valueobjects"
)

// BridgeNode is a concept whose outgoing edges reach two or more
// distinct clusters.
type BridgeNode struct {
	ID         valueobjects.ConceptID `json:"id"`
	Centrality float64                `json:"centrality"`
	Clusters   []int                  `json:"clusters"`
}

// StructuralGap is a pair of concepts that look like they should be
// connected but are not.
type StructuralGap struct {
	A      valueobjects.ConceptID `json:"a"`
	B      valueobjects.ConceptID `json:"b"`
	Reason string                 `json:"reason"`
}

// BridgeNodes finds every concept bridging multiple clusters at the
// configured weight threshold, ranked by centrality descending. Ties
// keep insertion order. The ranked list is cached until the next
// structural mutation; an empty graph yields an empty list.
func (g *ConceptGraph) BridgeNodes() []BridgeNode {
	if !g.cache.bridgesBuilt {
		g.cache.bridges = g.findBridgeNodes()
		g.cache.bridgesBuilt = true
	}

	out := make([]BridgeNode, len(g.cache.bridges))
	copy(out, g.cache.bridges)
	return out
}

func (g *ConceptGraph) findBridgeNodes() []BridgeNode {
	membership := g.clusterMembership(g.cfg.ClusterWeightThreshold)

	var bridges []BridgeNode
	for _, id := range g.order {
		reached := make(map[int]bool)
		for _, edge := range g.outEdges[id] {
			reached[membership[edge.TargetID]] = true
		}
		if len(reached) < 2 {
			continue
		}

		clusters := make([]int, 0, len(reached))
		for c := range reached {
			clusters = append(clusters, c)
		}
		sort.Ints(clusters)

		score, err := g.Centrality(id)
		if err != nil {
			continue
		}
		bridges = append(bridges, BridgeNode{ID: id, Centrality: score, Clusters: clusters})
	}

	sort.SliceStable(bridges, func(i, j int) bool {
		return bridges[i].Centrality > bridges[j].Centrality
	})

	return bridges
}

// StructuralGaps proposes unconnected concept pairs that share the same
// non-empty source label or whose drift distances differ by less than
// the configured tolerance (a missing drift distance counts as 0 for
// this comparison only). At most the configured number of pairs is
// returned, in iteration order. The cap is a presentation limit, not a
// ranking.
func (g *ConceptGraph) StructuralGaps() []StructuralGap {
	var gaps []StructuralGap

	for i := 0; i < len(g.order); i++ {
		for j := i + 1; j < len(g.order); j++ {
			a, b := g.order[i], g.order[j]
			if g.directlyConnected(a, b) {
				continue
			}

			reason, ok := g.gapReason(g.nodes[a], g.nodes[b])
			if !ok {
				continue
			}

			gaps = append(gaps, StructuralGap{A: a, B: b, Reason: reason})
			if len(gaps) >= g.cfg.MaxReportedGaps {
				return gaps
			}
		}
	}

	return gaps
}

func (g *ConceptGraph) gapReason(a, b *entities.Concept) (string, bool) {
	if a.Source() != "" && a.Source() == b.Source() {
		return fmt.Sprintf("both drawn from source %q", a.Source()), true
	}
	delta := math.Abs(a.DriftDistanceOrZero() - b.DriftDistanceOrZero())
	if delta < g.cfg.GapDriftTolerance {
		return fmt.Sprintf("drift distances within %.2f of each other", g.cfg.GapDriftTolerance), true
	}
	return "", false
}

// directlyConnected reports whether any edge links the pair in either
// direction.
func (g *ConceptGraph) directlyConnected(a, b valueobjects.ConceptID) bool {
	for _, edge := range g.outEdges[a] {
		if edge.TargetID.Equals(b) {
			return true
		}
	}
	for _, edge := range g.outEdges[b] {
		if edge.TargetID.Equals(a) {
			return true
		}
	}
	return false
}

// Diversity returns the count of distinct relation types present divided
// by the total possible relation types, in [0,1].
func (g *ConceptGraph) Diversity() float64 {
	if len(g.edges) == 0 {
		return 0
	}
	present := make(map[entities.RelationType]bool)
	for _, edge := range g.edges {
		present[edge.Type] = true
	}
	return float64(len(present)) / float64(entities.NumRelationTypes)
}

// StructuralHoles returns the concepts with incoming edges but no
// outgoing edges (traversal dead ends), in insertion order.
func (g *ConceptGraph) StructuralHoles() []valueobjects.ConceptID {
	var holes []valueobjects.ConceptID
	for _, id := range g.order {
		if len(g.inEdges[id]) > 0 && len(g.outEdges[id]) == 0 {
			holes = append(holes, id)
		}
	}
	return holes
}
