package aggregates

import "driftgraph/domain/core/valueobjects"

// Clusters partitions all concepts into disjoint sets: two concepts land
// in the same set iff one is reachable from the other along outgoing
// edges with weight >= threshold. Reachability is deliberately
// one-directional: a concept reachable only via incoming edges, with no
// qualifying outgoing edges of its own, starts its own singleton cluster
// rather than joining. This mirrors the contains/causes semantics of the
// relation types and must not be "fixed" into bidirectional connectivity.
//
// The partition is memoized per threshold until the next structural
// mutation. Nodes are iterated in insertion order, so the result is
// deterministic for a given mutation history.
func (g *ConceptGraph) Clusters(threshold float64) [][]valueobjects.ConceptID {
	clusters := g.clustersAt(threshold)

	// Copy so callers cannot mutate the cached partition
	out := make([][]valueobjects.ConceptID, len(clusters))
	for i, cluster := range clusters {
		out[i] = make([]valueobjects.ConceptID, len(cluster))
		copy(out[i], cluster)
	}
	return out
}

// ClustersDefault partitions at the configured weight threshold
func (g *ConceptGraph) ClustersDefault() [][]valueobjects.ConceptID {
	return g.Clusters(g.cfg.ClusterWeightThreshold)
}

func (g *ConceptGraph) clustersAt(threshold float64) [][]valueobjects.ConceptID {
	if cached, ok := g.cache.clusters[threshold]; ok {
		return cached
	}

	visited := make(map[valueobjects.ConceptID]bool, len(g.nodes))
	var clusters [][]valueobjects.ConceptID

	for _, id := range g.order {
		if visited[id] {
			continue
		}
		clusters = append(clusters, g.collectCluster(id, threshold, visited))
	}

	g.cache.clusters[threshold] = clusters
	return clusters
}

// collectCluster depth-first traverses outgoing edges meeting the
// threshold, marking every reached concept into one cluster. Iterative
// stack rather than recursion: cluster chains can be as long as the
// whole graph.
func (g *ConceptGraph) collectCluster(start valueobjects.ConceptID, threshold float64, visited map[valueobjects.ConceptID]bool) []valueobjects.ConceptID {
	cluster := []valueobjects.ConceptID{}
	stack := []valueobjects.ConceptID{start}
	visited[start] = true

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cluster = append(cluster, current)

		for _, edge := range g.outEdges[current] {
			if edge.Weight < threshold || visited[edge.TargetID] {
				continue
			}
			visited[edge.TargetID] = true
			stack = append(stack, edge.TargetID)
		}
	}

	return cluster
}

// clusterMembership maps each concept id to the index of its cluster in
// the partition at the given threshold.
func (g *ConceptGraph) clusterMembership(threshold float64) map[valueobjects.ConceptID]int {
	if cached, ok := g.cache.membership[threshold]; ok {
		return cached
	}

	membership := make(map[valueobjects.ConceptID]int, len(g.nodes))
	for i, cluster := range g.clustersAt(threshold) {
		for _, id := range cluster {
			membership[id] = i
		}
	}

	g.cache.membership[threshold] = membership
	return membership
}
