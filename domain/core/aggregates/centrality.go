package aggregates

import (
	"driftgraph/domain/core/valueobjects"
	pkgerrors "driftgraph/pkg/errors"
)

// Centrality approximates the betweenness centrality of a concept: the
// fraction of shortest paths between other concept pairs that pass
// through it, in [0,1]. Graphs at or below the configured exact limit
// are computed over every source (no approximation error); larger graphs
// sample a subset of sources and scale the sum by n/sampleSize. Scores
// are cached per concept until the next structural mutation.
//
// Graphs with fewer than 3 concepts have centrality 0 for every concept,
// since no intermediate position is possible.
func (g *ConceptGraph) Centrality(id valueobjects.ConceptID) (float64, error) {
	if _, exists := g.nodes[id]; !exists {
		return 0, pkgerrors.NewUnknownNodeError(id.String())
	}

	if score, ok := g.cache.centrality[id]; ok {
		return score, nil
	}

	score := g.computeBetweenness(id)
	g.cache.centrality[id] = score
	return score, nil
}

func (g *ConceptGraph) computeBetweenness(id valueobjects.ConceptID) float64 {
	n := len(g.nodes)
	if n < 3 {
		return 0
	}

	sources := g.order
	scale := 1.0
	if g.cfg.CentralitySamplingEnabled && n > g.cfg.CentralityExactLimit {
		k := g.cfg.CentralitySampleSize
		if k > n {
			k = n
		}
		perm := g.rand.Perm(n)
		sampled := make([]valueobjects.ConceptID, k)
		for i := 0; i < k; i++ {
			sampled[i] = g.order[perm[i]]
		}
		sources = sampled
		scale = float64(n) / float64(k)
	}

	total := 0.0
	for _, source := range sources {
		if source.Equals(id) {
			continue
		}

		dist, sigma, preds := g.singleSourceShortestPaths(source)

		distVia, reachable := dist[id]
		if !reachable {
			continue
		}

		// Paths from the via node to each target inside this source's
		// shortest-path DAG are shared across targets, so memoize per
		// source.
		memo := make(map[valueobjects.ConceptID]float64)

		for _, target := range g.order {
			if target.Equals(source) || target.Equals(id) {
				continue
			}
			distTarget, ok := dist[target]
			if !ok {
				continue
			}
			// The via node can only lie on a shortest path to targets
			// strictly farther from the source than itself.
			if distVia >= distTarget {
				continue
			}

			via := countPathsVia(id, target, distVia, dist, preds, memo)
			if via == 0 {
				continue
			}
			total += sigma[id] * via / sigma[target]
		}
	}

	total *= scale

	// Normalize by the maximum possible pair count for an intermediate
	// node in a directed graph, then fold to [0,1].
	denom := float64((n - 1) * (n - 2))
	score := 2 * total / denom
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// singleSourceShortestPaths runs one BFS from source, accumulating per
// reachable concept its hop distance, the number of distinct shortest
// paths reaching it, and the immediate predecessors lying on some
// shortest path. Parallel edges count as a single adjacency.
func (g *ConceptGraph) singleSourceShortestPaths(source valueobjects.ConceptID) (map[valueobjects.ConceptID]int, map[valueobjects.ConceptID]float64, map[valueobjects.ConceptID][]valueobjects.ConceptID) {
	dist := map[valueobjects.ConceptID]int{source: 0}
	sigma := map[valueobjects.ConceptID]float64{source: 1}
	preds := make(map[valueobjects.ConceptID][]valueobjects.ConceptID)

	queue := []valueobjects.ConceptID{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		seen := make(map[valueobjects.ConceptID]bool)
		for _, edge := range g.outEdges[current] {
			next := edge.TargetID
			if seen[next] {
				continue
			}
			seen[next] = true

			if _, discovered := dist[next]; !discovered {
				dist[next] = dist[current] + 1
				queue = append(queue, next)
			}
			if dist[next] == dist[current]+1 {
				sigma[next] += sigma[current]
				preds[next] = append(preds[next], current)
			}
		}
	}

	return dist, sigma, preds
}

// countPathsVia counts the shortest paths from via to target inside the
// shortest-path DAG, walking predecessor sets backwards. The recursion
// only descends through strictly decreasing distance layers, so its
// depth is bounded by the graph diameter.
func countPathsVia(via, target valueobjects.ConceptID, distVia int, dist map[valueobjects.ConceptID]int, preds map[valueobjects.ConceptID][]valueobjects.ConceptID, memo map[valueobjects.ConceptID]float64) float64 {
	if target.Equals(via) {
		return 1
	}
	if dist[target] <= distVia {
		return 0
	}
	if cached, ok := memo[target]; ok {
		return cached
	}

	sum := 0.0
	for _, pred := range preds[target] {
		sum += countPathsVia(via, pred, distVia, dist, preds, memo)
	}
	memo[target] = sum
	return sum
}
