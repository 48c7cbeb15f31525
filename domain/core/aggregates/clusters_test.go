package aggregates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftgraph/domain/core/valueobjects"
)

func clusterStrings(clusters [][]valueobjects.ConceptID) [][]string {
	out := make([][]string, len(clusters))
	for i, cluster := range clusters {
		out[i] = make([]string, len(cluster))
		for j, id := range cluster {
			out[i][j] = id.String()
		}
	}
	return out
}

func TestClusters(t *testing.T) {
	t.Run("empty graph has no clusters", func(t *testing.T) {
		g, _ := newTestGraph(t)
		assert.Empty(t, g.Clusters(0.5))
	})

	t.Run("weight threshold splits components", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")
		c := addConcept(t, g, "c")

		link(t, g, a, b, 0.9)
		link(t, g, b, c, 0.2)

		clusters := g.Clusters(0.5)
		assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, clusterStrings(clusters))

		// At a permissive threshold the weak edge joins the chain
		clusters = g.Clusters(0.1)
		require.Len(t, clusters, 1)
		assert.Len(t, clusters[0], 3)
	})

	t.Run("reachability is one-directional", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")

		// Only b->a qualifies. Iteration starts at a, which has no
		// qualifying outgoing edge, so a stays a singleton even though b
		// reaches it.
		link(t, g, b, a, 0.9)

		clusters := g.Clusters(0.5)
		assert.Equal(t, [][]string{{"a"}, {"b"}}, clusterStrings(clusters))
	})

	t.Run("chain collapses into one cluster", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")
		c := addConcept(t, g, "c")

		link(t, g, a, b, 0.7)
		link(t, g, b, c, 0.7)

		clusters := g.Clusters(0.5)
		require.Len(t, clusters, 1)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, clusterStrings(clusters)[0])
	})

	t.Run("repeated queries return equal partitions", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")
		link(t, g, a, b, 0.8)

		first := g.Clusters(0.5)
		second := g.Clusters(0.5)
		assert.Equal(t, first, second)

		// Mutating the returned slice must not corrupt the cache
		first[0][0] = mustID(t, "mutated")
		third := g.Clusters(0.5)
		assert.Equal(t, second, third)
	})
}

func TestClustersDefault(t *testing.T) {
	g, _ := newTestGraph(t)
	a := addConcept(t, g, "a")
	b := addConcept(t, g, "b")
	link(t, g, a, b, 0.5)

	// Default threshold is 0.5 inclusive, so the edge qualifies
	clusters := g.ClustersDefault()
	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0], 2)
}
