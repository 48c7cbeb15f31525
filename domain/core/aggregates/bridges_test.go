package aggregates_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftgraph/domain/config"
	"driftgraph/domain/core/aggregates"
	"driftgraph/domain/core/entities"
)

func addConceptWithAttrs(t *testing.T, g *aggregates.ConceptGraph, id string, attrs entities.ConceptAttrs) {
	t.Helper()
	c, err := entities.NewConcept(mustID(t, id), id, attrs)
	require.NoError(t, err)
	require.NoError(t, g.AddConcept(c))
}

func TestBridgeNodes(t *testing.T) {
	t.Run("empty graph yields empty list", func(t *testing.T) {
		g, _ := newTestGraph(t)
		assert.Empty(t, g.BridgeNodes())
	})

	t.Run("concept spanning two clusters is a bridge", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")
		c := addConcept(t, g, "c")
		d := addConcept(t, g, "d")
		x := addConcept(t, g, "x")

		link(t, g, a, b, 0.9)
		link(t, g, c, d, 0.9)
		link(t, g, x, b, 0.9)
		link(t, g, x, d, 0.9)

		bridges := g.BridgeNodes()
		require.Len(t, bridges, 1)
		assert.Equal(t, x, bridges[0].ID)
		assert.Len(t, bridges[0].Clusters, 2)
	})

	t.Run("single cluster reach is not a bridge", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")
		c := addConcept(t, g, "c")

		link(t, g, a, b, 0.9)
		link(t, g, a, c, 0.9)

		// b and c are pulled into a's cluster, so a reaches only its own
		assert.Empty(t, g.BridgeNodes())
	})

	t.Run("ranked by centrality descending", func(t *testing.T) {
		g, _ := newTestGraph(t)

		// Two separate weight-qualified clusters
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")
		c := addConcept(t, g, "c")
		d := addConcept(t, g, "d")
		link(t, g, a, b, 0.9)
		link(t, g, c, d, 0.9)

		// hub sits on many shortest paths; spoke on none
		hub := addConcept(t, g, "hub")
		spoke := addConcept(t, g, "spoke")
		link(t, g, hub, b, 0.2)
		link(t, g, hub, d, 0.2)
		link(t, g, spoke, b, 0.2)
		link(t, g, spoke, d, 0.2)
		link(t, g, a, hub, 0.2)
		link(t, g, c, hub, 0.2)

		bridges := g.BridgeNodes()
		require.NotEmpty(t, bridges)
		for i := 1; i < len(bridges); i++ {
			assert.GreaterOrEqual(t, bridges[i-1].Centrality, bridges[i].Centrality)
		}
	})
}

func TestStructuralGaps(t *testing.T) {
	t.Run("directly connected pairs excluded either direction", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")
		link(t, g, b, a, 0.5)

		assert.Empty(t, g.StructuralGaps())
	})

	t.Run("shared source label is a gap reason", func(t *testing.T) {
		g, _ := newTestGraph(t)
		addConceptWithAttrs(t, g, "a", entities.ConceptAttrs{Source: "lexicon"})
		addConceptWithAttrs(t, g, "b", entities.ConceptAttrs{Source: "lexicon"})

		gaps := g.StructuralGaps()
		require.Len(t, gaps, 1)
		assert.Contains(t, gaps[0].Reason, "lexicon")
	})

	t.Run("close drift distances are a gap reason", func(t *testing.T) {
		g, _ := newTestGraph(t)
		near, far := 0.50, 0.55
		wayOff := 0.95
		addConceptWithAttrs(t, g, "a", entities.ConceptAttrs{DriftDistance: &near, Source: "s1"})
		addConceptWithAttrs(t, g, "b", entities.ConceptAttrs{DriftDistance: &far, Source: "s2"})
		addConceptWithAttrs(t, g, "c", entities.ConceptAttrs{DriftDistance: &wayOff, Source: "s3"})

		gaps := g.StructuralGaps()
		require.Len(t, gaps, 1)
		assert.Equal(t, "a", gaps[0].A.String())
		assert.Equal(t, "b", gaps[0].B.String())
		assert.Contains(t, gaps[0].Reason, "drift distances")
	})

	t.Run("missing drift distance counts as zero", func(t *testing.T) {
		g, _ := newTestGraph(t)
		low := 0.1
		addConceptWithAttrs(t, g, "a", entities.ConceptAttrs{Source: "s1"})
		addConceptWithAttrs(t, g, "b", entities.ConceptAttrs{DriftDistance: &low, Source: "s2"})

		gaps := g.StructuralGaps()
		require.Len(t, gaps, 1)
	})

	t.Run("report capped at configured maximum", func(t *testing.T) {
		cfg := config.DefaultDomainConfig()
		cfg.MaxReportedGaps = 3
		g := aggregates.NewConceptGraph("test-user", cfg)

		// Every pair qualifies via zero drift distances
		for i := 0; i < 6; i++ {
			c, err := entities.NewConcept(mustID(t, fmt.Sprintf("n%d", i)), "concept", entities.ConceptAttrs{})
			require.NoError(t, err)
			require.NoError(t, g.AddConcept(c))
		}

		assert.Len(t, g.StructuralGaps(), 3)
	})
}

func TestDiversity(t *testing.T) {
	g, _ := newTestGraph(t)
	assert.Zero(t, g.Diversity(), "no edges means zero diversity")

	a := addConcept(t, g, "a")
	b := addConcept(t, g, "b")

	_, err := g.Link(a, b, entities.RelationMetaphorFor, 0.5, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/float64(entities.NumRelationTypes), g.Diversity(), 1e-9)

	// Same type again does not change the count
	_, err = g.Link(a, b, entities.RelationMetaphorFor, 0.7, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/float64(entities.NumRelationTypes), g.Diversity(), 1e-9)

	_, err = g.Link(b, a, entities.RelationContrastsWith, 0.5, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/float64(entities.NumRelationTypes), g.Diversity(), 1e-9)
}

func TestStructuralHoles(t *testing.T) {
	g, _ := newTestGraph(t)
	a := addConcept(t, g, "a")
	b := addConcept(t, g, "b")
	c := addConcept(t, g, "c")

	link(t, g, a, b, 0.5)
	link(t, g, a, c, 0.5)
	link(t, g, c, a, 0.5)

	holes := g.StructuralHoles()
	require.Len(t, holes, 1)
	assert.Equal(t, b, holes[0], "only a dead end with incoming edges is a hole")
}
