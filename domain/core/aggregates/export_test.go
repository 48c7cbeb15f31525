package aggregates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftgraph/domain/core/entities"
)

func TestExport(t *testing.T) {
	t.Run("empty session", func(t *testing.T) {
		g, _ := newTestGraph(t)
		snap := g.Export()

		assert.Equal(t, g.ID().String(), snap.SessionID)
		assert.Empty(t, snap.Nodes)
		assert.Empty(t, snap.Edges)
		assert.Empty(t, snap.History)
		assert.Zero(t, snap.Metrics.NodeCount)
	})

	t.Run("full session", func(t *testing.T) {
		g, _ := newTestGraph(t)
		d := 0.4
		addConceptWithAttrs(t, g, "river", entities.ConceptAttrs{DriftDistance: &d, Source: "lexicon"})
		time := addConcept(t, g, "time")

		_, err := g.Link(mustID(t, "river"), time, entities.RelationMetaphorFor, 0.7, nil)
		require.NoError(t, err)
		require.NoError(t, g.Visit(time))

		snap := g.Export()

		require.Len(t, snap.Nodes, 2)
		assert.Equal(t, "river", snap.Nodes[0].ID)
		assert.Equal(t, "lexicon", snap.Nodes[0].Source)
		require.NotNil(t, snap.Nodes[0].DriftDistance)
		assert.Equal(t, d, *snap.Nodes[0].DriftDistance)
		assert.Nil(t, snap.Nodes[1].DriftDistance)

		require.Len(t, snap.Edges, 1)
		assert.Equal(t, "river", snap.Edges[0].Source)
		assert.Equal(t, "time", snap.Edges[0].Target)
		assert.Equal(t, "METAPHOR_FOR", snap.Edges[0].Relation)
		assert.Equal(t, 0.7, snap.Edges[0].Weight)

		require.Len(t, snap.History, 1)
		assert.Equal(t, "time", snap.History[0].ConceptID)

		assert.Equal(t, 2, snap.Metrics.NodeCount)
		assert.Equal(t, 1, snap.Metrics.EdgeCount)
		assert.Equal(t, 1, snap.Metrics.StructuralHoles)
		assert.InDelta(t, 1.0/float64(entities.NumRelationTypes), snap.Metrics.Diversity, 1e-9)
	})
}
