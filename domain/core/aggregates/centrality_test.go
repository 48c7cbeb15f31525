package aggregates_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftgraph/domain/config"
	"driftgraph/domain/core/aggregates"
	apperrors "driftgraph/pkg/errors"
)

func TestCentrality(t *testing.T) {
	t.Run("fewer than three concepts yields zero", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")
		link(t, g, a, b, 0.9)

		for _, id := range []string{"a", "b"} {
			score, err := g.Centrality(mustID(t, id))
			require.NoError(t, err)
			assert.Zero(t, score)
		}
	})

	t.Run("unknown concept rejected", func(t *testing.T) {
		g, _ := newTestGraph(t)
		_, err := g.Centrality(mustID(t, "ghost"))
		assert.True(t, apperrors.IsUnknownNode(err))
	})

	t.Run("middle of a directed path carries all paths", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")
		c := addConcept(t, g, "c")
		link(t, g, a, b, 0.9)
		link(t, g, b, c, 0.9)

		mid, err := g.Centrality(b)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, mid, 1e-9)

		for _, end := range []string{"a", "c"} {
			score, err := g.Centrality(mustID(t, end))
			require.NoError(t, err)
			assert.Zero(t, score)
		}
	})

	t.Run("parallel routes split path counts", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")
		c := addConcept(t, g, "c")
		d := addConcept(t, g, "d")
		link(t, g, a, b, 0.9)
		link(t, g, a, c, 0.9)
		link(t, g, b, d, 0.9)
		link(t, g, c, d, 0.9)

		left, err := g.Centrality(b)
		require.NoError(t, err)
		right, err := g.Centrality(c)
		require.NoError(t, err)

		// Each middle node carries half of the single a->d pair:
		// 2 * 0.5 / ((4-1)*(4-2))
		assert.InDelta(t, 1.0/6.0, left, 1e-9)
		assert.Equal(t, left, right)
	})

	t.Run("parallel edges between a pair count once", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")
		c := addConcept(t, g, "c")
		link(t, g, a, b, 0.9)
		link(t, g, a, b, 0.3)
		link(t, g, b, c, 0.9)

		mid, err := g.Centrality(b)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, mid, 1e-9)
	})

	t.Run("scores stay within unit range", func(t *testing.T) {
		g, _ := newTestGraph(t)
		ids := make([]string, 0, 8)
		for i := 0; i < 8; i++ {
			name := fmt.Sprintf("n%d", i)
			addConcept(t, g, name)
			ids = append(ids, name)
		}
		for i := 0; i < 8; i++ {
			for j := 0; j < 8; j++ {
				if i != j && (i+j)%3 != 0 {
					link(t, g, mustID(t, ids[i]), mustID(t, ids[j]), 0.6)
				}
			}
		}

		for _, id := range ids {
			score, err := g.Centrality(mustID(t, id))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	})

	t.Run("cached until structural mutation", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")
		c := addConcept(t, g, "c")
		link(t, g, a, b, 0.9)
		link(t, g, b, c, 0.9)

		before, err := g.Centrality(b)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, before, 1e-9)

		// A bypass edge makes b no longer the sole carrier
		link(t, g, a, c, 0.9)
		after, err := g.Centrality(b)
		require.NoError(t, err)
		assert.Less(t, after, before)
	})
}

func TestCentralitySampling(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.CentralitySamplingEnabled = true
	cfg.CentralityExactLimit = 5
	cfg.CentralitySampleSize = 4
	g := aggregates.NewConceptGraph("test-user", cfg)

	// Star topology: hub relays every outer pair
	hub := addConcept(t, g, "hub")
	for i := 0; i < 9; i++ {
		outer := addConcept(t, g, fmt.Sprintf("outer%d", i))
		link(t, g, outer, hub, 0.9)
		link(t, g, hub, outer, 0.9)
	}

	score, err := g.Centrality(hub)
	require.NoError(t, err)
	assert.Greater(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}
