package aggregates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftgraph/domain/config"
	"driftgraph/domain/core/aggregates"
	"driftgraph/domain/core/entities"
	"driftgraph/domain/core/valueobjects"
	apperrors "driftgraph/pkg/errors"
)

// fakeClock is a hand-advanced session clock
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestGraph(t *testing.T) (*aggregates.ConceptGraph, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	return aggregates.NewConceptGraphWithClock("test-user", config.DefaultDomainConfig(), clock.Now), clock
}

func mustID(t *testing.T, s string) valueobjects.ConceptID {
	t.Helper()
	id, err := valueobjects.NewConceptIDFromString(s)
	require.NoError(t, err)
	return id
}

func addConcept(t *testing.T, g *aggregates.ConceptGraph, id string) valueobjects.ConceptID {
	t.Helper()
	cid := mustID(t, id)
	c, err := entities.NewConcept(cid, id, entities.ConceptAttrs{})
	require.NoError(t, err)
	require.NoError(t, g.AddConcept(c))
	return cid
}

func link(t *testing.T, g *aggregates.ConceptGraph, from, to valueobjects.ConceptID, weight float64) {
	t.Helper()
	_, err := g.Link(from, to, entities.RelationRemindsOf, weight, nil)
	require.NoError(t, err)
}

func TestAddConcept(t *testing.T) {
	t.Run("inserts and assigns creation time", func(t *testing.T) {
		g, clock := newTestGraph(t)
		id := addConcept(t, g, "river")

		c, err := g.GetConcept(id)
		require.NoError(t, err)
		assert.Equal(t, "river", c.Content())
		assert.Equal(t, clock.Now(), c.CreatedAt())
		assert.Equal(t, 1, g.NodeCount())
	})

	t.Run("duplicate id leaves store unchanged", func(t *testing.T) {
		g, _ := newTestGraph(t)
		id := addConcept(t, g, "river")

		dup, err := entities.NewConcept(id, "a different river", entities.ConceptAttrs{Source: "elsewhere"})
		require.NoError(t, err)
		err = g.AddConcept(dup)

		require.Error(t, err)
		assert.True(t, apperrors.IsDuplicateNode(err))
		assert.Equal(t, 1, g.NodeCount())

		kept, err := g.GetConcept(id)
		require.NoError(t, err)
		assert.Equal(t, "river", kept.Content(), "original concept must survive the rejected insert")
	})

	t.Run("nil concept rejected", func(t *testing.T) {
		g, _ := newTestGraph(t)
		err := g.AddConcept(nil)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("node cap enforced", func(t *testing.T) {
		cfg := config.DefaultDomainConfig()
		cfg.MaxNodesPerSession = 2
		g := aggregates.NewConceptGraph("test-user", cfg)

		for _, name := range []string{"a", "b"} {
			c, err := entities.NewConcept(mustID(t, name), name, entities.ConceptAttrs{})
			require.NoError(t, err)
			require.NoError(t, g.AddConcept(c))
		}

		c, err := entities.NewConcept(mustID(t, "c"), "c", entities.ConceptAttrs{})
		require.NoError(t, err)
		err = g.AddConcept(c)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestLink(t *testing.T) {
	t.Run("edge recorded in both adjacency indexes", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")

		edge, err := g.Link(a, b, entities.RelationCauses, 0.8, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, edge.ID)

		from := g.EdgesFrom(a)
		require.Len(t, from, 1)
		assert.Equal(t, b, from[0].TargetID)

		to := g.EdgesTo(b)
		require.Len(t, to, 1)
		assert.Equal(t, a, to[0].SourceID)

		assert.Empty(t, g.EdgesFrom(b))
		assert.Empty(t, g.EdgesTo(a))
	})

	t.Run("unknown endpoints rejected", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		ghost := mustID(t, "ghost")

		_, err := g.Link(a, ghost, entities.RelationCauses, 0.5, nil)
		assert.True(t, apperrors.IsUnknownNode(err))

		_, err = g.Link(ghost, a, entities.RelationCauses, 0.5, nil)
		assert.True(t, apperrors.IsUnknownNode(err))

		assert.Equal(t, 0, g.EdgeCount())
	})

	t.Run("invalid relation rejected", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")

		_, err := g.Link(a, b, entities.RelationType("FRIENDS_WITH"), 0.5, nil)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("parallel edges of the same type allowed", func(t *testing.T) {
		g, _ := newTestGraph(t)
		a := addConcept(t, g, "a")
		b := addConcept(t, g, "b")

		link(t, g, a, b, 0.5)
		link(t, g, a, b, 0.9)

		assert.Equal(t, 2, g.EdgeCount())
		assert.Len(t, g.EdgesFrom(a), 2)
	})
}

func TestVisitHistory(t *testing.T) {
	g, clock := newTestGraph(t)
	a := addConcept(t, g, "a")
	b := addConcept(t, g, "b")

	require.NoError(t, g.Visit(a))
	clock.Advance(time.Minute)
	require.NoError(t, g.Visit(b))
	clock.Advance(time.Minute)
	require.NoError(t, g.Visit(a))

	history := g.History()
	require.Len(t, history, 3)
	assert.Equal(t, a, history[0].ConceptID)
	assert.Equal(t, b, history[1].ConceptID)
	assert.Equal(t, a, history[2].ConceptID)

	last, ok := g.LastVisit(a)
	require.True(t, ok)
	assert.Equal(t, history[2].At, last, "LastVisit must return the most recent entry")

	recent := g.RecentVisits(2)
	require.Len(t, recent, 2)
	assert.Equal(t, b, recent[0].ConceptID)
	assert.Equal(t, a, recent[1].ConceptID)

	err := g.Visit(mustID(t, "ghost"))
	assert.True(t, apperrors.IsUnknownNode(err))
	assert.Len(t, g.History(), 3)
}

func TestShortestPathLength(t *testing.T) {
	g, _ := newTestGraph(t)
	a := addConcept(t, g, "a")
	b := addConcept(t, g, "b")
	c := addConcept(t, g, "c")
	d := addConcept(t, g, "d")

	link(t, g, a, b, 0.9)
	link(t, g, b, c, 0.9)

	t.Run("self path is zero", func(t *testing.T) {
		hops, ok := g.ShortestPathLength(a, a)
		require.True(t, ok)
		assert.Equal(t, 0, hops)
	})

	t.Run("follows directed edges", func(t *testing.T) {
		hops, ok := g.ShortestPathLength(a, c)
		require.True(t, ok)
		assert.Equal(t, 2, hops)

		// No reverse path
		_, ok = g.ShortestPathLength(c, a)
		assert.False(t, ok)
	})

	t.Run("unreachable and unknown nodes", func(t *testing.T) {
		_, ok := g.ShortestPathLength(a, d)
		assert.False(t, ok)

		_, ok = g.ShortestPathLength(a, mustID(t, "ghost"))
		assert.False(t, ok)
	})

	t.Run("weight does not shorten paths", func(t *testing.T) {
		// A low-weight direct edge still counts as one hop
		link(t, g, a, c, 0.01)
		hops, ok := g.ShortestPathLength(a, c)
		require.True(t, ok)
		assert.Equal(t, 1, hops)
	})
}

func TestCacheInvalidation(t *testing.T) {
	g, _ := newTestGraph(t)
	a := addConcept(t, g, "a")
	b := addConcept(t, g, "b")

	before := g.Clusters(0.5)
	assert.Len(t, before, 2, "unlinked concepts form singleton clusters")

	// Structural mutation must invalidate the memoized partition
	link(t, g, a, b, 0.9)
	after := g.Clusters(0.5)
	assert.Len(t, after, 1, "query after mutation must reflect the new edge")

	// Visiting is not structural and must not disturb cached results
	bridgesBefore := g.BridgeNodes()
	require.NoError(t, g.Visit(a))
	assert.Equal(t, bridgesBefore, g.BridgeNodes())
}

func TestEvents(t *testing.T) {
	g, _ := newTestGraph(t)
	a := addConcept(t, g, "a")
	b := addConcept(t, g, "b")
	link(t, g, a, b, 0.5)
	require.NoError(t, g.Visit(b))

	evts := g.UncommittedEvents()
	require.Len(t, evts, 4)
	assert.Equal(t, "graph.concept_added", evts[0].EventType())
	assert.Equal(t, "graph.concepts_linked", evts[2].EventType())
	assert.Equal(t, "graph.concept_visited", evts[3].EventType())
	for _, e := range evts {
		assert.Equal(t, g.ID().String(), e.AggregateID())
	}

	g.MarkEventsAsCommitted()
	assert.Empty(t, g.UncommittedEvents())
}
