package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftgraph/application/ports"
	"driftgraph/application/services"
	"driftgraph/domain/config"
	"driftgraph/domain/core/valueobjects"
	apperrors "driftgraph/pkg/errors"
)

// stubProvider returns a fixed candidate set
type stubProvider struct {
	associations []ports.Association
	err          error
}

func (p *stubProvider) Associations(ctx context.Context, concept string) ([]ports.Association, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.associations, nil
}

func newDriftService(provider ports.AssociationProvider) *services.DriftService {
	cfg := config.DefaultDomainConfig()
	return services.NewDriftService(
		provider,
		services.NewCalibrator(cfg),
		services.NewNoveltyService(cfg, nil),
		nil,
	)
}

func TestDriftStep(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultDomainConfig()

	t.Run("advances with an in-band candidate", func(t *testing.T) {
		provider := &stubProvider{associations: []ports.Association{
			{Concept: "Slow Rivers", Distance: 0.5, Reason: "is a metaphor for", Domain: "nature"},
			{Concept: "too far", Distance: 0.95, Reason: "contrasts with", Domain: "abstraction"},
		}}
		svc := newDriftService(provider)

		g, _ := newSessionGraph(t, cfg)
		from := addNode(t, g, "time")

		// Cold temperature keeps selection deterministic
		result, err := svc.Step(ctx, g, from, 0.5, 0.1)
		require.NoError(t, err)

		assert.Equal(t, services.OutcomeAdvanced, result.Outcome)
		assert.Equal(t, "time", result.From)
		assert.Equal(t, "slow-rivers", result.To, "concept strings are slugified into node ids")
		assert.Equal(t, "METAPHOR_FOR", result.Relation)
		assert.Equal(t, 0.5, result.Distance)

		// The step leaves a node, an edge, and a visit behind
		assert.Equal(t, 2, g.NodeCount())
		assert.Equal(t, 1, g.EdgeCount())
		require.Len(t, g.History(), 1)
		assert.Equal(t, "slow-rivers", g.History()[0].ConceptID.String())

		edges := g.EdgesFrom(from)
		require.Len(t, edges, 1)
		assert.InDelta(t, 0.5, edges[0].Weight, 1e-9, "edge weight is the inverted distance")
	})

	t.Run("no provider candidates is a reported outcome, not an error", func(t *testing.T) {
		svc := newDriftService(&stubProvider{})
		g, _ := newSessionGraph(t, cfg)
		from := addNode(t, g, "time")

		result, err := svc.Step(ctx, g, from, 0.5, 0.5)
		require.NoError(t, err)
		assert.Equal(t, services.OutcomeNoCandidates, result.Outcome)
		assert.NotEmpty(t, result.Reason)
		assert.Equal(t, 1, g.NodeCount(), "graph untouched")
	})

	t.Run("out-of-band candidates widen to the full set", func(t *testing.T) {
		provider := &stubProvider{associations: []ports.Association{
			{Concept: "distant", Distance: 0.99, Reason: "reminds of"},
		}}
		svc := newDriftService(provider)
		g, _ := newSessionGraph(t, cfg)
		from := addNode(t, g, "time")

		result, err := svc.Step(ctx, g, from, 0.2, 0.1)
		require.NoError(t, err)
		assert.Equal(t, services.OutcomeAdvanced, result.Outcome)
		assert.Equal(t, "distant", result.To)
	})

	t.Run("unknown starting concept rejected", func(t *testing.T) {
		svc := newDriftService(&stubProvider{})
		g, _ := newSessionGraph(t, cfg)
		addNode(t, g, "time")

		ghost, err := valueobjects.NewConceptIDFromString("ghost")
		require.NoError(t, err)
		_, err = svc.Step(ctx, g, ghost, 0.5, 0.5)
		assert.True(t, apperrors.IsUnknownNode(err))
	})

	t.Run("provider failure is wrapped", func(t *testing.T) {
		svc := newDriftService(&stubProvider{err: errors.New("lexicon offline")})
		g, _ := newSessionGraph(t, cfg)
		from := addNode(t, g, "time")

		_, err := svc.Step(ctx, g, from, 0.5, 0.5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "association provider failed")
	})

	t.Run("revisiting an existing concept adds an edge, not a node", func(t *testing.T) {
		provider := &stubProvider{associations: []ports.Association{
			{Concept: "delta", Distance: 0.5, Reason: "contains"},
		}}
		svc := newDriftService(provider)
		g, _ := newSessionGraph(t, cfg)
		from := addNode(t, g, "river")
		addNode(t, g, "delta")

		result, err := svc.Step(ctx, g, from, 0.5, 0.1)
		require.NoError(t, err)
		assert.Equal(t, services.OutcomeAdvanced, result.Outcome)
		assert.Equal(t, 2, g.NodeCount())
		assert.Equal(t, 1, g.EdgeCount())
	})
}
