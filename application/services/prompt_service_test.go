package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftgraph/application/services"
	"driftgraph/domain/config"
	"driftgraph/domain/core/entities"
)

func TestBuildPrompt(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	svc := services.NewPromptService(nil)

	t.Run("empty graph gets a starter prompt", func(t *testing.T) {
		g, _ := newSessionGraph(t, cfg)
		prompt := svc.BuildPrompt(g)

		assert.NotEmpty(t, prompt.Text)
		assert.Equal(t, "graph too small", prompt.Reason)
		assert.Zero(t, prompt.BridgeCount)
	})

	t.Run("recent visits appear in the prompt", func(t *testing.T) {
		g, _ := newSessionGraph(t, cfg)
		river := addNode(t, g, "river")
		require.NoError(t, g.Visit(river))

		prompt := svc.BuildPrompt(g)
		assert.Contains(t, prompt.Text, "river")
		assert.Empty(t, prompt.Reason)
	})

	t.Run("monotone relations prompt for variety", func(t *testing.T) {
		g, _ := newSessionGraph(t, cfg)
		a := addNode(t, g, "a")
		b := addNode(t, g, "b")
		_, err := g.Link(a, b, entities.RelationRemindsOf, 0.9, nil)
		require.NoError(t, err)

		prompt := svc.BuildPrompt(g)
		assert.Contains(t, prompt.Text, "monotone")
		assert.InDelta(t, 1.0/float64(entities.NumRelationTypes), prompt.Diversity, 1e-9)
	})

	t.Run("gap pairs are surfaced", func(t *testing.T) {
		g, _ := newSessionGraph(t, cfg)
		addNode(t, g, "mirror")
		addNode(t, g, "echo")

		prompt := svc.BuildPrompt(g)
		assert.Greater(t, prompt.GapCount, 0)
		assert.Contains(t, prompt.Text, "mirror")
		assert.Contains(t, prompt.Text, "echo")
	})
}
