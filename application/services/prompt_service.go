package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"driftgraph/domain/core/aggregates"
)

// Prompt is a human-readable creative prompt assembled from the session
// graph's structure.
type Prompt struct {
	Text        string  `json:"text"`
	Diversity   float64 `json:"diversity"`
	BridgeCount int     `json:"bridgeCount"`
	GapCount    int     `json:"gapCount"`
	Reason      string  `json:"reason,omitempty"`
}

// PromptService builds creative prompts for the downstream language
// model from bridges, structural gaps, relation diversity, and recent
// traversal history. It only reads the graph.
type PromptService struct {
	logger *zap.Logger
}

// NewPromptService creates a prompt service
func NewPromptService(logger *zap.Logger) *PromptService {
	return &PromptService{logger: logger}
}

// BuildPrompt assembles a prompt from the session graph. Degenerate
// graphs produce a starter prompt with a diagnostic reason rather than
// an error.
func (s *PromptService) BuildPrompt(g *aggregates.ConceptGraph) Prompt {
	if g.NodeCount() == 0 {
		return Prompt{
			Text:   "The canvas is blank. Name a concept that has been on your mind and we will wander outward from it.",
			Reason: "graph too small",
		}
	}

	bridges := g.BridgeNodes()
	gaps := g.StructuralGaps()
	diversity := g.Diversity()

	var b strings.Builder

	if recent := g.RecentVisits(3); len(recent) > 0 {
		names := make([]string, 0, len(recent))
		for _, v := range recent {
			if c, err := g.GetConcept(v.ConceptID); err == nil {
				names = append(names, c.Content())
			}
		}
		fmt.Fprintf(&b, "You have been circling %s. ", strings.Join(names, ", "))
	}

	if len(bridges) > 0 {
		if c, err := g.GetConcept(bridges[0].ID); err == nil {
			fmt.Fprintf(&b, "%q sits between %d clusters of your map. What does it carry across? ",
				c.Content(), len(bridges[0].Clusters))
		}
	}

	if len(gaps) > 0 {
		a, errA := g.GetConcept(gaps[0].A)
		c, errB := g.GetConcept(gaps[0].B)
		if errA == nil && errB == nil {
			fmt.Fprintf(&b, "%q and %q are not yet connected (%s). Imagine the missing link. ",
				a.Content(), c.Content(), gaps[0].Reason)
		}
	}

	switch {
	case diversity < 0.25:
		b.WriteString("Your relations are monotone; try a contrast or a metaphor.")
	case diversity > 0.75:
		b.WriteString("The web is rich; follow whichever thread pulls hardest.")
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		text = "Pick any concept on your map and ask what it refuses to be."
	}

	if s.logger != nil {
		s.logger.Debug("built prompt",
			zap.String("sessionID", g.ID().String()),
			zap.Int("bridges", len(bridges)),
			zap.Int("gaps", len(gaps)),
			zap.Float64("diversity", diversity),
		)
	}

	return Prompt{
		Text:        text,
		Diversity:   diversity,
		BridgeCount: len(bridges),
		GapCount:    len(gaps),
	}
}
