package associations

import (
	"context"
	"hash/fnv"
	"strings"

	"go.uber.org/zap"

	"driftgraph/application/ports"
)

// lexiconEntry is one curated association in the built-in lexicon
type lexiconEntry struct {
	concept string
	reason  string
	domain  string
}

// LexiconProvider is an in-process association provider backed by a
// small curated lexicon. For concepts outside the lexicon it derives
// associations from word fragments, so every concept yields candidates
// and the engine never dead-ends. Distances are hash-derived and stable
// across runs.
type LexiconProvider struct {
	lexicon map[string][]lexiconEntry
	logger  *zap.Logger
}

// NewLexiconProvider creates a provider with the built-in lexicon
func NewLexiconProvider(logger *zap.Logger) *LexiconProvider {
	return &LexiconProvider{lexicon: builtinLexicon(), logger: logger}
}

// Associations returns traversal candidates for a concept
func (p *LexiconProvider) Associations(ctx context.Context, concept string) ([]ports.Association, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := strings.ToLower(strings.TrimSpace(concept))
	entries, ok := p.lexicon[key]
	if !ok {
		entries = p.derive(key)
	}

	out := make([]ports.Association, 0, len(entries))
	for _, e := range entries {
		out = append(out, ports.Association{
			Concept:  e.concept,
			Distance: stableDistance(key, e.concept),
			Reason:   e.reason,
			Domain:   e.domain,
		})
	}

	if p.logger != nil {
		p.logger.Debug("lexicon lookup",
			zap.String("concept", key),
			zap.Bool("curated", ok),
			zap.Int("candidates", len(out)),
		)
	}
	return out, nil
}

// derive produces fallback candidates for a concept the lexicon does not
// know. The generic prompts span several domains so exploratory jumps
// remain possible.
func (p *LexiconProvider) derive(concept string) []lexiconEntry {
	return []lexiconEntry{
		{concept: "the opposite of " + concept, reason: "contrasts with", domain: "abstraction"},
		{concept: concept + " as a ritual", reason: "is a metaphor for", domain: "culture"},
		{concept: "the texture of " + concept, reason: "reminds of", domain: "senses"},
		{concept: "what " + concept + " becomes", reason: "transforms into", domain: "process"},
		{concept: "a machine for " + concept, reason: "specializes", domain: "technology"},
	}
}

// stableDistance maps a concept pair to a deterministic distance in
// (0,1). The same pair always gets the same distance.
func stableDistance(from, to string) float64 {
	h := fnv.New32a()
	h.Write([]byte(from))
	h.Write([]byte{0})
	h.Write([]byte(to))
	// keep away from the exact endpoints
	return 0.05 + 0.9*float64(h.Sum32()%1000)/1000.0
}

func builtinLexicon() map[string][]lexiconEntry {
	return map[string][]lexiconEntry{
		"river": {
			{concept: "time", reason: "is a metaphor for", domain: "philosophy"},
			{concept: "delta", reason: "contains", domain: "geography"},
			{concept: "erosion", reason: "causes", domain: "geology"},
			{concept: "vein", reason: "reminds of", domain: "anatomy"},
			{concept: "conversation", reason: "is a metaphor for", domain: "language"},
		},
		"time": {
			{concept: "river", reason: "is a metaphor for", domain: "nature"},
			{concept: "entropy", reason: "causes", domain: "physics"},
			{concept: "memory", reason: "contains", domain: "mind"},
			{concept: "interest", reason: "transforms into", domain: "finance"},
			{concept: "stillness", reason: "contrasts with", domain: "philosophy"},
		},
		"memory": {
			{concept: "archive", reason: "is a metaphor for", domain: "institutions"},
			{concept: "forgetting", reason: "contrasts with", domain: "mind"},
			{concept: "photograph", reason: "reminds of", domain: "art"},
			{concept: "sediment", reason: "is a metaphor for", domain: "geology"},
			{concept: "cache", reason: "specializes", domain: "technology"},
		},
		"bridge": {
			{concept: "translation", reason: "is a metaphor for", domain: "language"},
			{concept: "synapse", reason: "reminds of", domain: "anatomy"},
			{concept: "wall", reason: "contrasts with", domain: "architecture"},
			{concept: "handshake", reason: "is a metaphor for", domain: "culture"},
			{concept: "arch", reason: "contains", domain: "architecture"},
		},
		"mirror": {
			{concept: "echo", reason: "reminds of", domain: "sound"},
			{concept: "self", reason: "contains", domain: "mind"},
			{concept: "window", reason: "contrasts with", domain: "architecture"},
			{concept: "lake", reason: "is a metaphor for", domain: "nature"},
			{concept: "imitation", reason: "causes", domain: "culture"},
		},
		"seed": {
			{concept: "idea", reason: "is a metaphor for", domain: "mind"},
			{concept: "forest", reason: "transforms into", domain: "nature"},
			{concept: "archive", reason: "contrasts with", domain: "institutions"},
			{concept: "random number", reason: "specializes", domain: "technology"},
			{concept: "inheritance", reason: "reminds of", domain: "biology"},
		},
		"network": {
			{concept: "mycelium", reason: "reminds of", domain: "biology"},
			{concept: "city", reason: "is a metaphor for", domain: "architecture"},
			{concept: "gossip", reason: "contains", domain: "culture"},
			{concept: "hermit", reason: "contrasts with", domain: "mind"},
			{concept: "constellation", reason: "is a metaphor for", domain: "astronomy"},
		},
		"entropy": {
			{concept: "tidying", reason: "contrasts with", domain: "culture"},
			{concept: "rust", reason: "specializes", domain: "chemistry"},
			{concept: "forgetting", reason: "reminds of", domain: "mind"},
			{concept: "heat death", reason: "causes", domain: "physics"},
			{concept: "noise", reason: "synthesized from", domain: "sound"},
		},
	}
}
