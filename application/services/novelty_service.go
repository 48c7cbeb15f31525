package services

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"driftgraph/application/ports"
	"driftgraph/domain/config"
	"driftgraph/domain/core/aggregates"
	"driftgraph/domain/core/valueobjects"
)

// NoveltyService scores how fresh a concept is based on the session's
// traversal history. A concept is excluded when at most W other visits
// have occurred since its most recent visit and that visit is within
// the aging half-life; otherwise it carries an exponentially-decayed
// freshness weight. The service never fails: an all-excluded candidate
// set degrades to a freshness ranking instead of an empty result.
type NoveltyService struct {
	cfg    *config.DomainConfig
	logger *zap.Logger
}

// NewNoveltyService creates a novelty service
func NewNoveltyService(cfg *config.DomainConfig, logger *zap.Logger) *NoveltyService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &NoveltyService{cfg: cfg, logger: logger}
}

// Assessment is the novelty verdict for a single concept
type Assessment struct {
	ConceptID string  `json:"conceptId"`
	Excluded  bool    `json:"excluded"`
	Freshness float64 `json:"freshness"`
}

// ScoredCandidate pairs an association candidate with its freshness
type ScoredCandidate struct {
	Association ports.Association `json:"association"`
	Freshness   float64           `json:"freshness"`
	Excluded    bool              `json:"excluded"`
}

// FilterResult is the outcome of novelty-filtering a candidate set
type FilterResult struct {
	// Ordered holds the candidates to try, best first. When FellBack is
	// true every candidate was excluded and the order is by freshness,
	// least-recently-seen first.
	Ordered    []ScoredCandidate `json:"ordered"`
	FreshCount int               `json:"freshCount"`
	TotalCount int               `json:"totalCount"`
	FellBack   bool              `json:"fellBack"`
	Reason     string            `json:"reason,omitempty"`
}

// Assess scores one concept against the session's history. Concepts
// never visited have freshness 1.
func (s *NoveltyService) Assess(g *aggregates.ConceptGraph, id valueobjects.ConceptID) Assessment {
	now := g.Now()
	lastVisit, visited := g.LastVisit(id)
	if !visited {
		return Assessment{ConceptID: id.String(), Freshness: 1}
	}

	elapsed := now.Sub(lastVisit)
	excluded := s.withinWindow(g, id) && elapsed < s.cfg.NoveltyHalfLife

	return Assessment{
		ConceptID: id.String(),
		Excluded:  excluded,
		Freshness: s.freshness(elapsed),
	}
}

// Filter applies the novelty rules to an association candidate set. An
// empty candidate set is not an error; the result says so in Reason.
func (s *NoveltyService) Filter(g *aggregates.ConceptGraph, candidates []ports.Association) FilterResult {
	if len(candidates) == 0 {
		return FilterResult{Reason: "no candidates"}
	}

	scored := make([]ScoredCandidate, 0, len(candidates))
	fresh := 0
	for _, cand := range candidates {
		sc := ScoredCandidate{Association: cand, Freshness: 1}
		if id, err := valueobjects.NewConceptIDFromString(cand.Concept); err == nil && g.HasConcept(id) {
			a := s.Assess(g, id)
			sc.Freshness = a.Freshness
			sc.Excluded = a.Excluded
		}
		if !sc.Excluded {
			fresh++
		}
		scored = append(scored, sc)
	}

	if fresh > 0 {
		kept := make([]ScoredCandidate, 0, fresh)
		for _, sc := range scored {
			if !sc.Excluded {
				kept = append(kept, sc)
			}
		}
		return FilterResult{Ordered: kept, FreshCount: fresh, TotalCount: len(candidates)}
	}

	// Every candidate was seen too recently. Rank by freshness instead
	// of excluding them all, so the session can keep moving.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Freshness > scored[j].Freshness
	})

	if s.logger != nil {
		s.logger.Debug("all candidates excluded by novelty filter, falling back to freshness ranking",
			zap.Int("candidates", len(candidates)),
		)
	}

	return FilterResult{
		Ordered:    scored,
		FreshCount: 0,
		TotalCount: len(candidates),
		FellBack:   true,
		Reason:     "no fresh concepts, falling back to freshness ranking",
	}
}

// withinWindow reports whether at most W visits have occurred since the
// concept's most recent visit. A concept followed by exactly W other
// visits is still inside the window; scanning the last W+1 history
// entries encodes that inclusive boundary.
func (s *NoveltyService) withinWindow(g *aggregates.ConceptGraph, id valueobjects.ConceptID) bool {
	for _, visit := range g.RecentVisits(s.cfg.NoveltyWindow + 1) {
		if visit.ConceptID.Equals(id) {
			return true
		}
	}
	return false
}

// freshness computes 1 - exp(-elapsed/halfLife), clamped to [0,1]
func (s *NoveltyService) freshness(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	f := 1 - math.Exp(-float64(elapsed)/float64(s.cfg.NoveltyHalfLife))
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
