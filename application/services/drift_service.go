package services

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"driftgraph/application/ports"
	"driftgraph/domain/core/aggregates"
	"driftgraph/domain/core/entities"
	"driftgraph/domain/core/valueobjects"
	pkgerrors "driftgraph/pkg/errors"
)

// Step outcomes. A degenerate step is not an error: the caller gets an
// explicit outcome plus a diagnostic reason and the session keeps going.
const (
	OutcomeAdvanced     = "advanced"
	OutcomeNoCandidates = "no_candidates"
)

// StepResult describes one exploration step
type StepResult struct {
	Outcome     string      `json:"outcome"`
	Reason      string      `json:"reason,omitempty"`
	From        string      `json:"from"`
	To          string      `json:"to,omitempty"`
	Relation    string      `json:"relation,omitempty"`
	Distance    float64     `json:"distance,omitempty"`
	Calibration Calibration `json:"calibration"`
	FreshCount  int         `json:"freshCount"`
	TotalCount  int         `json:"totalCount"`
	FellBack    bool        `json:"fellBack"`
}

// DriftService performs exploration steps: it asks the association
// provider for candidates of the current concept, filters them through
// the calibrated target band and the novelty filter, selects one per the
// calibrated policy, and records the resulting node, edge, and visit in
// the session graph.
type DriftService struct {
	provider   ports.AssociationProvider
	calibrator *Calibrator
	novelty    *NoveltyService
	logger     *zap.Logger
	rand       *rand.Rand
}

// NewDriftService creates a drift service
func NewDriftService(provider ports.AssociationProvider, calibrator *Calibrator, novelty *NoveltyService, logger *zap.Logger) *DriftService {
	return &DriftService{
		provider:   provider,
		calibrator: calibrator,
		novelty:    novelty,
		logger:     logger,
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Step performs one exploration step from the given concept. The caller
// must hold the session lock (handlers run this inside WithSession).
func (s *DriftService) Step(ctx context.Context, g *aggregates.ConceptGraph, fromID valueobjects.ConceptID, distance, temperature float64) (StepResult, error) {
	from, err := g.GetConcept(fromID)
	if err != nil {
		return StepResult{}, err
	}

	cal := s.calibrator.Calibrate(distance, temperature)
	result := StepResult{From: fromID.String(), Calibration: cal}

	candidates, err := s.provider.Associations(ctx, from.Content())
	if err != nil {
		return StepResult{}, pkgerrors.Wrap(err, "association provider failed")
	}
	if len(candidates) == 0 {
		result.Outcome = OutcomeNoCandidates
		result.Reason = "provider returned no associations"
		return result, nil
	}

	pool := inBand(candidates, cal)
	if len(pool) == 0 {
		// Nothing inside the band; degrade to the full candidate set
		// rather than reporting the session stuck.
		pool = candidates
		result.Reason = "no candidates inside target band, widened to all"
	}

	filtered := s.novelty.Filter(g, pool)
	result.FreshCount = filtered.FreshCount
	result.TotalCount = filtered.TotalCount
	result.FellBack = filtered.FellBack
	if filtered.FellBack {
		result.Reason = filtered.Reason
	}
	if len(filtered.Ordered) == 0 {
		result.Outcome = OutcomeNoCandidates
		result.Reason = "no usable candidates after novelty filtering"
		return result, nil
	}

	chosen := s.selectCandidate(filtered.Ordered, cal, from.Source())

	toID, relation, err := s.record(g, fromID, chosen.Association)
	if err != nil {
		return StepResult{}, err
	}

	result.Outcome = OutcomeAdvanced
	result.To = toID.String()
	result.Relation = relation.String()
	result.Distance = chosen.Association.Distance

	if s.logger != nil {
		s.logger.Info("drift step advanced",
			zap.String("sessionID", g.ID().String()),
			zap.String("from", result.From),
			zap.String("to", result.To),
			zap.String("relation", result.Relation),
			zap.Float64("distance", result.Distance),
			zap.String("policy", string(cal.Policy)),
		)
	}

	return result, nil
}

// selectCandidate applies the calibrated selection policy
func (s *DriftService) selectCandidate(pool []ScoredCandidate, cal Calibration, currentDomain string) ScoredCandidate {
	switch cal.Policy {
	case PolicyDeterministic:
		return closestToBandTop(pool, cal.TargetHigh)
	case PolicyExploratory:
		if s.rand.Float64() < cal.CrossDomainJumpProb {
			if jump, ok := crossDomainPool(pool, currentDomain); ok {
				return jump[s.rand.Intn(len(jump))]
			}
		}
		return s.weightedChoice(pool, cal)
	default:
		return s.weightedChoice(pool, cal)
	}
}

// weightedChoice picks randomly, weighted toward higher in-band distance
func (s *DriftService) weightedChoice(pool []ScoredCandidate, cal Calibration) ScoredCandidate {
	const epsilon = 0.01
	total := 0.0
	weights := make([]float64, len(pool))
	for i, c := range pool {
		w := c.Association.Distance - cal.TargetLow
		if w < 0 {
			w = 0
		}
		weights[i] = w + epsilon
		total += weights[i]
	}

	r := s.rand.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return pool[i]
		}
	}
	return pool[len(pool)-1]
}

// record writes the chosen candidate into the graph: a node if unseen,
// an edge from the current concept, and a history visit.
func (s *DriftService) record(g *aggregates.ConceptGraph, fromID valueobjects.ConceptID, chosen ports.Association) (valueobjects.ConceptID, entities.RelationType, error) {
	toID, err := valueobjects.NewConceptIDFromString(slugify(chosen.Concept))
	if err != nil {
		return valueobjects.ConceptID{}, "", pkgerrors.NewValidationError("candidate concept is empty")
	}

	if !g.HasConcept(toID) {
		d := chosen.Distance
		concept, err := entities.NewConcept(toID, chosen.Concept, entities.ConceptAttrs{
			DriftDistance: &d,
			Source:        chosen.Domain,
		})
		if err != nil {
			return valueobjects.ConceptID{}, "", err
		}
		if err := g.AddConcept(concept); err != nil {
			return valueobjects.ConceptID{}, "", err
		}
	}

	relation := relationForReason(chosen.Reason)
	weight := clamp01(1 - chosen.Distance)
	if _, err := g.Link(fromID, toID, relation, weight, nil); err != nil {
		return valueobjects.ConceptID{}, "", err
	}
	if err := g.Visit(toID); err != nil {
		return valueobjects.ConceptID{}, "", err
	}

	return toID, relation, nil
}

func inBand(candidates []ports.Association, cal Calibration) []ports.Association {
	var kept []ports.Association
	for _, c := range candidates {
		if c.Distance >= cal.TargetLow && c.Distance <= cal.TargetHigh {
			kept = append(kept, c)
		}
	}
	return kept
}

func closestToBandTop(pool []ScoredCandidate, top float64) ScoredCandidate {
	best := pool[0]
	bestDelta := delta(best.Association.Distance, top)
	for _, c := range pool[1:] {
		if d := delta(c.Association.Distance, top); d < bestDelta {
			best, bestDelta = c, d
		}
	}
	return best
}

// crossDomainPool keeps candidates labeled with a different domain than
// the current concept's source.
func crossDomainPool(pool []ScoredCandidate, currentDomain string) ([]ScoredCandidate, bool) {
	var jump []ScoredCandidate
	for _, c := range pool {
		if c.Association.Domain != "" && c.Association.Domain != currentDomain {
			jump = append(jump, c)
		}
	}
	return jump, len(jump) > 0
}

// relationForReason maps a provider reason phrase onto the closed
// relation enum; unrecognized reasons default to REMINDS_OF.
func relationForReason(reason string) entities.RelationType {
	r := strings.ToLower(reason)
	switch {
	case strings.Contains(r, "metaphor"):
		return entities.RelationMetaphorFor
	case strings.Contains(r, "contrast"), strings.Contains(r, "oppos"):
		return entities.RelationContrastsWith
	case strings.Contains(r, "synth"):
		return entities.RelationSynthesizedFrom
	case strings.Contains(r, "contain"), strings.Contains(r, "part of"):
		return entities.RelationContains
	case strings.Contains(r, "special"), strings.Contains(r, "kind of"):
		return entities.RelationSpecializes
	case strings.Contains(r, "transform"), strings.Contains(r, "becomes"):
		return entities.RelationTransformsInto
	case strings.Contains(r, "cause"):
		return entities.RelationCauses
	default:
		return entities.RelationRemindsOf
	}
}

// slugify normalizes a concept string into a stable node id
func slugify(concept string) string {
	s := strings.ToLower(strings.TrimSpace(concept))
	return strings.Join(strings.Fields(s), "-")
}

func delta(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
