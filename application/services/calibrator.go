package services

import (
	"driftgraph/domain/config"
)

// SelectionPolicy tells the traversal logic how to pick among candidate
// edges inside the target band.
type SelectionPolicy string

const (
	// PolicyDeterministic always picks the candidate closest to the top
	// of the target band.
	PolicyDeterministic SelectionPolicy = "deterministic"
	// PolicyWeighted picks randomly among in-band candidates, weighted
	// toward higher in-band distance.
	PolicyWeighted SelectionPolicy = "weighted"
	// PolicyExploratory behaves like PolicyWeighted but with a configured
	// probability of jumping to a candidate outside the current domain.
	PolicyExploratory SelectionPolicy = "exploratory"
)

// Regime cutoffs for the requested drift magnitude. Low requests
// empirically overshoot and high requests undershoot, so the calibrator
// dampens below the low cutoff and boosts at or above the high cutoff.
const (
	lowRegimeCutoff  = 0.4
	highRegimeCutoff = 0.7
)

// Temperature cutoffs and band adjustments. Below the deterministic
// cutoff the band narrows; above the exploratory cutoff it widens.
const (
	deterministicTempCutoff = 0.3
	exploratoryTempCutoff   = 0.7
	bandNarrowFactor        = 0.7
	bandWidenFactor         = 1.4
)

// Calibration is the result of mapping a requested distance/temperature
// pair onto the engine's traversal parameters.
type Calibration struct {
	RequestedDistance   float64         `json:"requestedDistance"`
	Temperature         float64         `json:"temperature"`
	EffectiveDistance   float64         `json:"effectiveDistance"`
	TargetLow           float64         `json:"targetLow"`
	TargetHigh          float64         `json:"targetHigh"`
	HopCount            int             `json:"hopCount"`
	Policy              SelectionPolicy `json:"policy"`
	CrossDomainJumpProb float64         `json:"crossDomainJumpProb"`
}

// Calibrator maps a caller-requested drift magnitude and temperature to
// a target distance band, a hop count, and a selection policy. It is a
// pure function layer: independent of the graph, consuming and producing
// scalars only, and it never fails.
type Calibrator struct {
	cfg *config.DomainConfig
}

// NewCalibrator creates a calibrator with the session's engine constants
func NewCalibrator(cfg *config.DomainConfig) *Calibrator {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Calibrator{cfg: cfg}
}

// Calibrate computes the traversal parameters for one exploration step.
// Inputs outside [0,1] are clamped.
func (c *Calibrator) Calibrate(distance, temperature float64) Calibration {
	distance = clamp01(distance)
	temperature = clamp01(temperature)

	effective := c.effectiveDistance(distance)
	width := c.bandWidth(temperature)

	cal := Calibration{
		RequestedDistance: distance,
		Temperature:       temperature,
		EffectiveDistance: effective,
		TargetLow:         clamp01(effective - width/2),
		TargetHigh:        clamp01(effective + width/2),
		HopCount:          hopCount(distance),
		Policy:            policyFor(temperature),
	}

	if cal.Policy == PolicyExploratory {
		cal.CrossDomainJumpProb = c.cfg.CrossDomainJumpProb
	}

	return cal
}

// effectiveDistance applies the regime correction to the requested
// magnitude.
func (c *Calibrator) effectiveDistance(distance float64) float64 {
	switch {
	case distance < lowRegimeCutoff:
		return distance * c.cfg.LowDriftDampening
	case distance < highRegimeCutoff:
		return distance
	default:
		return clamp01(distance * c.cfg.HighDriftBoost)
	}
}

// bandWidth narrows the band in the deterministic regime and widens it
// in the exploratory regime.
func (c *Calibrator) bandWidth(temperature float64) float64 {
	width := c.cfg.BaseBandWidth
	switch {
	case temperature < deterministicTempCutoff:
		return width * bandNarrowFactor
	case temperature > exploratoryTempCutoff:
		return width * bandWidenFactor
	default:
		return width
	}
}

// hopCount maps requested magnitude to traversal steps. More hops
// compounds drift, so high magnitudes do not also get extra hops beyond
// four.
func hopCount(distance float64) int {
	switch {
	case distance < 0.3:
		return 1
	case distance < 0.6:
		return 2
	case distance < 0.8:
		return 3
	default:
		return 4
	}
}

func policyFor(temperature float64) SelectionPolicy {
	switch {
	case temperature < deterministicTempCutoff:
		return PolicyDeterministic
	case temperature > exploratoryTempCutoff:
		return PolicyExploratory
	default:
		return PolicyWeighted
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
