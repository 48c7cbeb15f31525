package config

import (
	"fmt"
	"time"
)

// DomainConfig holds all configurable engine constants. The values are
// fixed for the lifetime of a session; the process configuration loader
// validates them once at startup.
type DomainConfig struct {
	// Cluster detection
	ClusterWeightThreshold float64

	// Centrality estimation
	CentralitySamplingEnabled bool
	CentralitySampleSize      int
	// Graphs at or below this node count are computed exactly even when
	// sampling is enabled.
	CentralityExactLimit int

	// Novelty filter
	NoveltyWindow   int           // count of most-recent visits
	NoveltyHalfLife time.Duration // aging half-life

	// Distance calibration. Low requests empirically overshoot and high
	// requests undershoot; these factors compensate.
	LowDriftDampening   float64 // multiplier applied below the low cutoff
	HighDriftBoost      float64 // multiplier applied at or above the high cutoff
	BaseBandWidth       float64
	CrossDomainJumpProb float64

	// Graph constraints
	MaxNodesPerSession int
	MaxEdgesPerSession int

	// Gap detection
	GapDriftTolerance float64
	MaxReportedGaps   int
}

// DefaultDomainConfig returns the default engine configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		ClusterWeightThreshold: 0.5,

		CentralitySamplingEnabled: true,
		CentralitySampleSize:      50,
		CentralityExactLimit:      100,

		NoveltyWindow:   10,
		NoveltyHalfLife: 10 * time.Minute,

		LowDriftDampening:   0.85,
		HighDriftBoost:      1.15,
		BaseBandWidth:       0.15,
		CrossDomainJumpProb: 0.25,

		MaxNodesPerSession: 10000,
		MaxEdgesPerSession: 50000,

		GapDriftTolerance: 0.2,
		MaxReportedGaps:   10,
	}
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	cfg := DefaultDomainConfig()

	// Short half-life so novelty decay is observable in a dev session
	cfg.NoveltyHalfLife = 30 * time.Second
	cfg.MaxNodesPerSession = 100000
	cfg.MaxEdgesPerSession = 500000

	return cfg
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	cfg := DefaultDomainConfig()

	// Tighter sampling bound keeps worst-case centrality cost predictable
	cfg.CentralitySampleSize = 30
	cfg.MaxNodesPerSession = 5000
	cfg.MaxEdgesPerSession = 25000

	return cfg
}

// LoadDomainConfig loads engine configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.ClusterWeightThreshold < 0 || c.ClusterWeightThreshold > 1 {
		return fmt.Errorf("cluster weight threshold must be in [0,1], got %v", c.ClusterWeightThreshold)
	}
	if c.CentralitySampleSize <= 0 {
		return fmt.Errorf("centrality sample size must be positive, got %d", c.CentralitySampleSize)
	}
	if c.CentralityExactLimit < 0 {
		return fmt.Errorf("centrality exact limit must be non-negative, got %d", c.CentralityExactLimit)
	}
	if c.NoveltyWindow < 0 {
		return fmt.Errorf("novelty window must be non-negative, got %d", c.NoveltyWindow)
	}
	if c.NoveltyHalfLife <= 0 {
		return fmt.Errorf("novelty half-life must be positive, got %v", c.NoveltyHalfLife)
	}
	if c.LowDriftDampening <= 0 || c.LowDriftDampening > 1 {
		return fmt.Errorf("low drift dampening must be in (0,1], got %v", c.LowDriftDampening)
	}
	if c.HighDriftBoost < 1 {
		return fmt.Errorf("high drift boost must be >= 1, got %v", c.HighDriftBoost)
	}
	if c.BaseBandWidth <= 0 || c.BaseBandWidth > 1 {
		return fmt.Errorf("base band width must be in (0,1], got %v", c.BaseBandWidth)
	}
	if c.CrossDomainJumpProb < 0 || c.CrossDomainJumpProb > 1 {
		return fmt.Errorf("cross-domain jump probability must be in [0,1], got %v", c.CrossDomainJumpProb)
	}
	if c.GapDriftTolerance < 0 {
		return fmt.Errorf("gap drift tolerance must be non-negative, got %v", c.GapDriftTolerance)
	}
	if c.MaxReportedGaps <= 0 {
		return fmt.Errorf("max reported gaps must be positive, got %d", c.MaxReportedGaps)
	}
	return nil
}
