package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	domaincfg "driftgraph/domain/config"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Logging
	LogLevel string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Feature flags
	EnableCORS bool

	// Engine overrides. Zero values mean "use the environment profile's
	// default"; see EngineConfig.
	ClusterWeightThreshold float64
	CentralitySampleSize   int
	NoveltyWindow          int
	NoveltyHalfLife        time.Duration
	MaxNodesPerSession     int
	MaxEdgesPerSession     int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "driftgraph"),

		EnableCORS: getEnvBool("ENABLE_CORS", true),

		ClusterWeightThreshold: getEnvFloat("CLUSTER_WEIGHT_THRESHOLD", 0),
		CentralitySampleSize:   getEnvInt("CENTRALITY_SAMPLE_SIZE", 0),
		NoveltyWindow:          getEnvInt("NOVELTY_WINDOW", 0),
		NoveltyHalfLife:        getEnvDuration("NOVELTY_HALF_LIFE", 0),
		MaxNodesPerSession:     getEnvInt("MAX_NODES_PER_SESSION", 0),
		MaxEdgesPerSession:     getEnvInt("MAX_EDGES_PER_SESSION", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.ClusterWeightThreshold < 0 || c.ClusterWeightThreshold > 1 {
		return fmt.Errorf("CLUSTER_WEIGHT_THRESHOLD must be in [0,1], got %v", c.ClusterWeightThreshold)
	}
	if c.CentralitySampleSize < 0 {
		return fmt.Errorf("CENTRALITY_SAMPLE_SIZE must be non-negative, got %d", c.CentralitySampleSize)
	}
	return nil
}

// EngineConfig resolves the engine configuration for this process: the
// environment profile's defaults overridden by any explicit env settings.
func (c *Config) EngineConfig() (*domaincfg.DomainConfig, error) {
	engine := domaincfg.LoadDomainConfig(c.Environment)

	if c.ClusterWeightThreshold > 0 {
		engine.ClusterWeightThreshold = c.ClusterWeightThreshold
	}
	if c.CentralitySampleSize > 0 {
		engine.CentralitySampleSize = c.CentralitySampleSize
	}
	if c.NoveltyWindow > 0 {
		engine.NoveltyWindow = c.NoveltyWindow
	}
	if c.NoveltyHalfLife > 0 {
		engine.NoveltyHalfLife = c.NoveltyHalfLife
	}
	if c.MaxNodesPerSession > 0 {
		engine.MaxNodesPerSession = c.MaxNodesPerSession
	}
	if c.MaxEdgesPerSession > 0 {
		engine.MaxEdgesPerSession = c.MaxEdgesPerSession
	}

	if err := engine.Validate(); err != nil {
		return nil, err
	}
	return engine, nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
