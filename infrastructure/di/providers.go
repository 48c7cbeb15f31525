package di

import (
	"driftgraph/application/commands"
	"driftgraph/application/commands/bus"
	commandhandlers "driftgraph/application/commands/handlers"
	"driftgraph/application/ports"
	"driftgraph/application/queries"
	querybus "driftgraph/application/queries/bus"
	queryhandlers "driftgraph/application/queries/handlers"
	"driftgraph/application/services"
	domaincfg "driftgraph/domain/config"
	"driftgraph/infrastructure/associations"
	"driftgraph/infrastructure/config"
	"driftgraph/infrastructure/persistence/memory"
	"driftgraph/pkg/auth"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Engine     *domaincfg.DomainConfig
	Logger     *zap.Logger
	Sessions   ports.SessionRepository
	Provider   ports.AssociationProvider
	Calibrator *services.Calibrator
	Novelty    *services.NoveltyService
	Drift      *services.DriftService
	Prompts    *services.PromptService
	Validator  *auth.JWTValidator
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideEngineConfig resolves the engine constants for this process
func ProvideEngineConfig(cfg *config.Config) (*domaincfg.DomainConfig, error) {
	return cfg.EngineConfig()
}

// ProvideSessionRepository creates the in-memory session store
func ProvideSessionRepository(engine *domaincfg.DomainConfig, logger *zap.Logger) ports.SessionRepository {
	return memory.NewSessionStore(engine, logger)
}

// ProvideAssociationProvider creates the built-in lexicon provider
func ProvideAssociationProvider(logger *zap.Logger) ports.AssociationProvider {
	return associations.NewLexiconProvider(logger)
}

// ProvideCalibrator creates the distance calibrator
func ProvideCalibrator(engine *domaincfg.DomainConfig) *services.Calibrator {
	return services.NewCalibrator(engine)
}

// ProvideNoveltyService creates the novelty filter service
func ProvideNoveltyService(engine *domaincfg.DomainConfig, logger *zap.Logger) *services.NoveltyService {
	return services.NewNoveltyService(engine, logger)
}

// ProvideDriftService creates the exploration step service
func ProvideDriftService(
	provider ports.AssociationProvider,
	calibrator *services.Calibrator,
	novelty *services.NoveltyService,
	logger *zap.Logger,
) *services.DriftService {
	return services.NewDriftService(provider, calibrator, novelty, logger)
}

// ProvidePromptService creates the prompt composition service
func ProvidePromptService(logger *zap.Logger) *services.PromptService {
	return services.NewPromptService(logger)
}

// ProvideJWTValidator creates the token validator. Without a configured
// secret the API runs open and the validator is nil.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if cfg.JWTSecret == "" {
		return nil, nil
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(sessions ports.SessionRepository, logger *zap.Logger) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus()

	if err := commandBus.Register(commands.AddConceptCommand{}, commandhandlers.NewAddConceptHandler(sessions, logger)); err != nil {
		return nil, err
	}
	if err := commandBus.Register(commands.LinkConceptsCommand{}, commandhandlers.NewLinkConceptsHandler(sessions, logger)); err != nil {
		return nil, err
	}
	if err := commandBus.Register(commands.VisitConceptCommand{}, commandhandlers.NewVisitConceptHandler(sessions, logger)); err != nil {
		return nil, err
	}

	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	sessions ports.SessionRepository,
	prompts *services.PromptService,
	calibrator *services.Calibrator,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()

	if err := queryBus.Register(queries.SnapshotQuery{}, queryhandlers.NewSnapshotHandler(sessions)); err != nil {
		return nil, err
	}
	if err := queryBus.Register(queries.BridgeNodesQuery{}, queryhandlers.NewBridgeNodesHandler(sessions)); err != nil {
		return nil, err
	}
	if err := queryBus.Register(queries.StructuralGapsQuery{}, queryhandlers.NewStructuralGapsHandler(sessions)); err != nil {
		return nil, err
	}
	if err := queryBus.Register(queries.ClustersQuery{}, queryhandlers.NewClustersHandler(sessions)); err != nil {
		return nil, err
	}
	if err := queryBus.Register(queries.CentralityQuery{}, queryhandlers.NewCentralityHandler(sessions)); err != nil {
		return nil, err
	}
	if err := queryBus.Register(queries.PromptQuery{}, queryhandlers.NewPromptHandler(sessions, prompts, logger)); err != nil {
		return nil, err
	}
	if err := queryBus.Register(queries.CalibrateQuery{}, queryhandlers.NewCalibrateHandler(calibrator)); err != nil {
		return nil, err
	}

	return queryBus, nil
}
