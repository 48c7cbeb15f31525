package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"driftgraph/application/commands/bus"
	"driftgraph/application/ports"
	querybus "driftgraph/application/queries/bus"
	"driftgraph/application/services"
	"driftgraph/interfaces/http/rest/handlers"
	"driftgraph/interfaces/http/rest/middleware"
	"driftgraph/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	sessions   ports.SessionRepository
	drift      *services.DriftService
	validator  *auth.JWTValidator
	enableCORS bool
	logger     *zap.Logger
}

// NewRouter creates a new router instance. validator may be nil, in
// which case the API runs unauthenticated.
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	sessions ports.SessionRepository,
	drift *services.DriftService,
	validator *auth.JWTValidator,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		sessions:   sessions,
		drift:      drift,
		validator:  validator,
		enableCORS: enableCORS,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))

		analysisHandler := handlers.NewAnalysisHandler(rt.queryBus, rt.logger)

		// Calibration is stateless and not bound to a session
		r.Get("/calibrate", analysisHandler.Calibrate)

		r.Route("/sessions", func(r chi.Router) {
			sessionHandler := handlers.NewSessionHandler(rt.sessions, rt.logger)
			r.Post("/", sessionHandler.CreateSession)
			r.Delete("/{sessionID}", sessionHandler.DeleteSession)

			r.Route("/{sessionID}", func(r chi.Router) {
				conceptHandler := handlers.NewConceptHandler(rt.commandBus, rt.logger)
				r.Post("/concepts", conceptHandler.AddConcept)
				r.Post("/relations", conceptHandler.LinkConcepts)
				r.Post("/visits", conceptHandler.VisitConcept)

				driftHandler := handlers.NewDriftHandler(rt.sessions, rt.drift, rt.logger)
				r.Post("/drift", driftHandler.Step)

				r.Get("/snapshot", analysisHandler.GetSnapshot)
				r.Get("/bridges", analysisHandler.GetBridges)
				r.Get("/gaps", analysisHandler.GetGaps)
				r.Get("/clusters", analysisHandler.GetClusters)
				r.Get("/concepts/{conceptID}/centrality", analysisHandler.GetCentrality)
				r.Get("/prompt", analysisHandler.GetPrompt)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	// Sessions are in-memory; once the process is up it is ready
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
