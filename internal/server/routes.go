package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/insightdeck/insightdeck/internal/bridge"
	"github.com/insightdeck/insightdeck/internal/dashboard"
	"github.com/insightdeck/insightdeck/internal/handler"
	"github.com/insightdeck/insightdeck/internal/llm"
	"github.com/insightdeck/insightdeck/internal/middleware"
	"github.com/insightdeck/insightdeck/internal/pipeline"
	"github.com/insightdeck/insightdeck/internal/schema"
	"github.com/insightdeck/insightdeck/internal/security"
	"github.com/rs/zerolog/log"
)

func (s *Server) setupRoutes() (http.Handler, error) {
	cfg := s.cfg

	// ─── Collaborators ──────────────────────────────────────────────────────────
	schemaCtx := schema.Default()
	bridgeClient := bridge.New(cfg.BridgeEndpoint, cfg.OriginScheme)

	var analyst llm.Analyst
	if cfg.AnthropicAPIKey != "" {
		analyst = llm.NewAnthropic(cfg.AnthropicAPIKey, cfg.Model, cfg.AnthropicBaseURL, cfg.SampleSize)
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY not set - question answering disabled, dashboard will render without a brief")
	}

	validator := security.NewQuestionValidator()
	audit := security.NewAuditLogger(true)

	var orchestrator *pipeline.Orchestrator
	if analyst != nil {
		orchestrator = pipeline.New(analyst, bridgeClient, schemaCtx, validator, audit)
	}
	aggregator := dashboard.New(bridgeClient, analyst, schemaCtx, audit)

	log.Info().
		Str("bridge_endpoint", cfg.BridgeEndpoint).
		Bool("analyst_enabled", analyst != nil).
		Msg("service configuration")

	// ─── Handlers ────────────────────────────────────────────────────────────────
	healthH := handler.NewHealthHandler(bridgeClient)
	askH := handler.NewAskHandler(orchestrator)
	dashboardH := handler.NewDashboardHandler(aggregator)
	schemaH := handler.NewSchemaHandler(schemaCtx)
	endpointH := handler.NewEndpointHandler(bridgeClient, cfg)

	// ─── Router ──────────────────────────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)

	// Public routes
	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute))

		r.Route(cfg.APIPrefix, func(r chi.Router) {
			r.Post("/ask", askH.Ask)
			r.Get("/dashboard", dashboardH.Dashboard)
			r.Get("/schema", schemaH.Schema)
			r.Put("/bridge/endpoint", endpointH.SetEndpoint)
		})
	})

	return r, nil
}
