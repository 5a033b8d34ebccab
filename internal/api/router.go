package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/frida212/code-analyzer/internal/api/handler"
	"github.com/frida212/code-analyzer/internal/api/middleware"
	"github.com/frida212/code-analyzer/internal/api/response"
	"github.com/frida212/code-analyzer/internal/cache"
	"github.com/frida212/code-analyzer/internal/config"
	"github.com/frida212/code-analyzer/internal/store"
)

// Dependencies carries everything the router needs. Optional fields may be
// nil; the corresponding routes degrade rather than panic.
type Dependencies struct {
	Config   *config.Config
	Analysis handler.AnalysisService
	Vertex   handler.EndpointManager // nil when the bridge is not deployed
	Store    store.Store             // nil disables run history
	Cache    cache.Cache             // never nil; use cache.NewNoop() without Redis
}

// NewRouter assembles the chi router for the dashboard API.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", orNotImplemented(deps.Analysis != nil,
			handler.Health(deps.Analysis)))
		r.Get("/metrics", handler.Metrics(deps.Store))
		r.Get("/issues", handler.Issues())
		r.Get("/agents", handler.Agents())
		r.Get("/ai/status", orNotImplemented(deps.Analysis != nil,
			handler.AIStatus(deps.Analysis, deps.Vertex, deps.Cache)))

		// Mutating routes carry auth and rate limiting. Both are no-ops when
		// unconfigured, which is the demo dashboard mode.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Config.Auth))
			r.Use(middleware.RateLimit(deps.Cache, deps.Config.Analysis.RateLimitPerMin))

			r.Post("/analyze", orNotImplemented(deps.Analysis != nil,
				handler.Analyze(deps.Analysis, deps.Config.CloudFunction)))
			r.Post("/ai/create-endpoint", handler.CreateEndpoint(deps.Vertex, deps.Cache))
		})
	})

	return r
}

// orNotImplemented guards routes whose dependency was not wired.
func orNotImplemented(ready bool, h http.HandlerFunc) http.HandlerFunc {
	if ready {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented,
			"NOT_IMPLEMENTED", "This endpoint is not available in this deployment", nil)
	}
}
