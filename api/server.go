// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"mowakeb-api/api/handlers"
	"mowakeb-api/api/middleware"
	"mowakeb-api/core/interfaces"
	"mowakeb-api/pkg/featureflags"
)

// Version is reported by /healthz and the OpenAPI document
const Version = "1.0.0"

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger      interfaces.Logger
	CORSOrigins []string
	Limiter     *middleware.RateLimiter // nil disables rate limiting
	Flags       featureflags.Manager
}

// Services are the application services behind the routes. Nil services
// leave their routes unregistered.
type Services struct {
	Sessions handlers.SessionService
	Tracker  handlers.TrackerService
	Search   handlers.SearchService
	Results  handlers.ResultsService
	Summary  handlers.SummaryService
	Audio    handlers.AudioPlayer
	Chat     handlers.ChatService
}

// NewAPI creates the router with middleware and a Huma API on top of it
func NewAPI(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.Limiter != nil {
		var active func(ctx context.Context) bool
		if cfg.Flags != nil {
			active = func(ctx context.Context) bool {
				return cfg.Flags.IsEnabled(ctx, featureflags.RateLimit)
			}
		}
		router.Use(middleware.RateLimitMiddleware(cfg.Limiter, active))
	}

	config := huma.DefaultConfig("Mowakeb API", Version)
	config.Info.Description = "Research paper tracker, summaries, narration and PDF chat"

	return humachi.New(router, config), router
}

// Register wires every configured service onto api
func Register(api huma.API, svc Services, flags featureflags.Manager) {
	handlers.NewHealthHandler(Version, flags).RegisterRoutes(api)

	if svc.Sessions != nil {
		handlers.NewSessionHandler(svc.Sessions).RegisterRoutes(api)
	}
	if svc.Tracker != nil {
		handlers.NewTrackerHandler(svc.Tracker, svc.Sessions).RegisterRoutes(api)
	}
	if svc.Search != nil && svc.Results != nil {
		handlers.NewSearchHandler(svc.Search, svc.Results).RegisterRoutes(api)
	}
	if svc.Summary != nil {
		handlers.NewSummaryHandler(svc.Summary, svc.Sessions).RegisterRoutes(api)
		if svc.Audio != nil {
			handlers.NewAudioHandler(svc.Audio, svc.Summary, flags).RegisterRoutes(api)
		}
	}
	if svc.Chat != nil {
		handlers.NewChatHandler(svc.Chat, flags).RegisterRoutes(api)
	}
}
