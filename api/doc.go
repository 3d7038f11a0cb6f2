// Package api provides the HTTP API layer for Mowakeb.
// It uses the Huma framework on a chi router for OpenAPI documentation,
// request validation, and typed handlers.
//
// # Architecture
//
//   - server.go: router, middleware and Huma setup; route registration
//   - handlers/: HTTP handlers over the core services
//   - dto/: request and response bodies
//   - middleware/: request logging and per-client rate limiting
//
// The OpenAPI document is served at /openapi.json and the interactive
// docs at /docs.
//
// # Usage
//
//	humaAPI, router := api.NewAPI(api.APIConfig{
//	    Logger:      logger,
//	    CORSOrigins: cfg.Server.CORSOrigins,
//	    Limiter:     middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst),
//	    Flags:       flags,
//	})
//	api.Register(humaAPI, services, flags)
//	http.ListenAndServe(":8000", router)
//
// # Errors
//
// Errors use the RFC 7807 problem format. Validation failures map to 400,
// missing resources to 404, and unreachable or failing remotes to 502 or
// 503 with a message fit for display.
package api
