// ABOUTME: Health check handler for the Huma API
// ABOUTME: Reports liveness, the build version and the feature flag state

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"mowakeb-api/api/dto/responses"
	"mowakeb-api/pkg/featureflags"
)

// HealthHandler handles health checks
type HealthHandler struct {
	version string
	flags   featureflags.Manager
}

// NewHealthHandler creates a new health handler. flags may be nil.
func NewHealthHandler(version string, flags featureflags.Manager) *HealthHandler {
	return &HealthHandler{version: version, flags: flags}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "healthz",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Liveness check",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput is the health body
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles GET /healthz
func (h *HealthHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	features := make(map[string]bool, len(featureflags.All))
	for _, f := range featureflags.All {
		features[string(f)] = enabled(ctx, h.flags, f)
	}
	return &HealthOutput{Body: responses.HealthResponse{
		Status:   "ok",
		Version:  h.version,
		Features: features,
	}}, nil
}
