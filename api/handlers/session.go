// ABOUTME: Session handlers for the Huma API
// ABOUTME: Record sign-in results, sign out and update the field preference

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"mowakeb-api/api/dto/requests"
	"mowakeb-api/api/dto/responses"
	"mowakeb-api/core/domain"
)

// SessionHandler handles session requests
type SessionHandler struct {
	sessions SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// RegisterRoutes registers the session routes
func (h *SessionHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/session",
		Summary:     "Get the current session",
		Tags:        []string{"Session"},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID: "signIn",
		Method:      http.MethodPut,
		Path:        "/session",
		Summary:     "Record a signed-in user",
		Description: "Stores the identity returned by the identity provider on this device",
		Tags:        []string{"Session"},
	}, h.SignIn)

	huma.Register(api, huma.Operation{
		OperationID: "signOut",
		Method:      http.MethodDelete,
		Path:        "/session",
		Summary:     "Sign out",
		Tags:        []string{"Session"},
	}, h.SignOut)

	huma.Register(api, huma.Operation{
		OperationID: "setFieldPreference",
		Method:      http.MethodPatch,
		Path:        "/session/field",
		Summary:     "Update the preferred field",
		Tags:        []string{"Session"},
	}, h.SetField)
}

// SessionOutput is the session body
type SessionOutput struct {
	Body responses.SessionResponse
}

// SignInInput is the sign-in body
type SignInInput struct {
	Body requests.SignInRequest
}

// FieldInput is the field preference body
type FieldInput struct {
	Body requests.FieldPreferenceRequest
}

// Get handles GET /session
func (h *SessionHandler) Get(ctx context.Context, _ *struct{}) (*SessionOutput, error) {
	user, err := h.sessions.Current(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SessionOutput{Body: responses.NewSessionResponse(user)}, nil
}

// SignIn handles PUT /session
func (h *SessionHandler) SignIn(ctx context.Context, input *SignInInput) (*SessionOutput, error) {
	user, err := h.sessions.SignIn(ctx, domain.User{
		ID:    input.Body.ID,
		Name:  input.Body.Name,
		Email: input.Body.Email,
		Field: input.Body.Field,
	})
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SessionOutput{Body: responses.NewSessionResponse(&user)}, nil
}

// SignOut handles DELETE /session
func (h *SessionHandler) SignOut(ctx context.Context, _ *struct{}) (*SessionOutput, error) {
	if err := h.sessions.SignOut(ctx); err != nil {
		return nil, toHumaError(err)
	}
	return &SessionOutput{Body: responses.NewSessionResponse(nil)}, nil
}

// SetField handles PATCH /session/field
func (h *SessionHandler) SetField(ctx context.Context, input *FieldInput) (*SessionOutput, error) {
	user, err := h.sessions.SetField(ctx, input.Body.Field)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SessionOutput{Body: responses.NewSessionResponse(&user)}, nil
}
