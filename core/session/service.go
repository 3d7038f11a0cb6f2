// ABOUTME: Session service managing the locally stored authenticated user
// ABOUTME: Sign-in itself happens with the external identity provider; this records the result

package session

import (
	"context"
	"strings"

	"mowakeb-api/core/domain"
	"mowakeb-api/core/errors"
	"mowakeb-api/core/state"
)

// DefaultName is shown for a user who never gave a name
const DefaultName = "Researcher"

// Service reads and writes the user record
type Service struct {
	store *state.Store
}

// NewService creates a session service
func NewService(store *state.Store) *Service {
	return &Service{store: store}
}

// Current returns the signed-in user or nil for guests
func (s *Service) Current(ctx context.Context) (*domain.User, error) {
	user, err := s.store.LoadUser(ctx)
	if err != nil {
		return nil, errors.WrapError(err, "failed to load user")
	}
	return user, nil
}

// SignIn records the identity returned by the identity provider
func (s *Service) SignIn(ctx context.Context, user domain.User) (domain.User, error) {
	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return domain.User{}, &errors.ValidationError{Field: "email", Message: "must not be empty"}
	}
	if user.Field == "" {
		user.Field = domain.DefaultUserField
	}
	user.LoggedIn = true

	if err := s.store.SaveUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// SignOut forgets the user. The tracker cache is kept.
func (s *Service) SignOut(ctx context.Context) error {
	return s.store.ClearUser(ctx)
}

// SetField updates the field preference. Without a stored user a record
// named DefaultName is created.
func (s *Service) SetField(ctx context.Context, field string) (domain.User, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		field = domain.DefaultUserField
	}

	current, err := s.Current(ctx)
	if err != nil {
		return domain.User{}, err
	}
	user := domain.User{Name: DefaultName}
	if current != nil {
		user = *current
	}
	user.Field = field
	user.LoggedIn = true

	if err := s.store.SaveUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
