// ABOUTME: User domain model for the locally persisted authenticated-user record
// ABOUTME: The user's email is the tracker owner identity

package domain

// DefaultUserField is the field preference assumed when none is stored
const DefaultUserField = "AI"

// User is the authenticated-user record kept in local state
type User struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Field    string `json:"field,omitempty"`
	LoggedIn bool   `json:"loggedIn"`
}

// IsOwner reports whether the user can own remote tracker rows
func (u *User) IsOwner() bool {
	return u != nil && u.LoggedIn && u.Email != ""
}

// PreferredField returns the user's field preference or DefaultUserField
func (u *User) PreferredField() string {
	if u == nil || u.Field == "" {
		return DefaultUserField
	}
	return u.Field
}
