// Package session owns the authenticated identity and bearer credential,
// persists them across restarts, and notifies dependents on change.
package session

import (
	"jobportal-client/internal/models"
)

// Session is the current authentication state. A zero Session means
// unauthenticated.
type Session struct {
	User  models.User
	Token string
}

// Authenticated reports whether a credential is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Storage persists exactly two durable entries: the serialized identity and
// the raw credential string. Both are cleared together.
type Storage interface {
	// Token returns the stored credential, or "" if none.
	Token() string
	// User returns the stored identity and whether one was cached.
	User() (models.User, bool)
	// Save stores identity and credential together.
	Save(user models.User, token string) error
	// Clear removes both entries. Clearing an empty storage is a no-op.
	Clear() error
}
