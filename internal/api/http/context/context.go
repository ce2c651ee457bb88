package context

import (
	"context"
)

type identityKey struct{}

type identity struct {
	userID   string
	verified bool
}

// Manager stores the acting user in request contexts.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext stores a user ID the caller only asserted, such as the X-User-Id header.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, identityKey{}, identity{userID: userID})
}

// SetVerifiedUserIDToContext stores a user ID taken from a validated access token.
func (m *Manager) SetVerifiedUserIDToContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, identityKey{}, identity{userID: userID, verified: true})
}

// GetUserIDFromContext returns the user ID stored in ctx, if any.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey{}).(identity)
	if !ok || id.userID == "" {
		return "", false
	}
	return id.userID, true
}

// IsUserVerified reports whether the stored user ID came from an access token.
func (m *Manager) IsUserVerified(ctx context.Context) bool {
	id, ok := ctx.Value(identityKey{}).(identity)
	return ok && id.verified && id.userID != ""
}
