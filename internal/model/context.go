package model

import (
	"context"
)

// ContextManager carries the acting user ID through request contexts, along
// with whether it was proven by an access token.
type ContextManager interface {
	SetUserIDToContext(ctx context.Context, userID string) context.Context
	SetVerifiedUserIDToContext(ctx context.Context, userID string) context.Context
	GetUserIDFromContext(ctx context.Context) (string, bool)
	IsUserVerified(ctx context.Context) bool
}
