package auth

import (
	"context"
	"errors"
)

// UserContext represents the authenticated user attached to a request
type UserContext struct {
	UserID string
	Email  string
}

type contextKey string

const userContextKey contextKey = "user"

// AnonymousUserID identifies requests made without authentication when
// the server runs with auth disabled.
const AnonymousUserID = "anonymous"

// SetUserInContext adds user to context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts user from context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}

// UserIDFromContext returns the authenticated user's ID, or the
// anonymous ID when no user is attached.
func UserIDFromContext(ctx context.Context) string {
	if user, err := GetUserFromContext(ctx); err == nil {
		return user.UserID
	}
	return AnonymousUserID
}
