package view

import (
	"context"

	"github.com/wanderstay/wanderstay/internal/models"
)

type userKey struct{}

// WithUser attaches the authenticated user to a request context for the
// renderer (and anything else) to pick up.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFrom returns the request's user, or nil for anonymous visitors.
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey{}).(*models.User)
	return u
}
