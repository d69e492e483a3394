package middleware

import (
	"context"

	"typedrill/internal/models"
)

type ctxKey string

const (
	ContextRole ctxKey = "role"
	ContextText ctxKey = "text"
)

// RoleFromContext returns the role set by JWTAuth.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(ContextRole).(string)
	return role, ok
}

// TextFromContext returns the text attached by TextOwnership. Handlers
// behind the guard can rely on it being present and owned by the caller.
func TextFromContext(ctx context.Context) (*models.Text, bool) {
	t, ok := ctx.Value(ContextText).(*models.Text)
	return t, ok
}
