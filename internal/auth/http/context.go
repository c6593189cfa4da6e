// Package http provides gin middleware for request authentication.
package http

import (
	"context"

	"github.com/allisson/analytics/internal/auth/domain"
)

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying the authenticated principal.
func WithPrincipal(ctx context.Context, principal *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal returns the authenticated principal from ctx, or nil and false
// when the request is unauthenticated.
func GetPrincipal(ctx context.Context) (*domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*domain.Principal)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}
