// Package requestid correlates console requests with the backend calls they cause.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header carries the id on inbound and outbound HTTP requests.
const Header = "X-Request-Id"

type ctxKey struct{}

// New returns a short random id, the same shape the backend uses in its logs.
func New() string {
	return uuid.New().String()[:8]
}

// WithContext stores id in ctx.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
