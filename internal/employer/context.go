package employer

import (
	"context"
	"strings"
)

// ContextKey is the request context key for the acting employer ID.
type ContextKey struct{}

// WithID stores the employer ID in the context.
func WithID(ctx context.Context, employerID string) context.Context {
	return context.WithValue(ctx, ContextKey{}, strings.TrimSpace(employerID))
}

// IDFromContext returns the employer ID from context, if set.
func IDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, ok := ctx.Value(ContextKey{}).(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// IDOrDefault returns the employer ID stored in ctx or def when absent.
func IDOrDefault(ctx context.Context, def string) string {
	if id, ok := IDFromContext(ctx); ok {
		return id
	}
	return strings.TrimSpace(def)
}
