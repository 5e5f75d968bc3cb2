package context

import (
	stdcontext "context"
	"strings"
)

type requestIDKey struct{}

// WithRequestID stores the request correlation ID in the context.
func WithRequestID(ctx stdcontext.Context, requestID string) stdcontext.Context {
	return stdcontext.WithValue(ctx, requestIDKey{}, strings.TrimSpace(requestID))
}

// RequestIDFromContext returns the request correlation ID or an empty string.
func RequestIDFromContext(ctx stdcontext.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey{}).(string)
	return value
}
