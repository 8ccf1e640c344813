package obscontext

import (
	"context"
	"strings"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RouteLabel normalizes a matched route for telemetry labels. Unmatched
// requests (gin's FullPath returns "") collapse into one label so 404 probes
// cannot explode label cardinality.
func RouteLabel(route string) string {
	if strings.TrimSpace(route) == "" {
		return "unknown"
	}
	return route
}

// WithRequestID stores the request id on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request id, or "" when unset.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}
