// Package ctxutil carries request-scoped values through contexts with
// typed keys.
package ctxutil

import (
	"context"
)

type ctxKey string

const (
	principalIDKey ctxKey = "principal_id"
	requestIDKey   ctxKey = "request_id"
)

// WithPrincipalID stores the signed-in principal's id in the context.
func WithPrincipalID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, principalIDKey, id)
}

// PrincipalIDFromCtx extracts the principal id from the context.
// Returns "" and false if the value is missing, empty, or the wrong type.
func PrincipalIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(principalIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
