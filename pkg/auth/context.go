package auth

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const apiKeyKey contextKey = "api_key"

// ErrAPIKeyNotFound is returned when no API key exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrAPIKeyNotFound = errors.New("api key not found in context")

// APIKeyFromCtx extracts the authenticated API key from the request context.
// Returns ErrAPIKeyNotFound if no key is set (unauthenticated request).
func APIKeyFromCtx(ctx context.Context) (string, error) {
	key, ok := ctx.Value(apiKeyKey).(string)
	if !ok || key == "" {
		return "", ErrAPIKeyNotFound
	}
	return key, nil
}

// WithAPIKey returns a new context with the given API key attached.
// Used by authentication middleware after validating the request.
func WithAPIKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, apiKeyKey, key)
}
