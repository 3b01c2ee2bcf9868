// Package auth gates the HTTP API behind static API keys. Keys arrive in the
// X-API-Key header or as a Bearer token; comparison is constant-time.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/partsflow/partsflow/pkg/httpx"
	"github.com/partsflow/partsflow/pkg/logger"
)

// RequireAPIKey is a chi middleware that enforces authentication via API key.
// The key is read from the X-API-Key header, falling back to a Bearer token
// in Authorization. Returns 401 Unauthorized when the key is missing or does
// not match any accepted key.
//
// After this middleware, handlers can safely call auth.APIKeyFromCtx(r.Context()).
func RequireAPIKey(keys []string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := extractKey(r)
			if presented == "" {
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}

			if !matchKey(presented, keys) {
				log.WarnContext(r.Context(), "rejected api key", "remote_addr", r.RemoteAddr)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid api key"})
				return
			}

			ctx := WithAPIKey(r.Context(), presented)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractKey reads the presented key from X-API-Key, then Authorization: Bearer.
func extractKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	authz := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(authz, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

// matchKey compares presented against every accepted key in constant time.
// Every key is checked regardless of earlier matches so timing does not leak
// which key matched.
func matchKey(presented string, keys []string) bool {
	matched := false
	for _, key := range keys {
		if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) == 1 {
			matched = true
		}
	}
	return matched
}
