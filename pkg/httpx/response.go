package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as a JSON body with the given status code, setting
// Content-Type and X-Content-Type-Options. Encoding errors are discarded,
// so this suits handler responses rather than streaming.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes a standard {"error": message} JSON response.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// SafeError returns the message to expose to a client for err. When
// isProduction is true, 5xx messages are replaced with the generic status
// text so internals never leak.
func SafeError(err error, status int, isProduction bool) string {
	if isProduction && status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
