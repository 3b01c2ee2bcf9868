// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/partsflow/partsflow/pkg/httpx"
	bomdomain "github.com/partsflow/partsflow/services/bom/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, bomdomain.ErrEmptyBom):
		return http.StatusBadRequest // 400
	case errors.Is(err, bomdomain.ErrUnparsableBom):
		return http.StatusBadRequest // 400
	case errors.Is(err, bomdomain.ErrUnknownProvider):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, bomdomain.ErrProjectNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, bomdomain.ErrProviderUnavailable):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
