package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"auracore/internal/core"
	"auracore/internal/manager"
	"auracore/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Reason: reason, Code: status})
}

// statusFor maps a service error to an HTTP status and failure code.
func statusFor(err error) (int, string) {
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode(), core.Code(err)
	}
	code := core.Code(err)
	switch {
	case errors.Is(err, core.ErrNullInput):
		return http.StatusBadRequest, code
	case manager.IsTooBusy(err):
		return http.StatusTooManyRequests, code
	case manager.IsModelLoadError(err), manager.IsSessionNotReady(err), manager.IsDependencyUnavailable(err):
		return http.StatusServiceUnavailable, code
	case code == core.CodeTimeout:
		return http.StatusGatewayTimeout, code
	}
	return http.StatusInternalServerError, code
}
