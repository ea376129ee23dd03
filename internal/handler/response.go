package handler

// JSON RESPONSES:
// Almost every route renders HTML. DELETE /venues/{id} is the exception: it
// is called from scripts and fetch(), so its errors come back as JSON with
// one fixed shape:
//   {"error": "not_found", "message": "venue not found with id abc123"}
//
// Success is a bare 204 with no body.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/venue-booking/internal/apperror"
)

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set before the body. Once Encode writes,
// later header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a service error to a status code and a JSON body. The
// DELETE endpoint can only fail with a missing venue or a failed write.
//
// errors.Is walks the whole chain, so this works through the service's
// fmt.Errorf("deleting venue: %w", ...) wrapping.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.Is(err, apperror.ErrNotFound) && errors.As(err, &appErr) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: appErr.Message})
		return
	}

	// NEVER expose the cause: a persistence error may carry SQL.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
