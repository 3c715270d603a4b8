package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/bankfinder/internal/logger"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, log logger.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("failed to write response", logger.Error(err))
	}
}

// Error maps err to a status code and an ErrorResponse. Untyped errors are
// logged and hidden behind a generic message.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	var (
		notFound    *NotFoundError
		validation  *ValidationError
		unavailable *UnavailableError
	)

	switch {
	case errors.As(err, &notFound):
		JSON(w, log, http.StatusNotFound, ErrorResponse{Code: "not_found", Message: notFound.Message})
	case errors.As(err, &validation):
		JSON(w, log, http.StatusBadRequest, ErrorResponse{Code: "invalid_input", Message: validation.Message})
	case errors.As(err, &unavailable):
		w.Header().Set("Retry-After", "1")
		JSON(w, log, http.StatusServiceUnavailable, ErrorResponse{Code: "unavailable", Message: unavailable.Message})
	default:
		log.Error("request failed",
			logger.String("path", r.URL.Path),
			logger.String("request_id", middleware.GetReqID(r.Context())),
			logger.Error(err))
		JSON(w, log, http.StatusInternalServerError, ErrorResponse{Code: "internal_error", Message: "An unexpected error occurred"})
	}
}
