package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/smartmatch-advisor/internal/apperrors"
	"github.com/jonathan/smartmatch-advisor/internal/store"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error      string `json:"error"`
	Detail     string `json:"detail,omitempty"`
	StatusCode int    `json:"status_code"`
}

// httpStatus maps pipeline errors to HTTP status codes.
func httpStatus(err error) int {
	var (
		validationErr *apperrors.ValidationError
		dataErr       *apperrors.DataProcessingError
		serviceErr    *apperrors.ExternalServiceError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &dataErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &serviceErr):
		return http.StatusBadGateway
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
