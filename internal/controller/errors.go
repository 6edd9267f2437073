package controller

import (
	"errors"
	"net/http"

	"shipment-tracker/internal/repository"
)

// statusFor maps the repository error taxonomy to HTTP codes. A store
// outage must surface as 503, never as a 404.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrValidation), errors.Is(err, repository.ErrDuplicateOrder):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
