package handlers

import (
	"errors"
	"net/http"

	"clubdvigi-api/internal/services"
	"clubdvigi-api/internal/shopify"
)

// Error messages shown to the storefront form
const (
	msgEmailRequired    = "Email requerido"
	msgNotConfigured    = "Faltan variables de entorno"
	msgMethodNotAllowed = "Method not allowed"
	msgServerError      = "Server error"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error" example:"Email requerido"`
}

// EmptyResponse is the {} body of a lookup miss
type EmptyResponse struct{}

// errorStatus maps a service error to a status code and body. The returned
// error is non-nil only for unexpected failures.
func errorStatus(err error) (int, any, error) {
	switch {
	case errors.Is(err, services.ErrEmailRequired):
		return http.StatusBadRequest, ErrorResponse{Error: msgEmailRequired}, nil
	case errors.Is(err, services.ErrNotConfigured):
		return http.StatusInternalServerError, ErrorResponse{Error: msgNotConfigured}, nil
	case errors.Is(err, services.ErrCustomerNotFound):
		return http.StatusNotFound, EmptyResponse{}, nil
	}

	if userErr, ok := shopify.IsUserError(err); ok {
		return http.StatusBadRequest, ErrorResponse{Error: userErr.Message}, nil
	}

	message := err.Error()
	if message == "" {
		message = msgServerError
	}
	return http.StatusInternalServerError, ErrorResponse{Error: message}, err
}
