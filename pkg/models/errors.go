package models

import (
	"errors"
	"net/http"
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthenticationError reports missing or invalid credentials or tokens.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

func NewNotFoundError(message string) error {
	return &NotFoundError{Message: message}
}

// HTTPStatus maps an error from the domain taxonomy to a response status.
// Anything outside the taxonomy is treated as a server error.
func HTTPStatus(err error) int {
	var (
		validationErr *ValidationError
		authErr       *AuthenticationError
		notFoundErr   *NotFoundError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
