package serverutils

import "github.com/gofiber/fiber/v2"

// ApiError is the error services return for anything a client should learn
// about. Everything else is reported as a generic 500 at the boundary.
type ApiError struct {
	Status  int
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(status int, message string) *ApiError {
	return &ApiError{Status: status, Message: message}
}

func NewValidationError(message string) *ApiError {
	return NewApiError(fiber.StatusBadRequest, message)
}

// NewConflict reports a duplicate email. The observed API answers 400, not
// 409, so the status mirrors that contract.
func NewConflict(message string) *ApiError {
	return NewApiError(fiber.StatusBadRequest, message)
}

func NewNotFound(message string) *ApiError {
	return NewApiError(fiber.StatusNotFound, message)
}

func NewForbidden(message string) *ApiError {
	return NewApiError(fiber.StatusForbidden, message)
}

func NewUnauthorized(message string) *ApiError {
	return NewApiError(fiber.StatusUnauthorized, message)
}

func NewNotifierError(message string) *ApiError {
	return NewApiError(fiber.StatusInternalServerError, message)
}
