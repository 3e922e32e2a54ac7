package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}

	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}

	// Business-rule errors surfaced by the order/refund/shift core
	ErrNoStoreAssigned     = &AppError{Code: http.StatusUnprocessableEntity, Message: "Cashier has no store assigned"}
	ErrPaymentNotConfirmed = &AppError{Code: http.StatusUnprocessableEntity, Message: "Card payment not confirmed. Complete the payment first"}
	ErrShiftAlreadyOpen    = &AppError{Code: http.StatusConflict, Message: "An open shift already exists for this cashier"}
	ErrNoActiveShift       = &AppError{Code: http.StatusConflict, Message: "No active shift for this cashier"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewInsufficientStockError reports a stock shortfall with enough context for
// the caller to correct the order and retry.
func NewInsufficientStockError(productName string, available, requested int) *AppError {
	return &AppError{
		Code: http.StatusUnprocessableEntity,
		Message: fmt.Sprintf("Insufficient stock for '%s'. Available: %d, Requested: %d",
			productName, available, requested),
	}
}

// NewProductNotStockedError reports a product with no inventory record in the store
func NewProductNotStockedError(productName string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: fmt.Sprintf("Product '%s' is not available in inventory", productName),
	}
}

// NewGatewayError wraps a payment gateway failure. It maps to 502 so callers
// can tell "try again later" apart from "your request is invalid".
func NewGatewayError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: message,
	}
}

// NewGatewayUnavailableError reports an unconfigured or unreachable payment gateway
func NewGatewayUnavailableError() *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Message: "Payment gateway is not configured",
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
