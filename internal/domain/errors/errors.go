package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrAlreadyExists        = errors.New("resource already exists")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidState         = errors.New("invalid state")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrBelowMinimumPayout   = errors.New("amount below minimum payout")
	ErrNoActiveSubscription = errors.New("no active subscription")
	ErrOutOfStock           = errors.New("insufficient stock")
	ErrConflict             = errors.New("conflicting request in progress")
)

// Stable error codes surfaced to API clients.
const (
	CodeNotFound             = "ERR_NOT_FOUND"
	CodeAlreadyExists        = "ERR_ALREADY_EXISTS"
	CodeInvalidInput         = "ERR_INVALID_INPUT"
	CodeInvalidState         = "ERR_INVALID_STATE"
	CodeUnauthorized         = "ERR_UNAUTHORIZED"
	CodeForbidden            = "ERR_FORBIDDEN"
	CodeInsufficientBalance  = "ERR_INSUFFICIENT_BALANCE"
	CodeBelowMinimumPayout   = "ERR_BELOW_MINIMUM_PAYOUT"
	CodeNoActiveSubscription = "ERR_NO_ACTIVE_SUBSCRIPTION"
	CodeOutOfStock           = "ERR_OUT_OF_STOCK"
	CodeConflict             = "ERR_CONFLICT"
	CodeInternalError        = "ERR_INTERNAL"
)

// AppError represents an application error with an HTTP status and stable code
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func InvalidState(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeInvalidState, message, ErrInvalidState)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrConflict)
}

func InsufficientBalance(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeInsufficientBalance, message, ErrInsufficientBalance)
}

func BelowMinimumPayout(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeBelowMinimumPayout, message, ErrBelowMinimumPayout)
}

func NoActiveSubscription(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeNoActiveSubscription, message, ErrNoActiveSubscription)
}

func OutOfStock(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeOutOfStock, message, ErrOutOfStock)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// FromDomain maps a sentinel domain error to an AppError with the given
// message, defaulting to an internal error for unknown causes.
func FromDomain(err error, message string) *AppError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NotFound(message)
	case errors.Is(err, ErrInvalidInput):
		return BadRequest(message)
	case errors.Is(err, ErrInvalidState):
		return InvalidState(message)
	case errors.Is(err, ErrInsufficientBalance):
		return InsufficientBalance(message)
	case errors.Is(err, ErrBelowMinimumPayout):
		return BelowMinimumPayout(message)
	case errors.Is(err, ErrNoActiveSubscription):
		return NoActiveSubscription(message)
	case errors.Is(err, ErrOutOfStock):
		return OutOfStock(message)
	case errors.Is(err, ErrConflict):
		return Conflict(message)
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return Unauthorized(message)
	case errors.Is(err, ErrForbidden):
		return Forbidden(message)
	case errors.Is(err, ErrAlreadyExists):
		return NewAppError(http.StatusConflict, CodeAlreadyExists, message, err)
	}
	return InternalError(err)
}
