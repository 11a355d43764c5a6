package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Error codes.
const (
	CodeInvalidTransition   = "ORD_001"
	CodeTerminalState       = "ORD_002"
	CodeInsufficientBalance = "WAL_001"
	CodeInvalidAmount       = "WAL_002"
	CodeDuplicateAdjustment = "WAL_003"
	CodeNotFound            = "GEN_404"
	CodeValidation          = "VAL_001"
	CodeInvalidToken        = "AUTH_003"
	CodeForbidden           = "AUTH_005"
	CodeRateLimited         = "RATE_001"
	CodeInternal            = "SYS_001"
	CodeConflict            = "SYS_409"
	CodeUnavailable         = "SYS_503"
	CodeTimeout             = "SYS_504"
)

// ---- Order lifecycle (ORD) ----

func ErrInvalidTransition(from, to string) *AppError {
	return New(CodeInvalidTransition, fmt.Sprintf("Transition %s -> %s is not allowed", from, to), http.StatusUnprocessableEntity)
}

func ErrTerminalState(status string) *AppError {
	return New(CodeTerminalState, fmt.Sprintf("Order in status %s has no further transitions", status), http.StatusConflict)
}

// ---- Wallet ledger (WAL) ----

func ErrInsufficientBalance() *AppError {
	return New(CodeInsufficientBalance, "Insufficient balance in wallet", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New(CodeInvalidAmount, "Invalid amount", http.StatusBadRequest)
}

func ErrDuplicateAdjustment() *AppError {
	return New(CodeDuplicateAdjustment, "Adjustment reference already used with different parameters", http.StatusConflict)
}

// ---- Generic ----

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// Validation returns a VAL_001 validation error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New(CodeForbidden, "Actor is not allowed to perform this action", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// ErrConflict signals a concurrent modification or an already-applied change.
// Callers may retry after re-reading.
func ErrConflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

func ErrTimeout(err error) *AppError {
	return Wrap(CodeTimeout, "Operation timed out", http.StatusGatewayTimeout, err)
}

func ErrUnavailable(err error) *AppError {
	return Wrap(CodeUnavailable, "Storage temporarily unavailable", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// CodeOf returns the AppError code carried by err, or "" if there is none.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// Retryable reports whether a client may safely retry the failed operation.
func Retryable(err error) bool {
	switch CodeOf(err) {
	case CodeConflict, CodeTimeout, CodeUnavailable:
		return true
	}
	return false
}
