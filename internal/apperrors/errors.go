package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource
// (e.g. reversing an already-reversed transaction, transferring an account to itself).
var ErrConflict = errors.New("conflict with current resource state")

// ErrForbidden indicates the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrAccountInactive indicates a posting was attempted against an INACTIVE chart-of-account entry.
var ErrAccountInactive = errors.New("account is inactive")

// ErrImmutableAccount indicates an attempt to modify or deactivate a system-generated account.
var ErrImmutableAccount = errors.New("system-generated account cannot be modified")

// ErrInsufficientFunds indicates a balance mutation would drive a non-overdraft
// organization account negative. The operation is rolled back entirely.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrContention indicates a mutating operation exhausted its retry budget due to
// concurrent writers (serialization failure or deadlock at the storage layer).
var ErrContention = errors.New("operation aborted due to contention")

// ErrInternal indicates an unexpected internal failure; details are logged, not surfaced.
var ErrInternal = errors.New("internal error")

// AppError wraps a storage or infrastructure failure with an HTTP-ish status code
// and a caller-safe message. The underlying cause is kept for logging via Unwrap.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError for persistence-layer failures.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that also matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
