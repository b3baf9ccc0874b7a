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

// ErrConflict indicates the resource is in a state that conflicts with the requested operation.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Engine taxonomy. These are detected before any write; the engine never
// leaves a transaction half-posted.

// ErrInvalidState indicates the entity is in the wrong lifecycle state for the
// requested operation (e.g. posting a POSTED transaction).
var ErrInvalidState = errors.New("invalid state for requested operation")

// ErrUnbalancedTransaction indicates debit and credit totals differ.
var ErrUnbalancedTransaction = errors.New("transaction lines do not balance")

// ErrEmptyTransaction indicates a post was attempted with no lines.
var ErrEmptyTransaction = errors.New("transaction has no lines")

// ErrOverAllocation indicates an allocation exceeds the document balance or
// the cash transaction's unallocated amount.
var ErrOverAllocation = errors.New("allocation exceeds available balance")

// ErrAlreadyAllocated indicates an allocation between the same cash
// transaction and document already exists.
var ErrAlreadyAllocated = errors.New("allocation already exists for this pair")

// ErrExceedsBalance indicates a credit/debit note posts beyond the remaining
// balance of the document it offsets.
var ErrExceedsBalance = errors.New("note exceeds remaining document balance")

// ErrHasAllocations indicates a void is blocked by dependent allocations.
var ErrHasAllocations = errors.New("transaction has active allocations")

// AppError wraps an underlying error with an HTTP-ish status code and a message.
// Repositories use it to surface infrastructure failures without leaking driver details.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
