package shared

import "errors"

// DomainError represents a domain-level error with a stable, machine-readable code.
// The HTTP layer maps codes to status codes; callers switch on Code, not Message.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Business-rule failures are terminal for the basket as
// submitted; only ErrStorageFailure is a candidate for caller-level retry.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrSerializedMismatch  = NewDomainError("SERIALIZED_MISMATCH", "Serial numbers do not match sellable units")
	ErrPricingAuthRequired = NewDomainError("PRICING_AUTH_REQUIRED", "Price list requires supervisory authorization")
	ErrPricingAuthDenied   = NewDomainError("PRICING_AUTH_DENIED", "Authorizing user lacks the required role")
	ErrCreditRejected      = NewDomainError("CREDIT_REJECTED", "Customer is not eligible for credit sales")
	ErrNoOpenSession       = NewDomainError("NO_OPEN_SESSION", "No open cash register session")
	ErrDuplicateBasket     = NewDomainError("DUPLICATE_BASKET", "Basket with this idempotency key was already processed")
	ErrStorageFailure      = NewDomainError("STORAGE_FAILURE", "Underlying transaction could not commit")
)

// IsCode reports whether err is, or wraps, a DomainError carrying the given code.
func IsCode(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}

// CodeOf returns the domain error code carried by err, or empty when err is not
// a domain error.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
