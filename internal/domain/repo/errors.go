package repo

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeNotFound        = "NOT_FOUND"
	CodeUpstreamFailure = "UPSTREAM_FAILURE"
	CodeTransport       = "TRANSPORT"
	CodeInvalidArgument = "INVALID_ARGUMENT"
)

// NotFoundMessage is the outward message for an unknown user, independent of
// the upstream wording.
const NotFoundMessage = "Not Found"

// Domain errors

type DomainError struct {
	Code    string
	Message string
	// Status is the upstream HTTP status for UPSTREAM_FAILURE, zero otherwise.
	Status int
	Err    error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Predefined domain errors

func ErrNotFound() *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: NotFoundMessage,
	}
}

func ErrUpstreamFailure(status int, body string) *DomainError {
	return &DomainError{
		Code:    CodeUpstreamFailure,
		Message: fmt.Sprintf("upstream returned status %d: %s", status, body),
		Status:  status,
	}
}

func ErrTransport(err error) *DomainError {
	return &DomainError{
		Code:    CodeTransport,
		Message: "upstream request failed",
		Err:     err,
	}
}

func ErrInvalidArgument(field string, err error) *DomainError {
	return &DomainError{
		Code:    CodeInvalidArgument,
		Message: fmt.Sprintf("invalid %s", field),
		Err:     err,
	}
}

// CodeOf returns the code of the first DomainError in err's chain, or "".
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

func IsUpstreamFailure(err error) bool {
	return CodeOf(err) == CodeUpstreamFailure
}

func IsTransport(err error) bool {
	return CodeOf(err) == CodeTransport
}
