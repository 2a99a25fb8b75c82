package models

import "errors"

// ErrorKind classifies a domain error so handlers can map it to an HTTP
// status without inspecting message text.
type ErrorKind string

const (
	ErrKindValidation ErrorKind = "validation"
	ErrKindNotFound   ErrorKind = "not_found"
	ErrKindConflict   ErrorKind = "conflict"
	ErrKindForbidden  ErrorKind = "forbidden"
	ErrKindState      ErrorKind = "state"
)

// DomainError is raised from inside the owning transaction and rolls it back
// fully. It carries a message-catalog key plus interpolation args instead of
// literal text; rendering happens at the edge.
type DomainError struct {
	Kind ErrorKind         `json:"kind"`
	Key  string            `json:"key"`
	Args map[string]string `json:"args,omitempty"`
}

// Error returns the message key. Handlers render the localized text.
func (e *DomainError) Error() string {
	return string(e.Kind) + ": " + e.Key
}

// NewValidationError reports malformed or unacceptable input.
func NewValidationError(key string, args map[string]string) *DomainError {
	return &DomainError{Kind: ErrKindValidation, Key: key, Args: args}
}

// NewNotFoundError reports an absent flight/booking/ticket/refund.
func NewNotFoundError(key string, args map[string]string) *DomainError {
	return &DomainError{Kind: ErrKindNotFound, Key: key, Args: args}
}

// NewConflictError reports stale client state (duplicate refund, refunded ticket).
func NewConflictError(key string, args map[string]string) *DomainError {
	return &DomainError{Kind: ErrKindConflict, Key: key, Args: args}
}

// NewForbiddenError reports an ownership violation.
func NewForbiddenError(key string) *DomainError {
	return &DomainError{Kind: ErrKindForbidden, Key: key}
}

// NewStateError reports an operation attempted in the wrong lifecycle state.
func NewStateError(key string, args map[string]string) *DomainError {
	return &DomainError{Kind: ErrKindState, Key: key, Args: args}
}

// KindOf extracts the ErrorKind from err, unwrapping as needed.
func KindOf(err error) (ErrorKind, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
