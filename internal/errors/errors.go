// Package errors defines domain error values shared across services.
// Handlers use these to decide which failures are the client's fault.
package errors

import "errors"

// DomainError is a client-caused failure with a stable machine code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is allows errors.Is matching by code.
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if errors.As(target, &de) {
		return de.Code == e.Code
	}
	return false
}
