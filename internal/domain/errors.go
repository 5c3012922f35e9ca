package domain

import (
	"errors"
	"fmt"
)

// ValidationError rejects bad user input at the service boundary,
// before anything touches storage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func IsValidationError(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// DataUnavailableError means a collaborator returned empty or
// insufficient market data for the request. It is reportable, not fatal,
// and the next invocation retries independently.
type DataUnavailableError struct {
	Symbol string
	Reason string
}

func (e DataUnavailableError) Error() string {
	return fmt.Sprintf("no usable market data for %s: %s", e.Symbol, e.Reason)
}

func IsDataUnavailableError(err error) bool {
	var d DataUnavailableError
	return errors.As(err, &d)
}
