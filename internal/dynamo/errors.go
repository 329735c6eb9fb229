package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidParameter indicates a parameter outside its valid range.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrAllocation indicates storage for a trajectory or flip matrix could not be obtained.
	ErrAllocation = errors.New("dynamo: cannot allocate result storage")
)

// ParamError names the offending parameter and its value.
type ParamError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s = %g: %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

func invalid(field string, value float64, reason string) error {
	return &ParamError{Field: field, Value: value, Reason: reason}
}

// AllocError reports how much storage was requested.
type AllocError struct {
	What  string
	Count int
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("%s: %s (%d elements)", ErrAllocation, e.What, e.Count)
}

func (e *AllocError) Unwrap() error {
	return ErrAllocation
}
