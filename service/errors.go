package service

import (
	"errors"
	"fmt"
)

// Reason is the machine readable tag of a validation failure.
type Reason string

const (
	ReasonMissingOrInvalidSides Reason = "missing_or_invalid_sides"
	ReasonTooFewSides           Reason = "too_few_sides"
	ReasonInvalidSideLength     Reason = "invalid_side_length"
	ReasonMissingUnit           Reason = "missing_unit"
)

// ValidationError reports which input rule a PolygonSpec broke.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches any ValidationError with the same reason, so callers can write
// errors.Is(err, service.ErrTooFewSides).
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}

var (
	ErrMissingOrInvalidSides = &ValidationError{
		Reason:  ReasonMissingOrInvalidSides,
		Message: "number of sides is required and must be a whole number",
	}
	ErrTooFewSides = &ValidationError{
		Reason:  ReasonTooFewSides,
		Message: fmt.Sprintf("number of sides must be an integer greater than or equal to %d", MinSides),
	}
	ErrInvalidSideLength = &ValidationError{
		Reason:  ReasonInvalidSideLength,
		Message: "side length must be a positive number",
	}
	ErrMissingUnit = &ValidationError{
		Reason:  ReasonMissingUnit,
		Message: "unit is required",
	}

	// ErrComputationFailed is returned when the formula produces a value that
	// cannot be represented, e.g. an overflow for huge side lengths.
	ErrComputationFailed = errors.New("an error occurred while performing the calculation")
)
