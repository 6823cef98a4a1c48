package arbitrary

import (
	"errors"
	"fmt"
)

// Common errors returned by generators and combinators.
var (
	// ErrInvalidConfiguration is returned eagerly by shape and refinement
	// constructors that receive malformed parameters (min > max, probability
	// outside [0, 1], empty character tables).
	ErrInvalidConfiguration = errors.New("invalid generator configuration")

	// ErrFixedValueFilterMiss is returned when a fixed generator's single
	// possible value cannot satisfy a filter or uniqueness requirement.
	ErrFixedValueFilterMiss = errors.New("fixed value cannot satisfy constraint")

	// ErrRetryBudgetExhausted is returned when a non-fixed generator produced
	// no satisfying value within the retry budget.
	ErrRetryBudgetExhausted = errors.New("retry budget exhausted")

	// ErrBackendContract is returned when a backend or length generator hands
	// back a value outside the domain it was asked to draw from.
	ErrBackendContract = errors.New("backend returned value outside domain")
)

// ConstraintError describes a terminal failure of a filter or uniqueness
// combinator. It unwraps to ErrFixedValueFilterMiss when the wrapped generator
// was fixed and to ErrRetryBudgetExhausted otherwise.
type ConstraintError struct {
	// Op is the combinator that gave up ("filter", "filterCharacter", "unique").
	Op string

	// Attempts is the number of draws made before giving up.
	Attempts int

	// Fixed reports whether the wrapped generator was fixed.
	Fixed bool

	// Value is the last rejected value.
	Value any
}

func (e *ConstraintError) Error() string {
	if e.Fixed {
		return fmt.Sprintf("%s: %v: %v", e.Op, ErrFixedValueFilterMiss, e.Value)
	}
	return fmt.Sprintf("%s: %v after %d attempts (last value %v)", e.Op, ErrRetryBudgetExhausted, e.Attempts, e.Value)
}

// Unwrap returns the sentinel matching the failure kind.
func (e *ConstraintError) Unwrap() error {
	if e.Fixed {
		return ErrFixedValueFilterMiss
	}
	return ErrRetryBudgetExhausted
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
