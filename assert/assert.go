// assert contains argument validation helpers shared by the boid packages.
// Each helper returns nil when every value passes, otherwise an error wrapping
// ErrAssertion that names the first offending argument by its 1-based position.
package assert

import (
	"errors"
	"fmt"
)

// ErrAssertion is wrapped by every error returned from this package.
var ErrAssertion error = errors.New("assertion failed")

// IsTrue validates that all of the passed values are true.
func IsTrue(values ...bool) error {
	for i, value := range values {
		if !value {
			return fmt.Errorf("%w: argument %d of %d false", ErrAssertion, i+1, len(values))
		}
	}
	return nil
}

// Positive validates that all of the passed values are strictly greater than zero.
// NaN is not positive.
func Positive(values ...float64) error {
	for i, value := range values {
		if !(value > 0) {
			return fmt.Errorf("%w: argument %d of %d value %v", ErrAssertion, i+1, len(values), value)
		}
	}
	return nil
}

// Range validates that min <= value <= max.
func Range(value, min, max float64) error {
	if value < min {
		return fmt.Errorf("%w: %v<%v", ErrAssertion, value, min)
	}
	if value > max {
		return fmt.Errorf("%w: %v>%v", ErrAssertion, value, max)
	}
	return nil
}

// NonEmpty validates that none of the passed strings are empty.
func NonEmpty(values ...string) error {
	for i, value := range values {
		if value == "" {
			return fmt.Errorf("%w: argument %d of %d empty", ErrAssertion, i+1, len(values))
		}
	}
	return nil
}
