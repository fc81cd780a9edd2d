package enforce

import (
	"errors"
	"fmt"
)

// Enforcement error codes.
const (
	// ErrCodeNonDistinctValue indicates a Set with a value equal to the
	// stored one while the cell requires each value to differ.
	ErrCodeNonDistinctValue = "NON_DISTINCT_VALUE"

	// ErrCodeStaleRead indicates a second Get without an intervening Set
	// on a strict cell.
	ErrCodeStaleRead = "STALE_READ"

	// ErrCodeStaleParameter indicates a consumption sweep found a cell
	// whose value was already claimed by an earlier sweep.
	ErrCodeStaleParameter = "STALE_PARAMETER"
)

// NonDistinctValueError reports a repeated Set value on a must-differ cell.
// The cell state is unchanged by the failed call.
type NonDistinctValueError struct {
	Cell  string
	Value any
}

func (e *NonDistinctValueError) Error() string {
	return fmt.Sprintf("%s: new value for %q must differ from the previous one (got %v)", ErrCodeNonDistinctValue, e.Cell, e.Value)
}

// StaleReadError reports a repeated Get on a strict cell whose value was
// already read since the last Set.
type StaleReadError struct {
	Cell  string
	Value any
}

func (e *StaleReadError) Error() string {
	return fmt.Sprintf("%s: value of %q was already read since the last set", ErrCodeStaleRead, e.Cell)
}

// StaleParameterError reports that a consumption sweep found a cell whose
// current value was already consumed by a previous measurement and has
// not been re-set since.
type StaleParameterError struct {
	Cell  string
	Value any
	Unit  string
}

func (e *StaleParameterError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("%s: %q still holds the value consumed by a previous measurement (%v %s)", ErrCodeStaleParameter, e.Cell, e.Value, e.Unit)
	}
	return fmt.Sprintf("%s: %q still holds the value consumed by a previous measurement (%v)", ErrCodeStaleParameter, e.Cell, e.Value)
}

// IsNonDistinctValue returns true if err is a repeated-value Set failure.
// Uses errors.As to handle wrapped errors.
func IsNonDistinctValue(err error) bool {
	var ne *NonDistinctValueError
	return errors.As(err, &ne)
}

// IsStaleRead returns true if err is a strict-mode repeated read failure.
// Uses errors.As to handle wrapped errors.
func IsStaleRead(err error) bool {
	var se *StaleReadError
	return errors.As(err, &se)
}

// IsStaleParameter returns true if err is a consumption sweep failure.
// Uses errors.As to handle wrapped errors.
func IsStaleParameter(err error) bool {
	var se *StaleParameterError
	return errors.As(err, &se)
}
