package store

import (
	"errors"
	"fmt"
)

// ErrCodeRunNotFound indicates an operation on a run id with no record.
const ErrCodeRunNotFound = "RUN_NOT_FOUND"

// RunNotFoundError reports an operation against a run id that has no
// record in the runs table.
type RunNotFoundError struct {
	RunID int64
}

func (e *RunNotFoundError) Error() string {
	return fmt.Sprintf("%s: no run with id %d", ErrCodeRunNotFound, e.RunID)
}

// IsRunNotFound returns true if err reports a missing run.
// Uses errors.As to handle wrapped errors.
func IsRunNotFound(err error) bool {
	var re *RunNotFoundError
	return errors.As(err, &re)
}
