package component

import (
	"errors"
	"fmt"
)

// Registry error codes.
const (
	// ErrCodeDuplicateComponent indicates a name collision between two
	// distinct components.
	ErrCodeDuplicateComponent = "DUPLICATE_COMPONENT"

	// ErrCodeNotRegistered indicates a removal of a name that holds no
	// component.
	ErrCodeNotRegistered = "NOT_REGISTERED"
)

// DuplicateComponentError reports that Add was called with a component
// whose name is already held by a different component.
type DuplicateComponentError struct {
	Name string
	Kind Kind
}

func (e *DuplicateComponentError) Error() string {
	return fmt.Sprintf("%s: a different component is already registered as %q", ErrCodeDuplicateComponent, e.Name)
}

// NotRegisteredError reports a Remove of an absent name.
type NotRegisteredError struct {
	Name string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("%s: no component registered as %q", ErrCodeNotRegistered, e.Name)
}

// IsDuplicateComponent returns true if err is a duplicate-name collision.
// Uses errors.As to handle wrapped errors.
func IsDuplicateComponent(err error) bool {
	var de *DuplicateComponentError
	return errors.As(err, &de)
}

// IsNotRegistered returns true if err is a removal of an absent name.
// Uses errors.As to handle wrapped errors.
func IsNotRegistered(err error) bool {
	var ne *NotRegisteredError
	return errors.As(err, &ne)
}
