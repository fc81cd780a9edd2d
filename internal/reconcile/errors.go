package reconcile

import (
	"errors"
	"fmt"
)

// Reconciliation error codes.
const (
	// ErrCodeUntrackedComponent indicates a live component that belongs
	// to no profile at all, active or inactive.
	ErrCodeUntrackedComponent = "UNTRACKED_COMPONENT"

	// ErrCodeAmbiguousComponent indicates two distinct component objects
	// sharing a name inside one catalogue.
	ErrCodeAmbiguousComponent = "AMBIGUOUS_COMPONENT"

	// ErrCodeUnknownProfile indicates an active profile name that is not
	// in the catalogue.
	ErrCodeUnknownProfile = "UNKNOWN_PROFILE"
)

// UntrackedComponentError reports registry drift: a component is live in
// the registry but referenced by no profile, so the reconciler cannot
// decide whether it should stay or go.
type UntrackedComponentError struct {
	Name string
}

func (e *UntrackedComponentError) Error() string {
	return fmt.Sprintf("%s: component %q is registered but belongs to no profile", ErrCodeUntrackedComponent, e.Name)
}

// AmbiguousComponentError reports that SetProfiles was given two distinct
// component objects under the same name. Identity is by name, so the
// catalogue must resolve to exactly one object per name.
type AmbiguousComponentError struct {
	Name     string
	Profiles []string // profiles referencing the conflicting objects, sorted
}

func (e *AmbiguousComponentError) Error() string {
	return fmt.Sprintf("%s: profiles %v bind different components to the name %q", ErrCodeAmbiguousComponent, e.Profiles, e.Name)
}

// UnknownProfileError reports an active profile name missing from the
// catalogue.
type UnknownProfileError struct {
	Profile string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("%s: no profile named %q in the catalogue", ErrCodeUnknownProfile, e.Profile)
}

// IsUntrackedComponent returns true if err reports registry drift.
// Uses errors.As to handle wrapped errors.
func IsUntrackedComponent(err error) bool {
	var ue *UntrackedComponentError
	return errors.As(err, &ue)
}

// IsAmbiguousComponent returns true if err reports a catalogue name clash.
// Uses errors.As to handle wrapped errors.
func IsAmbiguousComponent(err error) bool {
	var ae *AmbiguousComponentError
	return errors.As(err, &ae)
}

// IsUnknownProfile returns true if err reports a missing profile name.
// Uses errors.As to handle wrapped errors.
func IsUnknownProfile(err error) bool {
	var ue *UnknownProfileError
	return errors.As(err, &ue)
}
