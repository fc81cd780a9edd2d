package testutil

import (
	"fmt"

	"github.com/labforge/rigctl/internal/component"
)

// RecordingRegistry wraps a component.Registry and records every add and
// remove issued against it.
//
// Reconciliation tests use the log to assert minimality properties, such
// as a repeated reconcile performing zero operations.
type RecordingRegistry struct {
	inner *component.Registry
	ops   []string
}

// NewRecordingRegistry creates a recorder over a fresh registry.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{inner: component.NewRegistry()}
}

// Add registers the component and records the operation.
func (r *RecordingRegistry) Add(c component.Component) error {
	if err := r.inner.Add(c); err != nil {
		return err
	}
	r.ops = append(r.ops, fmt.Sprintf("add %s", c.Name()))
	return nil
}

// Remove deregisters the name and records the operation.
func (r *RecordingRegistry) Remove(name string) error {
	if err := r.inner.Remove(name); err != nil {
		return err
	}
	r.ops = append(r.ops, fmt.Sprintf("remove %s", name))
	return nil
}

// Names returns the live names in insertion order.
func (r *RecordingRegistry) Names() []string {
	return r.inner.Names()
}

// Ops returns a copy of the recorded operations in order. The result
// is never nil.
func (r *RecordingRegistry) Ops() []string {
	ops := make([]string, len(r.ops))
	copy(ops, r.ops)
	return ops
}

// ResetOps clears the operation log without touching the registry.
func (r *RecordingRegistry) ResetOps() {
	r.ops = nil
}

// Registry returns the wrapped registry for direct inspection.
func (r *RecordingRegistry) Registry() *component.Registry {
	return r.inner
}
