package reconcile

import (
	"fmt"
	"strings"

	"github.com/labforge/rigctl/internal/component"
)

// Plan is the computed target of one reconciliation: which components
// must be present after it, and which must be gone.
//
// Ensure preserves first-appearance order across the active profiles
// (duplicates collapsed by name); Remove is sorted by name. Both are
// deterministic for a given catalogue and active set, which keeps
// verbose output and golden snapshots stable.
type Plan struct {
	Active []string
	Ensure []component.Component
	Remove []component.Component
}

// EnsureNames returns the names of the components to ensure, in order.
func (p Plan) EnsureNames() []string {
	return names(p.Ensure)
}

// RemoveNames returns the names of the components to remove, in order.
func (p Plan) RemoveNames() []string {
	return names(p.Remove)
}

// String renders a human-readable one-plan-per-block summary.
func (p Plan) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "active profiles: %s\n", joinOrNone(p.Active))
	fmt.Fprintf(&b, "ensure: %s\n", joinOrNone(p.EnsureNames()))
	fmt.Fprintf(&b, "remove: %s\n", joinOrNone(p.RemoveNames()))
	return b.String()
}

func names(comps []component.Component) []string {
	out := make([]string, len(comps))
	for i, c := range comps {
		out[i] = c.Name()
	}
	return out
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
