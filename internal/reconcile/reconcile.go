package reconcile

import (
	"log/slog"
	"sort"

	"github.com/labforge/rigctl/internal/component"
)

// Registry is the live-registry surface the reconciler needs.
// *component.Registry implements it; tests wrap it to record operations.
type Registry interface {
	Names() []string
	Add(c component.Component) error
	Remove(name string) error
}

// UntrackedPolicy selects how reconciliation treats a live component
// that belongs to no profile at all.
type UntrackedPolicy int

const (
	// UntrackedFail aborts reconciliation with *UntrackedComponentError.
	// Drift detection runs before any mutation, so a failed call leaves
	// the registry exactly as it was.
	UntrackedFail UntrackedPolicy = iota

	// UntrackedWarn logs the drift and continues; the untracked
	// component is left in place.
	UntrackedWarn
)

// Reconciler holds a catalogue of named component profiles and applies
// the minimal add/remove diff to make a live registry match the union
// of the profiles selected as active.
//
// The catalogue is replaced wholesale via SetProfiles; there is no
// incremental edit API. Not safe for concurrent use.
type Reconciler struct {
	profiles map[string][]component.Component
	policy   UntrackedPolicy
	logger   *slog.Logger
}

// ReconcilerOption configures a Reconciler at construction.
type ReconcilerOption func(*Reconciler)

// WithUntrackedPolicy selects the drift severity. Default UntrackedFail.
func WithUntrackedPolicy(p UntrackedPolicy) ReconcilerOption {
	return func(r *Reconciler) { r.policy = p }
}

// WithLogger overrides the logger used for verbose and warning output.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ReconcilerOption {
	return func(r *Reconciler) { r.logger = logger }
}

// New creates a Reconciler with an empty catalogue.
func New(opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		profiles: make(map[string][]component.Component),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetProfiles replaces the entire profile catalogue.
//
// The same component may appear in any number of profiles, but a name
// must resolve to exactly one object across the whole catalogue:
// identity is by name, and two distinct objects sharing a name would
// make reconciliation decisions ambiguous. Such a catalog is rejected
// with *AmbiguousComponentError and the previous catalogue is kept.
func (r *Reconciler) SetProfiles(catalogue map[string][]component.Component) error {
	seen := make(map[string]component.Component)
	owners := make(map[string][]string)
	for _, profile := range sortedKeys(catalogue) {
		for _, c := range catalogue[profile] {
			name := c.Name()
			owners[name] = append(owners[name], profile)
			if prev, ok := seen[name]; ok {
				if prev != c {
					return &AmbiguousComponentError{Name: name, Profiles: owners[name]}
				}
				continue
			}
			seen[name] = c
		}
	}
	r.profiles = catalogue
	return nil
}

// Profiles returns the catalogue's profile names, sorted.
func (r *Reconciler) Profiles() []string {
	return sortedKeys(r.profiles)
}

// Plan computes the ensure/remove sets for the given active profiles
// without touching any registry.
//
// Ensure is the union of all components in the active profiles; Remove
// is the union of components of every profile NOT named active, minus
// anything in Ensure. A component kept alive by even one active profile
// is never removed, regardless of how many inactive profiles also
// reference it. Unmentioned profiles are implicitly inactive.
func (r *Reconciler) Plan(active []string) (Plan, error) {
	activeSet := make(map[string]bool, len(active))
	for _, name := range active {
		if _, ok := r.profiles[name]; !ok {
			return Plan{}, &UnknownProfileError{Profile: name}
		}
		activeSet[name] = true
	}

	var ensure []component.Component
	ensureNames := make(map[string]bool)
	for _, profile := range active {
		for _, c := range r.profiles[profile] {
			if ensureNames[c.Name()] {
				continue
			}
			ensureNames[c.Name()] = true
			ensure = append(ensure, c)
		}
	}

	var remove []component.Component
	removeNames := make(map[string]bool)
	for _, profile := range sortedKeys(r.profiles) {
		if activeSet[profile] {
			continue
		}
		for _, c := range r.profiles[profile] {
			if ensureNames[c.Name()] || removeNames[c.Name()] {
				continue
			}
			removeNames[c.Name()] = true
			remove = append(remove, c)
		}
	}
	sort.Slice(remove, func(i, j int) bool {
		return remove[i].Name() < remove[j].Name()
	})

	return Plan{Active: append([]string(nil), active...), Ensure: ensure, Remove: remove}, nil
}

// ReconcileOption configures one Reconcile call.
type ReconcileOption func(*reconcileConfig)

type reconcileConfig struct {
	verbose bool
}

// Verbose controls logging of the computed plan and the applied diff.
// Default true.
func Verbose(v bool) ReconcileOption {
	return func(c *reconcileConfig) { c.verbose = v }
}

// Reconcile makes reg match the union of the active profiles.
//
// The walk over the live registry detects drift before any mutation:
// a live component that is in neither the ensure nor the remove set is
// untracked, and under UntrackedFail the call returns with the registry
// unmodified. Afterwards the marked components are removed and missing
// ensure components added. Reconciling twice in a row with the same
// active set and no external registry mutation is a no-op the second
// time.
func (r *Reconciler) Reconcile(reg Registry, active []string, opts ...ReconcileOption) error {
	cfg := reconcileConfig{verbose: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	plan, err := r.Plan(active)
	if err != nil {
		return err
	}
	if cfg.verbose {
		r.logger.Info("reconciling registry",
			"active", plan.Active,
			"ensure", plan.EnsureNames(),
			"remove", plan.RemoveNames(),
		)
	}

	ensureNames := make(map[string]bool, len(plan.Ensure))
	for _, c := range plan.Ensure {
		ensureNames[c.Name()] = true
	}
	removeNames := make(map[string]bool, len(plan.Remove))
	for _, c := range plan.Remove {
		removeNames[c.Name()] = true
	}

	live := reg.Names()
	liveSet := make(map[string]bool, len(live))
	var drop []string
	for _, name := range live {
		liveSet[name] = true
		switch {
		case ensureNames[name]:
			// Kept alive by an active profile.
		case removeNames[name]:
			drop = append(drop, name)
		case r.policy == UntrackedWarn:
			r.logger.Warn("registry contains a component tracked by no profile", "component", name)
		default:
			return &UntrackedComponentError{Name: name}
		}
	}

	for _, name := range drop {
		if err := reg.Remove(name); err != nil {
			return err
		}
		delete(liveSet, name)
		if cfg.verbose {
			r.logger.Info("removed component", "component", name)
		}
	}
	for _, c := range plan.Ensure {
		if liveSet[c.Name()] {
			continue
		}
		if err := reg.Add(c); err != nil {
			return err
		}
		if cfg.verbose {
			r.logger.Info("added component", "component", c.Name())
		}
	}
	return nil
}

func sortedKeys(m map[string][]component.Component) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
