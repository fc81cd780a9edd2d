package component

// Registry is the live collection of components registered in a session.
//
// The registry preserves insertion order so that enumeration is
// deterministic across runs. Lookup and membership are by name: adding
// the exact component that already holds a name is a no-op, while adding
// a different component under an occupied name is a collision.
//
// The model assumes a single active measurement session; the registry is
// not safe for concurrent use and mutation must be externally serialized.
type Registry struct {
	order  []string
	byName map[string]Component
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Component),
	}
}

// Add registers a component under its name.
//
// Re-adding the identical component is a no-op. A different component
// under an occupied name returns *DuplicateComponentError and leaves the
// registry unchanged.
func (r *Registry) Add(c Component) error {
	name := c.Name()
	if existing, ok := r.byName[name]; ok {
		if existing == c {
			return nil
		}
		return &DuplicateComponentError{Name: name, Kind: c.Kind()}
	}
	r.byName[name] = c
	r.order = append(r.order, name)
	return nil
}

// Remove deregisters the component with the given name.
// Returns *NotRegisteredError if no component holds the name.
func (r *Registry) Remove(name string) error {
	if _, ok := r.byName[name]; !ok {
		return &NotRegisteredError{Name: name}
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the component registered under name, if any.
func (r *Registry) Get(name string) (Component, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Has reports whether a component is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Names returns the registered names in insertion order.
// The returned slice is a copy; mutating it does not affect the registry.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Components returns the registered components in insertion order.
func (r *Registry) Components() []Component {
	out := make([]Component, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	return len(r.order)
}
