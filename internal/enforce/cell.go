package enforce

import (
	"reflect"

	"github.com/labforge/rigctl/internal/component"
)

// Cell is a settable/gettable value holder that tracks whether its value
// was freshly set since it was last consumed by a measurement.
//
// Two flags drive the state machine:
//
//   - readSinceSet: the current value was returned by Get at least once.
//     Strict cells refuse a second read without an intervening Set.
//   - consumed: the current value was claimed by a consumption sweep
//     (see CheckAllUpdated). A new cell starts consumed so it does not
//     spuriously block the very first measurement, but it still needs
//     one Set before the first sweep succeeds, because no value is
//     present yet.
//
// A Cell implements component.Component so it can live in the session
// registry alongside instruments and plain parameters.
//
// Not safe for concurrent use; the model assumes one active measurement
// session at a time.
type Cell struct {
	name  string
	label string
	unit  string

	mustDiffer bool
	strict     bool

	value    any
	hasValue bool

	readSinceSet bool
	consumed     bool
}

// Option configures a Cell at construction.
type Option func(*Cell)

// MustDiffer controls whether each new value must differ from the
// previous one. Default true.
func MustDiffer(v bool) Option {
	return func(c *Cell) { c.mustDiffer = v }
}

// Strict controls whether a repeated Get without an intervening Set
// fails with StaleReadError. Default true.
func Strict(v bool) Option {
	return func(c *Cell) { c.strict = v }
}

// Unit sets the physical unit reported in error messages.
func Unit(unit string) Option {
	return func(c *Cell) { c.unit = unit }
}

// Label sets the human-readable label. Defaults to the cell name.
func Label(label string) Option {
	return func(c *Cell) {
		if label != "" {
			c.label = label
		}
	}
}

// New creates a cell with no value, in the vacuously-consumed state.
func New(name string, opts ...Option) *Cell {
	c := &Cell{
		name:       name,
		label:      name,
		mustDiffer: true,
		strict:     true,
		consumed:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cell) Name() string         { return c.name }
func (c *Cell) Kind() component.Kind { return component.KindCell }

// Unit returns the physical unit of the cell ("" if unitless).
func (c *Cell) Unit() string { return c.unit }

// Label returns the human-readable label.
func (c *Cell) Label() string { return c.label }

// Get returns the current value.
//
// A strict cell fails with *StaleReadError when the settled value was
// already read once; the failed call leaves the cell unchanged. The
// returned ok is false while no value has been set yet (a nil value and
// "no value" are distinct states).
func (c *Cell) Get() (value any, ok bool, err error) {
	if c.strict && c.readSinceSet {
		return nil, false, &StaleReadError{Cell: c.name, Value: c.value}
	}
	c.readSinceSet = true
	return c.value, c.hasValue, nil
}

// Set stores a new value and marks it fresh: unread and unconsumed.
//
// A must-differ cell fails with *NonDistinctValueError when the new
// value equals the stored one; no mutation occurs in that case.
func (c *Cell) Set(value any) error {
	if c.mustDiffer && c.hasValue && reflect.DeepEqual(c.value, value) {
		return &NonDistinctValueError{Cell: c.name, Value: value}
	}
	c.value = value
	c.hasValue = true
	c.readSinceSet = false
	c.consumed = false
	return nil
}

// Consumed reports whether the current value was already claimed by a
// consumption sweep (or no value was ever set).
func (c *Cell) Consumed() bool { return c.consumed }

// markConsumed claims the current value for the running measurement.
// Only the consumption sweep flips this flag to true.
func (c *Cell) markConsumed() { c.consumed = true }
