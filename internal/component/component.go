package component

// Kind classifies an addressable unit in the rig.
type Kind string

const (
	// KindInstrument is a physical or virtual instrument.
	KindInstrument Kind = "instrument"

	// KindParameter is a single settable/gettable value exposed by the rig.
	KindParameter Kind = "parameter"

	// KindCell is an update-enforcement parameter (see internal/enforce).
	KindCell Kind = "cell"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindInstrument, KindParameter, KindCell:
		return true
	}
	return false
}

// Component is an addressable unit that can be registered in a Registry.
//
// Identity is the name, not the object: two differently constructed
// components with the same name represent the same addressable unit for
// all registry and reconciliation decisions.
type Component interface {
	// Name returns the stable identity of the component.
	Name() string

	// Kind returns the component classification.
	Kind() Kind
}

// Instrument is a named placeholder for a rig instrument.
//
// Driver communication is out of scope; an Instrument only carries the
// identity and label used for registry bookkeeping.
type Instrument struct {
	name  string
	label string
}

// NewInstrument creates an instrument with the given name.
// The label defaults to the name.
func NewInstrument(name string) *Instrument {
	return &Instrument{name: name, label: name}
}

// NewLabeledInstrument creates an instrument with an explicit label.
func NewLabeledInstrument(name, label string) *Instrument {
	if label == "" {
		label = name
	}
	return &Instrument{name: name, label: label}
}

func (i *Instrument) Name() string { return i.name }
func (i *Instrument) Kind() Kind   { return KindInstrument }

// Label returns the human-readable label.
func (i *Instrument) Label() string { return i.label }

// Parameter is a named placeholder for a plain rig parameter.
//
// Unlike enforce.Cell it carries no staleness tracking; it exists so
// profiles can reference parameters that need no update enforcement.
type Parameter struct {
	name  string
	unit  string
	label string
}

// NewParameter creates a parameter with the given name and unit.
// The label defaults to the name.
func NewParameter(name, unit string) *Parameter {
	return &Parameter{name: name, unit: unit, label: name}
}

func (p *Parameter) Name() string { return p.name }
func (p *Parameter) Kind() Kind   { return KindParameter }

// Unit returns the physical unit of the parameter ("" if unitless).
func (p *Parameter) Unit() string { return p.unit }

// Label returns the human-readable label.
func (p *Parameter) Label() string { return p.label }

// SetLabel overrides the default label.
func (p *Parameter) SetLabel(label string) {
	if label != "" {
		p.label = label
	}
}
