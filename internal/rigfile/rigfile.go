// Package rigfile loads and validates YAML rig files.
//
// A rig file declares the components of a measurement setup and the
// named profiles grouping them. Files are checked twice: structurally
// against an embedded CUE schema, then for internal consistency
// (unique names, resolvable profile references) in Go.
package rigfile

import (
	"github.com/labforge/rigctl/internal/component"
	"github.com/labforge/rigctl/internal/enforce"
)

// File is the YAML model of a rig file.
type File struct {
	Components []ComponentSpec     `yaml:"components"`
	Profiles   map[string][]string `yaml:"profiles"`
}

// ComponentSpec declares one component.
type ComponentSpec struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Unit  string `yaml:"unit,omitempty"`
	Label string `yaml:"label,omitempty"`

	// Enforcement options; nil means the cell default.
	MustDiffer *bool `yaml:"must_differ,omitempty"`
	Strict     *bool `yaml:"strict,omitempty"`
}

// Rig is the materialized form of a valid rig file: one component
// object per declared name plus the profile catalogue built over them.
type Rig struct {
	order      []string
	components map[string]component.Component
	catalogue  map[string][]component.Component
}

// Component returns the component declared under name, if any.
func (r *Rig) Component(name string) (component.Component, bool) {
	c, ok := r.components[name]
	return c, ok
}

// Components returns all declared components in declaration order.
func (r *Rig) Components() []component.Component {
	out := make([]component.Component, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.components[name])
	}
	return out
}

// Catalogue returns the profile catalogue for reconcile.SetProfiles.
func (r *Rig) Catalogue() map[string][]component.Component {
	return r.catalogue
}

// Cells returns the enforcement cells in declaration order.
func (r *Rig) Cells() []*enforce.Cell {
	var cells []*enforce.Cell
	for _, name := range r.order {
		if cell, ok := r.components[name].(*enforce.Cell); ok {
			cells = append(cells, cell)
		}
	}
	return cells
}

// build materializes a validated File into component objects.
// Callers must have run validation first; build assumes a clean file.
func (f *File) build() *Rig {
	rig := &Rig{
		components: make(map[string]component.Component, len(f.Components)),
		catalogue:  make(map[string][]component.Component, len(f.Profiles)),
	}
	for _, spec := range f.Components {
		var c component.Component
		switch component.Kind(spec.Kind) {
		case component.KindInstrument:
			c = component.NewLabeledInstrument(spec.Name, spec.Label)
		case component.KindParameter:
			p := component.NewParameter(spec.Name, spec.Unit)
			p.SetLabel(spec.Label)
			c = p
		case component.KindCell:
			opts := []enforce.Option{enforce.Unit(spec.Unit), enforce.Label(spec.Label)}
			if spec.MustDiffer != nil {
				opts = append(opts, enforce.MustDiffer(*spec.MustDiffer))
			}
			if spec.Strict != nil {
				opts = append(opts, enforce.Strict(*spec.Strict))
			}
			c = enforce.New(spec.Name, opts...)
		}
		rig.order = append(rig.order, spec.Name)
		rig.components[spec.Name] = c
	}
	for profile, members := range f.Profiles {
		comps := make([]component.Component, 0, len(members))
		for _, name := range members {
			comps = append(comps, rig.components[name])
		}
		rig.catalogue[profile] = comps
	}
	return rig
}
