package rigfile

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/labforge/rigctl/internal/component"
)

//go:embed schema.cue
var schemaCUE string

// LoadMode controls how errors are handled during rig file loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the results of loading a rig file.
type LoadResult struct {
	File *File
	// Rig is the materialized catalogue; nil when validation failed.
	Rig *Rig
}

// Load reads, validates, and materializes a rig file.
//
// Load errors (unreadable file, YAML syntax) abort immediately in both
// modes. Validation errors respect the mode: fail-fast returns the
// first, collect-all returns them all. The Rig in the result is only
// populated when validation passed.
func Load(path string, mode LoadMode) (*LoadResult, []error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("cannot read rig file: %v", err)}}
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing %s: %v", path, err)}}
	}

	// A second generic decode feeds the CUE schema check.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing %s: %v", path, err)}}
	}

	var verrs []ValidationError
	schemaErrs, err := validateSchema(raw)
	if err != nil {
		return nil, []error{err}
	}
	verrs = append(verrs, schemaErrs...)
	verrs = append(verrs, validateConsistency(&file)...)

	if len(verrs) > 0 {
		if mode == LoadModeFailFast {
			verrs = verrs[:1]
		}
		errs := make([]error, len(verrs))
		for i, ve := range verrs {
			errs[i] = ve
		}
		return &LoadResult{File: &file}, errs
	}

	return &LoadResult{File: &file, Rig: file.build()}, nil
}

// validateSchema checks the raw document against the embedded CUE schema.
func validateSchema(raw map[string]any) ([]ValidationError, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("compiling rig schema: %v", err)}
	}

	value := ctx.Encode(raw)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("encoding rig file: %v", err)}
	}

	unified := schema.Unify(value)
	err := unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil, nil
	}

	var verrs []ValidationError
	for _, cerr := range cueerrors.Errors(err) {
		field := ""
		if p := cerr.Path(); len(p) > 0 {
			field = cue.MakePath(selectorsFromStrings(p)...).String()
		}
		verrs = append(verrs, ValidationError{
			Field:   field,
			Message: cerr.Error(),
			Code:    ErrSchemaViolation,
		})
	}
	return verrs, nil
}

func selectorsFromStrings(parts []string) []cue.Selector {
	sels := make([]cue.Selector, len(parts))
	for i, p := range parts {
		sels[i] = cue.Str(p)
	}
	return sels
}

// validateConsistency runs the cross-reference checks the CUE schema
// cannot express: name uniqueness, profile membership, and enforcement
// fields on non-cell components.
func validateConsistency(f *File) []ValidationError {
	var verrs []ValidationError

	if len(f.Components) == 0 {
		verrs = append(verrs, ValidationError{
			Field:   "components",
			Message: "rig file declares no components",
			Code:    ErrNoComponents,
		})
	}

	seen := make(map[string]bool, len(f.Components))
	for i, spec := range f.Components {
		field := fmt.Sprintf("components[%d]", i)
		if seen[spec.Name] {
			verrs = append(verrs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("component name %q declared more than once", spec.Name),
				Code:    ErrDuplicateComponent,
			})
		}
		seen[spec.Name] = true

		if !component.Kind(spec.Kind).Valid() {
			verrs = append(verrs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("unknown kind %q", spec.Kind),
				Code:    ErrInvalidKind,
			})
		}
		if spec.Kind != string(component.KindCell) && (spec.MustDiffer != nil || spec.Strict != nil) {
			verrs = append(verrs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must_differ/strict only apply to cells, not %q", spec.Kind),
				Code:    ErrFieldNotApplicable,
			})
		}
	}

	profiles := make([]string, 0, len(f.Profiles))
	for profile := range f.Profiles {
		profiles = append(profiles, profile)
	}
	sort.Strings(profiles)
	for _, profile := range profiles {
		members := f.Profiles[profile]
		inProfile := make(map[string]bool, len(members))
		for _, name := range members {
			field := fmt.Sprintf("profiles.%s", profile)
			if !seen[name] {
				verrs = append(verrs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("profile references undeclared component %q", name),
					Code:    ErrUnknownComponentRef,
				})
			}
			if inProfile[name] {
				verrs = append(verrs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("component %q listed more than once", name),
					Code:    ErrDuplicateProfileRef,
				})
			}
			inProfile[name] = true
		}
	}
	return verrs
}
