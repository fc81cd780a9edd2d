package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/labforge/rigctl/internal/reconcile"
	"github.com/labforge/rigctl/internal/rigfile"
)

// Scenario defines a reconciliation conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden
	// snapshot file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Rig is the rig file path, relative to the scenario file location.
	Rig string `yaml:"rig"`

	// UntrackedPolicy is "fail" (default) or "warn".
	UntrackedPolicy string `yaml:"untracked_policy,omitempty"`

	// Preregister lists component names registered before the first
	// step, as plain instruments outside any profile. Used to provoke
	// drift detection.
	Preregister []string `yaml:"preregister,omitempty"`

	// Steps is the sequence of reconcile calls.
	Steps []Step `yaml:"steps"`
}

// Step is one reconcile call with its expectations.
type Step struct {
	// Active names the profiles to reconcile to.
	Active []string `yaml:"active"`

	// ExpectRegistry is the exact expected registry contents, in
	// registration order, after the step. Omit to skip the check.
	ExpectRegistry []string `yaml:"expect_registry,omitempty"`

	// ExpectOps is the exact expected add/remove operation log of the
	// step. Omit to skip the check; use an empty list to require a
	// no-op.
	ExpectOps *[]string `yaml:"expect_ops,omitempty"`

	// ExpectError is the error code the step must fail with
	// (e.g. UNTRACKED_COMPONENT). Empty means the step must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Untracked policy names accepted in scenario files.
const (
	PolicyFail = "fail"
	PolicyWarn = "warn"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "step:" vs "steps:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	// Rig path is relative to the scenario file.
	if !filepath.IsAbs(scenario.Rig) {
		scenario.Rig = filepath.Join(filepath.Dir(path), scenario.Rig)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Rig == "" {
		return fmt.Errorf("rig is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}
	switch s.UntrackedPolicy {
	case "", PolicyFail, PolicyWarn:
	default:
		return fmt.Errorf("unknown untracked_policy %q", s.UntrackedPolicy)
	}
	return nil
}

func (s *Scenario) policy() reconcile.UntrackedPolicy {
	if s.UntrackedPolicy == PolicyWarn {
		return reconcile.UntrackedWarn
	}
	return reconcile.UntrackedFail
}

// buildReconciler loads the scenario's rig file and returns a
// reconciler configured with its catalogue and the scenario policy.
func (s *Scenario) buildReconciler() (*reconcile.Reconciler, error) {
	result, errs := rigfile.Load(s.Rig, rigfile.LoadModeFailFast)
	if len(errs) > 0 {
		return nil, fmt.Errorf("loading rig %s: %w", s.Rig, errs[0])
	}
	r := reconcile.New(reconcile.WithUntrackedPolicy(s.policy()))
	if err := r.SetProfiles(result.Rig.Catalogue()); err != nil {
		return nil, fmt.Errorf("loading rig %s: %w", s.Rig, err)
	}
	return r, nil
}
