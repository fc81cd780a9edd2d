package harness

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labforge/rigctl/internal/component"
	"github.com/labforge/rigctl/internal/reconcile"
	"github.com/labforge/rigctl/internal/testutil"
)

// StepResult captures the outcome of one scenario step.
type StepResult struct {
	Active   []string
	Plan     reconcile.Plan
	PlanOK   bool
	Ops      []string
	Registry []string
	Err      error
}

// Run executes the scenario's steps against a fresh recording registry
// and returns the per-step results. Expectation checking is left to the
// caller; Run itself only fails on setup problems (unreadable rig file,
// bad catalogue).
func Run(scenario *Scenario) ([]StepResult, error) {
	r, err := scenario.buildReconciler()
	if err != nil {
		return nil, err
	}

	reg := testutil.NewRecordingRegistry()
	for _, name := range scenario.Preregister {
		if err := reg.Add(component.NewInstrument(name)); err != nil {
			return nil, err
		}
	}
	reg.ResetOps()

	results := make([]StepResult, 0, len(scenario.Steps))
	for _, step := range scenario.Steps {
		res := StepResult{Active: step.Active}

		plan, planErr := r.Plan(step.Active)
		if planErr != nil {
			res.Err = planErr
		} else {
			res.Plan = plan
			res.PlanOK = true
			res.Err = r.Reconcile(reg, step.Active, reconcile.Verbose(false))
		}

		res.Ops = reg.Ops()
		reg.ResetOps()
		res.Registry = reg.Names()
		results = append(results, res)
	}
	return results, nil
}

// RunScenario loads the scenario at path, executes it, checks every
// step expectation, and compares the run against its golden snapshot.
func RunScenario(t *testing.T, path string) {
	t.Helper()

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	results, err := Run(scenario)
	require.NoError(t, err)
	require.Len(t, results, len(scenario.Steps))

	for i, step := range scenario.Steps {
		res := results[i]

		if step.ExpectError != "" {
			require.Errorf(t, res.Err, "step %d: expected %s failure", i+1, step.ExpectError)
			assert.Containsf(t, res.Err.Error(), step.ExpectError,
				"step %d: wrong error code", i+1)
		} else {
			require.NoErrorf(t, res.Err, "step %d", i+1)
		}
		if step.ExpectRegistry != nil {
			assert.Equalf(t, step.ExpectRegistry, res.Registry, "step %d: registry mismatch", i+1)
		}
		if step.ExpectOps != nil {
			assert.Equalf(t, *step.ExpectOps, res.Ops, "step %d: operation log mismatch", i+1)
		}
	}

	AssertGolden(t, scenario.Name, Snapshot(scenario, results))
}

// Snapshot renders a deterministic textual trace of the run for golden
// comparison.
func Snapshot(scenario *Scenario, results []StepResult) []byte {
	var b strings.Builder
	b.WriteString("scenario: " + scenario.Name + "\n")
	for i, res := range results {
		b.WriteString("== step " + strconv.Itoa(i+1) + "\n")
		if res.PlanOK {
			b.WriteString(res.Plan.String())
		}
		if res.Err != nil {
			b.WriteString("error: " + res.Err.Error() + "\n")
			continue
		}
		b.WriteString("ops: " + joinOrNone(res.Ops) + "\n")
		b.WriteString("registry: " + joinOrNone(res.Registry) + "\n")
	}
	return []byte(b.String())
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
