// Package harness provides scenario-based conformance testing for
// registry reconciliation.
//
// A scenario names a rig file, selects an untracked-component policy,
// and drives a sequence of reconcile calls against a fresh recording
// registry, asserting on the live registry contents, the exact
// add/remove operations, and expected failures after each step. The
// per-step plan and operation log are additionally compared against a
// golden snapshot.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	rig: path/to/rig.yaml
//	untracked_policy: fail   # or "warn", default "fail"
//	preregister:
//	  - rogue_component      # registered before the first step
//	steps:
//	  - active: [cooldown]
//	    expect_registry: [magnet, lockin]
//	    expect_ops: ["add magnet", "add lockin"]
//	  - active: [warm]
//	    expect_error: UNTRACKED_COMPONENT
//
// Golden snapshots live in testdata/golden/{name}.golden and are
// refreshed with:
//
//	go test ./internal/harness -update
package harness
