package harness

import (
	"path/filepath"
	"testing"
)

func TestScenario_CooldownToWarm(t *testing.T) {
	RunScenario(t, filepath.Join("testdata", "scenarios", "cooldown_to_warm.yaml"))
}

func TestScenario_UntrackedDrift(t *testing.T) {
	RunScenario(t, filepath.Join("testdata", "scenarios", "untracked_drift.yaml"))
}

func TestScenario_UntrackedWarn(t *testing.T) {
	RunScenario(t, filepath.Join("testdata", "scenarios", "untracked_warn.yaml"))
}
