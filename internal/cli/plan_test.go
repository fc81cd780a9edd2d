package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_TextOutput(t *testing.T) {
	out, err := execute(t, "plan", "testdata/rig.yaml", "--active", "cooldown")
	require.NoError(t, err)
	assert.Contains(t, out, "active profiles: cooldown")
	assert.Contains(t, out, "ensure: magnet, lockin, meas_description")
	assert.Contains(t, out, "remove: heater")
}

func TestPlan_JSONOutput(t *testing.T) {
	out, err := execute(t, "--format", "json", "plan", "testdata/rig.yaml", "--active", "warm")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   PlanResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []string{"warm"}, resp.Data.Active)
	assert.Equal(t, []string{"lockin", "heater", "meas_description"}, resp.Data.Ensure)
	assert.Equal(t, []string{"magnet"}, resp.Data.Remove)
}

func TestPlan_UnknownProfileFails(t *testing.T) {
	out, err := execute(t, "plan", "testdata/rig.yaml", "--active", "cryo")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "UNKNOWN_PROFILE")
}

func TestPlan_InvalidRigFileIsCommandError(t *testing.T) {
	_, err := execute(t, "plan", "testdata/bad.yaml", "--active", "cooldown")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
