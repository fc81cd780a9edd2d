package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labforge/rigctl/internal/component"
)

func TestRecordingRegistry_RecordsOps(t *testing.T) {
	r := NewRecordingRegistry()

	require.NoError(t, r.Add(component.NewInstrument("magnet")))
	require.NoError(t, r.Add(component.NewInstrument("lockin")))
	require.NoError(t, r.Remove("magnet"))

	assert.Equal(t, []string{"add magnet", "add lockin", "remove magnet"}, r.Ops())
	assert.Equal(t, []string{"lockin"}, r.Names())
}

func TestRecordingRegistry_FailedOpsAreNotRecorded(t *testing.T) {
	r := NewRecordingRegistry()

	require.Error(t, r.Remove("ghost"))
	require.NoError(t, r.Add(component.NewInstrument("magnet")))
	require.Error(t, r.Add(component.NewInstrument("magnet")))

	assert.Equal(t, []string{"add magnet"}, r.Ops())
}

func TestRecordingRegistry_ResetOpsKeepsRegistry(t *testing.T) {
	r := NewRecordingRegistry()
	require.NoError(t, r.Add(component.NewInstrument("magnet")))

	r.ResetOps()

	assert.Empty(t, r.Ops())
	assert.Equal(t, []string{"magnet"}, r.Names())
}
