package rigfile

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labforge/rigctl/internal/component"
	"github.com/labforge/rigctl/internal/enforce"
	"github.com/labforge/rigctl/internal/reconcile"
)

func TestLoad_ValidRigFile(t *testing.T) {
	result, errs := Load(filepath.Join("testdata", "dilution_rig.yaml"), LoadModeFailFast)
	require.Empty(t, errs)
	require.NotNil(t, result.Rig)

	comps := result.Rig.Components()
	require.Len(t, comps, 6)
	assert.Equal(t, "magnet", comps[0].Name())
	assert.Equal(t, component.KindInstrument, comps[0].Kind())

	gate, ok := result.Rig.Component("gate_voltage")
	require.True(t, ok)
	param, ok := gate.(*component.Parameter)
	require.True(t, ok)
	assert.Equal(t, "V", param.Unit())
}

func TestLoad_BuildsCellsWithOptions(t *testing.T) {
	result, errs := Load(filepath.Join("testdata", "dilution_rig.yaml"), LoadModeFailFast)
	require.Empty(t, errs)

	cells := result.Rig.Cells()
	require.Len(t, cells, 2)
	assert.Equal(t, "meas_description", cells[0].Name())
	assert.Equal(t, "Measurement description", cells[0].Label())
	assert.Equal(t, "field_setpoint", cells[1].Name())
	assert.Equal(t, "T", cells[1].Unit())

	// field_setpoint has must_differ: false, so a repeated set is legal.
	require.NoError(t, cells[1].Set(1.0))
	require.NoError(t, cells[1].Set(1.0))

	// meas_description keeps the defaults.
	require.NoError(t, cells[0].Set("run A"))
	err := cells[0].Set("run A")
	assert.True(t, enforce.IsNonDistinctValue(err))
}

func TestLoad_CatalogueFeedsReconciler(t *testing.T) {
	result, errs := Load(filepath.Join("testdata", "dilution_rig.yaml"), LoadModeFailFast)
	require.Empty(t, errs)

	r := reconcile.New()
	require.NoError(t, r.SetProfiles(result.Rig.Catalogue()))

	plan, err := r.Plan([]string{"cooldown"})
	require.NoError(t, err)
	assert.Equal(t, []string{"magnet", "lockin", "gate_voltage", "meas_description"}, plan.EnsureNames())
	assert.Equal(t, []string{"field_setpoint", "heater"}, plan.RemoveNames())
}

func TestLoad_MissingFile(t *testing.T) {
	_, errs := Load(filepath.Join("testdata", "nope.yaml"), LoadModeFailFast)
	require.Len(t, errs, 1)

	var le *LoadError
	require.ErrorAs(t, errs[0], &le)
	assert.Equal(t, ErrCodeNotFound, le.Code)
}

func TestLoad_BrokenYAML(t *testing.T) {
	_, errs := Load(filepath.Join("testdata", "not_yaml.yaml"), LoadModeFailFast)
	require.Len(t, errs, 1)

	var le *LoadError
	require.ErrorAs(t, errs[0], &le)
	assert.Equal(t, ErrCodeParse, le.Code)
}

func TestLoad_BadKindRejectedBySchema(t *testing.T) {
	result, errs := Load(filepath.Join("testdata", "bad_kind.yaml"), LoadModeCollectAll)
	require.NotEmpty(t, errs)
	assert.Nil(t, result.Rig, "invalid file must not materialize")

	codes := collectCodes(t, errs)
	// The CUE schema and the Go kind check both reject "magnetometer".
	assert.Contains(t, codes, ErrSchemaViolation)
	assert.Contains(t, codes, ErrInvalidKind)
}

func TestLoad_CollectAllFindsEveryConsistencyError(t *testing.T) {
	result, errs := Load(filepath.Join("testdata", "inconsistent.yaml"), LoadModeCollectAll)
	require.NotEmpty(t, errs)
	assert.Nil(t, result.Rig)

	codes := collectCodes(t, errs)
	assert.Contains(t, codes, ErrDuplicateComponent)
	assert.Contains(t, codes, ErrFieldNotApplicable)
	assert.Contains(t, codes, ErrUnknownComponentRef)
	assert.Contains(t, codes, ErrDuplicateProfileRef)
}

func TestLoad_FailFastReturnsOneError(t *testing.T) {
	_, errs := Load(filepath.Join("testdata", "inconsistent.yaml"), LoadModeFailFast)
	assert.Len(t, errs, 1)
}

func collectCodes(t *testing.T, errs []error) []string {
	t.Helper()
	var codes []string
	for _, err := range errs {
		var ve ValidationError
		require.True(t, errors.As(err, &ve), "expected ValidationError, got %T", err)
		codes = append(codes, ve.Code)
	}
	return codes
}
