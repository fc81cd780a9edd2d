package annotate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labforge/rigctl/internal/store"
)

func newRun(t *testing.T) (*store.Store, int64) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	id, err := s.CreateRun(context.Background(), "gate sweep", "")
	require.NoError(t, err)
	return s, id
}

func TestAnnotate_WritesNote(t *testing.T) {
	s, id := newRun(t)
	ctx := context.Background()

	require.NoError(t, Annotate(ctx, s, []int64{id}, Note("looks clean")))

	value, ok, err := s.GetMeta(ctx, id, AnnotationKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "looks clean", value)
}

func TestAnnotate_OverwritesExistingNote(t *testing.T) {
	s, id := newRun(t)
	ctx := context.Background()

	require.NoError(t, Annotate(ctx, s, []int64{id}, Note("first")))
	require.NoError(t, Annotate(ctx, s, []int64{id}, Note("second")))

	value, _, err := s.GetMeta(ctx, id, AnnotationKey)
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestAnnotate_ErrorStateWritesCrossTag(t *testing.T) {
	s, id := newRun(t)
	ctx := context.Background()

	require.NoError(t, Annotate(ctx, s, []int64{id}, ErrorState(true)))

	errValue, _, err := s.GetMeta(ctx, id, ErrorKey)
	require.NoError(t, err)
	assert.Equal(t, "true", errValue)

	tag, ok, err := s.GetMeta(ctx, id, PlottrKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, CrossTag, tag)
}

func TestAnnotate_ErrorStateFalseWritesNoTag(t *testing.T) {
	s, id := newRun(t)
	ctx := context.Background()

	require.NoError(t, Annotate(ctx, s, []int64{id}, ErrorState(false)))

	errValue, _, err := s.GetMeta(ctx, id, ErrorKey)
	require.NoError(t, err)
	assert.Equal(t, "false", errValue)

	_, ok, err := s.GetMeta(ctx, id, PlottrKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAnnotate_NoPlottrFlagSuppressesTag(t *testing.T) {
	s, id := newRun(t)
	ctx := context.Background()

	require.NoError(t, Annotate(ctx, s, []int64{id}, ErrorState(true), NoPlottrFlag()))

	_, ok, err := s.GetMeta(ctx, id, PlottrKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAnnotate_ExtraMetadata(t *testing.T) {
	s, id := newRun(t)
	ctx := context.Background()

	require.NoError(t, Annotate(ctx, s, []int64{id}, Metadata(map[string]string{
		"operator": "mk",
		"fridge":   "triton-3",
	})))

	meta, err := s.Meta(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "mk", meta["operator"])
	assert.Equal(t, "triton-3", meta["fridge"])
}

func TestAnnotate_MultipleRuns(t *testing.T) {
	s, first := newRun(t)
	ctx := context.Background()
	second, err := s.CreateRun(ctx, "field sweep", "")
	require.NoError(t, err)

	require.NoError(t, Annotate(ctx, s, []int64{first, second}, Note("shared note")))

	for _, id := range []int64{first, second} {
		value, _, err := s.GetMeta(ctx, id, AnnotationKey)
		require.NoError(t, err)
		assert.Equal(t, "shared note", value)
	}
}

func TestAnnotate_UnknownRunFails(t *testing.T) {
	s, _ := newRun(t)

	err := Annotate(context.Background(), s, []int64{999}, Note("nope"))
	require.Error(t, err)
	assert.True(t, store.IsRunNotFound(err))
}

func TestAppend_AccumulatesNotes(t *testing.T) {
	s, id := newRun(t)
	ctx := context.Background()

	require.NoError(t, Annotate(ctx, s, []int64{id}, Note("first")))
	require.NoError(t, Append(ctx, s, []int64{id}, Note("second")))

	value, _, err := s.GetMeta(ctx, id, AnnotationKey)
	require.NoError(t, err)
	assert.Equal(t, "first\nADDITIONAL ANNOTATION: \nsecond", value)
}

func TestAppend_FirstNoteNeedsNoSeparator(t *testing.T) {
	s, id := newRun(t)
	ctx := context.Background()

	require.NoError(t, Append(ctx, s, []int64{id}, Note("only")))

	value, _, err := s.GetMeta(ctx, id, AnnotationKey)
	require.NoError(t, err)
	assert.Equal(t, "only", value)
}

func TestAppend_WithoutNoteLeavesAnnotationAlone(t *testing.T) {
	s, id := newRun(t)
	ctx := context.Background()

	require.NoError(t, Annotate(ctx, s, []int64{id}, Note("keep me")))
	require.NoError(t, Append(ctx, s, []int64{id}, ErrorState(true)))

	value, _, err := s.GetMeta(ctx, id, AnnotationKey)
	require.NoError(t, err)
	assert.Equal(t, "keep me", value)
}

func TestNote_NormalizesToNFC(t *testing.T) {
	s, id := newRun(t)
	ctx := context.Background()

	// "é" as 'e' + combining acute accent (NFD).
	require.NoError(t, Annotate(ctx, s, []int64{id}, Note("détail")))
	nfc, _, err := s.GetMeta(ctx, id, AnnotationKey)
	require.NoError(t, err)

	require.NoError(t, Annotate(ctx, s, []int64{id}, Note("détail")))
	nfd, _, err := s.GetMeta(ctx, id, AnnotationKey)
	require.NoError(t, err)

	assert.Equal(t, nfc, nfd)
}
