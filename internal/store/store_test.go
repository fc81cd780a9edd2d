package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore creates a store backed by a file in a per-test temp dir.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_AppliesPragmas(t *testing.T) {
	s := openTestStore(t)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, s.DB().QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	var version int
	require.NoError(t, s2.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestCreateRun_AndGetRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateRun(ctx, "gate sweep", "session-1")
	require.NoError(t, err)
	require.Positive(t, id)

	run, err := s.GetRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "gate sweep", run.Name)
	assert.Equal(t, "session-1", run.SessionToken)
	assert.NotEmpty(t, run.CreatedAt)
}

func TestGetRun_MissingFails(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetRun(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, IsRunNotFound(err))
}

func TestSetMeta_WriteAndRead(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateRun(ctx, "gate sweep", "")
	require.NoError(t, err)

	require.NoError(t, s.SetMeta(ctx, id, "operator", "mk"))

	value, ok, err := s.GetMeta(ctx, id, "operator")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "mk", value)
}

func TestSetMeta_Upserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateRun(ctx, "gate sweep", "")
	require.NoError(t, err)

	require.NoError(t, s.SetMeta(ctx, id, "operator", "mk"))
	require.NoError(t, s.SetMeta(ctx, id, "operator", "jb"))

	value, _, err := s.GetMeta(ctx, id, "operator")
	require.NoError(t, err)
	assert.Equal(t, "jb", value)
}

func TestSetMeta_UnknownRunFails(t *testing.T) {
	s := openTestStore(t)

	err := s.SetMeta(context.Background(), 42, "operator", "mk")
	require.Error(t, err)
	assert.True(t, IsRunNotFound(err))
}

func TestGetMeta_AbsentKey(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateRun(ctx, "gate sweep", "")
	require.NoError(t, err)

	_, ok, err := s.GetMeta(ctx, id, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMeta_ReturnsAllPairs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateRun(ctx, "gate sweep", "")
	require.NoError(t, err)

	require.NoError(t, s.SetMeta(ctx, id, "operator", "mk"))
	require.NoError(t, s.SetMeta(ctx, id, "fridge", "triton-3"))

	meta, err := s.Meta(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"operator": "mk",
		"fridge":   "triton-3",
	}, meta)
}

func TestMeta_EmptyIsNotNil(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateRun(ctx, "gate sweep", "")
	require.NoError(t, err)

	meta, err := s.Meta(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, meta)
	assert.Empty(t, meta)
}
