package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Run is one measurement run record.
type Run struct {
	ID           int64
	Name         string
	SessionToken string
	CreatedAt    string
}

// GetRun returns the run with the given id.
// Returns *RunNotFoundError when no such run exists.
func (s *Store) GetRun(ctx context.Context, runID int64) (Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, session_token, created_at
		FROM runs
		WHERE id = ?
	`, runID).Scan(&r.ID, &r.Name, &r.SessionToken, &r.CreatedAt)
	if isNoRows(err) {
		return Run{}, &RunNotFoundError{RunID: runID}
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %d: %w", runID, err)
	}
	return r, nil
}

// GetMeta returns one metadata value for a run.
// The ok result is false when the key is absent.
func (s *Store) GetMeta(ctx context.Context, runID int64, key string) (value string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT value FROM run_metadata
		WHERE run_id = ? AND key = ?
	`, runID, key).Scan(&value)
	if isNoRows(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get metadata %q for run %d: %w", key, runID, err)
	}
	return value, true, nil
}

// Meta returns all metadata for a run as a key/value map.
// Returns an empty map (not nil) when the run has no metadata.
func (s *Store) Meta(ctx context.Context, runID int64) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value FROM run_metadata
		WHERE run_id = ?
		ORDER BY key COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read metadata for run %d: %w", runID, err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan metadata for run %d: %w", runID, err)
		}
		meta[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read metadata for run %d: %w", runID, err)
	}
	return meta, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
