package store

import (
	"context"
	"fmt"
)

// CreateRun inserts a run record and returns its id.
// The session token may be empty for runs recorded outside a session.
func (s *Store) CreateRun(ctx context.Context, name, sessionToken string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (name, session_token)
		VALUES (?, ?)
	`, name, sessionToken)
	if err != nil {
		return 0, fmt.Errorf("create run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

// SetMeta writes one metadata value for a run, replacing any existing
// value under the same key.
//
// The run must exist; writing metadata for an unknown run returns
// *RunNotFoundError rather than silently creating orphan rows.
func (s *Store) SetMeta(ctx context.Context, runID int64, key, value string) error {
	ok, err := s.runExists(ctx, runID)
	if err != nil {
		return err
	}
	if !ok {
		return &RunNotFoundError{RunID: runID}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO run_metadata (run_id, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(run_id, key) DO UPDATE SET value = excluded.value
	`, runID, key, value)
	if err != nil {
		return fmt.Errorf("set metadata %q for run %d: %w", key, runID, err)
	}
	return nil
}

func (s *Store) runExists(ctx context.Context, runID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&one)
	if err == nil {
		return true, nil
	}
	if isNoRows(err) {
		return false, nil
	}
	return false, fmt.Errorf("check run %d: %w", runID, err)
}
