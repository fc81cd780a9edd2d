package enforce

import (
	"log/slog"

	"github.com/labforge/rigctl/internal/component"
)

// SweepOption configures a consumption sweep.
type SweepOption func(*sweepConfig)

type sweepConfig struct {
	verbose bool
	logger  *slog.Logger
}

// Verbose controls per-cell logging during the sweep. Default true.
func Verbose(v bool) SweepOption {
	return func(c *sweepConfig) { c.verbose = v }
}

// WithLogger overrides the logger used for verbose output.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) SweepOption {
	return func(c *sweepConfig) { c.logger = logger }
}

// CheckAllUpdated runs the consumption sweep over the given cells.
//
// Every cell must hold a value that was set since the previous sweep.
// The first stale cell fails the sweep with *StaleParameterError; cells
// claimed before the failing one keep their consumed mark (no rollback).
// A failed sweep signals operator error: the caller is expected to fix
// the stale inputs and re-attempt the whole measurement, not resume
// mid-sweep.
func CheckAllUpdated(cells []*Cell, opts ...SweepOption) error {
	cfg := sweepConfig{verbose: true, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, cell := range cells {
		if cell.Consumed() {
			return &StaleParameterError{
				Cell:  cell.Name(),
				Value: cell.value,
				Unit:  cell.Unit(),
			}
		}
		cell.markConsumed()
		if cfg.verbose {
			cfg.logger.Info("claimed cell for measurement",
				"cell", cell.Name(),
				"value", cell.value,
				"unit", cell.Unit(),
			)
		}
	}
	return nil
}

// CheckSessionUpdated runs the consumption sweep over every enforcement
// cell registered in the session's live registry, in registration order.
//
// This is the auto-discovery mode for measurement code that does not
// track its cells explicitly; the caller supplies the current session
// instead of relying on a process-wide default.
func CheckSessionUpdated(sess *component.Session, opts ...SweepOption) error {
	return CheckAllUpdated(SessionCells(sess), opts...)
}

// SessionCells returns the enforcement cells registered in the session,
// in registration order.
func SessionCells(sess *component.Session) []*Cell {
	var cells []*Cell
	for _, c := range sess.Registry().Components() {
		if cell, ok := c.(*Cell); ok {
			cells = append(cells, cell)
		}
	}
	return cells
}
