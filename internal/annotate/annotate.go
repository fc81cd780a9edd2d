// Package annotate adds post-measurement annotations to recorded runs.
//
// Annotations are plain metadata on the run store: a free-text note, an
// error flag, and arbitrary extra key/value pairs. Runs flagged as
// erroneous can additionally be tagged for the plottr-inspectr browser,
// which renders runs carrying the "cross" tag with a cross marker.
package annotate

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/labforge/rigctl/internal/store"
)

// Metadata keys used by the annotation helpers.
const (
	// AnnotationKey holds the free-text annotation.
	AnnotationKey = "post_measurement_annotation"

	// ErrorKey holds the "true"/"false" error flag.
	ErrorKey = "errors_in_measurement"

	// PlottrKey is the tag key read by plottr-inspectr.
	PlottrKey = "inspectr_tag"

	// CrossTag marks a run with a cross in plottr-inspectr.
	CrossTag = "cross"
)

// appendSeparator is inserted between an existing annotation and an
// appended one so the history stays readable.
const appendSeparator = "\nADDITIONAL ANNOTATION: \n"

// Option configures one annotation call.
type Option func(*options)

type options struct {
	note     string
	hasNote  bool
	errState bool
	hasErr   bool
	extra    map[string]string
	plottr   bool
}

// Note sets the free-text annotation. The text is NFC-normalized before
// storage so that visually identical notes compare equal.
func Note(text string) Option {
	return func(o *options) {
		o.note = norm.NFC.String(text)
		o.hasNote = true
	}
}

// ErrorState flags whether the run contained errors.
func ErrorState(v bool) Option {
	return func(o *options) {
		o.errState = v
		o.hasErr = true
	}
}

// Metadata adds extra key/value pairs to the run.
func Metadata(m map[string]string) Option {
	return func(o *options) {
		if o.extra == nil {
			o.extra = make(map[string]string, len(m))
		}
		for k, v := range m {
			o.extra[k] = v
		}
	}
}

// NoPlottrFlag suppresses the plottr cross tag that is otherwise written
// for runs flagged with ErrorState(true).
func NoPlottrFlag() Option {
	return func(o *options) { o.plottr = false }
}

// Annotate writes annotations to the given runs, overwriting any
// existing annotation text.
func Annotate(ctx context.Context, st *store.Store, runIDs []int64, opts ...Option) error {
	o := buildOptions(opts)
	for _, runID := range runIDs {
		if o.hasNote {
			if err := st.SetMeta(ctx, runID, AnnotationKey, o.note); err != nil {
				return fmt.Errorf("annotate run %d: %w", runID, err)
			}
		}
		if err := applyCommon(ctx, st, runID, o); err != nil {
			return err
		}
	}
	return nil
}

// Append writes annotations to the given runs, appending the note to any
// existing annotation text instead of overwriting it. The accumulated
// text is stored, separated by an "ADDITIONAL ANNOTATION" marker.
func Append(ctx context.Context, st *store.Store, runIDs []int64, opts ...Option) error {
	o := buildOptions(opts)
	for _, runID := range runIDs {
		if o.hasNote {
			existing, ok, err := st.GetMeta(ctx, runID, AnnotationKey)
			if err != nil {
				return fmt.Errorf("annotate run %d: %w", runID, err)
			}
			full := o.note
			if ok && existing != "" {
				full = existing + appendSeparator + o.note
			}
			if err := st.SetMeta(ctx, runID, AnnotationKey, full); err != nil {
				return fmt.Errorf("annotate run %d: %w", runID, err)
			}
		}
		if err := applyCommon(ctx, st, runID, o); err != nil {
			return err
		}
	}
	return nil
}

func buildOptions(opts []Option) options {
	o := options{plottr: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// applyCommon writes the error flag, the plottr tag, and extra metadata.
// Shared by the overwrite and append paths.
func applyCommon(ctx context.Context, st *store.Store, runID int64, o options) error {
	if o.hasErr {
		if err := st.SetMeta(ctx, runID, ErrorKey, strconv.FormatBool(o.errState)); err != nil {
			return fmt.Errorf("annotate run %d: %w", runID, err)
		}
		if o.plottr && o.errState {
			if err := st.SetMeta(ctx, runID, PlottrKey, CrossTag); err != nil {
				return fmt.Errorf("annotate run %d: %w", runID, err)
			}
		}
	}
	for k, v := range o.extra {
		if err := st.SetMeta(ctx, runID, k, v); err != nil {
			return fmt.Errorf("annotate run %d: %w", runID, err)
		}
	}
	return nil
}
