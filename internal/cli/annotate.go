package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labforge/rigctl/internal/annotate"
	"github.com/labforge/rigctl/internal/store"
)

// AnnotateResult is the JSON payload of the annotate command.
type AnnotateResult struct {
	Runs      []int64 `json:"runs"`
	Annotated bool    `json:"annotated"`
}

// NewAnnotateCommand creates the annotate command.
func NewAnnotateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		runs       []int64
		note       string
		errState   bool
		appendNote bool
		meta       map[string]string
		noPlottr   bool
	)

	cmd := &cobra.Command{
		Use:   "annotate <run-db>",
		Short: "Annotate recorded measurement runs",
		Long: `Attach a post-measurement annotation, an error flag, or extra
metadata to one or more recorded runs in the run database.

By default the annotation text replaces any existing one; use --append
to accumulate. Runs flagged as erroneous are tagged for plottr-inspectr
unless --no-plottr-flag is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(runs) == 0 {
				return NewExitError(ExitCommandError, "at least one --run is required")
			}

			var opts []annotate.Option
			if cmd.Flags().Changed("note") {
				opts = append(opts, annotate.Note(note))
			}
			if cmd.Flags().Changed("error") {
				opts = append(opts, annotate.ErrorState(errState))
			}
			if len(meta) > 0 {
				opts = append(opts, annotate.Metadata(meta))
			}
			if noPlottr {
				opts = append(opts, annotate.NoPlottrFlag())
			}
			return runAnnotate(rootOpts, args[0], runs, appendNote, opts, cmd)
		},
	}

	cmd.Flags().Int64SliceVar(&runs, "run", nil, "run id(s) to annotate (comma separated)")
	cmd.Flags().StringVar(&note, "note", "", "annotation text")
	cmd.Flags().BoolVar(&errState, "error", false, "flag the run(s) as containing errors")
	cmd.Flags().BoolVar(&appendNote, "append", false, "append to an existing annotation instead of overwriting")
	cmd.Flags().StringToStringVar(&meta, "meta", nil, "extra metadata key=value pairs")
	cmd.Flags().BoolVar(&noPlottr, "no-plottr-flag", false, "do not tag erroneous runs for plottr-inspectr")

	return cmd
}

func runAnnotate(rootOpts *RootOptions, dbPath string, runs []int64, appendNote bool, opts []annotate.Option, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	st, err := store.Open(dbPath)
	if err != nil {
		formatter.Error(rigDBErrorCode, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cannot open run database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if appendNote {
		err = annotate.Append(ctx, st, runs, opts...)
	} else {
		err = annotate.Annotate(ctx, st, runs, opts...)
	}
	if err != nil {
		if store.IsRunNotFound(err) {
			formatter.Error(store.ErrCodeRunNotFound, err.Error(), nil)
			return WrapExitError(ExitFailure, "annotation failed", err)
		}
		formatter.Error(rigDBErrorCode, err.Error(), nil)
		return WrapExitError(ExitCommandError, "annotation failed", err)
	}

	formatter.VerboseLog("annotated %d run(s) in %s", len(runs), dbPath)

	if formatter.Format == "json" {
		return formatter.Success(AnnotateResult{Runs: runs, Annotated: true})
	}
	return formatter.Success(fmt.Sprintf("annotated %d run(s)", len(runs)))
}

// rigDBErrorCode classifies run database access failures in CLI output.
const rigDBErrorCode = "RUN_DB_ERROR"
