package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labforge/rigctl/internal/rigfile"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                      `json:"valid"`
	Errors []rigfile.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <rig-file>",
		Short: "Validate a rig file",
		Long: `Validate a YAML rig file against the rig schema and consistency rules.

Checks component declarations, kinds, enforcement options, and profile
references without touching any live registry or database.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	result, errs := rigfile.Load(path, rigfile.LoadModeCollectAll)
	if result == nil && len(errs) > 0 {
		var loadErr *rigfile.LoadError
		if errors.As(errs[0], &loadErr) {
			formatter.Error(loadErr.Code, loadErr.Message, nil)
			return NewExitError(ExitCommandError, loadErr.Message)
		}
		formatter.Error(rigfile.ErrCodeGeneric, errs[0].Error(), nil)
		return NewExitError(ExitCommandError, errs[0].Error())
	}

	var verrs []rigfile.ValidationError
	for _, err := range errs {
		var ve rigfile.ValidationError
		if errors.As(err, &ve) {
			verrs = append(verrs, ve)
		}
	}

	if len(verrs) > 0 {
		if formatter.Format == "json" {
			formatter.Success(ValidationResult{Valid: false, Errors: verrs})
		} else {
			for _, ve := range verrs {
				fmt.Fprintln(formatter.Writer, ve.Error())
			}
			fmt.Fprintf(formatter.Writer, "%d validation error(s)\n", len(verrs))
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(verrs)))
	}

	formatter.VerboseLog("rig file %s: %d component(s), %d profile(s)",
		path, len(result.File.Components), len(result.File.Profiles))

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}
	return formatter.Success("rig file is valid")
}
