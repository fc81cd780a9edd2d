package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/labforge/rigctl/internal/reconcile"
	"github.com/labforge/rigctl/internal/rigfile"
)

// PlanResult is the JSON payload of the plan command.
type PlanResult struct {
	Active []string `json:"active"`
	Ensure []string `json:"ensure"`
	Remove []string `json:"remove"`
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	var active []string

	cmd := &cobra.Command{
		Use:   "plan <rig-file>",
		Short: "Show the reconciliation plan for a set of active profiles",
		Long: `Compute which components a reconciliation would ensure and remove
for the given active profiles, without touching any live registry.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(rootOpts, args[0], active, cmd)
		},
	}
	cmd.Flags().StringSliceVar(&active, "active", nil, "active profile names (comma separated)")
	return cmd
}

func runPlan(opts *RootOptions, path string, active []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result, errs := rigfile.Load(path, rigfile.LoadModeFailFast)
	if len(errs) > 0 {
		var loadErr *rigfile.LoadError
		code := rigfile.ErrCodeGeneric
		if errors.As(errs[0], &loadErr) {
			code = loadErr.Code
		}
		var ve rigfile.ValidationError
		if errors.As(errs[0], &ve) {
			code = ve.Code
		}
		formatter.Error(code, errs[0].Error(), nil)
		return NewExitError(ExitCommandError, errs[0].Error())
	}

	r := reconcile.New()
	if err := r.SetProfiles(result.Rig.Catalogue()); err != nil {
		formatter.Error(reconcile.ErrCodeAmbiguousComponent, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid catalogue", err)
	}

	plan, err := r.Plan(active)
	if err != nil {
		formatter.Error(reconcile.ErrCodeUnknownProfile, err.Error(), nil)
		return WrapExitError(ExitFailure, "cannot compute plan", err)
	}

	formatter.VerboseLog("catalogue profiles: %s", strings.Join(r.Profiles(), ", "))

	if formatter.Format == "json" {
		return formatter.Success(PlanResult{
			Active: plan.Active,
			Ensure: plan.EnsureNames(),
			Remove: plan.RemoveNames(),
		})
	}
	return formatter.Success(strings.TrimRight(plan.String(), "\n"))
}
