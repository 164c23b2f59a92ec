package cli

import (
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		strict     bool
		checkNames []string
	)

	cmd := &cobra.Command{
		Use:   "check <dir>",
		Short: "Run hygiene checks over a declaration tree",
		Long: `Run the enabled checks over every Go file under <dir> and report
findings. Exit code 1 means the tree has findings, 2 means the scan
itself could not run.

Strict mode ignores baseline acceptances and fails on warnings.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd, args[0], strict, checkNames)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "ignore baseline acceptances and fail on warnings")
	cmd.Flags().StringSliceVar(&checkNames, "check", nil, "run only the named check (repeatable)")

	return cmd
}

func runCheck(opts *RootOptions, cmd *cobra.Command, root string, strict bool, names []string) error {
	formatter := formatterFor(opts, cmd)

	if err := validCheckNames(names); err != nil {
		return err
	}

	rc, err := newRunContext(opts, cmd, root)
	if err != nil {
		return err
	}
	defer rc.Close()

	formatter.VerboseLog("scanned %d file(s), %d interface(s)", len(rc.Snapshot.Files), len(rc.Snapshot.Interfaces))

	res, err := runChecks(cmd.Context(), rc, names, strict)
	if err != nil {
		return err
	}
	recordRun(cmd.Context(), rc, res)

	return emitReport(formatter, res)
}
