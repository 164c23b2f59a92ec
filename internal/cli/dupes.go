package cli

import (
	"github.com/spf13/cobra"

	"github.com/calder-io/spiguard/internal/checks"
)

// NewDupesCommand creates the dupes command.
func NewDupesCommand(rootOpts *RootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "dupes <dir>",
		Short: "Report duplicated interface signatures",
		Long: `Run only the duplicate-signature check. Interfaces whose normalized
method sets hash identically are reported as a group. Accepted group
hashes in the baseline are suppressed unless --strict is set.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDupes(rootOpts, cmd, args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "report duplicates even when their hash is accepted")

	return cmd
}

func runDupes(opts *RootOptions, cmd *cobra.Command, root string, strict bool) error {
	formatter := formatterFor(opts, cmd)

	rc, err := newRunContext(opts, cmd, root)
	if err != nil {
		return err
	}
	defer rc.Close()

	res, err := runChecks(cmd.Context(), rc, []string{checks.NameDupes}, strict)
	if err != nil {
		return err
	}
	recordRun(cmd.Context(), rc, res)

	groups := make(map[string]bool)
	for _, f := range res.Findings {
		if f.Hash != "" {
			groups[f.Hash] = true
		}
	}
	formatter.VerboseLog("%d duplicate group(s)", len(groups))

	return emitReport(formatter, res)
}
