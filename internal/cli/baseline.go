package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calder-io/spiguard/internal/baseline"
	"github.com/calder-io/spiguard/internal/config"
)

// NewBaselineCommand creates the baseline command group.
func NewBaselineCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage accepted duplicate hashes and run history",
	}

	cmd.AddCommand(newBaselineAcceptCommand(rootOpts))
	cmd.AddCommand(newBaselineListCommand(rootOpts))

	return cmd
}

func newBaselineAcceptCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		dir    string
		reason string
	)

	cmd := &cobra.Command{
		Use:   "accept <hash>",
		Short: "Accept a duplicate-group hash",
		Long: `Record a duplicate-group hash as accepted. Accepted groups are not
reported by check and dupes unless --strict is set. Accepting the same
hash twice is a no-op.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBaselineAccept(rootOpts, cmd, dir, args[0], reason)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "scan root whose baseline database to use")
	cmd.Flags().StringVar(&reason, "reason", "", "why this duplicate group is acceptable")
	cmd.MarkFlagRequired("reason")

	return cmd
}

func newBaselineListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		dir   string
		runs  bool
		limit int
	)

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List accepted hashes, or past runs with --runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBaselineList(rootOpts, cmd, dir, runs, limit)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "scan root whose baseline database to use")
	cmd.Flags().BoolVar(&runs, "runs", false, "list recorded runs instead of accepted hashes")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list, negative for all")

	return cmd
}

// openStore resolves the baseline database for a scan root.
func openStore(dir string) (*baseline.Store, error) {
	policy, err := config.Load(dir)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load policy", err)
	}
	store, err := baseline.Open(policy.BaselinePath(dir))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open baseline database", err)
	}
	return store, nil
}

func runBaselineAccept(opts *RootOptions, cmd *cobra.Command, dir, hash, reason string) error {
	formatter := formatterFor(opts, cmd)

	store, err := openStore(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Accept(cmd.Context(), hash, reason); err != nil {
		return WrapExitError(ExitCommandError, "accept hash", err)
	}

	if formatter.Format == "json" {
		return formatter.JSON(Response{Status: "ok", Data: map[string]string{
			"hash":   hash,
			"reason": reason,
		}})
	}
	fmt.Fprintf(formatter.Writer, "accepted %s\n", hash)
	return nil
}

func runBaselineList(opts *RootOptions, cmd *cobra.Command, dir string, listRuns bool, limit int) error {
	formatter := formatterFor(opts, cmd)

	store, err := openStore(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	if listRuns {
		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return WrapExitError(ExitCommandError, "list runs", err)
		}
		if formatter.Format == "json" {
			return formatter.JSON(Response{Status: "ok", Data: runs})
		}
		if len(runs) == 0 {
			fmt.Fprintln(formatter.Writer, "no recorded runs")
			return nil
		}
		for _, r := range runs {
			verdict := "passed"
			if !r.Passed {
				verdict = "failed"
			}
			fmt.Fprintf(formatter.Writer, "#%d %s %s: %d file(s), %d finding(s), %s\n",
				r.Seq, r.ID, r.Root, r.FilesScanned, r.Findings, verdict)
		}
		return nil
	}

	accepted, err := store.ListAccepted(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "list accepted hashes", err)
	}
	if formatter.Format == "json" {
		return formatter.JSON(Response{Status: "ok", Data: accepted})
	}
	if len(accepted) == 0 {
		fmt.Fprintln(formatter.Writer, "no accepted hashes")
		return nil
	}
	for _, a := range accepted {
		fmt.Fprintf(formatter.Writer, "%s  %s\n", a.Hash, a.Reason)
	}
	return nil
}
