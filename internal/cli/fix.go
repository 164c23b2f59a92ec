package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calder-io/spiguard/internal/checks"
)

// NewFixCommand creates the fix command.
func NewFixCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		dryRun     bool
		checkNames []string
	)

	cmd := &cobra.Command{
		Use:   "fix <dir>",
		Short: "Repair fixable findings in place",
		Long: `Rewrite files under <dir> so fixable checks pass: strip banned
license headers, drop blank imports, sort interface methods, and
rewrite stub bodies to the canonical panic form.

With --dry-run nothing is written; the would-be changes are shown as
line diffs.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(rootOpts, cmd, args[0], dryRun, checkNames)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show changes without writing files")
	cmd.Flags().StringSliceVar(&checkNames, "check", nil, "apply only the named fixer (repeatable)")

	return cmd
}

// fixSummary is the JSON payload of a fix run.
type fixSummary struct {
	Root    string   `json:"root"`
	DryRun  bool     `json:"dry_run"`
	Changed []string `json:"changed"`
}

func runFix(opts *RootOptions, cmd *cobra.Command, root string, dryRun bool, names []string) error {
	formatter := formatterFor(opts, cmd)

	if err := validCheckNames(names); err != nil {
		return err
	}

	rc, err := newRunContext(opts, cmd, root)
	if err != nil {
		return err
	}
	defer rc.Close()

	var enabled func(string) bool
	if len(names) > 0 {
		enabled = func(name string) bool {
			for _, n := range names {
				if n == name {
					return true
				}
			}
			return false
		}
	} else {
		enabled = rc.Policy.CheckEnabled
	}

	results, err := checks.ApplyFixes(rc.params(false), enabled)
	if err != nil {
		return WrapExitError(ExitCommandError, "apply fixes", err)
	}

	summary := fixSummary{Root: root, DryRun: dryRun, Changed: make([]string, 0, len(results))}
	for _, r := range results {
		summary.Changed = append(summary.Changed, r.Path)
		if dryRun {
			continue
		}
		abs := filepath.Join(root, filepath.FromSlash(r.Path))
		mode := os.FileMode(0o644)
		if fi, statErr := os.Stat(abs); statErr == nil {
			mode = fi.Mode().Perm()
		}
		if err := os.WriteFile(abs, r.After, mode); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("write %s", r.Path), err)
		}
		rc.Log.Debug().Str("file", r.Path).Strs("checks", r.Checks).Msg("fixed")
	}

	if formatter.Format == "json" {
		return formatter.JSON(Response{Status: "ok", Data: summary})
	}

	if len(results) == 0 {
		fmt.Fprintln(formatter.Writer, "nothing to fix")
		return nil
	}
	for _, r := range results {
		verb := "fixed"
		if dryRun {
			verb = "would fix"
		}
		fmt.Fprintf(formatter.Writer, "%s %s (%s)\n", verb, r.Path, strings.Join(r.Checks, ", "))
		if dryRun {
			printLineDiff(formatter.Writer, r.Before, r.After)
		}
	}
	return nil
}

// printLineDiff shows a minimal removed/added line diff. Equal prefix and
// suffix lines are trimmed; everything between is shown verbatim.
func printLineDiff(w io.Writer, before, after []byte) {
	a := strings.Split(string(before), "\n")
	b := strings.Split(string(after), "\n")

	start := 0
	for start < len(a) && start < len(b) && a[start] == b[start] {
		start++
	}
	endA, endB := len(a), len(b)
	for endA > start && endB > start && a[endA-1] == b[endB-1] {
		endA--
		endB--
	}

	for _, line := range a[start:endA] {
		fmt.Fprintf(w, "  - %s\n", line)
	}
	for _, line := range b[start:endB] {
		fmt.Fprintf(w, "  + %s\n", line)
	}
}
