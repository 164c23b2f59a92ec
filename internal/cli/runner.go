package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/calder-io/spiguard/contract"
	"github.com/calder-io/spiguard/internal/astscan"
	"github.com/calder-io/spiguard/internal/baseline"
	"github.com/calder-io/spiguard/internal/checks"
	"github.com/calder-io/spiguard/internal/config"
)

// runContext is everything a scan-based command needs: the parsed tree,
// the effective policy, and the opened baseline store (nil when the
// database could not be opened; checks then run without suppression).
type runContext struct {
	Root     string
	Snapshot *astscan.Snapshot
	Policy   *config.Config
	Store    *baseline.Store
	Log      zerolog.Logger
}

func (rc *runContext) Close() {
	if rc.Store != nil {
		rc.Store.Close()
	}
}

func (rc *runContext) params(strict bool) checks.Params {
	p := checks.Params{
		Snapshot: rc.Snapshot,
		Policy:   rc.Policy,
		Strict:   strict,
	}
	if rc.Store != nil {
		p.Baseline = rc.Store
	}
	return p
}

// newRunContext loads the policy, scans the tree, and opens the baseline
// store. Errors here are command errors: the scan itself never ran.
func newRunContext(opts *RootOptions, cmd *cobra.Command, root string) (*runContext, error) {
	log := opts.Logger(cmd)

	policy, err := config.Load(root)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load policy", err)
	}

	snap, err := astscan.Scan(root, log)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("scan %s", root), err)
	}

	// The baseline is an aid, not a prerequisite: on a read-only checkout
	// the database cannot be created, and the checks must still run. No
	// store means no suppression and no run record.
	store, err := baseline.Open(policy.BaselinePath(root))
	if err != nil {
		log.Warn().Err(err).Msg("baseline database unavailable, continuing without it")
		store = nil
	}

	return &runContext{
		Root:     root,
		Snapshot: snap,
		Policy:   policy,
		Store:    store,
		Log:      log,
	}, nil
}

// runChecks runs the named checks (all enabled ones when names is empty)
// and assembles a report. Parse failures always count, even when the
// parse pseudo-check was not asked for by name.
func runChecks(ctx context.Context, rc *runContext, names []string, strict bool) (contract.CheckResult, error) {
	enabled := func(name string) bool {
		if len(names) > 0 {
			for _, n := range names {
				if n == name {
					return true
				}
			}
			return false
		}
		return rc.Policy.CheckEnabled(name)
	}

	findings := checks.ParseFindings(rc.Snapshot)
	ran := make([]string, 0)
	p := rc.params(strict)
	for _, c := range checks.All() {
		if !enabled(c.Name()) {
			continue
		}
		ran = append(ran, c.Name())
		fs, err := c.Run(ctx, p)
		if err != nil {
			return contract.CheckResult{}, WrapExitError(ExitCommandError, fmt.Sprintf("run check %s", c.Name()), err)
		}
		findings = append(findings, fs...)
	}

	if findings == nil {
		// Keep findings a JSON array even when empty; the wire schema
		// rejects null.
		findings = []contract.Finding{}
	}
	sortFindings(findings)
	counts := checks.Count(findings)
	passed := counts.Error == 0 && (!strict || counts.Warning == 0)

	return contract.CheckResult{
		SchemaVersion: contract.SchemaVersion,
		RunID:         uuid.NewString(),
		Check:         joinNames(ran),
		Root:          rc.Root,
		FilesScanned:  len(rc.Snapshot.Files),
		Findings:      findings,
		Counts:        counts,
		Passed:        passed,
	}, nil
}

// recordRun persists the run outcome. Recording is best effort: a full
// disk must not turn a clean scan into a failure.
func recordRun(ctx context.Context, rc *runContext, res contract.CheckResult) {
	if rc.Store == nil {
		return
	}
	err := rc.Store.RecordRun(ctx, baseline.Run{
		ID:            res.RunID,
		Root:          res.Root,
		ToolVersion:   ToolVersion,
		SchemaVersion: res.SchemaVersion,
		FilesScanned:  res.FilesScanned,
		Findings:      res.Counts.Total(),
		Passed:        res.Passed,
	})
	if err != nil {
		rc.Log.Warn().Err(err).Msg("record run")
	}
}

// sortFindings orders findings by file, line, check for stable output.
func sortFindings(findings []contract.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Check < findings[j].Check
	})
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// validCheckNames rejects unknown --check values before any work happens.
func validCheckNames(names []string) error {
	known := make(map[string]bool)
	for _, c := range checks.All() {
		known[c.Name()] = true
	}
	for _, n := range names {
		if !known[n] {
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown check %q", n))
		}
	}
	return nil
}
