package checks

import (
	"fmt"

	"github.com/calder-io/spiguard/internal/astscan"
)

// FixResult records the outcome of fixing one file.
type FixResult struct {
	Path   string   `json:"path"`
	Checks []string `json:"checks"` // fixers that changed the file
	Before []byte   `json:"-"`
	After  []byte   `json:"-"`
}

// ApplyFixes runs every enabled fixer over the snapshot and returns one
// result per changed file. Nothing is written to disk; callers decide
// whether to persist or just diff.
//
// Fixers chain: a file changed by one fixer is re-parsed before the next
// runs, so offsets computed against stale source can never corrupt a file.
func ApplyFixes(p Params, enabled func(name string) bool) ([]FixResult, error) {
	var results []FixResult

	for _, f := range p.Snapshot.Files {
		if f.ParseErr != nil {
			continue
		}

		cur := f
		var applied []string
		for _, fixer := range Fixers() {
			if enabled != nil && !enabled(fixer.Name()) {
				continue
			}
			out, changed, err := fixer.FixFile(cur, p)
			if err != nil {
				return nil, fmt.Errorf("fix %s: %w", f.Path, err)
			}
			if !changed {
				continue
			}
			applied = append(applied, fixer.Name())

			cur = astscan.FromSource(f.Path, out)
			if cur.ParseErr != nil {
				// A fixer producing unparseable output is a bug here,
				// not in the scanned tree.
				return nil, fmt.Errorf("fix %s: %s produced invalid Go: %w", f.Path, fixer.Name(), cur.ParseErr)
			}
			cur.AbsPath = f.AbsPath
		}

		if len(applied) > 0 {
			results = append(results, FixResult{
				Path:   f.Path,
				Checks: applied,
				Before: f.Src,
				After:  cur.Src,
			})
		}
	}

	return results, nil
}
