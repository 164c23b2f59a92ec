package checks

import (
	"context"

	"github.com/calder-io/spiguard/contract"
	"github.com/calder-io/spiguard/internal/astscan"
	"github.com/calder-io/spiguard/internal/config"
)

// Check names, as accepted by the --check flag and the policy file.
const (
	NameDupes   = "dupes"
	NameHeaders = "headers"
	NameImports = "imports"
	NameOrder   = "order"
	NameStubs   = "stubs"
)

// Baseline is the subset of the baseline store the dupes check needs.
// A nil Baseline means no suppression.
type Baseline interface {
	IsAccepted(ctx context.Context, hash string) (bool, error)
}

// Params is everything a check may consult. Checks share the snapshot but
// no mutable state.
type Params struct {
	Snapshot *astscan.Snapshot
	Policy   *config.Config
	Baseline Baseline
	Strict   bool
}

// Check is one hygiene rule over the scan snapshot.
type Check interface {
	Name() string

	// Run reports findings. An error return means the check itself could
	// not run, not that the tree has problems.
	Run(ctx context.Context, p Params) ([]contract.Finding, error)
}

// FileFixer is implemented by checks that can rewrite a file to conform.
type FileFixer interface {
	Check

	// FixFile returns the repaired source and whether anything changed.
	// Files with parse errors are returned unchanged.
	FixFile(f *astscan.File, p Params) ([]byte, bool, error)
}

// All returns every check, in name order.
func All() []Check {
	return []Check{
		Dupes{},
		Headers{},
		Imports{},
		Order{},
		Stubs{},
	}
}

// Fixers returns the checks that can repair files, in name order.
func Fixers() []FileFixer {
	var fixers []FileFixer
	for _, c := range All() {
		if f, ok := c.(FileFixer); ok {
			fixers = append(fixers, f)
		}
	}
	return fixers
}

// Count tallies findings by severity.
func Count(findings []contract.Finding) contract.SeverityCounts {
	var counts contract.SeverityCounts
	for _, f := range findings {
		switch f.Severity {
		case contract.SeverityError:
			counts.Error++
		case contract.SeverityWarning:
			counts.Warning++
		case contract.SeverityInfo:
			counts.Info++
		}
	}
	return counts
}

// ParseFindings converts the snapshot's parse failures into findings so a
// broken file shows up in the report alongside real findings.
func ParseFindings(snap *astscan.Snapshot) []contract.Finding {
	var findings []contract.Finding
	for _, f := range snap.ParseFailures() {
		findings = append(findings, contract.Finding{
			Check:    "parse",
			Severity: contract.SeverityError,
			File:     f.Path,
			Line:     1,
			Message:  f.ParseErr.Error(),
		})
	}
	return findings
}
