package checks

import (
	"context"
	"fmt"
	"sort"

	"github.com/calder-io/spiguard/contract"
	"github.com/calder-io/spiguard/internal/astscan"
)

// Dupes groups interface declarations by signature hash and reports every
// declaration that shares a hash with an earlier one. The interface name is
// not part of the hash: "same method set under a different name" is exactly
// the redundancy this check exists to catch.
type Dupes struct{}

// Name implements Check.
func (Dupes) Name() string { return NameDupes }

// Run implements Check. Hashes recorded in the baseline are suppressed
// unless strict mode is on.
func (Dupes) Run(ctx context.Context, p Params) ([]contract.Finding, error) {
	groups := make(map[string][]astscan.Interface)
	for _, iface := range p.Snapshot.Interfaces {
		h := iface.Sig.Hash()
		groups[h] = append(groups[h], iface)
	}

	hashes := make([]string, 0, len(groups))
	for h, members := range groups {
		if len(members) > 1 {
			hashes = append(hashes, h)
		}
	}
	sort.Strings(hashes)

	var findings []contract.Finding
	for _, h := range hashes {
		if p.Baseline != nil && !p.Strict {
			accepted, err := p.Baseline.IsAccepted(ctx, h)
			if err != nil {
				return nil, fmt.Errorf("dupes: baseline lookup: %w", err)
			}
			if accepted {
				continue
			}
		}

		members := groups[h]
		primary := members[0]
		for _, dup := range members[1:] {
			findings = append(findings, contract.Finding{
				Check:    NameDupes,
				Severity: contract.SeverityError,
				File:     dup.File.Path,
				Line:     dup.Line,
				Message: fmt.Sprintf("interface %s duplicates %s (%s:%d); %d declarations share this signature",
					dup.Name, primary.Name, primary.File.Path, primary.Line, len(members)),
				Hash: h,
			})
		}
	}

	return findings, nil
}
