package checks

import (
	"bytes"
	"context"
	"fmt"

	"github.com/calder-io/spiguard/contract"
	"github.com/calder-io/spiguard/internal/astscan"
)

// Headers bans license headers from declaration files. The SPI surface is
// published under the repository license; per-file SPDX tags drift out of
// sync with it and are policy violations, not documentation.
//
// Only comment lines above the package clause are considered, so a string
// literal mentioning SPDX elsewhere in the file never matches.
type Headers struct{}

// Name implements Check.
func (Headers) Name() string { return NameHeaders }

// Run implements Check.
func (Headers) Run(ctx context.Context, p Params) ([]contract.Finding, error) {
	var findings []contract.Finding
	for _, f := range p.Snapshot.Files {
		if f.ParseErr != nil {
			continue
		}
		for _, line := range headerLines(f, p.Policy.HeaderPatterns) {
			findings = append(findings, contract.Finding{
				Check:    NameHeaders,
				Severity: contract.SeverityWarning,
				File:     f.Path,
				Line:     line.number,
				Message:  fmt.Sprintf("banned header line matches %q", line.pattern),
				Fixable:  true,
			})
		}
	}
	return findings, nil
}

type headerLine struct {
	number  int // 1-based
	offset  int // byte offset of line start
	pattern string
}

// headerLines returns the comment lines above the package clause matching
// any banned pattern.
func headerLines(f *astscan.File, patterns []string) []headerLine {
	packageOffset := f.Fset.Position(f.AST.Package).Offset

	var matches []headerLine
	lineNo := 0
	for offset := 0; offset < packageOffset; {
		end := lineEndOffset(f.Src, offset)
		lineNo++
		line := f.Src[offset:min(end, packageOffset)]
		if isCommentLine(line) {
			for _, pattern := range patterns {
				if bytes.Contains(line, []byte(pattern)) {
					matches = append(matches, headerLine{number: lineNo, offset: offset, pattern: pattern})
					break
				}
			}
		}
		offset = end
	}
	return matches
}

func isCommentLine(line []byte) bool {
	trimmed := bytes.TrimLeft(line, " \t")
	return bytes.HasPrefix(trimmed, []byte("//")) ||
		bytes.HasPrefix(trimmed, []byte("/*")) ||
		bytes.HasPrefix(trimmed, []byte("*"))
}

// FixFile implements FileFixer: matching header lines are removed. Build
// constraints and generate directives never match the patterns, so they
// survive untouched.
func (Headers) FixFile(f *astscan.File, p Params) ([]byte, bool, error) {
	if f.ParseErr != nil {
		return f.Src, false, nil
	}

	lines := headerLines(f, p.Policy.HeaderPatterns)
	if len(lines) == 0 {
		return f.Src, false, nil
	}

	src := f.Src
	for i := len(lines) - 1; i >= 0; i-- {
		start := lines[i].offset
		end := lineEndOffset(src, start)
		src = append(src[:start:start], src[end:]...)
	}
	return src, true, nil
}
