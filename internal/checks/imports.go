package checks

import (
	"context"
	"fmt"
	"go/format"
	"strconv"
	"strings"

	"github.com/calder-io/spiguard/contract"
	"github.com/calder-io/spiguard/internal/astscan"
)

// Imports enforces import hygiene on declaration files: no blank or dot
// imports, no banned prefixes, and no external dependencies outside the
// policy's allowed prefixes. A declaration surface that imports an
// implementation package stops being a pure contract.
type Imports struct{}

// Name implements Check.
func (Imports) Name() string { return NameImports }

// Run implements Check.
func (Imports) Run(ctx context.Context, p Params) ([]contract.Finding, error) {
	var findings []contract.Finding
	for _, f := range p.Snapshot.Files {
		if f.ParseErr != nil {
			continue
		}
		for _, imp := range f.AST.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				continue
			}
			line := f.Line(imp.Pos())

			if imp.Name != nil && imp.Name.Name == "_" {
				findings = append(findings, contract.Finding{
					Check:    NameImports,
					Severity: contract.SeverityWarning,
					File:     f.Path,
					Line:     line,
					Message:  fmt.Sprintf("blank import of %q has no place in a declaration file", path),
					Fixable:  true,
				})
				continue
			}
			if imp.Name != nil && imp.Name.Name == "." {
				findings = append(findings, contract.Finding{
					Check:    NameImports,
					Severity: contract.SeverityError,
					File:     f.Path,
					Line:     line,
					Message:  fmt.Sprintf("dot import of %q", path),
				})
				continue
			}

			if prefix, banned := matchPrefix(path, p.Policy.BannedImports); banned {
				findings = append(findings, contract.Finding{
					Check:    NameImports,
					Severity: contract.SeverityError,
					File:     f.Path,
					Line:     line,
					Message:  fmt.Sprintf("import %q is banned (prefix %s)", path, prefix),
				})
				continue
			}

			if isExternal(path) {
				if _, ok := matchPrefix(path, p.Policy.AllowedImports); !ok {
					findings = append(findings, contract.Finding{
						Check:    NameImports,
						Severity: contract.SeverityError,
						File:     f.Path,
						Line:     line,
						Message:  fmt.Sprintf("import %q is outside the declaration surface", path),
					})
				}
			}
		}
	}
	return findings, nil
}

// isExternal reports whether an import path leaves the standard library.
// Stdlib paths have no dot in their first segment.
func isExternal(path string) bool {
	first := path
	if i := strings.IndexByte(path, '/'); i >= 0 {
		first = path[:i]
	}
	return strings.Contains(first, ".")
}

func matchPrefix(path string, prefixes []string) (string, bool) {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/") {
			return prefix, true
		}
	}
	return "", false
}

// FixFile implements FileFixer: blank imports are removed. Dot imports and
// banned imports are not auto-fixed; removing them breaks references in
// the file, which a human has to untangle.
func (Imports) FixFile(f *astscan.File, p Params) ([]byte, bool, error) {
	if f.ParseErr != nil {
		return f.Src, false, nil
	}

	type span struct{ start, end int }
	var drops []span
	for _, imp := range f.AST.Imports {
		if imp.Name == nil || imp.Name.Name != "_" {
			continue
		}
		pos := f.Fset.Position(imp.Pos())
		end := f.Fset.Position(imp.End())
		drops = append(drops, span{lineStartOffset(f.Src, pos.Offset), lineEndOffset(f.Src, end.Offset)})
	}
	if len(drops) == 0 {
		return f.Src, false, nil
	}

	src := f.Src
	for i := len(drops) - 1; i >= 0; i-- {
		src = append(src[:drops[i].start:drops[i].start], src[drops[i].end:]...)
	}

	formatted, err := format.Source(src)
	if err != nil {
		return nil, false, fmt.Errorf("imports fix %s: format: %w", f.Path, err)
	}
	return formatted, true, nil
}

// lineStartOffset walks back to the start of the line containing offset.
func lineStartOffset(src []byte, offset int) int {
	for offset > 0 && src[offset-1] != '\n' {
		offset--
	}
	return offset
}

// lineEndOffset walks forward past the end of the line containing offset.
func lineEndOffset(src []byte, offset int) int {
	for offset < len(src) && src[offset] != '\n' {
		offset++
	}
	if offset < len(src) {
		offset++ // consume the newline
	}
	return offset
}
