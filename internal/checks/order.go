package checks

import (
	"context"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"sort"
	"strings"

	"github.com/calder-io/spiguard/contract"
	"github.com/calder-io/spiguard/internal/astscan"
)

// Order enforces alphabetical declaration order: methods within an
// interface, and names within parenthesized const/var blocks. Blocks using
// iota are exempt because their order is semantic.
//
// Method order is fixable; const/var blocks are reported only, since
// reordering initialized values can change declaration dependencies.
type Order struct{}

// Name implements Check.
func (Order) Name() string { return NameOrder }

// Run implements Check.
func (Order) Run(ctx context.Context, p Params) ([]contract.Finding, error) {
	var findings []contract.Finding
	for _, f := range p.Snapshot.Files {
		if f.ParseErr != nil {
			continue
		}
		findings = append(findings, orderFindings(f)...)
	}
	return findings, nil
}

func orderFindings(f *astscan.File) []contract.Finding {
	var findings []contract.Finding

	for _, decl := range f.AST.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}

		switch genDecl.Tok {
		case token.TYPE:
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				iface, ok := typeSpec.Type.(*ast.InterfaceType)
				if !ok {
					continue
				}
				if name, line, ok := firstUnsortedMethod(f, iface); ok {
					findings = append(findings, contract.Finding{
						Check:    NameOrder,
						Severity: contract.SeverityWarning,
						File:     f.Path,
						Line:     line,
						Message:  fmt.Sprintf("method %s of interface %s is out of alphabetical order", name, typeSpec.Name.Name),
						Fixable:  true,
					})
				}
			}

		case token.CONST, token.VAR:
			if !genDecl.Lparen.IsValid() || usesIota(genDecl) {
				continue
			}
			if name, line, ok := firstUnsortedSpec(f, genDecl); ok {
				findings = append(findings, contract.Finding{
					Check:    NameOrder,
					Severity: contract.SeverityWarning,
					File:     f.Path,
					Line:     line,
					Message:  fmt.Sprintf("%s %s is out of alphabetical order", genDecl.Tok, name),
				})
			}
		}
	}

	return findings
}

// firstUnsortedMethod returns the first method declared before one that
// should precede it alphabetically.
func firstUnsortedMethod(f *astscan.File, iface *ast.InterfaceType) (string, int, bool) {
	prev := ""
	for _, field := range iface.Methods.List {
		if len(field.Names) == 0 {
			continue // embedded interface, order not enforced
		}
		name := field.Names[0].Name
		if prev != "" && name < prev {
			return name, f.Line(field.Pos()), true
		}
		prev = name
	}
	return "", 0, false
}

func firstUnsortedSpec(f *astscan.File, decl *ast.GenDecl) (string, int, bool) {
	prev := ""
	for _, spec := range decl.Specs {
		valueSpec, ok := spec.(*ast.ValueSpec)
		if !ok || len(valueSpec.Names) == 0 {
			continue
		}
		name := valueSpec.Names[0].Name
		if prev != "" && name < prev {
			return name, f.Line(valueSpec.Pos()), true
		}
		prev = name
	}
	return "", 0, false
}

func usesIota(decl *ast.GenDecl) bool {
	found := false
	ast.Inspect(decl, func(n ast.Node) bool {
		if ident, ok := n.(*ast.Ident); ok && ident.Name == "iota" {
			found = true
			return false
		}
		return !found
	})
	return found
}

// FixFile implements FileFixer: interfaces with out-of-order methods are
// rewritten with their method fields sorted. The rewrite is textual so doc
// and trailing comments travel with their method; embedded interfaces keep
// their slots.
func (o Order) FixFile(f *astscan.File, p Params) ([]byte, bool, error) {
	if f.ParseErr != nil {
		return f.Src, false, nil
	}

	// Collect interfaces needing a rewrite, innermost-last source order.
	var targets []*ast.InterfaceType
	for _, decl := range f.AST.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if iface, ok := typeSpec.Type.(*ast.InterfaceType); ok {
				if _, _, unsorted := firstUnsortedMethod(f, iface); unsorted {
					targets = append(targets, iface)
				}
			}
		}
	}
	if len(targets) == 0 {
		return f.Src, false, nil
	}

	// Rewrite back-to-front so earlier offsets stay valid.
	src := f.Src
	for i := len(targets) - 1; i >= 0; i-- {
		var err error
		src, err = reorderInterface(f, src, targets[i])
		if err != nil {
			return nil, false, fmt.Errorf("order fix %s: %w", f.Path, err)
		}
	}

	formatted, err := format.Source(src)
	if err != nil {
		return nil, false, fmt.Errorf("order fix %s: format: %w", f.Path, err)
	}
	return formatted, true, nil
}

// fieldSpan is the byte range of one interface field including its doc and
// trailing comment.
type fieldSpan struct {
	start, end int
	name       string // "" for embedded interfaces
	text       string
}

func reorderInterface(f *astscan.File, src []byte, iface *ast.InterfaceType) ([]byte, error) {
	offset := func(pos token.Pos) int { return f.Fset.Position(pos).Offset }

	spans := make([]fieldSpan, 0, len(iface.Methods.List))
	for _, field := range iface.Methods.List {
		start := offset(field.Pos())
		if field.Doc != nil {
			start = offset(field.Doc.Pos())
		}
		end := offset(field.End())
		if field.Comment != nil {
			end = offset(field.Comment.End())
		}
		if start < 0 || end > len(src) || start >= end {
			return nil, fmt.Errorf("field span out of range")
		}
		if n := len(spans); n > 0 && start < spans[n-1].end {
			return nil, fmt.Errorf("field spans overlap")
		}
		span := fieldSpan{start: start, end: end, text: string(src[start:end])}
		if len(field.Names) > 0 {
			span.name = field.Names[0].Name
		}
		spans = append(spans, span)
	}
	if len(spans) < 2 {
		return src, nil
	}

	// Sort the method texts among the method slots only.
	type namedText struct{ name, text string }
	var methods []namedText
	for _, s := range spans {
		if s.name != "" {
			methods = append(methods, namedText{s.name, s.text})
		}
	}
	sort.SliceStable(methods, func(i, j int) bool { return methods[i].name < methods[j].name })

	next := 0
	parts := make([]string, len(spans))
	for i, s := range spans {
		if s.name == "" {
			parts[i] = s.text
			continue
		}
		parts[i] = methods[next].text
		next++
	}

	// Re-emit the body with the original inter-field text kept in place.
	// The gaps hold blank lines and free-floating comments that belong to
	// no field; a fixer must never drop user text.
	var b strings.Builder
	b.Write(src[:spans[0].start])
	for i, s := range spans {
		if i > 0 {
			b.Write(src[spans[i-1].end:s.start])
		}
		b.WriteString(parts[i])
	}
	b.Write(src[spans[len(spans)-1].end:])
	return []byte(b.String()), nil
}
