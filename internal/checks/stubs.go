package checks

import (
	"context"
	"fmt"
	"go/ast"
	"go/format"

	"github.com/calder-io/spiguard/contract"
	"github.com/calder-io/spiguard/internal/astscan"
)

// StubBody is the only function body allowed in a stub declaration file.
const StubBody = `panic("spiguard: not implemented")`

// Stubs enforces the canonical body rule in *_stub.go files: every function
// and method body must be exactly the StubBody panic. Stub files exist so
// consumers can wire a provider slot before an implementation lands; any
// real logic in one is a bug waiting to ship.
type Stubs struct{}

// Name implements Check.
func (Stubs) Name() string { return NameStubs }

// Run implements Check.
func (Stubs) Run(ctx context.Context, p Params) ([]contract.Finding, error) {
	var findings []contract.Finding
	for _, f := range p.Snapshot.Files {
		if f.ParseErr != nil || !f.IsStubFile() {
			continue
		}
		for _, fn := range nonConformingStubs(f) {
			findings = append(findings, contract.Finding{
				Check:    NameStubs,
				Severity: contract.SeverityWarning,
				File:     f.Path,
				Line:     f.Line(fn.Pos()),
				Message:  fmt.Sprintf("%s body is not the canonical stub panic", fn.Name.Name),
				Fixable:  true,
			})
		}
	}
	return findings, nil
}

// nonConformingStubs returns the function declarations whose body differs
// from the canonical stub.
func nonConformingStubs(f *astscan.File) []*ast.FuncDecl {
	var out []*ast.FuncDecl
	for _, decl := range f.AST.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}
		if !isCanonicalStub(fn.Body) {
			out = append(out, fn)
		}
	}
	return out
}

// isCanonicalStub reports whether a body is exactly one statement:
// panic("spiguard: not implemented").
func isCanonicalStub(body *ast.BlockStmt) bool {
	if len(body.List) != 1 {
		return false
	}
	exprStmt, ok := body.List[0].(*ast.ExprStmt)
	if !ok {
		return false
	}
	call, ok := exprStmt.X.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return false
	}
	ident, ok := call.Fun.(*ast.Ident)
	if !ok || ident.Name != "panic" {
		return false
	}
	lit, ok := call.Args[0].(*ast.BasicLit)
	return ok && lit.Value == `"spiguard: not implemented"`
}

// FixFile implements FileFixer: every non-conforming body in a stub file is
// replaced with the canonical panic.
func (Stubs) FixFile(f *astscan.File, p Params) ([]byte, bool, error) {
	if f.ParseErr != nil || !f.IsStubFile() {
		return f.Src, false, nil
	}

	broken := nonConformingStubs(f)
	if len(broken) == 0 {
		return f.Src, false, nil
	}

	src := f.Src
	for i := len(broken) - 1; i >= 0; i-- {
		body := broken[i].Body
		start := f.Fset.Position(body.Pos()).Offset // the '{'
		end := f.Fset.Position(body.End()).Offset   // past the '}'
		replacement := []byte("{\n\t" + StubBody + "\n}")

		var next []byte
		next = append(next, src[:start]...)
		next = append(next, replacement...)
		next = append(next, src[end:]...)
		src = next
	}

	formatted, err := format.Source(src)
	if err != nil {
		return nil, false, fmt.Errorf("stubs fix %s: format: %w", f.Path, err)
	}
	return formatted, true, nil
}
