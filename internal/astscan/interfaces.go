package astscan

import (
	"go/ast"
	"go/types"

	"github.com/calder-io/spiguard/internal/signature"
)

// extractInterfaces collects every named interface declaration in a file.
func extractInterfaces(f *File) []Interface {
	var out []Interface

	for _, decl := range f.AST.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			ifaceType, ok := typeSpec.Type.(*ast.InterfaceType)
			if !ok {
				continue
			}
			out = append(out, Interface{
				File: f,
				Name: typeSpec.Name.Name,
				Line: f.Line(typeSpec.Pos()),
				Sig:  buildSig(typeSpec.Name.Name, ifaceType),
			})
		}
	}

	return out
}

// buildSig converts an AST interface type to its normalized signature.
// Parameter names are dropped here: only types survive into the signature.
func buildSig(name string, iface *ast.InterfaceType) signature.InterfaceSig {
	sig := signature.InterfaceSig{Name: name}

	if iface.Methods == nil {
		return sig
	}
	for _, field := range iface.Methods.List {
		if len(field.Names) == 0 {
			// Embedded interface (or type union element).
			sig.Embeds = append(sig.Embeds, types.ExprString(field.Type))
			continue
		}
		funcType, ok := field.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		for _, methodName := range field.Names {
			sig.Methods = append(sig.Methods, signature.MethodSig{
				Name:    methodName.Name,
				Params:  fieldTypes(funcType.Params),
				Results: fieldTypes(funcType.Results),
			})
		}
	}

	return sig
}

// fieldTypes renders a parameter or result list as type strings, one entry
// per declared name. "a, b string" contributes "string" twice.
func fieldTypes(fields *ast.FieldList) []string {
	if fields == nil {
		return nil
	}
	var out []string
	for _, field := range fields.List {
		typeStr := types.ExprString(field.Type)
		n := len(field.Names)
		if n == 0 {
			n = 1 // unnamed parameter or result
		}
		for i := 0; i < n; i++ {
			out = append(out, typeStr)
		}
	}
	return out
}
