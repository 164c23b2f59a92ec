package signature

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MethodSig is the normalized shape of one interface method.
// Types are rendered strings; parameter names are already stripped.
type MethodSig struct {
	Name    string   `json:"name"`
	Params  []string `json:"params"`
	Results []string `json:"results,omitempty"`
}

// String renders the method as "Name(P1,P2)(R1,R2)".
// The result group is omitted entirely when the method returns nothing,
// so "Close()" and "Close()()" cannot diverge.
func (m MethodSig) String() string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteByte('(')
	b.WriteString(strings.Join(m.Params, ","))
	b.WriteByte(')')
	if len(m.Results) > 0 {
		b.WriteByte('(')
		b.WriteString(strings.Join(m.Results, ","))
		b.WriteByte(')')
	}
	return b.String()
}

// InterfaceSig is the extracted method set of one interface declaration.
// Embedded interfaces appear as Embeds entries (rendered type strings);
// they are part of the canonical form because two declarations with the
// same literal methods but different embeds are not interchangeable.
type InterfaceSig struct {
	Name    string      `json:"name"`
	Methods []MethodSig `json:"methods"`
	Embeds  []string    `json:"embeds,omitempty"`
}

// Canonical produces the canonical signature string for an interface.
// Method order in source is irrelevant: methods and embeds are sorted,
// whitespace is collapsed, and the result is NFC normalized. The interface
// name is deliberately excluded - duplicate detection asks "same shape
// under a different name", so the name must not perturb the hash.
func (s InterfaceSig) Canonical() string {
	parts := make([]string, 0, len(s.Methods)+len(s.Embeds))
	for _, m := range s.Methods {
		parts = append(parts, normalizeToken(m.String()))
	}
	for _, e := range s.Embeds {
		parts = append(parts, normalizeToken("~"+e))
	}
	sort.Strings(parts)
	return norm.NFC.String(strings.Join(parts, ";"))
}

// Hash returns the content hash of the canonical signature.
func (s InterfaceSig) Hash() string {
	return hashWithDomain(DomainInterface, []byte(s.Canonical()))
}

// normalizeToken collapses whitespace runs to a single space. Rendered type
// expressions may differ in spacing depending on the printer; signatures
// must not depend on that. Single spaces stay because they are significant
// in types like "chan int" and "func() error".
func normalizeToken(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
