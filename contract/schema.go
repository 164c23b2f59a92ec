package contract

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Schema names defined in schema.cue.
const (
	SchemaCheckResult      = "check_result"
	SchemaPromotionGate    = "promotion_gate"
	SchemaValidationResult = "validation_result"
)

// SchemaNames returns the schema names defined in schema.cue, sorted.
func SchemaNames() []string {
	return []string{SchemaCheckResult, SchemaPromotionGate, SchemaValidationResult}
}

// DetectSchema sniffs which schema a decoded document should be validated
// against, using tell-tale top-level fields. Returns "" if nothing matches.
func DetectSchema(doc map[string]any) string {
	if _, ok := doc["decision"]; ok {
		return SchemaPromotionGate
	}
	if _, ok := doc["valid"]; ok {
		return SchemaValidationResult
	}
	if _, ok := doc["findings"]; ok {
		return SchemaCheckResult
	}
	return ""
}

// ValidateJSONDocument validates a JSON document against the named schema.
// Field-level violations come back as FieldErrors; the error return is for
// infrastructure problems only (unknown schema, unparseable input).
func ValidateJSONDocument(schema string, data []byte) ([]FieldError, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: parse document: %w", ErrMalformedInput, err)
	}
	return validateDocument(schema, data)
}

// ValidateYAMLDocument validates a YAML document against the named schema.
// The document is decoded and re-encoded as JSON before unification; YAML
// and JSON wire formats share one schema.
func ValidateYAMLDocument(schema string, data []byte) ([]FieldError, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: parse document: %w", ErrMalformedInput, err)
	}
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: re-encode document: %w", ErrMalformedInput, err)
	}
	return validateDocument(schema, jsonBytes)
}

// validateDocument unifies a JSON document with the schema value and
// collects every violation. JSON is a subset of CUE, so the document bytes
// compile directly.
func validateDocument(schema string, jsonBytes []byte) ([]FieldError, error) {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(schemaSource)
	if err := schemaVal.Err(); err != nil {
		return nil, fmt.Errorf("compile schema.cue: %w", err)
	}

	target := schemaVal.LookupPath(cue.ParsePath(schema))
	if !target.Exists() {
		return nil, fmt.Errorf("%s: unknown schema %q", ErrUnknownSchema, schema)
	}

	docVal := ctx.CompileBytes(jsonBytes)
	if err := docVal.Err(); err != nil {
		return nil, fmt.Errorf("%s: compile document: %w", ErrMalformedInput, err)
	}

	unified := target.Unify(docVal)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cueErrorsToFieldErrors(err), nil
	}
	return nil, nil
}

// cueErrorsToFieldErrors flattens a CUE error list into FieldErrors with
// dotted field paths.
func cueErrorsToFieldErrors(err error) []FieldError {
	var out []FieldError
	for _, e := range cueerrors.Errors(err) {
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = "document"
		}
		format, args := e.Msg()
		out = append(out, FieldError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
			Code:    ErrSchemaViolation,
		})
	}
	return out
}
