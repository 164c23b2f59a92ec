package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/calder-io/spiguard/contract"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var schemaName string

	cmd := &cobra.Command{
		Use:   "validate <file...>",
		Short: "Validate contract documents",
		Long: `Validate JSON or YAML contract documents against the embedded CUE
schemas and the field-level rules. The schema is detected from the
document's top-level fields unless --schema forces one.

Files ending in .yml or .yaml are decoded as YAML, everything else as
JSON.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args, schemaName)
		},
	}

	cmd.Flags().StringVar(&schemaName, "schema", "", "validate against this schema instead of detecting one")

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command, paths []string, schemaName string) error {
	formatter := formatterFor(opts, cmd)

	if schemaName != "" && !knownSchema(schemaName) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("unknown schema %q: must be one of %v", schemaName, contract.SchemaNames()))
	}

	results := make([]contract.ValidationResult, 0, len(paths))
	for _, path := range paths {
		res, err := validateDocumentFile(path, schemaName)
		if err != nil {
			return err
		}
		formatter.VerboseLog("%s: schema %s, %d error(s)", path, res.Schema, len(res.Errors))
		results = append(results, res)
	}

	failed := 0
	for _, r := range results {
		if !r.Valid {
			failed++
		}
	}

	if formatter.Format == "json" {
		if err := formatter.JSON(Response{Status: "ok", Data: results}); err != nil {
			return err
		}
	} else {
		renderValidationResults(formatter, results)
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d document(s) invalid", failed, len(results)))
	}
	return nil
}

// validateDocumentFile runs schema and field validation over one file.
// Unreadable files are command errors; invalid documents are results.
func validateDocumentFile(path, forcedSchema string) (contract.ValidationResult, error) {
	res := contract.ValidationResult{
		SchemaVersion: contract.SchemaVersion,
		Document:      path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, WrapExitError(ExitCommandError, fmt.Sprintf("read %s", path), err)
	}

	isYAML := strings.HasSuffix(path, ".yml") || strings.HasSuffix(path, ".yaml")

	var doc map[string]any
	if isYAML {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		res.Errors = append(res.Errors, contract.FieldError{
			Field:   "document",
			Message: err.Error(),
			Code:    contract.ErrMalformedInput,
		})
		return res, nil
	}

	schema := forcedSchema
	if schema == "" {
		schema = contract.DetectSchema(doc)
	}
	if schema == "" {
		res.Errors = append(res.Errors, contract.FieldError{
			Field:   "document",
			Message: "cannot detect document schema from top-level fields",
			Code:    contract.ErrUnsupportedDocument,
		})
		return res, nil
	}
	res.Schema = schema

	var schemaErrs []contract.FieldError
	if isYAML {
		schemaErrs, err = contract.ValidateYAMLDocument(schema, data)
	} else {
		schemaErrs, err = contract.ValidateJSONDocument(schema, data)
	}
	if err != nil {
		return res, WrapExitError(ExitCommandError, fmt.Sprintf("validate %s", path), err)
	}
	res.Errors = append(res.Errors, schemaErrs...)

	// Field-level rules only run on documents that fit the schema shape.
	if len(schemaErrs) == 0 {
		res.Errors = append(res.Errors, fieldValidate(schema, data, isYAML)...)
	}

	res.Valid = len(res.Errors) == 0
	return res, nil
}

// fieldValidate decodes the document into its typed form and runs the
// in-process validation rules over it.
func fieldValidate(schema string, data []byte, isYAML bool) []contract.FieldError {
	decode := func(v any) error {
		if isYAML {
			return yaml.Unmarshal(data, v)
		}
		return json.Unmarshal(data, v)
	}

	var target any
	switch schema {
	case contract.SchemaCheckResult:
		target = &contract.CheckResult{}
	case contract.SchemaValidationResult:
		target = &contract.ValidationResult{}
	case contract.SchemaPromotionGate:
		target = &contract.PromotionGate{}
	default:
		return []contract.FieldError{{
			Field:   "schema",
			Message: fmt.Sprintf("no typed form for schema %q", schema),
			Code:    contract.ErrUnknownSchema,
		}}
	}

	if err := decode(target); err != nil {
		return []contract.FieldError{{
			Field:   "document",
			Message: err.Error(),
			Code:    contract.ErrMalformedInput,
		}}
	}
	return contract.Validate(target)
}

func renderValidationResults(f *OutputFormatter, results []contract.ValidationResult) {
	for _, r := range results {
		name := filepath.Base(r.Document)
		if r.Valid {
			fmt.Fprintf(f.Writer, "✓ %s (%s)\n", name, r.Schema)
			continue
		}
		fmt.Fprintf(f.Writer, "✗ %s\n", name)
		for _, e := range r.Errors {
			fmt.Fprintf(f.Writer, "  %s %s: %s\n", e.Code, e.Field, e.Message)
		}
	}
}

func knownSchema(name string) bool {
	for _, s := range contract.SchemaNames() {
		if s == name {
			return true
		}
	}
	return false
}
