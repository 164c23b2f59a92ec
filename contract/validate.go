package contract

import "fmt"

// Validation error codes (E200-E299)
const (
	// General document errors (E200-E209)
	ErrUnsupportedDocument = "E200" // unsupported document type for validation
	ErrVersionMissing      = "E201" // schema_version missing or malformed
	ErrVersionIncompatible = "E202" // schema_version major incompatible
	ErrFieldRequired       = "E203" // required field empty

	// CheckResult errors (E210-E219)
	ErrInvalidSeverity = "E210" // severity not in allowed set
	ErrNegativeValue   = "E211" // count or line below zero
	ErrCountMismatch   = "E212" // counts disagree with findings

	// PromotionGate errors (E220-E229)
	ErrInvalidDecision = "E220" // decision not in allowed set
	ErrInvalidLimit    = "E221" // negative threshold

	// Wire document errors (E230-E239)
	ErrSchemaViolation = "E230" // document fails the CUE schema
	ErrUnknownSchema   = "E231" // schema name not defined in schema.cue
	ErrMalformedInput  = "E232" // document is not parseable JSON/YAML
)

// Validate validates a contract document built in process.
// Returns all errors found (does not fail-fast).
// Supports CheckResult, ValidationResult and PromotionGate.
func Validate(v any) []FieldError {
	switch doc := v.(type) {
	case *CheckResult:
		return validateCheckResult(doc)
	case CheckResult:
		return validateCheckResult(&doc)
	case *ValidationResult:
		return validateValidationResult(doc)
	case ValidationResult:
		return validateValidationResult(&doc)
	case *PromotionGate:
		return validatePromotionGate(doc)
	case PromotionGate:
		return validatePromotionGate(&doc)
	default:
		return []FieldError{{
			Field:   "type",
			Message: fmt.Sprintf("unsupported document type: %T", v),
			Code:    ErrUnsupportedDocument,
		}}
	}
}

func validateVersion(version string) []FieldError {
	if version == "" {
		return []FieldError{{
			Field:   "schema_version",
			Message: "schema_version is required",
			Code:    ErrVersionMissing,
		}}
	}
	if !AcceptsVersion(version) {
		return []FieldError{{
			Field:   "schema_version",
			Message: fmt.Sprintf("version %q is not compatible with schema %s", version, SchemaVersion),
			Code:    ErrVersionIncompatible,
		}}
	}
	return nil
}

func validateCheckResult(res *CheckResult) []FieldError {
	errs := validateVersion(res.SchemaVersion)

	if res.RunID == "" {
		errs = append(errs, FieldError{Field: "run_id", Message: "run_id is required", Code: ErrFieldRequired})
	}
	if res.Check == "" {
		errs = append(errs, FieldError{Field: "check", Message: "check name is required", Code: ErrFieldRequired})
	}
	if res.FilesScanned < 0 {
		errs = append(errs, FieldError{Field: "files_scanned", Message: "files_scanned cannot be negative", Code: ErrNegativeValue})
	}

	var counts SeverityCounts
	for i, f := range res.Findings {
		field := fmt.Sprintf("findings[%d]", i)
		if !ValidSeverities[f.Severity] {
			errs = append(errs, FieldError{
				Field:   field + ".severity",
				Message: fmt.Sprintf("invalid severity %q", f.Severity),
				Code:    ErrInvalidSeverity,
			})
		}
		if f.Line < 0 {
			errs = append(errs, FieldError{Field: field + ".line", Message: "line cannot be negative", Code: ErrNegativeValue})
		}
		if f.File == "" {
			errs = append(errs, FieldError{Field: field + ".file", Message: "file is required", Code: ErrFieldRequired})
		}
		switch f.Severity {
		case SeverityError:
			counts.Error++
		case SeverityWarning:
			counts.Warning++
		case SeverityInfo:
			counts.Info++
		}
	}

	if counts != res.Counts {
		errs = append(errs, FieldError{
			Field:   "counts",
			Message: fmt.Sprintf("counts %+v disagree with findings %+v", res.Counts, counts),
			Code:    ErrCountMismatch,
		})
	}

	return errs
}

func validateValidationResult(res *ValidationResult) []FieldError {
	errs := validateVersion(res.SchemaVersion)

	if res.Document == "" {
		errs = append(errs, FieldError{Field: "document", Message: "document is required", Code: ErrFieldRequired})
	}
	if res.Schema == "" {
		errs = append(errs, FieldError{Field: "schema", Message: "schema is required", Code: ErrFieldRequired})
	}
	// A result claiming validity must not carry errors, and vice versa.
	if res.Valid && len(res.Errors) > 0 {
		errs = append(errs, FieldError{Field: "valid", Message: "valid result carries errors", Code: ErrCountMismatch})
	}
	if !res.Valid && len(res.Errors) == 0 {
		errs = append(errs, FieldError{Field: "valid", Message: "invalid result carries no errors", Code: ErrCountMismatch})
	}

	return errs
}

func validatePromotionGate(gate *PromotionGate) []FieldError {
	errs := validateVersion(gate.SchemaVersion)

	if gate.RunID == "" {
		errs = append(errs, FieldError{Field: "run_id", Message: "run_id is required", Code: ErrFieldRequired})
	}
	if !ValidDecisions[gate.Decision] {
		errs = append(errs, FieldError{
			Field:   "decision",
			Message: fmt.Sprintf("invalid decision %q", gate.Decision),
			Code:    ErrInvalidDecision,
		})
	}
	if gate.Limits.MaxErrors < 0 {
		errs = append(errs, FieldError{Field: "limits.max_errors", Message: "threshold cannot be negative", Code: ErrInvalidLimit})
	}
	if gate.Limits.MaxWarnings < 0 {
		errs = append(errs, FieldError{Field: "limits.max_warnings", Message: "threshold cannot be negative", Code: ErrInvalidLimit})
	}

	return errs
}
