package contract

import "golang.org/x/mod/semver"

// SchemaVersion is the wire schema version this build writes.
// MAJOR.MINOR.PATCH without the "v" prefix.
const SchemaVersion = "1.2.0"

// Severity classifies a finding.
type Severity string

// Finding severities, highest first.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ValidSeverities defines the allowed severity values.
var ValidSeverities = map[Severity]bool{
	SeverityError:   true,
	SeverityWarning: true,
	SeverityInfo:    true,
}

// Extensions is the forward-compatibility escape hatch carried by every
// document. Producers may attach fields this schema version does not model;
// consumers must round-trip them untouched.
type Extensions map[string]any

// Finding is one reported problem at a source position.
type Finding struct {
	Check    string   `json:"check" yaml:"check"`
	Severity Severity `json:"severity" yaml:"severity"`
	File     string   `json:"file" yaml:"file"`
	Line     int      `json:"line" yaml:"line"`
	Message  string   `json:"message" yaml:"message"`
	Hash     string   `json:"hash,omitempty" yaml:"hash,omitempty"` // duplicate-group hash, dupes check only
	Fixable  bool     `json:"fixable,omitempty" yaml:"fixable,omitempty"`
}

// SeverityCounts tallies findings by severity.
type SeverityCounts struct {
	Error   int `json:"error" yaml:"error"`
	Warning int `json:"warning" yaml:"warning"`
	Info    int `json:"info" yaml:"info"`
}

// Total returns the sum across severities.
func (c SeverityCounts) Total() int {
	return c.Error + c.Warning + c.Info
}

// CheckResult is the outcome of running one check over a source tree.
type CheckResult struct {
	SchemaVersion string         `json:"schema_version" yaml:"schema_version"`
	RunID         string         `json:"run_id" yaml:"run_id"`
	Check         string         `json:"check" yaml:"check"`
	Root          string         `json:"root" yaml:"root"`
	FilesScanned  int            `json:"files_scanned" yaml:"files_scanned"`
	Findings      []Finding      `json:"findings" yaml:"findings"`
	Counts        SeverityCounts `json:"counts" yaml:"counts"`
	Passed        bool           `json:"passed" yaml:"passed"`
	Extensions    Extensions     `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// FieldError is one field-level problem in a validated document.
type FieldError struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
	Code    string `json:"code" yaml:"code"`
}

// ValidationResult is the outcome of validating one contract document.
type ValidationResult struct {
	SchemaVersion string       `json:"schema_version" yaml:"schema_version"`
	Document      string       `json:"document" yaml:"document"` // path, or "-" for stdin
	Schema        string       `json:"schema" yaml:"schema"`     // schema name validated against
	Valid         bool         `json:"valid" yaml:"valid"`
	Errors        []FieldError `json:"errors,omitempty" yaml:"errors,omitempty"`
	Extensions    Extensions   `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// GateDecision is a promotion gate outcome.
type GateDecision string

// Gate decisions.
const (
	DecisionPromote GateDecision = "promote"
	DecisionHold    GateDecision = "hold"
	DecisionReject  GateDecision = "reject"
)

// ValidDecisions defines the allowed gate decisions.
var ValidDecisions = map[GateDecision]bool{
	DecisionPromote: true,
	DecisionHold:    true,
	DecisionReject:  true,
}

// GateLimits are the thresholds a promotion gate applies.
type GateLimits struct {
	MaxErrors        int    `json:"max_errors" yaml:"max_errors"`
	MaxWarnings      int    `json:"max_warnings" yaml:"max_warnings"`
	MinSchemaVersion string `json:"min_schema_version" yaml:"min_schema_version"`
}

// PromotionGate is the gate decision document for one check run.
type PromotionGate struct {
	SchemaVersion string       `json:"schema_version" yaml:"schema_version"`
	RunID         string       `json:"run_id" yaml:"run_id"`
	Limits        GateLimits   `json:"limits" yaml:"limits"`
	Decision      GateDecision `json:"decision" yaml:"decision"`
	Reason        string       `json:"reason" yaml:"reason"`
	Extensions    Extensions   `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// AcceptsVersion reports whether a document written at docVersion can be
// read by this build. Same major version is accepted regardless of minor:
// newer minors only add fields, which land in Extensions.
func AcceptsVersion(docVersion string) bool {
	dv := "v" + docVersion
	if !semver.IsValid(dv) {
		return false
	}
	return semver.Major(dv) == semver.Major("v"+SchemaVersion)
}

// DecideGate applies limits to a finished check run and produces the gate
// document. Rules, in order: any error budget overrun rejects; a warning
// overrun or a too-old document schema holds; otherwise promote.
func DecideGate(res CheckResult, limits GateLimits) PromotionGate {
	gate := PromotionGate{
		SchemaVersion: SchemaVersion,
		RunID:         res.RunID,
		Limits:        limits,
	}

	switch {
	case res.Counts.Error > limits.MaxErrors:
		gate.Decision = DecisionReject
		gate.Reason = "error count exceeds limit"
	case res.Counts.Warning > limits.MaxWarnings:
		gate.Decision = DecisionHold
		gate.Reason = "warning count exceeds limit"
	case limits.MinSchemaVersion != "" &&
		semver.Compare("v"+res.SchemaVersion, "v"+limits.MinSchemaVersion) < 0:
		gate.Decision = DecisionHold
		gate.Reason = "result schema version below minimum"
	default:
		gate.Decision = DecisionPromote
		gate.Reason = "within limits"
	}

	return gate
}
