// Package events holds the static event registry: the table binding event
// names to the contract payload schema each one carries. The table is data,
// not behavior; the only code here is the self-check the spiguard CLI runs
// against it.
package events

import (
	"fmt"
	"regexp"
	"sort"
)

// Event names. The segment before the first dot is the emitting domain.
const (
	EventBaselineAccepted = "baseline.accepted"
	EventCheckCompleted   = "check.completed"
	EventCheckStarted     = "check.started"
	EventDocumentRejected = "document.rejected"
	EventGateDecided      = "gate.decided"
)

// Payload schema names. These match the schema_version'd documents defined
// in the contract package.
const (
	SchemaCheckResult      = "check_result"
	SchemaPromotionGate    = "promotion_gate"
	SchemaValidationResult = "validation_result"
)

// Entry binds an event to its payload schema.
type Entry struct {
	Schema     string `json:"schema"`
	Introduced string `json:"introduced"` // schema version the event first appeared in
}

// Registry is the static event table. New events are appended by adding a
// constant above and a row here; rows are never removed or rebound.
var Registry = map[string]Entry{
	EventBaselineAccepted: {Schema: SchemaCheckResult, Introduced: "1.1.0"},
	EventCheckCompleted:   {Schema: SchemaCheckResult, Introduced: "1.0.0"},
	EventCheckStarted:     {Schema: SchemaCheckResult, Introduced: "1.0.0"},
	EventDocumentRejected: {Schema: SchemaValidationResult, Introduced: "1.0.0"},
	EventGateDecided:      {Schema: SchemaPromotionGate, Introduced: "1.0.0"},
}

var (
	eventNameRe = regexp.MustCompile(`^[a-z]+(\.[a-z_]+)+$`)
	versionRe   = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

var knownSchemas = map[string]bool{
	SchemaCheckResult:      true,
	SchemaPromotionGate:    true,
	SchemaValidationResult: true,
}

// Lookup returns the registry entry for an event name.
func Lookup(event string) (Entry, bool) {
	e, ok := Registry[event]
	return e, ok
}

// Names returns all registered event names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate self-checks the registry table. Returns all problems found, not
// just the first: a broken row must not mask the rest.
func Validate() []error {
	var errs []error
	for _, name := range Names() {
		entry := Registry[name]
		if !eventNameRe.MatchString(name) {
			errs = append(errs, fmt.Errorf("event %q: name must be dot-separated lowercase segments", name))
		}
		if !knownSchemas[entry.Schema] {
			errs = append(errs, fmt.Errorf("event %q: unknown payload schema %q", name, entry.Schema))
		}
		if !versionRe.MatchString(entry.Introduced) {
			errs = append(errs, fmt.Errorf("event %q: introduced version %q is not MAJOR.MINOR.PATCH", name, entry.Introduced))
		}
	}
	return errs
}
