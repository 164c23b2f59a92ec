// Package contract defines the versioned wire-format documents spiguard
// emits and consumes: check results, document validation results, and
// promotion gate decisions.
//
// Documents are plain data. Every document carries a schema_version field
// for forward compatibility and an extensions map as an escape hatch for
// fields this version does not know about. Field-level constraints live in
// two places that must agree: schema.cue (declarative, used to validate
// incoming JSON/YAML) and validate.go (Go-level, used on values built in
// process).
package contract
