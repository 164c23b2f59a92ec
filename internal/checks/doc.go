// Package checks implements the declaration-hygiene checks spiguard runs
// over an SPI tree: duplicate interface detection, method ordering, import
// hygiene, license-header bans, and stub-body repair.
//
// Checks are independent: each one reads the shared scan snapshot and
// produces findings, nothing else. They never call each other and the
// order they run in does not matter.
package checks
