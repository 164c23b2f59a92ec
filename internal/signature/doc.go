// Package signature provides canonical signature strings and content hashes
// for interface declarations.
//
// This package is the foundational layer: every other internal package may
// import signature; signature imports nothing internal. This keeps the
// normalization rules in one place with no circular dependencies.
//
// Key design constraints:
//   - Signature strings carry types only, never parameter names
//   - All strings are NFC normalized before hashing
//   - Hashes are SHA-256 with domain separation, hex encoded
package signature
