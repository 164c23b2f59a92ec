// Package baseline stores check-run history and acknowledged duplicate
// hashes in a SQLite database next to the scanned tree.
//
// The dupes check consults accepted hashes to suppress findings a reviewer
// has already signed off on; --strict ignores the baseline entirely. Rows
// carry logical sequence numbers rather than wall-clock timestamps so two
// runs over the same tree produce byte-identical databases.
package baseline
