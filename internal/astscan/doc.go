// Package astscan walks a source tree and parses Go declaration files into
// a Snapshot the checks run against.
//
// Scanning is single-threaded and file-at-a-time by design: a parse failure
// is recorded on the file and the walk continues, so one broken file never
// hides findings in the rest of the tree.
package astscan
