package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The accept workflow end to end: find a duplicate group, accept its hash,
// and watch it disappear from later runs unless strict mode asks for it.
func TestBaselineAcceptSuppressesDupes(t *testing.T) {
	dir := writeTree(t, dupeTree())

	stdout, _, err := runCLI(t, "dupes", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	res := decodeCheckResponse(t, stdout)
	require.Len(t, res.Findings, 1)
	hash := res.Findings[0].Hash
	require.NotEmpty(t, hash)

	_, _, err = runCLI(t, "baseline", "accept", hash, "--dir", dir, "--reason", "known split pending cleanup")
	require.NoError(t, err)

	// Suppressed now.
	stdout, _, err = runCLI(t, "dupes", dir, "--format", "json")
	require.NoError(t, err)
	res = decodeCheckResponse(t, stdout)
	assert.True(t, res.Passed)
	assert.Empty(t, res.Findings)

	// Strict mode ignores the acceptance.
	_, _, err = runCLI(t, "dupes", dir, "--strict")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestBaselineAcceptRequiresReason(t *testing.T) {
	dir := writeTree(t, nil)

	_, _, err := runCLI(t, "baseline", "accept", "deadbeef", "--dir", dir)
	require.Error(t, err)
}

func TestBaselineAcceptNeedsOpenableStore(t *testing.T) {
	// Unlike the scan commands, the baseline subcommands exist to touch
	// the store, so an unopenable database is a command error.
	dir := writeTree(t, map[string]string{
		".spiguard.yml": "baseline: missing/sub/base.db\n",
	})

	_, _, err := runCLI(t, "baseline", "accept", "cafe01", "--dir", dir, "--reason", "legacy pair")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestBaselineList(t *testing.T) {
	dir := writeTree(t, nil)

	stdout, _, err := runCLI(t, "baseline", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "no accepted hashes")

	_, _, err = runCLI(t, "baseline", "accept", "cafe01", "--dir", dir, "--reason", "legacy pair")
	require.NoError(t, err)

	stdout, _, err = runCLI(t, "baseline", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "cafe01")
	assert.Contains(t, stdout, "legacy pair")
}

func TestBaselineListRuns(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"ping.go": `package spi

type Pinger interface {
	Ping() error
}
`,
	})

	_, _, err := runCLI(t, "check", dir)
	require.NoError(t, err)
	_, _, err = runCLI(t, "check", dir)
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "baseline", "list", "--dir", dir, "--runs")
	require.NoError(t, err)
	assert.Contains(t, stdout, "#2", "newest run first")
	assert.Contains(t, stdout, "passed")
}
