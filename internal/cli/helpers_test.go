package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calder-io/spiguard/contract"
)

// runCLI executes the root command with the given args and returns stdout,
// stderr, and the command error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeTree materializes files under a fresh temp dir and returns its path.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, src := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}
	return dir
}

// decodeCheckResponse parses a JSON-mode check report from stdout.
func decodeCheckResponse(t *testing.T, stdout string) contract.CheckResult {
	t.Helper()

	var resp struct {
		Status string               `json:"status"`
		Data   contract.CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

// dupeTree is a pair of files declaring signature-identical interfaces.
func dupeTree() map[string]string {
	return map[string]string{
		"blob.go": `package spi

import "context"

type BlobReader interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Stat(ctx context.Context, key string) (int64, error)
}
`,
		"object.go": `package spi

import "context"

type ObjectReader interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Stat(ctx context.Context, key string) (int64, error)
}
`,
	}
}
