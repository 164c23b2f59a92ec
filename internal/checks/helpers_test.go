package checks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/calder-io/spiguard/contract"
	"github.com/calder-io/spiguard/internal/astscan"
	"github.com/calder-io/spiguard/internal/config"
)

// scanTree materializes files under a temp dir and scans them.
func scanTree(t *testing.T, files map[string]string) *astscan.Snapshot {
	t.Helper()
	root := t.TempDir()
	for rel, src := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}
	snap, err := astscan.Scan(root, zerolog.Nop())
	require.NoError(t, err)
	return snap
}

func paramsFor(snap *astscan.Snapshot) Params {
	return Params{Snapshot: snap, Policy: config.Default()}
}

func runCheck(t *testing.T, c Check, p Params) []contract.Finding {
	t.Helper()
	findings, err := c.Run(context.Background(), p)
	require.NoError(t, err)
	return findings
}

// rescan wraps fixed source in a single-file snapshot.
func rescan(t *testing.T, src []byte) *astscan.Snapshot {
	t.Helper()
	f := astscan.FromSource("fixed.go", src)
	require.NoError(t, f.ParseErr)
	return &astscan.Snapshot{Root: ".", Files: []*astscan.File{f}}
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	i := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, i, 0, "expected %q in output", needle)
	return i
}

// fakeBaseline is an in-memory Baseline for tests.
type fakeBaseline map[string]bool

func (b fakeBaseline) IsAccepted(ctx context.Context, hash string) (bool, error) {
	return b[hash], nil
}
