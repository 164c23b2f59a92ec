package astscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree materializes a map of relative path -> source under a temp dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, src := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}
	return root
}

func TestScanExtractsInterfaces(t *testing.T) {
	root := writeTree(t, map[string]string{
		"kv/kv.go": `package kv

import "context"

type KV interface {
	Del(ctx context.Context, key string) error
	Load(ctx context.Context, key string) ([]byte, error)
}

type notExportedButStillScanned interface {
	Close() error
}
`,
	})

	snap, err := Scan(root, zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, snap.Files, 1)
	require.Len(t, snap.Interfaces, 2)

	kv := snap.Interfaces[0]
	assert.Equal(t, "KV", kv.Name)
	require.Len(t, kv.Sig.Methods, 2)
	assert.Equal(t, "Del(context.Context,string)(error)", kv.Sig.Methods[0].String())
	assert.Equal(t, "Load(context.Context,string)([]byte,error)", kv.Sig.Methods[1].String())
}

func TestScanDropsParameterNames(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/a.go": `package a

type Named interface {
	Do(first string, second int) error
}
`,
		"b/b.go": `package b

type Renamed interface {
	Do(x string, y int) error
}
`,
	})

	snap, err := Scan(root, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, snap.Interfaces, 2)

	assert.Equal(t, snap.Interfaces[0].Sig.Hash(), snap.Interfaces[1].Sig.Hash(),
		"parameter names must not affect the signature")
}

func TestScanSharedParameterType(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.go": `package a

type Pair interface {
	Set(k, v string) error
}
`,
	})

	snap, err := Scan(root, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, snap.Interfaces, 1)
	assert.Equal(t, "Set(string,string)(error)", snap.Interfaces[0].Sig.Methods[0].String())
}

func TestScanEmbeddedInterfaces(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.go": `package a

import "io"

type Sink interface {
	io.Closer
	Flush() error
}
`,
	})

	snap, err := Scan(root, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, snap.Interfaces, 1)
	assert.Equal(t, []string{"io.Closer"}, snap.Interfaces[0].Sig.Embeds)
}

func TestScanBestEffortOnParseFailure(t *testing.T) {
	root := writeTree(t, map[string]string{
		"broken/broken.go": "package broken\n\ntype Oops interface {",
		"good/good.go": `package good

type Fine interface {
	Ping() error
}
`,
	})

	snap, err := Scan(root, zerolog.Nop())
	require.NoError(t, err, "a parse failure must not abort the scan")

	assert.Len(t, snap.Files, 2)
	require.Len(t, snap.ParseFailures(), 1)
	assert.Equal(t, "broken/broken.go", snap.ParseFailures()[0].Path)
	require.Len(t, snap.Interfaces, 1)
	assert.Equal(t, "Fine", snap.Interfaces[0].Name)
}

func TestScanSkipsNonDeclarationFiles(t *testing.T) {
	iface := `package x

type X interface {
	Do() error
}
`
	root := writeTree(t, map[string]string{
		"x/x.go":              iface,
		"x/x_test.go":         iface,
		"vendor/v/v.go":       iface,
		"testdata/t/t.go":     iface,
		".hidden/h/h.go":      iface,
		"_attic/old.go":       iface,
		"x/readme.txt":        "not go",
		"x/deep/testdata/SKIPPED": "",
	})

	snap, err := Scan(root, zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, snap.Files, 1)
	assert.Equal(t, "x/x.go", snap.Files[0].Path)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), zerolog.Nop())
	assert.Error(t, err)
}

func TestIsStubFile(t *testing.T) {
	assert.True(t, (&File{Path: "storage/storage_stub.go"}).IsStubFile())
	assert.False(t, (&File{Path: "storage/storage.go"}).IsStubFile())
}
