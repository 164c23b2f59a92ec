package astscan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/calder-io/spiguard/internal/signature"
)

// File is one parsed source file. When ParseErr is set, AST is nil and the
// file participates only in the scan error report.
type File struct {
	Path     string // slash-separated, relative to the scan root
	AbsPath  string
	Src      []byte
	Fset     *token.FileSet
	AST      *ast.File
	ParseErr error
}

// IsStubFile reports whether the file is a stub declaration file, which the
// stubs check holds to the canonical panic-body rule.
func (f *File) IsStubFile() bool {
	return strings.HasSuffix(f.Path, "_stub.go")
}

// Line returns the line number for a position in this file.
func (f *File) Line(pos token.Pos) int {
	return f.Fset.Position(pos).Line
}

// Interface is one interface declaration found in the tree.
type Interface struct {
	File *File
	Name string
	Line int
	Sig  signature.InterfaceSig
}

// Snapshot is everything the checks see: the parsed files and the extracted
// interface declarations. Checks share the snapshot but no other state.
type Snapshot struct {
	Root       string
	Files      []*File
	Interfaces []Interface
}

// ParseFailures returns the files that could not be parsed.
func (s *Snapshot) ParseFailures() []*File {
	var failed []*File
	for _, f := range s.Files {
		if f.ParseErr != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// Scan walks root and parses every non-test .go file into a Snapshot.
// Directories named testdata or vendor, hidden directories, and directories
// with a leading underscore are skipped. Only I/O-level problems (root
// missing, unreadable) return an error; per-file parse failures land on the
// File records.
func Scan(root string, log zerolog.Logger) (*Snapshot, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	snap := &Snapshot{Root: root}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && skipDir(name) {
				log.Debug().Str("dir", path).Msg("skipping directory")
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		snap.Files = append(snap.Files, parseFile(path, filepath.ToSlash(rel), log))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	for _, f := range snap.Files {
		if f.ParseErr != nil {
			continue
		}
		snap.Interfaces = append(snap.Interfaces, extractInterfaces(f)...)
	}

	log.Debug().
		Int("files", len(snap.Files)).
		Int("interfaces", len(snap.Interfaces)).
		Msg("scan complete")

	return snap, nil
}

// FromSource parses in-memory source into a File. Used by fixers to
// re-scan a file between successive rewrites.
func FromSource(relPath string, src []byte) *File {
	f := &File{
		Path: relPath,
		Src:  src,
		Fset: token.NewFileSet(),
	}
	astFile, err := parser.ParseFile(f.Fset, relPath, src, parser.ParseComments)
	if err != nil {
		f.ParseErr = err
		return f
	}
	f.AST = astFile
	return f
}

func skipDir(name string) bool {
	return name == "testdata" || name == "vendor" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func parseFile(absPath, relPath string, log zerolog.Logger) *File {
	f := &File{
		Path:    relPath,
		AbsPath: absPath,
		Fset:    token.NewFileSet(),
	}

	src, err := os.ReadFile(absPath)
	if err != nil {
		f.ParseErr = err
		log.Warn().Str("file", relPath).Err(err).Msg("read failed")
		return f
	}
	f.Src = src

	astFile, err := parser.ParseFile(f.Fset, absPath, src, parser.ParseComments)
	if err != nil {
		// Best-effort: keep whatever partial AST the parser produced out
		// of the snapshot, report the failure instead.
		f.ParseErr = err
		log.Warn().Str("file", relPath).Err(err).Msg("parse failed")
		return f
	}
	f.AST = astFile

	log.Debug().Str("file", relPath).Msg("parsed")
	return f
}
