package baseline

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for run history and accepted hashes.
type Store struct {
	db *sql.DB
}

// Open creates or opens the baseline database at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// SQLite allows a single writer, so the connection pool is pinned to one
// connection. This function is idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open baseline database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to baseline database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Run is one recorded check run.
type Run struct {
	ID            string `json:"id"`
	Root          string `json:"root"`
	ToolVersion   string `json:"tool_version"`
	SchemaVersion string `json:"schema_version"`
	FilesScanned  int    `json:"files_scanned"`
	Findings      int    `json:"findings"`
	Passed        bool   `json:"passed"`
	Seq           int64  `json:"seq"`
}

// Accepted is one acknowledged duplicate-group hash.
type Accepted struct {
	Hash   string `json:"hash"`
	Reason string `json:"reason"`
	Seq    int64  `json:"seq"`
}

// RecordRun inserts a run record. Duplicate run IDs are silently ignored
// for idempotency. The sequence number is assigned inside the insert so
// concurrent openers cannot race it past the single-writer pin.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, root, tool_version, schema_version, files_scanned, findings, passed, created_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(created_seq), 0) + 1 FROM runs))
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Root,
		run.ToolVersion,
		run.SchemaVersion,
		run.FilesScanned,
		run.Findings,
		boolToInt(run.Passed),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, most recent first. limit <= 0 means
// all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: negative LIMIT means unlimited
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, root, tool_version, schema_version, files_scanned, findings, passed, created_seq
		FROM runs
		ORDER BY created_seq DESC, id COLLATE BINARY ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var passed int
		if err := rows.Scan(&run.ID, &run.Root, &run.ToolVersion, &run.SchemaVersion,
			&run.FilesScanned, &run.Findings, &passed, &run.Seq); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Passed = passed != 0
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Accept records a duplicate-group hash as acknowledged. Accepting an
// already-accepted hash is a no-op; the original reason wins.
func (s *Store) Accept(ctx context.Context, hash, reason string) error {
	if hash == "" {
		return fmt.Errorf("accept: hash is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accepted_hashes (hash, reason, created_seq)
		VALUES (?, ?, (SELECT COALESCE(MAX(created_seq), 0) + 1 FROM accepted_hashes))
		ON CONFLICT(hash) DO NOTHING
	`, hash, reason)
	if err != nil {
		return fmt.Errorf("accept hash: %w", err)
	}
	return nil
}

// IsAccepted reports whether a hash has been acknowledged.
func (s *Store) IsAccepted(ctx context.Context, hash string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM accepted_hashes WHERE hash = ?`, hash).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup hash: %w", err)
	}
	return true, nil
}

// ListAccepted returns all acknowledged hashes in hash order.
func (s *Store) ListAccepted(ctx context.Context) ([]Accepted, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, reason, created_seq
		FROM accepted_hashes
		ORDER BY hash COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query accepted hashes: %w", err)
	}
	defer rows.Close()

	accepted := []Accepted{}
	for rows.Next() {
		var a Accepted
		if err := rows.Scan(&a.Hash, &a.Reason, &a.Seq); err != nil {
			return nil, fmt.Errorf("scan accepted hash: %w", err)
		}
		accepted = append(accepted, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accepted hashes: %w", err)
	}
	return accepted, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
