// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps an optional SQLite log of completed conversions so
// that past runs can be listed and exported.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/img2pgm/pkg/types"
)

// ErrNotConfigured is returned when no journal database path is set.
var ErrNotConfigured = errors.New("journal not configured: set --journal, IMG2PGM_JOURNAL, or journal in the config file")

const defaultMaxResults = 20

// Store manages the journal SQLite database.
type Store struct {
	db         *sql.DB
	path       string
	maxResults int
}

// NewStore opens or creates the journal database at cfg.Path, creating the
// parent directory and schema when missing.
func NewStore(cfg types.JournalConfig) (*Store, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, path: cfg.Path, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file the store was opened on.
func (s *Store) Path() string { return s.path }

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			format TEXT,
			width INTEGER,
			height INTEGER,
			luma TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_output ON conversions(output)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends rec to the journal and returns its assigned ID. A zero
// ConvertedAt is replaced with the current time.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) (int64, error) {
	at := rec.ConvertedAt
	if at.IsZero() {
		at = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (input, output, format, width, height, luma, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Input, rec.Output, rec.Format, rec.Width, rec.Height,
		string(rec.Luma), at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("recording conversion of %s: %w", rec.Input, err)
	}
	return res.LastInsertId()
}

// List returns up to limit records, newest first. A limit of zero or less
// uses the configured default.
func (s *Store) List(ctx context.Context, limit int) ([]types.ConversionRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, output, format, width, height, luma, converted_at
		 FROM conversions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		var (
			rec    types.ConversionRecord
			format sql.NullString
			luma   sql.NullString
			at     string
		)
		if err := rows.Scan(&rec.ID, &rec.Input, &rec.Output, &format,
			&rec.Width, &rec.Height, &luma, &at); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		rec.Format = format.String
		rec.Luma = types.LumaPolicy(luma.String)
		rec.ConvertedAt, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parsing converted_at of entry %d: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
