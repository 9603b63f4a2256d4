// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/job-hunter/internal/pipeline"
)

// SQLiteSink appends runs and their results to a SQLite file the user
// chose. It is write-only from the pipeline's point of view.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and its schema.
func OpenSQLite(path string) (*SQLiteSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteSink{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func (s *SQLiteSink) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			query TEXT NOT NULL,
			queries TEXT,
			filtered INTEGER NOT NULL,
			dropped INTEGER NOT NULL,
			dups_removed INTEGER NOT NULL,
			notices TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			domain TEXT,
			company_name TEXT,
			location TEXT,
			snippet TEXT,
			source TEXT,
			query TEXT,
			relevance_label TEXT,
			rationale TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_domain ON results(domain)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save appends out as a new run and returns the run id.
func (s *SQLiteSink) Save(ctx context.Context, out pipeline.Output, at time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	queriesJSON, _ := json.Marshal(out.Queries)
	noticesJSON, _ := json.Marshal(out.Notices)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (kind, query, queries, filtered, dropped, dups_removed, notices, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(out.Kind), out.Query, string(queriesJSON), out.Filtered,
		out.Dropped, out.DupsRemoved, string(noticesJSON), at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, position, title, url, domain, company_name, location, snippet, source, query, relevance_label, rationale)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range out.Results {
		_, err := stmt.ExecContext(ctx,
			runID, i+1, r.Title, r.URL, r.Domain, r.CompanyName, r.Location,
			r.Snippet, r.Source, r.Query, string(r.Label), r.Rationale,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting result %s: %w", r.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Counts returns the number of stored runs and results.
func (s *SQLiteSink) Counts(ctx context.Context) (runs, results int, err error) {
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM runs`).Scan(&runs); err != nil {
		return 0, 0, fmt.Errorf("counting runs: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM results`).Scan(&results); err != nil {
		return 0, 0, fmt.Errorf("counting results: %w", err)
	}
	return runs, results, nil
}
