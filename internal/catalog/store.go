// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists enriched documents in a SQLite database so that
// batch runs can be audited and their output queried and exported.
package catalog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rotisserie/eris"

	"github.com/pdiddy/rag-tools/pkg/types"
)

const (
	dbFile            = "catalog.db"
	defaultMaxResults = 20
)

// Store manages the catalog database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates cfg.Dir/catalog.db and its schema.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, eris.Wrap(err, "catalog: create directory")
	}

	db, err := sql.Open("sqlite3", filepath.Join(cfg.Dir, dbFile)+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, eris.Wrap(err, "catalog: open database")
	}
	// Batch workers share the store; one connection serializes their writes.
	db.SetMaxOpenConns(1)

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "catalog: create schema")
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			enriched INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			file_id TEXT PRIMARY KEY,
			year TEXT NOT NULL,
			path TEXT,
			s3_url TEXT NOT NULL,
			original_url TEXT,
			date_published TEXT,
			date_published_str TEXT,
			link_date_mentioned TEXT,
			link_date_mentioned_str TEXT,
			from_links INTEGER NOT NULL DEFAULT 0,
			body TEXT,
			run_id TEXT REFERENCES runs(id),
			enriched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_year ON documents(year)`,
		`CREATE TABLE IF NOT EXISTS document_categories (
			file_id TEXT NOT NULL REFERENCES documents(file_id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			PRIMARY KEY (file_id, category)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_document_categories_category ON document_categories(category)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return eris.Wrap(err, "execute schema statement")
		}
	}
	return nil
}

// RunSummary holds the counts recorded when a run finishes.
type RunSummary struct {
	Enriched int
	Skipped  int
	Failed   int
}

// BeginRun records the start of a batch run and returns its id.
func (s *Store) BeginRun(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		id, now(),
	)
	if err != nil {
		return "", eris.Wrap(err, "catalog: begin run")
	}
	return id, nil
}

// FinishRun records the outcome of run id.
func (s *Store) FinishRun(ctx context.Context, id string, sum RunSummary) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, enriched = ?, skipped = ?, failed = ? WHERE id = ?`,
		now(), sum.Enriched, sum.Skipped, sum.Failed, id,
	)
	if err != nil {
		return eris.Wrapf(err, "catalog: finish run %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return eris.Errorf("catalog: run %s not found", id)
	}
	return nil
}

// Put inserts or replaces a document and its categories. runID may be empty
// for documents enriched outside a batch run.
func (s *Store) Put(ctx context.Context, doc *types.Document, runID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "catalog: begin transaction")
	}
	defer tx.Rollback()

	md := doc.Metadata
	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (file_id, year, path, s3_url, original_url,
			date_published, date_published_str, link_date_mentioned, link_date_mentioned_str,
			from_links, body, run_id, enriched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(file_id) DO UPDATE SET
			year=excluded.year, path=excluded.path, s3_url=excluded.s3_url,
			original_url=excluded.original_url, date_published=excluded.date_published,
			date_published_str=excluded.date_published_str,
			link_date_mentioned=excluded.link_date_mentioned,
			link_date_mentioned_str=excluded.link_date_mentioned_str,
			from_links=excluded.from_links, body=excluded.body,
			run_id=excluded.run_id, enriched_at=excluded.enriched_at`,
		md.FileID, md.Year, doc.Path, md.S3URL, md.OriginalURL,
		nullable(md.DatePublished), nullable(md.DatePublishedStr),
		nullable(md.LinkDateMentioned), nullable(md.LinkDateMentionedStr),
		md.FromLinks, doc.Body, nullable(runID), now(),
	)
	if err != nil {
		return eris.Wrapf(err, "catalog: upsert document %s", md.FileID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM document_categories WHERE file_id = ?`, md.FileID); err != nil {
		return eris.Wrapf(err, "catalog: clear categories of %s", md.FileID)
	}
	for _, c := range md.Categories.Members() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO document_categories (file_id, category) VALUES (?, ?)`,
			md.FileID, c.Key(),
		); err != nil {
			return eris.Wrapf(err, "catalog: insert category %s of %s", c.Key(), md.FileID)
		}
	}

	return eris.Wrap(tx.Commit(), "catalog: commit")
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
