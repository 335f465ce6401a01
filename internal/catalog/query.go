// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pdiddy/rag-tools/internal/textnorm"
	"github.com/pdiddy/rag-tools/pkg/types"
)

// QueryOptions holds the catalog filters. Empty fields do not filter.
type QueryOptions struct {
	// FileID selects a single document.
	FileID string

	// Year filters by publication folder year.
	Year string

	// Category is a display name or key from the category vocabulary.
	Category string

	// Text is a case-insensitive substring matched against the body and
	// the original URL.
	Text string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Query returns catalogued documents matching opts, ordered by year and
// file id.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]types.Document, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT d.file_id, d.year, d.path, d.s3_url, d.original_url,
			d.date_published, d.date_published_str,
			d.link_date_mentioned, d.link_date_mentioned_str,
			d.from_links, d.body
		FROM documents d
		WHERE 1=1`)

	if opts.FileID != "" {
		qb.WriteString(` AND d.file_id = ?`)
		args = append(args, opts.FileID)
	}
	if opts.Year != "" {
		qb.WriteString(` AND d.year = ?`)
		args = append(args, opts.Year)
	}
	if opts.Category != "" {
		c, ok := types.CategoryByKey(textnorm.Normalize(opts.Category))
		if !ok {
			return nil, eris.Errorf("catalog: unknown category %q", opts.Category)
		}
		qb.WriteString(` AND EXISTS (SELECT 1 FROM document_categories dc WHERE dc.file_id = d.file_id AND dc.category = ?)`)
		args = append(args, c.Key())
	}
	if opts.Text != "" {
		qb.WriteString(` AND (d.body LIKE ? ESCAPE '\' OR d.original_url LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(opts.Text) + "%"
		args = append(args, pattern, pattern)
	}

	qb.WriteString(` ORDER BY d.year, d.file_id LIMIT ?`)
	args = append(args, maxResults)

	docs, err := s.scanDocuments(ctx, qb.String(), args...)
	if err != nil {
		return nil, err
	}

	// Rows are closed by now; the store holds a single connection.
	for i := range docs {
		if err := s.loadCategories(ctx, &docs[i].Metadata); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func (s *Store) scanDocuments(ctx context.Context, query string, args ...any) ([]types.Document, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: query documents")
	}
	defer rows.Close()

	var docs []types.Document
	for rows.Next() {
		var (
			md                      types.Metadata
			path, originalURL, body sql.NullString
			datePub, datePubStr     sql.NullString
			linkDate, linkDateStr   sql.NullString
		)
		if err := rows.Scan(
			&md.FileID, &md.Year, &path, &md.S3URL, &originalURL,
			&datePub, &datePubStr, &linkDate, &linkDateStr,
			&md.FromLinks, &body,
		); err != nil {
			return nil, eris.Wrap(err, "catalog: scan document")
		}
		md.OriginalURL = originalURL.String
		md.DatePublished = datePub.String
		md.DatePublishedStr = datePubStr.String
		md.LinkDateMentioned = linkDate.String
		md.LinkDateMentionedStr = linkDateStr.String

		docs = append(docs, types.Document{
			ID:       md.FileID,
			Path:     path.String,
			Body:     body.String,
			Metadata: md,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "catalog: iterate documents")
	}
	return docs, nil
}

func (s *Store) loadCategories(ctx context.Context, md *types.Metadata) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category FROM document_categories WHERE file_id = ?`, md.FileID)
	if err != nil {
		return eris.Wrapf(err, "catalog: query categories of %s", md.FileID)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return eris.Wrap(err, "catalog: scan category")
		}
		if c, ok := types.CategoryByKey(key); ok {
			md.Categories.Add(c)
		}
	}
	return rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
