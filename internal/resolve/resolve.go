// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve derives the provenance metadata of a scraped central-bank
// document from the reference tables: origin URL, publication date and
// category flags.
//
// A document is looked up in the primary table by its file identifier. When
// the primary table has no row for it, the link table is consulted: the
// document was then rendered from a landing page, whose link becomes the
// origin URL and whose listed files contribute their dates and categories.
package resolve

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/rag-tools/internal/refdata"
	"github.com/pdiddy/rag-tools/internal/textnorm"
	"github.com/pdiddy/rag-tools/pkg/types"
)

// DefaultBucketURL is the public base URL of the document mirror.
const DefaultBucketURL = "https://agti-central-banks.s3.us-east-1.amazonaws.com"

// dateSeparator joins the dates of every file listed on one landing page.
const dateSeparator = ", "

// Resolver resolves document paths against a fixed set of reference tables.
// It never mutates the tables, so one Resolver may serve concurrent callers.
type Resolver struct {
	tables    *refdata.Tables
	bucketURL string
	log       *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger for diagnostics. The default discards output.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithBucketURL overrides DefaultBucketURL. A trailing slash is dropped.
func WithBucketURL(url string) Option {
	return func(r *Resolver) {
		if url != "" {
			r.bucketURL = strings.TrimSuffix(url, "/")
		}
	}
}

// New returns a Resolver over tables.
func New(tables *refdata.Tables, opts ...Option) *Resolver {
	r := &Resolver{
		tables:    tables,
		bucketURL: DefaultBucketURL,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve builds the metadata for the document at filePath, which must look
// like .../<year>/<file_id>.<ext>. The returned error is a *Error wrapping
// ErrMalformedPath, ErrDuplicatePrimary or ErrUnknownFile.
func (r *Resolver) Resolve(filePath string) (types.Metadata, error) {
	fileID := FileID(filePath)
	if fileID == "" {
		return types.Metadata{}, &Error{Kind: ErrMalformedPath, Path: filePath, Detail: "empty file name"}
	}
	year, ok := Year(filePath)
	if !ok {
		return types.Metadata{}, &Error{
			Kind:   ErrMalformedPath,
			Path:   filePath,
			FileID: fileID,
			Detail: "parent directory must be a year, path should be like path/to/<year>/<file_id>.pdf",
		}
	}

	md := types.Metadata{
		S3URL:  S3URL(r.bucketURL, year, fileID),
		FileID: fileID,
		Year:   year,
	}

	// linkFileURLs stays nil on the primary path.
	var linkFileURLs []string

	switch rows := r.tables.PrimaryByFileID(fileID); {
	case len(rows) > 1:
		return types.Metadata{}, &Error{
			Kind:   ErrDuplicatePrimary,
			Path:   filePath,
			FileID: fileID,
			Detail: fmt.Sprintf("%d rows", len(rows)),
		}
	case len(rows) == 1:
		md.OriginalURL = rows[0].FileURL
		md.DatePublished = rows[0].DatePublished
		md.DatePublishedStr = rows[0].DatePublishedStr
	default:
		links := r.tables.LinksByFileID(fileID)
		if len(links) == 0 {
			return types.Metadata{}, &Error{Kind: ErrUnknownFile, Path: filePath, FileID: fileID}
		}
		md.FromLinks = true

		var linkURLs []string
		linkFileURLs, linkURLs = distinctURLs(links)
		if len(linkURLs) > 1 {
			// First link in table order wins.
			r.log.Warn("multiple link URLs found for file",
				zap.String("file_id", fileID),
				zap.Strings("link_urls", linkURLs),
			)
		}
		md.OriginalURL = linkURLs[0]

		// The link may point to a page listing several dated files; this
		// document's own date is unknown, so every listed date is kept.
		listed := r.tables.PrimaryByFileURLs(linkFileURLs)
		md.LinkDateMentioned = joinNonEmpty(listed, func(p types.PrimaryRecord) string { return p.DatePublished })
		md.LinkDateMentionedStr = joinNonEmpty(listed, func(p types.PrimaryRecord) string { return p.DatePublishedStr })
	}

	urls := append([]string{md.OriginalURL}, linkFileURLs...)
	for _, name := range r.tables.CategoryNames(urls) {
		c, ok := ParseCategory(name)
		if !ok {
			r.log.Debug("ignoring category outside vocabulary",
				zap.String("file_id", fileID),
				zap.String("category", name),
			)
			continue
		}
		md.Categories.Add(c)
	}

	return md, nil
}

// FileID returns the file identifier of path: its file name up to the first
// dot.
func FileID(path string) string {
	segments := strings.Split(filepath.ToSlash(path), "/")
	id, _, _ := strings.Cut(segments[len(segments)-1], ".")
	return id
}

// Year returns the parent directory segment of path and whether it is a
// non-empty run of digits.
func Year(path string) (string, bool) {
	segments := strings.Split(filepath.ToSlash(path), "/")
	if len(segments) < 2 {
		return "", false
	}
	year := segments[len(segments)-2]
	if year == "" {
		return "", false
	}
	for _, r := range year {
		if r < '0' || r > '9' {
			return year, false
		}
	}
	return year, true
}

// S3URL returns the mirror location of a document.
func S3URL(bucketURL, year, fileID string) string {
	return bucketURL + "/" + year + "/" + fileID + ".pdf"
}

// distinctURLs returns the distinct file URLs and link URLs of rows, each in
// first-seen order.
func distinctURLs(rows []types.LinkRecord) (fileURLs, linkURLs []string) {
	seenFile := make(map[string]bool, len(rows))
	seenLink := make(map[string]bool, len(rows))
	for _, row := range rows {
		if !seenFile[row.FileURL] {
			seenFile[row.FileURL] = true
			fileURLs = append(fileURLs, row.FileURL)
		}
		if !seenLink[row.LinkURL] {
			seenLink[row.LinkURL] = true
			linkURLs = append(linkURLs, row.LinkURL)
		}
	}
	return fileURLs, linkURLs
}

func joinNonEmpty(rows []types.PrimaryRecord, field func(types.PrimaryRecord) string) string {
	var parts []string
	for _, row := range rows {
		if v := field(row); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, dateSeparator)
}

// ParseCategory maps a free-text category name onto the vocabulary by
// comparing normalized keys, so "FOREIGN EXCHANGE", "Foreign Exchange!!" and
// "foreign_exchange" all resolve to types.CategoryForeignExchange.
func ParseCategory(name string) (types.Category, bool) {
	return types.CategoryByKey(textnorm.Normalize(name))
}
