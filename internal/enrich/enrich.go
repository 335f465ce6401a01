// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich drives metadata enrichment over a tree of scraped PDFs:
// each document is resolved against the reference tables, partitioned into
// text, and written as Markdown with its metadata as YAML frontmatter.
package enrich

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/rag-tools/internal/partition"
	"github.com/pdiddy/rag-tools/internal/resolve"
	"github.com/pdiddy/rag-tools/pkg/types"
)

const defaultWorkers = 4

// Loader resolves and partitions single documents.
type Loader struct {
	resolver    *resolve.Resolver
	partitioner partition.Partitioner
}

// NewLoader returns a Loader using r for metadata and p for the body.
func NewLoader(r *resolve.Resolver, p partition.Partitioner) *Loader {
	return &Loader{resolver: r, partitioner: p}
}

// Load resolves the metadata of the PDF at path and then partitions it.
// Resolution runs first so that unknown documents never reach the
// partitioner.
func (l *Loader) Load(ctx context.Context, path string) (*types.Document, error) {
	md, err := l.resolver.Resolve(path)
	if err != nil {
		return nil, err
	}

	body, err := l.partitioner.Partition(ctx, path)
	if err != nil {
		return nil, err
	}

	return &types.Document{
		ID:       md.FileID,
		Path:     path,
		Body:     body,
		Metadata: md,
	}, nil
}

// Sink receives every enriched document. The catalog store implements it.
type Sink interface {
	Put(ctx context.Context, doc *types.Document, runID string) error
}

// Status is the outcome of enriching one document.
type Status string

const (
	StatusEnriched Status = "enriched"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// BatchOptions configures EnrichBatch.
type BatchOptions struct {
	// OutputDir receives <year>/<file_id>.md files.
	OutputDir string

	// Workers bounds the number of documents processed at once. Zero uses 4.
	Workers int

	// FailFast aborts the batch on the first failure.
	FailFast bool

	// Sink, when set, is given every enriched document.
	Sink Sink

	// RunID is passed to Sink.Put.
	RunID string

	Logger *zap.Logger
}

// Failure records a document that could not be enriched.
type Failure struct {
	Path string
	Err  error
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Enriched int
	Skipped  int
	Failed   int

	// Failures is sorted by path.
	Failures []Failure
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Enriched + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns <outputDir>/<year>/<file_id>.md for the PDF at path.
func OutputPath(outputDir, path string) (string, error) {
	year, ok := resolve.Year(path)
	fileID := resolve.FileID(path)
	if !ok || fileID == "" {
		return "", &resolve.Error{Kind: resolve.ErrMalformedPath, Path: path, FileID: fileID}
	}
	return filepath.Join(outputDir, year, fileID+".md"), nil
}

// EnrichBatch enriches paths with up to opts.Workers documents in flight,
// printing one status line per document and a summary to w. Failures are
// collected and the batch continues unless opts.FailFast is set, in which
// case the first failure is returned once in-flight documents finish.
func EnrichBatch(ctx context.Context, l *Loader, paths []string, opts BatchOptions, w io.Writer) (BatchResult, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	log.Info("enriching documents",
		zap.Int("documents", len(paths)),
		zap.Int("workers", workers),
		zap.Bool("fail_fast", opts.FailFast),
	)

	var (
		mu     sync.Mutex
		result BatchResult
	)
	record := func(path string, status Status, detail string, err error) {
		mu.Lock()
		defer mu.Unlock()
		switch status {
		case StatusEnriched:
			result.Enriched++
			fmt.Fprintf(w, "enriched: %s\n", detail)
		case StatusSkipped:
			result.Skipped++
			fmt.Fprintf(w, "skipped:  %s (already exists)\n", detail)
		case StatusFailed:
			result.Failed++
			result.Failures = append(result.Failures, Failure{Path: path, Err: err})
			fmt.Fprintf(w, "failed:   %s (%v)\n", path, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range paths {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			docLog := log.With(zap.String("path", path))

			status, detail, err := enrichOne(gctx, l, path, opts)
			record(path, status, detail, err)
			if err != nil {
				docLog.Warn("enrichment failed", zap.Error(err))
				if opts.FailFast {
					return err
				}
				return nil
			}
			docLog.Debug("document processed", zap.String("status", string(status)))
			return nil
		})
	}

	err := g.Wait()

	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].Path < result.Failures[j].Path
	})
	fmt.Fprintf(w, "\nBatch summary: %d enriched, %d skipped, %d failed (total: %d)\n",
		result.Enriched, result.Skipped, result.Failed, result.Total())
	log.Info("batch complete",
		zap.Int("enriched", result.Enriched),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)

	if err != nil {
		return result, eris.Wrap(err, "enrich: batch aborted")
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, eris.Wrap(ctxErr, "enrich: batch cancelled")
	}
	return result, nil
}

// enrichOne processes a single document. detail is the output path for
// enriched and skipped documents.
func enrichOne(ctx context.Context, l *Loader, path string, opts BatchOptions) (Status, string, error) {
	outPath, err := OutputPath(opts.OutputDir, path)
	if err != nil {
		return StatusFailed, "", err
	}
	if _, err := os.Stat(outPath); err == nil {
		return StatusSkipped, outPath, nil
	}

	doc, err := l.Load(ctx, path)
	if err != nil {
		return StatusFailed, "", err
	}

	content, err := renderMarkdown(doc)
	if err != nil {
		return StatusFailed, "", err
	}

	// Catalog first: an existing output file marks the document done, so it
	// must not appear before the catalog row does.
	if opts.Sink != nil {
		if err := opts.Sink.Put(ctx, doc, opts.RunID); err != nil {
			return StatusFailed, "", err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return StatusFailed, "", eris.Wrap(err, "enrich: create output directory")
	}
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return StatusFailed, "", eris.Wrapf(err, "enrich: write %s", outPath)
	}
	return StatusEnriched, outPath, nil
}

// renderMarkdown prepends the flat metadata record as YAML frontmatter to
// the document body.
func renderMarkdown(doc *types.Document) (string, error) {
	front, err := yaml.Marshal(doc.Metadata.Fields())
	if err != nil {
		return "", eris.Wrapf(err, "enrich: marshal frontmatter of %s", doc.ID)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n\n")
	b.WriteString(doc.Body)
	return b.String(), nil
}
