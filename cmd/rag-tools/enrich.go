// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/rag-tools/internal/catalog"
	"github.com/pdiddy/rag-tools/internal/enrich"
	"github.com/pdiddy/rag-tools/internal/partition"
	"github.com/pdiddy/rag-tools/pkg/types"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich [pdf...]",
	Short: "Enrich a tree of PDFs into Markdown with metadata frontmatter",
	Long: `Enrich resolves every document under the documents directory (or the
PDFs given as arguments), partitions it into text, and writes
<output-dir>/<year>/<file_id>.md with the metadata record as YAML
frontmatter. Existing outputs are skipped. Enriched documents are recorded in
the catalog unless --no-catalog is set.

Documents that cannot be resolved are reported and skipped; with --fail-fast
the first failure stops the batch.`,
	RunE: runEnrich,
}

func runEnrich(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	applyEnrichFlags(cmd)

	paths := args
	if len(paths) == 0 {
		found, err := enrich.FindDocuments(cfg.Enrich.DocumentsDir, cfg.Enrich.Pattern)
		if err != nil {
			return err
		}
		paths = found
	}
	if len(paths) == 0 {
		fmt.Println(warnColor("No documents found."))
		return nil
	}

	_, r, err := loadResolver(ctx)
	if err != nil {
		return err
	}
	p, err := partition.New(ctx, cfg.Partition)
	if err != nil {
		return err
	}

	opts := enrich.BatchOptions{
		OutputDir: cfg.Enrich.OutputDir,
		Workers:   cfg.Enrich.Workers,
		FailFast:  cfg.Enrich.FailFast,
		Logger:    logger.Named("enrich"),
	}

	var store *catalog.Store
	if noCatalog, _ := cmd.Flags().GetBool("no-catalog"); !noCatalog {
		store, err = catalog.NewStore(cfg.Catalog)
		if err != nil {
			return err
		}
		defer store.Close()

		runID, err := store.BeginRun(ctx)
		if err != nil {
			return err
		}
		opts.Sink = store
		opts.RunID = runID
		logger.Info("catalog run started", zap.String("run_id", runID))
	}

	result, batchErr := enrich.EnrichBatch(ctx, enrich.NewLoader(r, p), paths, opts, os.Stdout)

	if store != nil {
		if err := finishRun(store, opts.RunID, result); err != nil {
			return err
		}
	}
	if batchErr != nil {
		return batchErr
	}

	printBatchResult(result)
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed enrichment", result.Failed)
	}
	return nil
}

// finishRun records the outcome even when the batch context was cancelled.
func finishRun(store *catalog.Store, runID string, result enrich.BatchResult) error {
	return store.FinishRun(context.Background(), runID, catalog.RunSummary{
		Enriched: result.Enriched,
		Skipped:  result.Skipped,
		Failed:   result.Failed,
	})
}

func printBatchResult(result enrich.BatchResult) {
	fmt.Printf("%s %d  %s %d  %s %d\n",
		okColor("enriched"), result.Enriched,
		warnColor("skipped"), result.Skipped,
		errColor("failed"), result.Failed,
	)
	for _, f := range result.Failures {
		fmt.Printf("  %s %s\n", errColor("x"), f.Err)
	}
}

// applyEnrichFlags overrides configuration with explicitly set flags.
func applyEnrichFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("documents-dir") {
		cfg.Enrich.DocumentsDir, _ = flags.GetString("documents-dir")
	}
	if flags.Changed("pattern") {
		cfg.Enrich.Pattern, _ = flags.GetString("pattern")
	}
	if flags.Changed("output-dir") {
		cfg.Enrich.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("workers") {
		cfg.Enrich.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("fail-fast") {
		cfg.Enrich.FailFast, _ = flags.GetBool("fail-fast")
	}
	if flags.Changed("backend") {
		backend, _ := flags.GetString("backend")
		cfg.Partition.Backend = types.PartitionBackend(backend)
	}
}

func init() {
	enrichCmd.Flags().String("documents-dir", "", "root of the <country>/<year>/<file_id>.pdf tree")
	enrichCmd.Flags().String("pattern", "", "glob selecting documents under documents-dir (default **/*.pdf)")
	enrichCmd.Flags().String("output-dir", "", "directory receiving <year>/<file_id>.md files")
	enrichCmd.Flags().Int("workers", 0, "documents processed concurrently")
	enrichCmd.Flags().Bool("fail-fast", false, "stop at the first document that fails")
	enrichCmd.Flags().String("backend", "", "partition backend: markitdown, pdftotext, or none")
	enrichCmd.Flags().Bool("no-catalog", false, "do not record enriched documents in the catalog")

	rootCmd.AddCommand(enrichCmd)
}
