// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rag-tools CLI.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/rag-tools/internal/bucket"
	"github.com/pdiddy/rag-tools/internal/config"
	"github.com/pdiddy/rag-tools/internal/refdata"
	"github.com/pdiddy/rag-tools/internal/resolve"
	"github.com/pdiddy/rag-tools/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is loaded before every subcommand runs.
	cfg *types.Config

	logger = zap.NewNop()
)

var (
	okColor   = color.New(color.FgGreen).SprintFunc()
	warnColor = color.New(color.FgYellow).SprintFunc()
	errColor  = color.New(color.FgRed).SprintFunc()
	keyColor  = color.New(color.FgCyan).SprintFunc()
)

// rootCmd is the base command for the rag-tools CLI.
var rootCmd = &cobra.Command{
	Use:   "rag-tools",
	Short: "Enrich scraped central-bank publications with provenance metadata",
	Long: `rag-tools attaches provenance metadata to scraped central-bank PDF
publications. Each document at <country>/<year>/<file_id>.pdf is resolved
against three reference tables (primary records, links, categories) to find
its original URL, publication dates and category labels.

Subcommands resolve single documents, enrich whole trees into Markdown with
YAML frontmatter, audit which documents the reference data does not know,
and query or export the catalog of enriched documents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			loaded.Log.Level = lvl
		}
		if format, _ := cmd.Flags().GetString("log-format"); format != "" {
			loaded.Log.Format = format
		}

		l, err := config.NewLogger(loaded.Log)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rag-tools.yaml or ~/.config/rag-tools/rag-tools.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format override: json or console")
}

// loadResolver loads the configured reference tables and builds a resolver
// over them.
func loadResolver(ctx context.Context) (*refdata.Tables, *resolve.Resolver, error) {
	tables, err := refdata.Load(ctx, cfg.Reference)
	if err != nil {
		return nil, nil, err
	}
	stats := tables.Stats()
	logger.Info("reference tables loaded",
		zap.String("format", string(cfg.Reference.Format)),
		zap.Int("primary", stats.Primary),
		zap.Int("links", stats.Links),
		zap.Int("categories", stats.Categories),
	)

	r := resolve.New(tables,
		resolve.WithLogger(logger.Named("resolve")),
		resolve.WithBucketURL(cfg.Storage.BucketURL),
	)
	return tables, r, nil
}

// newChecker builds a bucket checker from the storage settings.
func newChecker() *bucket.Checker {
	return bucket.NewChecker(
		bucket.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Storage.TimeoutSecs) * time.Second}),
		bucket.WithRetry(cfg.Storage.MaxRetries, 0),
		bucket.WithLogger(logger.Named("bucket")),
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errColor("error:"), err)
		os.Exit(1)
	}
}
