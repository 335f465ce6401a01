// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads rag-tools settings from a YAML file, RAG_TOOLS_*
// environment variables and built-in defaults, and builds the logger.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/rag-tools/internal/partition"
	"github.com/pdiddy/rag-tools/internal/resolve"
	"github.com/pdiddy/rag-tools/pkg/types"
)

const (
	// FileName is the config file base name searched in . and
	// ~/.config/rag-tools/.
	FileName = "rag-tools"

	// EnvPrefix prefixes environment overrides, e.g. RAG_TOOLS_LOG_LEVEL.
	EnvPrefix = "RAG_TOOLS"
)

// Load reads the configuration. When path is empty the file is optional and
// searched for in the working directory and ~/.config/rag-tools/; an
// explicit path must exist.
func Load(path string) (*types.Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so that environment overrides apply even
// when the file omits them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("reference.format", string(types.ReferenceCSV))
	v.SetDefault("reference.primary_csv", "data/sqldata/central_banks_g10.csv")
	v.SetDefault("reference.links_csv", "data/sqldata/central_banks_g10_links.csv")
	v.SetDefault("reference.categories_csv", "data/sqldata/central_banks_g10_categories.csv")
	v.SetDefault("reference.sqlite_path", "data/sqldata/central_banks.db")
	v.SetDefault("reference.primary_table", "central_banks_g10")
	v.SetDefault("reference.links_table", "central_banks_g10_links")
	v.SetDefault("reference.categories_table", "central_banks_g10_categories")

	v.SetDefault("storage.bucket_url", resolve.DefaultBucketURL)
	v.SetDefault("storage.timeout_secs", 30)
	v.SetDefault("storage.max_retries", 5)
	v.SetDefault("storage.check_workers", 8)

	v.SetDefault("partition.backend", string(types.BackendMarkitdown))
	v.SetDefault("partition.image", partition.DefaultMarkitdownImage)
	v.SetDefault("partition.pdftotext_path", "pdftotext")

	v.SetDefault("enrich.documents_dir", "data/agti-central-banks")
	v.SetDefault("enrich.pattern", "**/*.pdf")
	v.SetDefault("enrich.output_dir", "output/enriched")
	v.SetDefault("enrich.workers", 4)
	v.SetDefault("enrich.fail_fast", false)

	v.SetDefault("catalog.dir", "output/catalog")
	v.SetDefault("catalog.max_results", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate checks enumerated and numeric settings.
func Validate(cfg *types.Config) error {
	switch cfg.Reference.Format {
	case types.ReferenceCSV, types.ReferenceSQLite:
	default:
		return eris.Errorf("config: reference.format must be csv or sqlite, got %q", cfg.Reference.Format)
	}

	switch cfg.Partition.Backend {
	case types.BackendMarkitdown, types.BackendPdftotext, types.BackendNone:
	default:
		return eris.Errorf("config: partition.backend must be markitdown, pdftotext or none, got %q", cfg.Partition.Backend)
	}

	if cfg.Enrich.Workers < 1 {
		return eris.Errorf("config: enrich.workers must be at least 1, got %d", cfg.Enrich.Workers)
	}
	if cfg.Catalog.MaxResults < 1 {
		return eris.Errorf("config: catalog.max_results must be at least 1, got %d", cfg.Catalog.MaxResults)
	}
	if cfg.Storage.TimeoutSecs < 1 {
		return eris.Errorf("config: storage.timeout_secs must be at least 1, got %d", cfg.Storage.TimeoutSecs)
	}
	if cfg.Storage.BucketURL == "" {
		return eris.New("config: storage.bucket_url is required")
	}
	return nil
}

// NewLogger builds a zap logger from cfg and installs it as the global
// logger. Format "console" selects the development encoder; anything else
// logs JSON.
func NewLogger(cfg types.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return logger, nil
}
