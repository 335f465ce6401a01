// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ReferenceFormat selects where the reference tables are loaded from.
type ReferenceFormat string

const (
	ReferenceCSV    ReferenceFormat = "csv"
	ReferenceSQLite ReferenceFormat = "sqlite"
)

// ReferenceConfig locates the primary, link and category tables.
type ReferenceConfig struct {
	// Format selects the source: csv or sqlite.
	Format ReferenceFormat `json:"format" yaml:"format" mapstructure:"format"`

	// PrimaryCSV, LinksCSV and CategoriesCSV are the flat-file exports
	// (e.g. "data/sqldata/central_banks_g10.csv").
	PrimaryCSV    string `json:"primary_csv" yaml:"primary_csv" mapstructure:"primary_csv"`
	LinksCSV      string `json:"links_csv" yaml:"links_csv" mapstructure:"links_csv"`
	CategoriesCSV string `json:"categories_csv" yaml:"categories_csv" mapstructure:"categories_csv"`

	// SQLitePath is the database holding the three tables when Format is sqlite.
	SQLitePath string `json:"sqlite_path" yaml:"sqlite_path" mapstructure:"sqlite_path"`

	PrimaryTable    string `json:"primary_table" yaml:"primary_table" mapstructure:"primary_table"`
	LinksTable      string `json:"links_table" yaml:"links_table" mapstructure:"links_table"`
	CategoriesTable string `json:"categories_table" yaml:"categories_table" mapstructure:"categories_table"`
}

// StorageConfig describes where the scraped PDFs are mirrored.
type StorageConfig struct {
	// BucketURL is the public base URL of the document bucket, without a
	// trailing slash.
	BucketURL string `json:"bucket_url" yaml:"bucket_url" mapstructure:"bucket_url"`

	// TimeoutSecs bounds each object check request.
	TimeoutSecs int `json:"timeout_secs" yaml:"timeout_secs" mapstructure:"timeout_secs"`

	// MaxRetries is the retry budget for throttled (429/503) responses.
	// 0 disables retries; a negative value selects the default of 5.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// CheckWorkers bounds concurrent object checks.
	CheckWorkers int `json:"check_workers" yaml:"check_workers" mapstructure:"check_workers"`
}

// PartitionBackend identifies the tool that turns a PDF into text.
type PartitionBackend string

const (
	BackendMarkitdown PartitionBackend = "markitdown"
	BackendPdftotext  PartitionBackend = "pdftotext"
	BackendNone       PartitionBackend = "none"
)

// PartitionConfig selects and configures the partitioner.
type PartitionConfig struct {
	Backend PartitionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Image is the container image used by the markitdown backend.
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// PdftotextPath is the pdftotext binary used by the pdftotext backend.
	PdftotextPath string `json:"pdftotext_path" yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
}

// EnrichConfig holds settings for batch enrichment.
type EnrichConfig struct {
	// DocumentsDir is the root of the <country>/<year>/<file_id>.pdf tree.
	DocumentsDir string `json:"documents_dir" yaml:"documents_dir" mapstructure:"documents_dir"`

	// Pattern is the doublestar glob, relative to DocumentsDir, selecting documents.
	Pattern string `json:"pattern" yaml:"pattern" mapstructure:"pattern"`

	// OutputDir receives one Markdown file per enriched document.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Workers bounds the number of documents processed concurrently (default 4).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// FailFast aborts the batch on the first document that cannot be enriched.
	FailFast bool `json:"fail_fast" yaml:"fail_fast" mapstructure:"fail_fast"`
}

// CatalogConfig holds settings for the enriched-document catalog.
type CatalogConfig struct {
	// Dir contains catalog.db and the export files.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default query limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings of the tool.
type Config struct {
	Reference ReferenceConfig `json:"reference" yaml:"reference" mapstructure:"reference"`
	Storage   StorageConfig   `json:"storage" yaml:"storage" mapstructure:"storage"`
	Partition PartitionConfig `json:"partition" yaml:"partition" mapstructure:"partition"`
	Enrich    EnrichConfig    `json:"enrich" yaml:"enrich" mapstructure:"enrich"`
	Catalog   CatalogConfig   `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
}
