// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PrimaryRecord is one row of the primary table: a scraped file whose origin
// URL and publication date are known. At most one row exists per FileID.
type PrimaryRecord struct {
	// FileID is the filename stem of the stored PDF (a content hash).
	FileID string `json:"file_id" yaml:"file_id" csv:"file_id"`

	// FileURL is the URL the file was downloaded from.
	FileURL string `json:"file_url" yaml:"file_url" csv:"file_url"`

	// DatePublished is the machine-readable publication date. Empty when unknown.
	DatePublished string `json:"date_published" yaml:"date_published" csv:"date_published"`

	// DatePublishedStr is the publication date as displayed by the source.
	DatePublishedStr string `json:"date_published_str" yaml:"date_published_str" csv:"date_published_str"`
}

// LinkRecord associates a landing-page link with a file it yields. A single
// link may yield several files and a file may be reachable from several links.
type LinkRecord struct {
	FileID  string `json:"file_id" yaml:"file_id" csv:"file_id"`
	FileURL string `json:"file_url" yaml:"file_url" csv:"file_url"`
	LinkURL string `json:"link_url" yaml:"link_url" csv:"link_url"`
}

// CategoryRecord tags a file URL with a free-text category name.
type CategoryRecord struct {
	FileURL      string `json:"file_url" yaml:"file_url" csv:"file_url"`
	CategoryName string `json:"category_name" yaml:"category_name" csv:"category_name"`
}
