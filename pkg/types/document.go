// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Document is a partitioned PDF with its resolved provenance attached.
type Document struct {
	// ID is the file identifier (the filename stem).
	ID string `json:"id" yaml:"id"`

	// Path is the local path of the source PDF.
	Path string `json:"path" yaml:"path"`

	// Body is the text produced by the partitioner. Empty in metadata-only runs.
	Body string `json:"body" yaml:"body"`

	Metadata Metadata `json:"metadata" yaml:"metadata"`
}
