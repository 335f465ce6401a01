// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Metadata keys of the flat record produced by Metadata.Fields.
const (
	KeyS3URL                = "s3_url"
	KeyFileID               = "file_id"
	KeyYear                 = "year"
	KeyDatePublished        = "date_published"
	KeyDatePublishedStr     = "date_published_str"
	KeyOriginalURL          = "original_url"
	KeyLinkDateMentioned    = "link_date_mentioned"
	KeyLinkDateMentionedStr = "link_date_mentioned_str"
)

// Metadata is the provenance record resolved for one document. Empty string
// fields mean "unknown".
type Metadata struct {
	// S3URL is the storage location of the PDF, built from Year and FileID.
	S3URL string `json:"s3_url" yaml:"s3_url"`

	FileID string `json:"file_id" yaml:"file_id"`
	Year   string `json:"year" yaml:"year"`

	// DatePublished and DatePublishedStr are copied from the primary table.
	// Both are unknown when the document was resolved through the link table.
	DatePublished    string `json:"date_published,omitempty" yaml:"date_published,omitempty"`
	DatePublishedStr string `json:"date_published_str,omitempty" yaml:"date_published_str,omitempty"`

	// OriginalURL is the file URL for primary records, or the landing-page
	// link URL for documents resolved through the link table.
	OriginalURL string `json:"original_url" yaml:"original_url"`

	// LinkDateMentioned joins the publication dates of every primary record
	// reachable through the same link. Only set on the link path.
	LinkDateMentioned    string `json:"link_date_mentioned,omitempty" yaml:"link_date_mentioned,omitempty"`
	LinkDateMentionedStr string `json:"link_date_mentioned_str,omitempty" yaml:"link_date_mentioned_str,omitempty"`

	// FromLinks is true when the primary table had no row for FileID.
	FromLinks bool `json:"from_links" yaml:"from_links"`

	Categories CategorySet `json:"-" yaml:"-"`
}

// Fields flattens the metadata into the key/value record attached to a
// document: fixed provenance keys, the link-date keys on the link path, and
// one 0/1 entry per vocabulary category. Unknown values are nil.
func (m Metadata) Fields() map[string]any {
	fields := map[string]any{
		KeyS3URL:            m.S3URL,
		KeyFileID:           m.FileID,
		KeyYear:             m.Year,
		KeyDatePublished:    optional(m.DatePublished),
		KeyDatePublishedStr: optional(m.DatePublishedStr),
		KeyOriginalURL:      m.OriginalURL,
	}
	if m.FromLinks {
		fields[KeyLinkDateMentioned] = optional(m.LinkDateMentioned)
		fields[KeyLinkDateMentionedStr] = optional(m.LinkDateMentionedStr)
	}
	for key, v := range m.Categories.Flags() {
		fields[key] = v
	}
	return fields
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
