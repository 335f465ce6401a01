// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refdata loads the reference tables that describe every scraped
// central-bank file (primary records, link records and category records) and
// indexes them for lookup by file identifier and file URL.
package refdata

import (
	"slices"

	"github.com/pdiddy/rag-tools/pkg/types"
)

// Tables holds the three reference tables and the indexes built over them.
// Tables is read-only after NewTables returns and safe for concurrent use.
type Tables struct {
	primary    []types.PrimaryRecord
	links      []types.LinkRecord
	categories []types.CategoryRecord

	primaryByFileID     map[string][]int
	primaryByFileURL    map[string][]int
	linksByFileID       map[string][]int
	categoriesByFileURL map[string][]int
}

// Stats reports the row counts of each table.
type Stats struct {
	Primary    int `json:"primary" yaml:"primary"`
	Links      int `json:"links" yaml:"links"`
	Categories int `json:"categories" yaml:"categories"`
}

// NewTables indexes the given rows. Row order is preserved by every lookup.
func NewTables(primary []types.PrimaryRecord, links []types.LinkRecord, categories []types.CategoryRecord) *Tables {
	t := &Tables{
		primary:             primary,
		links:               links,
		categories:          categories,
		primaryByFileID:     make(map[string][]int, len(primary)),
		primaryByFileURL:    make(map[string][]int, len(primary)),
		linksByFileID:       make(map[string][]int),
		categoriesByFileURL: make(map[string][]int),
	}
	for i, r := range primary {
		t.primaryByFileID[r.FileID] = append(t.primaryByFileID[r.FileID], i)
		t.primaryByFileURL[r.FileURL] = append(t.primaryByFileURL[r.FileURL], i)
	}
	for i, r := range links {
		t.linksByFileID[r.FileID] = append(t.linksByFileID[r.FileID], i)
	}
	for i, r := range categories {
		t.categoriesByFileURL[r.FileURL] = append(t.categoriesByFileURL[r.FileURL], i)
	}
	return t
}

// Stats returns the row counts.
func (t *Tables) Stats() Stats {
	return Stats{
		Primary:    len(t.primary),
		Links:      len(t.links),
		Categories: len(t.categories),
	}
}

// PrimaryByFileID returns every primary row for fileID. More than one row
// indicates a data-integrity problem the caller must report.
func (t *Tables) PrimaryByFileID(fileID string) []types.PrimaryRecord {
	return pick(t.primary, t.primaryByFileID[fileID])
}

// LinksByFileID returns every link row for fileID in table order.
func (t *Tables) LinksByFileID(fileID string) []types.LinkRecord {
	return pick(t.links, t.linksByFileID[fileID])
}

// PrimaryByFileURLs returns the primary rows whose file URL is any of urls,
// in table order, each row at most once.
func (t *Tables) PrimaryByFileURLs(urls []string) []types.PrimaryRecord {
	return pick(t.primary, union(t.primaryByFileURL, urls))
}

// CategoryNames returns the category names attached to any of urls, in
// table order. Names repeat when several rows carry them.
func (t *Tables) CategoryNames(urls []string) []string {
	idx := union(t.categoriesByFileURL, urls)
	names := make([]string, len(idx))
	for i, j := range idx {
		names[i] = t.categories[j].CategoryName
	}
	return names
}

// Known reports whether fileID appears in the primary or the link table.
func (t *Tables) Known(fileID string) bool {
	return len(t.primaryByFileID[fileID]) > 0 || len(t.linksByFileID[fileID]) > 0
}

func pick[T any](rows []T, idx []int) []T {
	if len(idx) == 0 {
		return nil
	}
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

// union merges the row indexes of every key into one ascending,
// duplicate-free slice.
func union(index map[string][]int, keys []string) []int {
	var out []int
	for _, k := range keys {
		out = append(out, index[k]...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
