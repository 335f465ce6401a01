// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rag-tools/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "catalog")
	store, err := NewStore(types.CatalogConfig{Dir: dir, MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func sampleDoc(fileID, year, body string, cats ...types.Category) *types.Document {
	md := types.Metadata{
		S3URL:            "https://bucket.example/" + year + "/" + fileID + ".pdf",
		FileID:           fileID,
		Year:             year,
		DatePublished:    year + "-06-30",
		DatePublishedStr: "June 30, " + year,
		OriginalURL:      "https://www.rba.gov.au/publications/" + fileID + ".pdf",
	}
	for _, c := range cats {
		md.Categories.Add(c)
	}
	return &types.Document{
		ID:       fileID,
		Path:     filepath.Join("data", "AUS", year, fileID+".pdf"),
		Body:     body,
		Metadata: md,
	}
}

func seed(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()
	docs := []*types.Document{
		sampleDoc("rba1975", "1975", "Foreign exchange operations during the year.", types.CategoryForeignExchange, types.CategoryAnnualReport),
		sampleDoc("rba1980", "1980", "Monetary policy statement.", types.CategoryMonetaryPolicy),
		sampleDoc("boe1975", "1975", "Report on banking supervision.", types.CategoryBankingSupervision),
	}
	for _, d := range docs {
		require.NoError(t, store.Put(ctx, d, ""))
	}
}

// --- store tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, dir := testStore(t)

	assert.FileExists(t, filepath.Join(dir, dbFile))
	for _, table := range []string{"documents", "document_categories", "runs"} {
		var name string
		err := store.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}
}

func TestPutAndQueryRoundTrip(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	doc := sampleDoc("rba1975", "1975", "body text", types.CategoryForeignExchange)
	doc.Metadata.FromLinks = true
	doc.Metadata.DatePublished = ""
	doc.Metadata.DatePublishedStr = ""
	doc.Metadata.LinkDateMentioned = "1975-01-01, 1975-02-01"
	require.NoError(t, store.Put(ctx, doc, ""))

	got, err := store.Query(ctx, QueryOptions{FileID: "rba1975"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, *doc, got[0])
}

func TestPutReplacesCategories(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleDoc("x", "1990", "", types.CategoryStatistics, types.CategorySpeeches), ""))
	require.NoError(t, store.Put(ctx, sampleDoc("x", "1990", "updated", types.CategoryClimate), ""))

	got, err := store.Query(ctx, QueryOptions{FileID: "x"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "updated", got[0].Body)
	assert.Equal(t, []types.Category{types.CategoryClimate}, got[0].Metadata.Categories.Members())
}

func TestRuns(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	id, err := store.BeginRun(ctx)
	require.NoError(t, err)
	assert.Len(t, id, 36)

	require.NoError(t, store.Put(ctx, sampleDoc("a", "2001", ""), id))
	require.NoError(t, store.FinishRun(ctx, id, RunSummary{Enriched: 1, Skipped: 2, Failed: 3}))

	var enriched, skipped, failed int
	var finished *string
	err = store.db.QueryRow(`SELECT enriched, skipped, failed, finished_at FROM runs WHERE id = ?`, id).
		Scan(&enriched, &skipped, &failed, &finished)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, []int{enriched, skipped, failed})
	assert.NotNil(t, finished)

	var runID string
	require.NoError(t, store.db.QueryRow(`SELECT run_id FROM documents WHERE file_id = 'a'`).Scan(&runID))
	assert.Equal(t, id, runID)
}

func TestFinishRunUnknown(t *testing.T) {
	store, _ := testStore(t)
	err := store.FinishRun(context.Background(), "missing", RunSummary{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// --- query tests ---

func TestQueryFilters(t *testing.T) {
	store, _ := testStore(t)
	seed(t, store)

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{name: "all ordered by year then id", opts: QueryOptions{}, want: []string{"boe1975", "rba1975", "rba1980"}},
		{name: "by year", opts: QueryOptions{Year: "1980"}, want: []string{"rba1980"}},
		{name: "by category display name", opts: QueryOptions{Category: "Foreign Exchange"}, want: []string{"rba1975"}},
		{name: "by category key", opts: QueryOptions{Category: "banking_supervision"}, want: []string{"boe1975"}},
		{name: "by text case-insensitive", opts: QueryOptions{Text: "MONETARY"}, want: []string{"rba1980"}},
		{name: "text matches original url", opts: QueryOptions{Text: "rba.gov.au/publications/rba1975"}, want: []string{"rba1975"}},
		{name: "combined", opts: QueryOptions{Year: "1975", Category: "Annual Report"}, want: []string{"rba1975"}},
		{name: "max results", opts: QueryOptions{MaxResults: 1}, want: []string{"boe1975"}},
		{name: "no match", opts: QueryOptions{Year: "2020"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := store.Query(context.Background(), tt.opts)
			require.NoError(t, err)
			var ids []string
			for _, d := range docs {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestQueryUnknownCategory(t *testing.T) {
	store, _ := testStore(t)
	_, err := store.Query(context.Background(), QueryOptions{Category: "Astrology"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Astrology")
}

func TestQueryTextEscapesWildcards(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, sampleDoc("pct", "2000", "rates rose 5% in March"), ""))
	require.NoError(t, store.Put(ctx, sampleDoc("plain", "2000", "rates rose 5 points"), ""))

	docs, err := store.Query(ctx, QueryOptions{Text: "5%"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "pct", docs[0].ID)
}

// --- export tests ---

func TestExportYAML(t *testing.T) {
	store, dir := testStore(t)
	seed(t, store)

	path, err := store.ExportYAML(context.Background(), QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "export.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &entries))
	require.Len(t, entries, 3)

	first := entries[0]
	assert.Equal(t, "boe1975", first[types.KeyFileID])
	assert.Equal(t, 1, first[types.CategoryBankingSupervision.Key()])
	assert.Equal(t, 0, first[types.CategoryForeignExchange.Key()])
	assert.Contains(t, first, KeyPath)
	assert.NotContains(t, first, types.KeyLinkDateMentioned)
}

func TestExportJSONFiltered(t *testing.T) {
	store, _ := testStore(t)
	seed(t, store)

	path, err := store.ExportJSON(context.Background(), QueryOptions{Year: "1975"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "1975", e[types.KeyYear])
		assert.Len(t, e, 6+len(types.Categories())+1)
	}
}
