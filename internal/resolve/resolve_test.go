// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/rag-tools/internal/refdata"
	"github.com/pdiddy/rag-tools/internal/textnorm"
	"github.com/pdiddy/rag-tools/pkg/types"
)

// fixtureTables models one country's reference data:
//   - p1: plain primary record
//   - dup: two primary rows (integrity violation)
//   - lk1: only in the link table; its landing page lists two dated files
//     and one undated file
//   - lk2: only in the link table, reachable from two different pages
//   - lk3: only in the link table; the listed file has no primary row
func fixtureTables() *refdata.Tables {
	return refdata.NewTables(
		[]types.PrimaryRecord{
			{FileID: "p1", FileURL: "https://rba.example/p1.pdf", DatePublished: "1975-06-30", DatePublishedStr: "30 June 1975"},
			{FileID: "dup", FileURL: "https://rba.example/dup-a.pdf", DatePublished: "1980-01-01"},
			{FileID: "dup", FileURL: "https://rba.example/dup-b.pdf", DatePublished: "1980-01-02"},
			{FileID: "q1", FileURL: "https://rba.example/listed-1.pdf", DatePublished: "1960-03-01", DatePublishedStr: "March 1960"},
			{FileID: "q2", FileURL: "https://rba.example/listed-2.pdf", DatePublished: "1960-09-01", DatePublishedStr: "September 1960"},
			{FileID: "q3", FileURL: "https://rba.example/listed-2.pdf"},
		},
		[]types.LinkRecord{
			{FileID: "lk1", FileURL: "https://rba.example/listed-1.pdf", LinkURL: "https://rba.example/annual-reports/1960/"},
			{FileID: "lk1", FileURL: "https://rba.example/listed-2.pdf", LinkURL: "https://rba.example/annual-reports/1960/"},
			{FileID: "lk1", FileURL: "https://rba.example/listed-1.pdf", LinkURL: "https://rba.example/annual-reports/1960/"},
			{FileID: "lk2", FileURL: "https://rba.example/shared.pdf", LinkURL: "https://rba.example/page-b"},
			{FileID: "lk2", FileURL: "https://rba.example/shared.pdf", LinkURL: "https://rba.example/page-a"},
			{FileID: "lk3", FileURL: "https://rba.example/orphan.pdf", LinkURL: "https://rba.example/orphan-page"},
		},
		[]types.CategoryRecord{
			{FileURL: "https://rba.example/p1.pdf", CategoryName: "Foreign Exchange"},
			{FileURL: "https://rba.example/p1.pdf", CategoryName: "MONETARY POLICY"},
			{FileURL: "https://rba.example/p1.pdf", CategoryName: "Horoscopes"},
			{FileURL: "https://rba.example/annual-reports/1960/", CategoryName: "Annual Report"},
			{FileURL: "https://rba.example/listed-2.pdf", CategoryName: "Statistics"},
			{FileURL: "https://rba.example/unrelated.pdf", CategoryName: "Speeches"},
		},
	)
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestResolve_PrimaryPath(t *testing.T) {
	r := New(fixtureTables())

	md, err := r.Resolve("data/agti-central-banks/AUS/1975/p1.pdf")
	require.NoError(t, err)

	assert.Equal(t, "p1", md.FileID)
	assert.Equal(t, "1975", md.Year)
	assert.Equal(t, "https://agti-central-banks.s3.us-east-1.amazonaws.com/1975/p1.pdf", md.S3URL)
	assert.Equal(t, "https://rba.example/p1.pdf", md.OriginalURL)
	assert.Equal(t, "1975-06-30", md.DatePublished)
	assert.Equal(t, "30 June 1975", md.DatePublishedStr)
	assert.False(t, md.FromLinks)
	assert.Empty(t, md.LinkDateMentioned)
	assert.Equal(t, []types.Category{types.CategoryMonetaryPolicy, types.CategoryForeignExchange}, md.Categories.Members())

	fields := md.Fields()
	assert.NotContains(t, fields, types.KeyLinkDateMentioned)
	assert.Equal(t, 1, fields["foreign_exchange"])
	assert.NotContains(t, fields, "horoscopes")
}

func TestResolve_LinkPath(t *testing.T) {
	log, logs := observedLogger()
	r := New(fixtureTables(), WithLogger(log))

	md, err := r.Resolve("AUS/1960/lk1.pdf")
	require.NoError(t, err)

	assert.True(t, md.FromLinks)
	assert.Equal(t, "https://rba.example/annual-reports/1960/", md.OriginalURL)
	assert.Empty(t, md.DatePublished)
	assert.Empty(t, md.DatePublishedStr)
	assert.Equal(t, "1960-03-01, 1960-09-01", md.LinkDateMentioned)
	assert.Equal(t, "March 1960, September 1960", md.LinkDateMentionedStr)

	// Categories come from the link page and from every listed file.
	assert.Equal(t, []types.Category{types.CategoryStatistics, types.CategoryAnnualReport}, md.Categories.Members())

	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len(), "single link URL must not warn")
}

func TestResolve_LinkPathWithoutDates(t *testing.T) {
	r := New(fixtureTables())

	md, err := r.Resolve("AUS/1999/lk3.pdf")
	require.NoError(t, err)

	assert.Equal(t, "https://rba.example/orphan-page", md.OriginalURL)
	assert.Empty(t, md.LinkDateMentioned)
	assert.Empty(t, md.LinkDateMentionedStr)

	fields := md.Fields()
	assert.Contains(t, fields, types.KeyLinkDateMentioned)
	assert.Nil(t, fields[types.KeyLinkDateMentioned])
}

func TestResolve_AmbiguousLinkWarns(t *testing.T) {
	log, logs := observedLogger()
	r := New(fixtureTables(), WithLogger(log))

	md, err := r.Resolve("CAN/2021/lk2.pdf")
	require.NoError(t, err)

	// First link URL in table order wins.
	assert.Equal(t, "https://rba.example/page-b", md.OriginalURL)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	ctx := warnings[0].ContextMap()
	assert.Equal(t, "lk2", ctx["file_id"])
	assert.Equal(t, []any{"https://rba.example/page-b", "https://rba.example/page-a"}, ctx["link_urls"])
}

func TestResolve_UnknownCategoryLogged(t *testing.T) {
	log, logs := observedLogger()
	r := New(fixtureTables(), WithLogger(log))

	_, err := r.Resolve("AUS/1975/p1.pdf")
	require.NoError(t, err)

	debug := logs.FilterMessage("ignoring category outside vocabulary").All()
	require.Len(t, debug, 1)
	assert.Equal(t, "Horoscopes", debug[0].ContextMap()["category"])
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantKind   error
		wantFileID string
	}{
		{name: "unknown file", path: "AUS/1960/nothere.pdf", wantKind: ErrUnknownFile, wantFileID: "nothere"},
		{name: "duplicate primary", path: "AUS/1980/dup.pdf", wantKind: ErrDuplicatePrimary, wantFileID: "dup"},
		{name: "non-numeric year", path: "CHE/unknown/p1.pdf", wantKind: ErrMalformedPath, wantFileID: "p1"},
		{name: "no parent directory", path: "p1.pdf", wantKind: ErrMalformedPath, wantFileID: "p1"},
		{name: "empty year segment", path: "/p1.pdf", wantKind: ErrMalformedPath, wantFileID: "p1"},
		{name: "trailing slash", path: "AUS/1975/", wantKind: ErrMalformedPath},
		{name: "empty path", path: "", wantKind: ErrMalformedPath},
	}

	r := New(fixtureTables())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := r.Resolve(tt.path)
			require.Error(t, err)
			assert.Equal(t, types.Metadata{}, md)
			assert.True(t, errors.Is(err, tt.wantKind), "got %v", err)

			var rerr *Error
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, tt.path, rerr.Path)
			assert.Equal(t, tt.wantFileID, rerr.FileID)
			if tt.wantFileID != "" {
				assert.Contains(t, err.Error(), tt.wantFileID)
			}
		})
	}
}

func TestResolve_EveryCategoryPresent(t *testing.T) {
	r := New(fixtureTables())
	for _, path := range []string{"AUS/1975/p1.pdf", "AUS/1960/lk1.pdf", "CAN/2021/lk2.pdf", "AUS/1999/lk3.pdf"} {
		md, err := r.Resolve(path)
		require.NoError(t, err, path)

		fields := md.Fields()
		for _, c := range types.Categories() {
			v, ok := fields[c.Key()]
			require.True(t, ok, "%s missing %s", path, c.Key())
			assert.Contains(t, []any{0, 1}, v)
		}
	}
}

func TestWithBucketURL(t *testing.T) {
	r := New(fixtureTables(), WithBucketURL("https://mirror.example/"))
	md, err := r.Resolve("AUS/1975/p1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example/1975/p1.pdf", md.S3URL)
}

func TestS3URL(t *testing.T) {
	assert.Equal(t,
		"https://agti-central-banks.s3.us-east-1.amazonaws.com/1975/abc123.pdf",
		S3URL(DefaultBucketURL, "1975", "abc123"))
}

func TestFileIDAndYear(t *testing.T) {
	tests := []struct {
		path     string
		wantID   string
		wantYear string
		wantOK   bool
	}{
		{path: "data/agti-central-banks/AUS/1960/18d133f4.pdf", wantID: "18d133f4", wantYear: "1960", wantOK: true},
		{path: "1960/abc.tar.gz", wantID: "abc", wantYear: "1960", wantOK: true},
		{path: "CHE/unknown/63f3a5d7.pdf", wantID: "63f3a5d7", wantYear: "unknown", wantOK: false},
		{path: "x/20a4/f.pdf", wantID: "f", wantYear: "20a4", wantOK: false},
		{path: "f.pdf", wantID: "f", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.wantID, FileID(tt.path))
			year, ok := Year(tt.path)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   types.Category
		wantOK bool
	}{
		{in: "Foreign Exchange", want: types.CategoryForeignExchange, wantOK: true},
		{in: "FOREIGN EXCHANGE!!", want: types.CategoryForeignExchange, wantOK: true},
		{in: "foreign_exchange", want: types.CategoryForeignExchange, wantOK: true},
		{in: "Legal and Regulatory", wantOK: false},
		{in: "Legal & Regulatory", want: types.CategoryLegalRegulatory, wantOK: true},
		{in: "  monetary   policy ", want: types.CategoryMonetaryPolicy, wantOK: true},
		{in: "Astrology", wantOK: false},
		{in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCategory(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// Every vocabulary key must be the normalized display name, or names read
// from the category table would never match.
func TestCategoryKeysAreNormalizedNames(t *testing.T) {
	for _, c := range types.Categories() {
		assert.Equal(t, textnorm.Normalize(c.String()), c.Key(), "category %v", c)

		got, ok := ParseCategory(c.String())
		require.True(t, ok, "category %v", c)
		assert.Equal(t, c, got)
	}
}
