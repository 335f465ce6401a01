// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refdata

import (
	"context"
	"database/sql"
	"os"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rotisserie/eris"

	"github.com/pdiddy/rag-tools/pkg/types"
)

// TableNames names the three tables inside a SQLite database.
type TableNames struct {
	Primary    string
	Links      string
	Categories string
}

// DefaultTableNames matches the scraper's database layout.
var DefaultTableNames = TableNames{
	Primary:    "central_banks_g10",
	Links:      "central_banks_g10_links",
	Categories: "central_banks_g10_categories",
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQLite reads the three tables from the SQLite database at dbPath.
// Rows are read in rowid order; NULL cells become empty strings.
func LoadSQLite(ctx context.Context, dbPath string, names TableNames) (*Tables, error) {
	for _, name := range []string{names.Primary, names.Links, names.Categories} {
		if !identifierRe.MatchString(name) {
			return nil, eris.Errorf("refdata: invalid table name %q", name)
		}
	}

	// sql.Open would silently create a missing database.
	if _, err := os.Stat(dbPath); err != nil {
		return nil, eris.Wrapf(err, "refdata: database %s", dbPath)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, eris.Wrap(err, "refdata: open database")
	}
	defer db.Close()

	primary, err := queryRows(ctx, db,
		`SELECT `+textColumns("file_id", "file_url", "date_published", "date_published_str")+` FROM `+names.Primary+` ORDER BY rowid`,
		func(s []sql.NullString) types.PrimaryRecord {
			return types.PrimaryRecord{
				FileID:           s[0].String,
				FileURL:          s[1].String,
				DatePublished:    s[2].String,
				DatePublishedStr: s[3].String,
			}
		})
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: table %s", names.Primary)
	}

	links, err := queryRows(ctx, db,
		`SELECT `+textColumns("file_id", "file_url", "link_url")+` FROM `+names.Links+` ORDER BY rowid`,
		func(s []sql.NullString) types.LinkRecord {
			return types.LinkRecord{FileID: s[0].String, FileURL: s[1].String, LinkURL: s[2].String}
		})
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: table %s", names.Links)
	}

	categories, err := queryRows(ctx, db,
		`SELECT `+textColumns("file_url", "category_name")+` FROM `+names.Categories+` ORDER BY rowid`,
		func(s []sql.NullString) types.CategoryRecord {
			return types.CategoryRecord{FileURL: s[0].String, CategoryName: s[1].String}
		})
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: table %s", names.Categories)
	}

	return NewTables(primary, links, categories), nil
}

// textColumns selects every column cast to TEXT. The driver converts values
// of columns declared DATE, DATETIME or TIMESTAMP to time.Time, which would
// reformat the stored dates; the cast keeps them byte for byte.
func textColumns(cols ...string) string {
	cast := make([]string, len(cols))
	for i, c := range cols {
		cast[i] = "CAST(" + c + " AS TEXT) AS " + c
	}
	return strings.Join(cast, ", ")
}

// queryRows runs query and converts every row, scanned as nullable strings,
// with conv.
func queryRows[T any](ctx context.Context, db *sql.DB, query string, conv func([]sql.NullString) T) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "query")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, eris.Wrap(err, "columns")
	}

	var out []T
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, eris.Wrap(err, "scan")
		}
		out = append(out, conv(vals))
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "iterate")
	}
	return out, nil
}
