// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refdata

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/pdiddy/rag-tools/pkg/types"
)

// CSVPaths locates the flat-file exports of the three tables.
type CSVPaths struct {
	Primary    string
	Links      string
	Categories string
}

// LoadCSV reads the three tables from CSV files with a header row. Columns
// are matched by name; extra columns are ignored and a missing required
// column is an error. Empty cells decode to empty strings (unknown).
func LoadCSV(paths CSVPaths) (*Tables, error) {
	primary, err := readCSVFile[types.PrimaryRecord](paths.Primary)
	if err != nil {
		return nil, eris.Wrap(err, "refdata: primary table")
	}
	links, err := readCSVFile[types.LinkRecord](paths.Links)
	if err != nil {
		return nil, eris.Wrap(err, "refdata: links table")
	}
	categories, err := readCSVFile[types.CategoryRecord](paths.Categories)
	if err != nil {
		return nil, eris.Wrap(err, "refdata: categories table")
	}
	return NewTables(primary, links, categories), nil
}

func readCSVFile[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	rows, err := decodeCSV[T](f)
	if err != nil {
		return nil, eris.Wrapf(err, "decode %s", path)
	}
	return rows, nil
}

// decodeCSV decodes every record of r into a T. An input without even a
// header row yields no rows.
func decodeCSV[T any](r io.Reader) ([]T, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "read header")
	}
	dec.DisallowMissingColumns = true

	var rows []T
	for {
		var row T
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, eris.Wrapf(err, "row %d", len(rows)+1)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
