// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refdata

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/pdiddy/rag-tools/pkg/types"
)

// Load reads the reference tables from the source selected by cfg.Format.
// An empty format means csv.
func Load(ctx context.Context, cfg types.ReferenceConfig) (*Tables, error) {
	switch cfg.Format {
	case types.ReferenceCSV, "":
		return LoadCSV(CSVPaths{
			Primary:    cfg.PrimaryCSV,
			Links:      cfg.LinksCSV,
			Categories: cfg.CategoriesCSV,
		})
	case types.ReferenceSQLite:
		names := TableNames{
			Primary:    orDefault(cfg.PrimaryTable, DefaultTableNames.Primary),
			Links:      orDefault(cfg.LinksTable, DefaultTableNames.Links),
			Categories: orDefault(cfg.CategoriesTable, DefaultTableNames.Categories),
		}
		return LoadSQLite(ctx, cfg.SQLitePath, names)
	default:
		return nil, eris.Errorf("refdata: unknown reference format %q", cfg.Format)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
