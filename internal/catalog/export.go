// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.yaml.in/yaml/v3"
)

// KeyPath is the export field holding the local path of the source PDF.
const KeyPath = "path"

const exportLimit = 1000000

// ExportYAML writes the flat metadata records of the matching documents to
// <dir>/export.yaml and returns the file path.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", eris.Wrap(err, "catalog: marshal YAML")
	}
	return s.writeExport("export.yaml", data)
}

// ExportJSON writes the flat metadata records of the matching documents to
// <dir>/export.json and returns the file path.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "catalog: marshal JSON")
	}
	return s.writeExport("export.json", data)
}

func (s *Store) writeExport(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", eris.Wrapf(err, "catalog: write %s", path)
	}
	return path, nil
}

// exportEntries renders each document as Metadata.Fields plus its path.
func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]map[string]any, error) {
	opts.MaxResults = exportLimit
	docs, err := s.Query(ctx, opts)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: query for export")
	}

	entries := make([]map[string]any, len(docs))
	for i, d := range docs {
		fields := d.Metadata.Fields()
		fields[KeyPath] = d.Path
		entries[i] = fields
	}
	return entries, nil
}
