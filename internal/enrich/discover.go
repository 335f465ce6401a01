// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar"
	"github.com/rotisserie/eris"
)

// DefaultPattern matches every PDF below the documents root.
const DefaultPattern = "**/*.pdf"

// FindDocuments returns the regular files under root matching pattern,
// sorted. An empty pattern uses DefaultPattern.
func FindDocuments(root, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := os.Stat(root); err != nil {
		return nil, eris.Wrapf(err, "enrich: documents root %s", root)
	}

	matches, err := doublestar.Glob(filepath.Join(root, pattern))
	if err != nil {
		return nil, eris.Wrapf(err, "enrich: glob %s", pattern)
	}

	paths := matches[:0]
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
