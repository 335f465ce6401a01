// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"github.com/pdiddy/rag-tools/internal/refdata"
	"github.com/pdiddy/rag-tools/internal/resolve"
)

// Audit returns the paths whose file id appears in neither the primary nor
// the link table, in input order. These are the documents a batch run would
// fail with resolve.ErrUnknownFile.
func Audit(tables *refdata.Tables, paths []string) []string {
	var missing []string
	for _, p := range paths {
		if !tables.Known(resolve.FileID(p)) {
			missing = append(missing, p)
		}
	}
	return missing
}
