// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package partition extracts the text body of a PDF with a pluggable
// backend. The extraction itself is delegated to external tools; this
// package only selects and drives them.
package partition

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/pdiddy/rag-tools/internal/container"
	"github.com/pdiddy/rag-tools/pkg/types"
)

// Partitioner turns the PDF at pdfPath into text.
type Partitioner interface {
	Partition(ctx context.Context, pdfPath string) (string, error)
}

// New builds the partitioner selected by cfg.Backend. The markitdown backend
// detects a container runtime and checks that the image is present.
func New(ctx context.Context, cfg types.PartitionConfig) (Partitioner, error) {
	switch cfg.Backend {
	case types.BackendNone:
		return None{}, nil
	case types.BackendPdftotext:
		return NewPdftotext(cfg.PdftotextPath), nil
	case types.BackendMarkitdown, "":
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		return NewMarkitdown(ctx, rt, cfg.Image)
	default:
		return nil, eris.Errorf("partition: unknown backend %q", cfg.Backend)
	}
}

// None is the metadata-only partitioner: every body is empty.
type None struct{}

// Partition returns an empty body without reading the file.
func (None) Partition(context.Context, string) (string, error) {
	return "", nil
}
