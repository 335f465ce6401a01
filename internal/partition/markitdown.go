// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package partition

import (
	"bytes"
	"context"
	"os"

	"github.com/rotisserie/eris"

	"github.com/pdiddy/rag-tools/internal/container"
)

// DefaultMarkitdownImage is used when no image is configured.
const DefaultMarkitdownImage = "markitdown:latest"

// Markitdown pipes PDFs through the markitdown container image.
type Markitdown struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdown returns a partitioner running image on rt. It fails when the
// image is not available locally.
func NewMarkitdown(ctx context.Context, rt container.Runtime, image string) (*Markitdown, error) {
	if image == "" {
		image = DefaultMarkitdownImage
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, eris.Wrapf(err, "partition: markitdown image not available in %s", rt.Name())
	}
	return &Markitdown{runtime: rt, image: image}, nil
}

// Partition streams the PDF into the container and returns its Markdown.
func (m *Markitdown) Partition(ctx context.Context, pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", eris.Wrapf(err, "partition: open %s", pdfPath)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, m.image, nil, f, &out); err != nil {
		return "", eris.Wrapf(err, "partition: markitdown %s", pdfPath)
	}
	if out.Len() == 0 {
		return "", eris.Errorf("partition: markitdown produced empty output for %s", pdfPath)
	}
	return out.String(), nil
}
