// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package partition

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
)

// Pdftotext extracts text with the poppler pdftotext CLI.
type Pdftotext struct {
	binPath string

	// run executes the command; replaced in tests.
	run func(cmd *exec.Cmd) error
}

// NewPdftotext returns a partitioner using binPath, or "pdftotext" from PATH
// when binPath is empty.
func NewPdftotext(binPath string) *Pdftotext {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &Pdftotext{binPath: binPath, run: (*exec.Cmd).Run}
}

// Partition runs pdftotext -layout on the PDF and returns stdout.
func (p *Pdftotext) Partition(ctx context.Context, pdfPath string) (string, error) {
	cmd := exec.CommandContext(ctx, p.binPath, "-layout", pdfPath, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := p.run(cmd); err != nil {
		return "", eris.Wrapf(err, "partition: pdftotext %s: %s", pdfPath, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
