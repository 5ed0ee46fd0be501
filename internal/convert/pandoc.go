package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Pandoc converts HTML to DOCX with the pandoc binary. Input is streamed
// through stdin; the DOCX container is written to a temp file because
// pandoc requires a seekable output for binary formats.
type Pandoc struct {
	path string
}

// NewPandoc builds the strategy.
func NewPandoc(path string) *Pandoc {
	return &Pandoc{path: path}
}

var _ Strategy = (*Pandoc)(nil)

func (p *Pandoc) Name() string { return "pandoc" }

func (p *Pandoc) Convert(ctx context.Context, html string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "declaracao-pandoc-")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	outPath := filepath.Join(dir, "declaracao.docx")

	cmd := exec.CommandContext(ctx, p.path,
		"-f", "html",
		"-t", "docx",
		"--standalone",
		"-o", outPath,
	)
	cmd.Stdin = strings.NewReader(html)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("pandoc: %w", ctxErr)
		}
		return nil, fmt.Errorf("pandoc: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("pandoc output missing: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("pandoc produced empty output")
	}
	return out, nil
}
