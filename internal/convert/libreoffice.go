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

// LibreOffice converts HTML to the target format via `soffice --headless
// --convert-to`. LibreOffice only works on files, so each conversion runs
// in its own temp directory.
type LibreOffice struct {
	path   string
	target Format
}

// NewLibreOffice builds the strategy for a target format (pdf or docx).
func NewLibreOffice(path string, target Format) *LibreOffice {
	return &LibreOffice{path: path, target: target}
}

var _ Strategy = (*LibreOffice)(nil)

func (l *LibreOffice) Name() string { return "libreoffice-" + string(l.target) }

func (l *LibreOffice) Convert(ctx context.Context, html string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "declaracao-convert-")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "declaracao.html")
	if err := os.WriteFile(in, []byte(html), 0o600); err != nil {
		return nil, fmt.Errorf("write input: %w", err)
	}

	cmd := exec.CommandContext(ctx, l.path,
		"--headless",
		"--convert-to", string(l.target),
		"--outdir", dir,
		in,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("libreoffice: %w", ctxErr)
		}
		return nil, fmt.Errorf("libreoffice: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	out, err := os.ReadFile(filepath.Join(dir, "declaracao"+l.target.Extension()))
	if err != nil {
		return nil, fmt.Errorf("libreoffice output missing: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("libreoffice produced empty output")
	}
	return out, nil
}
