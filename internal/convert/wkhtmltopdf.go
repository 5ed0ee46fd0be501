package convert

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Wkhtmltopdf converts HTML to PDF with the wkhtmltopdf binary, streaming
// the document through stdin/stdout so no temp files are needed.
type Wkhtmltopdf struct {
	path string
}

// NewWkhtmltopdf builds the strategy. path may be a bare command name
// resolved via PATH.
func NewWkhtmltopdf(path string) *Wkhtmltopdf {
	return &Wkhtmltopdf{path: path}
}

var _ Strategy = (*Wkhtmltopdf)(nil)

func (w *Wkhtmltopdf) Name() string { return "wkhtmltopdf" }

func (w *Wkhtmltopdf) Convert(ctx context.Context, html string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, w.path,
		"--page-size", "A4",
		"--encoding", "utf-8",
		"--quiet",
		"-", "-",
	)
	cmd.Stdin = strings.NewReader(html)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("wkhtmltopdf: %w", ctxErr)
		}
		return nil, fmt.Errorf("wkhtmltopdf: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("wkhtmltopdf produced no output")
	}
	return out.Bytes(), nil
}
