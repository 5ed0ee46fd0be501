// Package convert turns the rendered HTML declaration into a requested
// target format by shelling out to external converters. Strategies are
// tried in order and the chain short-circuits on the first success.
package convert

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Format selects the conversion target.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/html; charset=utf-8"
	}
}

// Extension returns the file extension for the format, with leading dot.
func (f Format) Extension() string {
	switch f {
	case FormatPDF:
		return ".pdf"
	case FormatDOCX:
		return ".docx"
	default:
		return ".html"
	}
}

// ErrConversionUnavailable reports that every strategy in the chain failed.
// No partial output is ever returned alongside it.
var ErrConversionUnavailable = errors.New("conversion unavailable")

// Strategy is a single converter: rendered HTML in, converted bytes out.
type Strategy interface {
	Name() string
	Convert(ctx context.Context, html string) ([]byte, error)
}

// Chain tries its strategies in order, bounding each attempt with the
// configured timeout, and returns the first successful output.
type Chain struct {
	timeout    time.Duration
	strategies []Strategy
}

// NewChain builds a conversion chain. A non-positive timeout falls back to 30s.
func NewChain(timeout time.Duration, strategies ...Strategy) *Chain {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Chain{timeout: timeout, strategies: strategies}
}

// Convert runs the chain. Attempt expiry counts as a strategy failure; when
// every strategy fails the per-strategy errors are joined under
// ErrConversionUnavailable.
func (c *Chain) Convert(ctx context.Context, html string) ([]byte, error) {
	if len(c.strategies) == 0 {
		return nil, fmt.Errorf("%w: no strategies configured", ErrConversionUnavailable)
	}

	var errs []error
	for _, s := range c.strategies {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		out, err := s.Convert(attemptCtx, html)
		cancel()
		if err == nil {
			return out, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
	}
	return nil, fmt.Errorf("%w: %w", ErrConversionUnavailable, errors.Join(errs...))
}
