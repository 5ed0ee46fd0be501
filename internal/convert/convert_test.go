package convert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStrategy struct {
	name   string
	out    []byte
	err    error
	calls  int
	gotCtx context.Context
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Convert(ctx context.Context, html string) ([]byte, error) {
	s.calls++
	s.gotCtx = ctx
	return s.out, s.err
}

func TestChain_FirstStrategyWins(t *testing.T) {
	primary := &stubStrategy{name: "primary", out: []byte("pdf-bytes")}
	secondary := &stubStrategy{name: "secondary", out: []byte("other")}

	chain := NewChain(time.Second, primary, secondary)
	out, err := chain.Convert(context.Background(), "<html></html>")

	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), out)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls, "chain must short-circuit on first success")
}

func TestChain_FallsBackToSecondary(t *testing.T) {
	primary := &stubStrategy{name: "primary", err: errors.New("binary not found")}
	secondary := &stubStrategy{name: "secondary", out: []byte("pdf-bytes")}

	chain := NewChain(time.Second, primary, secondary)
	out, err := chain.Convert(context.Background(), "<html></html>")

	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), out)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestChain_AllStrategiesFail(t *testing.T) {
	primary := &stubStrategy{name: "primary", err: errors.New("primary down")}
	secondary := &stubStrategy{name: "secondary", err: errors.New("secondary down")}

	chain := NewChain(time.Second, primary, secondary)
	out, err := chain.Convert(context.Background(), "<html></html>")

	assert.Nil(t, out, "no partial output on failure")
	require.ErrorIs(t, err, ErrConversionUnavailable)
	assert.Contains(t, err.Error(), "primary down")
	assert.Contains(t, err.Error(), "secondary down")
	// One fallback only: both strategies tried exactly once.
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestChain_NoStrategies(t *testing.T) {
	chain := NewChain(time.Second)
	out, err := chain.Convert(context.Background(), "<html></html>")

	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrConversionUnavailable)
}

func TestChain_BoundsAttempts(t *testing.T) {
	s := &stubStrategy{name: "s", out: []byte("ok")}
	chain := NewChain(time.Second, s)

	_, err := chain.Convert(context.Background(), "x")
	require.NoError(t, err)

	deadline, ok := s.gotCtx.Deadline()
	assert.True(t, ok, "attempt context must carry a deadline")
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		FormatDOCX.ContentType())
	assert.Equal(t, "text/html; charset=utf-8", FormatHTML.ContentType())
}

func TestFormat_Extension(t *testing.T) {
	assert.Equal(t, ".pdf", FormatPDF.Extension())
	assert.Equal(t, ".docx", FormatDOCX.Extension())
	assert.Equal(t, ".html", FormatHTML.Extension())
}

func TestWkhtmltopdf_MissingBinary(t *testing.T) {
	w := NewWkhtmltopdf("/nonexistent/wkhtmltopdf")
	out, err := w.Convert(context.Background(), "<html></html>")

	assert.Nil(t, out)
	assert.Error(t, err)
}

func TestLibreOffice_MissingBinary(t *testing.T) {
	l := NewLibreOffice("/nonexistent/soffice", FormatPDF)
	out, err := l.Convert(context.Background(), "<html></html>")

	assert.Nil(t, out)
	assert.Error(t, err)
}

func TestPandoc_MissingBinary(t *testing.T) {
	p := NewPandoc("/nonexistent/pandoc")
	out, err := p.Convert(context.Background(), "<html></html>")

	assert.Nil(t, out)
	assert.Error(t, err)
}
