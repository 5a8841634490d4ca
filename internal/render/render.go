// Package render turns an analysis result into a downloadable document.
package render

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/scorecard/internal/model"
)

// Supported formats.
const (
	FormatHTML = "html"
	FormatXLSX = "xlsx"
)

// DefaultTimeout bounds a render when the caller passes no timeout.
const DefaultTimeout = 15 * time.Second

// ErrTimeout is returned when a render does not finish before its deadline.
var ErrTimeout = eris.New("render: timeout")

// Renderer writes a result in one document format.
type Renderer interface {
	Render(ctx context.Context, result *model.AnalysisResult, w io.Writer) error
	ContentType() string
	Extension() string
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatHTML, FormatXLSX}
}

// New returns the renderer for format (case-insensitive).
func New(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatHTML, "htm":
		return HTML{}, nil
	case FormatXLSX, "excel":
		return XLSX{}, nil
	default:
		return nil, eris.Errorf("render: unsupported format %q", format)
	}
}

// Render runs r with a deadline. Output is buffered so w receives either the
// whole document or nothing.
func Render(ctx context.Context, r Renderer, result *model.AnalysisResult, w io.Writer, timeout time.Duration) error {
	if result == nil {
		return eris.New("render: nil result")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- r.Render(ctx, result, &buf)
	}()

	select {
	case err := <-done:
		if err != nil {
			if eris.Is(err, context.DeadlineExceeded) {
				return ErrTimeout
			}
			return err
		}
	case <-ctx.Done():
		if eris.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrTimeout
		}
		return eris.Wrap(ctx.Err(), "render: cancelled")
	}

	_, err := buf.WriteTo(w)
	return eris.Wrap(err, "render: write output")
}
