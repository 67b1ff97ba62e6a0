package resume

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-resume/internal/command"
	"github.com/alnah/go-resume/internal/fileutil"
)

// weasyprintConverter prints HTML with the weasyprint CLI, reading the
// PDF from its stdout.
type weasyprintConverter struct {
	runner  command.Runner
	timeout time.Duration
}

func newWeasyprintConverter(runner command.Runner, timeout time.Duration) *weasyprintConverter {
	return &weasyprintConverter{runner: runner, timeout: timeout}
}

// ToPDF runs: weasyprint --base-url <baseDir> <tmp.html> -
func (w *weasyprintConverter) ToPDF(ctx context.Context, htmlContent, baseDir string) ([]byte, error) {
	if baseDir == "" {
		baseDir = "."
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile("", htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	stdout, stderr, err := w.runner.Run(ctx, "weasyprint", "--base-url", baseDir, tmpPath, "-")
	if err != nil {
		if errors.Is(err, command.ErrCommandNotFound) {
			return nil, fmt.Errorf("%w: weasyprint: %v", ErrConverterNotFound, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: weasyprint: %s: %v", ErrPDFGeneration, strings.TrimSpace(stderr), err)
	}
	if !strings.HasPrefix(stdout, "%PDF") {
		return nil, fmt.Errorf("%w: weasyprint produced no PDF", ErrPDFGeneration)
	}
	return []byte(stdout), nil
}

func (w *weasyprintConverter) Close() error { return nil }
