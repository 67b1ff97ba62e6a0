package exporter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-resume/internal/fileutil"
)

// Request describes one export run.
type Request struct {
	Input     string   // markdown file
	Formats   []Format // from ParseFormats
	OutputDir string   // default: the input's directory
}

// Outcome is the result for one format.
type Outcome struct {
	Format Format
	Path   string
	Err    error
}

// Report lists outcomes in export order.
type Report struct {
	Outcomes []Outcome
}

// OK reports whether every requested format was written.
func (r Report) OK() bool {
	for _, o := range r.Outcomes {
		if o.Err != nil {
			return false
		}
	}
	return true
}

// Export writes <stem>.docx and <stem>.pdf into the output directory.
// A failed format does not stop the next one; the returned error joins
// every failure.
func (e *Exporter) Export(ctx context.Context, req Request) (Report, error) {
	var report Report

	if !fileutil.FileExists(req.Input) {
		return report, fmt.Errorf("%w: %s", ErrInputNotFound, req.Input)
	}

	outDir := req.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(req.Input)
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return report, fmt.Errorf("creating output directory: %w", err)
	}

	base := filepath.Join(outDir, stem(req.Input))
	docxPath := base + ".docx"
	pdfPath := base + ".pdf"

	var errs []error
	docxWritten := false
	for _, f := range req.Formats {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		var err error
		switch f {
		case FormatDOCX:
			err = e.ExportDOCX(ctx, req.Input, docxPath)
			docxWritten = err == nil
			report.Outcomes = append(report.Outcomes, Outcome{Format: f, Path: docxPath, Err: err})
		case FormatPDF:
			hint := ""
			if docxWritten || fileutil.FileExists(docxPath) {
				hint = docxPath
			}
			err = e.ExportPDF(ctx, req.Input, pdfPath, hint)
			report.Outcomes = append(report.Outcomes, Outcome{Format: f, Path: pdfPath, Err: err})
		default:
			err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
			report.Outcomes = append(report.Outcomes, Outcome{Format: f, Err: err})
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	return report, errors.Join(errs...)
}
