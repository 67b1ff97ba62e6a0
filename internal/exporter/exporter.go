package exporter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-resume/internal/assets"
	"github.com/alnah/go-resume/internal/command"
	"github.com/alnah/go-resume/internal/fileutil"
	"github.com/alnah/go-resume/internal/pipeline"
)

// HTMLPrinter prints a standalone HTML document to PDF bytes.
// *resume.Converter implements it.
type HTMLPrinter interface {
	PrintHTML(ctx context.Context, htmlContent, baseDir string) ([]byte, error)
}

// Exporter runs the converter chains. The zero value uses os/exec, looks
// commands up on PATH, has no in-process PDF fallback and does not log.
type Exporter struct {
	Runner   command.Runner
	LookPath func(file string) (string, error)
	Fallback HTMLPrinter
	Log      zerolog.Logger
}

// attempt is one external command that should produce output.
type attempt struct {
	name string
	args []string
}

func (a attempt) String() string {
	return a.name + " " + strings.Join(a.args, " ")
}

func (e *Exporter) runner() command.Runner {
	if e.Runner == nil {
		return &command.ExecRunner{}
	}
	return e.Runner
}

func (e *Exporter) has(name string) bool {
	lookPath := e.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	_, err := lookPath(name)
	return err == nil
}

// run executes a and reports whether it produced output.
func (e *Exporter) run(ctx context.Context, a attempt, output string) error {
	stdout, stderr, err := e.runner().Run(ctx, a.name, a.args...)
	if err == nil && fileutil.FileExists(output) {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	e.Log.Debug().
		Str("command", a.name).
		Int("exit", command.ExitCode(err)).
		Msg("converter attempt produced no output")

	msg := strings.TrimSpace(stderr + "\n" + stdout)
	if err == nil {
		err = errors.New("no output file written")
	}
	if msg != "" {
		return fmt.Errorf("%s: %w: %s", a.name, err, msg)
	}
	return fmt.Errorf("%s: %w", a.name, err)
}

// ExportDOCX writes outputDOCX from inputMD.
func (e *Exporter) ExportDOCX(ctx context.Context, inputMD, outputDOCX string) error {
	chain := []attempt{
		{"pandoc", []string{inputMD, "-o", outputDOCX}},
		{"textutil", []string{"-convert", "docx", inputMD, "-output", outputDOCX}},
	}

	var failures []error
	for _, a := range chain {
		if !e.has(a.name) {
			e.Log.Debug().Str("command", a.name).Msg("converter not installed")
			continue
		}
		err := e.run(ctx, a, outputDOCX)
		if err == nil {
			e.Log.Info().Str("via", a.name).Str("path", outputDOCX).Msg("DOCX written")
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
		e.Log.Warn().Err(err).Str("via", a.name).Msg("DOCX export failed")
		failures = append(failures, err)
	}

	return exportError(ErrDOCXExport, failures, "pandoc, textutil")
}

// ExportPDF writes outputPDF from inputMD. docxHint, when it names an
// existing file, enables the LibreOffice route.
func (e *Exporter) ExportPDF(ctx context.Context, inputMD, outputPDF, docxHint string) error {
	var failures []error

	if e.has("pandoc") {
		for _, engine := range []string{"", "xelatex", "pdflatex", "wkhtmltopdf", "weasyprint"} {
			a := attempt{"pandoc", []string{inputMD, "-o", outputPDF}}
			if engine != "" {
				a.args = append(a.args, "--pdf-engine="+engine)
			}
			err := e.run(ctx, a, outputPDF)
			if err == nil {
				e.Log.Info().Str("via", a.String()).Str("path", outputPDF).Msg("PDF written")
				return nil
			}
			if ctx.Err() != nil {
				return err
			}
			e.Log.Warn().Err(err).Str("engine", orDefault(engine, "default")).Msg("pandoc PDF attempt failed")
			failures = append(failures, err)
		}
	}

	if docxHint != "" && fileutil.FileExists(docxHint) && e.has("soffice") {
		err := e.fromDOCX(ctx, docxHint, outputPDF)
		if err == nil {
			e.Log.Info().Str("via", "soffice").Str("path", outputPDF).Msg("PDF written")
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
		e.Log.Warn().Err(err).Msg("soffice PDF export failed")
		failures = append(failures, err)
	}

	if e.Fallback != nil {
		err := e.printFallback(ctx, inputMD, outputPDF)
		if err == nil {
			e.Log.Info().Str("via", "built-in renderer").Str("path", outputPDF).Msg("PDF written")
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
		e.Log.Warn().Err(err).Msg("built-in PDF export failed")
		failures = append(failures, err)
	}

	return exportError(ErrPDFExport, failures, "pandoc, soffice")
}

// fromDOCX converts with LibreOffice, which always names its output after
// the input stem inside --outdir.
func (e *Exporter) fromDOCX(ctx context.Context, docx, outputPDF string) error {
	outDir := filepath.Dir(outputPDF)
	produced := filepath.Join(outDir, stem(docx)+".pdf")

	a := attempt{"soffice", []string{"--headless", "--convert-to", "pdf", "--outdir", outDir, docx}}
	if err := e.run(ctx, a, produced); err != nil {
		return err
	}
	if produced != outputPDF {
		if err := os.Rename(produced, outputPDF); err != nil {
			return fmt.Errorf("soffice: moving output: %w", err)
		}
	}
	return nil
}

// printFallback renders the markdown as a plain document and prints it.
func (e *Exporter) printFallback(ctx context.Context, inputMD, outputPDF string) error {
	raw, err := os.ReadFile(inputMD) // #nosec G304 -- user-provided input
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	md := (&pipeline.CommonMarkPreprocessor{}).PreprocessMarkdown(ctx, string(raw))
	htmlContent, err := pipeline.NewGoldmarkConverter(pipeline.WithTitle(stem(inputMD))).ToHTML(ctx, md)
	if err != nil {
		return err
	}

	css, err := assets.LoadStyle(assets.DocumentStyleName)
	if err != nil {
		return err
	}
	htmlContent = (&pipeline.CSSInjection{}).InjectCSS(ctx, htmlContent, css)

	pdf, err := e.Fallback.PrintHTML(ctx, htmlContent, filepath.Dir(inputMD))
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPDF, pdf, 0o644); err != nil { // #nosec G306 -- user output
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

func exportError(sentinel error, failures []error, tried string) error {
	if len(failures) == 0 {
		return fmt.Errorf("%w: no converter found (looked for %s)", sentinel, tried)
	}
	return fmt.Errorf("%w: %w", sentinel, errors.Join(failures...))
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
