package resume

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-resume/internal/assets"
	"github.com/alnah/go-resume/internal/command"
	"github.com/alnah/go-resume/internal/fileutil"
	"github.com/alnah/go-resume/internal/pipeline"
)

// pdfConverter prints a standalone HTML document to PDF.
// baseDir is where relative references in the document resolve.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent, baseDir string) ([]byte, error)
	Close() error
}

var (
	_ pipeline.CSSInjector = (*pipeline.CSSInjection)(nil)
	_ pdfConverter         = (*rodConverter)(nil)
	_ pdfConverter         = (*weasyprintConverter)(nil)
)

// Converter runs the resume pipeline: parse, render, rewrite paths, print.
// Create with NewConverter, call Convert as often as needed, then Close.
type Converter struct {
	cfg          converterConfig
	assetLoader  assets.AssetLoader
	renderer     *Renderer
	pdfConverter pdfConverter
}

// NewConverter creates a Converter. The browser (or CLI engine) is not
// started until the first PDF is requested.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:      defaultTimeout,
			templateName: assets.DefaultTemplateName,
			engine:       EngineChrome,
			runner:       &command.ExecRunner{},
			logger:       zerolog.Nop(),
		},
		assetLoader: assets.NewEmbeddedLoader(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	css, err := c.resolveStyle()
	if err != nil {
		return nil, err
	}

	tmpl, err := c.assetLoader.LoadTemplate(c.cfg.templateName)
	if err != nil {
		return nil, fmt.Errorf("loading template %q: %w", c.cfg.templateName, err)
	}

	c.renderer, err = NewRenderer(WithTemplateText(tmpl), WithStylesheet(css))
	if err != nil {
		return nil, err
	}

	if c.pdfConverter == nil {
		switch c.cfg.engine {
		case EngineChrome:
			c.pdfConverter = newRodConverter(c.cfg.timeout)
		case EngineWeasyprint:
			c.pdfConverter = newWeasyprintConverter(c.cfg.runner, c.cfg.timeout)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, c.cfg.engine)
		}
	}

	return c, nil
}

// Convert parses input.Markdown, renders it and, unless input.HTMLOnly is
// set, prints it to PDF. Internal panics are returned as errors.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := Parse(input.Markdown)
	c.cfg.logger.Debug().
		Str("name", rec.Name).
		Int("experience", len(rec.Experience)).
		Int("projects", len(rec.Projects)).
		Int("skills", len(rec.Skills)).
		Msg("parsed resume")

	htmlContent, err := c.renderer.Render(rec, RenderOptions{
		ProfileImage: input.ProfileImage,
		TargetLabel:  input.TargetLabel,
		Headline:     input.Headline,
		CSS:          input.CSS,
	})
	if err != nil {
		return nil, err
	}

	if input.SourceDir != "" {
		htmlContent, err = pipeline.RewriteRelativePaths(htmlContent, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	res := &Result{Record: rec, HTML: []byte(htmlContent)}
	if input.HTMLOnly {
		return res, nil
	}

	c.cfg.logger.Debug().Str("engine", string(c.cfg.engine)).Msg("printing PDF")
	pdf, err := c.pdfConverter.ToPDF(ctx, htmlContent, input.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdf
	return res, nil
}

// PrintHTML prints an arbitrary standalone HTML document with the
// configured engine. Relative paths are rewritten against baseDir first.
func (c *Converter) PrintHTML(ctx context.Context, htmlContent, baseDir string) ([]byte, error) {
	var err error
	if baseDir != "" {
		if htmlContent, err = pipeline.RewriteRelativePaths(htmlContent, baseDir); err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}
	return c.pdfConverter.ToPDF(ctx, htmlContent, baseDir)
}

// Engine returns the configured PDF backend.
func (c *Converter) Engine() Engine {
	return c.cfg.engine
}

// Close releases the browser, if one was started.
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle turns the style input (path, CSS text or name) into CSS.
func (c *Converter) resolveStyle() (string, error) {
	input := c.cfg.styleInput
	switch {
	case input == "":
		input = assets.DefaultStyleName
	case fileutil.IsCSS(input):
		return input, nil
	case fileutil.IsFilePath(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", input, err)
		}
		return string(content), nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", input, err)
	}
	return css, nil
}

// AvailableStyles lists style names the converter's loader can serve.
func (c *Converter) AvailableStyles() []string {
	return c.assetLoader.Styles()
}
