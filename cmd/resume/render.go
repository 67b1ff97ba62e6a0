package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	resume "github.com/alnah/go-resume"
	"github.com/alnah/go-resume/internal/assets"
	"github.com/alnah/go-resume/internal/config"
	"github.com/alnah/go-resume/internal/fileutil"
	"github.com/alnah/go-resume/internal/hints"
)

// Sentinel errors for command input and output.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrReadCSS        = errors.New("failed to read CSS file")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// renderOutputs holds the resolved output paths for one render.
type renderOutputs struct {
	html string
	pdf  string
}

// runRender renders one markdown resume to HTML and, unless --html-only,
// to PDF.
func runRender(ctx context.Context, args []string, env *Environment) error {
	f := &renderFlags{}
	positional, err := parseFlagSet(newRenderFlagSet(f, env.Stderr), args)
	if err != nil {
		return err
	}
	input, err := singleInput(positional)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadConfig(f.common.config, envCfg, env)
	if err != nil {
		return err
	}
	mergeRenderFlags(f, cfg)

	timeout, err := resolveTimeout(f.pdf.timeout, envCfg.Timeout, cfg)
	if err != nil {
		return err
	}
	log := newLogger(env.Stderr, f.common)

	markdown, err := os.ReadFile(input) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	extraCSS, err := readCSS(cfg.Render.CSS)
	if err != nil {
		return err
	}
	sourceDir, err := filepath.Abs(filepath.Dir(input))
	if err != nil {
		return fmt.Errorf("resolving input directory: %w", err)
	}

	engine, err := resume.ParseEngine(cfg.Render.Engine)
	if err != nil {
		return err
	}
	conv, err := resume.NewConverter(converterOptions(cfg, engine, timeout, env, log)...)
	if err != nil {
		return withStyleHint(err, cfg.Assets.BasePath)
	}
	defer func() { _ = conv.Close() }()

	start := env.now()
	res, err := conv.Convert(ctx, resume.Input{
		Markdown:     string(markdown),
		SourceDir:    sourceDir,
		ProfileImage: localImagePath(cfg.Render.ProfileImage),
		TargetLabel:  cfg.Render.TargetLabel,
		Headline:     cfg.Render.Headline,
		CSS:          extraCSS,
		HTMLOnly:     f.htmlOnly,
	})
	if err != nil {
		return withEngineHint(err, engine)
	}
	log.Debug().
		Str("name", res.Record.Name).
		Str("engine", string(conv.Engine())).
		Dur("elapsed", env.now().Sub(start)).
		Msg("rendered resume")

	out := resolveRenderOutputs(input, f.output, f.html, cfg.Output.DefaultDir)
	written := []string{}
	if err := writeOutput(out.html, res.HTML); err != nil {
		return err
	}
	written = append(written, out.html)
	if !f.htmlOnly {
		if err := writeOutput(out.pdf, res.PDF); err != nil {
			return err
		}
		written = append(written, out.pdf)
	}

	if !f.common.quiet {
		for _, p := range written {
			fmt.Fprintf(env.Stdout, "Created %s\n", p)
		}
	}
	return nil
}

// mergeRenderFlags applies explicitly set flags over cfg (CLI wins).
func mergeRenderFlags(f *renderFlags, cfg *config.Config) {
	if f.style != "" {
		cfg.Render.Style = f.style
	}
	if f.css != "" {
		cfg.Render.CSS = f.css
	}
	if f.template != "" {
		cfg.Render.Template = f.template
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.pdf.engine != "" {
		cfg.Render.Engine = f.pdf.engine
	}
	if f.profileImage != "" {
		cfg.Render.ProfileImage = f.profileImage
	}
	if f.targetLabel != "" {
		cfg.Render.TargetLabel = f.targetLabel
	}
	if f.headline != "" {
		cfg.Render.Headline = f.headline
	}
}

// localImagePath makes a relative image path absolute, so --profile-image
// resolves against the working directory and not the resume's directory.
// URLs and data/file URIs are returned unchanged.
func localImagePath(p string) string {
	lower := strings.ToLower(p)
	if p == "" || fileutil.IsURL(p) || filepath.IsAbs(p) ||
		strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "file:") {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

// converterOptions builds library options from the merged config.
func converterOptions(cfg *config.Config, engine resume.Engine, timeout time.Duration, env *Environment, log zerolog.Logger) []resume.Option {
	opts := []resume.Option{
		resume.WithEngine(engine),
		resume.WithCommandRunner(env.runner()),
		resume.WithLogger(log),
	}
	if cfg.Render.Style != "" {
		opts = append(opts, resume.WithStyle(cfg.Render.Style))
	}
	if cfg.Render.Template != "" {
		opts = append(opts, resume.WithTemplate(cfg.Render.Template))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, resume.WithAssetPath(cfg.Assets.BasePath))
	}
	if timeout > 0 {
		opts = append(opts, resume.WithTimeout(timeout))
	}
	return opts
}

// readCSS reads the extra stylesheet, if one is configured.
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(data), nil
}

// resolveRenderOutputs picks the HTML and PDF paths. Explicit paths win;
// otherwise both are named after the input, in outputDir or next to it.
func resolveRenderOutputs(input, pdfFlag, htmlFlag, outputDir string) renderOutputs {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	base := filepath.Join(dir, filepath.Base(input))

	out := renderOutputs{
		html: fileutil.WithExt(base, ".html"),
		pdf:  fileutil.WithExt(base, ".pdf"),
	}
	if pdfFlag != "" {
		out.pdf = pdfFlag
	}
	if htmlFlag != "" {
		out.html = htmlFlag
	}
	return out
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("%w: creating directory for %s: %v%s", ErrWriteOutput, path, err, hints.ForOutputDirectory())
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// withStyleHint lists available styles when a style name is unknown.
func withStyleHint(err error, assetPath string) error {
	if !errors.Is(err, resume.ErrStyleNotFound) {
		return err
	}
	resolver, rerr := assets.NewAssetResolver(assetPath)
	if rerr != nil {
		return err
	}
	return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(resolver.Styles()))
}

// withEngineHint appends engine-specific advice to PDF failures.
func withEngineHint(err error, engine resume.Engine) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case engine == resume.EngineChrome && errors.Is(err, resume.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case engine == resume.EngineWeasyprint && errors.Is(err, resume.ErrConverterNotFound):
		return fmt.Errorf("%w%s", err, hints.ForMissingConverter("weasyprint"))
	}
	return err
}
