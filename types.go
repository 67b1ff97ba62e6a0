package resume

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-resume/internal/command"
)

// Input contains per-conversion parameters.
type Input struct {
	Markdown     string // Resume markdown (required)
	SourceDir    string // Directory relative image and link paths resolve against
	ProfileImage string // Overrides the markdown image
	TargetLabel  string
	Headline     string
	CSS          string // Extra CSS appended after the converter style
	HTMLOnly     bool   // Skip PDF generation
}

// Result holds the outputs of a conversion.
type Result struct {
	Record Record
	HTML   []byte
	PDF    []byte // nil when Input.HTMLOnly is set
}

// Engine selects the HTML to PDF backend.
type Engine string

const (
	EngineChrome     Engine = "chrome"     // headless Chrome via go-rod
	EngineWeasyprint Engine = "weasyprint" // weasyprint CLI
)

// ParseEngine converts a case-insensitive engine name. Empty means EngineChrome.
func ParseEngine(s string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(s))) {
	case "", EngineChrome:
		return EngineChrome, nil
	case EngineWeasyprint:
		return EngineWeasyprint, nil
	default:
		return "", fmt.Errorf("%w: %q (want chrome or weasyprint)", ErrUnknownEngine, s)
	}
}

// defaultTimeout bounds page load and printing when the context has no deadline.
const defaultTimeout = 30 * time.Second

type converterConfig struct {
	timeout      time.Duration
	styleInput   string // name, path or CSS text
	assetPath    string
	templateName string
	engine       Engine
	runner       command.Runner
	logger       zerolog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithTimeout sets the PDF generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("resume: WithTimeout duration must be positive")
	}
	return func(c *Converter) { c.cfg.timeout = d }
}

// WithStyle sets the base stylesheet: a style name ("compact"), a file
// path ("./my.css") or CSS text ("body { ... }").
func WithStyle(style string) Option {
	return func(c *Converter) { c.cfg.styleInput = style }
}

// WithAssetPath sets a directory whose styles/ and templates/ override
// the embedded assets.
func WithAssetPath(path string) Option {
	return func(c *Converter) { c.cfg.assetPath = path }
}

// WithTemplate selects a template by name (default "resume").
func WithTemplate(name string) Option {
	return func(c *Converter) { c.cfg.templateName = name }
}

// WithEngine selects the PDF backend.
func WithEngine(e Engine) Option {
	return func(c *Converter) { c.cfg.engine = e }
}

// WithCommandRunner sets the runner used by CLI-based engines.
func WithCommandRunner(r command.Runner) Option {
	return func(c *Converter) { c.cfg.runner = r }
}

// WithLogger sets the logger for conversion progress. Default: disabled.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) { c.cfg.logger = l }
}
