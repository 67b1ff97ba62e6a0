// Package config loads and validates YAML configuration for the resume CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-resume/internal/fileutil"
	"github.com/alnah/go-resume/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory under os.UserConfigDir searched for named configs.
const AppDirName = "go-resume"

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxURLLength      = 2048 // Browser limit
	MaxLabelLength    = 200  // Target label, headline
	MaxNameLength     = 64   // Style and template names
	MaxDurationLength = 20
)

// Config holds all configuration for rendering, exporting and preparing resumes.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Export  ExportConfig  `yaml:"export"`
	Prepare PrepareConfig `yaml:"prepare"`
	Assets  AssetsConfig  `yaml:"assets"`
	Output  OutputConfig  `yaml:"output"`
}

// RenderConfig defines defaults for the render command.
type RenderConfig struct {
	Style        string `yaml:"style"`        // Style name or path (empty = default)
	Template     string `yaml:"template"`     // Template name (empty = resume)
	Engine       string `yaml:"engine"`       // "chrome" or "weasyprint"
	Timeout      string `yaml:"timeout"`      // Go duration, e.g. "45s"
	ProfileImage string `yaml:"profileImage"` // Path or URL
	TargetLabel  string `yaml:"targetLabel"`
	Headline     string `yaml:"headline"`
	CSS          string `yaml:"css"` // Path to extra CSS appended after the style
}

// ExportConfig defines defaults for the export command.
type ExportConfig struct {
	Formats    []string `yaml:"formats"`    // "docx", "pdf"
	NoFallback bool     `yaml:"noFallback"` // Disable the built-in PDF renderer fallback
}

// PrepareConfig defines defaults for the prepare command.
type PrepareConfig struct {
	SourceDir  string `yaml:"sourceDir"`
	LibraryDir string `yaml:"libraryDir"`
	AssetsDir  string `yaml:"assetsDir"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the input
}

// Validate checks field lengths and enumerated values.
// Called by LoadConfig; also usable on a Config built in code.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"render.style", c.Render.Style, MaxPathLength},
		{"render.template", c.Render.Template, MaxNameLength},
		{"render.engine", c.Render.Engine, MaxNameLength},
		{"render.timeout", c.Render.Timeout, MaxDurationLength},
		{"render.profileImage", c.Render.ProfileImage, MaxURLLength},
		{"render.targetLabel", c.Render.TargetLabel, MaxLabelLength},
		{"render.headline", c.Render.Headline, MaxLabelLength},
		{"render.css", c.Render.CSS, MaxPathLength},
		{"prepare.sourceDir", c.Prepare.SourceDir, MaxPathLength},
		{"prepare.libraryDir", c.Prepare.LibraryDir, MaxPathLength},
		{"prepare.assetsDir", c.Prepare.AssetsDir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Render.Engine) {
	case "", "chrome", "weasyprint":
	default:
		return fmt.Errorf("%w: render.engine %q (must be chrome or weasyprint)", ErrInvalidValue, c.Render.Engine)
	}

	if c.Render.Timeout != "" {
		d, err := time.ParseDuration(c.Render.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: render.timeout %q (must be a positive duration like 30s)", ErrInvalidValue, c.Render.Timeout)
		}
	}

	for i, f := range c.Export.Formats {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "docx", "pdf":
		default:
			return fmt.Errorf("%w: export.formats[%d] %q (must be docx or pdf)", ErrInvalidValue, i, f)
		}
	}

	return nil
}

// TimeoutDuration returns the parsed render timeout, or zero when unset.
// Assumes Validate has passed.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Render.Timeout)
	return d
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Export: ExportConfig{Formats: []string{"docx", "pdf"}},
	}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; anything else is a
// name searched in the current directory, then in the user config directory.
// A missing file is an error: there is no silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
