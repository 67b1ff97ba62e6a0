package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-resume/internal/config"
	"github.com/alnah/go-resume/internal/hints"
)

// envPrefix is the namespace for this CLI's environment variables.
const envPrefix = "RESUME_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string        // RESUME_CONFIG: config file name or path
	Style        string        // RESUME_STYLE: CSS style name or path
	Timeout      time.Duration // RESUME_TIMEOUT: PDF generation timeout
	Engine       string        // RESUME_ENGINE: chrome or weasyprint
	ProfileImage string        // RESUME_PROFILE_IMAGE: photo path or URL
	TargetLabel  string        // RESUME_TARGET_LABEL: header label
	OutputDir    string        // RESUME_OUTPUT_DIR: default output directory
}

// knownEnvVars lists valid RESUME_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"RESUME_CONFIG":        true,
	"RESUME_STYLE":         true,
	"RESUME_TIMEOUT":       true,
	"RESUME_ENGINE":        true,
	"RESUME_PROFILE_IMAGE": true,
	"RESUME_TARGET_LABEL":  true,
	"RESUME_OUTPUT_DIR":    true,
	"RESUME_CONTAINER":     true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable or non-positive RESUME_TIMEOUT is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("RESUME_CONFIG"),
		Style:        os.Getenv("RESUME_STYLE"),
		Engine:       os.Getenv("RESUME_ENGINE"),
		ProfileImage: os.Getenv("RESUME_PROFILE_IMAGE"),
		TargetLabel:  os.Getenv("RESUME_TARGET_LABEL"),
		OutputDir:    os.Getenv("RESUME_OUTPUT_DIR"),
	}

	if timeout := os.Getenv("RESUME_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized RESUME_* variable.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays set environment values on the loaded config.
// Flags are merged afterwards, giving: flags > env > config file > defaults.
// The timeout is resolved separately in resolveTimeout.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Render.Style = env.Style
	}
	if env.Engine != "" {
		cfg.Render.Engine = env.Engine
	}
	if env.ProfileImage != "" {
		cfg.Render.ProfileImage = env.ProfileImage
	}
	if env.TargetLabel != "" {
		cfg.Render.TargetLabel = env.TargetLabel
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}

// loadConfig resolves the config for a command: the --config flag, then
// RESUME_CONFIG, then the environment's base config. Environment values
// are applied on top.
func loadConfig(flagConfig string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := env.baseConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			hint := ""
			if errors.Is(err, config.ErrConfigNotFound) {
				hint = hints.ForConfigNotFound(config.SearchPaths(name))
			}
			return nil, fmt.Errorf("loading config: %w%s", err, hint)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// resolveTimeout picks the PDF timeout: flag, then env, then config.
// Zero means the converter default.
func resolveTimeout(flagValue string, envValue time.Duration, cfg *config.Config) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return cfg.TimeoutDuration(), nil
}
