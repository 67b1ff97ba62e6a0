package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	resume "github.com/alnah/go-resume"
	"github.com/alnah/go-resume/internal/config"
	"github.com/alnah/go-resume/internal/exporter"
	"github.com/alnah/go-resume/internal/hints"
)

// ErrNoFormats indicates the format list resolved to nothing.
var ErrNoFormats = errors.New("no export formats requested")

// runExport converts one markdown resume to the requested formats with
// external tools.
func runExport(ctx context.Context, args []string, env *Environment) error {
	f := &exportFlags{}
	positional, err := parseFlagSet(newExportFlagSet(f, env.Stderr), args)
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
	mergeExportFlags(f, cfg)

	formats, err := exporter.ParseFormats(strings.Join(cfg.Export.Formats, ","))
	if err != nil {
		return err
	}
	if len(formats) == 0 {
		return ErrNoFormats
	}
	timeout, err := resolveTimeout(f.pdf.timeout, envCfg.Timeout, cfg)
	if err != nil {
		return err
	}
	log := newLogger(env.Stderr, f.common)

	ex := &exporter.Exporter{
		Runner:   env.runner(),
		LookPath: env.lookPath(),
		Log:      log,
	}
	if !cfg.Export.NoFallback {
		engine, err := resume.ParseEngine(cfg.Render.Engine)
		if err != nil {
			return err
		}
		conv, err := resume.NewConverter(converterOptions(cfg, engine, timeout, env, log)...)
		if err != nil {
			return withStyleHint(err, cfg.Assets.BasePath)
		}
		defer func() { _ = conv.Close() }()
		ex.Fallback = conv
	}

	report, err := ex.Export(ctx, exporter.Request{
		Input:     input,
		Formats:   formats,
		OutputDir: cfg.Output.DefaultDir,
	})
	printExportReport(report, f.common.quiet, env)
	if err != nil {
		return withExportHint(err)
	}
	return nil
}

// mergeExportFlags applies explicitly set flags over cfg (CLI wins).
func mergeExportFlags(f *exportFlags, cfg *config.Config) {
	if f.formats != "" {
		cfg.Export.Formats = strings.Split(f.formats, ",")
	}
	if f.outputDir != "" {
		cfg.Output.DefaultDir = f.outputDir
	}
	if f.noFallback {
		cfg.Export.NoFallback = true
	}
	if f.pdf.engine != "" {
		cfg.Render.Engine = f.pdf.engine
	}
}

// printExportReport lists written files on stdout and failures on stderr.
func printExportReport(report exporter.Report, quiet bool, env *Environment) {
	for _, o := range report.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", o.Format, o.Err)
			continue
		}
		if !quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", o.Path)
		}
	}
}

// withExportHint suggests what to install when no converter succeeded.
func withExportHint(err error) error {
	var suggestions string
	if errors.Is(err, exporter.ErrDOCXExport) {
		suggestions += hints.ForMissingConverter("docx")
	}
	if errors.Is(err, exporter.ErrPDFExport) {
		suggestions += hints.ForMissingConverter("pdf")
	}
	if suggestions == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, suggestions)
}
