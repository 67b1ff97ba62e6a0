package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/alnah/go-resume/internal/config"
	"github.com/alnah/go-resume/internal/hints"
	"github.com/alnah/go-resume/internal/library"
)

// runPrepare normalizes a directory of source resumes into markdown.
func runPrepare(ctx context.Context, args []string, env *Environment) error {
	f := &prepareFlags{}
	positional, err := parseFlagSet(newPrepareFlagSet(f, env.Stderr), args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrInvalidArgs, positional[0])
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadConfig(f.common.config, envCfg, env)
	if err != nil {
		return err
	}
	mergePrepareFlags(f, cfg)
	if err := requirePrepareDirs(cfg.Prepare); err != nil {
		return err
	}
	log := newLogger(env.Stderr, f.common)
	if _, err := env.lookPath()("pdfimages"); err != nil {
		fmt.Fprintf(env.Stderr, "warning: pdfimages not found, PDF images will be skipped%s\n", hints.ForPDFImages())
	}

	sum, err := library.Prepare(ctx, library.Options{
		SourceDir:  cfg.Prepare.SourceDir,
		LibraryDir: cfg.Prepare.LibraryDir,
		AssetsDir:  cfg.Prepare.AssetsDir,
		Runner:     env.runner(),
		Log:        log,
	})
	if err != nil {
		return err
	}

	printPrepareSummary(sum, f.common.quiet, env)
	if len(sum.Failed) > 0 {
		return fmt.Errorf("%d source file(s) failed", len(sum.Failed))
	}
	return nil
}

// mergePrepareFlags applies explicitly set flags over cfg (CLI wins).
func mergePrepareFlags(f *prepareFlags, cfg *config.Config) {
	if f.sourceDir != "" {
		cfg.Prepare.SourceDir = f.sourceDir
	}
	if f.libraryDir != "" {
		cfg.Prepare.LibraryDir = f.libraryDir
	}
	if f.assetsDir != "" {
		cfg.Prepare.AssetsDir = f.assetsDir
	}
}

// requirePrepareDirs checks that all three directories are known.
func requirePrepareDirs(p config.PrepareConfig) error {
	var missing []error
	for _, d := range []struct{ flag, value string }{
		{"--source-dir", p.SourceDir},
		{"--library-dir", p.LibraryDir},
		{"--assets-dir", p.AssetsDir},
	} {
		if d.value == "" {
			missing = append(missing, fmt.Errorf("%w: %s is required", ErrInvalidArgs, d.flag))
		}
	}
	return errors.Join(missing...)
}

// printPrepareSummary reports prepared files, extracted images and failures.
func printPrepareSummary(sum *library.Summary, quiet bool, env *Environment) {
	failed := make([]string, 0, len(sum.Failed))
	for name := range sum.Failed {
		failed = append(failed, name)
	}
	sort.Strings(failed)
	for _, name := range failed {
		fmt.Fprintf(env.Stderr, "FAILED %s: %s\n", name, sum.Failed[name])
	}

	if quiet {
		return
	}
	for _, p := range sum.Prepared {
		fmt.Fprintf(env.Stdout, "Created %s\n", p)
	}
	if sum.ExtractedImages > 0 {
		fmt.Fprintf(env.Stdout, "Extracted %d image(s)\n", sum.ExtractedImages)
	}
	if sum.ProfileCandidate != "" {
		fmt.Fprintf(env.Stdout, "Profile candidate %s\n", sum.ProfileCandidate)
	}
	fmt.Fprintf(env.Stdout, "\n%d prepared, %d failed\n", len(sum.Prepared), len(sum.Failed))
}
