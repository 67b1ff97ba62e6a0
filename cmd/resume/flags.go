package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidArgs wraps flag parsing and positional argument errors.
var ErrInvalidArgs = errors.New("invalid arguments")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// engineFlags holds PDF engine flags shared by render and export.
type engineFlags struct {
	engine  string
	timeout string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common       commonFlags
	pdf          engineFlags
	output       string
	html         string
	htmlOnly     bool
	profileImage string
	targetLabel  string
	headline     string
	style        string
	css          string
	template     string
	assetPath    string
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common     commonFlags
	pdf        engineFlags
	formats    string
	outputDir  string
	noFallback bool
}

// prepareFlags holds all flags for the prepare command.
type prepareFlags struct {
	common     commonFlags
	sourceDir  string
	libraryDir string
	assetsDir  string
}

// parseFlags holds all flags for the parse command.
type parseFlags struct {
	common commonFlags
	format string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addEngineFlags adds PDF engine flags to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringVar(&f.engine, "engine", "", "PDF engine: chrome, weasyprint")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
}

// newRenderFlagSet registers render flags into f.
// Shared by parsing and completion generation.
func newRenderFlagSet(f *renderFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("render", w, printRenderUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output PDF path")
	fs.StringVar(&f.html, "html", "", "output HTML path")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
	fs.StringVar(&f.profileImage, "profile-image", "", "profile photo path or URL")
	fs.StringVar(&f.targetLabel, "target-label", "", "small label in the page header")
	fs.StringVar(&f.headline, "headline", "", "page header title")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the style")
	fs.StringVar(&f.template, "template", "", "template name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	addEngineFlags(fs, &f.pdf)
	addCommonFlags(fs, &f.common)

	return fs
}

// newExportFlagSet registers export flags into f.
func newExportFlagSet(f *exportFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("export", w, printExportUsage)

	fs.StringVar(&f.formats, "formats", "", "comma-separated formats: docx, pdf")
	fs.StringVar(&f.outputDir, "output-dir", "", "output directory")
	fs.BoolVar(&f.noFallback, "no-fallback", false, "disable the built-in PDF fallback")
	addEngineFlags(fs, &f.pdf)
	addCommonFlags(fs, &f.common)

	return fs
}

// newPrepareFlagSet registers prepare flags into f.
func newPrepareFlagSet(f *prepareFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("prepare", w, printPrepareUsage)

	fs.StringVar(&f.sourceDir, "source-dir", "", "directory with source resumes")
	fs.StringVar(&f.libraryDir, "library-dir", "", "directory for normalized markdown")
	fs.StringVar(&f.assetsDir, "assets-dir", "", "directory for extracted images")
	addCommonFlags(fs, &f.common)

	return fs
}

// newParseFlagSet registers parse flags into f.
func newParseFlagSet(f *parseFlags, w io.Writer) *flag.FlagSet {
	fs := newFlagSet("parse", w, printParseUsage)

	fs.StringVar(&f.format, "format", "yaml", "output format: yaml, json")
	addCommonFlags(fs, &f.common)

	return fs
}

func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SortFlags = false
	if w == nil {
		w = io.Discard
	}
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseFlagSet parses args and returns positional arguments.
// flag.ErrHelp is returned unwrapped; other errors wrap ErrInvalidArgs.
func parseFlagSet(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	return fs.Args(), nil
}

// singleInput returns the only positional argument.
func singleInput(positional []string) (string, error) {
	switch len(positional) {
	case 0:
		return "", ErrNoInput
	case 1:
		return positional[0], nil
	default:
		return "", fmt.Errorf("%w: expected one input file, got %d", ErrInvalidArgs, len(positional))
	}
}
