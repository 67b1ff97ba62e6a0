package main

import (
	"errors"
	"os"

	resume "github.com/alnah/go-resume"
	"github.com/alnah/go-resume/internal/assets"
	"github.com/alnah/go-resume/internal/config"
	"github.com/alnah/go-resume/internal/exporter"
	"github.com/alnah/go-resume/internal/library"
)

// Exit codes for the resume CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Command completed
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, or validation
	ExitIO        = 3 // File not found, permission denied
	ExitBrowser   = 4 // Browser/Chrome or PDF engine errors
	ExitConverter = 5 // No external converter could produce the output
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Converter availability (exit 5)
	if errors.Is(err, resume.ErrConverterNotFound) ||
		errors.Is(err, exporter.ErrDOCXExport) ||
		errors.Is(err, exporter.ErrPDFExport) {
		return ExitConverter
	}

	// Browser errors (exit 4)
	if errors.Is(err, resume.ErrBrowserConnect) ||
		errors.Is(err, resume.ErrPageCreate) ||
		errors.Is(err, resume.ErrPageLoad) ||
		errors.Is(err, resume.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, exporter.ErrInputNotFound) ||
		errors.Is(err, library.ErrSourceDirNotFound) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidArgs) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrNoFormats) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, resume.ErrEmptyMarkdown) ||
		errors.Is(err, resume.ErrUnknownEngine) ||
		errors.Is(err, resume.ErrStyleNotFound) ||
		errors.Is(err, resume.ErrTemplateNotFound) ||
		errors.Is(err, resume.ErrTemplateParse) ||
		errors.Is(err, resume.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, exporter.ErrUnsupportedFormat) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
