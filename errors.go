package resume

import (
	"errors"

	"github.com/alnah/go-resume/internal/assets"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown     = errors.New("markdown content cannot be empty or blank")
	ErrTemplateParse     = errors.New("resume template parsing failed")
	ErrTemplateExecute   = errors.New("resume template rendering failed")
	ErrPDFGeneration     = errors.New("PDF generation failed")
	ErrBrowserConnect    = errors.New("failed to connect to browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrPageLoad          = errors.New("failed to load page")
	ErrConverterNotFound = errors.New("PDF converter not found")
	ErrUnknownEngine     = errors.New("unknown PDF engine")
	ErrInvalidAssetPath  = errors.New("invalid asset path")

	// Asset errors, shared with internal/assets so errors.Is matches either.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
)
