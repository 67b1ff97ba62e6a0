package library

import "errors"

// Sentinel errors for library preparation.
var (
	ErrSourceDirNotFound = errors.New("source directory not found")
	ErrPDFText           = errors.New("PDF text extraction failed")
	ErrPDFImages         = errors.New("PDF image extraction failed")
)
