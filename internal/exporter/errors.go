package exporter

import "errors"

// Sentinel errors for export operations.
var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrInputNotFound     = errors.New("input file not found")
	ErrDOCXExport        = errors.New("could not generate DOCX")
	ErrPDFExport         = errors.New("could not generate PDF")
)
