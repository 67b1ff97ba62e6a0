// Package library normalizes a folder of existing resumes into markdown
// sources that can be tailored and rendered.
//
// Supported inputs:
//
//	.pdf        text layer via github.com/ledongthuc/pdf, images via pdfimages
//	.md, .txt   copied under a "# Resume Source: <name>" heading
//	.html, .htm converted to markdown first
//
// Every output is written as <library>/<safe stem>.md. Extracted images go
// to the assets directory, and the largest image of a PDF is also copied
// to profile_candidate.jpg.
package library
