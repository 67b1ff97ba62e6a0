// Package exporter turns a markdown resume into DOCX and PDF files with
// whatever converters the machine has.
//
// DOCX is tried with pandoc, then macOS textutil. PDF is tried with pandoc
// (default engine, then xelatex, pdflatex, wkhtmltopdf and weasyprint),
// then LibreOffice from an existing DOCX, then an in-process fallback that
// renders the markdown with goldmark and prints it through an HTMLPrinter.
// An attempt counts only when the command exits 0 and the output file
// exists.
package exporter
