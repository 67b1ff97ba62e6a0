// Package pipeline holds the document transformation stages shared by the
// resume renderer and the markdown exporter:
//   - source normalization (line endings, invalid UTF-8)
//   - Markdown to HTML conversion via Goldmark
//   - CSS injection into HTML documents
//   - rewriting of relative asset paths to file:// URLs
//
// PDF generation is handled by the root resume package and by
// internal/exporter. This package never touches a browser or a subprocess.
package pipeline
