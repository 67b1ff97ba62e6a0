package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultTitle is the document title used when none is configured.
const DefaultTitle = "Resume"

// documentShell wraps Goldmark's fragment output in a complete HTML5 document.
var documentShell = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>`))

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md    goldmark.Markdown
	title string
}

// GoldmarkOption configures a GoldmarkConverter.
type GoldmarkOption func(*GoldmarkConverter)

// WithTitle sets the <title> of generated documents.
func WithTitle(title string) GoldmarkOption {
	return func(c *GoldmarkConverter) {
		if title != "" {
			c.title = title
		}
	}
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and syntax highlighting.
func NewGoldmarkConverter(opts ...GoldmarkOption) *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	c := &GoldmarkConverter{md: md, title: DefaultTitle}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ToHTML converts Markdown content to a standalone HTML5 document.
// Goldmark has no context support, so conversion runs in a goroutine and
// the call returns early on cancellation.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var body bytes.Buffer
		if err := c.md.Convert([]byte(content), &body); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		var doc bytes.Buffer
		data := struct {
			Title string
			Body  template.HTML
		}{c.title, template.HTML(body.String())} // #nosec G203 -- goldmark output, raw HTML disabled
		if err := documentShell.Execute(&doc, data); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: doc.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
