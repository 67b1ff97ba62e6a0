package pipeline

import (
	"context"
	"regexp"
	"strings"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// NormalizeSource prepares raw resume text for line-oriented parsing:
// line endings become \n and invalid UTF-8 sequences are dropped.
func NormalizeSource(content string) string {
	return strings.ToValidUTF8(NormalizeLineEndings(content), "")
}

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before CommonMark conversion.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown normalizes the source and compresses runs of blank lines.
// On a cancelled context the content is returned unchanged.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	content = NormalizeSource(content)
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
