package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// transform turns raw file content into markdown.
type transform func(raw string) (string, error)

func passThrough(raw string) (string, error) { return raw, nil }

func htmlToMarkdown(raw string) (string, error) {
	md, err := htmltomarkdown.ConvertString(raw)
	if err != nil {
		return "", fmt.Errorf("converting HTML: %w", err)
	}
	return md, nil
}

// prepareText copies a text-like source into the library. Invalid UTF-8
// is dropped.
func prepareText(src, libraryDir string, fn transform) (string, error) {
	raw, err := os.ReadFile(src) // #nosec G304 -- file listed from the source dir
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", src, err)
	}

	body, err := fn(strings.ToValidUTF8(string(raw), ""))
	if err != nil {
		return "", err
	}

	out := libraryPath(libraryDir, src)
	if err := writeSource(out, filepath.Base(src), body); err != nil {
		return "", err
	}
	return out, nil
}
