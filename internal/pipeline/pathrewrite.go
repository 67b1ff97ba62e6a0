package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// rewritableAttrs maps element names to the attribute holding a local reference.
var rewritableAttrs = map[string]string{
	"img":  "src",
	"a":    "href",
	"link": "href",
}

// RewriteRelativePaths converts relative img[src], a[href] and link[href]
// values to absolute file:// URLs rooted at baseDir, so a document loaded
// from a temp file still finds assets that sit next to the resume source.
// URLs, anchors, absolute paths and paths escaping baseDir are left as-is.
// An empty baseDir returns the HTML unchanged.
func RewriteRelativePaths(htmlContent, baseDir string) (string, error) {
	if baseDir == "" {
		return htmlContent, nil
	}

	root, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	walk(doc, func(n *html.Node) {
		key, ok := rewritableAttrs[n.Data]
		if !ok {
			return
		}
		for i := range n.Attr {
			if n.Attr[i].Key != key {
				continue
			}
			if abs, ok := resolveUnder(root, n.Attr[i].Val); ok {
				n.Attr[i].Val = FileURL(abs)
			}
		}
	})

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// resolveUnder joins ref to root when ref is a local relative path that
// stays inside root. ref is a URL reference, so percent-escapes are decoded
// before it is treated as a file path.
func resolveUnder(root, ref string) (string, bool) {
	if !isLocalRelative(ref) {
		return "", false
	}
	if p, err := url.PathUnescape(ref); err == nil {
		ref = p
	}
	abs := filepath.Clean(filepath.Join(root, ref))
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return abs, true
}

func isLocalRelative(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false
	}
	return !IsAbsLocalPath(ref)
}

// IsAbsLocalPath reports whether p is an absolute file system path for
// this OS, or a Windows drive path such as C:\Users\me.jpg on any OS.
func IsAbsLocalPath(p string) bool {
	return filepath.IsAbs(p) || filepath.VolumeName(p) != "" || hasDriveLetter(p)
}

func hasDriveLetter(p string) bool {
	if len(p) < 3 || p[1] != ':' || (p[2] != '\\' && p[2] != '/') {
		return false
	}
	c := p[0] | 0x20
	return c >= 'a' && c <= 'z'
}

// FileURL converts an absolute path to a file:// URL. Backslashes in a
// drive path become forward slashes whatever the host OS.
func FileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if hasDriveLetter(p) {
		p = strings.ReplaceAll(p, "\\", "/")
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
