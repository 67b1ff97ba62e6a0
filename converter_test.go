package resume

// Notes:
// - Converter tests swap the PDF backend for mockPDFConverter through the
//   internal withPDFConverter option, so no browser or CLI is needed.
// - Asset and style tests write fixtures under t.TempDir().

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-resume/internal/assets"
	"github.com/alnah/go-resume/internal/pipeline"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPDFConverter struct {
	called       bool
	inputHTML    string
	inputBaseDir string
	output       []byte
	err          error
	closed       bool
}

func (m *mockPDFConverter) ToPDF(ctx context.Context, htmlContent, baseDir string) ([]byte, error) {
	m.called = true
	m.inputHTML = htmlContent
	m.inputBaseDir = baseDir
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("%PDF-1.4 mock"), nil
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return nil
}

func withPDFConverter(p pdfConverter) Option {
	return func(c *Converter) { c.pdfConverter = p }
}

func newTestConverter(t *testing.T, mock *mockPDFConverter, opts ...Option) *Converter {
	t.Helper()
	c, err := NewConverter(append([]Option{withPDFConverter(mock)}, opts...)...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// ---------------------------------------------------------------------------
// TestConverter_Convert - Pipeline
// ---------------------------------------------------------------------------

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	mock := &mockPDFConverter{}
	c := newTestConverter(t, mock)

	res, err := c.Convert(context.Background(), Input{Markdown: sampleResume, TargetLabel: "Acme"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if res.Record.Name != "Jane Doe" {
		t.Errorf("Record.Name = %q", res.Record.Name)
	}
	if !strings.Contains(string(res.HTML), `<p class="target">Acme</p>`) {
		t.Error("HTML missing target label")
	}
	if string(res.PDF) != "%PDF-1.4 mock" {
		t.Errorf("PDF = %q", res.PDF)
	}
	if !mock.called || mock.inputHTML != string(res.HTML) {
		t.Error("PDF converter should receive the rendered HTML")
	}
}

func TestConverter_Convert_HTMLOnly(t *testing.T) {
	t.Parallel()

	mock := &mockPDFConverter{}
	c := newTestConverter(t, mock)

	res, err := c.Convert(context.Background(), Input{Markdown: sampleResume, HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if mock.called {
		t.Error("HTMLOnly must not invoke the PDF converter")
	}
	if res.PDF != nil {
		t.Error("PDF should be nil for HTMLOnly")
	}
	if len(res.HTML) == 0 {
		t.Error("HTML should be set")
	}
}

func TestConverter_Convert_Errors(t *testing.T) {
	t.Parallel()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		input   Input
		mockErr error
		wantErr error
	}{
		{"empty markdown", context.Background(), Input{}, nil, ErrEmptyMarkdown},
		{"blank markdown", context.Background(), Input{Markdown: " \n\t\r\n  \n"}, nil, ErrEmptyMarkdown},
		{"cancelled context", cancelled, Input{Markdown: "# Jane"}, nil, context.Canceled},
		{"pdf failure wrapped", context.Background(), Input{Markdown: "# Jane"}, ErrPDFGeneration, ErrPDFGeneration},
		{"converter missing", context.Background(), Input{Markdown: "# Jane"}, ErrConverterNotFound, ErrConverterNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestConverter(t, &mockPDFConverter{err: tt.mockErr})
			_, err := c.Convert(tt.ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConverter_Convert_RewritesRelativePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mock := &mockPDFConverter{}
	c := newTestConverter(t, mock)

	res, err := c.Convert(context.Background(), Input{
		Markdown:  "![me](assets/me.jpg)\n# Jane",
		SourceDir: dir,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	want := "file://" + filepath.ToSlash(filepath.Join(dir, "assets", "me.jpg"))
	if !strings.Contains(string(res.HTML), want) {
		t.Errorf("HTML missing rewritten image %q", want)
	}
	if mock.inputBaseDir != dir {
		t.Errorf("baseDir = %q, want %q", mock.inputBaseDir, dir)
	}
}

func TestConverter_Convert_ImageNamesNeedingEscapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		profile  string
		file     string
	}{
		{"markdown image with space", "# Jane\n![p](my photo.jpg)\n", "", "my photo.jpg"},
		{"explicit image with parens", "# Jane\n", "photo (1).jpg", "photo (1).jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte("jpg"), 0o600); err != nil {
				t.Fatal(err)
			}

			c := newTestConverter(t, &mockPDFConverter{})
			res, err := c.Convert(context.Background(), Input{
				Markdown:     tt.markdown,
				ProfileImage: tt.profile,
				SourceDir:    dir,
				HTMLOnly:     true,
			})
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}

			html := string(res.HTML)
			if want := pipeline.FileURL(path); !strings.Contains(html, `src="`+want+`"`) {
				t.Errorf("HTML missing image %q\ngot: %s", want, html)
			}
			if strings.Contains(html, "%25") {
				t.Errorf("image reference escaped twice: %s", html)
			}
		})
	}
}

func TestConverter_Convert_KeepsRelativePathsWithoutSourceDir(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t, &mockPDFConverter{})
	res, err := c.Convert(context.Background(), Input{Markdown: "![me](assets/me.jpg)\n# Jane", HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(string(res.HTML), `src="assets/me.jpg"`) {
		t.Error("relative image should be kept as-is")
	}
}

func TestConverter_Convert_Overrides(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t, &mockPDFConverter{})
	res, err := c.Convert(context.Background(), Input{
		Markdown:     sampleResume,
		ProfileImage: "https://example.com/me.png",
		Headline:     "Staff Engineer",
		CSS:          ".extra { color: red; }",
		HTMLOnly:     true,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	html := string(res.HTML)
	for _, want := range []string{`src="https://example.com/me.png"`, "<h1>Staff Engineer</h1>", ".extra { color: red; }"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestNewConverter - Options
// ---------------------------------------------------------------------------

func TestNewConverter_Styles(t *testing.T) {
	t.Parallel()

	cssFile := filepath.Join(t.TempDir(), "mine.css")
	if err := os.WriteFile(cssFile, []byte(".from-file{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		style   string
		want    string
		wantErr error
	}{
		{"default", "", "@page", nil},
		{"embedded name", "compact", "58mm", nil},
		{"css text", ".inline { color: blue }", ".inline { color: blue }", nil},
		{"file path", cssFile, ".from-file{}", nil},
		{"unknown name", "nope", "", ErrStyleNotFound},
		{"invalid name", "my.style", "", assets.ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := NewConverter(withPDFConverter(&mockPDFConverter{}), WithStyle(tt.style))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewConverter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConverter() error = %v", err)
			}
			res, err := c.Convert(context.Background(), Input{Markdown: "# Jane", HTMLOnly: true})
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if !strings.Contains(string(res.HTML), tt.want) {
				t.Errorf("HTML missing %q", tt.want)
			}
		})
	}
}

func TestNewConverter_MissingStyleFile(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(withPDFConverter(&mockPDFConverter{}), WithStyle("./does/not/exist.css"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("NewConverter() error = %v, want os.ErrNotExist", err)
	}
}

func TestNewConverter_AssetPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for path, content := range map[string]string{
		"styles/brand.css":    ".brand{}",
		"templates/mini.html": "<main>{{.Name}}</main><style>{{.CSS}}</style>",
	} {
		full := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	c, err := NewConverter(
		withPDFConverter(&mockPDFConverter{}),
		WithAssetPath(dir),
		WithStyle("brand"),
		WithTemplate("mini"),
	)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	res, err := c.Convert(context.Background(), Input{Markdown: "# Jane", HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got := string(res.HTML); got != "<main>Jane</main><style>.brand{}</style>" {
		t.Errorf("HTML = %q", got)
	}

	styles := c.AvailableStyles()
	for _, want := range []string{"brand", "compact", "default"} {
		if !slices.Contains(styles, want) {
			t.Errorf("AvailableStyles() = %v, missing %q", styles, want)
		}
	}
}

func TestNewConverter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"invalid asset path", []Option{WithAssetPath(filepath.Join(t.TempDir(), "missing"))}, ErrInvalidAssetPath},
		{"unknown template", []Option{WithTemplate("nope"), withPDFConverter(&mockPDFConverter{})}, ErrTemplateNotFound},
		{"unknown engine", []Option{WithEngine("wkhtml")}, ErrUnknownEngine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewConverter(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewConverter_EngineSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		engine Engine
		check  func(pdfConverter) bool
	}{
		{EngineChrome, func(p pdfConverter) bool { _, ok := p.(*rodConverter); return ok }},
		{EngineWeasyprint, func(p pdfConverter) bool { _, ok := p.(*weasyprintConverter); return ok }},
	}

	for _, tt := range tests {
		t.Run(string(tt.engine), func(t *testing.T) {
			t.Parallel()
			c, err := NewConverter(WithEngine(tt.engine), WithTimeout(time.Second))
			if err != nil {
				t.Fatalf("NewConverter() error = %v", err)
			}
			defer c.Close()
			if !tt.check(c.pdfConverter) {
				t.Errorf("pdfConverter = %T", c.pdfConverter)
			}
			if c.Engine() != tt.engine {
				t.Errorf("Engine() = %q, want %q", c.Engine(), tt.engine)
			}
		})
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) should panic")
		}
	}()
	WithTimeout(0)
}

func TestParseEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Engine
		wantErr bool
	}{
		{"", EngineChrome, false},
		{"chrome", EngineChrome, false},
		{" WeasyPrint ", EngineWeasyprint, false},
		{"wkhtmltopdf", "", true},
	}

	for _, tt := range tests {
		got, err := ParseEngine(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEngine(%q) error = %v", tt.in, err)
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownEngine) {
			t.Errorf("ParseEngine(%q) error = %v, want ErrUnknownEngine", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseEngine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestConverter_PrintHTML and Close
// ---------------------------------------------------------------------------

func TestConverter_PrintHTML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mock := &mockPDFConverter{}
	c := newTestConverter(t, mock)

	pdf, err := c.PrintHTML(context.Background(), `<html><body><img src="logo.png"></body></html>`, dir)
	if err != nil {
		t.Fatalf("PrintHTML() error = %v", err)
	}
	if string(pdf) != "%PDF-1.4 mock" {
		t.Errorf("PrintHTML() = %q", pdf)
	}
	if !strings.Contains(mock.inputHTML, "file://") {
		t.Errorf("relative image not rewritten: %s", mock.inputHTML)
	}
}

func TestConverter_Close(t *testing.T) {
	t.Parallel()

	mock := &mockPDFConverter{}
	c, err := NewConverter(withPDFConverter(mock))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !mock.closed {
		t.Error("Close() should close the PDF converter")
	}
}
