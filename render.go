package resume

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/alnah/go-resume/internal/assets"
	"github.com/alnah/go-resume/internal/pipeline"
)

// PlaceholderImage is used when neither the caller nor the markdown
// supplies a profile image.
const PlaceholderImage = "https://dummyimage.com/400x400/e6eef7/7f8fa3.jpg&text=Profile"

// Display limits applied by the renderer. The record keeps every entry.
const (
	MaxContacts = 4
	MaxSkills   = 12
	MaxFit      = 4
)

// RenderOptions are the presentation inputs that do not come from the markdown.
type RenderOptions struct {
	ProfileImage string // URL or path; falls back to Record.ImageFromMD, then PlaceholderImage
	TargetLabel  string // small label right of the headline; hidden when empty
	Headline     string // defaults to "<Role> Resume", or "Resume"
	CSS          string // extra CSS appended after the base style
}

// Renderer projects a Record into a standalone HTML document.
// A Renderer is safe for concurrent use.
type Renderer struct {
	tmpl        *template.Template
	css         string
	cssInjector pipeline.CSSInjector
}

type rendererConfig struct {
	templateText string
	css          string
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

// WithTemplateText replaces the built-in resume template. The template
// receives the fields of the view type documented on Render.
func WithTemplateText(text string) RendererOption {
	return func(c *rendererConfig) { c.templateText = text }
}

// WithStylesheet replaces the built-in base stylesheet.
func WithStylesheet(css string) RendererOption {
	return func(c *rendererConfig) { c.css = css }
}

// NewRenderer parses the resume template. Without options it uses the
// embedded "resume" template and "default" style.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	var cfg rendererConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.templateText == "" {
		text, err := assets.LoadTemplate(assets.DefaultTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading default template: %w", err)
		}
		cfg.templateText = text
	}
	if cfg.css == "" {
		css, err := assets.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			return nil, fmt.Errorf("loading default style: %w", err)
		}
		cfg.css = css
	}

	tmpl, err := template.New("resume").Parse(cfg.templateText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	return &Renderer{
		tmpl:        tmpl,
		css:         cfg.css,
		cssInjector: &pipeline.CSSInjection{},
	}, nil
}

// view is the data handed to the template. Every string is escaped by
// html/template at execution time; nothing is pre-escaped.
type view struct {
	Title        string
	CSS          template.CSS
	ProfileImage any // string, or template.URL for file: and data:image/ sources
	ImageAlt     string
	Name         string
	Role         string
	Contacts     []string
	Skills       []string
	Headline     string
	TargetLabel  string
	Summary      string
	Experience   []Item
	Projects     []Item
	Fit          []string
}

// Render executes the template for rec. Identical inputs produce
// byte-identical output. The only error source is template execution,
// which cannot fail with the built-in template.
//
// Template fields: Title, CSS, ProfileImage, ImageAlt, Name, Role,
// Contacts (first 4), Skills (first 12), Headline, TargetLabel, Summary,
// Experience, Projects (Items with Title, Meta, Subtitle, Bullets) and
// Fit (first 4).
func (r *Renderer) Render(rec Record, opts RenderOptions) (string, error) {
	v := view{
		Title:        documentTitle(rec.Name),
		CSS:          template.CSS(r.css), // #nosec G203 -- stylesheet from assets or the operator
		ProfileImage: imageSource(resolveProfileImage(rec, opts.ProfileImage)),
		ImageAlt:     orDefault(rec.Name, "Profile"),
		Name:         rec.Name,
		Role:         rec.Role,
		Contacts:     head(rec.Contacts, MaxContacts),
		Skills:       head(rec.Skills, MaxSkills),
		Headline:     headline(rec.Role, opts.Headline),
		TargetLabel:  opts.TargetLabel,
		Summary:      rec.Summary,
		Experience:   rec.Experience,
		Projects:     rec.Projects,
		Fit:          head(rec.Fit, MaxFit),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateExecute, err)
	}

	return r.cssInjector.InjectCSS(context.Background(), buf.String(), opts.CSS), nil
}

var defaultRenderer = sync.OnceValues(func() (*Renderer, error) {
	return NewRenderer()
})

// RenderHTML renders rec with the built-in template and style.
// An empty profileImage falls back to the markdown image, then to
// PlaceholderImage; an empty targetLabel hides the label.
func RenderHTML(rec Record, profileImage, targetLabel string) string {
	r, err := defaultRenderer()
	if err != nil {
		panic("resume: built-in template: " + err.Error())
	}
	out, err := r.Render(rec, RenderOptions{ProfileImage: profileImage, TargetLabel: targetLabel})
	if err != nil {
		panic("resume: built-in template: " + err.Error())
	}
	return out
}

func resolveProfileImage(rec Record, explicit string) string {
	switch {
	case explicit != "":
		return explicit
	case rec.ImageFromMD != "":
		return rec.ImageFromMD
	default:
		return PlaceholderImage
	}
}

// imageSource classifies the profile image reference. Absolute local paths,
// Windows drive paths included, become file:// URLs; file: and data:image/
// URIs pass as they are. Both bypass html/template's URL filter, which would
// otherwise replace them with "#ZgotmplZ". Relative paths and other schemes
// stay subject to the filter and are resolved later against the source
// directory.
func imageSource(uri string) any {
	lower := strings.ToLower(uri)
	switch {
	case pipeline.IsAbsLocalPath(uri):
		return template.URL(pipeline.FileURL(uri)) // #nosec G203 -- built from a local path
	case strings.HasPrefix(lower, "file:") || strings.HasPrefix(lower, "data:image/"):
		return template.URL(uri) // #nosec G203 -- restricted to file: and data:image/
	default:
		return uri
	}
}

func headline(role, explicit string) string {
	switch {
	case explicit != "":
		return explicit
	case role != "":
		return role + " Resume"
	default:
		return "Resume"
	}
}

func documentTitle(name string) string {
	if name == "" {
		return "Resume"
	}
	return name + " - Resume"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
