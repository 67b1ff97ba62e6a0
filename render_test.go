package resume

// Notes:
// - Renders through the embedded template and default style.
// - Assertions use substrings so style edits do not break structure tests.

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"
)

func mustRender(t *testing.T, rec Record, opts RenderOptions) string {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	out, err := r.Render(rec, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return out
}

func numbered(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%02d", prefix, i+1)
	}
	return out
}

// ---------------------------------------------------------------------------
// TestRender - Document structure
// ---------------------------------------------------------------------------

func TestRender_SampleResume(t *testing.T) {
	t.Parallel()

	got := mustRender(t, Parse(sampleResume), RenderOptions{TargetLabel: "Staff iOS, Acme"})

	for _, want := range []string{
		"<!doctype html>",
		"<title>Jane Doe - Resume</title>",
		`<img src="assets/profile_candidate.jpg" alt="Jane Doe" />`,
		`<h2 class="name">Jane Doe</h2>`,
		`<p class="role">Senior iOS Engineer</p>`,
		"<p>jane@example.com</p>",
		"<li>SwiftUI</li>",
		"<h1>Senior iOS Engineer Resume</h1>",
		`<p class="target">Staff iOS, Acme</p>`,
		`<div class="summary">Mobile engineer with ten years of Swift. Led teams of five.</div>`,
		"<h2>Professional Experience</h2>",
		`<div class="title">Senior Engineer</div>`,
		`<div class="meta">Acme Corp | 2020-2023</div>`,
		`<p class="sub">Remote</p>`,
		"<li>Cut crash rate in half</li>",
		"<h2>Selected Project Highlights</h2>",
		`<div class="title">Offline Sync</div>`,
		"<h2>Role Fit</h2>",
		`<div class="fit"><strong>Fit</strong>Mentoring</div>`,
		"@page",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	rec := Parse(sampleResume)
	opts := RenderOptions{TargetLabel: "x"}
	first := mustRender(t, rec, opts)
	second := mustRender(t, rec, opts)
	if first != second {
		t.Error("Render() output differs between identical calls")
	}
}

func TestRender_Limits(t *testing.T) {
	t.Parallel()

	rec := newRecord()
	rec.Contacts = numbered("contact", 6)
	rec.Skills = numbered("skill", 15)
	rec.Fit = numbered("fit", 6)

	got := mustRender(t, rec, RenderOptions{})

	tests := []struct {
		prefix string
		keep   int
		total  int
	}{
		{"contact", MaxContacts, 6},
		{"skill", MaxSkills, 15},
		{"fit", MaxFit, 6},
	}

	for _, tt := range tests {
		for i := 1; i <= tt.total; i++ {
			item := fmt.Sprintf("%s%02d", tt.prefix, i)
			shown := strings.Contains(got, item)
			if i <= tt.keep && !shown {
				t.Errorf("%s should be shown", item)
			}
			if i > tt.keep && shown {
				t.Errorf("%s should be cut", item)
			}
		}
	}

	if n := strings.Count(got, `<div class="fit">`); n != MaxFit {
		t.Errorf("fit boxes = %d, want %d", n, MaxFit)
	}
}

func TestRender_RecordNotTruncated(t *testing.T) {
	t.Parallel()

	rec := newRecord()
	rec.Fit = numbered("fit", 6)
	mustRender(t, rec, RenderOptions{})
	if len(rec.Fit) != 6 {
		t.Errorf("Render() modified the record: %d fit entries", len(rec.Fit))
	}
}

func TestRender_EscapesUserText(t *testing.T) {
	t.Parallel()

	rec := newRecord()
	rec.Name = "<script>alert(1)</script>"
	rec.Summary = `"quoted" & <b>bold</b>`
	rec.Experience = []Item{{Title: "R&D", Bullets: []string{"<img src=x>"}}}

	got := mustRender(t, rec, RenderOptions{TargetLabel: "<i>label</i>"})

	for _, bad := range []string{"<script>alert", "<b>bold</b>", "<img src=x>", "<i>label</i>"} {
		if strings.Contains(got, bad) {
			t.Errorf("output contains unescaped %q", bad)
		}
	}
	for _, want := range []string{"&lt;script&gt;", "R&amp;D", "&lt;img src=x&gt;", "&lt;i&gt;label&lt;/i&gt;"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing escaped %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRender - Defaults
// ---------------------------------------------------------------------------

func TestRender_ProfileImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fromMD   string
		explicit string
		want     string
	}{
		{"explicit wins", "md.jpg", "explicit.jpg", `src="explicit.jpg"`},
		{"markdown image", "md.jpg", "", `src="md.jpg"`},
		{"placeholder", "", "", "dummyimage.com/400x400/e6eef7/7f8fa3.jpg"},
		{"file url kept", "", "file:///tmp/me.jpg", `src="file:///tmp/me.jpg"`},
		{"data url kept", "", "data:image/png;base64,AAAA", `src="data:image/png;base64,AAAA"`},
		{"javascript filtered", "", "javascript:alert(1)", `src="#ZgotmplZ"`},
		{"drive path as file url", "", `C:\Users\jane\photo.jpg`, `src="file:///C:/Users/jane/photo.jpg"`},
		{"drive path from markdown", `D:\cv\my photo.jpg`, "", `src="file:///D:/cv/my%20photo.jpg"`},
		{"relative path escaped once", "", "photo (1).jpg", `src="photo%20%281%29.jpg"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := newRecord()
			rec.ImageFromMD = tt.fromMD
			got := mustRender(t, rec, RenderOptions{ProfileImage: tt.explicit})
			if !strings.Contains(got, tt.want) {
				t.Errorf("output missing %q", tt.want)
			}
		})
	}
}

func TestRender_ProfileImage_AbsolutePath(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	rec := newRecord()
	got := mustRender(t, rec, RenderOptions{ProfileImage: "/home/jane/my photo.jpg"})
	if !strings.Contains(got, `src="file:///home/jane/my%20photo.jpg"`) {
		t.Errorf("absolute path should become a file URL, got %s", got)
	}
}

func TestRender_HeadlineAndTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		recName   string
		role      string
		headline  string
		wantH1    string
		wantTitle string
		wantAlt   string
	}{
		{"role headline", "Jane", "iOS Engineer", "", "<h1>iOS Engineer Resume</h1>", "<title>Jane - Resume</title>", `alt="Jane"`},
		{"explicit headline", "Jane", "iOS Engineer", "Staff Engineer", "<h1>Staff Engineer</h1>", "<title>Jane - Resume</title>", `alt="Jane"`},
		{"nothing set", "", "", "", "<h1>Resume</h1>", "<title>Resume</title>", `alt="Profile"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := newRecord()
			rec.Name = tt.recName
			rec.Role = tt.role
			got := mustRender(t, rec, RenderOptions{Headline: tt.headline})
			for _, want := range []string{tt.wantH1, tt.wantTitle, tt.wantAlt} {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q", want)
				}
			}
		})
	}
}

func TestRender_TargetLabelHiddenWhenEmpty(t *testing.T) {
	t.Parallel()

	got := mustRender(t, newRecord(), RenderOptions{})
	if strings.Contains(got, `class="target"`) {
		t.Error("empty target label should not render an element")
	}
}

func TestRender_EmptySectionsStillPresent(t *testing.T) {
	t.Parallel()

	got := mustRender(t, newRecord(), RenderOptions{})
	for _, want := range []string{"Professional Experience", "Selected Project Highlights", "Role Fit", "Core Skills", "Contact"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing section %q", want)
		}
	}
	if strings.Contains(got, `class="sub"`) {
		t.Error("no subtitle element expected")
	}
}

func TestRender_ExtraCSSInjected(t *testing.T) {
	t.Parallel()

	got := mustRender(t, newRecord(), RenderOptions{CSS: ".name { color: red; }"})
	idx := strings.Index(got, ".name { color: red; }")
	if idx < 0 {
		t.Fatal("extra CSS not injected")
	}
	if idx > strings.Index(got, "</head>") {
		t.Error("extra CSS should be injected inside <head>")
	}
}

// ---------------------------------------------------------------------------
// TestNewRenderer - Options
// ---------------------------------------------------------------------------

func TestNewRenderer_CustomTemplate(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(WithTemplateText("<p>{{.Name}}|{{.Headline}}</p>"), WithStylesheet("body{}"))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	rec := newRecord()
	rec.Name = "Jane"
	got, err := r.Render(rec, RenderOptions{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "<p>Jane|Resume</p>" {
		t.Errorf("Render() = %q", got)
	}
}

func TestNewRenderer_InvalidTemplate(t *testing.T) {
	t.Parallel()

	_, err := NewRenderer(WithTemplateText("{{.Name"))
	if !errors.Is(err, ErrTemplateParse) {
		t.Errorf("NewRenderer() error = %v, want ErrTemplateParse", err)
	}
}

func TestRender_ExecuteError(t *testing.T) {
	t.Parallel()

	r, err := NewRenderer(WithTemplateText("{{.Missing}}"))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	if _, err := r.Render(newRecord(), RenderOptions{}); !errors.Is(err, ErrTemplateExecute) {
		t.Errorf("Render() error = %v, want ErrTemplateExecute", err)
	}
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	rec := Parse(sampleResume)
	got := RenderHTML(rec, "", "Label")
	want := mustRender(t, rec, RenderOptions{TargetLabel: "Label"})
	if got != want {
		t.Error("RenderHTML() differs from Renderer.Render with the same inputs")
	}
}

// ---------------------------------------------------------------------------
// TestHelpers
// ---------------------------------------------------------------------------

func TestHead(t *testing.T) {
	t.Parallel()

	if got := head([]string{"a", "b", "c"}, 2); len(got) != 2 {
		t.Errorf("head() len = %d, want 2", len(got))
	}
	if got := head([]string{"a"}, 4); len(got) != 1 {
		t.Errorf("head() len = %d, want 1", len(got))
	}
	if got := head([]string{}, 4); got == nil {
		t.Error("head() of empty slice should stay non-nil")
	}
}
