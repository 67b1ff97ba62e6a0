package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML - Document generation
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         []GoldmarkOption
		markdown     string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "document shell with default title",
			markdown:     "# Jane Doe",
			wantContains: []string{"<!DOCTYPE html>", "<title>Resume</title>", "<h1>Jane Doe</h1>"},
		},
		{
			name:         "custom title escaped",
			opts:         []GoldmarkOption{WithTitle("Jane <Doe>")},
			markdown:     "x",
			wantContains: []string{"<title>Jane &lt;Doe&gt;</title>"},
		},
		{
			name:         "gfm table",
			markdown:     "| a | b |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "raw html not passed through",
			markdown:     "<script>alert(1)</script>",
			wantExcludes: []string{"<script>"},
		},
		{
			name:         "fenced code highlighted with classes",
			markdown:     "```go\nfunc main() {}\n```",
			wantContains: []string{`class="chroma"`},
		},
		{
			name:         "hard wraps",
			markdown:     "line one\nline two",
			wantContains: []string{"line one<br />"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewGoldmarkConverter(tt.opts...)
			got, err := c.ToHTML(context.Background(), tt.markdown)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %s", want, got)
				}
			}
			for _, bad := range tt.wantExcludes {
				if strings.Contains(got, bad) {
					t.Errorf("output should not contain %q\ngot: %s", bad, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
