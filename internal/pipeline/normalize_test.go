package pipeline

import (
	"context"
	"testing"
)

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, in, want string
	}{
		{"crlf", "a\r\nb\r\n", "a\nb\n"},
		{"bare cr", "a\rb", "a\nb"},
		{"mixed", "a\r\nb\rc\nd", "a\nb\nc\nd"},
		{"unchanged", "a\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeLineEndings(tt.in); got != tt.want {
				t.Errorf("NormalizeLineEndings(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeSource_DropsInvalidUTF8(t *testing.T) {
	t.Parallel()

	got := NormalizeSource("Jos\xff\xfee\r\nDoe")
	if got != "Jose\nDoe" {
		t.Errorf("NormalizeSource() = %q, want %q", got, "Jose\nDoe")
	}
}

func TestCommonMarkPreprocessor(t *testing.T) {
	t.Parallel()

	p := &CommonMarkPreprocessor{}
	got := p.PreprocessMarkdown(context.Background(), "# A\r\n\r\n\r\n\r\nB")
	if got != "# A\n\nB" {
		t.Errorf("PreprocessMarkdown() = %q, want %q", got, "# A\n\nB")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := p.PreprocessMarkdown(ctx, "a\r\nb"); got != "a\r\nb" {
		t.Errorf("expected unchanged content on cancelled context, got %q", got)
	}
}
