package yamlutil_test

// Notes:
// - Marshal error branch: not tested because yaml.Marshal only fails with
//   unmarshalable types (channels, functions), which no caller passes.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-resume/internal/yamlutil"
)

type testProfile struct {
	Name   string   `yaml:"name"`
	Skills []string `yaml:"skills"`
	Remote bool     `yaml:"remote"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{
			name: "known fields only",
			data: []byte("name: Jane Doe\nskills: [Go, SQL]\nremote: true"),
			dest: &testProfile{},
		},
		{
			name:    "unknown field causes error",
			data:    []byte("name: test\nnickname: value"),
			dest:    &testProfile{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &testProfile{},
			wantErr: yamlutil.ErrEmptyInput,
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testProfile{},
			wantErr: yamlutil.ErrEmptyInput,
		},
		{
			name:    "nil destination",
			data:    []byte("name: test"),
			dest:    nil,
			wantErr: yamlutil.ErrNilTarget,
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("name: [unclosed"),
			dest:    &testProfile{},
			wantErr: errors.New("yamlutil:"), // partial match
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			checkErr(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Serializes Go structs to YAML
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := yamlutil.Marshal(&testProfile{Name: "Jane", Skills: []string{"Swift", "SwiftUI"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := string(data)
	for _, want := range []string{"name: Jane", "  - Swift", "  - SwiftUI", "remote: false"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q, got:\n%s", want, s)
		}
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Note: This test modifies the global MaxInputSize variable, so it cannot
// run in parallel with other tests.

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	yamlutil.MaxInputSize = 50
	data := []byte("name: " + strings.Repeat("x", 94))

	var p testProfile
	err := yamlutil.UnmarshalStrict(data, &p)
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
	}
	if !strings.Contains(err.Error(), "100 bytes") || !strings.Contains(err.Error(), "max 50") {
		t.Errorf("error should contain sizes, got: %s", err)
	}
}

func checkErr(t *testing.T, err, wantErr error) {
	t.Helper()

	if wantErr == nil {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", wantErr)
	}
	if errors.Is(err, wantErr) {
		return
	}
	if !strings.Contains(err.Error(), wantErr.Error()) {
		t.Fatalf("error = %q, want containing %q", err, wantErr)
	}
}
