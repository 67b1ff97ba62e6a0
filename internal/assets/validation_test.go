package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"simple", "compact", nil},
		{"hyphen and digits", "two-col-2", nil},
		{"empty", "", ErrInvalidAssetName},
		{"slash", "a/b", ErrInvalidAssetName},
		{"backslash", `a\b`, ErrInvalidAssetName},
		{"dot", "resume.html", ErrInvalidAssetName},
		{"traversal", "..", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateAssetName(tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
