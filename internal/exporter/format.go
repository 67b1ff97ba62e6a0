package exporter

import (
	"fmt"
	"slices"
	"strings"
)

// Format is an export target.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// ParseFormats parses a comma-separated, case-insensitive format list such
// as "docx,pdf". Blank entries and duplicates are ignored. The result is
// in export order: DOCX before PDF, so PDF can convert from the DOCX.
func ParseFormats(s string) ([]Format, error) {
	seen := map[Format]bool{}
	var unknown []string
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))
		switch f {
		case "":
			continue
		case FormatDOCX, FormatPDF:
			seen[f] = true
		default:
			unknown = append(unknown, string(f))
		}
	}

	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, strings.Join(slices.Compact(unknown), ", "))
	}

	formats := []Format{}
	for _, f := range []Format{FormatDOCX, FormatPDF} {
		if seen[f] {
			formats = append(formats, f)
		}
	}
	return formats, nil
}
