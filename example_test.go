package resume_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-resume"
)

const exampleMarkdown = `# Jane Doe
**iOS Engineer**
jane@example.com

## Core Skills
- Swift
- SwiftUI

## Experience
### Senior Engineer
**Acme | 2020-2023**
- Shipped the app
`

// Example demonstrates rendering a resume to HTML.
// For PDF output, leave HTMLOnly false (requires Chrome or weasyprint).
func Example() {
	conv, err := resume.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), resume.Input{
		Markdown:    exampleMarkdown,
		TargetLabel: "Staff iOS Engineer",
		HTMLOnly:    true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(string(result.HTML), "iOS Engineer Resume") {
		fmt.Println("HTML generated for", result.Record.Name)
	}
	// Output: HTML generated for Jane Doe
}

// ExampleParse shows the structured record extracted from markdown.
func ExampleParse() {
	rec := resume.Parse(exampleMarkdown)

	fmt.Println(rec.Name, "/", rec.Role)
	fmt.Println(rec.Contacts)
	fmt.Println(rec.Skills)
	fmt.Println(rec.Experience[0].Title, "-", rec.Experience[0].Meta)
	// Output:
	// Jane Doe / iOS Engineer
	// [jane@example.com]
	// [Swift SwiftUI]
	// Senior Engineer - Acme | 2020-2023
}

// ExampleClassifySection shows how section headings are routed.
func ExampleClassifySection() {
	for _, name := range []string{"Professional Summary", "Core Skills", "Role Alignment", "Project Highlights", "Education"} {
		fmt.Println(name, "=>", resume.ClassifySection(name))
	}
	// Output:
	// Professional Summary => summary
	// Core Skills => skills
	// Role Alignment => role-alignment
	// Project Highlights => project-group
	// Education => other
}

// ExampleRenderHTML renders with the built-in template and no options.
func ExampleRenderHTML() {
	out := resume.RenderHTML(resume.Parse(exampleMarkdown), "", "")

	fmt.Println(strings.Contains(out, "<title>Jane Doe - Resume</title>"))
	fmt.Println(strings.Contains(out, "dummyimage.com"))
	// Output:
	// true
	// true
}
