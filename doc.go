// Package resume turns a loosely formatted markdown resume into a styled,
// print-ready HTML page and PDF.
//
// # Quick Start
//
//	conv, err := resume.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, resume.Input{
//	    Markdown:  string(md),
//	    SourceDir: filepath.Dir(path), // for a relative profile image
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("resume.pdf", result.PDF, 0o644)
//
// # Pipeline
//
//  1. Parse: a single forward scan builds a Record (name, role, contacts,
//     summary, skills, experience, projects, role fit, profile image).
//  2. Render: html/template projects the Record into a two-column A4 page
//     with an embedded stylesheet.
//  3. Rewrite: relative img/a/link references become file:// URLs under
//     Input.SourceDir.
//  4. Print: headless Chrome (go-rod) or the weasyprint CLI.
//
// Parse and RenderHTML are pure and can be used on their own:
//
//	rec := resume.Parse(md)
//	page := resume.RenderHTML(rec, "", "Target: Staff iOS Engineer")
//
// # Markdown Shape
//
//	# Jane Doe                      name (first "# " heading)
//	**Senior iOS Engineer**         role (first bold-only line)
//	jane@example.com \              contacts (lines before any "## ")
//	## Professional Summary         summary (first line run)
//	## Core Skills                  skills ("- " lines)
//	## Experience                   "### " items go to Experience
//	### Staff Engineer
//	**Acme | 2020-2024**            item meta
//	Remote                          item subtitle
//	- Shipped ...                   item bullets
//	## Project Highlights           "### " items go to Projects
//	## Role Alignment               fit ("- " lines)
//
// Content under any other "## " heading is ignored, except "### " items.
package resume
