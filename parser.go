package resume

import (
	"strings"

	"github.com/alnah/go-resume/internal/pipeline"
)

// lineKind tags a trimmed line for dispatch in the scanner.
type lineKind int

const (
	lineBlank lineKind = iota
	lineImage
	lineH1     // "# " while the name is unset
	lineBold   // "**...**" while the role is unset
	lineH2     // "## "
	lineH3     // "### "
	lineBullet // "- "
	lineText
)

// scanner walks the lines of a resume once, front to back.
// Item and summary rules may consume several lines; every other rule
// consumes exactly one.
type scanner struct {
	lines   []string
	pos     int
	section string // lower-cased text of the nearest "## " heading
	kind    SectionKind
	rec     Record
}

// Parse builds a Record from loosely formatted resume markdown.
//
// Parse never fails. Lines it does not recognize are dropped, including
// body text under a "## " section that is not summary, skills or role
// alignment; "### " items are kept under any section.
func Parse(markdown string) Record {
	raw := strings.Split(pipeline.NormalizeSource(markdown), "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}

	s := &scanner{lines: lines, rec: newRecord()}
	s.rec.ImageFromMD = firstImage(lines)
	for s.pos < len(s.lines) {
		s.step()
	}
	return s.rec
}

func (s *scanner) classify(line string) lineKind {
	switch {
	case line == "":
		return lineBlank
	case isImage(line):
		return lineImage
	case strings.HasPrefix(line, "# ") && s.rec.Name == "":
		return lineH1
	case isBold(line) && s.rec.Role == "":
		return lineBold
	case strings.HasPrefix(line, "## "):
		return lineH2
	case strings.HasPrefix(line, "### "):
		return lineH3
	case strings.HasPrefix(line, "- "):
		return lineBullet
	default:
		return lineText
	}
}

func (s *scanner) step() {
	line := s.lines[s.pos]
	kind := s.classify(line)

	switch kind {
	case lineBlank, lineImage:
		s.pos++
	case lineH1:
		s.rec.Name = strings.TrimSpace(line[2:])
		s.pos++
	case lineBold:
		s.rec.Role = strings.TrimSpace(strings.Trim(line, "*"))
		s.pos++
	case lineH2:
		s.section = strings.ToLower(strings.TrimSpace(line[3:]))
		s.kind = ClassifySection(s.section)
		s.pos++
	case lineH3:
		s.item(strings.TrimSpace(line[4:]))
	default:
		s.body(line, kind == lineBullet)
	}
}

// body handles a line that carries content rather than structure.
func (s *scanner) body(line string, isBullet bool) {
	switch {
	case s.kind == SectionSummary:
		s.summary()
		return
	case s.kind == SectionSkills && isBullet:
		s.rec.Skills = append(s.rec.Skills, strings.TrimSpace(line[2:]))
	case s.kind == SectionRoleAlignment && isBullet:
		s.rec.Fit = append(s.rec.Fit, strings.TrimSpace(line[2:]))
	case s.section == "" && !strings.HasPrefix(line, "#"):
		s.contact(line)
	}
	s.pos++
}

// summary collects the current line and the following lines up to a blank
// line or heading. A later run replaces an earlier one.
func (s *scanner) summary() {
	parts := []string{s.lines[s.pos]}
	s.pos++
	for s.pos < len(s.lines) {
		next := s.lines[s.pos]
		if next == "" || isHeading(next) {
			break
		}
		parts = append(parts, next)
		s.pos++
	}
	s.rec.Summary = strings.TrimSpace(strings.Join(parts, " "))
}

// contact appends a pre-section line, without a trailing hard-break
// backslash, unless the same text is already present.
func (s *scanner) contact(line string) {
	c := strings.TrimSpace(strings.TrimSuffix(line, `\`))
	if c == "" {
		return
	}
	for _, existing := range s.rec.Contacts {
		if existing == c {
			return
		}
	}
	s.rec.Contacts = append(s.rec.Contacts, c)
}

// item parses a "### " entry: optional meta, optional subtitle, bullets.
func (s *scanner) item(title string) {
	it := Item{Title: title, Bullets: []string{}}
	s.pos++

	s.skipBlank()
	if s.pos < len(s.lines) && strings.HasPrefix(s.lines[s.pos], "**") {
		it.Meta = strings.TrimSpace(strings.ReplaceAll(s.lines[s.pos], "**", ""))
		s.pos++
	}

	if s.pos < len(s.lines) {
		next := s.lines[s.pos]
		if next != "" && !strings.HasPrefix(next, "-") && !isHeading(next) {
			it.Subtitle = next
			s.pos++
		}
	}

	for s.pos < len(s.lines) {
		next := s.lines[s.pos]
		if isHeading(next) {
			break
		}
		if strings.HasPrefix(next, "- ") {
			it.Bullets = append(it.Bullets, strings.TrimSpace(next[2:]))
		}
		s.pos++
	}

	if ItemTarget(s.section) {
		s.rec.Projects = append(s.rec.Projects, it)
	} else {
		s.rec.Experience = append(s.rec.Experience, it)
	}
}

func (s *scanner) skipBlank() {
	for s.pos < len(s.lines) && s.lines[s.pos] == "" {
		s.pos++
	}
}

// firstImage returns the target of the first "![alt](target)" line.
func firstImage(lines []string) string {
	for _, l := range lines {
		if isImage(l) {
			start := strings.Index(l, "](") + 2
			return l[start : len(l)-1]
		}
	}
	return ""
}

func isImage(line string) bool {
	return strings.HasPrefix(line, "![") && strings.Contains(line, "](") && strings.HasSuffix(line, ")")
}

func isBold(line string) bool {
	return strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**")
}

// isHeading reports whether line is an ATX heading: one to six '#'
// followed by a space.
func isHeading(line string) bool {
	n := 0
	for n < len(line) && n < 7 && line[n] == '#' {
		n++
	}
	return n >= 1 && n <= 6 && n < len(line) && line[n] == ' '
}
