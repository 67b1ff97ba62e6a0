package resume

import "strings"

// Record is the structured form of a markdown resume.
// Parse always returns every field populated: strings may be empty and
// slices may have no elements, but slices are never nil.
type Record struct {
	Name        string   `yaml:"name" json:"name"`
	Role        string   `yaml:"role" json:"role"`
	Contacts    []string `yaml:"contacts" json:"contacts"`
	Summary     string   `yaml:"summary" json:"summary"`
	Skills      []string `yaml:"skills" json:"skills"`
	Experience  []Item   `yaml:"experience" json:"experience"`
	Projects    []Item   `yaml:"projects" json:"projects"`
	Fit         []string `yaml:"fit" json:"fit"`
	ImageFromMD string   `yaml:"imageFromMd" json:"imageFromMd"`
}

// Item is one "### " entry: a position, a project or a highlight.
type Item struct {
	Title    string   `yaml:"title" json:"title"`
	Meta     string   `yaml:"meta" json:"meta"`
	Subtitle string   `yaml:"subtitle" json:"subtitle"`
	Bullets  []string `yaml:"bullets" json:"bullets"`
}

func newRecord() Record {
	return Record{
		Contacts:   []string{},
		Skills:     []string{},
		Experience: []Item{},
		Projects:   []Item{},
		Fit:        []string{},
	}
}

// SectionKind classifies a "## " section by the content it collects.
type SectionKind int

const (
	SectionOther SectionKind = iota
	SectionSummary
	SectionSkills
	SectionRoleAlignment
	SectionProjectGroup
)

func (k SectionKind) String() string {
	switch k {
	case SectionSummary:
		return "summary"
	case SectionSkills:
		return "skills"
	case SectionRoleAlignment:
		return "role-alignment"
	case SectionProjectGroup:
		return "project-group"
	default:
		return "other"
	}
}

// Section names matched exactly, after lower-casing.
const (
	summarySection = "professional summary"
	skillsSection  = "core skills"
)

// ClassifySection maps a "## " heading text to its SectionKind.
// Matching is case-insensitive: "professional summary" and "core skills"
// must match exactly, "role alignment", "project" and "highlight" may
// appear anywhere in the name. When several rules match, the earlier
// kind in the list Summary, Skills, RoleAlignment, ProjectGroup wins.
func ClassifySection(name string) SectionKind {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case name == summarySection:
		return SectionSummary
	case name == skillsSection:
		return SectionSkills
	case strings.Contains(name, "role alignment"):
		return SectionRoleAlignment
	case routesToProjects(name):
		return SectionProjectGroup
	default:
		return SectionOther
	}
}

// ItemTarget reports where "### " items under the named section go:
// true for Record.Projects, false for Record.Experience.
// A section such as "Role Alignment Projects" collects fit bullets and
// still routes its items to projects, so this is checked independently
// of ClassifySection's precedence.
func ItemTarget(name string) (toProjects bool) {
	return routesToProjects(strings.ToLower(strings.TrimSpace(name)))
}

func routesToProjects(lower string) bool {
	return strings.Contains(lower, "project") || strings.Contains(lower, "highlight")
}
