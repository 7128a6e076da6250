package resumedoc

import (
	"regexp"
	"strconv"
	"strings"
)

// Section is a top-level block of the document.
type Section int

const (
	SectionNone Section = iota
	SectionName
	SectionContact
	SectionSummary
	SectionSkills
	SectionExperience
	SectionEducation
	SectionAwards
	SectionCertifications
	SectionPublications
)

var sectionNames = [...]string{"none", "name", "contact", "summary", "skills", "experience", "education", "awards", "certifications", "publications"}

func (s Section) String() string {
	if int(s) < len(sectionNames) {
		return sectionNames[s]
	}
	return "section(" + strconv.Itoa(int(s)) + ")"
}

// EntityKind names the list entities a section can hold.
type EntityKind int

const (
	EntityNone EntityKind = iota
	EntitySkillGroup
	EntityExperience
	EntityEducation
	EntityAward
	EntityCertification
	EntityPublication
)

var entityNames = [...]string{"none", "skill_group", "experience", "education", "award", "certification", "publication"}

func (k EntityKind) String() string {
	if int(k) < len(entityNames) {
		return entityNames[k]
	}
	return "entity(" + strconv.Itoa(int(k)) + ")"
}

// LineKind is the classification tag of one input line.
type LineKind int

const (
	LineUnrecognized LineKind = iota
	LineBlank
	LineName
	LineSection
	LineContactField
	LineSummaryText
	LineEntityStart
	LineEntityField
	LineSkillItems
	LineAchievements
)

var lineKindNames = [...]string{"unrecognized", "blank", "name", "section", "contact_field", "summary_text", "entity_start", "entity_field", "skill_items", "achievements"}

func (k LineKind) String() string {
	if int(k) < len(lineKindNames) {
		return lineKindNames[k]
	}
	return "line(" + strconv.Itoa(int(k)) + ")"
}

// Classification is the result of matching one line against the rule table.
type Classification struct {
	Kind   LineKind
	Rule   string
	Indent int
	Dashed bool
	Key    string
	Value  string
	// Section is the section a header line switches to.
	Section Section
	// Entity is the kind an entity-start line opens.
	Entity EntityKind
}

// rule is one row of the classification table. Rows are evaluated in order
// and the first match wins.
type rule struct {
	name   string
	indent int
	// deeper matches any indent >= indent instead of exactly indent.
	deeper bool
	dashed bool
	// text rows match any non-blank content, keyed or not.
	text    bool
	key     string
	section Section
	open    EntityKind
	kind    LineKind
	to      Section
	entity  EntityKind
}

var rules = []rule{
	{name: "name", indent: 0, key: "name", kind: LineName, to: SectionName},
	{name: "section.contact", indent: 0, key: "contact", kind: LineSection, to: SectionContact},
	{name: "section.summary", indent: 0, key: "summary", kind: LineSection, to: SectionSummary},
	{name: "section.skills", indent: 0, key: "skills", kind: LineSection, to: SectionSkills},
	{name: "section.experience", indent: 0, key: "experience", kind: LineSection, to: SectionExperience},
	{name: "section.education", indent: 0, key: "education", kind: LineSection, to: SectionEducation},
	{name: "section.awards", indent: 0, key: "awards", kind: LineSection, to: SectionAwards},
	{name: "section.certifications", indent: 0, key: "certifications", kind: LineSection, to: SectionCertifications},
	{name: "section.publications", indent: 0, key: "publications", kind: LineSection, to: SectionPublications},

	{name: "contact.field", indent: 2, section: SectionContact, kind: LineContactField},
	{name: "summary.text", indent: 2, deeper: true, text: true, section: SectionSummary, kind: LineSummaryText},

	{name: "skills.start", indent: 2, dashed: true, key: "category", section: SectionSkills, kind: LineEntityStart, entity: EntitySkillGroup},
	{name: "skills.items", indent: 4, key: "items", section: SectionSkills, open: EntitySkillGroup, kind: LineSkillItems},
	{name: "skills.field", indent: 4, section: SectionSkills, open: EntitySkillGroup, kind: LineEntityField},

	{name: "experience.start", indent: 2, dashed: true, key: "company", section: SectionExperience, kind: LineEntityStart, entity: EntityExperience},
	{name: "experience.achievements", indent: 4, key: "achievements", section: SectionExperience, open: EntityExperience, kind: LineAchievements},
	{name: "experience.field", indent: 4, section: SectionExperience, open: EntityExperience, kind: LineEntityField},

	{name: "education.start", indent: 2, dashed: true, key: "institution", section: SectionEducation, kind: LineEntityStart, entity: EntityEducation},
	{name: "education.field", indent: 4, section: SectionEducation, open: EntityEducation, kind: LineEntityField},

	{name: "awards.start", indent: 2, dashed: true, key: "title", section: SectionAwards, kind: LineEntityStart, entity: EntityAward},
	{name: "awards.field", indent: 4, section: SectionAwards, open: EntityAward, kind: LineEntityField},

	{name: "certifications.start", indent: 2, dashed: true, key: "title", section: SectionCertifications, kind: LineEntityStart, entity: EntityCertification},
	{name: "certifications.field", indent: 4, section: SectionCertifications, open: EntityCertification, kind: LineEntityField},

	{name: "publications.start", indent: 2, dashed: true, key: "authors", section: SectionPublications, kind: LineEntityStart, entity: EntityPublication},
	{name: "publications.field", indent: 4, section: SectionPublications, open: EntityPublication, kind: LineEntityField},
}

var keyRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// rawLine is a line split into indentation, list marker, key and value.
type rawLine struct {
	indent int
	blank  bool
	dashed bool
	hasKey bool
	key    string
	value  string
}

func splitLine(line string) rawLine {
	line = strings.TrimRight(line, " \t\r")
	if strings.TrimSpace(line) == "" {
		return rawLine{blank: true}
	}
	indent := len(line) - len(strings.TrimLeft(line, " "))
	content := line[indent:]
	out := rawLine{indent: indent}
	if content == "-" || strings.HasPrefix(content, "- ") {
		out.dashed = true
		content = strings.TrimSpace(strings.TrimPrefix(content, "-"))
	}
	idx := strings.Index(content, ":")
	if idx <= 0 || (idx+1 < len(content) && content[idx+1] != ' ') {
		out.value = content
		return out
	}
	key := content[:idx]
	if !keyRe.MatchString(key) {
		out.value = content
		return out
	}
	out.hasKey = true
	out.key = key
	out.value = cleanValue(content[idx+1:])
	return out
}

// cleanValue trims a scalar and strips one layer of surrounding quotes.
func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	if len(v) < 2 {
		return v
	}
	switch {
	case v[0] == '"' && v[len(v)-1] == '"':
		if s, err := strconv.Unquote(v); err == nil {
			return s
		}
		return v[1 : len(v)-1]
	case v[0] == '\'' && v[len(v)-1] == '\'':
		return strings.ReplaceAll(v[1:len(v)-1], "''", "'")
	}
	return v
}

func (r rule) matches(l rawLine, section Section, open EntityKind) bool {
	if r.deeper {
		if l.indent < r.indent {
			return false
		}
	} else if l.indent != r.indent {
		return false
	}
	if l.dashed != r.dashed && !r.text {
		return false
	}
	if r.section != SectionNone && r.section != section {
		return false
	}
	if r.open != EntityNone && r.open != open {
		return false
	}
	if r.text {
		return true
	}
	if !l.hasKey {
		return false
	}
	return r.key == "" || r.key == l.key
}

// Classify matches one raw line against the rule table given the current
// section and the kind of the open entity.
func Classify(line string, section Section, open EntityKind) Classification {
	l := splitLine(line)
	c := Classification{Indent: l.indent, Dashed: l.dashed, Key: l.key, Value: l.value}
	if l.blank {
		c.Kind = LineBlank
		return c
	}
	for _, r := range rules {
		if !r.matches(l, section, open) {
			continue
		}
		c.Kind = r.kind
		c.Rule = r.name
		c.Section = r.to
		c.Entity = r.entity
		if r.text {
			c.Value = strings.TrimSpace(line)
		}
		return c
	}
	c.Kind = LineUnrecognized
	return c
}

// indentOf counts leading spaces; blank lines report -1.
func indentOf(line string) int {
	l := splitLine(line)
	if l.blank {
		return -1
	}
	return l.indent
}
