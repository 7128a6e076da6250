package resumedoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name    string
		line    string
		section Section
		open    EntityKind

		wantKind   LineKind
		wantRule   string
		wantKey    string
		wantValue  string
		wantEntity EntityKind
	}{
		{name: "blank", line: "   ", wantKind: LineBlank},
		{name: "name", line: "name: Jane Doe", wantKind: LineName, wantRule: "name", wantKey: "name", wantValue: "Jane Doe"},
		{name: "header", line: "awards:", section: SectionSkills, wantKind: LineSection, wantRule: "section.awards", wantKey: "awards"},
		{name: "contact field", line: "  email: jane@example.com", section: SectionContact,
			wantKind: LineContactField, wantRule: "contact.field", wantKey: "email", wantValue: "jane@example.com"},
		{name: "quoted value", line: `  phone: "+1 555 0100"`, section: SectionContact,
			wantKind: LineContactField, wantRule: "contact.field", wantKey: "phone", wantValue: "+1 555 0100"},
		{name: "summary text", line: "    some words: with a colon", section: SectionSummary,
			wantKind: LineSummaryText, wantRule: "summary.text", wantValue: "some words: with a colon"},
		{name: "award marker", line: "  - title: Best Paper", section: SectionAwards,
			wantKind: LineEntityStart, wantRule: "awards.start", wantKey: "title", wantValue: "Best Paper", wantEntity: EntityAward},
		{name: "certification marker", line: "  - title: CKA", section: SectionCertifications,
			wantKind: LineEntityStart, wantRule: "certifications.start", wantKey: "title", wantValue: "CKA", wantEntity: EntityCertification},
		{name: "title is not a publication marker", line: "  - title: Paper", section: SectionPublications,
			wantKind: LineUnrecognized, wantKey: "title", wantValue: "Paper"},
		{name: "field without open entity", line: "    organization: ICMLA", section: SectionAwards,
			wantKind: LineUnrecognized, wantKey: "organization", wantValue: "ICMLA"},
		{name: "field of open entity", line: "    organization: ICMLA", section: SectionAwards, open: EntityAward,
			wantKind: LineEntityField, wantRule: "awards.field", wantKey: "organization", wantValue: "ICMLA"},
		{name: "field at wrong depth", line: "      organization: ICMLA", section: SectionAwards, open: EntityAward,
			wantKind: LineUnrecognized, wantKey: "organization", wantValue: "ICMLA"},
		{name: "skill items before generic field", line: "    items: Go, Rust", section: SectionSkills, open: EntitySkillGroup,
			wantKind: LineSkillItems, wantRule: "skills.items", wantKey: "items", wantValue: "Go, Rust"},
		{name: "achievements header", line: "    achievements:", section: SectionExperience, open: EntityExperience,
			wantKind: LineAchievements, wantRule: "experience.achievements", wantKey: "achievements"},
		{name: "colon without space is not a key", line: "  website:https://x.dev", section: SectionContact,
			wantKind: LineUnrecognized, wantValue: "website:https://x.dev"},
		{name: "tab indentation", line: "\temail: a@b.c", section: SectionContact, wantKind: LineUnrecognized},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Classify(tc.line, tc.section, tc.open)
			assert.Equal(t, tc.wantKind, c.Kind)
			assert.Equal(t, tc.wantRule, c.Rule)
			if tc.wantKind == LineBlank || tc.line[0] == '\t' {
				return
			}
			assert.Equal(t, tc.wantKey, c.Key)
			assert.Equal(t, tc.wantValue, c.Value)
			assert.Equal(t, tc.wantEntity, c.Entity)
		})
	}
}

func TestClassifySummaryKeepsWholeLine(t *testing.T) {
	c := Classify("    some words: with a colon", SectionSummary, EntityNone)
	assert.Equal(t, LineSummaryText, c.Kind)
	assert.Equal(t, "some words: with a colon", c.Value)
}

func TestRuleTableOrder(t *testing.T) {
	// The specific rows of a section must precede its generic field row.
	index := map[string]int{}
	for i, r := range rules {
		index[r.name] = i
	}
	assert.Less(t, index["skills.items"], index["skills.field"])
	assert.Less(t, index["experience.achievements"], index["experience.field"])
	assert.Less(t, index["name"], index["contact.field"])
}

func TestCleanValue(t *testing.T) {
	assert.Equal(t, "plain", cleanValue("  plain "))
	assert.Equal(t, "a \"b\"", cleanValue(`"a \"b\""`))
	assert.Equal(t, "it's", cleanValue(`'it''s'`))
	assert.Equal(t, `"`, cleanValue(`"`))
}

func TestSectionString(t *testing.T) {
	assert.Equal(t, "publications", SectionPublications.String())
	assert.Equal(t, "award", EntityAward.String())
	assert.Equal(t, "entity_start", LineEntityStart.String())
	assert.Equal(t, "section(42)", Section(42).String())
}
