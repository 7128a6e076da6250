package resumedoc

import (
	"strings"

	"resume-builder/internal/domain"
)

// sectionTracker holds the single current top-level section. There is no
// stack: only a header line changes it.
type sectionTracker struct {
	current Section
}

func (t *sectionTracker) enter(s Section) { t.current = s }

// cursor points at the entity currently receiving field lines: a kind plus
// an index into the record's list of that kind. The zero value is "none".
type cursor struct {
	kind  EntityKind
	index int
}

func (c cursor) is(k EntityKind) bool { return k != EntityNone && c.kind == k }

// builder mutates the in-progress record as classified lines arrive.
type builder struct {
	rec     *domain.ResumeRecord
	section sectionTracker
	cur     cursor
}

func newBuilder() *builder {
	return &builder{rec: domain.NewResumeRecord()}
}

// enterSection switches section and closes whatever entity was open.
func (b *builder) enterSection(s Section) {
	b.section.enter(s)
	b.cur = cursor{}
}

// open appends a zero entity of kind k, makes it current and applies the
// marker's own key/value to it.
func (b *builder) open(k EntityKind, key, value string) {
	r := b.rec
	switch k {
	case EntitySkillGroup:
		r.Skills = append(r.Skills, domain.SkillGroup{})
		b.cur = cursor{kind: k, index: len(r.Skills) - 1}
	case EntityExperience:
		r.Experience = append(r.Experience, domain.Experience{})
		b.cur = cursor{kind: k, index: len(r.Experience) - 1}
	case EntityEducation:
		r.Education = append(r.Education, domain.Education{})
		b.cur = cursor{kind: k, index: len(r.Education) - 1}
	case EntityAward:
		r.Awards = append(r.Awards, domain.Award{})
		b.cur = cursor{kind: k, index: len(r.Awards) - 1}
	case EntityCertification:
		r.Certifications = append(r.Certifications, domain.Certification{})
		b.cur = cursor{kind: k, index: len(r.Certifications) - 1}
	case EntityPublication:
		r.Publications = append(r.Publications, domain.Publication{})
		b.cur = cursor{kind: k, index: len(r.Publications) - 1}
	default:
		b.cur = cursor{}
		return
	}
	b.setField(key, value)
}

// setContact applies a contact block field. Unknown keys are dropped.
func (b *builder) setContact(key, value string) bool {
	c := &b.rec.Contact
	switch key {
	case "email":
		c.Email = value
	case "phone":
		c.Phone = value
	case "location":
		c.Location = value
	default:
		return c.SetLink(key, value)
	}
	return true
}

func (b *builder) appendSummary(text string) {
	if text == "" {
		return
	}
	if b.rec.Contact.Summary == "" {
		b.rec.Contact.Summary = text
		return
	}
	b.rec.Contact.Summary += " " + text
}

// setField applies key/value to the open entity. It reports false when no
// entity is open or the key is not a field of that entity.
func (b *builder) setField(key, value string) bool {
	r := b.rec
	switch b.cur.kind {
	case EntitySkillGroup:
		g := &r.Skills[b.cur.index]
		switch key {
		case "category":
			g.Category = value
		case "items":
			g.Items = splitItems(value)
		default:
			return false
		}
	case EntityExperience:
		e := &r.Experience[b.cur.index]
		switch key {
		case "company":
			e.Company = value
		case "position", "title":
			e.Position = value
		case "company_url":
			e.CompanyURL = value
		case "company_description":
			e.CompanyDescription = value
		case "location":
			e.Location = value
		case "start_date":
			e.StartDate = ToCanonical(value)
		case "end_date":
			e.EndDate = endDate(value)
		default:
			return false
		}
	case EntityEducation:
		e := &r.Education[b.cur.index]
		switch key {
		case "institution":
			e.Institution = value
		case "degree":
			e.Degree = value
		case "field", "area":
			e.Field = value
		case "location":
			e.Location = value
		case "start_date":
			e.StartDate = ToCanonical(value)
		case "end_date":
			e.EndDate = endDate(value)
		default:
			return false
		}
	case EntityAward:
		a := &r.Awards[b.cur.index]
		switch key {
		case "title":
			a.Title = value
		case "organization":
			a.Organization = value
		case "organization_detail":
			a.OrganizationDetail = value
		case "organization_url":
			a.OrganizationURL = value
		case "location":
			a.Location = value
		case "date":
			a.Date = ToCanonical(value)
		default:
			return false
		}
	case EntityCertification:
		c := &r.Certifications[b.cur.index]
		switch key {
		case "title":
			c.Title = value
		case "organization":
			c.Organization = value
		case "url":
			c.URL = value
		case "date":
			c.Date = ToCanonical(value)
		default:
			return false
		}
	case EntityPublication:
		p := &r.Publications[b.cur.index]
		switch key {
		case "authors":
			p.Authors = value
		case "title":
			p.Title = value
		case "venue":
			p.Venue = value
		case "date", "year":
			p.Year = ToCanonical(value)
		case "url":
			p.URL = value
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// addAchievements appends to the open experience, if any.
func (b *builder) addAchievements(items []domain.Achievement) bool {
	if !b.cur.is(EntityExperience) {
		return false
	}
	e := &b.rec.Experience[b.cur.index]
	e.Achievements = append(e.Achievements, items...)
	return true
}

// endDate keeps the ongoing sentinel, whatever its case, and canonicalizes
// everything else.
func endDate(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), domain.Present) {
		return domain.Present
	}
	return ToCanonical(v)
}
