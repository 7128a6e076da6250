package resumedoc

import (
	"strconv"
	"strings"

	"resume-builder/internal/domain"
)

// textWriter emits the indentation-based format. Every line it writes is
// one the classifier reads back into the same field.
type textWriter struct {
	sb strings.Builder
}

func (w *textWriter) header(key string) {
	w.sb.WriteString(key)
	w.sb.WriteString(":\n")
}

func (w *textWriter) line(indent int, dashed bool, key, value string) {
	w.sb.WriteString(strings.Repeat(" ", indent))
	if dashed {
		w.sb.WriteString("- ")
	}
	w.sb.WriteString(key)
	w.sb.WriteByte(':')
	if value != "" {
		w.sb.WriteByte(' ')
		w.sb.WriteString(quoteValue(value))
	}
	w.sb.WriteByte('\n')
}

// field writes key only when value is non-empty.
func (w *textWriter) field(indent int, key, value string) {
	if value != "" {
		w.line(indent, false, key, value)
	}
}

// quoteValue quotes values that cleanValue would otherwise alter.
func quoteValue(v string) string {
	if v != strings.TrimSpace(v) || strings.ContainsAny(v, "\r\n") ||
		strings.HasPrefix(v, `"`) || strings.HasPrefix(v, "'") {
		return strconv.Quote(v)
	}
	return v
}

// textDate renders a stored date for the text format. The sentinel is
// written literally.
func textDate(v string) string {
	if v == domain.Present {
		return v
	}
	return ToAbbreviated(v)
}

// SerializeToText renders rec in the text format Parse reads. Each entity
// starts with its marker key; only non-empty fields are written.
func SerializeToText(rec *domain.ResumeRecord) string {
	if rec == nil {
		return ""
	}
	w := &textWriter{}
	if rec.Name != "" {
		w.line(0, false, "name", rec.Name)
	}

	c := rec.Contact
	contact := []struct{ key, value string }{
		{"email", c.Email}, {"phone", c.Phone}, {"location", c.Location},
	}
	for _, l := range c.Links {
		if !blank(l.URL) {
			contact = append(contact, struct{ key, value string }{l.Name, l.URL})
		}
	}
	wrote := false
	for _, kv := range contact {
		if kv.value == "" {
			continue
		}
		if !wrote {
			w.header("contact")
			wrote = true
		}
		w.line(2, false, kv.key, kv.value)
	}

	if summary := strings.Join(strings.Fields(c.Summary), " "); summary != "" {
		w.header("summary")
		w.sb.WriteString("  " + summary + "\n")
	}

	if len(rec.Skills) > 0 {
		w.header("skills")
		for _, g := range rec.Skills {
			w.line(2, true, "category", g.Category)
			w.field(4, "items", strings.Join(g.Items, ", "))
		}
	}

	if len(rec.Experience) > 0 {
		w.header("experience")
		for _, e := range rec.Experience {
			w.line(2, true, "company", e.Company)
			w.field(4, "position", e.Position)
			w.field(4, "company_url", e.CompanyURL)
			w.field(4, "company_description", e.CompanyDescription)
			w.field(4, "location", e.Location)
			w.field(4, "start_date", textDate(e.StartDate))
			w.field(4, "end_date", textDate(e.EndDate))
			if len(e.Achievements) > 0 {
				w.line(4, false, "achievements", "")
				for _, a := range e.Achievements {
					w.line(6, true, "name", a.Title)
					w.field(8, "description", a.Description)
				}
			}
		}
	}

	if len(rec.Education) > 0 {
		w.header("education")
		for _, e := range rec.Education {
			w.line(2, true, "institution", e.Institution)
			w.field(4, "degree", e.Degree)
			w.field(4, "field", e.Field)
			w.field(4, "location", e.Location)
			w.field(4, "start_date", textDate(e.StartDate))
			w.field(4, "end_date", textDate(e.EndDate))
		}
	}

	if len(rec.Awards) > 0 {
		w.header("awards")
		for _, a := range rec.Awards {
			w.line(2, true, "title", a.Title)
			w.field(4, "organization", a.Organization)
			w.field(4, "organization_detail", a.OrganizationDetail)
			w.field(4, "organization_url", a.OrganizationURL)
			w.field(4, "location", a.Location)
			w.field(4, "date", textDate(a.Date))
		}
	}

	if len(rec.Certifications) > 0 {
		w.header("certifications")
		for _, cert := range rec.Certifications {
			w.line(2, true, "title", cert.Title)
			w.field(4, "organization", cert.Organization)
			w.field(4, "url", cert.URL)
			w.field(4, "date", textDate(cert.Date))
		}
	}

	if len(rec.Publications) > 0 {
		w.header("publications")
		for _, p := range rec.Publications {
			w.line(2, true, "authors", p.Authors)
			w.field(4, "title", p.Title)
			w.field(4, "venue", p.Venue)
			w.field(4, "date", textDate(p.Year))
			w.field(4, "url", p.URL)
		}
	}
	return w.sb.String()
}
