package resumedoc

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/slice"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

// now is the clock used for the publication year fallback.
var now = time.Now

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// transportDate renders a record date for the transport: Present passes
// through literally, everything else goes to "Mon YYYY".
func transportDate(v string) string {
	if v == domain.Present {
		return v
	}
	return ToAbbreviated(v)
}

func publicationYear(v string) model.Year {
	if y, ok := yearOf(v); ok {
		return model.Year(y)
	}
	return model.Year(now().Year())
}

// ToTransport assembles the JSON shape sent to the generation service.
// Blank links are omitted, as are experience entries without company and
// position and education entries without institution and degree.
func ToTransport(rec *domain.ResumeRecord) model.Resume {
	if rec == nil {
		rec = domain.NewResumeRecord()
	}
	return model.Resume{
		Name: rec.Name,
		Contact: model.Contact{
			Phone:    rec.Contact.Phone,
			Email:    rec.Contact.Email,
			Location: rec.Contact.Location,
			Links: slice.FilterMap(rec.Contact.Links, func(idx int, src domain.Link) (model.Link, bool) {
				return model.Link{Name: src.Name, URL: strings.TrimSpace(src.URL)}, !blank(src.URL)
			}),
		},
		Summary: rec.Contact.Summary,
		Skills: slice.Map(rec.Skills, func(idx int, src domain.SkillGroup) model.SkillGroup {
			return model.SkillGroup{Category: src.Category, Items: append([]string{}, src.Items...)}
		}),
		Experience: slice.FilterMap(rec.Experience, func(idx int, src domain.Experience) (model.Experience, bool) {
			return model.Experience{
				Title:              src.Position,
				Company:            src.Company,
				CompanyURL:         src.CompanyURL,
				CompanyDescription: src.CompanyDescription,
				Location:           src.Location,
				DateStart:          transportDate(src.StartDate),
				DateEnd:            transportDate(src.EndDate),
				Achievements: slice.Map(src.Achievements, func(idx int, a domain.Achievement) model.Achievement {
					return model.Achievement{Name: a.Title, Description: a.Description}
				}),
			}, !blank(src.Company) && !blank(src.Position)
		}),
		Education: slice.FilterMap(rec.Education, func(idx int, src domain.Education) (model.Education, bool) {
			degree := src.Degree
			if !blank(src.Field) {
				degree = src.Degree + " in " + src.Field
			}
			return model.Education{
				Degree:      degree,
				Institution: src.Institution,
				Location:    src.Location,
				DateStart:   transportDate(src.StartDate),
				DateEnd:     transportDate(src.EndDate),
			}, !blank(src.Institution) && !blank(src.Degree)
		}),
		Awards: slice.Map(rec.Awards, func(idx int, src domain.Award) model.Award {
			return model.Award{
				Title:              src.Title,
				Organization:       src.Organization,
				OrganizationDetail: src.OrganizationDetail,
				OrganizationURL:    src.OrganizationURL,
				Location:           src.Location,
				Date:               transportDate(src.Date),
			}
		}),
		Certifications: slice.Map(rec.Certifications, func(idx int, src domain.Certification) model.Certification {
			return model.Certification{
				Title:        src.Title,
				Organization: src.Organization,
				URL:          src.URL,
				Date:         transportDate(src.Date),
			}
		}),
		Publications: slice.Map(rec.Publications, func(idx int, src domain.Publication) model.Publication {
			return model.Publication{
				Authors: src.Authors,
				Title:   src.Title,
				Venue:   src.Venue,
				Year:    publicationYear(src.Year),
				URL:     src.URL,
			}
		}),
	}
}

// SerializeToJSON renders the transport as indented JSON.
func SerializeToJSON(rec *domain.ResumeRecord) ([]byte, error) {
	return json.MarshalIndent(ToTransport(rec), "", "  ")
}

// ParseJSON is the alternate import path: it reads the transport shape back
// into a record. Invalid JSON, or JSON that cannot fill the shape, is a
// malformed document.
func ParseJSON(data []byte) (*domain.ResumeRecord, error) {
	var in model.Resume
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, malformed("json", err)
	}
	return FromTransport(in), nil
}

// FromTransport converts a decoded transport into a record. Dates are
// canonicalized; links with unknown names are ignored.
func FromTransport(in model.Resume) *domain.ResumeRecord {
	rec := domain.NewResumeRecord()
	rec.Name = in.Name
	rec.Contact.Phone = in.Contact.Phone
	rec.Contact.Email = in.Contact.Email
	rec.Contact.Location = in.Contact.Location
	rec.Contact.Summary = in.Summary
	for _, l := range in.Contact.Links {
		rec.Contact.SetLink(strings.ToLower(strings.TrimSpace(l.Name)), l.URL)
	}
	rec.Skills = slice.Map(in.Skills, func(idx int, src model.SkillGroup) domain.SkillGroup {
		return domain.SkillGroup{Category: src.Category, Items: cleanItems(src.Items)}
	})
	rec.Experience = slice.Map(in.Experience, func(idx int, src model.Experience) domain.Experience {
		return domain.Experience{
			Company:            src.Company,
			Position:           src.Title,
			CompanyURL:         src.CompanyURL,
			CompanyDescription: src.CompanyDescription,
			Location:           src.Location,
			StartDate:          ToCanonical(src.DateStart),
			EndDate:            endDate(src.DateEnd),
			Achievements: slice.Map(src.Achievements, func(idx int, a model.Achievement) domain.Achievement {
				return domain.Achievement{Title: a.Name, Description: a.Description}
			}),
		}
	})
	rec.Education = slice.Map(in.Education, func(idx int, src model.Education) domain.Education {
		degree, field := splitDegree(src.Degree)
		return domain.Education{
			Institution: src.Institution,
			Degree:      degree,
			Field:       field,
			Location:    src.Location,
			StartDate:   ToCanonical(src.DateStart),
			EndDate:     endDate(src.DateEnd),
		}
	})
	rec.Awards = slice.Map(in.Awards, func(idx int, src model.Award) domain.Award {
		return domain.Award{
			Title:              src.Title,
			Organization:       src.Organization,
			OrganizationDetail: src.OrganizationDetail,
			OrganizationURL:    src.OrganizationURL,
			Location:           src.Location,
			Date:               ToCanonical(src.Date),
		}
	})
	rec.Certifications = slice.Map(in.Certifications, func(idx int, src model.Certification) domain.Certification {
		return domain.Certification{
			Title:        src.Title,
			Organization: src.Organization,
			URL:          src.URL,
			Date:         ToCanonical(src.Date),
		}
	})
	rec.Publications = slice.Map(in.Publications, func(idx int, src model.Publication) domain.Publication {
		p := domain.Publication{Authors: src.Authors, Title: src.Title, Venue: src.Venue, URL: src.URL}
		if src.Year > 0 {
			p.Year = strconv.Itoa(int(src.Year))
		}
		return p
	})
	return rec
}

// splitDegree undoes the "<degree> in <field>" join on the first " in ".
func splitDegree(s string) (string, string) {
	degree, field, ok := strings.Cut(s, " in ")
	if !ok {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(degree), strings.TrimSpace(field)
}

func cleanItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
