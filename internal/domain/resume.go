package domain

// Present is the end-date sentinel for entries that are still ongoing.
const Present = "Present"

// LinkNames is the fixed, ordered set of contact links a resume carries.
var LinkNames = []string{"website", "github", "stackoverflow", "googlescholar", "linkedin", "twitter"}

type Link struct {
	Name string
	URL  string
}

type Contact struct {
	Email    string
	Phone    string
	Location string
	Summary  string
	Links    []Link
}

type SkillGroup struct {
	Category string
	Items    []string
}

type Achievement struct {
	Title       string
	Description string
}

type Experience struct {
	Company            string
	Position           string
	CompanyURL         string
	CompanyDescription string
	Location           string
	StartDate          string
	// EndDate holds a date or Present.
	EndDate      string
	Achievements []Achievement
}

type Education struct {
	Institution string
	Degree      string
	Field       string
	Location    string
	StartDate   string
	EndDate     string
}

type Award struct {
	Title              string
	Organization       string
	OrganizationDetail string
	OrganizationURL    string
	Location           string
	Date               string
}

type Certification struct {
	Title        string
	Organization string
	URL          string
	Date         string
}

// Publication keeps Year as text: a bare year when it came from JSON, a
// canonical date when it came from the text format.
type Publication struct {
	Authors string
	Title   string
	Venue   string
	Year    string
	URL     string
}

// ResumeRecord is the structured result of one parse.
type ResumeRecord struct {
	Name           string
	Contact        Contact
	Skills         []SkillGroup
	Experience     []Experience
	Education      []Education
	Awards         []Award
	Certifications []Certification
	Publications   []Publication
}

// NewResumeRecord returns an empty record with every known link present and
// blank.
func NewResumeRecord() *ResumeRecord {
	links := make([]Link, 0, len(LinkNames))
	for _, n := range LinkNames {
		links = append(links, Link{Name: n})
	}
	return &ResumeRecord{Contact: Contact{Links: links}}
}

// IsLinkName reports whether name is one of LinkNames.
func IsLinkName(name string) bool {
	for _, n := range LinkNames {
		if n == name {
			return true
		}
	}
	return false
}

// SetLink sets the URL of a known link, keeping the set unique by name.
// Unknown names are rejected.
func (c *Contact) SetLink(name, url string) bool {
	if !IsLinkName(name) {
		return false
	}
	for i := range c.Links {
		if c.Links[i].Name == name {
			c.Links[i].URL = url
			return true
		}
	}
	c.Links = append(c.Links, Link{Name: name, URL: url})
	return true
}

// Link returns the URL stored for name, or "".
func (c Contact) Link(name string) string {
	for _, l := range c.Links {
		if l.Name == name {
			return l.URL
		}
	}
	return ""
}

// Clone returns a deep copy. Records are treated as immutable once returned
// from a parse; callers that need to edit one clone it first.
func (r *ResumeRecord) Clone() *ResumeRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.Contact.Links = append([]Link(nil), r.Contact.Links...)
	out.Skills = make([]SkillGroup, len(r.Skills))
	for i, g := range r.Skills {
		g.Items = append([]string(nil), g.Items...)
		out.Skills[i] = g
	}
	out.Experience = make([]Experience, len(r.Experience))
	for i, e := range r.Experience {
		e.Achievements = append([]Achievement(nil), e.Achievements...)
		out.Experience[i] = e
	}
	out.Education = append([]Education(nil), r.Education...)
	out.Awards = append([]Award(nil), r.Awards...)
	out.Certifications = append([]Certification(nil), r.Certifications...)
	out.Publications = append([]Publication(nil), r.Publications...)
	return &out
}
