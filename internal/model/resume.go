package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Go models for the JSON transport consumed by the generation service. The
// same shape is accepted back as an import format.

type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Contact struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Links    []Link `json:"links"`
}

type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type Achievement struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Experience struct {
	Title              string        `json:"title"`
	Company            string        `json:"company"`
	CompanyURL         string        `json:"company_url"`
	CompanyDescription string        `json:"company_description"`
	Location           string        `json:"location"`
	DateStart          string        `json:"date_start"`
	DateEnd            string        `json:"date_end"`
	Achievements       []Achievement `json:"achievements"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	DateStart   string `json:"date_start"`
	DateEnd     string `json:"date_end"`
}

type Award struct {
	Title              string `json:"title"`
	Organization       string `json:"organization"`
	OrganizationDetail string `json:"organization_detail"`
	OrganizationURL    string `json:"organization_url"`
	Location           string `json:"location"`
	Date               string `json:"date"`
}

type Certification struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	URL          string `json:"url"`
	Date         string `json:"date"`
}

type Publication struct {
	Authors string `json:"authors"`
	Title   string `json:"title"`
	Venue   string `json:"venue"`
	Year    Year   `json:"year"`
	URL     string `json:"url"`
}

type Resume struct {
	Name           string          `json:"name"`
	Contact        Contact         `json:"contact"`
	Summary        string          `json:"summary"`
	Skills         []SkillGroup    `json:"skills"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Awards         []Award         `json:"awards"`
	Certifications []Certification `json:"certifications"`
	Publications   []Publication   `json:"publications"`
}

// Year is a publication year. It is written as a JSON number; on input it
// also accepts a string, taking the first four-digit run ("Dec 2022" -> 2022).
// Zero means unknown.
type Year int

var yearRe = regexp.MustCompile(`\d{4}`)

func (y *Year) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*y = 0
		return nil
	}
	if b[0] != '"' {
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("year: %w", err)
		}
		f, err := n.Float64()
		if err != nil {
			return fmt.Errorf("year: %w", err)
		}
		*y = Year(int(f))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("year: %w", err)
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		*y = Year(n)
		return nil
	}
	if m := yearRe.FindString(s); m != "" {
		n, _ := strconv.Atoi(m)
		*y = Year(n)
		return nil
	}
	*y = 0
	return nil
}
