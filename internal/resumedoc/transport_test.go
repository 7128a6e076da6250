package resumedoc

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

func TestToTransport(t *testing.T) {
	rec, err := ParseString(fullDocument)
	require.NoError(t, err)

	out := ToTransport(rec)
	assert.Equal(t, "Jane Doe", out.Name)
	assert.Equal(t, "Backend engineer who likes parsers and queues.", out.Summary)
	assert.Equal(t, []model.Link{
		{Name: "github", URL: "https://github.com/jane"},
		{Name: "linkedin", URL: "https://linkedin.com/in/jane"},
	}, out.Contact.Links)

	require.Len(t, out.Experience, 2)
	assert.Equal(t, "Senior Engineer", out.Experience[0].Title)
	assert.Equal(t, "Jan 2020", out.Experience[0].DateStart)
	assert.Equal(t, "Present", out.Experience[0].DateEnd)
	assert.Equal(t, "Mar 2017", out.Experience[1].DateStart)
	assert.Equal(t, "Dec 2019", out.Experience[1].DateEnd)
	assert.Equal(t, model.Achievement{Name: "Shipped the billing rewrite", Description: "Cut invoice latency in half"}, out.Experience[0].Achievements[0])

	require.Len(t, out.Education, 1)
	assert.Equal(t, "MSc in Computer Science", out.Education[0].Degree)
	assert.Equal(t, "Jan 2015", out.Education[0].DateStart)

	assert.Equal(t, "Dec 2022", out.Awards[0].Date)
	assert.Equal(t, "May 2021", out.Certifications[0].Date)
	assert.Equal(t, model.Year(2021), out.Publications[0].Year)

	require.NoError(t, model.Validate(out))
}

func TestToTransportOmitsIncompleteEntries(t *testing.T) {
	rec := domain.NewResumeRecord()
	rec.Name = "Jane"
	rec.Contact.SetLink("website", "   ")
	rec.Contact.SetLink("github", "https://github.com/jane")
	rec.Experience = []domain.Experience{
		{Company: "Acme"},
		{Company: "Initech", Position: "Engineer"},
		{Company: "  ", Position: "Ghost"},
	}
	rec.Education = []domain.Education{
		{Institution: "TU Berlin"},
		{Institution: "MIT", Degree: "BSc"},
	}
	rec.Awards = []domain.Award{{}}

	out := ToTransport(rec)
	assert.Equal(t, []model.Link{{Name: "github", URL: "https://github.com/jane"}}, out.Contact.Links)
	// The blank link is still in the record.
	assert.Equal(t, "   ", rec.Contact.Link("website"))

	require.Len(t, out.Experience, 1)
	assert.Equal(t, "Initech", out.Experience[0].Company)
	require.Len(t, out.Education, 1)
	assert.Equal(t, "BSc", out.Education[0].Degree)
	assert.Len(t, out.Awards, 1)
}

func TestToTransportPublicationYearFallback(t *testing.T) {
	old := now
	now = func() time.Time { return time.Date(2030, time.July, 1, 0, 0, 0, 0, time.UTC) }
	defer func() { now = old }()

	rec := domain.NewResumeRecord()
	rec.Publications = []domain.Publication{
		{Title: "Known", Year: "2019-01-01"},
		{Title: "Bare", Year: "2018"},
		{Title: "Unknown", Year: "forthcoming"},
		{Title: "Empty"},
	}
	out := ToTransport(rec)
	got := make([]model.Year, 0, len(out.Publications))
	for _, p := range out.Publications {
		got = append(got, p.Year)
	}
	assert.Equal(t, []model.Year{2019, 2018, 2030, 2030}, got)
}

func TestSerializeToJSONEmitsArrays(t *testing.T) {
	data, err := SerializeToJSON(domain.NewResumeRecord())
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{"skills", "experience", "education", "awards", "certifications", "publications"} {
		assert.Equal(t, []interface{}{}, m[key], key)
	}
	assert.Equal(t, []interface{}{}, m["contact"].(map[string]interface{})["links"])
}

func TestParseJSON(t *testing.T) {
	doc := `{
  "name": "Jane Doe",
  "contact": {
    "phone": "555",
    "email": "jane@example.com",
    "location": "Berlin",
    "links": [{"name": "GitHub", "url": "https://github.com/jane"}, {"name": "myspace", "url": "x"}]
  },
  "summary": "Engineer.",
  "skills": [{"category": "Languages", "items": ["Go", " ", "Rust "]}],
  "experience": [{
    "title": "Engineer", "company": "Acme",
    "date_start": "Jan 2020", "date_end": "Present",
    "achievements": [{"name": "Shipped", "description": "fast"}]
  }],
  "education": [{"degree": "MSc in Computer Science", "institution": "TU Berlin", "date_start": "2015", "date_end": "Jun 2017"}],
  "awards": [{"title": "Best Paper Award", "organization": "ICMLA", "date": "Dec 2022"}],
  "certifications": [],
  "publications": [{"authors": "J. Doe", "title": "P", "venue": "SLE", "year": "2021", "url": ""}]
}`
	rec, err := ParseJSON([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "https://github.com/jane", rec.Contact.Link("github"))
	assert.Len(t, rec.Contact.Links, len(domain.LinkNames))
	assert.Equal(t, "Engineer.", rec.Contact.Summary)
	assert.Equal(t, []string{"Go", "Rust"}, rec.Skills[0].Items)

	require.Len(t, rec.Experience, 1)
	assert.Equal(t, "Engineer", rec.Experience[0].Position)
	assert.Equal(t, "2020-01-01", rec.Experience[0].StartDate)
	assert.Equal(t, domain.Present, rec.Experience[0].EndDate)
	assert.Equal(t, []domain.Achievement{{Title: "Shipped", Description: "fast"}}, rec.Experience[0].Achievements)

	assert.Equal(t, domain.Education{
		Institution: "TU Berlin",
		Degree:      "MSc",
		Field:       "Computer Science",
		StartDate:   "2015-01-01",
		EndDate:     "2017-06-01",
	}, rec.Education[0])
	assert.Equal(t, "2022-12-01", rec.Awards[0].Date)
	assert.Equal(t, "2021", rec.Publications[0].Year)
}

func TestParseJSONRoundTrip(t *testing.T) {
	rec, err := ParseString(fullDocument)
	require.NoError(t, err)

	data, err := SerializeToJSON(rec)
	require.NoError(t, err)
	back, err := ParseJSON(data)
	require.NoError(t, err)

	again, err := SerializeToJSON(back)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestParseJSONMalformed(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `name: Jane`},
		{name: "truncated", doc: `{"name": "Jane"`},
		{name: "wrong type", doc: `{"name": 42}`},
		{name: "wrong nested type", doc: `{"skills": {"category": "x"}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := ParseJSON([]byte(tc.doc))
			assert.Nil(t, rec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedDocument))

			var mde *MalformedDocumentError
			require.True(t, errors.As(err, &mde))
			assert.Equal(t, "json", mde.Format)
			assert.NotEmpty(t, mde.Msg)
			assert.Equal(t, mde.Err.Error(), mde.Msg)
		})
	}
}

func TestSplitDegree(t *testing.T) {
	d, f := splitDegree("BSc in Physics in Practice")
	assert.Equal(t, "BSc", d)
	assert.Equal(t, "Physics in Practice", f)

	d, f = splitDegree("PhD")
	assert.Equal(t, "PhD", d)
	assert.Equal(t, "", f)
}
