package resumedoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"resume-builder/internal/domain"
)

// months is the fixed month table; index 0 is January.
var months = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var (
	abbrevRe = regexp.MustCompile(`^([A-Za-z]{3}) (\d{4})$`)
	isoRe    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	yearOnly = regexp.MustCompile(`^\d{4}$`)
)

// monthIndex returns the 1-based month for a three-letter abbreviation, or 0.
func monthIndex(abbr string) int {
	for i, m := range months {
		if strings.EqualFold(m, abbr) {
			return i + 1
		}
	}
	return 0
}

// genericDate is the last-resort parser for both directions.
func genericDate(s string) (time.Time, bool) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ToCanonical normalizes a date literal to YYYY-MM-DD. The sentinel and
// anything unparsable become "". Month-only inputs land on the 1st.
func ToCanonical(x string) string {
	x = strings.TrimSpace(x)
	if x == "" || x == domain.Present {
		return ""
	}
	if m := abbrevRe.FindStringSubmatch(x); m != nil {
		if mon := monthIndex(m[1]); mon > 0 {
			return fmt.Sprintf("%s-%02d-01", m[2], mon)
		}
	}
	if isoRe.MatchString(x) {
		return x
	}
	if yearOnly.MatchString(x) {
		return x + "-01-01"
	}
	if t, ok := genericDate(x); ok {
		return t.Format("2006-01-02")
	}
	return ""
}

// ToAbbreviated normalizes a date literal to "Mon YYYY". Unlike ToCanonical
// it passes the sentinel and anything unparsable through unchanged.
func ToAbbreviated(x string) string {
	s := strings.TrimSpace(x)
	if s == "" || s == domain.Present {
		return x
	}
	if m := isoRe.FindStringSubmatch(s); m != nil {
		if mon, _ := strconv.Atoi(m[2]); mon >= 1 && mon <= 12 {
			return months[mon-1] + " " + m[1]
		}
	}
	if m := abbrevRe.FindStringSubmatch(s); m != nil && monthIndex(m[1]) > 0 {
		return s
	}
	if yearOnly.MatchString(s) {
		return "Jan " + s
	}
	if t, ok := genericDate(s); ok {
		return months[t.Month()-1] + " " + strconv.Itoa(t.Year())
	}
	return x
}

// yearOf extracts the calendar year of a stored date-like value.
func yearOf(v string) (int, bool) {
	c := ToCanonical(v)
	if len(c) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(c[:4])
	if err != nil {
		return 0, false
	}
	return y, true
}
