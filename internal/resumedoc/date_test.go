package resumedoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCanonical(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "present", in: "Present", want: ""},
		{name: "abbreviated", in: "Jun 2023", want: "2023-06-01"},
		{name: "abbreviated lower case", in: "dec 2022", want: "2022-12-01"},
		{name: "abbreviated padded", in: "  Mar 2019 ", want: "2019-03-01"},
		{name: "iso identity", in: "2023-06-15", want: "2023-06-15"},
		{name: "bare year", in: "2023", want: "2023-01-01"},
		{name: "generic", in: "October 7, 1970", want: "1970-10-07"},
		{name: "unparsable", in: "sometime soon", want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToCanonical(tc.in))
		})
	}
}

func TestToAbbreviated(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "present passes through", in: "Present", want: "Present"},
		{name: "iso", in: "2023-06-15", want: "Jun 2023"},
		{name: "already abbreviated", in: "Jun 2023", want: "Jun 2023"},
		{name: "bare year", in: "2023", want: "Jan 2023"},
		{name: "generic", in: "October 7, 1970", want: "Oct 1970"},
		{name: "unparsable passes through", in: "sometime soon", want: "sometime soon"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToAbbreviated(tc.in))
		})
	}
}

func TestDateRoundTrip(t *testing.T) {
	for _, m := range months {
		for _, y := range []string{"1999", "2023"} {
			x := m + " " + y
			assert.Equal(t, x, ToAbbreviated(ToCanonical(x)), x)
		}
	}

	// The day does not survive a trip through the abbreviated form.
	assert.Equal(t, "2023-06-01", ToCanonical(ToAbbreviated(ToCanonical("2023-06-15"))))
}

func TestFailurePolicyIsAsymmetric(t *testing.T) {
	const junk = "next spring"
	assert.Equal(t, "", ToCanonical(junk))
	assert.Equal(t, junk, ToAbbreviated(junk))
}

func TestYearOf(t *testing.T) {
	y, ok := yearOf("2022-12-01")
	assert.True(t, ok)
	assert.Equal(t, 2022, y)

	y, ok = yearOf("1998")
	assert.True(t, ok)
	assert.Equal(t, 1998, y)

	_, ok = yearOf("forthcoming")
	assert.False(t, ok)
}
