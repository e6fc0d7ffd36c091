package press

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "query param", url: "https://pib.gov.in/PressReleasePage.aspx?PRID=2098765", want: "2098765"},
		{name: "lowercase param", url: "/PressReleseDetail.aspx?prid=123456", want: "123456"},
		{name: "eight digits", url: "?PRID=12345678", want: "12345678"},
		{name: "too short", url: "?PRID=12345", want: ""},
		{name: "no id", url: "https://pib.gov.in/allRel.aspx", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractID(tt.url))
		})
	}
}

func TestExtractID_NineDigitsTruncates(t *testing.T) {
	t.Parallel()
	// The pattern is bounded at 8 digits; a longer run still yields the
	// first 8, mirroring how the listing URLs are actually shaped.
	require.Equal(t, "12345678", ExtractID("?PRID=123456789"))
}

func TestValidID(t *testing.T) {
	t.Parallel()
	require.True(t, ValidID("123456"))
	require.True(t, ValidID("12345678"))
	require.False(t, ValidID("12345"))
	require.False(t, ValidID("123456789"))
	require.False(t, ValidID("12a456"))
	require.False(t, ValidID("../etc"))
}

func TestCollapseSpace(t *testing.T) {
	t.Parallel()
	require.Equal(t, "a b c", CollapseSpace("  a\n\tb   c  "))
	require.Equal(t, "", CollapseSpace(" \n\t "))
}

func TestHasDevanagariRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    string
		n    int
		want bool
	}{
		{name: "pure hindi", s: "मंत्रिमंडल ने मंजूरी दी", n: 5, want: true},
		{name: "english", s: "Cabinet approves railway corridor", n: 5, want: false},
		{name: "short fragment tolerated", s: "PM hails भारत initiative", n: 5, want: false},
		{name: "run broken by space", s: "मंत्र मंडल", n: 8, want: false},
		{name: "long run", s: "उपराष्ट्रपति सचिवालय", n: 8, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, HasDevanagariRun(tt.s, tt.n))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()
	require.Equal(t, "abc", TruncateRunes("abcdef", 3))
	require.Equal(t, "abcdef", TruncateRunes("abcdef", 10))
	require.Equal(t, "", TruncateRunes("abcdef", 0))
}
