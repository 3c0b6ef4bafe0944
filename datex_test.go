package datex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrenard/datex/internal/schedule"
)

// TestExport_EndToEnd runs five French end-to-end scenarios as black-box
// cases against the full pipeline; the packer scenario is
// TestExport_PackerExtendsAdjacentContinuous below.
func TestExport_EndToEnd(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		check func(t *testing.T, out []schedule.DurationRRule)
	}{
		{
			name: "single datetime",
			text: "Le 4 mars 2015 à 18h30",
			check: func(t *testing.T, out []schedule.DurationRRule) {
				require.Len(t, out, 1)
				assert.Equal(t, 0, out[0].Duration)
				assert.Contains(t, out[0].RRule, "DTSTART:20150304")
				assert.Contains(t, out[0].RRule, "COUNT=1")
				assert.Contains(t, out[0].RRule, "BYHOUR=18")
				assert.Contains(t, out[0].RRule, "BYMINUTE=30")
			},
		},
		{
			name: "bounded interval with weekday exclusion",
			text: "Du 5 au 29 mars 2015, sauf le lundi",
			check: func(t *testing.T, out []schedule.DurationRRule) {
				require.Len(t, out, 1)
				assert.Equal(t, 1439, out[0].Duration)
				assert.Contains(t, out[0].RRule, "DTSTART:20150305")
				assert.Contains(t, out[0].RRule, "UNTIL=20150329")
				require.Len(t, out[0].Excluded, 1)
				assert.Contains(t, out[0].Excluded[0], "BYDAY=MO")
			},
		},
		{
			name: "continuous overnight span",
			text: "Du 5 avril à 22h au 6 avril 2015 à 8h",
			check: func(t *testing.T, out []schedule.DurationRRule) {
				require.Len(t, out, 1)
				assert.True(t, out[0].Continuous)
				assert.Equal(t, 600, out[0].Duration)
				assert.Contains(t, out[0].RRule, "DTSTART:20150405")
				assert.Contains(t, out[0].RRule, "BYHOUR=22")
				assert.Contains(t, out[0].RRule, "UNTIL=20150406T235959")
			},
		},
		{
			name: "unbounded weekly recurrence",
			text: "tous les lundis à 8h",
			check: func(t *testing.T, out []schedule.DurationRRule) {
				require.Len(t, out, 1)
				assert.True(t, out[0].Unlimited)
				assert.Contains(t, out[0].RRule, "DTSTART:00010101")
				assert.Contains(t, out[0].RRule, "UNTIL=99991231")
				assert.Contains(t, out[0].RRule, "FREQ=WEEKLY")
				assert.Contains(t, out[0].RRule, "BYDAY=MO")
				assert.Contains(t, out[0].RRule, "BYHOUR=8")
			},
		},
		{
			name: "date interval and weekly recurrence pack into one rule",
			text: "Du 21 au 30 mars 2014, le lundi et mardi à 14h",
			check: func(t *testing.T, out []schedule.DurationRRule) {
				require.Len(t, out, 1)
				assert.Contains(t, out[0].RRule, "FREQ=WEEKLY")
				assert.Contains(t, out[0].RRule, "BYHOUR=14")
				assert.Contains(t, out[0].RRule, "UNTIL=20140330")
				for _, day := range []string{"MO", "TU"} {
					assert.True(t, strings.Contains(out[0].RRule, day))
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Export(tc.text, "fr", ExportOptions{})
			require.NoError(t, err)
			tc.check(t, out)
		})
	}
}

// TestExport_PackerExtendsAdjacentContinuous is the sixth scenario of
// spec.md §8: a continuous span flanked by single occurrences on its
// first and last calendar day packs into one continuous rule.
func TestExport_PackerExtendsAdjacentContinuous(t *testing.T) {
	text := "Le 9 octobre 2016 à 3h, du 10 au 23 octobre 2016 à 3h en continu, le 24 octobre 2016 à 3h"
	out, err := Export(text, "fr", ExportOptions{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Continuous)
	assert.Contains(t, out[0].RRule, "DTSTART:20161009")
	assert.Contains(t, out[0].RRule, "UNTIL=20161024")
}

func TestExport_UnsupportedLocale(t *testing.T) {
	_, err := Export("Le 4 mars 2015", "de", ExportOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedLocale)
}

func TestParse_UnsupportedLocale(t *testing.T) {
	_, err := Parse("Le 4 mars 2015", "de", nil)
	assert.ErrorIs(t, err, ErrUnsupportedLocale)
}

func TestRender_RoundTrip(t *testing.T) {
	out, err := Export("Le 4 mars 2015 à 18h30", "fr", ExportOptions{})
	require.NoError(t, err)
	rendered, err := Render(out, "fr")
	require.NoError(t, err)
	assert.Equal(t, "le 4 mars 2015 à 18h30", rendered)
}
