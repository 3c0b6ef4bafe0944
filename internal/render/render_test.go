package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrenard/datex/internal/locale"
	"github.com/lrenard/datex/internal/schedule"
)

func frenchTable(t *testing.T) *locale.Table {
	t.Helper()
	lang, ok := locale.Lookup("fr")
	require.True(t, ok)
	return lang
}

func englishTable(t *testing.T) *locale.Table {
	t.Helper()
	lang, ok := locale.Lookup("en")
	require.True(t, ok)
	return lang
}

func TestRenderSingleDateFrench(t *testing.T) {
	out, err := Render([]schedule.DurationRRule{
		{RRule: "DTSTART:20150304\nRRULE:FREQ=DAILY;COUNT=1;BYHOUR=18;BYMINUTE=30", Duration: 0},
	}, frenchTable(t))
	require.NoError(t, err)
	assert.Equal(t, "le 4 mars 2015 à 18h30", out)
}

func TestRenderBoundedIntervalFrench(t *testing.T) {
	out, err := Render([]schedule.DurationRRule{
		{RRule: "DTSTART:20150305\nRRULE:FREQ=DAILY;INTERVAL=1;UNTIL=20150307T235959", Duration: schedule.AllDay},
	}, frenchTable(t))
	require.NoError(t, err)
	assert.Equal(t, "du 5 mars 2015 au 7 mars 2015", out)
}

func TestRenderUnboundedWeeklyFrench(t *testing.T) {
	out, err := Render([]schedule.DurationRRule{
		{RRule: "DTSTART:20150302\nRRULE:FREQ=WEEKLY;INTERVAL=1;BYDAY=MO;BYHOUR=8;BYMINUTE=0", Duration: 0, Unlimited: true},
	}, frenchTable(t))
	require.NoError(t, err)
	assert.Equal(t, "tous les lundi à 8h", out)
}

func TestRenderContinuousFrench(t *testing.T) {
	out, err := Render([]schedule.DurationRRule{
		{RRule: "DTSTART:20150405\nRRULE:FREQ=DAILY;INTERVAL=1;BYHOUR=22;BYMINUTE=0;UNTIL=20150406T235959", Duration: 600, Continuous: true},
	}, frenchTable(t))
	require.NoError(t, err)
	assert.Equal(t, "du 5 avril 2015 à 22h au 6 avril 2015 à 8h", out)
}

func TestRenderSingleDateEnglish(t *testing.T) {
	out, err := Render([]schedule.DurationRRule{
		{RRule: "DTSTART:20150304\nRRULE:FREQ=DAILY;COUNT=1;BYHOUR=18;BYMINUTE=0", Duration: 0},
	}, englishTable(t))
	require.NoError(t, err)
	assert.Equal(t, "on 4 march 2015 at 6pm", out)
}

func TestRenderJoinsMultipleRecords(t *testing.T) {
	out, err := Render([]schedule.DurationRRule{
		{RRule: "DTSTART:20150304\nRRULE:FREQ=DAILY;COUNT=1;BYHOUR=18;BYMINUTE=0", Duration: 0},
		{RRule: "DTSTART:20150305\nRRULE:FREQ=DAILY;COUNT=1;BYHOUR=9;BYMINUTE=0", Duration: 0},
	}, frenchTable(t))
	require.NoError(t, err)
	assert.Equal(t, "le 4 mars 2015 à 18h; le 5 mars 2015 à 9h", out)
}
