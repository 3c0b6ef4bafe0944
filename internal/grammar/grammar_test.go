package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrenard/datex/internal/timepoint"
)

func TestFrenchParsesSingleDatetime(t *testing.T) {
	g := French()
	matches := g.Parse("Le 4 mars 2015 à 18h30")
	require.NotEmpty(t, matches)

	var found bool
	for _, m := range matches {
		dt, ok := m.Timepoint.(timepoint.Datetime)
		if !ok {
			continue
		}
		if *dt.Date.Year == 2015 && *dt.Date.Month == 3 && dt.Date.Day == 4 {
			assert.Equal(t, 18, dt.Time.Start.Hour)
			assert.Equal(t, 30, dt.Time.Start.Minute)
			found = true
		}
	}
	assert.True(t, found, "expected a datetime match for 4 march 2015 18h30")
}

func TestFrenchParsesDateIntervalAndExclusion(t *testing.T) {
	g := French()
	matches := g.Parse("Du 5 au 29 mars 2015, sauf le lundi")

	var sawInterval, sawExclusion bool
	for _, m := range matches {
		if di, ok := m.Timepoint.(timepoint.DateInterval); ok {
			assert.Equal(t, 5, di.Start.Day)
			assert.Equal(t, 29, di.End.Day)
			assert.Equal(t, 2015, *di.End.Year)
			sawInterval = true
		}
		if m.ExcludedWeekdays != nil {
			assert.Equal(t, []int{0}, m.ExcludedWeekdays.Indexes)
			sawExclusion = true
		}
	}
	assert.True(t, sawInterval)
	assert.True(t, sawExclusion)
}

func TestFrenchParsesContinuousDatetimeInterval(t *testing.T) {
	g := French()
	matches := g.Parse("Du 5 avril à 22h au 6 avril 2015 à 8h")

	var found bool
	for _, m := range matches {
		cdi, ok := m.Timepoint.(timepoint.ContinuousDatetimeInterval)
		if !ok {
			continue
		}
		assert.Equal(t, 5, cdi.Start.Date.Day)
		assert.Equal(t, 22, cdi.Start.Time.Start.Hour)
		assert.Equal(t, 6, cdi.End.Date.Day)
		assert.Equal(t, 8, cdi.End.Time.Start.Hour)
		found = true
	}
	assert.True(t, found)
}

func TestFrenchParsesUnboundedWeeklyRecurrence(t *testing.T) {
	g := French()
	matches := g.Parse("tous les lundis à 8h")

	var found bool
	for _, m := range matches {
		wr, ok := m.Timepoint.(timepoint.WeeklyRecurrence)
		if !ok {
			continue
		}
		assert.Equal(t, []int{0}, wr.Weekdays.Indexes)
		assert.True(t, wr.Date.Undefined())
		assert.Equal(t, 8, wr.Time.Start.Hour)
		found = true
	}
	assert.True(t, found)
}

func TestFrenchParsesMultiWeekdayRecurrence(t *testing.T) {
	g := French()
	matches := g.Parse("le lundi et mardi à 14h")

	var found bool
	for _, m := range matches {
		wr, ok := m.Timepoint.(timepoint.WeeklyRecurrence)
		if !ok {
			continue
		}
		assert.ElementsMatch(t, []int{0, 1}, wr.Weekdays.Indexes)
		assert.Equal(t, 14, wr.Time.Start.Hour)
		found = true
	}
	assert.True(t, found)
}

func TestEnglishParsesSingleDatetime(t *testing.T) {
	g := English()
	matches := g.Parse("March 4 2015 at 6pm")

	var found bool
	for _, m := range matches {
		dt, ok := m.Timepoint.(timepoint.Datetime)
		if !ok {
			continue
		}
		assert.Equal(t, 4, dt.Date.Day)
		assert.Equal(t, 3, *dt.Date.Month)
		assert.Equal(t, 18, dt.Time.Start.Hour)
		found = true
	}
	assert.True(t, found)
}

func TestEnglishParsesWeeklyRecurrence(t *testing.T) {
	g := English()
	matches := g.Parse("every monday at 8am")

	var found bool
	for _, m := range matches {
		wr, ok := m.Timepoint.(timepoint.WeeklyRecurrence)
		if !ok {
			continue
		}
		assert.Equal(t, []int{0}, wr.Weekdays.Indexes)
		assert.Equal(t, 8, wr.Time.Start.Hour)
		found = true
	}
	assert.True(t, found)
}
