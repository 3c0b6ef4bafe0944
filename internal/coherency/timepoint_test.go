package coherency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrenard/datex/internal/timepoint"
)

func intp(v int) *int { return &v }

func date(year, month, day int) timepoint.Date {
	return timepoint.Date{Year: intp(year), Month: intp(month), Day: day}
}

func TestInheritDateLapseFillsUnboundedWeeklyRecurrence(t *testing.T) {
	interval := timepoint.DateInterval{Start: date(2015, 3, 2), End: date(2015, 3, 31)}
	wr := timepoint.WeeklyRecurrence{
		Weekdays: timepoint.Weekdays{Indexes: []int{0}},
		Date:     timepoint.MakeUndefinedDateInterval(),
		Time:     timepoint.TimeInterval{Start: timepoint.Time{Hour: 19}, End: timepoint.Time{Hour: 23}},
	}

	out := FilterTimepoints([]timepoint.Timepoint{interval, wr})

	var found bool
	for _, tp := range out {
		if got, ok := tp.(timepoint.WeeklyRecurrence); ok {
			assert.False(t, got.Date.Undefined())
			assert.Equal(t, interval, got.Date)
			found = true
		}
	}
	assert.True(t, found)
}

func TestDeduplicateDateIntervalDroppedWhenFullyCoveredByDates(t *testing.T) {
	interval := timepoint.DateInterval{Start: date(2015, 3, 2), End: date(2015, 3, 3)}
	d1 := date(2015, 3, 2)
	d2 := date(2015, 3, 3)

	out := FilterTimepoints([]timepoint.Timepoint{interval, d1, d2})

	require.Len(t, out, 2)
	for _, tp := range out {
		_, isInterval := tp.(timepoint.DateInterval)
		assert.False(t, isInterval)
	}
}

func TestDeduplicateDateIntervalKeptWhenPartiallyCovered(t *testing.T) {
	interval := timepoint.DateInterval{Start: date(2015, 3, 2), End: date(2015, 3, 4)}
	d1 := date(2015, 3, 2)

	out := FilterTimepoints([]timepoint.Timepoint{interval, d1})
	require.Len(t, out, 2)
}

func TestDeduplicateWeeklyRecurrenceRedundantWithSingleDate(t *testing.T) {
	wr := timepoint.WeeklyRecurrence{
		Weekdays: timepoint.Weekdays{Indexes: []int{0}},
		Date:     timepoint.DateInterval{Start: date(2015, 3, 2), End: date(2015, 3, 2)},
		Time:     timepoint.TimeInterval{Start: timepoint.Time{Hour: 0}, End: timepoint.Time{Hour: 23, Minute: 59}},
	}
	d := date(2015, 3, 2) // a monday

	out := FilterTimepoints([]timepoint.Timepoint{wr, d})

	require.Len(t, out, 1)
	_, isDate := out[0].(timepoint.Date)
	assert.True(t, isDate)
}
