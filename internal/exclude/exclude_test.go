package exclude

import (
	"testing"

	"github.com/lrenard/datex/internal/timepoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(i int) *int { return &i }

func TestBindDateIntervalExcludeDate(t *testing.T) {
	constructive := timepoint.DateInterval{
		Start: timepoint.Date{Year: intp(2015), Month: intp(3), Day: 1},
		End:   timepoint.Date{Year: intp(2015), Month: intp(3), Day: 31},
	}
	excluded := timepoint.Date{Year: intp(2015), Month: intp(3), Day: 15}
	rrule, err := Bind(constructive, excluded)
	require.NoError(t, err)
	assert.Contains(t, rrule, "20150315")
}

func TestBindWeeklyRecurrenceExcludeDateInheritsYearMonth(t *testing.T) {
	constructive := timepoint.WeeklyRecurrence{
		Weekdays: timepoint.Weekdays{Indexes: []int{0}},
		Date: timepoint.DateInterval{
			Start: timepoint.Date{Year: intp(2015), Month: intp(3), Day: 2},
			End:   timepoint.Date{Year: intp(2015), Month: intp(3), Day: 30},
		},
		Time: timepoint.TimeInterval{Start: timepoint.Time{Hour: 10}, End: timepoint.Time{Hour: 12}},
	}
	excluded := timepoint.Date{Day: 9}
	rrule, err := Bind(constructive, excluded)
	require.NoError(t, err)
	assert.Contains(t, rrule, "20150309")
	assert.Contains(t, rrule, "BYHOUR=10")
}

func TestBindWeekdaysExclusion(t *testing.T) {
	constructive := timepoint.WeeklyRecurrence{
		Weekdays: timepoint.Weekdays{Indexes: []int{0, 1, 2, 3, 4}},
		Date: timepoint.DateInterval{
			Start: timepoint.Date{Year: intp(2015), Month: intp(3), Day: 2},
			End:   timepoint.Date{Year: intp(2015), Month: intp(3), Day: 30},
		},
		Time: timepoint.TimeInterval{Start: timepoint.Time{Hour: 10}, End: timepoint.Time{Hour: 12}},
	}
	excludedDays := timepoint.Weekdays{Indexes: []int{5, 6}}
	rrule, err := Bind(constructive, excludedDays)
	require.NoError(t, err)
	assert.Contains(t, rrule, "BYDAY=SA,SU")
}

func TestBindUnsupportedCombination(t *testing.T) {
	_, err := Bind(timepoint.Date{Year: intp(2015), Month: intp(3), Day: 1}, timepoint.Date{Day: 2})
	assert.ErrorIs(t, err, ErrUnsupportedCombination)
}
