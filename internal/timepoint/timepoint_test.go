package timepoint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(i int) *int { return &i }

func TestDateValid(t *testing.T) {
	d := Date{Year: intp(2015), Month: intp(3), Day: 5}
	assert.True(t, d.Valid())

	bad := Date{Year: intp(2015), Month: intp(2), Day: 30}
	assert.False(t, bad.Valid())

	incomplete := Date{Day: 5}
	assert.False(t, incomplete.Valid())
}

func TestDateExport(t *testing.T) {
	d := Date{Year: intp(2015), Month: intp(3), Day: 5}
	rules, err := d.Export()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, AllDay, rules[0].Duration)
	assert.Contains(t, rules[0].RRule, "FREQ=DAILY")
	assert.Contains(t, rules[0].RRule, "COUNT=1")
}

func TestDateExportIncomplete(t *testing.T) {
	d := Date{Day: 5}
	_, err := d.Export()
	assert.ErrorIs(t, err, ErrIncompleteDate)
}

func TestDateFuture(t *testing.T) {
	d := Date{Year: intp(2015), Month: intp(3), Day: 5}
	assert.True(t, d.Future(time.Date(2015, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.False(t, d.Future(time.Date(2015, 3, 6, 0, 0, 0, 0, time.UTC)))
}

func TestTimeValid(t *testing.T) {
	assert.True(t, Time{Hour: 23, Minute: 59}.Valid())
	assert.False(t, Time{Hour: 24, Minute: 0}.Valid())
	assert.False(t, Time{Hour: 0, Minute: 60}.Valid())
}

func TestTimeExportNotExportable(t *testing.T) {
	_, err := Time{Hour: 8}.Export()
	assert.ErrorIs(t, err, ErrNotExportable)
}

func TestTimeIntervalIsSingleTime(t *testing.T) {
	ti := TimeInterval{Start: Time{Hour: 8}, End: Time{Hour: 8}}
	assert.True(t, ti.IsSingleTime())

	ti2 := TimeInterval{Start: Time{Hour: 8}, End: Time{Hour: 10}}
	assert.False(t, ti2.IsSingleTime())
}

func TestDurationMinutes(t *testing.T) {
	assert.Equal(t, 120, durationMinutes(Time{Hour: 8}, Time{Hour: 10}))
	assert.Equal(t, 0, durationMinutes(Time{Hour: 8}, Time{Hour: 8}))
	// crosses midnight: 23:00 -> 2:00 is 180 minutes
	assert.Equal(t, 180, durationMinutes(Time{Hour: 23}, Time{Hour: 2}))
}

func TestDateListPropagatesYearAndMonth(t *testing.T) {
	dl := NewDateList([]Date{
		{Day: 5},
		{Day: 6},
		{Year: intp(2015), Month: intp(3), Day: 7},
	})
	require.True(t, dl.Valid())
	assert.Equal(t, 2015, *dl.Dates[0].Year)
	assert.Equal(t, 3, *dl.Dates[0].Month)
	assert.Equal(t, 2015, *dl.Dates[1].Year)
}

func TestDateListExport(t *testing.T) {
	dl := NewDateList([]Date{
		{Year: intp(2015), Month: intp(3), Day: 5},
		{Year: intp(2015), Month: intp(3), Day: 6},
	})
	rules, err := dl.Export()
	require.NoError(t, err)
	assert.Len(t, rules, 2)
}

func TestDatetimeListExport(t *testing.T) {
	dtl := NewDatetimeList(
		[]Date{{Day: 5}, {Year: intp(2015), Month: intp(3), Day: 6}},
		TimeInterval{Start: Time{Hour: 20}, End: Time{Hour: 22}},
	)
	require.True(t, dtl.Valid())
	rules, err := dtl.Export()
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, 120, rules[0].Duration)
}

func TestDateIntervalValidAndExport(t *testing.T) {
	di := DateInterval{
		Start: Date{Year: intp(2015), Month: intp(3), Day: 5},
		End:   Date{Year: intp(2015), Month: intp(3), Day: 7},
	}
	require.True(t, di.Valid())
	rules, err := di.Export()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Contains(t, rules[0].RRule, "DTSTART:20150305\n")
	assert.Contains(t, rules[0].RRule, "UNTIL=20150307")
	assert.NotContains(t, rules[0].RRule, "UNTIL=20150307T")
	assert.Equal(t, AllDay, rules[0].Duration)
}

func TestMakeUndefinedDateInterval(t *testing.T) {
	di := MakeUndefinedDateInterval()
	assert.True(t, di.Undefined())
	assert.False(t, di.Valid(), "the undefined sentinel is never a valid interval, regardless of its bounds")
}

func TestDatetimeExport(t *testing.T) {
	dt := Datetime{
		Date: Date{Year: intp(2015), Month: intp(3), Day: 5},
		Time: TimeInterval{Start: Time{Hour: 8}, End: Time{Hour: 10}},
	}
	require.True(t, dt.Valid())
	rules, err := dt.Export()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, 120, rules[0].Duration)
	assert.Contains(t, rules[0].RRule, "DTSTART:20150305\n")
	assert.Contains(t, rules[0].RRule, "BYHOUR=8")
	assert.NotContains(t, rules[0].RRule, "UNTIL")
}

func TestDatetimeIntervalExport(t *testing.T) {
	dti := DatetimeInterval{
		Date: DateInterval{
			Start: Date{Year: intp(2015), Month: intp(3), Day: 5},
			End:   Date{Year: intp(2015), Month: intp(3), Day: 7},
		},
		Time: TimeInterval{Start: Time{Hour: 8}, End: Time{Hour: 10}},
	}
	require.True(t, dti.Valid())
	rules, err := dti.Export()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Contains(t, rules[0].RRule, "DTSTART:20150305\n")
	assert.Contains(t, rules[0].RRule, "FREQ=DAILY")
	assert.Contains(t, rules[0].RRule, "UNTIL=20150307T235959")
	assert.Equal(t, 120, rules[0].Duration)
}

func TestContinuousDatetimeIntervalExport(t *testing.T) {
	cdi := ContinuousDatetimeInterval{
		Start: Datetime{
			Date: Date{Year: intp(2015), Month: intp(3), Day: 5},
			Time: TimeInterval{Start: Time{Hour: 20}, End: Time{Hour: 20}},
		},
		End: Datetime{
			Date: Date{Year: intp(2015), Month: intp(3), Day: 7},
			Time: TimeInterval{Start: Time{Hour: 2}, End: Time{Hour: 2}},
		},
	}
	require.True(t, cdi.Valid())
	rules, err := cdi.Export()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.True(t, rules[0].Continuous)
	assert.Equal(t, (2*24+6)*60, rules[0].Duration)
	assert.Contains(t, rules[0].RRule, "DTSTART:20150305\n")
	assert.Contains(t, rules[0].RRule, "BYHOUR=20")
	assert.Contains(t, rules[0].RRule, "UNTIL=20150307T235959")
}

func TestWeekdaysValid(t *testing.T) {
	assert.True(t, Weekdays{Indexes: []int{0, 2, 4}}.Valid())
	assert.False(t, Weekdays{}.Valid())
	assert.False(t, Weekdays{Indexes: []int{7}}.Valid())
}

func TestWeeklyRecurrenceBounded(t *testing.T) {
	wr := WeeklyRecurrence{
		Weekdays: Weekdays{Indexes: []int{0, 2, 4}},
		Date: DateInterval{
			Start: Date{Year: intp(2015), Month: intp(3), Day: 5},
			End:   Date{Year: intp(2015), Month: intp(3), Day: 30},
		},
		Time: TimeInterval{Start: Time{Hour: 10}, End: Time{Hour: 12}},
	}
	require.True(t, wr.Valid())
	rules, err := wr.Export()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.False(t, rules[0].Unlimited)
	assert.Contains(t, rules[0].RRule, "DTSTART:20150305\n")
	assert.Contains(t, rules[0].RRule, "FREQ=WEEKLY")
	assert.Contains(t, rules[0].RRule, "BYDAY=MO,WE,FR")
	assert.Contains(t, rules[0].RRule, "UNTIL=20150330T235959")
}

func TestWeeklyRecurrenceUnlimited(t *testing.T) {
	wr := WeeklyRecurrence{
		Weekdays: Weekdays{Indexes: []int{5, 6}},
		Date:     MakeUndefinedDateInterval(),
		Time:     TimeInterval{Start: Time{Hour: 9}, End: Time{Hour: 18}},
	}
	rules, err := wr.Export()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.True(t, rules[0].Unlimited)
	assert.True(t, wr.Future(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
}
