package timepoint

import (
	"time"

	"github.com/lrenard/datex/rrule"
)

// midnight truncates t to the start of its day, mirroring how every
// rrulestr property in the original builds DTSTART from a bare date
// object rather than a datetime — DTSTART never carries a time of day,
// even when the rule fires at a specific hour via BYHOUR/BYMINUTE.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// buildSingle renders a single-occurrence DAILY rule at dtstart, grounded
// on Date.rrulestr / Datetime.rrulestr's "count=1" form: date-only
// DTSTART, no UNTIL.
func buildSingle(dtstart time.Time, hour, minute int) (string, error) {
	count := 1
	r := rrule.RRule{
		Frequency: rrule.FrequencyDaily,
		Count:     &count,
		ByHour:    []int{hour},
		ByMinute:  []int{minute},
	}
	return rrule.Build(r, rrule.BuildOptions{DTStart: midnight(dtstart), DateOnly: true}), nil
}

// buildDailyRange renders the all-day DAILY rule spanning dtstart through
// until (inclusive), both rendered as bare dates, grounded on
// DateInterval.rrulestr.
func buildDailyRange(dtstart, until time.Time, hour, minute int) string {
	u := midnight(until)
	r := rrule.RRule{
		Frequency: rrule.FrequencyDaily,
		Interval:  1,
		Until:     &u,
		ByHour:    []int{hour},
		ByMinute:  []int{minute},
	}
	return rrule.Build(r, rrule.BuildOptions{DTStart: midnight(dtstart), DateOnly: true, UntilDateOnly: true})
}

// buildDailyUntilDayEnd renders a DAILY rule with a date-only DTSTART and
// a full-precision UNTIL pinned to the end-of-day time of the until date,
// grounded on DatetimeInterval.rrulestr and
// ContinuousDatetimeInterval.rrulestr — both combine their end date with
// DAY_END (23:59:59) regardless of the interval's own end time.
func buildDailyUntilDayEnd(dtstart, until time.Time, hour, minute int) string {
	u := time.Date(until.Year(), until.Month(), until.Day(), 23, 59, 59, 0, time.UTC)
	r := rrule.RRule{
		Frequency: rrule.FrequencyDaily,
		Interval:  1,
		Until:     &u,
		ByHour:    []int{hour},
		ByMinute:  []int{minute},
	}
	return rrule.Build(r, rrule.BuildOptions{DTStart: midnight(dtstart), DateOnly: true})
}

// buildWeekly renders a WEEKLY rule on the given weekdays, with a
// date-only DTSTART and a full-precision UNTIL pinned to end-of-day,
// grounded on WeeklyRecurrence.rrulestr.
func buildWeekly(dtstart, until time.Time, days []rrule.Weekday, hour, minute int) string {
	weekday := make([]rrule.ByDay, len(days))
	for i, d := range days {
		weekday[i] = rrule.ByDay{Weekday: d, Interval: 1}
	}
	u := time.Date(until.Year(), until.Month(), until.Day(), 23, 59, 59, 0, time.UTC)
	r := rrule.RRule{
		Frequency: rrule.FrequencyWeekly,
		Interval:  1,
		Until:     &u,
		Weekday:   weekday,
		ByHour:    []int{hour},
		ByMinute:  []int{minute},
	}
	return rrule.Build(r, rrule.BuildOptions{DTStart: midnight(dtstart), DateOnly: true})
}

// dateAt combines d with a time of day into a time.Time.
func dateAt(d Date, t Time) (time.Time, bool) {
	base, ok := d.toTime()
	if !ok {
		return time.Time{}, false
	}
	return time.Date(base.Year(), base.Month(), base.Day(), t.Hour, t.Minute, 0, 0, time.UTC), true
}
