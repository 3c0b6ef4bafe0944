// Package coherency removes Timepoint and DurationRRule values that add no
// new information once the rest of a parse's results are taken into
// account, grounded on datection.coherency (TimepointCoherencyFilter,
// RRuleCoherencyFilter).
package coherency

import (
	"time"

	"github.com/lrenard/datex/internal/timepoint"
)

var allDayTimeInterval = timepoint.TimeInterval{
	Start: timepoint.Time{Hour: 0, Minute: 0},
	End:   timepoint.Time{Hour: 23, Minute: 59},
}

// FilterTimepoints removes timepoints that are redundant given the rest of
// the list, grounded on TimepointCoherencyFilter.apply_coherency_rules.
func FilterTimepoints(tps []timepoint.Timepoint) []timepoint.Timepoint {
	tps = inheritDateLapse(tps)
	tps = deduplicateDateIntervalAndDates(tps)
	tps = deduplicateWeeklyRecurrencesAndDates(tps)
	return tps
}

// inheritDateLapse fills in the date interval of every unbounded weekly
// recurrence from the first bounded date range found alongside it,
// grounded on TimepointCoherencyFilter.inherit_date_lapse. Unlike the
// original, which re-appends the same recurrence once per date range it
// compares against (duplicating it when more than one date range is
// present), each recurrence here is patched and appended exactly once.
func inheritDateLapse(tps []timepoint.Timepoint) []timepoint.Timepoint {
	var infinite []timepoint.WeeklyRecurrence
	var dateRanges []timepoint.Timepoint
	var rest []timepoint.Timepoint

	for _, tp := range tps {
		if wr, ok := tp.(timepoint.WeeklyRecurrence); ok {
			if wr.Date.Undefined() {
				infinite = append(infinite, wr)
			} else {
				dateRanges = append(dateRanges, wr)
			}
			continue
		}
		if _, ok := dateIntervalOf(tp); ok {
			dateRanges = append(dateRanges, tp)
			continue
		}
		rest = append(rest, tp)
	}

	if len(infinite) == 0 || len(dateRanges) == 0 {
		return tps
	}

	out := make([]timepoint.Timepoint, 0, len(infinite)+len(rest))
	for _, wr := range infinite {
		for _, dr := range dateRanges {
			di, ok := dateIntervalOf(dr)
			if !ok {
				continue
			}
			wr.Date = di
			break
		}
		out = append(out, wr)
	}
	out = append(out, rest...)
	return out
}

// dateIntervalOf returns the date span a timepoint covers, for the
// variants inheritDateLapse treats as date ranges.
func dateIntervalOf(tp timepoint.Timepoint) (timepoint.DateInterval, bool) {
	switch v := tp.(type) {
	case timepoint.DateInterval:
		return v, true
	case timepoint.Datetime:
		return timepoint.DateInterval{Start: v.Date, End: v.Date}, true
	case timepoint.DatetimeInterval:
		return v.Date, true
	case timepoint.ContinuousDatetimeInterval:
		return timepoint.DateInterval{Start: v.Start.Date, End: v.End.Date}, true
	case timepoint.WeeklyRecurrence:
		return v.Date, true
	}
	return timepoint.DateInterval{}, false
}

// deduplicateDateIntervalAndDates drops a DateInterval whose every day is
// already described by a standalone Date elsewhere in the list, grounded
// on TimepointCoherencyFilter.deduplicate_date_interval_and_dates.
func deduplicateDateIntervalAndDates(tps []timepoint.Timepoint) []timepoint.Timepoint {
	dates := map[dateKey]bool{}
	for _, tp := range tps {
		if d, ok := tp.(timepoint.Date); ok {
			if k, ok := keyOf(d); ok {
				dates[k] = true
			}
		}
	}
	if len(dates) == 0 {
		return tps
	}

	out := make([]timepoint.Timepoint, 0, len(tps))
	for _, tp := range tps {
		if di, ok := tp.(timepoint.DateInterval); ok && allDaysCovered(di, dates) {
			continue
		}
		out = append(out, tp)
	}
	return out
}

// allDaysCovered reports whether every day in di falls in dates. A
// malformed or inverted interval is never considered covered.
func allDaysCovered(di timepoint.DateInterval, dates map[dateKey]bool) bool {
	start, ok1 := dateToTime(di.Start)
	end, ok2 := dateToTime(di.End)
	if !ok1 || !ok2 || start.After(end) {
		return false
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !dates[dateKey{d.Year(), int(d.Month()), d.Day()}] {
			return false
		}
	}
	return true
}

// deduplicateWeeklyRecurrencesAndDates drops a single-weekday recurrence
// that describes exactly the same day and time as a standalone Date or
// Datetime elsewhere in the list, grounded on
// TimepointCoherencyFilter.deduplicates_weekly_recurrences_and_dates (a
// recurrence this specific is almost always a parsing mistake rather than
// an intentional weekly schedule).
func deduplicateWeeklyRecurrencesAndDates(tps []timepoint.Timepoint) []timepoint.Timepoint {
	var dates []timepoint.Timepoint
	for _, tp := range tps {
		switch tp.(type) {
		case timepoint.Date, timepoint.Datetime:
			dates = append(dates, tp)
		}
	}
	if len(dates) == 0 {
		return tps
	}

	out := make([]timepoint.Timepoint, 0, len(tps))
	for _, tp := range tps {
		if wr, ok := tp.(timepoint.WeeklyRecurrence); ok {
			redundant := false
			for _, d := range dates {
				if dateMatchesWeekly(d, wr) {
					redundant = true
					break
				}
			}
			if redundant {
				continue
			}
		}
		out = append(out, tp)
	}
	return out
}

func dateMatchesWeekly(tp timepoint.Timepoint, wr timepoint.WeeklyRecurrence) bool {
	if len(wr.Weekdays.Indexes) != 1 {
		return false
	}
	switch v := tp.(type) {
	case timepoint.Date:
		t, ok := dateToTime(v)
		return ok && isoWeekday(t) == wr.Weekdays.Indexes[0] && wr.Time == allDayTimeInterval
	case timepoint.Datetime:
		t, ok := dateToTime(v.Date)
		return ok && isoWeekday(t) == wr.Weekdays.Indexes[0] && v.Time.Start == wr.Time.Start
	}
	return false
}

type dateKey struct{ Year, Month, Day int }

func keyOf(d timepoint.Date) (dateKey, bool) {
	t, ok := dateToTime(d)
	if !ok {
		return dateKey{}, false
	}
	return dateKey{t.Year(), int(t.Month()), t.Day()}, true
}

func dateToTime(d timepoint.Date) (time.Time, bool) {
	if d.Year == nil || d.Month == nil {
		return time.Time{}, false
	}
	return time.Date(*d.Year, time.Month(*d.Month), d.Day, 0, 0, 0, 0, time.UTC), true
}

// isoWeekday converts a time.Time's weekday to the Monday=0..Sunday=6
// indexing used throughout this module.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
