// Package exclude computes the RRULE string that, bound onto a
// constructive timepoint's DurationRRule.Excluded slice, removes a single
// excluded date or weekday set from that recurrence, grounded on
// datection.exclude.TimepointExcluder.
package exclude

import (
	"errors"
	"fmt"

	"github.com/lrenard/datex/internal/timepoint"
	"github.com/lrenard/datex/rrule"
)

// ErrUnsupportedCombination is returned when Bind is called with a
// constructive/excluded pairing datex's grammar never produces, e.g.
// excluding a Date from a plain Date.
var ErrUnsupportedCombination = errors.New("exclude: unsupported timepoint combination")

// Bind computes the RRULE string describing excluded within constructive,
// suitable for appending to constructive's exported
// schedule.DurationRRule.Excluded slice.
func Bind(constructive, excluded timepoint.Timepoint) (string, error) {
	switch ex := excluded.(type) {
	case timepoint.Weekdays:
		return excludeWeekdays(constructive, ex)
	case timepoint.Date:
		return excludeDate(constructive, ex)
	default:
		return "", fmt.Errorf("%w: excluded type %T", ErrUnsupportedCombination, excluded)
	}
}

// excludeDate handles excluding a single date from a DateInterval,
// DatetimeInterval or WeeklyRecurrence, filling in the excluded date's
// year/month from the constructive timepoint's own end date when the
// excluded date omits them (e.g. "sauf le 5" inheriting the recurrence's
// month and year).
func excludeDate(constructive timepoint.Timepoint, excluded timepoint.Date) (string, error) {
	switch c := constructive.(type) {
	case timepoint.DateInterval:
		excluded = inheritYearMonth(excluded, c.End)
		rules, err := excluded.Export()
		if err != nil {
			return "", err
		}
		return rules[0].RRule, nil

	case timepoint.DatetimeInterval:
		excluded = inheritYearMonth(excluded, c.Date.End)
		dt := timepoint.Datetime{Date: excluded, Time: c.Time}
		rules, err := dt.Export()
		if err != nil {
			return "", err
		}
		return rules[0].RRule, nil

	case timepoint.WeeklyRecurrence:
		excluded = inheritYearMonth(excluded, c.Date.End)
		wr := timepoint.WeeklyRecurrence{
			Weekdays: c.Weekdays,
			Date:     timepoint.DateInterval{Start: excluded, End: excluded},
			Time:     c.Time,
		}
		rules, err := wr.Export()
		if err != nil {
			return "", err
		}
		return rules[0].RRule, nil

	default:
		return "", fmt.Errorf("%w: constructive type %T with excluded date", ErrUnsupportedCombination, constructive)
	}
}

// inheritYearMonth fills excluded's Year/Month from source when missing.
func inheritYearMonth(excluded, source timepoint.Date) timepoint.Date {
	if excluded.Year == nil {
		excluded.Year = source.Year
	}
	if excluded.Month == nil {
		excluded.Month = source.Month
	}
	return excluded
}

// excludeWeekdays rewrites constructive's own RRULE string to fire on
// excludedDays instead of its original weekdays, keeping DTSTART, UNTIL,
// BYHOUR and BYMINUTE intact, grounded on
// TimepointExcluder.weekdays_exclusion_rrule's _byweekday override.
func excludeWeekdays(constructive timepoint.Timepoint, excludedDays timepoint.Weekdays) (string, error) {
	rules, err := constructive.Export()
	if err != nil {
		return "", err
	}
	dtstartStr, rrulePart, ok := rrule.SplitWireFormat(rules[0].RRule)
	if !ok {
		return "", fmt.Errorf("%w: malformed constructive rrule", ErrUnsupportedCombination)
	}
	parsed, err := rrule.ParseRRule(rrulePart)
	if err != nil {
		return "", err
	}
	dtstart, err := rrule.ParseDTStart(dtstartStr)
	if err != nil {
		return "", err
	}
	weekday := make([]rrule.ByDay, len(excludedDays.Indexes))
	for i, idx := range excludedDays.Indexes {
		weekday[i] = rrule.ByDay{Weekday: rrule.WeekdayFromIndex(idx), Interval: 1}
	}
	parsed.Weekday = weekday
	return rrule.Build(*parsed, rrule.BuildOptions{DTStart: dtstart}), nil
}
