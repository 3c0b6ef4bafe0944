package schedule

import (
	"time"

	"github.com/lrenard/datex/rrule"
)

// Classified wraps a DurationRRule with its parsed RRule and the derived
// predicates the packer and coherency filter need, grounded on the
// @cached_property surface of datection.models.DurationRRule. Unlike the
// Python original, nothing here is memoized: every predicate is a plain
// method over fields computed once at construction time, since none of
// them are expensive enough to warrant the laziness the original reached
// for.
type Classified struct {
	DurationRRule
	Rule    rrule.RRule
	DTStart time.Time
	Until   *time.Time // nil when the rule is open-ended (no UNTIL)
}

// Classify parses d's RRULE string and wraps it as a Classified value.
func Classify(d DurationRRule) (Classified, error) {
	dtstartValue, rrulePart, ok := rrule.SplitWireFormat(d.RRule)
	if !ok {
		return Classified{}, rrule.ErrInvalidRRuleString
	}
	dtstart, err := rrule.ParseDTStart(dtstartValue)
	if err != nil {
		return Classified{}, err
	}
	r, err := rrule.ParseRRule(rrulePart)
	if err != nil {
		return Classified{}, err
	}
	return Classified{
		DurationRRule: d,
		Rule:          *r,
		DTStart:       dtstart,
		Until:         r.Until,
	}, nil
}

// Bounded reports whether the rule carries an explicit UNTIL or COUNT and
// spans less than a year, the inverse of IsUnlimited.
func (c Classified) Bounded() bool {
	return !c.IsUnlimited()
}

// IsUnlimited reports whether the rule was marked unlimited at export time,
// or, failing that, whether its span exceeds 364 days, or it has neither
// UNTIL nor COUNT at all.
func (c Classified) IsUnlimited() bool {
	if c.DurationRRule.Unlimited {
		return true
	}
	if c.Until != nil {
		if end, ok := c.EndDate(); ok {
			if end.Sub(c.DTStart) > 364*24*time.Hour {
				return true
			}
		}
		return false
	}
	return c.Rule.Count == nil
}

// EndDate returns the rule's UNTIL date, if any.
func (c Classified) EndDate() (time.Time, bool) {
	if c.Until == nil {
		return time.Time{}, false
	}
	return *c.Until, true
}

// DateSpanDays returns the number of days between DTStart and UNTIL, or
// false when the rule has no UNTIL.
func (c Classified) DateSpanDays() (int, bool) {
	end, ok := c.EndDate()
	if !ok {
		return 0, false
	}
	return int(end.Sub(c.DTStart).Hours() / 24), true
}

// IsSingleDate reports whether the rule describes exactly one occurrence
// (COUNT=1) lasting no longer than a day; all-day events are included.
func (c Classified) IsSingleDate() bool {
	return c.Rule.Count != nil && *c.Rule.Count == 1 && c.Duration <= AllDay
}

// SmallDateInterval reports an UNTIL-bounded span of 1 to 120 days.
func (c Classified) SmallDateInterval() bool {
	days, ok := c.DateSpanDays()
	if !ok {
		return false
	}
	return days >= 1 && days <= 4*30
}

// LongDateInterval reports an UNTIL-bounded span strictly longer than 120
// and no more than 240 days.
func (c Classified) LongDateInterval() bool {
	days, ok := c.DateSpanDays()
	if !ok {
		return false
	}
	return days > 4*30 && days <= 8*30
}

// UnlimitedDateInterval reports an UNTIL-bounded span longer than 240 days.
func (c Classified) UnlimitedDateInterval() bool {
	days, ok := c.DateSpanDays()
	if !ok {
		return false
	}
	return days > 8*30
}

// WeekdayIndexes returns the sorted ISO weekday indexes (Monday=0) the rule
// recurs on, or nil if the rule has no BYDAY.
func (c Classified) WeekdayIndexes() []int {
	if len(c.Rule.Weekday) == 0 {
		return nil
	}
	out := make([]int, len(c.Rule.Weekday))
	for i, d := range c.Rule.Weekday {
		out[i] = d.Weekday.Index()
	}
	sortInts(out)
	return out
}

// IsRecurring reports whether the rule is a genuine weekly recurrence
// rather than a degenerate "every day for N days" span or a single
// occurrence.
func (c Classified) IsRecurring() bool {
	if len(c.Rule.Weekday) == 0 {
		return false
	}
	if len(c.Rule.Weekday) == 7 && !c.isAllYearRecurrence() {
		return false
	}
	if c.Rule.Count != nil && *c.Rule.Count == 1 {
		return false
	}
	return true
}

func (c Classified) isAllYearRecurrence() bool {
	if len(c.Rule.Weekday) == 0 || c.Until == nil {
		return false
	}
	return c.DTStart.AddDate(0, 0, 365).Equal(*c.Until)
}

// HasTimings reports whether the event carries a specific time of day,
// i.e. it is not an all-day event.
func (c Classified) HasTimings() bool {
	return c.Duration < AllDay
}

// startTimeOfDay returns the rule's earliest BYHOUR/BYMINUTE pair, or
// midnight for an all-day event or one with no explicit time.
func (c Classified) startTimeOfDay() (hour, minute int) {
	if len(c.Rule.ByHour) > 0 && len(c.Rule.ByMinute) > 0 && c.Duration != AllDay {
		return minInt(c.Rule.ByHour), minInt(c.Rule.ByMinute)
	}
	return 0, 0
}

// StartDatetime returns the rule's first occurrence: DTStart's calendar
// date combined with the rule's starting time of day, grounded on
// DurationRRule.start_datetime.
func (c Classified) StartDatetime() time.Time {
	h, m := c.startTimeOfDay()
	return time.Date(c.DTStart.Year(), c.DTStart.Month(), c.DTStart.Day(), h, m, 0, 0, time.UTC)
}

// EndDatetime returns the rule's last occurrence's end time, grounded on
// DurationRRule.end_datetime. A continuous rule's Duration already carries
// the exact number of minutes from its real start to its real end (see
// ContinuousDatetimeInterval.Export), so its end is simply start plus
// Duration — exact, including time of day, rather than the original's
// approach of recombining UNTIL's date with a same-day time-of-day
// computation that silently loses the date whenever the span crosses more
// than one midnight — a deliberate improvement, noted in DESIGN.md. A
// bounded non-continuous rule combines UNTIL's date with the starting time
// of day plus Duration; an unbounded one either runs Duration past its one
// occurrence or projects one year out.
func (c Classified) EndDatetime() time.Time {
	if c.Continuous || c.Rule.Count != nil {
		return c.StartDatetime().Add(time.Duration(c.Duration) * time.Minute)
	}
	if end, ok := c.EndDate(); ok {
		h, m := c.startTimeOfDay()
		base := time.Date(end.Year(), end.Month(), end.Day(), h, m, 0, 0, time.UTC)
		return base.Add(time.Duration(c.Duration) * time.Minute)
	}
	return c.StartDatetime().AddDate(1, 0, 0)
}

// WithBounds returns a copy of c with its DTStart/UNTIL replaced and its
// wire RRULE string rebuilt to match; end nil clears UNTIL entirely
// (used when merging two unlimited rules).
func (c Classified) WithBounds(start time.Time, end *time.Time) Classified {
	r := c.Rule
	r.Until = end
	nc := c
	nc.DTStart = start
	nc.Until = end
	nc.Rule = r
	nc.DurationRRule.RRule = rrule.Build(r, rrule.BuildOptions{
		DTStart:       start,
		DateOnly:      true,
		UntilDateOnly: untilDateOnly(end),
	})
	return nc
}

// WithWeekdays returns a copy of c with its BYDAY set replaced and its
// wire RRULE string rebuilt to match.
func (c Classified) WithWeekdays(days []rrule.ByDay) Classified {
	r := c.Rule
	r.Weekday = days
	nc := c
	nc.Rule = r
	nc.DurationRRule.RRule = rrule.Build(r, rrule.BuildOptions{
		DTStart:       c.DTStart,
		DateOnly:      true,
		UntilDateOnly: untilDateOnly(r.Until),
	})
	return nc
}

// untilDateOnly infers whether a parsed UNTIL was originally rendered as
// a bare date (midnight) rather than pinned to end-of-day, the same
// convention every build helper in internal/timepoint writes.
func untilDateOnly(until *time.Time) bool {
	if until == nil {
		return true
	}
	return until.Hour() == 0 && until.Minute() == 0 && until.Second() == 0
}

func minInt(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
