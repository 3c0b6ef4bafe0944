package schedule

import (
	"time"

	gorrule "github.com/teambition/rrule-go"

	"github.com/lrenard/datex/rrule"
)

// MaxEstimatedCount bounds EstimateCount's work: counting stops once this
// many occurrences have been seen even if the horizon hasn't been reached.
const MaxEstimatedCount = 10_000

// defaultHorizon is the virtual window used to iterate an unbounded rule
// when the caller supplies no bounds, matching the "[today, today+365
// days]" default of the DurationRRule iteration contract.
const defaultHorizon = 365 * 24 * time.Hour

var weekdayCode = map[rrule.Weekday]gorrule.Weekday{
	rrule.WeekdayMonday:    gorrule.MO,
	rrule.WeekdayTuesday:   gorrule.TU,
	rrule.WeekdayWednesday: gorrule.WE,
	rrule.WeekdayThursday:  gorrule.TH,
	rrule.WeekdayFriday:    gorrule.FR,
	rrule.WeekdaySaturday:  gorrule.SA,
	rrule.WeekdaySunday:    gorrule.SU,
}

func toGoRRule(r rrule.RRule, dtstart time.Time) (*gorrule.RRule, error) {
	opt := gorrule.ROption{
		Dtstart:  dtstart,
		Interval: r.Interval,
	}
	switch r.Frequency {
	case rrule.FrequencyDaily:
		opt.Freq = gorrule.DAILY
	case rrule.FrequencyWeekly:
		opt.Freq = gorrule.WEEKLY
	}
	if r.Count != nil {
		opt.Count = *r.Count
	}
	if r.Until != nil {
		opt.Until = *r.Until
	}
	for _, d := range r.Weekday {
		wd := weekdayCode[d.Weekday]
		if d.Interval != 0 && d.Interval != 1 {
			wd = wd.Nth(d.Interval)
		}
		opt.Byweekday = append(opt.Byweekday, wd)
	}
	opt.Byhour = r.ByHour
	opt.Byminute = r.ByMinute
	return gorrule.NewRRule(opt)
}

// Iterate returns a Go 1.23 range-over-func iterator yielding every
// occurrence of d's RRULE, minus its excluded RRULEs, within [lower, upper].
// Nil bounds fall back to d's own DTStart/UNTIL when the rule is bounded,
// or to the [today, today+365 days] virtual window described by the
// DurationRRule iteration contract when it is not.
func Iterate(d DurationRRule, lower, upper *time.Time) func(func(time.Time) bool) {
	return func(yield func(time.Time) bool) {
		classified, err := Classify(d)
		if err != nil {
			return
		}
		goMain, err := toGoRRule(classified.Rule, classified.DTStart)
		if err != nil {
			return
		}

		set := gorrule.Set{}
		set.DTStart(classified.DTStart)
		set.RRule(goMain)

		for _, exc := range d.Excluded {
			excDTStartValue, excRRulePart, ok := rrule.SplitWireFormat(exc)
			var excDTStart time.Time
			var excRRulePartString string
			if ok {
				excDTStart, err = rrule.ParseDTStart(excDTStartValue)
				if err != nil {
					excDTStart = classified.DTStart
				}
				excRRulePartString = excRRulePart
			} else {
				excDTStart = classified.DTStart
				excRRulePartString = exc
			}
			excRule, err := rrule.ParseRRule(excRRulePartString)
			if err != nil {
				continue
			}
			// Mask only the date portion: when the excluded rule's time
			// of day differs from the constructive rule's, rewrite it to
			// match so the exclusion removes whole days rather than
			// specific times, mirroring datection's mask_kwargs trick.
			// The excluded DTSTART's clock time is aligned the same way.
			if !sameInts(excRule.ByHour, classified.Rule.ByHour) || !sameInts(excRule.ByMinute, classified.Rule.ByMinute) {
				excRule.ByHour = classified.Rule.ByHour
				excRule.ByMinute = classified.Rule.ByMinute
			}
			excDTStart = time.Date(excDTStart.Year(), excDTStart.Month(), excDTStart.Day(),
				classified.DTStart.Hour(), classified.DTStart.Minute(), classified.DTStart.Second(), 0, classified.DTStart.Location())
			goExc, err := toGoRRule(*excRule, excDTStart)
			if err != nil {
				continue
			}
			set.ExRule(goExc)
		}

		lo, hi := resolveBounds(classified, lower, upper)
		for _, occ := range set.Between(lo, hi, true) {
			if !yield(occ) {
				return
			}
		}
	}
}

func resolveBounds(c Classified, lower, upper *time.Time) (time.Time, time.Time) {
	unbounded := c.DurationRRule.Unlimited || (c.Until == nil && c.Rule.Count == nil)
	var lo, hi time.Time
	if lower != nil {
		lo = *lower
	} else if unbounded {
		now := time.Now().UTC()
		lo = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		lo = c.DTStart
	}
	if upper != nil {
		hi = *upper
	} else if end, ok := c.EndDate(); ok && !unbounded {
		hi = end
	} else {
		hi = lo.Add(defaultHorizon)
	}
	return lo, hi
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EstimateCount fills in d.EstimatedCount by iterating the rule bounded to
// a five-year horizon (or its own UNTIL, if sooner) and counting
// occurrences, capped at MaxEstimatedCount.
func EstimateCount(d DurationRRule) *int {
	classified, err := Classify(d)
	if err != nil {
		return nil
	}
	horizon := classified.DTStart.AddDate(5, 0, 0)
	if end, ok := classified.EndDate(); ok && end.Before(horizon) {
		horizon = end
	}
	count := 0
	for range Iterate(d, &classified.DTStart, &horizon) {
		count++
		if count >= MaxEstimatedCount {
			break
		}
	}
	return &count
}
