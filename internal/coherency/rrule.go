package coherency

import (
	"github.com/lrenard/datex/internal/schedule"
	"github.com/lrenard/datex/rrule"
)

// Heuristic caps grounded on RRuleCoherencyFilter's MAX_* class constants.
const (
	MaxSingleDateRRules        = 40
	MaxSmallDateIntervalRRules = 5
	MaxLongDateIntervalRRules  = 2
)

// FilterRRules removes DurationRRule records that are incoherent with the
// rest of the list, or that push the list past a reasonable size, grounded
// on RRuleCoherencyFilter.apply_coherency_heuristics. Day-level collision
// filtering (apply_day_level_collison_coherency_heuristics) is not applied:
// the method it is grounded on is itself left unimplemented in the source
// this package is grounded on.
func FilterRRules(records []schedule.Classified) []schedule.Classified {
	records = applyTypeHeuristics(records)
	records = applySizeHeuristics(records)
	return records
}

// applyTypeHeuristics enforces that single dates, long date intervals and
// unlimited date intervals each only cohabit with their own kind (plus, for
// single dates, small date intervals), grounded on
// RRuleCoherencyFilter.apply_rrule_type_coherency_heuristics.
func applyTypeHeuristics(records []schedule.Classified) []schedule.Classified {
	records = keepOnlyIfAnyMatch(records,
		func(r schedule.Classified) bool { return r.IsSingleDate() },
		func(r schedule.Classified) bool { return r.IsSingleDate() || r.SmallDateInterval() },
	)
	records = keepOnlyIfAnyMatch(records,
		func(r schedule.Classified) bool { return r.LongDateInterval() },
		func(r schedule.Classified) bool { return r.LongDateInterval() },
	)
	records = keepOnlyIfAnyMatch(records,
		func(r schedule.Classified) bool { return r.UnlimitedDateInterval() },
		func(r schedule.Classified) bool { return r.UnlimitedDateInterval() },
	)
	return records
}

// keepOnlyIfAnyMatch leaves records untouched unless at least one record
// satisfies trigger, in which case only the records satisfying keep
// survive.
func keepOnlyIfAnyMatch(records []schedule.Classified, trigger, keep func(schedule.Classified) bool) []schedule.Classified {
	present := false
	for _, r := range records {
		if trigger(r) {
			present = true
			break
		}
	}
	if !present {
		return records
	}
	out := make([]schedule.Classified, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// applySizeHeuristics bounds how many single-date and small-date-interval
// records survive overall, and how many long-date-interval records survive
// per weekday, grounded on
// RRuleCoherencyFilter.apply_rrule_size_coherency_heuristics.
func applySizeHeuristics(records []schedule.Classified) []schedule.Classified {
	records = capByPredicate(records, MaxSingleDateRRules, schedule.Classified.IsSingleDate)
	records = capByPredicate(records, MaxSmallDateIntervalRRules, schedule.Classified.SmallDateInterval)
	records = capLongDateIntervalsPerWeekday(records)
	return records
}

func capByPredicate(records []schedule.Classified, max int, match func(schedule.Classified) bool) []schedule.Classified {
	out := make([]schedule.Classified, 0, len(records))
	kept := 0
	for _, r := range records {
		if match(r) {
			if kept >= max {
				continue
			}
			kept++
		}
		out = append(out, r)
	}
	return out
}

// capLongDateIntervalsPerWeekday keeps at most MaxLongDateIntervalRRules
// long-date-interval records per weekday. A record whose weekdays are only
// partly over budget is narrowed to the weekdays still under it rather
// than dropped outright, grounded on
// RRuleCoherencyFilter.apply_long_date_interval_number_coherency_heuristics.
func capLongDateIntervalsPerWeekday(records []schedule.Classified) []schedule.Classified {
	kept := map[int]int{}
	out := make([]schedule.Classified, 0, len(records))
	for _, r := range records {
		if !r.LongDateInterval() || len(r.Rule.Weekday) == 0 {
			out = append(out, r)
			continue
		}

		allUnderBudget := true
		for _, bd := range r.Rule.Weekday {
			if kept[bd.Weekday.Index()] >= MaxLongDateIntervalRRules {
				allUnderBudget = false
				break
			}
		}
		if allUnderBudget {
			for _, bd := range r.Rule.Weekday {
				kept[bd.Weekday.Index()]++
			}
			out = append(out, r)
			continue
		}

		var allowed []rrule.ByDay
		for _, bd := range r.Rule.Weekday {
			if kept[bd.Weekday.Index()] < MaxLongDateIntervalRRules {
				kept[bd.Weekday.Index()]++
				allowed = append(allowed, bd)
			}
		}
		if len(allowed) == 0 {
			continue
		}
		out = append(out, r.WithWeekdays(allowed))
	}
	return out
}
