// Package pack merges redundant or adjacent schedule records into fewer,
// broader ones, grounded on datection.pack.RrulePacker: a single date
// absorbed by a continuous span or a weekly recurrence it already falls
// within, a single date extending a continuous span or recurrence by one
// day or week, and two continuous spans or two weekly recurrences fused
// together when they overlap, touch, or share compatible bounds.
package pack

import (
	"time"

	"github.com/lrenard/datex/internal/schedule"
	"github.com/lrenard/datex/rrule"
)

// Pack repeatedly applies every merge rule to records until none of them
// fire anymore, grounded on RrulePacker.pack_rrules.
func Pack(records []schedule.Classified) []schedule.Classified {
	singles, continuous, weekly, others := partition(records)

	for {
		before := len(singles) + len(continuous) + len(weekly)
		singles = includeInContinuous(singles, continuous)
		singles = includeInWeekly(singles, weekly)
		singles, continuous = extendContinuousWithSingles(singles, continuous)
		singles, weekly = extendWeeklyWithSingles(singles, weekly)
		continuous = fuseContinuous(continuous)
		weekly = fuseWeekly(weekly)
		if len(singles)+len(continuous)+len(weekly) == before {
			break
		}
	}

	out := make([]schedule.Classified, 0, len(singles)+len(continuous)+len(weekly)+len(others))
	out = append(out, singles...)
	out = append(out, continuous...)
	out = append(out, weekly...)
	out = append(out, others...)
	return out
}

func partition(records []schedule.Classified) (singles, continuous, weekly, others []schedule.Classified) {
	for _, r := range records {
		switch {
		case r.IsSingleDate():
			singles = append(singles, r)
		case r.Continuous:
			continuous = append(continuous, r)
		case r.IsRecurring():
			weekly = append(weekly, r)
		default:
			others = append(others, r)
		}
	}
	return
}

// haveSameTimings reports whether a and b share the same duration and
// daily time window, grounded on pack.have_same_timings.
func haveSameTimings(a, b schedule.Classified) bool {
	return a.Duration == b.Duration &&
		sameIntSet(a.Rule.ByHour, b.Rule.ByHour) &&
		sameIntSet(a.Rule.ByMinute, b.Rule.ByMinute)
}

func sameIntSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int]bool, len(a))
	for _, v := range a {
		seen[v] = true
	}
	for _, v := range b {
		if !seen[v] {
			return false
		}
	}
	return true
}

// hasDateInbetween reports whether single starts and ends within
// container's span (an unlimited container has no end to exceed),
// grounded on pack.has_date_inbetween.
func hasDateInbetween(single, container schedule.Classified) bool {
	if single.StartDatetime().Before(container.StartDatetime()) {
		return false
	}
	return container.IsUnlimited() || !single.EndDatetime().After(container.EndDatetime())
}

// hasWeekdayIncluded reports whether single's weekday is one of weekly's
// recurring weekdays, grounded on pack.has_weekday_included.
func hasWeekdayIncluded(single, weekly schedule.Classified) bool {
	days := weekly.WeekdayIndexes()
	if len(days) == 0 {
		return false
	}
	target := isoWeekday(single.StartDatetime())
	for _, d := range days {
		if d == target {
			return true
		}
	}
	return false
}

func isoWeekday(t time.Time) int {
	return rrule.WeekdayFromTime(t.Weekday()).Index()
}

func isADayBefore(single, cont schedule.Classified) bool {
	return sameDate(single.StartDatetime(), cont.StartDatetime().AddDate(0, 0, -1))
}

func isADayAfter(single, cont schedule.Classified) bool {
	if cont.IsUnlimited() {
		return false
	}
	return sameDate(single.StartDatetime(), cont.EndDatetime().AddDate(0, 0, 1))
}

func isAWeekBefore(single, weekly schedule.Classified) bool {
	s := dateOnly(single.StartDatetime())
	w := dateOnly(weekly.StartDatetime())
	if s.Before(w) {
		return s.AddDate(0, 0, 7).After(w)
	}
	return false
}

func isAWeekAfter(single, weekly schedule.Classified) bool {
	if weekly.IsUnlimited() {
		return false
	}
	s := dateOnly(single.StartDatetime())
	w := dateOnly(weekly.EndDatetime())
	if s.After(w) {
		return w.AddDate(0, 0, 7).After(s)
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b))
}

func areOverlapping(a, b schedule.Classified) bool {
	switch {
	case a.IsUnlimited() && b.IsUnlimited():
		return true
	case a.IsUnlimited():
		return !a.StartDatetime().After(b.EndDatetime())
	case b.IsUnlimited():
		return !b.StartDatetime().After(a.EndDatetime())
	case a.EndDatetime().Before(b.EndDatetime()) || a.EndDatetime().Equal(b.EndDatetime()):
		return !a.EndDatetime().Before(b.StartDatetime())
	default:
		return !b.EndDatetime().Before(a.StartDatetime())
	}
}

func areContiguous(a, b schedule.Classified) bool {
	if sameDate(a.EndDatetime(), b.StartDatetime().AddDate(0, 0, -1)) {
		return true
	}
	return sameDate(b.EndDatetime(), a.StartDatetime().AddDate(0, 0, -1))
}

func includeInContinuous(singles, continuous []schedule.Classified) []schedule.Classified {
	return filterOut(singles, func(s schedule.Classified) bool {
		for _, c := range continuous {
			if hasDateInbetween(s, c) && haveSameTimings(s, c) {
				return true
			}
		}
		return false
	})
}

func includeInWeekly(singles, weekly []schedule.Classified) []schedule.Classified {
	return filterOut(singles, func(s schedule.Classified) bool {
		for _, w := range weekly {
			if hasDateInbetween(s, w) && haveSameTimings(s, w) && hasWeekdayIncluded(s, w) {
				return true
			}
		}
		return false
	})
}

func filterOut(items []schedule.Classified, drop func(schedule.Classified) bool) []schedule.Classified {
	out := items[:0:0]
	for _, it := range items {
		if !drop(it) {
			out = append(out, it)
		}
	}
	return out
}

// extendContinuousWithSingles repeatedly folds any single date that sits
// exactly one day before or after a continuous span into that span's
// bound, grounded on RrulePacker.extend_cont_with_sing.
func extendContinuousWithSingles(singles, continuous []schedule.Classified) (remaining, updated []schedule.Classified) {
	remaining = append([]schedule.Classified(nil), singles...)
	for {
		extendedAny := false
		for i, s := range remaining {
			for j, c := range continuous {
				if c.IsUnlimited() || !haveSameTimings(s, c) {
					continue
				}
				switch {
				case isADayBefore(s, c):
					continuous[j] = c.WithBounds(s.StartDatetime(), c.Until)
				case isADayAfter(s, c):
					end := s.EndDatetime()
					continuous[j] = c.WithBounds(c.DTStart, &end)
				default:
					continue
				}
				remaining = append(remaining[:i], remaining[i+1:]...)
				extendedAny = true
				break
			}
			if extendedAny {
				break
			}
		}
		if !extendedAny {
			break
		}
	}
	return remaining, continuous
}

// extendWeeklyWithSingles mirrors extendContinuousWithSingles for weekly
// recurrences, grounded on RrulePacker.extend_wrec_with_sing.
func extendWeeklyWithSingles(singles, weekly []schedule.Classified) (remaining, updated []schedule.Classified) {
	remaining = append([]schedule.Classified(nil), singles...)
	for {
		extendedAny := false
		for i, s := range remaining {
			for j, w := range weekly {
				if !haveSameTimings(s, w) || !hasWeekdayIncluded(s, w) {
					continue
				}
				switch {
				case isAWeekBefore(s, w):
					weekly[j] = w.WithBounds(s.StartDatetime(), w.Until)
				case isAWeekAfter(s, w):
					end := s.EndDatetime()
					weekly[j] = w.WithBounds(w.DTStart, &end)
				default:
					continue
				}
				remaining = append(remaining[:i], remaining[i+1:]...)
				extendedAny = true
				break
			}
			if extendedAny {
				break
			}
		}
		if !extendedAny {
			break
		}
	}
	return remaining, weekly
}

// fuseContinuous repeatedly merges any two continuous spans that overlap
// or touch end-to-end, grounded on RrulePacker.fusion_cont_cont.
func fuseContinuous(continuous []schedule.Classified) []schedule.Classified {
	for {
		i, j, found := findMergeable(continuous, func(a, b schedule.Classified) bool {
			return haveSameTimings(a, b) && (areOverlapping(a, b) || areContiguous(a, b))
		})
		if !found {
			return continuous
		}
		continuous[i] = mergeContinuous(continuous[i], continuous[j])
		continuous = append(continuous[:j], continuous[j+1:]...)
	}
}

func mergeContinuous(a, b schedule.Classified) schedule.Classified {
	start := a.StartDatetime()
	if b.StartDatetime().Before(start) {
		start = b.StartDatetime()
	}
	if a.IsUnlimited() || b.IsUnlimited() {
		return a.WithBounds(start, nil)
	}
	end := a.EndDatetime()
	if b.EndDatetime().After(end) {
		end = b.EndDatetime()
	}
	return a.WithBounds(start, &end)
}

// fuseWeekly repeatedly merges any two weekly recurrences with the same
// daily timing whose bounds are compatible, grounded on
// RrulePacker.fusion_wrec_wrec.
func fuseWeekly(weekly []schedule.Classified) []schedule.Classified {
	for {
		i, j, found := findMergeable(weekly, func(a, b schedule.Classified) bool {
			if !haveSameTimings(a, b) {
				return false
			}
			if haveCompatibleBounds(a, b) {
				return true
			}
			return haveSameDays(a, b) && areClose(a, b)
		})
		if !found {
			return weekly
		}
		weekly[i] = mergeWeekly(weekly[i], weekly[j])
		weekly = append(weekly[:j], weekly[j+1:]...)
	}
}

func findMergeable(items []schedule.Classified, compatible func(a, b schedule.Classified) bool) (int, int, bool) {
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if compatible(items[i], items[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// firstOfWeekly returns the date of wr's earliest occurrence on one of
// its recurring weekdays, grounded on pack.get_first_of_weekly.
func firstOfWeekly(wr schedule.Classified) time.Time {
	start := dateOnly(wr.StartDatetime())
	days := wr.WeekdayIndexes()
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		if containsInt(days, isoWeekday(d)) {
			return d
		}
	}
	return start
}

// lastOfWeekly returns the date of wr's latest occurrence on one of its
// recurring weekdays, grounded on pack.get_last_of_weekly.
func lastOfWeekly(wr schedule.Classified) time.Time {
	end := dateOnly(wr.EndDatetime())
	days := wr.WeekdayIndexes()
	for i := 0; i < 7; i++ {
		d := end.AddDate(0, 0, -i)
		if containsInt(days, isoWeekday(d)) {
			return d
		}
	}
	return end
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func areClose(a, b schedule.Classified) bool {
	if !a.IsUnlimited() {
		return lastOfWeekly(a).AddDate(0, 0, 7).Equal(firstOfWeekly(b))
	}
	if !b.IsUnlimited() {
		return lastOfWeekly(b).AddDate(0, 0, 7).Equal(firstOfWeekly(a))
	}
	return false
}

func haveCompatibleBounds(a, b schedule.Classified) bool {
	firstA, firstB := firstOfWeekly(a), firstOfWeekly(b)
	delta := firstB.Sub(firstA)
	if delta < 0 {
		delta = -delta
	}
	return delta < 7*24*time.Hour
}

func haveSameDays(a, b schedule.Classified) bool {
	return sameIntSet(a.WeekdayIndexes(), b.WeekdayIndexes())
}

func mergeWeekly(a, b schedule.Classified) schedule.Classified {
	first := firstOfWeekly(a)
	if firstOfWeekly(b).Before(first) {
		first = firstOfWeekly(b)
	}
	last := lastOfWeekly(a)
	if lastOfWeekly(b).After(last) {
		last = lastOfWeekly(b)
	}
	days := unionInts(a.WeekdayIndexes(), b.WeekdayIndexes())
	byDay := make([]rrule.ByDay, len(days))
	for i, d := range days {
		byDay[i] = rrule.ByDay{Weekday: rrule.WeekdayFromIndex(d), Interval: 1}
	}
	merged := a.WithWeekdays(byDay)
	if merged.IsUnlimited() {
		return merged
	}
	return merged.WithBounds(first, &last)
}

func unionInts(a, b []int) []int {
	seen := make(map[int]bool, len(a)+len(b))
	for _, v := range a {
		seen[v] = true
	}
	for _, v := range b {
		seen[v] = true
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sortInts(out)
	return out
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
