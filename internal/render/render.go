// Package render composes a human-readable description of a parsed
// schedule, grounded on datection/render.py and the per-template modules
// under datection/rendering/. It covers a single date, a bounded date
// interval, a weekly recurrence (bounded or unbounded) and a continuous
// interval, in French and English. It does not attempt every template
// combination datection/rendering/long.py covers — rendering a recurrence
// together with its excluded dates as a single prose sentence is a known
// gap (see DESIGN.md); an excluded date simply doesn't appear in the
// rendered text.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/lrenard/datex/internal/locale"
	"github.com/lrenard/datex/internal/schedule"
)

// Render joins a one-line description of each record in sch, in the
// language lang describes, grounded on datection.render.render (its
// "join every drr's rendering with '; '" outer loop).
func Render(sch []schedule.DurationRRule, lang *locale.Table) (string, error) {
	lines := make([]string, 0, len(sch))
	for _, d := range sch {
		c, err := schedule.Classify(d)
		if err != nil {
			continue
		}
		lines = append(lines, renderOne(c, lang))
	}
	return strings.Join(lines, "; "), nil
}

// renderOne picks the template family a record matches, in the same
// priority order datection/render.py's type dispatch checks them: a
// continuous span first (it is never a recurrence in the iCalendar sense),
// then a weekly recurrence (unbounded before bounded, since an unbounded
// one uses a different introductory phrase), then a single date, falling
// back to a bounded interval for anything else (e.g. a degenerate
// every-day-for-N-days span with no BYDAY).
func renderOne(c schedule.Classified, lang *locale.Table) string {
	switch {
	case c.Continuous:
		return renderContinuous(c, lang)
	case c.IsRecurring() && c.IsUnlimited():
		return renderUnboundedWeekly(c, lang)
	case c.IsRecurring():
		return renderBoundedWeekly(c, lang)
	case c.IsSingleDate():
		return renderSingleDate(c, lang)
	default:
		return renderBoundedInterval(c, lang)
	}
}

func renderSingleDate(c schedule.Classified, lang *locale.Table) string {
	s := fmt.Sprintf(lang.Templates.SingleDate, formatDate(c.DTStart, lang))
	return withTimeOfDay(s, c, lang)
}

func renderBoundedInterval(c schedule.Classified, lang *locale.Table) string {
	end, ok := c.EndDate()
	if !ok {
		return renderSingleDate(c, lang)
	}
	s := fmt.Sprintf(lang.Templates.DateRange, formatDate(c.DTStart, lang), formatDate(end, lang))
	return withTimeOfDay(s, c, lang)
}

// renderContinuous renders the full start and end moments, each carrying
// its own time of day, since a continuous span's two endpoints can fall on
// different times of day (unlike every other template family here, which
// shares one time of day across the whole span).
func renderContinuous(c schedule.Classified, lang *locale.Table) string {
	start, end := c.StartDatetime(), c.EndDatetime()
	return fmt.Sprintf(lang.Templates.DateRange, formatMoment(start, lang), formatMoment(end, lang))
}

func formatMoment(t time.Time, lang *locale.Table) string {
	return formatDate(t, lang) + " " + fmt.Sprintf(lang.Templates.At, formatTimeOfDay(t.Hour(), t.Minute(), lang))
}

func renderUnboundedWeekly(c schedule.Classified, lang *locale.Table) string {
	s := fmt.Sprintf(lang.Templates.Every, weekdayNames(c.WeekdayIndexes(), lang))
	return withTimeOfDay(s, c, lang)
}

func renderBoundedWeekly(c schedule.Classified, lang *locale.Table) string {
	s := fmt.Sprintf(lang.Templates.WeeklyOn, weekdayNames(c.WeekdayIndexes(), lang))
	s = withTimeOfDay(s, c, lang)
	if end, ok := c.EndDate(); ok {
		s += " " + fmt.Sprintf(lang.Templates.DateRange, formatDate(c.DTStart, lang), formatDate(end, lang))
	}
	return s
}

func withTimeOfDay(s string, c schedule.Classified, lang *locale.Table) string {
	if h, m, ok := firstTime(c); ok {
		return s + " " + fmt.Sprintf(lang.Templates.At, formatTimeOfDay(h, m, lang))
	}
	return s
}

// firstTime returns the rule's own starting time of day, if it carries one
// (an all-day event has none).
func firstTime(c schedule.Classified) (hour, minute int, ok bool) {
	if !c.HasTimings() || len(c.Rule.ByHour) == 0 || len(c.Rule.ByMinute) == 0 {
		return 0, 0, false
	}
	return c.Rule.ByHour[0], c.Rule.ByMinute[0], true
}

// weekdayNames joins a list of ISO weekday indexes into a phrase, the last
// two items joined by lang's "and" word rather than a comma, grounded on
// datection.rendering's list-join convention.
func weekdayNames(indexes []int, lang *locale.Table) string {
	names := make([]string, len(indexes))
	for i, idx := range indexes {
		names[i] = lang.Templates.Weekdays[idx]
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " " + lang.Templates.And + " " + names[len(names)-1]
	}
}

func formatDate(t time.Time, lang *locale.Table) string {
	return fmt.Sprintf("%d %s %d", t.Day(), lang.Templates.Months[int(t.Month())], t.Year())
}

func formatTimeOfDay(hour, minute int, lang *locale.Table) string {
	if lang.Code == "fr" {
		if minute == 0 {
			return fmt.Sprintf("%dh", hour)
		}
		return fmt.Sprintf("%dh%02d", hour, minute)
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	meridiem := "am"
	if hour >= 12 {
		meridiem = "pm"
	}
	if minute == 0 {
		return fmt.Sprintf("%d%s", h12, meridiem)
	}
	return fmt.Sprintf("%d:%02d%s", h12, minute, meridiem)
}
