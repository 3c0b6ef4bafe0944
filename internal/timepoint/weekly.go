package timepoint

import (
	"time"

	"github.com/lrenard/datex/internal/schedule"
	"github.com/lrenard/datex/rrule"
)

// Weekdays is a set of ISO weekday indexes (Monday=0 .. Sunday=6), e.g.
// {0,1,2,3,4} for "du lundi au vendredi". It never appears standalone in
// the exported grammar, only inside a WeeklyRecurrence.
type Weekdays struct {
	Indexes []int
}

func (Weekdays) sealed() {}

// Valid reports whether the set is non-empty and every index is in 0..6.
func (w Weekdays) Valid() bool {
	if len(w.Indexes) == 0 {
		return false
	}
	for _, i := range w.Indexes {
		if i < 0 || i > 6 {
			return false
		}
	}
	return true
}

// Export is not meaningful for a bare Weekdays value.
func (w Weekdays) Export() ([]schedule.DurationRRule, error) {
	return nil, ErrNotExportable
}

// Future always reports true: a weekday set alone carries no date to
// compare against reference.
func (w Weekdays) Future(reference time.Time) bool { return true }

// rruleWeekdays converts w to the rrule package's Weekday type.
func (w Weekdays) rruleWeekdays() []rrule.Weekday {
	out := make([]rrule.Weekday, len(w.Indexes))
	for i, idx := range w.Indexes {
		out[i] = rrule.WeekdayFromIndex(idx)
	}
	return out
}

// WeeklyRecurrence is the richest timepoint: a set of weekdays recurring
// within a date interval (possibly the MakeUndefinedDateInterval sentinel,
// meaning unbounded) at a single daily time window, e.g.
// "le lundi et le mercredi de 10h à midi, du 5 au 30 mars 2015".
type WeeklyRecurrence struct {
	Weekdays Weekdays
	Date     DateInterval
	Time     TimeInterval
}

func (WeeklyRecurrence) sealed() {}

// Valid reports whether the weekday set and time interval are valid, and
// the date interval is either itself valid or the undefined sentinel
// (an unbounded recurrence is a valid WeeklyRecurrence even though its
// date interval alone is not a valid DateInterval).
func (wr WeeklyRecurrence) Valid() bool {
	if !wr.Weekdays.Valid() || !wr.Time.Valid() {
		return false
	}
	return wr.Date.Valid() || wr.Date.Undefined()
}

// Export renders a WEEKLY rule on wr.Weekdays, bounded by wr.Date unless it
// is the undefined sentinel, in which case Unlimited is set and the rule's
// UNTIL is left at the far sentinel date so the rule reads as open-ended,
// grounded on WeeklyRecurrence.export's rrule["unlimited"] flag.
func (wr WeeklyRecurrence) Export() ([]schedule.DurationRRule, error) {
	start, ok := dateAt(wr.Date.Start, wr.Time.Start)
	if !ok {
		return nil, ErrIncompleteDate
	}
	end, ok := dateAt(wr.Date.End, wr.Time.Start)
	if !ok {
		return nil, ErrIncompleteDate
	}
	wire := buildWeekly(start, end, wr.Weekdays.rruleWeekdays(), wr.Time.Start.Hour, wr.Time.Start.Minute)
	dur := durationMinutes(wr.Time.Start, wr.Time.End)
	return []schedule.DurationRRule{{
		RRule:     wire,
		Duration:  dur,
		Unlimited: wr.Date.Undefined(),
	}}, nil
}

// Future reports whether the recurrence's date interval lies on or after
// reference, always true when the interval is the undefined sentinel.
func (wr WeeklyRecurrence) Future(reference time.Time) bool {
	if wr.Date.Undefined() {
		return true
	}
	return wr.Date.Future(reference)
}
