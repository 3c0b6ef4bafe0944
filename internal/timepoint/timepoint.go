// Package timepoint implements the Timepoint algebra: a closed set of
// types representing partially- or fully-specified dates, times and
// recurrences, each able to validate itself, report whether it lies in
// the future relative to a reference instant, and export itself to one or
// more schedule.DurationRRule records.
//
// Unlike the Python original this is modeled on (datection.timepoint),
// there is no class hierarchy with virtual export()/future() methods:
// Timepoint is a sum type closed over this package's types (enforced by
// the unexported sealed() method), and each variant carries its own
// Valid, Export and Future methods.
package timepoint

import (
	"time"

	"github.com/lrenard/datex/internal/schedule"
)

// AllDay is the duration, in minutes, used to mark an event that lasts the
// entire day rather than a specific time window.
const AllDay = schedule.AllDay

// dayStart and dayEnd are the times of day datection combines with a bare
// Date to produce the start/end bound of a day-granular rrule.
var (
	dayStart = Time{Hour: 0, Minute: 0}
	dayEnd   = Time{Hour: 23, Minute: 59}
)

// Timepoint is implemented by every variant in this package: Date, Time,
// TimeInterval, DateList, DateInterval, Datetime, DatetimeList,
// DatetimeInterval, ContinuousDatetimeInterval, Weekdays and
// WeeklyRecurrence.
type Timepoint interface {
	// Valid reports whether the timepoint's fields describe a meaningful
	// point or span (a well-formed calendar date, an hour in 0..23, etc).
	Valid() bool
	// Export converts the timepoint into one or more wire-format
	// schedule.DurationRRule records. Most variants produce exactly one;
	// DateList and DatetimeList produce one per element.
	Export() ([]schedule.DurationRRule, error)
	// Future reports whether the timepoint denotes a moment at or after
	// reference.
	Future(reference time.Time) bool

	sealed()
}

// Date represents a calendar date that tolerates a missing year and/or
// month, the way free text often does ("le 18 juin", no year given).
type Date struct {
	Year  *int
	Month *int
	Day   int
}

func (Date) sealed() {}

// Valid reports whether Year, Month and Day together describe a real
// calendar date.
func (d Date) Valid() bool {
	t, ok := d.toTime()
	if !ok {
		return false
	}
	y, m, day := t.Date()
	return y == *d.Year && int(m) == *d.Month && day == d.Day
}

// toTime converts d to a time.Time at midnight UTC, returning false if
// Year or Month is missing.
func (d Date) toTime() (time.Time, bool) {
	if d.Year == nil || d.Month == nil {
		return time.Time{}, false
	}
	return time.Date(*d.Year, time.Month(*d.Month), d.Day, 0, 0, 0, 0, time.UTC), true
}

// Export renders a single-occurrence, all-day DurationRRule, grounded on
// Date.export in datection.timepoint (FREQ=DAILY;COUNT=1 at midnight).
func (d Date) Export() ([]schedule.DurationRRule, error) {
	t, ok := d.toTime()
	if !ok {
		return nil, ErrIncompleteDate
	}
	wire, err := buildSingle(t, 0, 0)
	if err != nil {
		return nil, err
	}
	return []schedule.DurationRRule{{RRule: wire, Duration: AllDay}}, nil
}

// Future reports whether d falls on or after reference's date.
func (d Date) Future(reference time.Time) bool {
	t, ok := d.toTime()
	if !ok {
		return false
	}
	ref := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.UTC)
	return !t.Before(ref)
}

// Time represents a time of day that tolerates being constructed with an
// out-of-range hour or minute; Valid reports whether it is in fact sound.
type Time struct {
	Hour   int
	Minute int
}

func (Time) sealed() {}

// Valid reports whether Hour is in [0,23] and Minute is in [0,59].
func (t Time) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// Export is not meaningful for a bare Time; it is always combined with a
// Date before export, so it returns ErrNotExportable.
func (t Time) Export() ([]schedule.DurationRRule, error) {
	return nil, ErrNotExportable
}

// Future always reports true: a time of day alone carries no date
// information to compare against reference.
func (t Time) Future(reference time.Time) bool { return true }

// TimeInterval pairs a start and end time of day, e.g. "de 8h à 10h".
type TimeInterval struct {
	Start Time
	End   Time
}

func (TimeInterval) sealed() {}

// Valid reports whether both Start and End are valid times of day.
func (ti TimeInterval) Valid() bool {
	return ti.Start.Valid() && ti.End.Valid()
}

// Export is not meaningful for a bare TimeInterval.
func (ti TimeInterval) Export() ([]schedule.DurationRRule, error) {
	return nil, ErrNotExportable
}

// Future always reports true, for the same reason as Time.Future.
func (ti TimeInterval) Future(reference time.Time) bool { return true }

// IsSingleTime reports whether Start and End denote the same time of day.
func (ti TimeInterval) IsSingleTime() bool {
	return ti.Start == ti.End
}

// durationMinutes returns the number of minutes between start and end,
// treating an end time earlier than start as crossing midnight (so it
// never returns a negative duration for a same-day interval). A
// TimeInterval built from a single time (start == end) legitimately
// yields 0, the same as the Python duration() helper this mirrors — it is
// not the AllDay sentinel, which only marks a bare Date with no time
// component at all.
func durationMinutes(start, end Time) int {
	s := start.Hour*60 + start.Minute
	e := end.Hour*60 + end.Minute
	if e < s {
		e += 24 * 60
	}
	return e - s
}
