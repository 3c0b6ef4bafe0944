package timepoint

import (
	"time"

	"github.com/lrenard/datex/internal/schedule"
)

// unlimitedStart and unlimitedEnd are the sentinel bounds datection assigns
// a DateInterval whose start or end was never found in the text, grounded
// on DateInterval.make_undefined's date(1, 1, 1) / date(9999, 12, 31).
var (
	unlimitedStartYear, unlimitedStartMonth = 1, 1
	unlimitedEndYear, unlimitedEndMonth     = 9999, 12

	unlimitedStart = Date{Year: &unlimitedStartYear, Month: &unlimitedStartMonth, Day: 1}
	unlimitedEnd   = Date{Year: &unlimitedEndYear, Month: &unlimitedEndMonth, Day: 31}
)

// DateInterval is a bounded span of whole days, e.g. "du 5 au 7 mars 2015".
// A DateInterval built by MakeUndefinedDateInterval stands for "no bound
// was found in the text" and combines with a WeeklyRecurrence to produce
// an unlimited recurrence.
type DateInterval struct {
	Start Date
	End   Date
}

func (DateInterval) sealed() {}

// MakeUndefinedDateInterval returns the sentinel DateInterval datection
// substitutes when weekly recurrence text carries no explicit date bound.
func MakeUndefinedDateInterval() DateInterval {
	return DateInterval{Start: unlimitedStart, End: unlimitedEnd}
}

// Undefined reports whether di is the MakeUndefinedDateInterval sentinel.
func (di DateInterval) Undefined() bool {
	return di.Start == unlimitedStart && di.End == unlimitedEnd
}

// Valid reports whether both bounds are valid and Start does not fall
// after End. The undefined sentinel is never valid, even though its
// individual bounds are well-formed calendar dates.
func (di DateInterval) Valid() bool {
	if di.Undefined() {
		return false
	}
	if !di.Start.Valid() || !di.End.Valid() {
		return false
	}
	st, _ := di.Start.toTime()
	en, _ := di.End.toTime()
	return !st.After(en)
}

// Export renders a single all-day DAILY rule spanning Start through End,
// DTSTART and UNTIL both rendered as bare dates.
func (di DateInterval) Export() ([]schedule.DurationRRule, error) {
	st, ok := di.Start.toTime()
	if !ok {
		return nil, ErrIncompleteDate
	}
	en, ok := di.End.toTime()
	if !ok {
		return nil, ErrIncompleteDate
	}
	wire := buildDailyRange(st, en, 0, 0)
	return []schedule.DurationRRule{{RRule: wire, Duration: AllDay}}, nil
}

// Future reports whether End falls on or after reference's date.
func (di DateInterval) Future(reference time.Time) bool {
	return di.End.Future(reference)
}

// Datetime is a single date combined with a time interval, e.g.
// "le 5 mars 2015 de 8h à 10h".
type Datetime struct {
	Date Date
	Time TimeInterval
}

func (Datetime) sealed() {}

// Valid reports whether both the date and the time interval are valid.
func (dt Datetime) Valid() bool {
	return dt.Date.Valid() && dt.Time.Valid()
}

// Export renders a single occurrence starting at dt.Date/dt.Time.Start and
// lasting until dt.Time.End.
func (dt Datetime) Export() ([]schedule.DurationRRule, error) {
	start, ok := dateAt(dt.Date, dt.Time.Start)
	if !ok {
		return nil, ErrIncompleteDate
	}
	wire, err := buildSingle(start, dt.Time.Start.Hour, dt.Time.Start.Minute)
	if err != nil {
		return nil, err
	}
	dur := durationMinutes(dt.Time.Start, dt.Time.End)
	return []schedule.DurationRRule{{RRule: wire, Duration: dur}}, nil
}

// Future reports whether dt's date lies on or after reference's date.
func (dt Datetime) Future(reference time.Time) bool {
	return dt.Date.Future(reference)
}

// DatetimeInterval is a date interval combined with a single daily time
// window, e.g. "du 5 au 7 mars 2015 de 8h à 10h".
type DatetimeInterval struct {
	Date DateInterval
	Time TimeInterval
}

func (DatetimeInterval) sealed() {}

// Valid reports whether both the date interval and the time interval are
// valid.
func (dti DatetimeInterval) Valid() bool {
	return dti.Date.Valid() && dti.Time.Valid()
}

// Export renders a DAILY rule spanning dti.Date at dti.Time.Start, lasting
// durationMinutes(dti.Time.Start, dti.Time.End) each day. DTSTART is a bare
// date; UNTIL carries the end date pinned to end-of-day.
func (dti DatetimeInterval) Export() ([]schedule.DurationRRule, error) {
	start, ok := dti.Date.Start.toTime()
	if !ok {
		return nil, ErrIncompleteDate
	}
	end, ok := dti.Date.End.toTime()
	if !ok {
		return nil, ErrIncompleteDate
	}
	wire := buildDailyUntilDayEnd(start, end, dti.Time.Start.Hour, dti.Time.Start.Minute)
	dur := durationMinutes(dti.Time.Start, dti.Time.End)
	return []schedule.DurationRRule{{RRule: wire, Duration: dur}}, nil
}

// Future reports whether dti's date interval lies on or after reference.
func (dti DatetimeInterval) Future(reference time.Time) bool {
	return dti.Date.Future(reference)
}

// ContinuousDatetimeInterval spans from one date/time to another without a
// daily on/off cycle, e.g. "du 5 mars 2015 20h au 7 mars 2015 2h" for an
// event that runs through the night. Exported with Continuous set so
// downstream consumers know not to carve it into per-day occurrences.
type ContinuousDatetimeInterval struct {
	Start Datetime
	End   Datetime
}

func (ContinuousDatetimeInterval) sealed() {}

// Valid reports whether both endpoints are valid and Start does not fall
// strictly after End.
func (cdi ContinuousDatetimeInterval) Valid() bool {
	if !cdi.Start.Date.Valid() || !cdi.End.Date.Valid() {
		return false
	}
	st, ok1 := dateAt(cdi.Start.Date, cdi.Start.Time.Start)
	en, ok2 := dateAt(cdi.End.Date, cdi.End.Time.Start)
	return ok1 && ok2 && !st.After(en)
}

// Export renders a single DAILY rule running continuously from Start to
// End: a bare-date DTSTART, UNTIL pinned to the end date's end-of-day, and
// BYHOUR/BYMINUTE from the start time, grounded on
// ContinuousDatetimeInterval.rrulestr. Continuous is set and Duration is
// measured in minutes between the two endpoints' actual start/end times,
// not the rule's UNTIL.
func (cdi ContinuousDatetimeInterval) Export() ([]schedule.DurationRRule, error) {
	startDate, ok := cdi.Start.Date.toTime()
	if !ok {
		return nil, ErrIncompleteDate
	}
	endDate, ok := cdi.End.Date.toTime()
	if !ok {
		return nil, ErrIncompleteDate
	}
	start, ok := dateAt(cdi.Start.Date, cdi.Start.Time.Start)
	if !ok {
		return nil, ErrIncompleteDate
	}
	end, ok := dateAt(cdi.End.Date, cdi.End.Time.Start)
	if !ok {
		return nil, ErrIncompleteDate
	}
	wire := buildDailyUntilDayEnd(startDate, endDate, cdi.Start.Time.Start.Hour, cdi.Start.Time.Start.Minute)
	dur := int(end.Sub(start).Minutes())
	return []schedule.DurationRRule{{RRule: wire, Duration: dur, Continuous: true}}, nil
}

// Future reports whether the interval's End lies on or after reference.
func (cdi ContinuousDatetimeInterval) Future(reference time.Time) bool {
	return cdi.End.Future(reference)
}
