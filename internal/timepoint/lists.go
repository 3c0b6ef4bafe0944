package timepoint

import (
	"time"

	"github.com/lrenard/datex/internal/schedule"
)

// DateList is a sequence of dates sharing the trailing elements' month
// and year when their own are missing, e.g. "5, 6 et 7 mars 2015".
type DateList struct {
	Dates []Date
}

func (DateList) sealed() {}

// NewDateList builds a DateList from grammar-parsed dates, propagating the
// last date's year and month onto any earlier date missing them, grounded
// on DateList.from_match's set_months/set_years classmethods.
func NewDateList(dates []Date) DateList {
	if len(dates) == 0 {
		return DateList{}
	}
	last := dates[len(dates)-1]
	out := make([]Date, len(dates))
	copy(out, dates)
	for i := 0; i < len(out)-1; i++ {
		if out[i].Month == nil {
			out[i].Month = last.Month
		}
		if out[i].Year == nil {
			out[i].Year = last.Year
		}
	}
	return DateList{Dates: out}
}

// Valid reports whether every date in the list is valid.
func (dl DateList) Valid() bool {
	if len(dl.Dates) == 0 {
		return false
	}
	for _, d := range dl.Dates {
		if !d.Valid() {
			return false
		}
	}
	return true
}

// Export returns one all-day DurationRRule per date.
func (dl DateList) Export() ([]schedule.DurationRRule, error) {
	out := make([]schedule.DurationRRule, 0, len(dl.Dates))
	for _, d := range dl.Dates {
		rules, err := d.Export()
		if err != nil {
			return nil, err
		}
		out = append(out, rules...)
	}
	return out, nil
}

// Future reports whether any date in the list lies at or after reference.
func (dl DateList) Future(reference time.Time) bool {
	for _, d := range dl.Dates {
		if d.Future(reference) {
			return true
		}
	}
	return false
}

// DatetimeList is a sequence of dates sharing a single time interval, e.g.
// "5, 6 et 7 mars 2015 de 20h à 22h".
type DatetimeList struct {
	Dates []Date
	Time  TimeInterval
}

func (DatetimeList) sealed() {}

// NewDatetimeList builds a DatetimeList, propagating year/month across
// Dates the same way NewDateList does.
func NewDatetimeList(dates []Date, ti TimeInterval) DatetimeList {
	return DatetimeList{Dates: NewDateList(dates).Dates, Time: ti}
}

// Valid reports whether every date and the time interval are valid.
func (dtl DatetimeList) Valid() bool {
	if len(dtl.Dates) == 0 || !dtl.Time.Valid() {
		return false
	}
	for _, d := range dtl.Dates {
		if !d.Valid() {
			return false
		}
	}
	return true
}

// Export returns one DurationRRule per date, each a single occurrence at
// dtl.Time.Start lasting durationMinutes(dtl.Time.Start, dtl.Time.End).
func (dtl DatetimeList) Export() ([]schedule.DurationRRule, error) {
	dur := durationMinutes(dtl.Time.Start, dtl.Time.End)
	out := make([]schedule.DurationRRule, 0, len(dtl.Dates))
	for _, d := range dtl.Dates {
		t, ok := d.toTime()
		if !ok {
			return nil, ErrIncompleteDate
		}
		wire, err := buildSingle(t, dtl.Time.Start.Hour, dtl.Time.Start.Minute)
		if err != nil {
			return nil, err
		}
		out = append(out, schedule.DurationRRule{RRule: wire, Duration: dur})
	}
	return out, nil
}

// Future reports whether any date in the list lies at or after reference.
func (dtl DatetimeList) Future(reference time.Time) bool {
	for _, d := range dtl.Dates {
		if d.Future(reference) {
			return true
		}
	}
	return false
}
