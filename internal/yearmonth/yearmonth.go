// Package yearmonth fills in the year and month a Date is missing after
// grammar extraction, e.g. "le 18 juin" parsed with no year in sight,
// grounded on datection.year_inheritance.YearTransmitter.transmit and the
// set_month/set_months classmethods in datection.timepoint.
//
// It operates one step below the Timepoint sum type: callers collect the
// Date pointers a composite Timepoint still needs resolved (its
// yearless/monthless leaves) before freezing the composite, run the
// transmitter over them, then construct the final Timepoint value. This
// mirrors the effect of the original's in-place attribute mutation without
// needing mutable Timepoint values.
package yearmonth

import (
	"time"

	"github.com/lrenard/datex/internal/timepoint"
)

// Container is a year-defined span of calendar days, built by the caller
// from an already-resolved Timepoint (a Date, DateInterval, Datetime,
// DatetimeInterval or WeeklyRecurrence), used as a candidate to transmit
// its year onto a yearless Date whose day and month fall within it.
type Container struct {
	Year  int
	Start MonthDay
	End   MonthDay
}

// MonthDay is a month/day pair ignoring year, used to match a yearless
// Date against a Container's span without needing to enumerate every day.
type MonthDay struct {
	Month, Day int
}

// covers reports whether md falls within [c.Start, c.End], including the
// case where the span wraps across a year boundary (e.g. Dec 20 -> Jan 5).
func (c Container) covers(md MonthDay) bool {
	s, e, t := monthDayKey(c.Start), monthDayKey(c.End), monthDayKey(md)
	if s <= e {
		return t >= s && t <= e
	}
	return t >= s || t <= e
}

func monthDayKey(md MonthDay) int { return md.Month*100 + md.Day }

// TransmitYears fills the Year of every Date in yearless that has none,
// first by finding a Container whose span covers that Date's month/day
// (transmit-from-peer strategy), then — for anything still yearless — by
// applying the reference-year heuristic (transmit-from-reference
// strategy), exactly as YearTransmitter.transmit runs its two passes in
// order.
func TransmitYears(yearless []*timepoint.Date, containers []Container, reference *time.Time) {
	for _, d := range yearless {
		if d.Year != nil || d.Month == nil {
			continue
		}
		md := MonthDay{Month: *d.Month, Day: d.Day}
		for _, c := range containers {
			if c.covers(md) {
				year := c.Year
				d.Year = &year
				break
			}
		}
	}
	if reference == nil {
		return
	}
	for _, d := range yearless {
		if d.Year != nil || d.Month == nil {
			continue
		}
		d.Year = referenceYear(*d.Month, *reference)
	}
}

// referenceYear decides which year a month-only Date should inherit from
// reference, grounded on YearTransmitter.transmit's is_ongoing/is_upcoming
// branches: a month up to delta=3 months ahead of reference gets the
// reference year (or next year, when it wraps past December); a month up
// to 3 months behind gets the reference year (or the previous year, when
// it wraps back past January); any other month is treated as upcoming and
// gets the reference year, or next year when it comes earlier in the
// calendar than the reference month.
func referenceYear(month int, reference time.Time) *int {
	const delta = 3
	refYear := reference.Year()
	refMonth := int(reference.Month())

	diff := ((month - refMonth) % 12 + 12) % 12 // months forward from reference to target
	var year int
	switch {
	case diff <= delta:
		// within the near future window: same year, unless that month
		// has already occurred this year relative to the reference.
		if month >= refMonth {
			year = refYear
		} else {
			year = refYear + 1
		}
	case diff >= 12-delta:
		// within the near past window: same year, or last year if the
		// month lies ahead of the reference within this year.
		if month <= refMonth {
			year = refYear
		} else {
			year = refYear - 1
		}
	default:
		// squarely in the middle of the year cycle: treat as upcoming.
		year = refYear
		if month < refMonth {
			year++
		}
	}
	return &year
}

// TransmitMonths fills the Month of every Date in monthless that has none,
// from the trailing, fully-specified element of the same list it belongs
// to, grounded on DateList.set_months / DateInterval.set_start_date_month
// / ContinuousDatetimeInterval.set_month. trailing must itself carry a
// Month.
func TransmitMonths(monthless []*timepoint.Date, trailing timepoint.Date) {
	if trailing.Month == nil {
		return
	}
	for _, d := range monthless {
		if d.Month == nil {
			d.Month = trailing.Month
		}
	}
}
