package timepoint

import "errors"

var (
	// ErrIncompleteDate is returned when Export is called on a Date (or a
	// composite containing one) whose Year or Month is still unset —
	// callers are expected to run the Year/Month Transmitter first.
	ErrIncompleteDate = errors.New("date is missing year or month")

	// ErrNotExportable is returned by timepoints that only ever appear as
	// a component of another timepoint (Time, TimeInterval, Weekdays) and
	// have no standalone DurationRRule representation.
	ErrNotExportable = errors.New("timepoint has no standalone export")

	// ErrEmptyWeekdays is returned when a WeeklyRecurrence has no weekdays
	// set.
	ErrEmptyWeekdays = errors.New("weekly recurrence has no weekdays")
)
