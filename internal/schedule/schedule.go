// Package schedule defines DurationRRule, the external wire format paired
// with an RRULE string and a duration, and the predicates the packer and
// coherency filter use to classify one.
package schedule

// DurationRRule pairs an iCalendar RRULE string (RFC 5545, rendered in the
// "DTSTART:...\nRRULE:..." two-line form produced by rrule.Build) with a
// duration in minutes and the flags needed to reconstruct the original
// natural-language meaning: whether the event is continuous across
// midnight, whether it is deliberately left unbounded, the RRULEs of any
// excluded dates, and (optionally) the [start,end) byte offsets of the
// source text this record was extracted from.
type DurationRRule struct {
	RRule      string
	Duration   int
	Continuous bool
	Unlimited  bool
	Excluded   []string

	// EstimatedCount is a derived field: the number of occurrences in the
	// five years from DTSTART (or up to UNTIL, if sooner), capped at
	// MaxEstimatedCount. Nil until EstimateCount runs.
	EstimatedCount *int

	// Span holds the [start, end) byte offsets into the original text this
	// record was extracted from, when known.
	Span *[2]int
}

// AllDay is the duration (in minutes) used to mark an event as lasting the
// entire day, mirroring datection.timepoint.ALL_DAY.
const AllDay = 1439
