// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package rrule implements the recurrence rules defined in RFC 5545
// https://datatracker.ietf.org/doc/html/rfc5545#section-3.3.10
package rrule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Frequency is the FREQ value of a recurrence rule. datex grammars only
// ever produce DAILY and WEEKLY rules; ParseRRule rejects anything else.
type Frequency string

const (
	FrequencyDaily  Frequency = "DAILY"
	FrequencyWeekly Frequency = "WEEKLY"
)

type Weekday string

const (
	WeekdayMonday    Weekday = "MO"
	WeekdayTuesday   Weekday = "TU"
	WeekdayWednesday Weekday = "WE"
	WeekdayThursday  Weekday = "TH"
	WeekdayFriday    Weekday = "FR"
	WeekdaySaturday  Weekday = "SA"
	WeekdaySunday    Weekday = "SU"
)

// weekOrder lists the seven weekday codes in ISO order (Monday first).
// datex's pack and coherency heuristics index weekdays Monday=0..Sunday=6,
// the same convention python-dateutil uses, so BYDAY codes are resolved
// against this table rather than Go's Sunday-first time.Weekday.
var weekOrder = []Weekday{
	WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday,
	WeekdayFriday, WeekdaySaturday, WeekdaySunday,
}

// Index returns the ISO weekday index of w (Monday=0 .. Sunday=6), or -1
// if w is not a recognized weekday code.
func (w Weekday) Index() int {
	for i, d := range weekOrder {
		if d == w {
			return i
		}
	}
	return -1
}

// WeekdayFromIndex returns the weekday code for an ISO weekday index
// (Monday=0 .. Sunday=6).
func WeekdayFromIndex(i int) Weekday {
	return weekOrder[((i%7)+7)%7]
}

// WeekdayFromTime converts a time.Weekday (Sunday=0) to the ISO weekday
// code used in BYDAY values.
func WeekdayFromTime(wd time.Weekday) Weekday {
	if wd == time.Sunday {
		return WeekdaySunday
	}
	return weekOrder[int(wd)-1]
}

type ByDay struct {
	// The day of the week that the event occurs on
	Weekday Weekday
	// The numeric prefix of the BYDAY entry
	// eg: If Weekday is Tuesday, and Interval is 2, the entry is "2TU" (the second Tuesday of the period);
	// 0 or 1 means every Tuesday
	Interval int
}

// RRule holds the parsed fields of a recurrence rule.
type RRule struct {
	// The frequency of the event
	// This MUST be specified
	Frequency Frequency
	// The interval between occurrences of the event
	// eg: an interval of 2 for a daily rule means the event will happen every other day
	// Not mandatory, but treated as 1 if not present
	Interval int
	// The number of occurrences of the event
	// Can not occur with the Until property
	// DTStart always counts as the first occurrence
	Count *int
	// The date and time until the rule ends, inclusive
	// Can not occur with the Count property
	Until *time.Time
	// The day of the week that the event occurs on
	// This is optional and repeatable
	Weekday []ByDay

	// The hour(s) of the day that the event occurs on
	ByHour []int
	// The minute(s) of the hour that the event occurs on
	ByMinute []int
}

// ParseRRule takes an iCal reccurence rule string and parses it into a RRule struct
// https://datatracker.ietf.org/doc/html/rfc5545#section-3.3.10
// https://datatracker.ietf.org/doc/html/rfc5545#section-3.8.5.3
// Example for an event that happens daily for 10 days:
// Input:
// RRULE:FREQ=DAILY;INTERVAL=1;COUNT=10
// Output:
// RRule{Frequency: FrequencyDaily, Interval: 1, Count: 10, Until: nil}
//
// The leading "RRULE:" prefix is optional; ParseRRule accepts both the bare
// key=value list and the full property line.
func ParseRRule(rruleString string) (*RRule, error) {
	rruleString = strings.TrimPrefix(rruleString, "RRULE:")
	r := &RRule{
		// Default to 1 if not present
		Interval: 1,
	}
	for part := range strings.SplitSeq(rruleString, ";") {
		tag, value, found := strings.Cut(part, "=")
		if !found {
			return nil, ErrInvalidRRuleString
		}
		switch tag {
		case "FREQ":
			r.Frequency = Frequency(value)
		case "INTERVAL":
			interval, err := strconv.Atoi(value)
			if err != nil {
				return nil, err
			}
			r.Interval = interval
		case "COUNT":
			count, err := strconv.Atoi(value)
			if err != nil {
				return nil, err
			}
			r.Count = &count
		case "UNTIL":
			until, err := parseUntilTime(value)
			if err != nil {
				return nil, err
			}
			r.Until = &until
		case "BYDAY":
			weekdays := strings.Split(value, ",")
			r.Weekday = make([]ByDay, 0, len(weekdays))
			for _, weekday := range weekdays {
				// if there is an interval other than 1, it can be expressed as the number at the start of the string
				interval, wd, err := ParseByDay(weekday)
				if err != nil {
					return nil, err
				}
				r.Weekday = append(r.Weekday, ByDay{Weekday: wd, Interval: interval})
			}
		case "BYHOUR":
			hours, err := parseIntList(value)
			if err != nil {
				return nil, err
			}
			r.ByHour = hours
		case "BYMINUTE":
			minutes, err := parseIntList(value)
			if err != nil {
				return nil, err
			}
			r.ByMinute = minutes
		}
	}
	if err := validateRRule(r); err != nil {
		return nil, err
	}
	return r, nil
}

func parseIntList(value string) ([]int, error) {
	parts := strings.Split(value, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func validateRRule(r *RRule) error {
	if r.Frequency == "" {
		return ErrFrequencyRequired
	}
	switch r.Frequency {
	case FrequencyDaily, FrequencyWeekly:
		// the only frequencies datex grammars ever produce
	default:
		return fmt.Errorf("%w: %s", ErrInvalidFrequency, r.Frequency)
	}
	if r.Count != nil && r.Until != nil {
		return ErrCountAndUntilBothSet
	}
	if r.Interval <= 0 {
		return ErrInvalidInterval
	}
	return nil
}

// ParseByDay parses a BYDAY value string and returns the interval and weekday.
// The string can be in the format "20MO" (interval + weekday) or just "MO" (weekday only).
// If no interval is specified, the interval defaults to 1.
// Valid weekdays are: MO, TU, WE, TH, FR, SA, SU.
// Returns (interval, weekday, error) where interval is an integer and weekday is a string.
func ParseByDay(byDayString string) (int, Weekday, error) {
	if byDayString == "" {
		return 0, "", ErrInvalidByDayString
	}

	// Check if string starts with a digit or minus sign
	if len(byDayString) > 0 && (byDayString[0] >= '0' && byDayString[0] <= '9' || byDayString[0] == '-') {
		// Find where the digits end (including negative sign)
		digitEnd := 0
		for i, char := range byDayString {
			if char < '0' || char > '9' {
				// Allow minus sign at the beginning
				if char == '-' && i == 0 {
					continue
				}
				digitEnd = i
				break
			}
			digitEnd = i + 1
		}

		// Extract interval and weekday
		intervalStr := byDayString[:digitEnd]
		weekday := Weekday(byDayString[digitEnd:])

		// Validate weekday
		if !isValidWeekday(weekday) {
			return 0, "", ErrInvalidByDayString
		}

		// Parse interval (can be negative)
		interval, err := strconv.Atoi(intervalStr)
		if err != nil {
			return 0, "", ErrInvalidByDayString
		}

		return interval, weekday, nil
	}

	// No interval prefix, check if it's a valid weekday
	if !isValidWeekday(Weekday(byDayString)) {
		return 0, "", ErrInvalidByDayString
	}

	return 1, Weekday(byDayString), nil
}

// isValidWeekday checks if the string is a valid weekday abbreviation.
func isValidWeekday(weekday Weekday) bool {
	return weekday.Index() != -1
}

const (
	icalDateFormat     = "20060102"
	icalDateTimeFormat = "20060102T150405"
)

// BuildOptions describes how to render an RRule string: the DTSTART value,
// and whether DTSTART/UNTIL should each be rendered as a bare date (no
// time of day component). The two are independent: a date-only DTSTART
// commonly pairs with a full-precision UNTIL carrying an end-of-day time.
type BuildOptions struct {
	DTStart       time.Time
	DateOnly      bool
	UntilDateOnly bool
}

// Build renders r as the two-line wire format used by DurationRRule.RRule:
// "DTSTART:<value>\nRRULE:<key>=<value>(;<key>=<value>)*".
func Build(r RRule, opts BuildOptions) string {
	var sb strings.Builder
	sb.WriteString("DTSTART:")
	if opts.DateOnly {
		sb.WriteString(opts.DTStart.Format(icalDateFormat))
	} else {
		sb.WriteString(opts.DTStart.Format(icalDateTimeFormat))
	}
	sb.WriteString("\nRRULE:FREQ=")
	sb.WriteString(string(r.Frequency))

	if len(r.Weekday) > 0 {
		days := make([]string, len(r.Weekday))
		for i, d := range r.Weekday {
			if d.Interval != 0 && d.Interval != 1 {
				days[i] = strconv.Itoa(d.Interval) + string(d.Weekday)
			} else {
				days[i] = string(d.Weekday)
			}
		}
		sb.WriteString(";BYDAY=")
		sb.WriteString(strings.Join(days, ","))
	}
	if len(r.ByHour) > 0 {
		sb.WriteString(";BYHOUR=")
		sb.WriteString(joinInts(r.ByHour))
	}
	if len(r.ByMinute) > 0 {
		sb.WriteString(";BYMINUTE=")
		sb.WriteString(joinInts(r.ByMinute))
	}
	if r.Interval > 1 || r.Until != nil {
		sb.WriteString(";INTERVAL=")
		sb.WriteString(strconv.Itoa(r.Interval))
	}
	if r.Count != nil {
		sb.WriteString(";COUNT=")
		sb.WriteString(strconv.Itoa(*r.Count))
	}
	if r.Until != nil {
		sb.WriteString(";UNTIL=")
		if opts.UntilDateOnly {
			sb.WriteString(r.Until.Format(icalDateFormat))
		} else {
			sb.WriteString(r.Until.Format(icalDateTimeFormat))
		}
	}
	return sb.String()
}

func joinInts(vals []int) string {
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	strs := make([]string, len(sorted))
	for i, v := range sorted {
		strs[i] = strconv.Itoa(v)
	}
	return strings.Join(strs, ",")
}

// SplitWireFormat splits the two-line "DTSTART:...\nRRULE:..." wire format
// into its DTSTART value and its RRULE value (without the "RRULE:" prefix).
func SplitWireFormat(wire string) (dtstart string, rrulePart string, ok bool) {
	lines := strings.SplitN(wire, "\n", 2)
	if len(lines) != 2 {
		return "", "", false
	}
	dt, ok1 := strings.CutPrefix(lines[0], "DTSTART:")
	rr, ok2 := strings.CutPrefix(lines[1], "RRULE:")
	if !ok1 || !ok2 {
		return "", "", false
	}
	return dt, rr, true
}

// ParseDTStart parses a DTSTART value in either bare-date or full
// date-time form.
func ParseDTStart(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, ErrInvalidRRuleString
	}
	if len(value) == len(icalDateFormat) {
		return time.Parse(icalDateFormat, value)
	}
	return time.Parse(icalDateTimeFormat, strings.TrimSuffix(value, "Z"))
}

// parseUntilTime parses an UNTIL value in either bare-date or full
// date-time form. Build never appends a trailing "Z" UTC designator (see
// icalDateFormat/icalDateTimeFormat above), but an optional one is trimmed
// the same way ParseDTStart does, so a value from another producer that
// does append it still parses.
func parseUntilTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, ErrInvalidRRuleString
	}
	trimmed := strings.TrimSuffix(value, "Z")
	if len(trimmed) == len(icalDateFormat) {
		return time.Parse(icalDateFormat, trimmed)
	}
	return time.Parse(icalDateTimeFormat, trimmed)
}
