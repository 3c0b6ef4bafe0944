package rrule

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func getPointer[T any](v T) *T {
	return &v
}

func TestParseRRule(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        *RRule
		expectError error
	}{
		{
			name:  "valid daily rule with interval set",
			input: "FREQ=DAILY;INTERVAL=2;COUNT=10",
			want: &RRule{
				Frequency: FrequencyDaily,
				Interval:  2,
				Count:     getPointer(10),
			},
		},
		{
			name:        "invalid frequency",
			input:       "FREQ=MONTHLY;INTERVAL=2;COUNT=10",
			expectError: fmt.Errorf("%w: %s", ErrInvalidFrequency, "MONTHLY"),
		},
		{
			name:  "valid daily rule with interval not set",
			input: "FREQ=DAILY;COUNT=10",
			want: &RRule{
				Frequency: FrequencyDaily,
				Interval:  1,
				Count:     getPointer(10),
			},
		},
		{
			name:        "missing frequency",
			input:       "INTERVAL=1;COUNT=10",
			expectError: ErrFrequencyRequired,
		},
		{
			name:        "count and until cannot both be set",
			input:       "FREQ=DAILY;COUNT=10;UNTIL=19730429T070000Z",
			expectError: ErrCountAndUntilBothSet,
		},
		{
			name:        "interval must be a positive integer",
			input:       "FREQ=DAILY;INTERVAL=0;COUNT=10",
			expectError: ErrInvalidInterval,
		},
		{
			name:        "malformed rrule string",
			input:       "FREQ=DAILY;INVALID",
			expectError: ErrInvalidRRuleString,
		},
		{
			name:  "optional RRULE: prefix is stripped",
			input: "RRULE:FREQ=DAILY;COUNT=3",
			want: &RRule{
				Frequency: FrequencyDaily,
				Interval:  1,
				Count:     getPointer(3),
			},
		},
		// DAILY examples from RFC 5545, adapted to the DAILY/WEEKLY subset
		{
			name:  "daily for 10 occurrences",
			input: "FREQ=DAILY;COUNT=10",
			want: &RRule{
				Frequency: FrequencyDaily,
				Interval:  1,
				Count:     getPointer(10),
			},
		},
		{
			name:  "daily until December 24, 1997",
			input: "FREQ=DAILY;UNTIL=19971224T000000Z",
			want: &RRule{
				Frequency: FrequencyDaily,
				Interval:  1,
				Until:     getPointer(time.Date(1997, 12, 24, 0, 0, 0, 0, time.UTC)),
			},
		},
		{
			name:  "every other day, forever",
			input: "FREQ=DAILY;INTERVAL=2",
			want: &RRule{
				Frequency: FrequencyDaily,
				Interval:  2,
			},
		},
		// WEEKLY examples from RFC 5545
		{
			name:  "weekly on Tuesday and Thursday for 10 occurrences",
			input: "FREQ=WEEKLY;COUNT=10;BYDAY=TU,TH",
			want: &RRule{
				Frequency: FrequencyWeekly,
				Interval:  1,
				Count:     getPointer(10),
				Weekday: []ByDay{
					{Weekday: WeekdayTuesday, Interval: 1},
					{Weekday: WeekdayThursday, Interval: 1},
				},
			},
		},
		{
			name:  "every other week on Monday, Wednesday and Friday until December 24, 1997",
			input: "FREQ=WEEKLY;INTERVAL=2;UNTIL=19971224T000000Z;BYDAY=MO,WE,FR",
			want: &RRule{
				Frequency: FrequencyWeekly,
				Interval:  2,
				Until:     getPointer(time.Date(1997, 12, 24, 0, 0, 0, 0, time.UTC)),
				Weekday: []ByDay{
					{Weekday: WeekdayMonday, Interval: 1},
					{Weekday: WeekdayWednesday, Interval: 1},
					{Weekday: WeekdayFriday, Interval: 1},
				},
			},
		},
		// BYHOUR/BYMINUTE, needed to express "de 8h à 10h" style time intervals
		{
			name:  "daily at 8:00 and 14:30",
			input: "FREQ=DAILY;BYHOUR=8,14;BYMINUTE=0,30",
			want: &RRule{
				Frequency: FrequencyDaily,
				Interval:  1,
				ByHour:    []int{8, 14},
				ByMinute:  []int{0, 30},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rule, err := ParseRRule(test.input)
			if test.expectError != nil {
				assert.Error(t, err)
				assert.ErrorContains(t, err, test.expectError.Error())
				assert.Nil(t, rule)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.want, rule)
		})
	}
}

func TestParseByDay(t *testing.T) {
	tests := []struct {
		name            string
		input           string
		expectedInt     int
		expectedWeekDay Weekday
		expectError     error
	}{
		{
			name:            "interval and weekday",
			input:           "20MO",
			expectedInt:     20,
			expectedWeekDay: WeekdayMonday,
		},
		{
			name:            "just weekday",
			input:           "MO",
			expectedInt:     1,
			expectedWeekDay: WeekdayMonday,
		},
		{
			name:            "negative interval",
			input:           "-1SU",
			expectedInt:     -1,
			expectedWeekDay: WeekdaySunday,
		},
		{
			name:        "invalid string",
			input:       "INVALID",
			expectError: ErrInvalidByDayString,
		},
		{
			name:        "empty string",
			input:       "",
			expectError: ErrInvalidByDayString,
		},
		{
			name:        "invalid weekday code",
			input:       "5XX",
			expectError: ErrInvalidByDayString,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			interval, weekday, err := ParseByDay(test.input)
			if test.expectError != nil {
				assert.ErrorIs(t, err, test.expectError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expectedInt, interval)
			assert.Equal(t, test.expectedWeekDay, weekday)
		})
	}
}

func TestWeekdayIndex(t *testing.T) {
	assert.Equal(t, 0, WeekdayMonday.Index())
	assert.Equal(t, 6, WeekdaySunday.Index())
	assert.Equal(t, -1, Weekday("XX").Index())
	assert.Equal(t, WeekdayMonday, WeekdayFromIndex(0))
	assert.Equal(t, WeekdayMonday, WeekdayFromIndex(7))
	assert.Equal(t, WeekdaySunday, WeekdayFromTime(time.Sunday))
	assert.Equal(t, WeekdayWednesday, WeekdayFromTime(time.Wednesday))
}

func TestBuildAndSplitWireFormat(t *testing.T) {
	r := RRule{
		Frequency: FrequencyWeekly,
		Interval:  2,
		Count:     getPointer(5),
		Weekday:   []ByDay{{Weekday: WeekdayMonday, Interval: 1}},
	}
	dtstart := time.Date(2015, 3, 5, 8, 0, 0, 0, time.UTC)
	wire := Build(r, BuildOptions{DTStart: dtstart})

	dt, rrulePart, ok := SplitWireFormat(wire)
	assert.True(t, ok)
	assert.Equal(t, "20150305T080000", dt)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=MO;INTERVAL=2;COUNT=5", rrulePart)

	parsed, err := ParseDTStart(dt)
	assert.NoError(t, err)
	assert.True(t, dtstart.Equal(parsed))

	_, _, ok = SplitWireFormat("garbage")
	assert.False(t, ok)
}

func TestParseDTStartDateOnly(t *testing.T) {
	parsed, err := ParseDTStart("20150305")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2015, 3, 5, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDTStart("")
	assert.ErrorIs(t, err, ErrInvalidRRuleString)
}
