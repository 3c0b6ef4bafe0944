package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wire(freq, extra string, dtstart string) string {
	s := "DTSTART:" + dtstart + "\nRRULE:FREQ=" + freq
	if extra != "" {
		s += ";" + extra
	}
	return s
}

func TestClassifySingleDate(t *testing.T) {
	d := DurationRRule{
		RRule:    wire("DAILY", "COUNT=1", "20150305T080000"),
		Duration: 60,
	}
	c, err := Classify(d)
	require.NoError(t, err)
	assert.True(t, c.IsSingleDate())
	assert.False(t, c.IsUnlimited())
}

func TestClassifyBoundedInterval(t *testing.T) {
	d := DurationRRule{
		RRule:    wire("DAILY", "UNTIL=20150320T080000", "20150305T080000"),
		Duration: 60,
	}
	c, err := Classify(d)
	require.NoError(t, err)
	assert.False(t, c.IsUnlimited())
	assert.True(t, c.SmallDateInterval())
	assert.False(t, c.LongDateInterval())
}

func TestClassifyLongInterval(t *testing.T) {
	d := DurationRRule{
		RRule:    wire("DAILY", "UNTIL=20151001T080000", "20150305T080000"),
		Duration: 60,
	}
	c, err := Classify(d)
	require.NoError(t, err)
	assert.True(t, c.LongDateInterval())
}

func TestClassifyWeeklyRecurrence(t *testing.T) {
	d := DurationRRule{
		RRule:    wire("WEEKLY", "BYDAY=MO,WE,FR;UNTIL=20160305T080000", "20150305T080000"),
		Duration: 60,
	}
	c, err := Classify(d)
	require.NoError(t, err)
	assert.True(t, c.IsRecurring())
	assert.Equal(t, []int{0, 2, 4}, c.WeekdayIndexes())
	assert.True(t, c.IsUnlimited(), "spans over 364 days")
}

func TestClassifyAllDayRecurrenceIsNotRecurring(t *testing.T) {
	d := DurationRRule{
		RRule: wire("WEEKLY",
			"BYDAY=MO,TU,WE,TH,FR,SA,SU;UNTIL=20150312T080000", "20150305T080000"),
		Duration: 60,
	}
	c, err := Classify(d)
	require.NoError(t, err)
	assert.False(t, c.IsRecurring())
}

func TestClassifyInvalidRRule(t *testing.T) {
	_, err := Classify(DurationRRule{RRule: "not a wire string"})
	assert.Error(t, err)
}
