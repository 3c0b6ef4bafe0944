package icaldur

import (
	"strings"
	"time"
)

// iCalDateTimeFormat represents the standard iCal datetime format
// Format: YYYYMMDDTHHMMSSZ (e.g., 20250928T183000Z).
const iCalDateTimeFormat = "20060102T150405Z"

// ParseIcalTime parses a UTC iCal datetime; the trailing "Z" may be omitted.
func ParseIcalTime(value string) (time.Time, error) {
	if !strings.HasSuffix(value, "Z") {
		value += "Z"
	}
	return time.Parse(iCalDateTimeFormat, value)
}
