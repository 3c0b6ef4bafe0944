package grammar

import (
	"regexp"
	"strings"

	"github.com/lrenard/datex/internal/locale"
	"github.com/lrenard/datex/internal/timepoint"
)

// English compiles the English grammar. It is deliberately thinner than
// French (mirroring datection.grammar.en being the smaller of the two
// original modules): month-day-year order only, and a 12-hour clock with
// an am/pm marker standing in for French's "Hh" marker.
func English() *Grammar {
	tbl, _ := locale.Lookup(locale.English.Code)
	month := monthPattern(tbl)
	weekday := weekdayPattern(tbl)

	timeInterval := `(?:at\s+|from\s+)?(?P<shour>[0-9]{1,2})(?::(?P<sminute>[0-9]{2}))?\s*(?P<smeridiem>am|pm)(?:\s*(?:to|-)\s*(?P<ehour>[0-9]{1,2})(?::(?P<eminute>[0-9]{2}))?\s*(?P<emeridiem>am|pm))?`

	dateCore := `(?:(?P<weekday>` + weekday + `)\s*,?\s+)?(?P<month>` + month + `)\s+(?P<day>[0-9]{1,2})(?:st|nd|rd|th)?(?:,)?(?:\s+(?P<year>[0-9]{4}))?`

	g := &Grammar{lang: tbl}

	g.patterns = append(g.patterns,
		production{
			tag: TagWeeklyRecurrence,
			re: regexp.MustCompile(`(?i)(?:every\s+(?P<plural>`+weekday+`)s?|on\s+(?P<first>`+weekday+`)(?:\s+and\s+(?P<second>`+weekday+`))?)`+
				`(?:\s*,?\s*`+timeInterval+`)?`+
				`(?:\s*,?\s*from\s+(?P<smonth>`+month+`)?\s*(?P<sday>[0-9]{1,2})(?:st|nd|rd|th)?\s+to\s+(?P<emonth>`+month+`)\s+(?P<eday>[0-9]{1,2})(?:st|nd|rd|th)?(?:,?\s+(?P<eyear>[0-9]{4}))?)?`),
			to: enWeeklyRecurrence,
		},
		production{
			tag: TagContinuousDatetimeInterval,
			re: regexp.MustCompile(`(?i)from\s+(?P<smonth>` + month + `)\s+(?P<sday>[0-9]{1,2})(?:st|nd|rd|th)?(?:,?\s+(?P<syear>[0-9]{4}))?\s+at\s+(?P<shour>[0-9]{1,2})(?::(?P<sminute>[0-9]{2}))?\s*(?P<smeridiem>am|pm)` +
				`\s+to\s+(?P<emonth>` + month + `)\s+(?P<eday>[0-9]{1,2})(?:st|nd|rd|th)?(?:,?\s+(?P<eyear>[0-9]{4}))?\s+at\s+(?P<ehour>[0-9]{1,2})(?::(?P<eminute>[0-9]{2}))?\s*(?P<emeridiem>am|pm)`),
			to: enContinuous,
		},
		production{
			tag: TagDateInterval,
			re:  regexp.MustCompile(`(?i)from\s+(?P<smonth>` + month + `)?\s*(?P<sday>[0-9]{1,2})(?:st|nd|rd|th)?\s+to\s+(?P<emonth>` + month + `)\s+(?P<eday>[0-9]{1,2})(?:st|nd|rd|th)?(?:,?\s+(?P<eyear>[0-9]{4}))?`),
			to:  enDateInterval,
		},
		production{
			tag: TagDatetime,
			re:  regexp.MustCompile(`(?i)` + dateCore + `\s*,?\s*` + timeInterval),
			to:  enDatetime,
		},
		production{
			tag: TagDate,
			re:  regexp.MustCompile(`(?i)(?:on\s+)?` + dateCore),
			to:  enDate,
		},
		production{
			tag: TagExclusion,
			re:  regexp.MustCompile(`(?i)except\s+(?:on\s+)?(?:(?P<weekday>` + weekday + `)|(?:(?P<month>` + month + `)\s+(?P<day>[0-9]{1,2})(?:st|nd|rd|th)?(?:,?\s+(?P<year>[0-9]{4}))?))`),
			to:  enExclusion,
		},
	)
	return g
}

// hour24 converts a 12-hour clock reading plus am/pm marker to 24-hour
// form; a bare "12" rolls to 0 for am and stays 12 for pm.
func hour24(hour int, meridiem string) int {
	meridiem = strings.ToLower(meridiem)
	switch {
	case meridiem == "am" && hour == 12:
		return 0
	case meridiem == "pm" && hour != 12:
		return hour + 12
	default:
		return hour
	}
}

func enDate(lang *locale.Table, m []string, names []string) (Match, bool) {
	g := namedCapturesFromNames(names, m)
	d, ok := buildDate(lang, g)
	if !ok {
		return Match{}, false
	}
	return Match{Timepoint: d}, true
}

func enBuildTimeInterval(g map[string]string) timepoint.TimeInterval {
	sh := hour24(atoi(g["shour"]), g["smeridiem"])
	sm := atoi(g["sminute"])
	eh, ok := g["ehour"]
	if !ok || eh == "" {
		return timepoint.TimeInterval{
			Start: timepoint.Time{Hour: sh, Minute: sm},
			End:   timepoint.Time{Hour: sh, Minute: sm},
		}
	}
	em := atoi(g["eminute"])
	emeridiem := g["emeridiem"]
	if emeridiem == "" {
		emeridiem = g["smeridiem"]
	}
	return timepoint.TimeInterval{
		Start: timepoint.Time{Hour: sh, Minute: sm},
		End:   timepoint.Time{Hour: hour24(atoi(eh), emeridiem), Minute: em},
	}
}

func enDatetime(lang *locale.Table, m []string, names []string) (Match, bool) {
	g := namedCapturesFromNames(names, m)
	d, ok := buildDate(lang, g)
	if !ok {
		return Match{}, false
	}
	ti := enBuildTimeInterval(g)
	return Match{Timepoint: timepoint.Datetime{Date: d, Time: ti}}, true
}

func enDateInterval(lang *locale.Table, m []string, names []string) (Match, bool) {
	g := namedCapturesFromNames(names, m)
	eMonth, ok := monthIndex(lang, g["emonth"])
	if !ok {
		return Match{}, false
	}
	end := timepoint.Date{Day: atoi(g["eday"]), Month: intp(eMonth)}
	if y, ok := g["eyear"]; ok && y != "" {
		end.Year = intp(atoi(y))
	}
	start := timepoint.Date{Day: atoi(g["sday"])}
	if sm, ok := g["smonth"]; ok && sm != "" {
		if idx, ok := monthIndex(lang, sm); ok {
			start.Month = intp(idx)
		}
	}
	if start.Month == nil {
		start.Month = end.Month
	}
	if start.Year == nil {
		start.Year = end.Year
	}
	return Match{Timepoint: timepoint.DateInterval{Start: start, End: end}}, true
}

func enContinuous(lang *locale.Table, m []string, names []string) (Match, bool) {
	g := namedCapturesFromNames(names, m)
	sMonth, ok := monthIndex(lang, g["smonth"])
	if !ok {
		return Match{}, false
	}
	eMonth, ok := monthIndex(lang, g["emonth"])
	if !ok {
		return Match{}, false
	}
	start := timepoint.Date{Day: atoi(g["sday"]), Month: intp(sMonth)}
	if y, ok := g["syear"]; ok && y != "" {
		start.Year = intp(atoi(y))
	}
	end := timepoint.Date{Day: atoi(g["eday"]), Month: intp(eMonth)}
	if y, ok := g["eyear"]; ok && y != "" {
		end.Year = intp(atoi(y))
	}
	if start.Year == nil {
		start.Year = end.Year
	}
	startTime := timepoint.Time{Hour: hour24(atoi(g["shour"]), g["smeridiem"]), Minute: atoi(g["sminute"])}
	endTime := timepoint.Time{Hour: hour24(atoi(g["ehour"]), g["emeridiem"]), Minute: atoi(g["eminute"])}
	return Match{Timepoint: timepoint.ContinuousDatetimeInterval{
		Start: timepoint.Datetime{Date: start, Time: timepoint.TimeInterval{Start: startTime, End: startTime}},
		End:   timepoint.Datetime{Date: end, Time: timepoint.TimeInterval{Start: endTime, End: endTime}},
	}}, true
}

func enWeeklyRecurrence(lang *locale.Table, m []string, names []string) (Match, bool) {
	g := namedCapturesFromNames(names, m)
	var indexes []int
	if plural, ok := g["plural"]; ok && plural != "" {
		if idx, ok := weekdayIndex(lang, plural); ok {
			indexes = append(indexes, idx)
		}
	}
	if first, ok := g["first"]; ok && first != "" {
		if idx, ok := weekdayIndex(lang, first); ok {
			indexes = append(indexes, idx)
		}
	}
	if second, ok := g["second"]; ok && second != "" {
		if idx, ok := weekdayIndex(lang, second); ok {
			indexes = append(indexes, idx)
		}
	}
	if len(indexes) == 0 {
		return Match{}, false
	}

	ti := timepoint.TimeInterval{Start: timepoint.Time{Hour: 0}, End: timepoint.Time{Hour: 23, Minute: 59}}
	if sh, ok := g["shour"]; ok && sh != "" {
		ti = enBuildTimeInterval(g)
	}

	di := timepoint.MakeUndefinedDateInterval()
	if eday, ok := g["eday"]; ok && eday != "" {
		eMonth, ok := monthIndex(lang, g["emonth"])
		if ok {
			end := timepoint.Date{Day: atoi(eday), Month: intp(eMonth)}
			if y, ok := g["eyear"]; ok && y != "" {
				end.Year = intp(atoi(y))
			}
			start := timepoint.Date{Day: atoi(g["sday"])}
			if sm, ok := g["smonth"]; ok && sm != "" {
				if idx, ok := monthIndex(lang, sm); ok {
					start.Month = intp(idx)
				}
			}
			if start.Month == nil {
				start.Month = end.Month
			}
			if start.Year == nil {
				start.Year = end.Year
			}
			di = timepoint.DateInterval{Start: start, End: end}
		}
	}

	return Match{Timepoint: timepoint.WeeklyRecurrence{
		Weekdays: timepoint.Weekdays{Indexes: indexes},
		Date:     di,
		Time:     ti,
	}}, true
}

func enExclusion(lang *locale.Table, m []string, names []string) (Match, bool) {
	g := namedCapturesFromNames(names, m)
	if wd, ok := g["weekday"]; ok && wd != "" {
		if idx, ok := weekdayIndex(lang, wd); ok {
			w := timepoint.Weekdays{Indexes: []int{idx}}
			return Match{ExcludedWeekdays: &w}, true
		}
	}
	if day, ok := g["day"]; ok && day != "" {
		month, ok := monthIndex(lang, g["month"])
		if !ok {
			return Match{}, false
		}
		d := timepoint.Date{Day: atoi(day), Month: intp(month)}
		if y, ok := g["year"]; ok && y != "" {
			d.Year = intp(atoi(y))
		}
		return Match{ExcludedDate: &d}, true
	}
	return Match{}, false
}
