package grammar

import (
	"regexp"

	"github.com/lrenard/datex/internal/locale"
	"github.com/lrenard/datex/internal/timepoint"
)

// French compiles the French grammar, grounded on datection.grammar.fr's
// DATE/DATE_INTERVAL/DATETIME/WEEKLY_RECURRENCE/EXCLUSION productions.
// Scope is deliberately smaller than the original pyparsing grammar (no
// lookaround in RE2, so terminals lean on explicit markers like "h" and
// "du ... au ..." instead): it covers the phrasings in spec.md §8's
// end-to-end scenarios and their immediate variations, not every French
// calendar idiom (documented in DESIGN.md).
func French() *Grammar {
	tbl, _ := locale.Lookup(locale.French.Code)
	month := monthPattern(tbl)
	weekday := weekdayPattern(tbl)

	timeInterval := `(?:de\s+|à\s+|entre\s+)?(?P<shour>[0-9]{1,2})h(?P<sminute>[0-9]{2})?(?:\s*(?:à|au|-)\s*(?P<ehour>[0-9]{1,2})h(?P<eminute>[0-9]{2})?)?`

	dateCore := `(?:(?P<weekday>` + weekday + `)\s+)?(?P<day>[0-9]{1,2})(?:er)?\s+(?P<month>` + month + `)(?:\s+(?P<year>[0-9]{4}))?`

	g := &Grammar{lang: tbl}

	g.patterns = append(g.patterns,
		production{
			tag: TagWeeklyRecurrence,
			re: regexp.MustCompile(`(?i)(?:tous\s+les\s+(?P<plural>` + weekday + `)s?|(?:le|les)\s+(?P<first>` + weekday + `)(?:\s+et\s+(?:le\s+)?(?P<second>` + weekday + `))?)` +
				`(?:\s*,?\s*` + timeInterval + `)?` +
				`(?:\s*,?\s*du\s+(?P<sday>[0-9]{1,2})(?:er)?(?:\s+(?P<smonth>` + month + `))?\s+au\s+(?P<eday>[0-9]{1,2})(?:er)?\s+(?P<emonth>` + month + `)(?:\s+(?P<eyear>[0-9]{4}))?)?`),
			to: frWeeklyRecurrence,
		},
		production{
			tag: TagContinuousDatetimeInterval,
			re: regexp.MustCompile(`(?i)du\s+(?P<sday>[0-9]{1,2})(?:er)?\s+(?P<smonth>` + month + `)(?:\s+(?P<syear>[0-9]{4}))?\s+à\s+(?P<shour>[0-9]{1,2})h(?P<sminute>[0-9]{2})?` +
				`\s+au\s+(?P<eday>[0-9]{1,2})(?:er)?\s+(?P<emonth>` + month + `)(?:\s+(?P<eyear>[0-9]{4}))?\s+à\s+(?P<ehour>[0-9]{1,2})h(?P<eminute>[0-9]{2})?`),
			to: frContinuous,
		},
		production{
			tag: TagDateInterval,
			re:  regexp.MustCompile(`(?i)du\s+(?P<sday>[0-9]{1,2})(?:er)?(?:\s+(?P<smonth>` + month + `))?\s+au\s+(?P<eday>[0-9]{1,2})(?:er)?\s+(?P<emonth>` + month + `)(?:\s+(?P<eyear>[0-9]{4}))?`),
			to:  frDateInterval,
		},
		production{
			tag: TagDateList,
			re:  regexp.MustCompile(`(?i)(?:(?P<d1>[0-9]{1,2})(?:er)?\s*,\s*)+(?P<dlast>[0-9]{1,2})(?:er)?\s+et\s+(?P<dfinal>[0-9]{1,2})(?:er)?\s+(?P<month>` + month + `)(?:\s+(?P<year>[0-9]{4}))?`),
			to:  frDateList,
		},
		production{
			tag: TagDatetime,
			re:  regexp.MustCompile(`(?i)(?:le\s+)?` + dateCore + `\s+` + timeInterval),
			to:  frDatetime,
		},
		production{
			tag: TagDate,
			re:  regexp.MustCompile(`(?i)(?:le\s+)?` + dateCore),
			to:  frDate,
		},
		production{
			tag: TagExclusion,
			re:  regexp.MustCompile(`(?i)(?:sauf|relâche|fermé)\s+(?:le\s+)?(?:(?P<weekday>` + weekday + `)|(?:(?P<day>[0-9]{1,2})(?:er)?\s+(?P<month>` + month + `)(?:\s+(?P<year>[0-9]{4}))?))`),
			to:  frExclusion,
		},
	)
	return g
}

func frDate(lang *locale.Table, m []string, names []string) (Match, bool) {
	g := namedCapturesFromNames(names, m)
	d, ok := buildDate(lang, g)
	if !ok {
		return Match{}, false
	}
	return Match{Timepoint: d}, true
}

func buildDate(lang *locale.Table, g map[string]string) (timepoint.Date, bool) {
	day := atoi(g["day"])
	if day == 0 {
		return timepoint.Date{}, false
	}
	month, ok := monthIndex(lang, g["month"])
	if !ok {
		return timepoint.Date{}, false
	}
	d := timepoint.Date{Month: intp(month), Day: day}
	if y, ok := g["year"]; ok && y != "" {
		d.Year = intp(atoi(y))
	}
	return d, true
}

func buildTimeInterval(g map[string]string) timepoint.TimeInterval {
	sh := atoi(g["shour"])
	sm := atoi(g["sminute"])
	eh, ok := g["ehour"]
	if !ok || eh == "" {
		return timepoint.TimeInterval{
			Start: timepoint.Time{Hour: sh, Minute: sm},
			End:   timepoint.Time{Hour: sh, Minute: sm},
		}
	}
	em := atoi(g["eminute"])
	return timepoint.TimeInterval{
		Start: timepoint.Time{Hour: sh, Minute: sm},
		End:   timepoint.Time{Hour: atoi(eh), Minute: em},
	}
}

func frDatetime(lang *locale.Table, m []string, names []string) (Match, bool) {
	g := namedCapturesFromNames(names, m)
	d, ok := buildDate(lang, g)
	if !ok {
		return Match{}, false
	}
	ti := buildTimeInterval(g)
	return Match{Timepoint: timepoint.Datetime{Date: d, Time: ti}}, true
}

func frDateList(lang *locale.Table, m []string, names []string) (Match, bool) {
	g := namedCapturesFromNames(names, m)
	month, ok := monthIndex(lang, g["month"])
	if !ok {
		return Match{}, false
	}
	var year *int
	if y, ok := g["year"]; ok && y != "" {
		year = intp(atoi(y))
	}
	var dates []timepoint.Date
	for _, key := range []string{"d1", "dlast", "dfinal"} {
		raw, ok := g[key]
		if !ok || raw == "" {
			continue
		}
		dates = append(dates, timepoint.Date{Day: atoi(raw), Month: intp(month), Year: year})
	}
	if len(dates) < 2 {
		return Match{}, false
	}
	return Match{Timepoint: timepoint.NewDateList(dates)}, true
}

func frDateInterval(lang *locale.Table, m []string, names []string) (Match, bool) {
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

func frContinuous(lang *locale.Table, m []string, names []string) (Match, bool) {
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
	startTime := timepoint.Time{Hour: atoi(g["shour"]), Minute: atoi(g["sminute"])}
	endTime := timepoint.Time{Hour: atoi(g["ehour"]), Minute: atoi(g["eminute"])}
	return Match{Timepoint: timepoint.ContinuousDatetimeInterval{
		Start: timepoint.Datetime{Date: start, Time: timepoint.TimeInterval{Start: startTime, End: startTime}},
		End:   timepoint.Datetime{Date: end, Time: timepoint.TimeInterval{Start: endTime, End: endTime}},
	}}, true
}

func frWeeklyRecurrence(lang *locale.Table, m []string, names []string) (Match, bool) {
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
		ti = buildTimeInterval(g)
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

func frExclusion(lang *locale.Table, m []string, names []string) (Match, bool) {
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
