package locale

import "regexp"

// English is the secondary, thinner locale table. It exercises the same
// grammar engine as French against a second language, grounded on
// datection/data/en.py's WEEKDAYS/SHORT_WEEKDAYS/MONTHS/SHORT_MONTHS.
// datection never shipped an English preprocessing substitution table (its
// grammar/en.py has no TRANSLATIONS dict), so Substitutions only carries
// the one phrase that generalizes directly from the French original:
// "every day" as the weekly-recurrence shorthand.
var English = Table{
	Code: "en",

	Weekdays: map[string]int{
		"monday": 0, "tuesday": 1, "wednesday": 2, "thursday": 3,
		"friday": 4, "saturday": 5, "sunday": 6,
	},
	ShortWeekdays: map[string]int{
		"mon": 0, "tue": 1, "wed": 2, "thu": 3, "fri": 4, "sat": 5, "sun": 6,
	},
	Months: map[string]int{
		"january": 1, "february": 2, "march": 3, "april": 4, "may": 5,
		"june": 6, "july": 7, "august": 8, "september": 9, "october": 10,
		"november": 11, "december": 12,
	},
	ShortMonths: map[string]int{
		"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6, "jul": 7,
		"aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	},

	Substitutions: []Substitution{
		{Pattern: pat(`every day`), Replacement: "from monday to sunday"},
	},

	ProbePatterns: []*regexp.Regexp{
		pat(`\d{1,2}\s*(st|nd|rd|th)?\s*(january|february|march|april|may|june|july|august|september|october|november|december)`),
		pat(`\d{1,2}(:\d{2})?\s*(am|pm)`),
		pat(`(monday|tuesday|wednesday|thursday|friday|saturday|sunday)`),
		pat(`\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}`),
		pat(`\btoday\b|\btomorrow\b`),
	},

	Templates: Templates{
		SingleDate: "on %s",
		DateRange:  "from %s to %s",
		At:         "at %s",
		TimeRange:  "from %s to %s",
		WeeklyOn:   "on %s",
		Every:      "every %s",
		Except:     "except %s",
		And:        "and",
		Weekdays: [7]string{
			"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
		},
		Months: [13]string{
			"", "january", "february", "march", "april", "may", "june",
			"july", "august", "september", "october", "november", "december",
		},
	},
}
