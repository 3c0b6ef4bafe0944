package locale

import "regexp"

func pat(s string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + s)
}

// French is the primary locale table, grounded on datection/data/fr.py's
// WEEKDAYS/SHORT_WEEKDAYS/MONTHS/SHORT_MONTHS dicts and the preprocessing
// substitutions of datection/grammar/fr.py (the TRANSLATIONS dict near the
// bottom of that file, applied before probing).
var French = Table{
	Code: "fr",

	Weekdays: map[string]int{
		"lundi": 0, "mardi": 1, "mercredi": 2, "jeudi": 3,
		"vendredi": 4, "samedi": 5, "dimanche": 6,
	},
	ShortWeekdays: map[string]int{
		"lun": 0, "mar": 1, "mer": 2, "merc": 2, "mercr": 2,
		"jeu": 3, "ven": 4, "sam": 5, "dim": 6,
	},
	Months: map[string]int{
		"janvier": 1, "février": 2, "fevrier": 2, "mars": 3, "avril": 4,
		"mai": 5, "juin": 6, "juillet": 7, "août": 8, "aout": 8,
		"septembre": 9, "octobre": 10, "novembre": 11,
		"décembre": 12, "decembre": 12,
	},
	ShortMonths: map[string]int{
		"jan": 1, "janv": 1, "fév": 2, "févr": 2, "fev": 2, "fevr": 2,
		"avr": 4, "juil": 7, "juill": 7, "sep": 9, "sept": 9,
		"oct": 10, "nov": 11, "dec": 12, "déc": 12,
	},

	Substitutions: []Substitution{
		{Pattern: pat(`l'après-midi`), Replacement: "de 14h à 18h"},
		{Pattern: pat(`midi`), Replacement: "12h"},
		{Pattern: pat(`minuit`), Replacement: "23h59"},
		{Pattern: pat(`tous les jours`), Replacement: "du lundi au dimanche"},
		{Pattern: pat(`toute l'année`), Replacement: "Du 1er janvier au 31 décembre"},
		{Pattern: pat(`jusqu'à`), Replacement: "à"},
		{Pattern: pat(`jusqu'au`), Replacement: "au"},
		{Pattern: pat(`(à|a) partir de`), Replacement: "de"},
	},

	ProbePatterns: []*regexp.Regexp{
		pat(`\d{1,2}\s*(er)?\s*(janvier|février|fevrier|mars|avril|mai|juin|juillet|août|aout|septembre|octobre|novembre|décembre|decembre)`),
		pat(`\d{1,2}\s*h\s*\d{0,2}`),
		pat(`(lundi|mardi|mercredi|jeudi|vendredi|samedi|dimanche)`),
		pat(`\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}`),
		pat(`\baujourd'hui\b|\bdemain\b`),
	},

	Templates: Templates{
		SingleDate: "le %s",
		DateRange:  "du %s au %s",
		At:         "à %s",
		TimeRange:  "de %s à %s",
		WeeklyOn:   "le %s",
		Every:      "tous les %s",
		Except:     "sauf le %s",
		And:        "et",
		Weekdays: [7]string{
			"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche",
		},
		Months: [13]string{
			"", "janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre",
		},
	},
}
