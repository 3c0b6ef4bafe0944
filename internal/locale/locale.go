// Package locale holds the per-language data tables the grammar, prober
// and renderer are parameterized over: calendar names, text-preprocessing
// substitutions, probe keywords and render templates. Adding a language is
// a matter of adding a Table, not new engine code.
package locale

import "regexp"

// Substitution rewrites a fixed natural-language phrase to a shorter form,
// e.g. "midi" -> "12h", run once over the input text before probing, in
// the order a Table lists them. The weekday-range rewrites ("du lundi au
// dimanche", "from monday to sunday") are not matched by any grammar
// production; the other rewrites produce forms the grammar parses.
type Substitution struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Templates holds the per-locale phrases the renderer composes into
// human-readable schedule descriptions.
type Templates struct {
	// SingleDate formats one occurrence: "%s" receives a rendered date.
	SingleDate string
	// DateRange formats a bounded span: "du %s au %s".
	DateRange string
	// At introduces a time of day: "à %s".
	At string
	// TimeRange formats a start/end pair: "de %s à %s".
	TimeRange string
	// WeeklyOn introduces a weekday list: "le %s" / "les %s".
	WeeklyOn string
	// Every introduces an unbounded weekly recurrence: "tous les %s".
	Every string
	// Except introduces an exclusion clause: "sauf le %s".
	Except string
	// And joins the last two items of a list: "et".
	And string
	// Weekdays are the full weekday names indexed Monday=0..Sunday=6, used
	// for rendering (not parsing).
	Weekdays [7]string
	// Months are the full month names indexed January=1..December=12 (index
	// 0 unused).
	Months [13]string
}

// Table is everything the engine needs to operate over one language.
type Table struct {
	// Code is the table's locale identifier, e.g. "fr" or "en".
	Code string

	// Weekdays maps a lowercased full weekday name to its ISO index
	// (Monday=0..Sunday=6).
	Weekdays map[string]int
	// ShortWeekdays maps lowercased weekday abbreviations to the same
	// index space as Weekdays.
	ShortWeekdays map[string]int
	// Months maps a lowercased full month name to its 1-based index.
	Months map[string]int
	// ShortMonths maps lowercased month abbreviations to the same index
	// space as Months.
	ShortMonths map[string]int

	// Substitutions run, in order, over the raw input text before probing.
	Substitutions []Substitution

	// ProbePatterns are cheap regexes used to decide whether a context
	// window plausibly contains a temporal expression at all, before the
	// more expensive grammar productions run over it.
	ProbePatterns []*regexp.Regexp

	Templates Templates
}

// tables indexes every locale this module ships, built once as a literal
// at package init rather than populated imperatively: Go's package
// initialization order already guarantees French and English are fully
// constructed before this runs.
var tables = map[string]*Table{
	French.Code:  &French,
	English.Code: &English,
}

// Lookup returns the Table for lang ("fr" or "en"), or false if lang isn't
// one of the locales this module ships.
func Lookup(lang string) (*Table, bool) {
	t, ok := tables[lang]
	return t, ok
}
