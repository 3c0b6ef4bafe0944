// Package grammar turns a probed context window into a sequence of tagged
// Timepoint matches, grounded on datection.grammar's per-locale
// productions (fr.py, en.py) built on top of the shared terminals in
// datection.grammar.__init__. Where the source combines a PEG parsing
// library (pyparsing) with regexes carrying lookaround assertions, this
// package follows spec.md §9's allowance for "a hand-written
// recursive-descent parser over tokenized regex matches": RE2 (Go's
// regexp) has no lookaround, so every terminal here is written to be
// self-disambiguating from surrounding context instead (a time always
// carries its "h"/":" marker, a year is always four digits) rather than
// asserting on what does *not*
// surround it.
package grammar

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lrenard/datex/internal/locale"
	"github.com/lrenard/datex/internal/timepoint"
)

// Tag identifies which production produced a Match, in the same priority
// order the tokenizer breaks overlap ties with.
type Tag string

const (
	TagWeeklyRecurrence           Tag = "weekly_recurrence"
	TagDatetimeInterval           Tag = "datetime_interval"
	TagContinuousDatetimeInterval Tag = "continuous_datetime_interval"
	TagDatetimeList               Tag = "datetime_list"
	TagDatetime                   Tag = "datetime"
	TagDateInterval               Tag = "date_interval"
	TagDateList                   Tag = "date_list"
	TagDate                       Tag = "date"
	TagExclusion                  Tag = "exclusion"
)

// Match pairs a tagged production with the Timepoint it built and the byte
// span (relative to the text the grammar ran over) it was found at.
// Exclusion matches carry Excluded instead of a constructive Timepoint:
// either an ExcludedDate or ExcludedWeekdays is set, never both.
type Match struct {
	Tag              Tag
	Timepoint        timepoint.Timepoint
	ExcludedDate     *timepoint.Date
	ExcludedWeekdays *timepoint.Weekdays
	Span             [2]int
}

// Grammar is a compiled, locale-bound set of productions.
type Grammar struct {
	lang     *locale.Table
	patterns []production
}

// production pairs a compiled regex with the function that turns one of
// its matches into a grammar Match.
type production struct {
	tag Tag
	re  *regexp.Regexp
	to  func(lang *locale.Table, m []string, names []string) (Match, bool)
}

// namedCaptures returns m indexed by the regex's named capture groups,
// skipping unnamed/unmatched ones.
func namedCaptures(re *regexp.Regexp, m []string) map[string]string {
	return namedCapturesFromNames(re.SubexpNames(), m)
}

// namedCapturesFromNames is namedCaptures without requiring the compiled
// regexp at hand — every production.to callback already receives its
// regex's SubexpNames alongside the match, which is all this needs.
func namedCapturesFromNames(names []string, m []string) map[string]string {
	out := make(map[string]string, len(m))
	for i, name := range names {
		if i == 0 || name == "" || i >= len(m) || m[i] == "" {
			continue
		}
		out[name] = m[i]
	}
	return out
}

// Parse runs every production of g over text and returns every match
// found, ordered by start offset (ties keep the order the productions are
// tried in), spans relative to the start of text. Overlap resolution across
// productions is the tokenizer's job, not this package's.
func (g *Grammar) Parse(text string) []Match {
	var out []Match
	for _, p := range g.patterns {
		for _, idx := range p.re.FindAllStringSubmatchIndex(text, -1) {
			groups := make([]string, len(idx)/2)
			for i := range groups {
				s, e := idx[2*i], idx[2*i+1]
				if s < 0 {
					continue
				}
				groups[i] = text[s:e]
			}
			match, ok := p.to(g.lang, groups, p.re.SubexpNames())
			if !ok {
				continue
			}
			match.Tag = p.tag
			match.Span = [2]int{idx[0], idx[1]}
			out = append(out, match)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Span[0] < out[j].Span[0] })
	return out
}

// alternation builds a case-insensitive regex alternation out of table's
// keys (month or weekday names), longest first so a short abbreviation
// never shadows a longer name sharing its prefix (e.g. "mar" vs "mars").
func alternation(table map[string]int) string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	return strings.Join(keys, "|")
}

// atoi parses s, treating a parse failure (should never happen for a
// regex-constrained digit group) as 0.
func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

// normalizeYear expands a 2-digit year to 4 digits, resolving to the
// century whose year is within 15 years of pivotYear, else the previous
// century, grounded on spec.md §4.2's 2-digit year heuristic (mirroring
// datection.utils.normalize_2digit_year).
func normalizeYear(raw string, pivotYear int) int {
	if len(raw) == 4 {
		return atoi(raw)
	}
	yy := atoi(raw)
	century := (pivotYear / 100) * 100
	year := century + yy
	if year-pivotYear > 15 {
		year -= 100
	}
	return year
}

func intp(i int) *int { return &i }

// monthPattern returns a non-capturing, case-insensitive alternation over
// lang's full and abbreviated month names.
func monthPattern(lang *locale.Table) string {
	return "(?:" + alternation(lang.Months) + "|" + alternation(lang.ShortMonths) + ")"
}

// weekdayPattern returns a non-capturing, case-insensitive alternation
// over lang's full and abbreviated weekday names.
func weekdayPattern(lang *locale.Table) string {
	return "(?:" + alternation(lang.Weekdays) + "|" + alternation(lang.ShortWeekdays) + ")"
}

// monthIndex resolves a matched month name (any case) to its 1-based
// index via lang's full or abbreviated table.
func monthIndex(lang *locale.Table, name string) (int, bool) {
	key := strings.ToLower(name)
	if i, ok := lang.Months[key]; ok {
		return i, true
	}
	if i, ok := lang.ShortMonths[key]; ok {
		return i, true
	}
	return 0, false
}

// weekdayIndex resolves a matched weekday name (any case) to its ISO
// index (Monday=0..Sunday=6) via lang's full or abbreviated table.
func weekdayIndex(lang *locale.Table, name string) (int, bool) {
	key := strings.ToLower(name)
	if i, ok := lang.Weekdays[key]; ok {
		return i, true
	}
	if i, ok := lang.ShortWeekdays[key]; ok {
		return i, true
	}
	return 0, false
}
