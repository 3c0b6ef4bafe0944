// Package datex extracts natural-language temporal expressions (French and
// English) and turns them into iCalendar RRULE-based schedule records,
// grounded on the datection pipeline: probe a context window, tokenize it
// into non-overlapping grammar matches, resolve missing year/month
// information across the whole document, bind exclusions, export each
// timepoint to one or more schedule.DurationRRule records, pack adjacent
// records together and drop redundant ones, and optionally render the
// result back to prose.
package datex

import (
	"errors"
	"sort"
	"time"

	"github.com/lrenard/datex/internal/coherency"
	"github.com/lrenard/datex/internal/exclude"
	"github.com/lrenard/datex/internal/grammar"
	"github.com/lrenard/datex/internal/locale"
	"github.com/lrenard/datex/internal/pack"
	"github.com/lrenard/datex/internal/render"
	"github.com/lrenard/datex/internal/schedule"
	"github.com/lrenard/datex/internal/timepoint"
	"github.com/lrenard/datex/internal/tokenizer"
	"github.com/lrenard/datex/internal/yearmonth"
)

// ErrUnsupportedLocale is returned by Parse, Export and Render when lang
// isn't one of the locales this module ships ("fr" or "en").
var ErrUnsupportedLocale = errors.New("datex: unsupported locale")

// French and English grammars are compiled once, at package init, since
// the locale tables they're built over are themselves package-level vars
// constructed before any exported function can run.
var (
	frenchGrammar  = grammar.French()
	englishGrammar = grammar.English()
)

func grammarFor(lang string) (*locale.Table, *grammar.Grammar, bool) {
	table, ok := locale.Lookup(lang)
	if !ok {
		return nil, nil, false
	}
	switch lang {
	case "fr":
		return table, frenchGrammar, true
	case "en":
		return table, englishGrammar, true
	default:
		return nil, nil, false
	}
}

// applySubstitutions rewrites text's known phrase shortcuts ("midi",
// "tous les jours"...) in the order the locale lists them (see
// locale.Substitution for which rewrites the grammar then parses),
// grounded on spec.md §4.2's preprocessing step.
func applySubstitutions(text string, table *locale.Table) string {
	for _, s := range table.Substitutions {
		text = s.Pattern.ReplaceAllString(text, s.Replacement)
	}
	return text
}

// Parse returns every temporal expression found in text, in lang, with
// year and month information resolved across the whole document but no
// packing, coherency filtering or export applied — the raw timepoint
// output of the grammar stage, grounded on spec.md §6's Parse entry point.
func Parse(text, lang string, reference *time.Time) ([]timepoint.Timepoint, error) {
	tps, _, err := parsePipeline(text, lang, reference)
	return tps, err
}

// parsePipeline runs the shared front half of Parse and Export: probing,
// tokenizing, year/month resolution, and the timepoint-level coherency
// pass, returning the surviving timepoints paired with whichever
// exclusion match (if any) was bound to each one by the tokenizer.
func parsePipeline(text, lang string, reference *time.Time) ([]timepoint.Timepoint, []*grammar.Match, error) {
	table, gram, ok := grammarFor(lang)
	if !ok {
		return nil, nil, ErrUnsupportedLocale
	}

	clean := applySubstitutions(text, table)
	groups := tokenizer.Tokenize(clean, table, gram)
	if len(groups) == 0 {
		return nil, nil, nil
	}

	matches := make([]grammar.Match, len(groups))
	for i, g := range groups {
		matches[i] = g.Constructive
	}
	resolveYearsAndMonths(matches, reference)
	for i := range groups {
		groups[i].Constructive = matches[i]
	}

	valid := make([]tokenizer.Group, 0, len(groups))
	for _, g := range groups {
		if g.Constructive.Timepoint != nil && g.Constructive.Timepoint.Valid() {
			valid = append(valid, g)
		}
	}

	plain := make([]timepoint.Timepoint, len(valid))
	for i, g := range valid {
		plain[i] = g.Constructive.Timepoint
	}
	filtered := coherency.FilterTimepoints(plain)

	// Recover which of valid's matches survived coherency filtering by
	// fingerprinting each timepoint's own exported wire string: the filter
	// drops whole entries rather than mutating survivors in place, so a
	// multiset of fingerprints tells which exclusion, if any, still travels
	// with its constructive match. The one rewrite it makes, inheritDateLapse
	// filling in an unbounded recurrence's Date, changes the fingerprint:
	// such a recurrence matches no original and is kept without exclusion.
	remaining := map[string]int{}
	for _, tp := range filtered {
		remaining[fingerprint(tp)]++
	}

	tps := make([]timepoint.Timepoint, 0, len(filtered))
	excls := make([]*grammar.Match, 0, len(filtered))
	for _, g := range valid {
		fp := fingerprint(g.Constructive.Timepoint)
		if remaining[fp] <= 0 {
			continue
		}
		remaining[fp]--
		tps = append(tps, g.Constructive.Timepoint)
		excls = append(excls, g.Excluded)
	}
	for _, tp := range filtered {
		if fp := fingerprint(tp); remaining[fp] > 0 {
			remaining[fp]--
			tps = append(tps, tp)
			excls = append(excls, nil)
		}
	}
	return tps, excls, nil
}

// fingerprint returns a stable key for a timepoint's identity, used only to
// track it across coherency.FilterTimepoints's filtering.
func fingerprint(tp timepoint.Timepoint) string {
	rules, err := tp.Export()
	if err != nil || len(rules) == 0 {
		return ""
	}
	return rules[0].RRule
}

// ExportOptions controls Export's filtering, mirroring
// datection.export.export's valid/only_future/reference keyword options.
type ExportOptions struct {
	// Valid drops any timepoint that fails its own Valid() check, rather
	// than letting export fail on it.
	Valid bool
	// OnlyFuture drops any timepoint lying entirely before Reference (or
	// time.Now, if Reference is nil).
	OnlyFuture bool
	// Reference is the instant OnlyFuture and year inheritance are relative
	// to; nil means time.Now().
	Reference *time.Time
}

// Export parses text in lang and returns the fully packed, coherency
// filtered schedule, grounded on spec.md §6's Export entry point.
func Export(text, lang string, opts ExportOptions) ([]schedule.DurationRRule, error) {
	reference := time.Now()
	if opts.Reference != nil {
		reference = *opts.Reference
	}

	tps, excls, err := parsePipeline(text, lang, &reference)
	if err != nil {
		return nil, err
	}

	var classified []schedule.Classified
	for i, tp := range tps {
		if opts.Valid && !tp.Valid() {
			continue
		}
		if opts.OnlyFuture && !tp.Future(reference) {
			continue
		}
		rules, err := tp.Export()
		if err != nil {
			continue
		}
		if excl, ok := excludedTimepoint(excls[i]); ok {
			if wire, err := exclude.Bind(tp, excl); err == nil {
				for j := range rules {
					rules[j].Excluded = append(rules[j].Excluded, wire)
				}
			}
		}
		for _, r := range rules {
			c, err := schedule.Classify(r)
			if err != nil {
				continue
			}
			classified = append(classified, c)
		}
	}

	classified = pack.Pack(classified)
	classified = coherency.FilterRRules(classified)

	out := make([]schedule.DurationRRule, len(classified))
	for i, c := range classified {
		d := c.DurationRRule
		d.EstimatedCount = schedule.EstimateCount(d)
		out[i] = d
	}
	return out, nil
}

// excludedTimepoint converts a tokenizer exclusion match into the
// timepoint.Timepoint value exclude.Bind expects, since an exclusion match
// carries its payload in ExcludedDate or ExcludedWeekdays rather than in
// Timepoint itself.
func excludedTimepoint(m *grammar.Match) (timepoint.Timepoint, bool) {
	if m == nil {
		return nil, false
	}
	if m.ExcludedDate != nil {
		return *m.ExcludedDate, true
	}
	if m.ExcludedWeekdays != nil {
		return *m.ExcludedWeekdays, true
	}
	return nil, false
}

// Iterate returns a Go 1.23 range-over-func iterator over d's occurrences
// within [lower, upper], delegating to internal/schedule's rrule-go backed
// expansion.
func Iterate(d schedule.DurationRRule, lower, upper *time.Time) func(func(time.Time) bool) {
	return schedule.Iterate(d, lower, upper)
}

// Grain is the granularity Discretize snaps occurrences to before
// deduplicating them.
type Grain int

const (
	GrainDay Grain = iota
	GrainHour
	GrainMinute
)

// Discretize expands every record in sch and returns the sorted, deduped
// set of occurrences, each truncated to grain.
func Discretize(sch []schedule.DurationRRule, grain Grain) []time.Time {
	seen := map[time.Time]bool{}
	var out []time.Time
	for _, d := range sch {
		for t := range Iterate(d, nil, nil) {
			key := truncate(t, grain)
			if !seen[key] {
				seen[key] = true
				out = append(out, key)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func truncate(t time.Time, grain Grain) time.Time {
	switch grain {
	case GrainDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case GrainHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	}
}

// Split divides sch into what has already ended before splitAt's date and
// what hasn't, cutting a record that straddles the boundary into two,
// grounded on datection.combine.split.split_schedules.
func Split(sch []schedule.DurationRRule, splitAt time.Time) (past, future []schedule.DurationRRule) {
	splitDate := dateOnly(splitAt)
	for _, d := range sch {
		c, err := schedule.Classify(d)
		if err != nil {
			continue
		}
		end := dateOnly(c.EndDatetime())
		start := dateOnly(c.StartDatetime())
		switch {
		case end.Before(splitDate):
			past = append(past, d)
		case !start.Before(splitDate):
			future = append(future, d)
		default:
			future = append(future, c.WithBounds(splitDate, c.Until).DurationRRule)
			pastEnd := splitDate.AddDate(0, 0, -1)
			past = append(past, c.WithBounds(c.DTStart, &pastEnd).DurationRRule)
		}
	}
	return past, future
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextOccurrence returns the earliest occurrence across sch at or after
// after (or time.Now, if after is nil), within a five-year search horizon,
// or nil if none falls in that window.
func NextOccurrence(sch []schedule.DurationRRule, after *time.Time) *time.Time {
	ref := time.Now()
	if after != nil {
		ref = *after
	}
	horizon := ref.AddDate(5, 0, 0)

	var next *time.Time
	for _, d := range sch {
		for occ := range Iterate(d, &ref, &horizon) {
			if next == nil || occ.Before(*next) {
				t := occ
				next = &t
			}
			break
		}
	}
	return next
}

// Render parses sch into a single human-readable description in lang.
func Render(sch []schedule.DurationRRule, lang string) (string, error) {
	table, ok := locale.Lookup(lang)
	if !ok {
		return "", ErrUnsupportedLocale
	}
	return render.Render(sch, table)
}

// resolveYearsAndMonths fills in the year (and, where applicable, month)
// every Date embedded in matches is still missing, using the rest of the
// document as candidate donors, grounded on internal/yearmonth's two
// strategies. Each match's Timepoint is rebuilt in place from a local,
// addressable copy so yearmonth's pointer-based mutation can reach into
// the nested Date fields of composite timepoints.
func resolveYearsAndMonths(matches []grammar.Match, reference *time.Time) {
	var yearless []*timepoint.Date
	var containers []yearmonth.Container

	holders := make([]any, len(matches))

	addContainer := func(start, end timepoint.Date) {
		if start.Year == nil || start.Month == nil || end.Year == nil || end.Month == nil {
			return
		}
		containers = append(containers, yearmonth.Container{
			Year:  *end.Year,
			Start: yearmonth.MonthDay{Month: *start.Month, Day: start.Day},
			End:   yearmonth.MonthDay{Month: *end.Month, Day: end.Day},
		})
	}

	for i := range matches {
		switch tp := matches[i].Timepoint.(type) {
		case timepoint.Date:
			v := tp
			holders[i] = &v
			yearless = append(yearless, &v)
			addContainer(v, v)
		case timepoint.DateInterval:
			v := tp
			holders[i] = &v
			yearless = append(yearless, &v.Start, &v.End)
			if !v.Undefined() {
				addContainer(v.Start, v.End)
			}
		case timepoint.Datetime:
			v := tp
			holders[i] = &v
			yearless = append(yearless, &v.Date)
			addContainer(v.Date, v.Date)
		case timepoint.DatetimeInterval:
			v := tp
			holders[i] = &v
			yearless = append(yearless, &v.Date.Start, &v.Date.End)
			if !v.Date.Undefined() {
				addContainer(v.Date.Start, v.Date.End)
			}
		case timepoint.ContinuousDatetimeInterval:
			v := tp
			holders[i] = &v
			yearless = append(yearless, &v.Start.Date, &v.End.Date)
			addContainer(v.Start.Date, v.End.Date)
		case timepoint.WeeklyRecurrence:
			v := tp
			holders[i] = &v
			yearless = append(yearless, &v.Date.Start, &v.Date.End)
			if !v.Date.Undefined() {
				addContainer(v.Date.Start, v.Date.End)
			}
		case timepoint.DateList:
			v := tp
			holders[i] = &v
			for j := range v.Dates {
				yearless = append(yearless, &v.Dates[j])
				addContainer(v.Dates[j], v.Dates[j])
			}
		case timepoint.DatetimeList:
			v := tp
			holders[i] = &v
			for j := range v.Dates {
				yearless = append(yearless, &v.Dates[j])
				addContainer(v.Dates[j], v.Dates[j])
			}
		default:
			holders[i] = nil
		}
	}

	var trailing timepoint.Date
	for _, p := range yearless {
		if p.Year != nil && p.Month != nil {
			trailing = *p
		}
	}
	yearmonth.TransmitMonths(yearless, trailing)
	yearmonth.TransmitYears(yearless, containers, reference)

	for i := range matches {
		switch p := holders[i].(type) {
		case *timepoint.Date:
			matches[i].Timepoint = *p
		case *timepoint.DateInterval:
			matches[i].Timepoint = *p
		case *timepoint.Datetime:
			matches[i].Timepoint = *p
		case *timepoint.DatetimeInterval:
			matches[i].Timepoint = *p
		case *timepoint.ContinuousDatetimeInterval:
			matches[i].Timepoint = *p
		case *timepoint.WeeklyRecurrence:
			matches[i].Timepoint = *p
		case *timepoint.DateList:
			matches[i].Timepoint = *p
		case *timepoint.DatetimeList:
			matches[i].Timepoint = *p
		}
	}
}
