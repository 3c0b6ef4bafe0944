// Package tokenizer turns probed context windows into a sequence of
// non-overlapping grammar matches, pairing an exclusion match with the
// constructive match right before it, grounded on
// datection.tokenize.Tokenizer (_remove_subsets, group_tokens).
package tokenizer

import (
	"sort"

	"github.com/lrenard/datex/internal/grammar"
	"github.com/lrenard/datex/internal/locale"
	"github.com/lrenard/datex/internal/prober"
)

// Group is either a single constructive match, or a constructive match
// with an exclusion bound to it (a date or weekday carved out of it),
// grounded on datection.tokenize.TokenGroup's is_exclusion_group case.
type Group struct {
	Constructive grammar.Match
	Excluded     *grammar.Match
}

// tagPriority breaks span ties between two equally-sized overlapping
// matches, lower wins, grounded on spec.md §4.2's tag priority order.
var tagPriority = map[grammar.Tag]int{
	grammar.TagWeeklyRecurrence:           0,
	grammar.TagDatetimeInterval:           1,
	grammar.TagContinuousDatetimeInterval: 2,
	grammar.TagDatetimeList:               3,
	grammar.TagDatetime:                   4,
	grammar.TagDateInterval:               5,
	grammar.TagDateList:                   6,
	grammar.TagDate:                       7,
	grammar.TagExclusion:                  8,
}

// Tokenize probes text for candidate windows, runs g over each one, and
// returns the resulting matches resolved into non-overlapping groups,
// sorted by position.
func Tokenize(text string, lang *locale.Table, g *grammar.Grammar) []Group {
	spans := prober.Probe(text, lang)
	if len(spans) == 0 {
		return nil
	}

	var matches []grammar.Match
	for _, span := range spans {
		window := text[span.Start:span.End]
		for _, m := range g.Parse(window) {
			m.Span = [2]int{m.Span[0] + span.Start, m.Span[1] + span.Start}
			matches = append(matches, m)
		}
	}
	matches = removeOverlaps(matches)
	return groupExclusions(matches)
}

// removeOverlaps implements the A⊇B overlap rule: when one match's span
// contains another's, the smaller is dropped; when two spans are
// identical, tagPriority breaks the tie.
func removeOverlaps(matches []grammar.Match) []grammar.Match {
	keep := make([]bool, len(matches))
	for i := range keep {
		keep[i] = true
	}
	for i := range matches {
		for j := range matches {
			if i == j || !keep[i] || !keep[j] {
				continue
			}
			a, b := matches[i].Span, matches[j].Span
			if !overlaps(a, b) {
				continue
			}
			switch {
			case a == b:
				if tagPriority[matches[i].Tag] <= tagPriority[matches[j].Tag] {
					keep[j] = false
				} else {
					keep[i] = false
				}
			case contains(a, b):
				keep[j] = false
			case contains(b, a):
				keep[i] = false
			}
		}
	}
	out := make([]grammar.Match, 0, len(matches))
	for i, k := range keep {
		if k {
			out = append(out, matches[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Span[0] < out[j].Span[0] })
	return out
}

func overlaps(a, b [2]int) bool { return a[0] < b[1] && b[0] < a[1] }

func contains(a, b [2]int) bool { return a[0] <= b[0] && a[1] >= b[1] && a != b }

// groupExclusions folds a constructive match and the exclusion match right
// after it into a single Group binding the exclusion to that constructive
// match (datection only ever binds an exclusion to the match right before
// it; any match after the exclusion starts its own group). An exclusion
// with no constructive match right before it is dropped — it has nothing
// to carve a hole in.
func groupExclusions(matches []grammar.Match) []Group {
	var out []Group
	i := 0
	for i < len(matches) {
		if matches[i].Tag == grammar.TagExclusion {
			i++
			continue
		}
		if i+1 < len(matches) && matches[i+1].Tag == grammar.TagExclusion {
			excl := matches[i+1]
			out = append(out, Group{Constructive: matches[i], Excluded: &excl})
			i += 2
			continue
		}
		out = append(out, Group{Constructive: matches[i]})
		i++
	}
	return out
}
