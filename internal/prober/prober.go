// Package prober scans raw text for cheap signs of a temporal expression
// before the grammar's heavier regex productions run over it, grounded on
// datection.context. A text with no probe hits is never handed to the
// grammar at all.
package prober

import (
	"sort"

	"github.com/lrenard/datex/internal/locale"
)

// contextSize is the number of characters of surrounding text kept on
// either side of a probe match, grounded on datection.context.Context's
// default size=30.
const contextSize = 30

// Span is a half-open byte range [Start, End) into the original text.
type Span struct {
	Start, End int
}

// contains reports whether other's start falls within s, the Go analogue
// of Context.__contains__'s "item.start in xrange(self.start, self.end)".
func (s Span) contains(other Span) bool {
	return other.Start >= s.Start && other.Start < s.End
}

// union returns the smallest Span covering both s and other.
func (s Span) union(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{start, end}
}

// Probe scans text against lang's probe patterns and returns the
// non-overlapping context windows worth handing to the grammar, merging
// any windows that overlap, sorted by order of appearance in text.
func Probe(text string, lang *locale.Table) []Span {
	var hits []Span
	for _, pat := range lang.ProbePatterns {
		for _, m := range pat.FindAllStringIndex(text, -1) {
			hits = append(hits, clamp(Span{m[0], m[1]}, len(text)))
		}
	}
	if len(hits) == 0 {
		return nil
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Start < hits[j].Start })
	return mergeOverlapping(hits)
}

// clamp expands match to contextSize characters on either side, clipped
// to the bounds of the source text.
func clamp(match Span, textLen int) Span {
	start := match.Start - contextSize
	if start < 0 {
		start = 0
	}
	end := match.End + contextSize
	if end > textLen {
		end = textLen
	}
	return Span{start, end}
}

// mergeOverlapping combines contexts whose spans overlap, mirroring
// datection.context.independants.
func mergeOverlapping(sorted []Span) []Span {
	out := make([]Span, 0, len(sorted))
	history := sorted[0]
	for _, curr := range sorted[1:] {
		if history.contains(curr) {
			history = history.union(curr)
			continue
		}
		out = append(out, history)
		history = curr
	}
	out = append(out, history)
	return out
}
