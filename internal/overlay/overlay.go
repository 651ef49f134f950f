// Package overlay implements the compositor that merges one line's
// syntax-highlight spans with zero or more priority-stacked highlight
// ranges (selection, committed search, preview search) into a single
// ordered sequence of styled spans ready to draw.
//
// Grounded on the span-walking loop in the teacher's
// internal/ui/render/text.go (drawHighlightedText), generalized from a
// single rune-indexed highlight range to an arbitrary number of
// byte-offset ranges stacked by priority, per spec §4.4.
package overlay

import (
	"sort"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Span is a half-open [Start, End) byte range carrying the style that
// applies to every byte in it.
type Span struct {
	Start, End int
	Style      tcell.Style
}

// Priority order for the built-in overlay kinds, per spec §4.4: "Overlays
// stack by priority: selection > committed search > preview search >
// syntax." Syntax has no Range — it's the Base argument to Composite.
const (
	PrioritySyntax = iota
	PriorityPreviewSearch
	PriorityCommittedSearch
	PrioritySelection
)

// Range is one highlight overlay: a half-open byte range, the style it
// applies, and a priority used to resolve overlaps between overlays.
type Range struct {
	Start, End int
	Style      tcell.Style
	Priority   int
}

// Composite merges base (spans that must together cover every byte of
// line, left to right, with no gaps) with overlays, and returns a new
// span sequence covering the same bytes where every position's style is
// the highest-priority overlay covering it, or its base style if no
// overlay covers it. No returned span's boundaries fall inside a
// multi-byte UTF-8 code point: a base span boundary that would is rounded
// down to the start of the rune it falls in, and an overlay is widened
// outward to the enclosing rune boundaries, so a partly covered rune takes
// the overlay's style (spec §4.4 "must never split inside a multi-byte
// UTF-8 code point").
func Composite(line string, base []Span, overlays []Range) []Span {
	n := len(line)
	if n == 0 {
		return nil
	}

	boundarySet := map[int]struct{}{0: {}, n: {}}
	for _, s := range base {
		boundarySet[snapRuneStart(line, s.Start)] = struct{}{}
		boundarySet[snapRuneStart(line, s.End)] = struct{}{}
	}
	snapped := make([]Range, len(overlays))
	for i, r := range overlays {
		r.Start = snapRuneStart(line, r.Start)
		end := snapRuneStart(line, r.End)
		if end < r.End && end < n {
			_, size := utf8.DecodeRuneInString(line[end:])
			end += size
		}
		r.End = end
		snapped[i] = r
		boundarySet[r.Start] = struct{}{}
		boundarySet[r.End] = struct{}{}
	}

	boundaries := make([]int, 0, len(boundarySet))
	for b := range boundarySet {
		boundaries = append(boundaries, b)
	}
	sort.Ints(boundaries)

	sortedOverlays := snapped
	sort.SliceStable(sortedOverlays, func(i, j int) bool {
		return sortedOverlays[i].Priority > sortedOverlays[j].Priority
	})

	var out []Span
	for i := 0; i+1 < len(boundaries); i++ {
		start, end := boundaries[i], boundaries[i+1]
		if start >= end {
			continue
		}
		style := styleAt(base, start, tcell.StyleDefault)
		for _, r := range sortedOverlays {
			if r.Start <= start && end <= r.End {
				style = r.Style
				break
			}
		}
		out = appendOrMerge(out, Span{Start: start, End: end, Style: style})
	}
	return out
}

func styleAt(base []Span, pos int, fallback tcell.Style) tcell.Style {
	for _, s := range base {
		if s.Start <= pos && pos < s.End {
			return s.Style
		}
	}
	return fallback
}

func appendOrMerge(spans []Span, next Span) []Span {
	if n := len(spans); n > 0 && spans[n-1].End == next.Start && spans[n-1].Style == next.Style {
		spans[n-1].End = next.End
		return spans
	}
	return append(spans, next)
}

// snapRuneStart rounds pos down to the start of the UTF-8 rune it falls
// inside, or returns pos unchanged if it's already a boundary.
func snapRuneStart(s string, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(s) {
		return len(s)
	}
	for pos > 0 && !utf8.RuneStart(s[pos]) {
		pos--
	}
	return pos
}
