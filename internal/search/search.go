// Package search implements the pager's regex search engine: smart-case
// compilation, synchronous viewport preview scanning, and an
// asynchronous full-document committed search that streams batched
// results back over a channel.
//
// Grounded on original_source/src/search.rs for the synchronous
// next/prev/viewport-scan baseline, and on the cancellation idiom in the
// teacher's internal/search/global_search_async.go
// (context.WithCancel + a token guarding against a stale worker's
// results) for the background committed-search worker.
package search

import (
	"regexp"
	"unicode"

	"github.com/rivo/uniseg"

	"vpager/internal/perr"
)

// Match is one occurrence of a compiled pattern: the line it was found
// on and its half-open byte range within that line's text.
type Match struct {
	Line  int
	Start int
	End   int
}

// Compile builds a *regexp.Regexp from pattern, applying smart case: if
// smartCase is set and pattern contains no uppercase letter, the pattern
// is compiled case-insensitively; otherwise it is compiled as given
// (spec §4.3 "Smart case compile"). A malformed pattern is a reported
// error, never a panic.
func Compile(pattern string, smartCase bool) (*regexp.Regexp, error) {
	effective := pattern
	if smartCase && !hasUpper(pattern) {
		effective = "(?i)" + pattern
	}
	re, err := regexp.Compile(effective)
	if err != nil {
		return nil, perr.Wrap(perr.KindBadRegex, pattern, err)
	}
	return re, nil
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// FindLineMatches returns every non-overlapping match of re in line, as
// byte-range Matches with Line set to lineNum. re operates on bytes and
// runes, unaware of where one grapheme cluster ends and the next
// begins, so a match's raw byte offsets can land inside a multi-rune
// cluster (a combining accent, an emoji ZWJ sequence); graphemeSnapper
// widens every match outward to the nearest cluster boundaries so the
// overlay compositor never has to slice a cluster in half when turning
// these offsets into a rendered span.
func FindLineMatches(re *regexp.Regexp, lineNum int, line string) []Match {
	idx := re.FindAllStringIndex(line, -1)
	if len(idx) == 0 {
		return nil
	}
	snap := newGraphemeSnapper(line)
	matches := make([]Match, len(idx))
	for i, pair := range idx {
		start, end := snap.snap(pair[0], pair[1])
		matches[i] = Match{Line: lineNum, Start: start, End: end}
	}
	return matches
}

// graphemeSnapper holds a line's grapheme cluster boundaries (byte
// offsets, ascending, starting at 0 and ending at len(line)) so a batch
// of matches against the same line can each be snapped without
// re-walking the string per match.
type graphemeSnapper struct {
	bounds []int
}

func newGraphemeSnapper(line string) graphemeSnapper {
	bounds := []int{0}
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		_, to := gr.Positions()
		bounds = append(bounds, to)
	}
	return graphemeSnapper{bounds: bounds}
}

// snap widens [start, end) outward to the nearest enclosing grapheme
// cluster boundaries. For text with no multi-rune clusters (plain
// ASCII, or any text where every rune is its own cluster) every byte
// offset is already a boundary, so this is a no-op.
func (g graphemeSnapper) snap(start, end int) (int, int) {
	lo := start
	for i := len(g.bounds) - 1; i >= 0; i-- {
		if g.bounds[i] <= start {
			lo = g.bounds[i]
			break
		}
	}
	hi := end
	for _, b := range g.bounds {
		if b >= end {
			hi = b
			break
		}
	}
	return lo, hi
}

// LineSource is the minimal document accessor the viewport scan and the
// filter operation need — satisfied by *buffer.Document.
type LineSource interface {
	GetLine(i int) string
}

// SearchVisible scans [first, last] inclusive and returns every match in
// ascending (line, byte_start) order, replacing the caller's previous
// preview wholesale (spec §4.3 "Viewport preview"). An empty pattern (a
// nil re) yields no matches — the caller is responsible for clearing its
// previous preview in that case.
func SearchVisible(re *regexp.Regexp, src LineSource, first, last int) []Match {
	if re == nil || first > last {
		return nil
	}
	var out []Match
	for line := first; line <= last; line++ {
		out = append(out, FindLineMatches(re, line, src.GetLine(line))...)
	}
	return out
}

// FilterLines returns the ordered list of line indices in [0, lineCount)
// whose text matches re at least once, for the Filter mode's "ordered
// list of line indices matching the (smart-case) pattern" (spec §4.5).
func FilterLines(re *regexp.Regexp, src LineSource, lineCount int) []int {
	if re == nil {
		return nil
	}
	var out []int
	for i := 0; i < lineCount; i++ {
		if re.MatchString(src.GetLine(i)) {
			out = append(out, i)
		}
	}
	return out
}
