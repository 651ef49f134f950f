package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Drawing primitives adapted from kk-code-lab-rdir/internal/ui/render/text.go:
// the same cached-rune-width/draw-clipped-line machinery, trimmed to what
// the pager's gutter/content/status rows actually need (no fuzzy-match
// highlight-span walker — the pager's span source is overlay.Span, drawn
// by drawSpans below instead of drawHighlightedText's rune-index one).
func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actualWidth := runewidth.RuneWidth(ru)
			if actualWidth < 0 {
				actualWidth = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}

	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

func (r *Renderer) expandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + tabWidth)
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			for i := 0; i < spaces; i++ {
				b.WriteByte(' ')
			}
			column += spaces
			continue
		}
		b.WriteRune(ru)
		w := r.cachedRuneWidth(ru)
		if w < 1 {
			w = 1
		}
		column += w
	}
	return b.String()
}

// drawTextLine draws text starting at (startX, y), clipped to maxWidth
// columns, and returns the column past the last cell written.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	for _, ru := range text {
		if x-startX >= maxWidth {
			break
		}
		w := r.cachedRuneWidth(ru)
		if w < 0 {
			w = 0
		}
		r.screen.SetContent(x, y, ru, nil, style)
		x += w
	}
	return x
}

func (r *Renderer) fillRow(startX, endX, y int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// truncateLeftWithEllipsis clips text to maxWidth display columns,
// prefixing an ellipsis when it had to cut, trimming from the left so the end of
// the string (the most specific part of a path or filename) survives
// (spec §4.6 "truncate from the left with an ellipsis marker when
// overflowing").
func (r *Renderer) truncateLeftWithEllipsis(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	const ellipsis = "…"
	ellipsisWidth := r.cachedRuneWidth('…')
	if maxWidth <= ellipsisWidth {
		return ellipsis
	}
	available := maxWidth - ellipsisWidth

	runes := []rune(text)
	var kept []rune
	width := 0
	for i := len(runes) - 1; i >= 0; i-- {
		w := r.cachedRuneWidth(runes[i])
		if width+w > available {
			break
		}
		kept = append([]rune{runes[i]}, kept...)
		width += w
	}
	return ellipsis + string(kept)
}

// drawSpans draws line's bytes starting at column x on row y, applying
// each span's style to the runes it covers, clipped to [x, x+maxWidth)
// and offset horizontally by leftCol display columns (spec §4.5
// "horizontally-clipped by left_col"). A tab advances to the next
// tabWidth-aligned column rather than being measured as a single cell,
// matching the config's tab_width setting without having to pre-expand
// the line and invalidate the byte-offset spans computed against it.
// Returns the column past the last cell written.
func (r *Renderer) drawSpans(x, y, maxWidth, leftCol, tabWidth int, spans []spanAt) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	endX := x + maxWidth
	col := 0 // display column within the unclipped line
	cx := x
	put := func(ru rune, w int, style tcell.Style) {
		if col >= leftCol && cx < endX {
			r.screen.SetContent(cx, y, ru, nil, style)
			cx += w
		}
		col += w
	}
	for _, sp := range spans {
		for _, ru := range sp.text {
			if ru == '\t' {
				spaces := tabWidth - (col % tabWidth)
				for i := 0; i < spaces; i++ {
					put(' ', 1, sp.style)
				}
				continue
			}
			w := r.cachedRuneWidth(ru)
			if w < 0 {
				w = 0
			}
			put(ru, w, sp.style)
		}
	}
	return cx
}

// spanAt pairs a run of text with the style it should be drawn in —
// the unit drawSpans consumes, built by resolving overlay.Span byte
// ranges against a line's text.
type spanAt struct {
	text  string
	style tcell.Style
}
