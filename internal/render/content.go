package render

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"vpager/internal/buffer"
	"vpager/internal/highlight"
	"vpager/internal/overlay"
	"vpager/internal/pagerstate"
	"vpager/internal/textutil"
)

// drawContent renders content rows [startY, startY+layout.contentHeight)
// branching on the active document's variant, per spec §4.6 "Content
// region layout... Rendering branches": hex rows for a binary document,
// classified diff lines for a diff document, otherwise highlighted text
// with the gutter and search/selection overlays composited in.
func (r *Renderer) drawContent(s *pagerstate.State, doc *buffer.Document, layout frameLayout, startY int) {
	switch {
	case doc == nil:
		r.fillRow(0, s.ContentWidth, startY, tcell.StyleDefault)
		for y := startY + 1; y < startY+layout.contentHeight; y++ {
			r.fillRow(0, s.ContentWidth, y, tcell.StyleDefault)
		}
	case doc.IsBinary():
		r.drawHexRows(s, doc, layout, startY)
	case doc.IsDiff():
		r.drawDiffRows(s, doc, layout, startY)
	default:
		r.drawTextRows(s, doc, layout, startY)
	}
}

func (r *Renderer) drawEOFRow(s *pagerstate.State, layout frameLayout, y int) {
	if layout.gutterWidth > 0 {
		r.drawTextLine(0, y, layout.gutterWidth-1, "~", tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
		r.screen.SetContent(layout.gutterWidth-1, y, ' ', nil, tcell.StyleDefault)
	} else {
		r.drawTextLine(0, y, 1, "~", tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
	}
	r.fillRow(layout.contentStartX+1, s.ContentWidth, y, tcell.StyleDefault)
}

// drawHexRows renders up to content_height hex dump rows starting at
// top_line, never syntax-highlighted (spec §4.6 "If the active Document
// is binary...").
func (r *Renderer) drawHexRows(s *pagerstate.State, doc *buffer.Document, layout frameLayout, startY int) {
	style := tcell.StyleDefault
	for row := 0; row < layout.contentHeight; row++ {
		y := startY + row
		line := visibleDocLine(s, doc, row)
		if line < 0 {
			r.drawEOFRow(s, layout, y)
			continue
		}
		text := doc.HexLine(line)
		endX := r.drawTextLine(0, y, s.ContentWidth, text, style)
		r.fillRow(endX, s.ContentWidth, y, style)
	}
}

// drawDiffRows renders a synthetic unified-diff document, classifying
// each line by its first byte. No syntax highlighting, no git gutter, no
// search-overlay differences from normal mode (spec §4.6 "If the active
// Document is a diff...").
func (r *Renderer) drawDiffRows(s *pagerstate.State, doc *buffer.Document, layout frameLayout, startY int) {
	for row := 0; row < layout.contentHeight; row++ {
		y := startY + row
		line := visibleDocLine(s, doc, row)
		if line < 0 {
			r.drawEOFRow(s, layout, y)
			continue
		}
		text := textutil.SanitizeTerminalText(doc.GetLine(line))
		style := r.diffLineStyle(text)
		endX := r.drawTextLine(0, y, s.ContentWidth, r.expandTabs(text, s.Config.General.TabWidth), style)
		r.fillRow(endX, s.ContentWidth, y, style)
	}
}

func (r *Renderer) diffLineStyle(line string) tcell.Style {
	if line == "" {
		return tcell.StyleDefault
	}
	switch line[0] {
	case '+':
		return tcell.StyleDefault.Foreground(r.theme.DiffAdded)
	case '-':
		return tcell.StyleDefault.Foreground(r.theme.DiffRemove)
	case '@':
		return tcell.StyleDefault.Foreground(r.theme.DiffHunk).Bold(true)
	case '\\':
		return tcell.StyleDefault.Foreground(r.theme.DiffNoNL).Dim(true)
	default:
		return tcell.StyleDefault
	}
}

// drawTextRows renders the normal (highlighted, overlaid, gutter-backed)
// variant: a fresh line-lexer anchored at the first visible line, then
// per row the highlighted spans composited with selection/search
// overlays, horizontally clipped by left_col or wrapped if wrap is on
// (spec §4.6 "Otherwise, create a fresh line-lexer...").
func (r *Renderer) drawTextRows(s *pagerstate.State, doc *buffer.Document, layout frameLayout, startY int) {
	var lex *highlight.Lexer
	if s.HighlightEnabled {
		lex = highlight.NewLexer(doc.DetectedSyntaxPath(), r.syntax)
	}

	vis, hasSel := visualSelection(s)
	changes := doc.Changes()
	maxY := startY + layout.contentHeight

	row := 0
	y := startY
	for y < maxY {
		line := visibleDocLine(s, doc, row)
		if line < 0 {
			r.drawEOFRow(s, layout, y)
			y++
			row++
			continue
		}

		// A document's bytes are untrusted: a raw control byte (ESC in
		// particular) written straight through SetContent reaches the
		// real terminal's input stream and can stage an escape-sequence
		// injection from file content. SanitizeTerminalText replaces
		// control bytes and bidi/zero-width formatting runes with a
		// visible placeholder before anything downstream sees the line.
		text := textutil.SanitizeTerminalText(doc.GetLine(line))

		if layout.gutterWidth > 0 {
			r.drawGutter(layout, y, line, changes)
		}

		var base []overlay.Span
		if lex != nil {
			base = toOverlaySpans(lex.Highlight(text))
		} else {
			base = []overlay.Span{{Start: 0, End: len(text), Style: tcell.StyleDefault}}
		}

		overlays := r.lineOverlays(s, line, len(text), hasSel, vis)
		spans := overlay.Composite(text, base, overlays)
		spanAts := toSpanAt(text, spans)

		if s.WrapLines {
			nextY := r.drawWrapped(layout, y, maxY, spanAts, s.Config.General.TabWidth)
			for cy := y + 1; cy < nextY; cy++ {
				if layout.gutterWidth > 0 {
					r.fillRow(0, layout.gutterWidth, cy, tcell.StyleDefault)
				}
			}
			y = nextY
		} else {
			endX := r.drawSpans(layout.contentStartX, y, layout.contentWidth, s.LeftCol, s.Config.General.TabWidth, spanAts)
			r.fillRow(endX, s.ContentWidth, y, tcell.StyleDefault)
			y++
		}
		row++
	}
}

// drawWrapped draws spans starting at row startY, wrapping to a new
// screen row whenever the next cell would exceed contentWidth columns,
// and never writing past maxY. Wrap and horizontal scroll are mutually
// exclusive (viewport.go's ScrollRight/Left are no-ops while WrapLines
// is set), so this ignores left_col entirely. Returns the first unused
// screen row.
func (r *Renderer) drawWrapped(layout frameLayout, startY, maxY int, spans []spanAt, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	contentEnd := layout.contentStartX + layout.contentWidth
	x := layout.contentStartX
	y := startY
	col := 0

	wrap := func() bool {
		r.fillRow(x, contentEnd, y, tcell.StyleDefault)
		y++
		x = layout.contentStartX
		col = 0
		return y < maxY
	}

	for _, sp := range spans {
		for _, ru := range sp.text {
			if y >= maxY {
				return y
			}
			if ru == '\t' {
				spaces := tabWidth - (col % tabWidth)
				for i := 0; i < spaces; i++ {
					if col >= layout.contentWidth {
						if !wrap() {
							return y
						}
					}
					r.screen.SetContent(x, y, ' ', nil, sp.style)
					x++
					col++
				}
				continue
			}
			w := r.cachedRuneWidth(ru)
			if w < 0 {
				w = 0
			}
			if col+w > layout.contentWidth {
				if !wrap() {
					return y
				}
			}
			r.screen.SetContent(x, y, ru, nil, sp.style)
			x += w
			col += w
		}
	}
	r.fillRow(x, contentEnd, y, tcell.StyleDefault)
	return y + 1
}

func toOverlaySpans(spans []highlight.Span) []overlay.Span {
	out := make([]overlay.Span, len(spans))
	for i, sp := range spans {
		out[i] = overlay.Span{Start: sp.Start, End: sp.End, Style: sp.Style}
	}
	return out
}

func toSpanAt(line string, spans []overlay.Span) []spanAt {
	out := make([]spanAt, len(spans))
	for i, sp := range spans {
		out[i] = spanAt{text: line[sp.Start:sp.End], style: sp.Style}
	}
	return out
}

// visualSelection returns the active Visual mode's ordered [lo, hi] line
// range, if any.
func visualSelection(s *pagerstate.State) (pagerstate.Visual, bool) {
	vis, ok := s.Mode.(pagerstate.Visual)
	return vis, ok
}

// lineOverlays builds the selection/committed-search/preview-search
// overlay ranges for one line, in the priority order spec §4.4
// documents: "selection > committed search > preview search > syntax."
func (r *Renderer) lineOverlays(s *pagerstate.State, line, lineLen int, hasSel bool, vis pagerstate.Visual) []overlay.Range {
	var out []overlay.Range

	if hasSel {
		lo, hi := vis.Anchor, vis.Cursor
		if lo > hi {
			lo, hi = hi, lo
		}
		if line >= lo && line <= hi {
			out = append(out, overlay.Range{
				Start: 0, End: lineLen,
				Style:    tcell.StyleDefault.Background(tcell.ColorBlue),
				Priority: overlay.PrioritySelection,
			})
		}
	}

	matchStyle := tcell.StyleDefault.Foreground(r.theme.SearchMatchFg).Background(r.theme.SearchMatchBg)
	for _, m := range s.Search.Committed {
		if m.Line == line {
			out = append(out, overlay.Range{Start: m.Start, End: m.End, Style: matchStyle, Priority: overlay.PriorityCommittedSearch})
		}
	}
	previewStyle := matchStyle.Dim(true)
	for _, m := range s.Search.Preview {
		if m.Line == line {
			out = append(out, overlay.Range{Start: m.Start, End: m.End, Style: previewStyle, Priority: overlay.PriorityPreviewSearch})
		}
	}
	return out
}

// drawGutter draws the line number (right-aligned within the digit
// width) and, if a git change exists for line, colorizes the separator
// glyph (spec §4.6 "draw the gutter with the line number and, if a git
// change exists for that original line, colorize the separator glyph").
func (r *Renderer) drawGutter(layout frameLayout, y, line int, changes map[int]buffer.ChangeKind) {
	numWidth := layout.gutterWidth - 1
	numStyle := tcell.StyleDefault.Foreground(r.theme.LineNumberFg)
	numText := strconv.Itoa(line + 1)
	pad := numWidth - len(numText)
	if pad < 0 {
		pad = 0
	}
	r.fillRow(0, pad, y, numStyle)
	r.drawTextLine(pad, y, numWidth-pad, numText, numStyle)

	sep, sepStyle := rune('│'), tcell.StyleDefault
	if changes != nil {
		switch changes[line] {
		case buffer.ChangeAdded:
			sepStyle = tcell.StyleDefault.Foreground(r.theme.GutterAdded)
		case buffer.ChangeModified:
			sepStyle = tcell.StyleDefault.Foreground(r.theme.GutterModified)
		case buffer.ChangeDeletedBefore:
			sep, sepStyle = '▾', tcell.StyleDefault.Foreground(r.theme.GutterDeleted)
		}
	}
	r.screen.SetContent(layout.gutterWidth-1, y, sep, nil, sepStyle)
}
