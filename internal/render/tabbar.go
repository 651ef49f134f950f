package render

import (
	"github.com/gdamore/tcell/v2"

	"vpager/internal/pagerstate"
)

type tabSegment struct {
	text  string
	style tcell.Style
}

// drawTabBar renders the first row listing every open document's name
// when more than one is open, the active one distinguished, truncated
// from the left with an ellipsis when the joined list overflows the
// terminal width (spec §4.6 "If more than one document is open, render
// a tab bar...").
func (r *Renderer) drawTabBar(s *pagerstate.State, w, y int) {
	base := tcell.StyleDefault.Foreground(r.theme.StatusBarFg).Background(r.theme.StatusBarBg)
	active := base.Reverse(true).Bold(true)

	segs := make([]tabSegment, 0, len(s.Documents)*2)
	for i, d := range s.Documents {
		if i > 0 {
			segs = append(segs, tabSegment{text: " │ ", style: base})
		}
		style := base
		if i == s.ActiveIndex {
			style = active
		}
		segs = append(segs, tabSegment{text: d.Name(), style: style})
	}

	total := 0
	for _, sg := range segs {
		total += r.measureTextWidth(sg.text)
	}

	start := 0
	x := 0
	if total > w {
		ellipsisWidth := r.cachedRuneWidth('…')
		budget := w - ellipsisWidth
		kept := 0
		for i := len(segs) - 1; i >= 0; i-- {
			sw := r.measureTextWidth(segs[i].text)
			if kept+sw > budget {
				break
			}
			kept += sw
			start = i
		}
		x = r.drawTextLine(0, y, w, "…", tcell.StyleDefault.Foreground(tcell.ColorDarkGray).Background(r.theme.StatusBarBg))
	}

	for i := start; i < len(segs) && x < w; i++ {
		x = r.drawTextLine(x, y, w-x, segs[i].text, segs[i].style)
	}
	r.fillRow(x, w, y, base)
}
