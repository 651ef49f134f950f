package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"vpager/internal/buffer"
	"vpager/internal/pagerstate"
)

// drawStatusBar composes and draws the one-row status line, grounded on
// original_source/src/statusbar.rs's render function: a left block
// (filename, buffer indicator, mode/hex/filter indicators) and a right
// block (search summary, visible range, scroll percentage), padded to
// fill the row between them (spec §4.6 "Status bar composition").
func (r *Renderer) drawStatusBar(s *pagerstate.State, doc *buffer.Document, w, y int) {
	style := tcell.StyleDefault.Foreground(r.theme.StatusBarFg).Background(r.theme.StatusBarBg)

	left := r.statusLeft(s, doc, w)
	right := r.statusRight(s, doc)

	leftWidth := r.measureTextWidth(left)
	rightWidth := r.measureTextWidth(right)

	x := r.drawTextLine(0, y, w, left, style)
	padTo := w - rightWidth
	if padTo < leftWidth {
		padTo = leftWidth
	}
	r.fillRow(x, min(padTo, w), y, style)
	x = min(padTo, w)
	x = r.drawTextLine(x, y, w-x, right, style)
	r.fillRow(x, w, y, style)
}

func (r *Renderer) statusLeft(s *pagerstate.State, doc *buffer.Document, w int) string {
	name := ""
	if doc != nil {
		// A long filename (or decompressed original_path) shouldn't push
		// the buffer/mode/filter indicators off the right edge — budget
		// it half the row, truncating from the left like the tab bar.
		name = r.truncateLeftWithEllipsis(doc.Name(), max(8, w/2))
	}

	var b strings.Builder
	b.WriteByte(' ')
	b.WriteString(name)

	if n := len(s.Documents); n > 1 {
		fmt.Fprintf(&b, " [%d/%d]", s.ActiveIndex+1, n)
	}

	if badge := pagerstate.Badge(s.Mode); badge != "" {
		fmt.Fprintf(&b, " [%s]", badge)
	}

	if doc != nil && doc.IsBinary() {
		b.WriteString(" [HEX]")
	}

	if s.Filter != nil {
		fmt.Fprintf(&b, " [~%s %dL]", s.Filter.Pattern, len(s.Filter.Lines))
	}

	b.WriteByte(' ')
	return b.String()
}

func (r *Renderer) statusRight(s *pagerstate.State, doc *buffer.Document) string {
	var searchInfo string
	if s.Search.Query != "" {
		dir := "/"
		if !s.Search.Forward {
			dir = "?"
		}
		searching := ""
		if s.Search.InProgress {
			searching = " [searching…]"
		}
		searchInfo = fmt.Sprintf(" %s%s (%d matches)%s │", dir, s.Search.Query, len(s.Search.Committed), searching)
	}

	total := 0
	if doc != nil {
		total = doc.DisplayLineCount()
	}
	if s.Filter != nil {
		total = len(s.Filter.Lines)
	}
	top := s.TopPos() + 1
	bottom := min(s.TopPos()+s.ContentHeight, total)
	pct := s.ScrollPercentage()

	return fmt.Sprintf("%s  %d-%d/%d │ %d%% ", searchInfo, top, bottom, total, pct)
}

// drawInputBar shows the transient prompt+buffer for the three text
// input modes, a follow-mode hint, or the active status_message / a
// default hint in Normal mode (spec §4.5 "Input bar").
func (r *Renderer) drawInputBar(s *pagerstate.State, w, y int) {
	var content string
	style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)

	switch m := s.Mode.(type) {
	case pagerstate.SearchInput:
		dir := "/"
		if !m.Forward {
			dir = "?"
		}
		content = dir + m.Buffer
		style = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkGray)
	case pagerstate.CommandInput:
		content = ":" + m.Buffer
		style = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkGray)
	case pagerstate.FilterInput:
		content = "&" + m.Buffer
		style = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkGray)
	case pagerstate.Follow:
		content = "Waiting for data… (press Esc or q to stop)"
	default:
		if s.StatusMessage != "" {
			content = s.StatusMessage
		} else {
			content = "Press q to quit, / to search, : for commands"
		}
	}

	x := r.drawTextLine(0, y, w, content, style)
	r.fillRow(x, w, y, style)
}
