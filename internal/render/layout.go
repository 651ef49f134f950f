package render

import (
	"strconv"

	"vpager/internal/buffer"
	"vpager/internal/pagerstate"
)

// frameLayout is the set of row/column boundaries computed once per
// frame, mirroring original_source/src/viewer.rs's fixed vertical split
// (content: Min(1), status bar: Length(1), input bar: Length(1)) plus an
// optional leading tab-bar row spec §4.6 adds for multi-document sessions.
type frameLayout struct {
	showTabBar    bool
	contentHeight int // rows available to the content region
	gutterWidth   int // 0 when line numbers are off or the variant has none
	contentStartX int
	contentWidth  int
}

// computeLayout reserves 2 fixed rows for the status bar and input bar,
// one more for the tab bar when more than one document is open, and
// gives everything else to the content region. Gutter width is
// digit-count of the active document's real line count (so the column
// doesn't jitter width as a filter narrows the displayed count) plus one
// separator column, only when line numbers are on and the active
// document is neither binary nor a diff (spec §4.6: hex rows carry their
// own offset column; diff lines carry their own +/-/@ prefix — "no git
// gutter" for diff, and hex "never syntax-highlighting" implies no
// separate line-number gutter either).
func (r *Renderer) computeLayout(w, h int, s *pagerstate.State) frameLayout {
	var l frameLayout
	l.showTabBar = len(s.Documents) > 1

	reserved := 2
	if l.showTabBar {
		reserved++
	}
	l.contentHeight = h - reserved
	if l.contentHeight < 0 {
		l.contentHeight = 0
	}

	doc := s.ActiveDocument()
	if s.ShowLineNumbers && doc != nil && !doc.IsBinary() && !doc.IsDiff() {
		digits := len(strconv.Itoa(max(1, doc.LineCount())))
		l.gutterWidth = digits + 1
	}

	l.contentStartX = l.gutterWidth
	l.contentWidth = w - l.contentStartX
	if l.contentWidth < 0 {
		l.contentWidth = 0
	}
	return l
}

// visibleDocLine maps a content row (0-based, within [0, contentHeight))
// to the document line index to render there, or -1 for a past-EOF row.
// When a filter is active it indexes through Filter.Lines so navigation
// and rendering agree on what "row r" means (spec §4.5 "Filtered view");
// otherwise it's simply top_line + r.
func visibleDocLine(s *pagerstate.State, doc *buffer.Document, row int) int {
	if doc == nil {
		return -1
	}
	if s.Filter != nil {
		idx := s.Filter.TopIdx + row
		if idx < 0 || idx >= len(s.Filter.Lines) {
			return -1
		}
		return s.Filter.Lines[idx]
	}
	line := s.TopLine + row
	if line < 0 || line >= doc.DisplayLineCount() {
		return -1
	}
	return line
}
