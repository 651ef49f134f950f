package pagerstate

// Viewport scrolling (spec §4.5 "Scrolling"). All operations clamp
// top_line into [0, max_top] where max_top = max(0, display_line_count -
// content_height); when a filter is active, the same clamp applies to
// top_filter_idx against the filtered line count instead (spec §4.5
// "Filtered view").

// navCount is the number of lines navigation operates over: the
// filtered count when a filter is active, else display_line_count().
func (s *State) navCount() int {
	if s.Filter != nil {
		return len(s.Filter.Lines)
	}
	return s.displayCount()
}

func (s *State) maxTop() int {
	return max(0, s.navCount()-s.ContentHeight)
}

// clampTopLine clamps v against the active document's real
// display_line_count(), ignoring any active filter. Marks always record
// and restore a real top_line (spec §3 "Marks": "a mapping from single
// character to a top-line snapshot"), not a filtered position.
func (s *State) clampTopLine(v int) int {
	mt := max(0, s.displayCount()-s.ContentHeight)
	return min(max(v, 0), mt)
}

// topPos returns the current scroll position: top_filter_idx when a
// filter is active, else top_line.
func (s *State) topPos() int {
	if s.Filter != nil {
		return s.Filter.TopIdx
	}
	return s.TopLine
}

// TopPos exports topPos for consumers outside this package.
func (s *State) TopPos() int { return s.topPos() }

// setTopPos clamps v into [0, maxTop] and writes it to whichever field
// is currently the active scroll position.
func (s *State) setTopPos(v int) {
	v = min(max(v, 0), s.maxTop())
	if s.Filter != nil {
		s.Filter.TopIdx = v
	} else {
		s.TopLine = v
	}
}

func (s *State) ScrollDown(n int) { s.setTopPos(s.topPos() + n) }
func (s *State) ScrollUp(n int)   { s.setTopPos(s.topPos() - n) }

func (s *State) HalfPageDown() { s.ScrollDown(max(1, s.ContentHeight/2)) }
func (s *State) HalfPageUp()   { s.ScrollUp(max(1, s.ContentHeight/2)) }
func (s *State) FullPageDown() { s.ScrollDown(s.ContentHeight) }
func (s *State) FullPageUp()   { s.ScrollUp(s.ContentHeight) }

func (s *State) GotoTop()    { s.setTopPos(0) }
func (s *State) GotoBottom() { s.setTopPos(s.maxTop()) }

// ScrollRight/ScrollLeft operate in character columns and are disabled
// entirely when line wrap is on (spec §4.5 "no wrap unless line-wrap is
// on, in which case horizontal scroll is disabled").
func (s *State) ScrollRight(n int) {
	if s.WrapLines {
		return
	}
	s.LeftCol += n
}

func (s *State) ScrollLeft(n int) {
	if s.WrapLines {
		return
	}
	s.LeftCol = max(0, s.LeftCol-n)
}

// ScrollPercentage is ⌊top_line*100/max(1, max_top)⌋ (spec §4.6 status
// bar composition), computed from the scroll position rather than any
// cursor — topPos()/maxTop() already resolve to top_filter_idx against
// the filtered count while a filter is active.
func (s *State) ScrollPercentage() int {
	return s.topPos() * 100 / max(1, s.maxTop())
}
