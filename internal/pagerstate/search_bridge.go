package pagerstate

import (
	"fmt"
	"regexp"

	"vpager/internal/search"
)

// searchCompile compiles pattern with the configured smart-case setting;
// kept as a one-line indirection so every call site reads the same
// config field the same way.
func searchCompile(s *State, pattern string) (*regexp.Regexp, error) {
	return search.Compile(pattern, s.Config.General.SmartCase)
}

// previewSearch recomputes the viewport preview on every keystroke in
// search input mode (spec §4.3 "Viewport preview"). An empty query
// clears the preview.
func (r *Reducer) previewSearch(s *State, query string) {
	if query == "" {
		s.Search.Preview = nil
		return
	}

	re, err := searchCompile(s, query)
	if err != nil {
		s.StatusMessage = fmt.Sprintf("Invalid regex: %s", query)
		return
	}

	doc := s.ActiveDocument()
	if doc == nil {
		return
	}
	first := s.TopLine
	last := min(first+s.ContentHeight-1, doc.LineCount()-1)
	s.Search.Preview = search.SearchVisible(re, doc, first, last)
}

// commitSearch starts a background full-document scan on Enter (spec
// §4.3 "Committed search", steps 1-3). Starting a new search replaces
// the previous receiver; the abandoned worker's late batches are simply
// never drained (spec §4.3 "Cancellation").
func (r *Reducer) commitSearch(s *State) {
	if s.Search.cancel != nil {
		s.Search.cancel()
	}

	re, err := searchCompile(s, s.Search.Query)
	if err != nil {
		s.StatusMessage = fmt.Sprintf("Invalid regex: %s", s.Search.Query)
		return
	}

	doc := s.ActiveDocument()
	if doc == nil {
		return
	}

	s.Search.Pattern = re
	s.Search.Preview = nil
	s.Search.Committed = nil
	s.Search.Current = 0
	s.Search.InProgress = true

	snapshot := doc.TextSnapshot()
	ch, cancel := search.StartCommittedSearch(snapshot, re)
	s.Search.events = ch
	s.Search.cancel = cancel
}

// DrainSearch drains every event currently buffered on the committed-
// search channel without blocking — called once per UI tick (spec §5
// "Ordering": "channel drains happen in a fixed order: watcher events,
// then search batches, then input events"). The first non-empty batch
// centers the viewport on its first match (spec §4.3 step 4).
func (r *Reducer) DrainSearch(s *State) {
	if s.Search.events == nil {
		return
	}

	for {
		select {
		case evt, ok := <-s.Search.events:
			if !ok {
				s.Search.events = nil
				return
			}
			firstBatch := len(s.Search.Committed) == 0 && len(evt.NewMatches) > 0
			s.Search.Committed = append(s.Search.Committed, evt.NewMatches...)
			if firstBatch {
				r.centerOn(s, s.Search.Committed[0].Line)
			}
			if evt.Kind == search.EventDone {
				s.Search.InProgress = false
				s.Search.events = nil
				r.reportSearchDone(s)
				return
			}
		default:
			return
		}
	}
}

func (r *Reducer) reportSearchDone(s *State) {
	n := len(s.Search.Committed)
	if n == 0 {
		s.StatusMessage = fmt.Sprintf("Pattern not found: %s", s.Search.Query)
		return
	}
	s.StatusMessage = fmt.Sprintf("/%s (%d matches)", s.Search.Query, n)
}

// stepMatch moves the committed-match cursor by delta (in committed-list
// order), honoring the search direction used to initiate it — a backward
// search reverses which way "next" moves (spec §4.5 "Navigation").
// Wraparound at both ends is silent.
func (r *Reducer) stepMatch(s *State, delta int) {
	n := len(s.Search.Committed)
	if n == 0 {
		return
	}
	if !s.Search.Forward {
		delta = -delta
	}
	s.Search.Current = ((s.Search.Current+delta)%n + n) % n
	r.centerOn(s, s.Search.Committed[s.Search.Current].Line)
}

// centerOn scrolls the viewport so line is visible, centering it only if
// it currently falls outside the window (spec §4.5 "Navigation": "the
// viewport scrolls so the current match line is visible (centered if it
// falls outside the current window)").
func (r *Reducer) centerOn(s *State, line int) {
	top := s.topPos()
	if line >= top && line < top+s.ContentHeight {
		return
	}
	s.setTopPos(line - s.ContentHeight/2)
}
