package pagerstate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"vpager/internal/search"
)

// Mode input handlers for SearchInput/CommandInput/FilterInput: printable
// characters append, Backspace deletes the last whole rune (never
// mid-code-point), Enter commits, Esc cancels (spec §4.5 "Mode input
// handlers").

func (r *Reducer) handleSearchInput(s *State, ev *tcell.EventKey, m SearchInput) {
	switch ev.Key() {
	case tcell.KeyEscape:
		s.Mode = Normal{}
		s.Search.Preview = nil
	case tcell.KeyEnter:
		s.Search.Query = m.Buffer
		s.Search.Forward = m.Forward
		s.Mode = Normal{}
		r.commitSearch(s)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		m.Buffer = backspaceRune(m.Buffer)
		s.Mode = m
		r.previewSearch(s, m.Buffer)
	case tcell.KeyRune:
		m.Buffer += string(ev.Rune())
		s.Mode = m
		r.previewSearch(s, m.Buffer)
	}
}

func (r *Reducer) handleCommandInput(s *State, ev *tcell.EventKey, m CommandInput) {
	switch ev.Key() {
	case tcell.KeyEscape:
		s.Mode = Normal{}
	case tcell.KeyEnter:
		s.Mode = Normal{}
		r.runCommand(s, m.Buffer)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		m.Buffer = backspaceRune(m.Buffer)
		s.Mode = m
	case tcell.KeyRune:
		m.Buffer += string(ev.Rune())
		s.Mode = m
	}
}

func (r *Reducer) handleFilterInput(s *State, ev *tcell.EventKey, m FilterInput) {
	switch ev.Key() {
	case tcell.KeyEscape:
		s.Mode = Normal{}
	case tcell.KeyEnter:
		s.Mode = Normal{}
		r.applyFilter(s, m.Buffer)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		m.Buffer = backspaceRune(m.Buffer)
		s.Mode = m
	case tcell.KeyRune:
		m.Buffer += string(ev.Rune())
		s.Mode = m
	}
}

// runCommand handles ":q"/"quit", ":n"/"next", ":p"/"prev", and a
// pure-digit line number (spec §4.5 "Command input accepts...").
func (r *Reducer) runCommand(s *State, cmd string) {
	switch cmd {
	case "q", "quit":
		s.Quit = true
		return
	case "n", "next":
		r.stepMatch(s, 1)
		return
	case "p", "prev":
		r.stepMatch(s, -1)
		return
	}

	if n, err := strconv.Atoi(cmd); err == nil {
		count := s.displayCount()
		n = min(max(n, 1), max(count, 1))
		s.TopLine = s.clampTopLine(n - 1)
		return
	}

	s.StatusMessage = fmt.Sprintf("Unknown command: %s", cmd)
}

// applyFilter computes the ordered list of matching line indices and
// enters filtered navigation; an empty pattern clears the filter (spec
// §4.5 "Filter input computes...").
func (r *Reducer) applyFilter(s *State, pattern string) {
	if pattern == "" {
		s.Filter = nil
		return
	}

	re, err := searchCompile(s, pattern)
	if err != nil {
		s.StatusMessage = fmt.Sprintf("Invalid regex: %s", pattern)
		return
	}

	doc := s.ActiveDocument()
	if doc == nil {
		return
	}
	lines := search.FilterLines(re, doc, doc.LineCount())
	s.Filter = &Filter{Pattern: pattern, Lines: lines}
}

func (r *Reducer) handleFollow(s *State, ev *tcell.EventKey) {
	switch {
	case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
		s.Mode = Normal{}
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
		s.Mode = Normal{}
	}
}

// OnWatchEvent reloads the active document and jumps to the bottom when
// in follow mode (spec §4.5 "Follow mode": "every incoming watcher event
// triggers reload of the active document and another jump-to-bottom").
// Outside follow mode the event is ignored — leaving follow stops
// consuming watcher events without tearing down the watcher itself.
func (r *Reducer) OnWatchEvent(s *State) {
	if _, ok := s.Mode.(Follow); !ok {
		return
	}
	doc := s.ActiveDocument()
	if doc == nil {
		return
	}
	if err := doc.Reload(r.bufOpts); err != nil {
		s.StatusMessage = err.Error()
		return
	}
	s.GotoBottom()
}

func (r *Reducer) handleVisual(s *State, ev *tcell.EventKey, m Visual) {
	doc := s.ActiveDocument()
	count := 0
	if doc != nil {
		count = doc.LineCount()
	}
	clamp := func(v int) int {
		if count <= 0 {
			return 0
		}
		return min(max(v, 0), count-1)
	}

	switch {
	case ev.Key() == tcell.KeyEscape:
		s.Mode = Normal{}
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
		s.Mode = Normal{}
	case ev.Key() == tcell.KeyDown, ev.Key() == tcell.KeyRune && ev.Rune() == 'j':
		m.Cursor = clamp(m.Cursor + 1)
		s.Mode = m
	case ev.Key() == tcell.KeyUp, ev.Key() == tcell.KeyRune && ev.Rune() == 'k':
		m.Cursor = clamp(m.Cursor - 1)
		s.Mode = m
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'y':
		r.yank(s, m)
	}
}

// yank copies the joined text of the selected lines to the clipboard and
// returns to Normal (spec §4.5 "Visual mode": "y copies the joined text
// of those lines... Esc/q cancels without copying").
func (r *Reducer) yank(s *State, m Visual) {
	s.Mode = Normal{}

	doc := s.ActiveDocument()
	if doc == nil {
		return
	}
	lo, hi := m.Anchor, m.Cursor
	if lo > hi {
		lo, hi = hi, lo
	}

	lines := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		lines = append(lines, doc.GetLine(i))
	}
	text := strings.Join(lines, "\n")

	if r.clip == nil {
		s.StatusMessage = "Clipboard unavailable"
		return
	}
	if err := r.clip.Write(text); err != nil {
		s.StatusMessage = err.Error()
		return
	}
	s.StatusMessage = fmt.Sprintf("Yanked %d lines", hi-lo+1)
}
