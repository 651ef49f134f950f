package pagerstate

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"vpager/internal/buffer"
	"vpager/internal/keymap"
)

// Clipboard is the collaborator visual-mode yank hands joined line text
// to (spec §6 "Clipboard"). The concrete implementation
// (github.com/atotto/clipboard) lives in internal/clipboard and is
// injected by the composition root — this package only depends on the
// narrow interface it actually calls, following the same
// consumer-defines-the-interface shape as buffer.GitChangeLoader.
type Clipboard interface {
	Write(text string) error
}

// Reducer folds one key event into a *State mutation, mirroring the
// shape of kk-code-lab-rdir/internal/state's StateReducer.Reduce: a
// single entry point that switches on the current mode (here, rather
// than on an incoming Action value, since spec §4.7 has keymap
// resolution itself depend on the mode — "when the active mode is not
// Normal, only the mode-specific handler applies and keymap lookup is
// skipped").
type Reducer struct {
	clip    Clipboard
	bufOpts buffer.Options
}

// NewReducer builds a Reducer. clip may be nil, in which case visual yank
// copies nothing and sets the status message to "Clipboard unavailable".
func NewReducer(clip Clipboard, bufOpts buffer.Options) *Reducer {
	return &Reducer{clip: clip, bufOpts: bufOpts}
}

// HandleKey dispatches ev to the handler for state's current mode.
func (r *Reducer) HandleKey(s *State, ev *tcell.EventKey) {
	switch m := s.Mode.(type) {
	case Normal:
		r.handleNormal(s, ev)
	case SearchInput:
		r.handleSearchInput(s, ev, m)
	case CommandInput:
		r.handleCommandInput(s, ev, m)
	case FilterInput:
		r.handleFilterInput(s, ev, m)
	case Follow:
		r.handleFollow(s, ev)
	case Visual:
		r.handleVisual(s, ev, m)
	}
}

func (r *Reducer) handleNormal(s *State, ev *tcell.EventKey) {
	if s.PendingKey != nil {
		r.completePending(s, ev)
		return
	}
	if ev.Key() == tcell.KeyEscape {
		if s.Filter != nil {
			s.Filter = nil
			s.StatusMessage = "Filter cleared"
		}
		return
	}

	action, ok := s.Keymap.Resolve(ev)
	if !ok {
		return
	}

	switch action {
	case keymap.Quit:
		s.Quit = true
	case keymap.ScrollDown:
		s.ScrollDown(1)
	case keymap.ScrollUp:
		s.ScrollUp(1)
	case keymap.HalfPageDown:
		s.HalfPageDown()
	case keymap.HalfPageUp:
		s.HalfPageUp()
	case keymap.FullPageDown:
		s.FullPageDown()
	case keymap.FullPageUp:
		s.FullPageUp()
	case keymap.GotoTop:
		s.GotoTop()
	case keymap.GotoBottom:
		s.GotoBottom()
	case keymap.ScrollRight:
		s.ScrollRight(1)
	case keymap.ScrollLeft:
		s.ScrollLeft(1)
	case keymap.ToggleNumbers:
		s.ShowLineNumbers = !s.ShowLineNumbers
	case keymap.ToggleWrap:
		s.WrapLines = !s.WrapLines
		if s.WrapLines {
			s.LeftCol = 0
		}
	case keymap.SearchForward:
		s.Mode = SearchInput{Forward: true}
	case keymap.SearchBackward:
		s.Mode = SearchInput{Forward: false}
	case keymap.NextMatch:
		r.stepMatch(s, 1)
	case keymap.PrevMatch:
		r.stepMatch(s, -1)
	case keymap.EnterCommand:
		s.Mode = CommandInput{}
	case keymap.Filter:
		s.Mode = FilterInput{}
	case keymap.Visual:
		s.Mode = Visual{Anchor: s.TopLine, Cursor: s.TopLine}
	case keymap.FollowMode:
		s.Mode = Follow{}
		s.GotoBottom()
	case keymap.PrevBuffer:
		r.switchBuffer(s, -1)
	case keymap.NextBuffer:
		r.switchBuffer(s, 1)
	case keymap.SetMark:
		a := keymap.SetMark
		s.PendingKey = &a
	case keymap.JumpMark:
		a := keymap.JumpMark
		s.PendingKey = &a
	}
}

// completePending finishes a two-key sequence begun by 'm' or '\''
// (spec §4.5 "Two-key sequences"). Escape cancels the pending sequence
// instead of recording a mark named '\x1b'.
func (r *Reducer) completePending(s *State, ev *tcell.EventKey) {
	pending := *s.PendingKey
	s.PendingKey = nil

	if ev.Key() == tcell.KeyEscape {
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}
	c := ev.Rune()

	switch pending {
	case keymap.SetMark:
		s.Marks[c] = s.TopLine
		s.StatusMessage = fmt.Sprintf("Mark '%c' set", c)
	case keymap.JumpMark:
		top, ok := s.Marks[c]
		if !ok {
			s.StatusMessage = fmt.Sprintf("Mark '%c' not set", c)
			return
		}
		s.TopLine = s.clampTopLine(top)
	}
}

func (r *Reducer) switchBuffer(s *State, dir int) {
	n := len(s.Documents)
	if n <= 1 {
		return
	}
	s.ActiveIndex = ((s.ActiveIndex+dir)%n + n) % n
	s.TopLine = 0
	s.LeftCol = 0
	s.Filter = nil
	s.StatusMessage = fmt.Sprintf("Buffer %d/%d: %s", s.ActiveIndex+1, n, s.ActiveDocument().Name())
}

func backspaceRune(s string) string {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i]&0xC0 != 0x80 { // not a UTF-8 continuation byte
			return s[:i]
		}
	}
	return ""
}
