package pagerstate

import (
	"context"
	"regexp"

	"vpager/internal/buffer"
	"vpager/internal/config"
	"vpager/internal/keymap"
	"vpager/internal/search"
)

// SearchState is the live state of the search subsystem (spec §3
// "SearchState"): the compiled pattern, the committed and preview match
// lists, a cursor into the committed list, the direction the search was
// initiated in, and the channel/cancel pair for an in-flight background
// scan.
type SearchState struct {
	Query   string
	Forward bool
	Pattern *regexp.Regexp

	Preview    []search.Match
	Committed  []search.Match
	Current    int
	InProgress bool

	events <-chan search.Event
	cancel context.CancelFunc
}

// Filter is the optional filtered view (spec §3 "Filter"): the pattern
// that produced it, the sorted list of matching line indices, and
// top_filter_idx, the scroll position within that list.
type Filter struct {
	Pattern string
	Lines   []int
	TopIdx  int
}

// State is the application's single source of truth: every field the
// reducer and renderer need to read or mutate (spec §3 "Viewport state",
// "Mode", ownership note — "the application state exclusively owns
// documents, highlighter, search state, config, keymap, and channel
// receivers").
type State struct {
	Documents   []*buffer.Document
	ActiveIndex int

	TopLine       int
	LeftCol       int
	ContentHeight int
	ContentWidth  int

	ShowLineNumbers  bool
	WrapLines        bool
	HighlightEnabled bool

	Mode Mode

	Search SearchState
	Marks  map[rune]int
	Filter *Filter

	// PendingKey holds the action token of a two-key sequence awaiting
	// its second character (spec §4.5 "Two-key sequences": m<c>, '<c>).
	PendingKey *keymap.Action

	StatusMessage string
	Quit          bool

	Config config.Config
	Keymap *keymap.Map
}

// New builds a State with at least one document already open, positioned
// in Normal mode at the top of the first document.
func New(docs []*buffer.Document, cfg config.Config, km *keymap.Map) *State {
	return &State{
		Documents:        docs,
		ShowLineNumbers:  cfg.General.LineNumbers,
		WrapLines:        cfg.General.Wrap,
		HighlightEnabled: true,
		Mode:             Normal{},
		Marks:            map[rune]int{},
		Config:           cfg,
		Keymap:           km,
	}
}

// ActiveDocument returns the document currently being viewed, or nil if
// none are open.
func (s *State) ActiveDocument() *buffer.Document {
	if s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Documents) {
		return nil
	}
	return s.Documents[s.ActiveIndex]
}

// displayCount is the active document's display_line_count() (spec
// §4.1), or 0 if no document is open.
func (s *State) displayCount() int {
	doc := s.ActiveDocument()
	if doc == nil {
		return 0
	}
	return doc.DisplayLineCount()
}
