// Package pagerstate holds the pager's global application state — open
// documents, the viewport, the interaction mode, search/filter/mark
// state — and the reducer that turns key events into state transitions.
//
// Grounded on kk-code-lab-rdir/internal/state's reducer shape (an
// Action-or-event value folded into a mutable AppState by one dispatch
// function) and on original_source/src/app.rs for the exact viewport
// math (scroll clamp, max_top_line, goto_line centering, buffer
// switching, gutter width) this package generalizes from one fixed Mode
// enum into the tagged-variant shape spec §3/§9 calls for.
package pagerstate

// Mode is the tagged variant governing which input handler runs for the
// next key event (spec §3 "Mode"). Each concrete type owns its own
// transient input buffer, so switching modes can never leave a stale
// buffer behind — there is no shared accumulator field for two modes to
// fight over (spec §9 "Mode as a tagged variant owning its transient
// buffer").
type Mode interface {
	badge() string
}

// Normal is the default mode: keymap resolution is active.
type Normal struct{}

func (Normal) badge() string { return "" }

// SearchInput is entered by '/' (Forward) or '?' (backward); Buffer is
// the query typed so far.
type SearchInput struct {
	Buffer  string
	Forward bool
}

func (SearchInput) badge() string { return "SEARCH" }

// CommandInput is entered by ':'.
type CommandInput struct {
	Buffer string
}

func (CommandInput) badge() string { return "COMMAND" }

// FilterInput is entered by '&'.
type FilterInput struct {
	Buffer string
}

func (FilterInput) badge() string { return "FILTER" }

// Follow is tail -f mode.
type Follow struct{}

func (Follow) badge() string { return "FOLLOW" }

// Visual is line-selection mode; Anchor is fixed at entry, Cursor moves.
type Visual struct {
	Anchor, Cursor int
}

func (Visual) badge() string { return "VISUAL" }

// Badge returns the status-bar mode indicator text (without brackets),
// or "" for Normal, which draws no badge (spec §4.6).
func Badge(m Mode) string {
	if m == nil {
		return ""
	}
	return m.badge()
}
