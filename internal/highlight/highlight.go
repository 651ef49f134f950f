// Package highlight turns document lines into styled spans using Chroma's
// lexer and theme registries.
//
// Grounded on sacenox-symb/internal/highlight/highlight.go (lexer/theme
// resolution via chroma's lexers/styles packages) but reworked from that
// repo's "render to an ANSI string" shape into a span-producing one: the
// pager's overlay compositor needs byte-offset spans with a tcell.Style,
// not pre-rendered escape codes, so it can merge highlight spans with
// search and selection ranges before drawing a single styled cell run.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/gdamore/tcell/v2"

	"vpager/internal/perr"
)

// Span is a byte-offset range within one line's text, paired with the
// tcell.Style Chroma's theme assigns to the token found there.
type Span struct {
	Start, End int
	Style      tcell.Style
}

// Lexer is a stateful per-document highlighter: it must be fed the
// document's lines in order from the point it was created at, matching
// the contract in spec §4.2 ("the same lexer must be fed lines in order
// from its start point"). Chroma exposes no incremental per-line
// tokenizer, so Lexer re-tokenizes its full accumulated buffer on every
// call and returns only the newly appended line's spans — functionally
// equivalent to a carried parser state for well-behaved grammars, at the
// cost of O(n) work per line fed. The renderer bounds this by creating a
// fresh Lexer at the top of each visible window rather than once per
// document (the same "restart at viewport top" tradeoff spec §4.2 and
// §9 document).
type Lexer struct {
	lex   chroma.Lexer
	theme *chroma.Style

	lines []string
}

// NewLexer resolves a Chroma lexer by file path (falling back to a
// plain-text lexer when nothing matches) and returns a fresh Lexer, with
// no lines fed yet, that colors tokens from the already-resolved theme.
func NewLexer(path string, theme *chroma.Style) *Lexer {
	lex := lexers.Match(path)
	if lex == nil {
		lex = lexers.Fallback
	}
	lex = chroma.Coalesce(lex)
	return &Lexer{lex: lex, theme: theme}
}

// Highlight feeds lineText as the next line and returns its styled spans.
// Calling it out of order (skipping a line, or calling it twice for the
// same line) still returns spans for whatever text is passed — only
// multi-line constructs spanning the skip may mis-colorize, exactly as
// documented for the "restart at viewport top" tradeoff.
func (l *Lexer) Highlight(lineText string) []Span {
	l.lines = append(l.lines, lineText)
	joined := strings.Join(l.lines, "\n")

	it, err := l.lex.Tokenise(nil, joined)
	if err != nil {
		return nil
	}

	lineStart := len(joined) - len(lineText)
	var spans []Span
	pos := 0
	for _, tok := range it.Tokens() {
		tokStart := pos
		tokEnd := pos + len(tok.Value)
		pos = tokEnd
		if tokEnd <= lineStart {
			continue
		}
		start := tokStart - lineStart
		end := tokEnd - lineStart
		if start < 0 {
			start = 0
		}
		if end > len(lineText) {
			end = len(lineText)
		}
		if start >= end {
			continue
		}
		spans = append(spans, Span{
			Start: start,
			End:   end,
			Style: styleEntryToTcell(l.theme.Get(tok.Type)),
		})
	}
	return spans
}

// themeMissingErr wraps a requested theme name that Chroma's registry
// doesn't recognize; ResolveTheme still returns a usable fallback style
// alongside this error so callers can surface it without aborting.
func themeMissingErr(name string) error {
	return perr.Wrap(perr.KindThemeMissing, name, nil)
}
