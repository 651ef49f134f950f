package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v2"
)

// styleEntryToTcell converts one Chroma token style entry into the
// equivalent tcell.Style, mirroring the handful of attributes the
// terminal can actually render (foreground, background, bold, italic,
// underline) — Chroma's border/roman/noinherit bits have no terminal
// analogue and are dropped.
func styleEntryToTcell(e chroma.StyleEntry) tcell.Style {
	st := tcell.StyleDefault
	if e.Colour.IsSet() {
		st = st.Foreground(tcell.GetColor(e.Colour.String()))
	}
	if e.Background.IsSet() {
		st = st.Background(tcell.GetColor(e.Background.String()))
	}
	if e.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if e.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if e.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}
