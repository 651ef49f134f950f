package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

// ResolveTheme resolves name against the overlay of every *.tmTheme
// file in themesDir followed by Chroma's bundled style registry — "the
// built-in grammar and theme set, ... then overlays every *.tmTheme
// file in the themes directory" (spec §4.2). A name with no match in
// either falls back to the built-in default theme and returns a
// KindThemeMissing error the caller can surface in the status line
// without losing highlighting altogether. themesDir may be empty, in
// which case only the bundled registry is consulted.
func ResolveTheme(name, themesDir string) (*chroma.Style, error) {
	if name == "" {
		return styles.Fallback, nil
	}
	if user := UserThemes(themesDir); user != nil {
		if sty, ok := user[name]; ok {
			return sty, nil
		}
	}
	sty := styles.Get(name)
	if sty == nil || sty.Name != name {
		return styles.Fallback, themeMissingErr(name)
	}
	return sty, nil
}

// Background returns the theme's background color for compositing the
// gutter, status bar, and unstyled cells against.
func Background(theme *chroma.Style) tcell.Color {
	entry := theme.Get(chroma.Background)
	if !entry.Background.IsSet() {
		return tcell.ColorDefault
	}
	return tcell.GetColor(entry.Background.String())
}

// Foreground returns the theme's default foreground color.
func Foreground(theme *chroma.Style) tcell.Color {
	entry := theme.Get(chroma.Background)
	if !entry.Colour.IsSet() {
		return tcell.ColorDefault
	}
	return tcell.GetColor(entry.Colour.String())
}
