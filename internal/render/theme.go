package render

import "github.com/gdamore/tcell/v2"

// ColorTheme is the resolved set of colors the renderer paints with.
// Grounded on kk-code-lab-rdir/internal/ui/render/theme.go's GetColorTheme
// shape, with fields renamed from the file-explorer's sidebar/selection
// palette to the pager's status-bar/search/gutter one (spec §6 "[colors]"
// names these three slots verbatim: status bar, search match, line
// number foreground).
type ColorTheme struct {
	StatusBarFg   tcell.Color
	StatusBarBg   tcell.Color
	SearchMatchFg tcell.Color
	SearchMatchBg tcell.Color
	LineNumberFg  tcell.Color

	GutterAdded    tcell.Color
	GutterModified tcell.Color
	GutterDeleted  tcell.Color

	DiffAdded  tcell.Color
	DiffRemove tcell.Color
	DiffHunk   tcell.Color
	DiffNoNL   tcell.Color
}

// ThemeFromColors resolves the "#rrggbb" strings in cfg into concrete
// tcell colors. tcell.GetColor already parses the "#rrggbb" form the
// config's [colors] section is documented to use (spec §6), so no
// hand-rolled hex parser is needed. Gutter/diff accents aren't
// user-configurable in spec §6 — they keep fixed, teacher-style named
// tcell colors (GutterAdded's green, etc. mirror the default palette in
// kk-code-lab-rdir/internal/ui/render/theme.go's GetColorTheme).
func ThemeFromColors(statusBarFg, statusBarBg, searchMatchFg, searchMatchBg, lineNumberFg string) ColorTheme {
	return ColorTheme{
		StatusBarFg:    colorOrDefault(statusBarFg),
		StatusBarBg:    colorOrDefault(statusBarBg),
		SearchMatchFg:  colorOrDefault(searchMatchFg),
		SearchMatchBg:  colorOrDefault(searchMatchBg),
		LineNumberFg:   colorOrDefault(lineNumberFg),
		GutterAdded:    tcell.ColorGreen,
		GutterModified: tcell.ColorYellow,
		GutterDeleted:  tcell.ColorRed,
		DiffAdded:      tcell.ColorGreen,
		DiffRemove:     tcell.ColorRed,
		DiffHunk:       tcell.ColorTeal,
		DiffNoNL:       tcell.ColorGray,
	}
}

func colorOrDefault(spec string) tcell.Color {
	if spec == "" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(spec)
}
