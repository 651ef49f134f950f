package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"vpager/internal/pagerstate"
)

func newSimScreen(t *testing.T, w, h int) tcell.Screen {
	t.Helper()
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	scr.SetSize(w, h)
	return scr
}

func rowString(scr tcell.Screen, y, startX, n int) string {
	out := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		ru, _, _, _ := scr.GetContent(startX+i, y)
		if ru == 0 {
			ru = ' '
		}
		out = append(out, ru)
	}
	return string(out)
}

func TestRenderDrawsGutterContentStatusAndInputRows(t *testing.T) {
	scr := newSimScreen(t, 40, 8)
	s := newLayoutTestState(t, []string{"hello world", "second line", "third line"})
	s.ShowLineNumbers = true
	s.HighlightEnabled = false

	theme := ThemeFromColors("", "", "", "", "")
	r := NewRenderer(scr, theme, nil)
	r.Render(s)

	w, h := scr.Size()
	if w != 40 || h != 8 {
		t.Fatalf("screen size = %d/%d, want 40/8", w, h)
	}

	layout := r.computeLayout(w, h, s)

	// Gutter: the separator glyph sits one column before the content start.
	sepX := layout.gutterWidth - 1
	sepRune, _, _, _ := scr.GetContent(sepX, 0)
	if sepRune != '│' {
		t.Fatalf("gutter separator at (%d,0) = %q, want │", sepX, string(sepRune))
	}

	// First content row spells "hello world" starting at contentStartX.
	gotText := rowString(scr, 0, layout.contentStartX, len("hello world"))
	if gotText != "hello world" {
		t.Fatalf("row 0 content = %q, want %q", gotText, "hello world")
	}

	// Status bar occupies row h-2 and starts with a leading space before
	// the filename (statusLeft's leading b.WriteByte(' ')).
	statusRow := rowString(scr, h-2, 0, 1)
	if statusRow != " " {
		t.Fatalf("status bar first cell = %q, want a leading space", statusRow)
	}

	// Input bar occupies row h-1 and shows the default hint in Normal mode.
	inputRow := rowString(scr, h-1, 0, len("Press q to quit"))
	if inputRow != "Press q to quit" {
		t.Fatalf("input bar row = %q, want prefix %q", inputRow, "Press q to quit")
	}
}

func TestRenderShowsTabBarWithMultipleDocuments(t *testing.T) {
	scr := newSimScreen(t, 40, 8)
	s := newLayoutTestState(t, []string{"one", "two"}, "alpha.txt", "beta.txt")
	s.HighlightEnabled = false

	theme := ThemeFromColors("", "", "", "", "")
	r := NewRenderer(scr, theme, nil)
	r.Render(s)

	w, _ := scr.Size()
	tabRow := rowString(scr, 0, 0, w)
	if !containsAll(tabRow, "alpha.txt", "beta.txt") {
		t.Fatalf("tab bar row = %q, want both document names", tabRow)
	}
}

func TestRenderInputBarShowsSearchPrompt(t *testing.T) {
	scr := newSimScreen(t, 40, 8)
	s := newLayoutTestState(t, []string{"one", "two"})
	s.HighlightEnabled = false
	s.Mode = pagerstate.SearchInput{Forward: true, Buffer: "needle"}

	theme := ThemeFromColors("", "", "", "", "")
	r := NewRenderer(scr, theme, nil)
	r.Render(s)

	_, h := scr.Size()
	inputRow := rowString(scr, h-1, 0, len("/needle"))
	if inputRow != "/needle" {
		t.Fatalf("input bar row = %q, want %q", inputRow, "/needle")
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		found := false
		for i := 0; i+len(sub) <= len(s); i++ {
			if s[i:i+len(sub)] == sub {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
