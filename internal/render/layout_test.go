package render

import (
	"os"
	"path/filepath"
	"testing"

	"vpager/internal/buffer"
	"vpager/internal/config"
	"vpager/internal/keymap"
	"vpager/internal/pagerstate"
)

func newLayoutTestState(t *testing.T, lines []string, names ...string) *pagerstate.State {
	t.Helper()
	if len(names) == 0 {
		names = []string{"doc.txt"}
	}
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}

	var docs []*buffer.Document
	for _, name := range names {
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write temp file: %v", err)
		}
		doc, err := buffer.FromPath(path, buffer.Options{})
		if err != nil {
			t.Fatalf("FromPath: %v", err)
		}
		t.Cleanup(func() { doc.Close() })
		docs = append(docs, doc)
	}

	s := pagerstate.New(docs, config.Default(), keymap.Default())
	return s
}

func TestComputeLayoutReservesStatusAndInputRows(t *testing.T) {
	r := &Renderer{}
	s := newLayoutTestState(t, manyLines(5))

	l := r.computeLayout(80, 24, s)
	if l.showTabBar {
		t.Fatalf("expected no tab bar with a single document")
	}
	if want := 22; l.contentHeight != want {
		t.Fatalf("contentHeight = %d, want %d", l.contentHeight, want)
	}
}

func TestComputeLayoutReservesTabBarRowForMultipleDocuments(t *testing.T) {
	r := &Renderer{}
	s := newLayoutTestState(t, manyLines(5), "a.txt", "b.txt")

	l := r.computeLayout(80, 24, s)
	if !l.showTabBar {
		t.Fatalf("expected a tab bar with two documents open")
	}
	if want := 21; l.contentHeight != want {
		t.Fatalf("contentHeight = %d, want %d", l.contentHeight, want)
	}
}

func TestComputeLayoutGutterWidthFromRealLineCount(t *testing.T) {
	r := &Renderer{}
	s := newLayoutTestState(t, manyLines(150))
	s.ShowLineNumbers = true

	l := r.computeLayout(80, 24, s)
	// 150 lines -> 3 digits + 1 separator column.
	if l.gutterWidth != 4 {
		t.Fatalf("gutterWidth = %d, want 4", l.gutterWidth)
	}
	if l.contentStartX != 4 || l.contentWidth != 76 {
		t.Fatalf("contentStartX/contentWidth = %d/%d, want 4/76", l.contentStartX, l.contentWidth)
	}
}

func TestComputeLayoutNoGutterWhenLineNumbersOff(t *testing.T) {
	r := &Renderer{}
	s := newLayoutTestState(t, manyLines(150))
	s.ShowLineNumbers = false

	l := r.computeLayout(80, 24, s)
	if l.gutterWidth != 0 {
		t.Fatalf("gutterWidth = %d, want 0", l.gutterWidth)
	}
}

func manyLines(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "line"
	}
	return out
}

func TestVisibleDocLineNoFilter(t *testing.T) {
	s := newLayoutTestState(t, manyLines(5))
	s.TopLine = 2

	doc := s.ActiveDocument()
	if got := visibleDocLine(s, doc, 0); got != 2 {
		t.Fatalf("visibleDocLine(row 0) = %d, want 2", got)
	}
	if got := visibleDocLine(s, doc, 10); got != -1 {
		t.Fatalf("visibleDocLine(row 10) = %d, want -1 (past EOF)", got)
	}
}

func TestVisibleDocLineWithFilter(t *testing.T) {
	s := newLayoutTestState(t, manyLines(10))
	s.Filter = &pagerstate.Filter{Pattern: "x", Lines: []int{1, 3, 7}}

	doc := s.ActiveDocument()
	if got := visibleDocLine(s, doc, 0); got != 1 {
		t.Fatalf("visibleDocLine(row 0) = %d, want 1", got)
	}
	if got := visibleDocLine(s, doc, 2); got != 7 {
		t.Fatalf("visibleDocLine(row 2) = %d, want 7", got)
	}
	if got := visibleDocLine(s, doc, 3); got != -1 {
		t.Fatalf("visibleDocLine(row 3) = %d, want -1 (past filtered list)", got)
	}
}
