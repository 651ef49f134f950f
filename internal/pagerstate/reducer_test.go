package pagerstate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"vpager/internal/buffer"
	"vpager/internal/config"
	"vpager/internal/keymap"
)

func newTestState(t *testing.T, lines []string) (*State, *Reducer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	doc, err := buffer.FromPath(path, buffer.Options{})
	if err != nil {
		t.Fatalf("FromPath: %v", err)
	}
	t.Cleanup(func() { doc.Close() })

	s := New([]*buffer.Document{doc}, config.Default(), keymap.Default())
	s.ContentHeight = 5
	s.ContentWidth = 80
	r := NewReducer(nil, buffer.Options{})
	return s, r
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func keyNamed(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func manyLines(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "line"
	}
	return out
}

func TestScrollDownClampsAtMaxTop(t *testing.T) {
	s, r := newTestState(t, manyLines(10))
	for i := 0; i < 20; i++ {
		r.HandleKey(s, keyRune('j'))
	}
	if want := s.maxTop(); s.TopLine != want {
		t.Fatalf("TopLine = %d, want clamped %d", s.TopLine, want)
	}
}

func TestScrollDownThenUpReturnsToStart(t *testing.T) {
	s, r := newTestState(t, manyLines(100))
	for i := 0; i < 4; i++ {
		r.HandleKey(s, keyRune('j'))
	}
	for i := 0; i < 4; i++ {
		r.HandleKey(s, keyRune('k'))
	}
	if s.TopLine != 0 {
		t.Fatalf("TopLine = %d, want 0", s.TopLine)
	}
}

func TestMarkSetAndJump(t *testing.T) {
	s, r := newTestState(t, manyLines(100))

	r.HandleKey(s, keyRune('G')) // goto bottom
	bottom := s.TopLine
	if bottom == 0 {
		t.Fatalf("expected GotoBottom to move off 0")
	}

	r.HandleKey(s, keyRune('m'))
	r.HandleKey(s, keyRune('a'))

	r.HandleKey(s, keyRune('g')) // goto top
	if s.TopLine != 0 {
		t.Fatalf("TopLine = %d, want 0 after goto top", s.TopLine)
	}

	r.HandleKey(s, keyRune('\''))
	r.HandleKey(s, keyRune('a'))
	if s.TopLine != bottom {
		t.Fatalf("TopLine = %d after jump, want %d", s.TopLine, bottom)
	}
}

func TestSearchCommitAndNavigate(t *testing.T) {
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "plain"
	}
	lines[10] = "hit"
	lines[20] = "hit"
	s, r := newTestState(t, lines)

	r.HandleKey(s, keyRune('/'))
	if _, ok := s.Mode.(SearchInput); !ok {
		t.Fatalf("expected SearchInput mode after '/'")
	}
	for _, c := range "hit" {
		r.HandleKey(s, keyRune(c))
	}
	r.HandleKey(s, keyNamed(tcell.KeyEnter))

	if _, ok := s.Mode.(Normal); !ok {
		t.Fatalf("expected Normal mode after Enter commits search")
	}

	deadline := time.After(2 * time.Second)
	for len(s.Search.Committed) < 2 {
		select {
		case <-deadline:
			t.Fatalf("committed search never found both matches, got %v", s.Search.Committed)
		default:
			r.DrainSearch(s)
		}
	}

	if s.Search.Committed[0].Line != 10 || s.Search.Committed[1].Line != 20 {
		t.Fatalf("committed matches = %+v, want lines 10 and 20", s.Search.Committed)
	}

	r.HandleKey(s, keyRune('n'))
	if got := s.Search.Committed[s.Search.Current].Line; got != 20 {
		t.Fatalf("after next_match, current match line = %d, want 20", got)
	}
	r.HandleKey(s, keyRune('n'))
	if got := s.Search.Committed[s.Search.Current].Line; got != 10 {
		t.Fatalf("after wraparound next_match, current match line = %d, want 10", got)
	}
}

func TestVisualYankCopiesSelectedLines(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}
	s, r := newTestState(t, lines)

	clip := &fakeClipboard{}
	r.clip = clip

	r.HandleKey(s, keyRune('v'))
	vis, ok := s.Mode.(Visual)
	if !ok {
		t.Fatalf("expected Visual mode after 'v'")
	}
	if vis.Anchor != 0 || vis.Cursor != 0 {
		t.Fatalf("visual anchor/cursor = %d/%d, want 0/0", vis.Anchor, vis.Cursor)
	}

	r.HandleKey(s, keyRune('j'))
	r.HandleKey(s, keyRune('j'))
	r.HandleKey(s, keyRune('y'))

	if _, ok := s.Mode.(Normal); !ok {
		t.Fatalf("expected Normal mode after yank")
	}
	if clip.written != "a\nb\nc" {
		t.Fatalf("clipboard = %q, want %q", clip.written, "a\nb\nc")
	}
	if s.StatusMessage != "Yanked 3 lines" {
		t.Fatalf("StatusMessage = %q, want %q", s.StatusMessage, "Yanked 3 lines")
	}
}

func TestFilterThenClearOnEscape(t *testing.T) {
	lines := []string{"apple", "banana", "apricot", "cherry"}
	s, r := newTestState(t, lines)

	r.HandleKey(s, keyRune('&'))
	for _, c := range "ap" {
		r.HandleKey(s, keyRune(c))
	}
	r.HandleKey(s, keyNamed(tcell.KeyEnter))

	if s.Filter == nil {
		t.Fatalf("expected filter to be active")
	}
	if got := s.Filter.Lines; len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("Filter.Lines = %v, want [0 2]", got)
	}

	r.HandleKey(s, keyNamed(tcell.KeyEscape))
	if s.Filter != nil {
		t.Fatalf("expected Esc in Normal to clear an active filter")
	}
}

func TestCommandInputGotoLine(t *testing.T) {
	s, r := newTestState(t, manyLines(100))

	r.HandleKey(s, keyRune(':'))
	for _, c := range "42" {
		r.HandleKey(s, keyRune(c))
	}
	r.HandleKey(s, keyNamed(tcell.KeyEnter))

	if s.TopLine != 41 {
		t.Fatalf("TopLine = %d, want 41 after :42", s.TopLine)
	}
}

func TestFollowModeOnlyHonorsQuitKeys(t *testing.T) {
	s, r := newTestState(t, manyLines(10))
	s.Mode = Follow{}

	r.HandleKey(s, keyRune('j')) // ignored in Follow
	if _, ok := s.Mode.(Follow); !ok {
		t.Fatalf("expected to remain in Follow mode")
	}

	r.HandleKey(s, keyRune('q'))
	if _, ok := s.Mode.(Normal); !ok {
		t.Fatalf("expected 'q' to return to Normal from Follow")
	}
}

type fakeClipboard struct {
	written string
}

func (f *fakeClipboard) Write(text string) error {
	f.written = text
	return nil
}
