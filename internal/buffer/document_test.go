package buffer

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func mustLoad(t *testing.T, data []byte) *Document {
	t.Helper()
	path := writeTemp(t, "doc.txt", data)
	doc, err := FromPath(path, Options{})
	if err != nil {
		t.Fatalf("FromPath: %v", err)
	}
	t.Cleanup(func() { doc.Close() })
	return doc
}

func TestDocumentEmpty(t *testing.T) {
	doc := mustLoad(t, []byte(""))
	if got := doc.LineCount(); got != 0 {
		t.Fatalf("LineCount() = %d, want 0", got)
	}
	if got := doc.GetLine(0); got != "" {
		t.Fatalf("GetLine(0) = %q, want empty", got)
	}
}

func TestDocumentSingleLineNoTrailingNewline(t *testing.T) {
	doc := mustLoad(t, []byte("hello world"))
	if got := doc.LineCount(); got != 1 {
		t.Fatalf("LineCount() = %d, want 1", got)
	}
	if got := doc.GetLine(0); got != "hello world" {
		t.Fatalf("GetLine(0) = %q, want %q", got, "hello world")
	}
}

func TestDocumentMultipleLines(t *testing.T) {
	doc := mustLoad(t, []byte("one\ntwo\nthree\n"))
	if got := doc.LineCount(); got != 3 {
		t.Fatalf("LineCount() = %d, want 3", got)
	}
	want := []string{"one", "two", "three"}
	for i, w := range want {
		if got := doc.GetLine(i); got != w {
			t.Fatalf("GetLine(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestDocumentCRLF(t *testing.T) {
	doc := mustLoad(t, []byte("first\r\nsecond\r\n"))
	if got := doc.GetLine(0); got != "first" {
		t.Fatalf("GetLine(0) = %q, want %q", got, "first")
	}
	if got := doc.GetLine(1); got != "second" {
		t.Fatalf("GetLine(1) = %q, want %q", got, "second")
	}
}

func TestDocumentBareCRLFLineIsEmpty(t *testing.T) {
	doc := mustLoad(t, []byte("\r\n"))
	if got := doc.LineCount(); got != 1 {
		t.Fatalf("LineCount() = %d, want 1", got)
	}
	if got := doc.GetLine(0); got != "" {
		t.Fatalf("GetLine(0) = %q, want empty", got)
	}
}

func TestDocumentLastLineWithoutNewlineIncluded(t *testing.T) {
	doc := mustLoad(t, []byte("a\nb"))
	if got := doc.LineCount(); got != 2 {
		t.Fatalf("LineCount() = %d, want 2", got)
	}
	if got := doc.GetLine(1); got != "b" {
		t.Fatalf("GetLine(1) = %q, want %q", got, "b")
	}
}

func TestDocumentBinaryDetection(t *testing.T) {
	doc := mustLoad(t, []byte("hello\x00world"))
	if !doc.IsBinary() {
		t.Fatalf("IsBinary() = false, want true")
	}
}

func TestDocumentInvalidUTF8Replaced(t *testing.T) {
	doc := mustLoad(t, []byte{'o', 'k', 0xff, 0xfe, '\n'})
	line := doc.GetLine(0)
	if line == "" {
		t.Fatalf("GetLine(0) = empty, want replacement-containing string")
	}
	for _, r := range line {
		if r > 0x10FFFF {
			t.Fatalf("GetLine(0) produced an invalid rune")
		}
	}
}

func TestDocumentHexLine(t *testing.T) {
	doc := mustLoad(t, []byte("ABCDEFGHIJKLMNOP"))
	line := doc.HexLine(0)
	if line[:8] != "00000000" {
		t.Fatalf("HexLine(0) = %q, want offset prefix 00000000", line)
	}
	if !contains(line, "41 42 43 44") {
		t.Fatalf("HexLine(0) = %q, want hex bytes for ABCD", line)
	}
	if !contains(line, "|ABCDEFGHIJKLMNOP|") {
		t.Fatalf("HexLine(0) = %q, want ASCII gutter", line)
	}
}

func TestDocumentHexLineCount(t *testing.T) {
	doc := mustLoad(t, make([]byte, 32))
	if got := doc.HexLineCount(); got != 2 {
		t.Fatalf("HexLineCount() = %d, want 2", got)
	}
	doc2 := mustLoad(t, make([]byte, 17))
	if got := doc2.HexLineCount(); got != 2 {
		t.Fatalf("HexLineCount() = %d, want 2", got)
	}
}

func TestDocumentDisplayLineCountSwitchesForBinary(t *testing.T) {
	doc := mustLoad(t, append([]byte("a\x00b\n"), make([]byte, 20)...))
	if !doc.IsBinary() {
		t.Fatalf("expected document to be detected binary")
	}
	if got, want := doc.DisplayLineCount(), doc.HexLineCount(); got != want {
		t.Fatalf("DisplayLineCount() = %d, want HexLineCount() = %d", got, want)
	}
}

func TestDocumentCompressionSuffixStripped(t *testing.T) {
	doc := mustLoadNamed(t, "access.log.gz", gzipBytes(t, []byte("hit\n")))
	if got := doc.DetectedSyntaxPath(); got != filepath.Join(filepath.Dir(doc.Path()), "access.log") {
		t.Fatalf("DetectedSyntaxPath() = %q", got)
	}
	if !doc.Compressed() {
		t.Fatalf("Compressed() = false, want true")
	}
	if got := doc.GetLine(0); got != "hit" {
		t.Fatalf("GetLine(0) = %q, want %q", got, "hit")
	}
}

func TestDocumentFromStdinHasNoOriginalPath(t *testing.T) {
	doc, err := FromStdin(bytesReader([]byte("one\ntwo\n")))
	if err != nil {
		t.Fatalf("FromStdin: %v", err)
	}
	if doc.OriginalPath() != "" {
		t.Fatalf("OriginalPath() = %q, want empty", doc.OriginalPath())
	}
	if doc.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", doc.LineCount())
	}
}

func TestDocumentReloadPicksUpChanges(t *testing.T) {
	path := writeTemp(t, "growing.txt", []byte("one\n"))
	doc, err := FromPath(path, Options{})
	if err != nil {
		t.Fatalf("FromPath: %v", err)
	}
	defer doc.Close()

	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := doc.Reload(Options{}); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := doc.LineCount(); got != 2 {
		t.Fatalf("LineCount() after reload = %d, want 2", got)
	}
	if got := doc.GetLine(1); got != "two" {
		t.Fatalf("GetLine(1) after reload = %q, want %q", got, "two")
	}
}

func TestDocumentReloadRejectsStdin(t *testing.T) {
	doc, err := FromStdin(bytesReader([]byte("x\n")))
	if err != nil {
		t.Fatalf("FromStdin: %v", err)
	}
	if err := doc.Reload(Options{}); err == nil {
		t.Fatalf("Reload() on stdin document, want error")
	}
}

func TestFromDiffProducesUnifiedHeader(t *testing.T) {
	doc, err := FromDiff("diff", "a.txt", "b.txt", "one\ntwo\n", "one\nthree\n")
	if err != nil {
		t.Fatalf("FromDiff: %v", err)
	}
	if !doc.IsDiff() {
		t.Fatalf("IsDiff() = false, want true")
	}
	if doc.IsBinary() {
		t.Fatalf("IsDiff() document reported binary")
	}
	if doc.LineCount() == 0 {
		t.Fatalf("FromDiff produced an empty document")
	}
}

func mustLoadNamed(t *testing.T, name string, data []byte) *Document {
	t.Helper()
	path := writeTemp(t, name, data)
	doc, err := FromPath(path, Options{})
	if err != nil {
		t.Fatalf("FromPath: %v", err)
	}
	t.Cleanup(func() { doc.Close() })
	return doc
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && indexOf(s, substr) >= 0
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
