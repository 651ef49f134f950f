// Package buffer implements the pager's core document model: loading and
// decompressing a source, indexing it into lines, and serving UTF-8-safe
// line access over either owned memory or a memory-mapped file.
//
// Grounded on the teacher repo's internal/ui/pager/text_source.go (line
// indexing, caching, streaming reads over a path) and on
// original_source/src/buffer.rs for the exact Mmap/Memory storage split
// and hex-dump/reload semantics the Rust original specified.
package buffer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ChangeKind describes a git change for a single line, supplied verbatim
// by an external collaborator (internal/gitdiff) — the core never parses
// diff output itself (spec §4.1 "Git changes").
type ChangeKind int

const (
	ChangeNone ChangeKind = iota
	ChangeAdded
	ChangeModified
	ChangeDeletedBefore
)

// GitChangeLoader is the collaborator interface the core depends on to
// populate a Document's per-line change map. The concrete implementation
// (shelling out to `git diff`) lives outside the core, in
// internal/gitdiff, and is injected by the composition root.
type GitChangeLoader interface {
	Changes(path string) (map[int]ChangeKind, error)
}

// storage is implemented by ownedStorage and mappedStorage (see
// mmap_unix.go / mmap_stub.go).
type storage interface {
	Bytes() []byte
	Close() error
}

// binaryScanWindow is how much of the document's head is scanned for a
// NUL byte to decide the binary flag (spec §4.1).
const binaryScanWindow = 8 * 1024

// mmapThreshold is overridable per-Document via config; defaultMmapThreshold
// mirrors original_source/src/config.rs's GeneralConfig::default (10 MiB).
const defaultMmapThreshold = 10 * 1024 * 1024

// Document is one opened source: a logical path, storage, a line index,
// and the derived flags/maps described in spec §3.
type Document struct {
	logicalPath  string // for display and syntax lookup
	originalPath string // set when decompressed; differs from logicalPath
	hadCompressionSuffix bool

	store   storage
	offsets []int64 // length N+1; offsets[len-1] == byte length

	binary bool
	isDiff bool

	changes   map[int]ChangeKind
	gitLoader GitChangeLoader

	fromStdin bool
}

// Path returns the logical path used for display and syntax detection.
func (d *Document) Path() string { return d.logicalPath }

// OriginalPath returns Path() with its compression suffix stripped when
// the content was decompressed, or "" otherwise. Path() stays the
// on-disk name that Reload re-opens.
func (d *Document) OriginalPath() string { return d.originalPath }

// Compressed reports whether the source path carried a recognized
// compression suffix that was transparently decoded on load.
func (d *Document) Compressed() bool { return d.hadCompressionSuffix }

// IsBinary reports the once-computed binary flag.
func (d *Document) IsBinary() bool { return d.binary }

// IsDiff reports whether this is a synthetic unified-diff document.
func (d *Document) IsDiff() bool { return d.isDiff }

// Reloadable reports whether Reload can succeed for this document — false
// for stdin-backed and synthetic diff documents, which have no backing
// path to re-read (spec §4.1 "Reload"). The composition root uses this to
// decide which documents are worth handing to internal/watcher.
func (d *Document) Reloadable() bool { return !d.fromStdin && !d.isDiff }

// Changes returns the per-line git change map (nil if none/diff/no path).
func (d *Document) Changes() map[int]ChangeKind { return d.changes }

// Name returns the file's base name for display in the tab bar, falling
// back to the logical path itself for synthetic labels like "<stdin>".
func (d *Document) Name() string {
	if d.logicalPath == "" {
		return ""
	}
	return baseName(d.logicalPath)
}

func (d *Document) bytes() []byte {
	if d.store == nil {
		return nil
	}
	return d.store.Bytes()
}

// LineCount returns the number of lines inferred from the index.
func (d *Document) LineCount() int {
	if len(d.offsets) == 0 {
		return 0
	}
	return len(d.offsets) - 1
}

// HexLineCount returns ceil(byte_len/16).
func (d *Document) HexLineCount() int {
	n := len(d.bytes())
	return (n + 15) / 16
}

// DisplayLineCount returns HexLineCount for binary documents, else
// LineCount (spec §4.1 "display_line_count()").
func (d *Document) DisplayLineCount() int {
	if d.binary {
		return d.HexLineCount()
	}
	return d.LineCount()
}

// GetLine returns line i's text with a trailing \r\n or \n stripped.
// Non-UTF-8 bytes are replaced with the Unicode replacement character;
// the result never contains a partial code point (spec §3/§4.1
// invariant 8 and "Line access contract").
func (d *Document) GetLine(i int) string {
	if i < 0 || i+1 >= len(d.offsets) {
		return ""
	}
	start, end := d.offsets[i], d.offsets[i+1]
	b := d.bytes()
	if end > int64(len(b)) {
		end = int64(len(b))
	}
	if start > end {
		start = end
	}
	line := b[start:end]
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return toValidUTF8(line)
}

// toValidUTF8 replaces invalid byte sequences with the replacement
// character, never splitting a valid multi-byte sequence across the
// boundary it falls on.
func toValidUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			sb.WriteRune(utf8.RuneError)
			b = b[1:]
			continue
		}
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}

// HexLine renders hex row n: 16 bytes, two groups of eight, offset,
// hex bytes, and a printable-or-dot ASCII gutter, right-padded to keep
// alignment on the final partial row (spec §4.1).
func (d *Document) HexLine(n int) string {
	b := d.bytes()
	start := n * 16
	if start < 0 || start >= len(b) {
		return ""
	}
	end := start + 16
	if end > len(b) {
		end = len(b)
	}
	chunk := b[start:end]

	var hexParts strings.Builder
	for i := 0; i < 16; i++ {
		if i == 8 {
			hexParts.WriteByte(' ')
		}
		if i > 0 {
			hexParts.WriteByte(' ')
		}
		if i < len(chunk) {
			fmt.Fprintf(&hexParts, "%02x", chunk[i])
		} else {
			hexParts.WriteString("  ")
		}
	}

	var ascii strings.Builder
	for _, c := range chunk {
		if c >= 0x20 && c <= 0x7E {
			ascii.WriteByte(c)
		} else {
			ascii.WriteByte('.')
		}
	}
	for i := len(chunk); i < 16; i++ {
		ascii.WriteByte(' ')
	}

	return fmt.Sprintf("%08x  %s  |%s|", start, hexParts.String(), ascii.String())
}

// TextSnapshot materializes every line as an owned string, in order.
// This is the only operation allowed to feed background search workers —
// it decouples them from the Document's storage lifetime (spec §4.1,
// §9 "Snapshot for background work").
func (d *Document) TextSnapshot() []string {
	n := d.LineCount()
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = d.GetLine(i)
	}
	return out
}

// Close releases any mapped storage. Safe to call multiple times.
func (d *Document) Close() error {
	if d.store == nil {
		return nil
	}
	err := d.store.Close()
	d.store = nil
	return err
}

// buildIndex scans data once for '\n' and returns the offsets array of
// length N+1 with offsets[0]=0 and offsets[len-1]=len(data) (spec §3
// invariants).
func buildIndex(data []byte) []int64 {
	offsets := make([]int64, 0, 64)
	offsets = append(offsets, 0)
	for i, c := range data {
		if c == '\n' {
			offsets = append(offsets, int64(i+1))
		}
	}
	last := offsets[len(offsets)-1]
	if last != int64(len(data)) {
		offsets = append(offsets, int64(len(data)))
	}
	return offsets
}

// detectBinary scans up to the first 8 KiB for a NUL byte.
func detectBinary(data []byte) bool {
	n := len(data)
	if n > binaryScanWindow {
		n = binaryScanWindow
	}
	return bytes.IndexByte(data[:n], 0) != -1
}

// stripCompressionSuffix removes a trailing .gz/.zst/.zstd/.bz2 suffix
// (case-insensitively) so syntax detection sees the inner extension.
func stripCompressionSuffix(path string) (string, bool) {
	lower := strings.ToLower(path)
	for _, suf := range []string{".gz", ".zst", ".zstd", ".bz2"} {
		if strings.HasSuffix(lower, suf) {
			return path[:len(path)-len(suf)], true
		}
	}
	return path, false
}

// DetectedSyntaxPath returns the path the Highlighter should use to pick
// a lexer: the logical path with any compression suffix stripped.
func (d *Document) DetectedSyntaxPath() string {
	stripped, _ := stripCompressionSuffix(d.logicalPath)
	return stripped
}

func baseName(path string) string {
	return filepath.Base(path)
}
