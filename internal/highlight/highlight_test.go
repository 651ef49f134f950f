package highlight

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLexerHighlightSpansStayWithinLineBounds(t *testing.T) {
	theme, err := ResolveTheme("monokai", "")
	if err != nil {
		t.Fatalf("ResolveTheme: %v", err)
	}
	lex := NewLexer("example.go", theme)

	lines := []string{
		"package main",
		"",
		"func main() {",
		"\tprintln(\"hi\")",
		"}",
	}
	for _, line := range lines {
		spans := lex.Highlight(line)
		for _, sp := range spans {
			if sp.Start < 0 || sp.End > len(line) || sp.Start >= sp.End {
				t.Fatalf("span %+v out of bounds for line %q (len %d)", sp, line, len(line))
			}
		}
	}
}

func TestLexerFallsBackForUnknownExtension(t *testing.T) {
	theme, _ := ResolveTheme("monokai", "")
	lex := NewLexer("notes.unknownext", theme)
	spans := lex.Highlight("just some text")
	for _, sp := range spans {
		if sp.Start < 0 || sp.End > len("just some text") {
			t.Fatalf("span %+v out of bounds", sp)
		}
	}
}

func TestResolveThemeMissingFallsBack(t *testing.T) {
	theme, err := ResolveTheme("definitely-not-a-real-theme-name", "")
	if err == nil {
		t.Fatalf("ResolveTheme(unknown) = nil error, want KindThemeMissing")
	}
	if theme == nil {
		t.Fatalf("ResolveTheme(unknown) theme = nil, want fallback style")
	}
}

func TestResolveThemeEmptyNameUsesFallback(t *testing.T) {
	theme, err := ResolveTheme("", "")
	if err != nil {
		t.Fatalf("ResolveTheme(\"\") returned error: %v", err)
	}
	if theme == nil {
		t.Fatalf("ResolveTheme(\"\") theme = nil")
	}
}

const testTmTheme = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>name</key>
	<string>Acceptance Test</string>
	<key>settings</key>
	<array>
		<dict>
			<key>settings</key>
			<dict>
				<key>background</key>
				<string>#112233</string>
				<key>foreground</key>
				<string>#eeeeee</string>
			</dict>
		</dict>
		<dict>
			<key>scope</key>
			<string>comment, comment.line</string>
			<key>settings</key>
			<dict>
				<key>foreground</key>
				<string>#556677</string>
				<key>fontStyle</key>
				<string>italic</string>
			</dict>
		</dict>
		<dict>
			<key>scope</key>
			<string>string</string>
			<key>settings</key>
			<dict>
				<key>foreground</key>
				<string>#ffaa00ff</string>
			</dict>
		</dict>
	</array>
</dict>
</plist>
`

func TestResolveThemeLoadsTmThemeFromThemesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "acceptance.tmTheme"), []byte(testTmTheme), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	theme, err := ResolveTheme("acceptance", dir)
	if err != nil {
		t.Fatalf("ResolveTheme: %v", err)
	}

	bg := Background(theme)
	if want := int32(0x112233); bg.Hex() != want {
		t.Fatalf("background = %#06x, want %#06x", bg.Hex(), want)
	}
}

func TestUserThemesSkipsUnparseableFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.tmTheme"), []byte("not xml"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if got := UserThemes(dir); len(got) != 0 {
		t.Fatalf("UserThemes = %v, want empty map for an unparseable file", got)
	}
}

func TestUserThemesEmptyDirReturnsEmptyMap(t *testing.T) {
	if got := UserThemes(""); len(got) != 0 {
		t.Fatalf("UserThemes(\"\") = %v, want empty map", got)
	}
}
