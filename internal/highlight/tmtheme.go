package highlight

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// LoadTmTheme parses a TextMate/Sublime .tmTheme color scheme file (a
// plist-XML document with a top-level "settings" array: one unscoped
// entry carrying the editor-wide defaults, then one entry per scope
// rule) into a chroma.Style, for spec §4.2/§6's "overlays every
// *.tmTheme file in the themes directory".
func LoadTmTheme(path string) (*chroma.Style, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := decodePlist(f)
	if err != nil {
		return nil, err
	}

	settingsVal, _ := root["settings"].([]interface{})
	name := stringStem(path)
	b := chroma.NewStyleBuilder(name)

	for _, raw := range settingsVal {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		inner, _ := entry["settings"].(map[string]interface{})
		if inner == nil {
			continue
		}

		scopeVal, hasScope := entry["scope"]
		if !hasScope {
			// The unscoped entry sets the editor-wide defaults: chroma's
			// Background token carries the same role.
			if v := tmSettingsToEntry(inner); v != "" {
				b.Add(chroma.Background, v)
			}
			continue
		}
		scope, _ := scopeVal.(string)
		for _, part := range strings.Split(scope, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			// A scope selector can itself be space-separated ("a b"
			// meaning descendant b of a); the leaf-most component is
			// the one that carries the semantic category.
			fields := strings.Fields(part)
			leaf := part
			if len(fields) > 0 {
				leaf = fields[len(fields)-1]
			}
			tt, ok := tmScopeTokenType(leaf)
			if !ok {
				continue
			}
			if v := tmSettingsToEntry(inner); v != "" {
				b.Add(tt, v)
			}
		}
	}

	return b.Build()
}

// UserThemes scans dir for *.tmTheme files and returns every one that
// parses successfully, keyed by its file stem — "the theme is named by
// its stem" (spec §6). A directory that doesn't exist or contains no
// matching files yields an empty map, never an error: a themes
// directory is entirely optional.
func UserThemes(dir string) map[string]*chroma.Style {
	out := map[string]*chroma.Style{}
	if dir == "" {
		return out
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmTheme"))
	if err != nil {
		return out
	}
	for _, path := range matches {
		sty, err := LoadTmTheme(path)
		if err != nil {
			continue
		}
		out[stringStem(path)] = sty
	}
	return out
}

// tmSettingsToEntry builds a chroma style-entry string ("#rrggbb
// bg:#rrggbb bold italic underline") from a tmTheme settings dict's
// foreground/background/fontStyle keys.
func tmSettingsToEntry(inner map[string]interface{}) string {
	var parts []string
	if fg, ok := inner["foreground"].(string); ok && fg != "" {
		parts = append(parts, normalizeHex(fg))
	}
	if bg, ok := inner["background"].(string); ok && bg != "" {
		parts = append(parts, "bg:"+normalizeHex(bg))
	}
	if fs, ok := inner["fontStyle"].(string); ok {
		for _, tag := range strings.Fields(fs) {
			switch tag {
			case "bold", "italic", "underline":
				parts = append(parts, tag)
			}
		}
	}
	return strings.Join(parts, " ")
}

// normalizeHex truncates an 8-digit "#rrggbbaa" tmTheme color (alpha
// channel chroma's style entries have no notion of) down to the 6-digit
// form chroma expects.
func normalizeHex(hex string) string {
	if len(hex) == 9 && hex[0] == '#' {
		return hex[:7]
	}
	return hex
}

// stringStem returns path's file name with its extension removed, the
// name a tmTheme file contributes its theme under.
func stringStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// tmScopeTokenType maps a TextMate scope selector's leaf component to
// the chroma.TokenType it most closely corresponds to, by longest
// matching dotted prefix. There's no canonical 1:1 mapping between the
// two systems; this table covers the scope families that appear in
// practice across tmTheme files and chroma's own lexers, same as
// chroma's own bundled styles approximate Pygments' token set.
var tmScopeOrder = []string{
	"comment",
	"constant.character.escape",
	"constant.numeric",
	"constant.language",
	"constant.other",
	"constant",
	"entity.name.function",
	"entity.name.class",
	"entity.name.tag",
	"entity.other.attribute-name",
	"entity.name",
	"invalid.deprecated",
	"invalid",
	"keyword.operator",
	"keyword.control",
	"keyword",
	"markup.heading",
	"markup.bold",
	"markup.italic",
	"markup.underline.link",
	"markup.inserted",
	"markup.deleted",
	"markup",
	"punctuation",
	"storage.type",
	"storage.modifier",
	"storage",
	"string.regexp",
	"string",
	"support.function",
	"support.class",
	"support.type",
	"support.constant",
	"support",
	"variable.parameter",
	"variable.language",
	"variable.other",
	"variable",
}

var tmScopeToTokenType = map[string]chroma.TokenType{
	"comment":                      chroma.Comment,
	"constant.character.escape":    chroma.LiteralStringEscape,
	"constant.numeric":             chroma.LiteralNumber,
	"constant.language":            chroma.KeywordConstant,
	"constant.other":               chroma.NameConstant,
	"constant":                     chroma.NameConstant,
	"entity.name.function":         chroma.NameFunction,
	"entity.name.class":            chroma.NameClass,
	"entity.name.tag":              chroma.NameTag,
	"entity.other.attribute-name":  chroma.NameAttribute,
	"entity.name":                  chroma.Name,
	"invalid.deprecated":           chroma.GenericDeleted,
	"invalid":                      chroma.Error,
	"keyword.operator":             chroma.Operator,
	"keyword.control":              chroma.Keyword,
	"keyword":                      chroma.Keyword,
	"markup.heading":               chroma.GenericHeading,
	"markup.bold":                  chroma.GenericStrong,
	"markup.italic":                chroma.GenericEmph,
	"markup.underline.link":        chroma.NameVariable,
	"markup.inserted":              chroma.GenericInserted,
	"markup.deleted":               chroma.GenericDeleted,
	"markup":                       chroma.Generic,
	"punctuation":                  chroma.Punctuation,
	"storage.type":                 chroma.KeywordType,
	"storage.modifier":             chroma.KeywordDeclaration,
	"storage":                      chroma.Keyword,
	"string.regexp":                chroma.LiteralStringRegex,
	"string":                       chroma.LiteralString,
	"support.function":             chroma.NameBuiltin,
	"support.class":                chroma.NameClass,
	"support.type":                 chroma.NameClass,
	"support.constant":             chroma.NameConstant,
	"support":                      chroma.NameBuiltin,
	"variable.parameter":           chroma.NameVariable,
	"variable.language":            chroma.NameBuiltinPseudo,
	"variable.other":               chroma.NameVariable,
	"variable":                     chroma.NameVariable,
}

// tmScopeTokenType looks up scope by the longest prefix in
// tmScopeOrder that scope starts with (dot-boundary aware: "keyword"
// matches "keyword.control" but not "keywordish").
func tmScopeTokenType(scope string) (chroma.TokenType, bool) {
	best := ""
	for _, prefix := range tmScopeOrder {
		if scope == prefix || strings.HasPrefix(scope, prefix+".") {
			if len(prefix) > len(best) {
				best = prefix
			}
		}
	}
	if best == "" {
		return 0, false
	}
	tt, ok := tmScopeToTokenType[best]
	return tt, ok
}
