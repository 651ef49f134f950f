// Package config loads the pager's TOML configuration file and merges it
// with command-line overrides into a single resolved value that enters
// the core as already-resolved (per spec §1, config loading is a
// collaborator outside the core).
//
// Grounded on sacenox-symb/internal/config/config.go, which decodes TOML
// with github.com/BurntSushi/toml into a struct with section sub-structs,
// applies defaults for empty fields, and validates the result.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// General holds the [general] section.
type General struct {
	Theme      string `toml:"theme"`
	LineNumbers bool  `toml:"line_numbers"`
	Wrap       bool   `toml:"wrap"`
	TabWidth   int    `toml:"tab_width"`
	Mouse      bool   `toml:"mouse"`
	SmartCase  bool   `toml:"smart_case"`
	ThemesDir  string `toml:"themes_dir"`
	// MmapThreshold is the byte size at or above which a file is
	// memory-mapped instead of read fully into owned memory.
	MmapThreshold int64  `toml:"mmap_threshold"`
	LogLevel      string `toml:"log_level"`
}

// Colors holds the [colors] section. Values are "#rrggbb" hex strings.
type Colors struct {
	StatusBarFg   string `toml:"status_bar_fg"`
	StatusBarBg   string `toml:"status_bar_bg"`
	SearchMatchFg string `toml:"search_match_fg"`
	SearchMatchBg string `toml:"search_match_bg"`
	LineNumberFg  string `toml:"line_number_fg"`
}

// Keys holds the [keys] section: action name -> key spec string. Absent
// actions keep their built-in default (see internal/keymap).
type Keys map[string]string

// Config is the root of the TOML document.
type Config struct {
	General General `toml:"general"`
	Colors  Colors  `toml:"colors"`
	Keys    Keys    `toml:"keys"`
}

// Default returns the built-in configuration, matching the Rust
// original's Default impls (base16-ocean.dark theme, 10 MiB mmap
// threshold, smart case and mouse on by default).
func Default() Config {
	return Config{
		General: General{
			Theme:         "base16-ocean.dark",
			LineNumbers:   false,
			Wrap:          false,
			TabWidth:      4,
			Mouse:         true,
			SmartCase:     true,
			MmapThreshold: 10 * 1024 * 1024,
			LogLevel:      "warn",
		},
		Colors: Colors{
			StatusBarFg:   "#cdd6f4",
			StatusBarBg:   "#1e1e2e",
			SearchMatchFg: "#1e1e2e",
			SearchMatchBg: "#f9e2af",
			LineNumberFg:  "#6c7086",
		},
		Keys: Keys{},
	}
}

// Path returns ~/.config/vpager/config.toml.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vpager", "config.toml"), nil
}

// DefaultThemesDir returns ~/.config/vpager/themes.
func DefaultThemesDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vpager", "themes"), nil
}

// Load reads the config file at path (or the default location if path is
// empty), overlaying decoded values onto Default(). A missing file is not
// an error — the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if dir, err := DefaultThemesDir(); err == nil {
		cfg.General.ThemesDir = dir
	}

	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}

	// Decode into a separate value so zero-valued fields in the file
	// (meaning "unset", per spec §6 "all fields optional") don't stomp
	// the defaults above.
	var file Config
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	mergeFile(&cfg, file)
	// An explicit value for a default-true flag, false included,
	// replaces the default.
	if md.IsDefined("general", "mouse") {
		cfg.General.Mouse = file.General.Mouse
	}
	if md.IsDefined("general", "smart_case") {
		cfg.General.SmartCase = file.General.SmartCase
	}
	return cfg, nil
}

func mergeFile(base *Config, file Config) {
	if file.General.Theme != "" {
		base.General.Theme = file.General.Theme
	}
	base.General.LineNumbers = file.General.LineNumbers || base.General.LineNumbers
	base.General.Wrap = file.General.Wrap || base.General.Wrap
	if file.General.TabWidth != 0 {
		base.General.TabWidth = file.General.TabWidth
	}
	if file.General.ThemesDir != "" {
		base.General.ThemesDir = file.General.ThemesDir
	}
	if file.General.MmapThreshold != 0 {
		base.General.MmapThreshold = file.General.MmapThreshold
	}
	if file.General.LogLevel != "" {
		base.General.LogLevel = file.General.LogLevel
	}
	// Mouse and SmartCase default to true; a present-but-false value in
	// the decoded struct is indistinguishable from absent, so here the
	// file can only turn them on. Load applies an explicit false
	// afterwards from the decoder's metadata; see DESIGN.md.
	base.General.Mouse = base.General.Mouse || file.General.Mouse
	base.General.SmartCase = base.General.SmartCase || file.General.SmartCase

	if file.Colors.StatusBarFg != "" {
		base.Colors.StatusBarFg = file.Colors.StatusBarFg
	}
	if file.Colors.StatusBarBg != "" {
		base.Colors.StatusBarBg = file.Colors.StatusBarBg
	}
	if file.Colors.SearchMatchFg != "" {
		base.Colors.SearchMatchFg = file.Colors.SearchMatchFg
	}
	if file.Colors.SearchMatchBg != "" {
		base.Colors.SearchMatchBg = file.Colors.SearchMatchBg
	}
	if file.Colors.LineNumberFg != "" {
		base.Colors.LineNumberFg = file.Colors.LineNumberFg
	}

	if len(file.Keys) > 0 {
		if base.Keys == nil {
			base.Keys = Keys{}
		}
		for action, spec := range file.Keys {
			base.Keys[action] = spec
		}
	}
}

// Overrides holds the subset of CLI flags that can override config
// values, mirroring original_source/cli.rs's `Cli` fields that
// `Config::merge_cli` consults.
type Overrides struct {
	LineNumbers   bool
	Follow        bool
	StartLine     int // 0 means unset
	Pattern       string
	Wrap          bool
	Theme         string
	NoSyntax      bool
	Plain         bool
	TabWidth      int // 0 means unset
	DiffAgainst   string
	ThemesDirFlag string
}

// Resolved is the fully merged configuration value the core receives —
// it has no notion of "unset" left; every field is a concrete setting.
type Resolved struct {
	Theme         string
	ThemesDir     string
	LineNumbers   bool
	Wrap          bool
	TabWidth      int
	Mouse         bool
	SmartCase     bool
	MmapThreshold int64
	LogLevel      string
	Colors        Colors
	Keys          Keys

	Follow      bool
	StartLine   int
	Pattern     string
	NoSyntax    bool
	DiffAgainst string
}

// Resolve merges CLI overrides onto a loaded Config, matching the
// precedence order documented in spec §6: "CLI flags override config."
func Resolve(cfg Config, ov Overrides) Resolved {
	r := Resolved{
		Theme:         cfg.General.Theme,
		ThemesDir:     cfg.General.ThemesDir,
		LineNumbers:   cfg.General.LineNumbers,
		Wrap:          cfg.General.Wrap,
		TabWidth:      cfg.General.TabWidth,
		Mouse:         cfg.General.Mouse,
		SmartCase:     cfg.General.SmartCase,
		MmapThreshold: cfg.General.MmapThreshold,
		LogLevel:      cfg.General.LogLevel,
		Colors:        cfg.Colors,
		Keys:          cfg.Keys,
		Follow:        ov.Follow,
		Pattern:       ov.Pattern,
		DiffAgainst:   ov.DiffAgainst,
		NoSyntax:      ov.NoSyntax,
	}

	if ov.LineNumbers {
		r.LineNumbers = true
	}
	if ov.Wrap {
		r.Wrap = true
	}
	if ov.Plain {
		r.LineNumbers = false
		r.NoSyntax = true
	}
	if ov.TabWidth != 0 {
		r.TabWidth = ov.TabWidth
	}
	if ov.Theme != "" {
		r.Theme = ov.Theme
	}
	if ov.ThemesDirFlag != "" {
		r.ThemesDir = ov.ThemesDirFlag
	}
	if ov.StartLine != 0 {
		r.StartLine = ov.StartLine
	}
	return r
}
