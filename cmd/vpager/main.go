// Command vpager is the terminal pager's executable: it parses the CLI
// surface spec §6 documents, loads and merges the TOML config (spec §6
// "Configuration file"), opens the requested documents, and hands
// everything to internal/app to run. Everything in this file is
// deliberately outside the core per spec §1 — "CLI parsing and process
// bootstrap" is this composition root's job, not pagerstate's.
//
// Grounded on the flag-then-build-then-run shape of cmd/rdir/main.go,
// scaled from that file's two-switch CLI to the ~10-flag surface spec §6
// requires with the stdlib flag package (flag.NewFlagSet, as used in
// DevGuyRash-mcp-launch/main.go).
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"vpager/internal/app"
	"vpager/internal/applog"
	"vpager/internal/buffer"
	"vpager/internal/clipboard"
	"vpager/internal/config"
	"vpager/internal/gitdiff"
	"vpager/internal/highlight"
	"vpager/internal/keymap"
	"vpager/internal/pagerstate"
	"vpager/internal/perr"
	"vpager/internal/render"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run contains everything main would otherwise do directly, so tests
// could exercise it with a stub arg slice — kept even though no test
// calls it yet, matching cmd/rdir/main.go's split between main() and its
// testable body.
func run(args []string) int {
	pa, err := parseArgs(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	resolved := config.Resolve(cfg, pa.ov)

	closer, err := applog.Init(applog.DefaultPath(), resolved.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not open log file:", err)
	} else {
		defer closer.Close()
	}

	km := keymap.Default()
	if err := km.ApplyOverrides(resolved.Keys); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	bufOpts := buffer.Options{MmapThreshold: resolved.MmapThreshold, GitLoader: gitdiff.New()}

	docs, err := openDocuments(pa.files, resolved, bufOpts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	stateCfg := config.Config{
		General: config.General{
			Theme:         resolved.Theme,
			LineNumbers:   resolved.LineNumbers,
			Wrap:          resolved.Wrap,
			TabWidth:      resolved.TabWidth,
			Mouse:         resolved.Mouse,
			SmartCase:     resolved.SmartCase,
			ThemesDir:     resolved.ThemesDir,
			MmapThreshold: resolved.MmapThreshold,
			LogLevel:      resolved.LogLevel,
		},
		Colors: resolved.Colors,
		Keys:   resolved.Keys,
	}
	state := pagerstate.New(docs, stateCfg, km)
	state.HighlightEnabled = !resolved.NoSyntax

	syntaxStyle, err := highlight.ResolveTheme(resolved.Theme, resolved.ThemesDir)
	if err != nil {
		state.StatusMessage = err.Error()
	}
	colorTheme := render.ThemeFromColors(
		resolved.Colors.StatusBarFg,
		resolved.Colors.StatusBarBg,
		resolved.Colors.SearchMatchFg,
		resolved.Colors.SearchMatchBg,
		resolved.Colors.LineNumberFg,
	)

	reducer := pagerstate.NewReducer(clipboard.New(), bufOpts)

	application, err := app.New(state, reducer, colorTheme, syntaxStyle)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer application.Close()

	applyStartupOverrides(state, reducer, resolved)

	application.Run()
	return 0
}

// openDocuments implements spec §6's `--diff <FILE2>` switch and the
// plain positional-FILE.../stdin path. Every open here happens eagerly
// at startup, so any failure is spec §7's "initial document factory"
// fatal case — callers exit 2 on a non-nil error.
func openDocuments(files []string, resolved config.Resolved, bufOpts buffer.Options) ([]*buffer.Document, error) {
	if resolved.DiffAgainst != "" {
		if len(files) != 1 {
			return nil, perr.Wrap(perr.KindIO, "", fmt.Errorf("--diff requires exactly one positional FILE (the old side)"))
		}
		before, err := os.ReadFile(files[0])
		if err != nil {
			return nil, perr.Wrap(perr.KindIO, files[0], err)
		}
		after, err := os.ReadFile(resolved.DiffAgainst)
		if err != nil {
			return nil, perr.Wrap(perr.KindIO, resolved.DiffAgainst, err)
		}
		label := fmt.Sprintf("%s -> %s", files[0], resolved.DiffAgainst)
		doc, err := buffer.FromDiff(label, files[0], resolved.DiffAgainst, string(before), string(after))
		if err != nil {
			return nil, err
		}
		return []*buffer.Document{doc}, nil
	}

	if len(files) == 0 {
		doc, err := buffer.FromStdin(os.Stdin)
		if err != nil {
			return nil, err
		}
		return []*buffer.Document{doc}, nil
	}

	docs := make([]*buffer.Document, 0, len(files))
	for _, f := range files {
		if f == "-" {
			doc, err := buffer.FromStdin(os.Stdin)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
			continue
		}
		doc, err := buffer.FromPath(f, bufOpts)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// applyStartupOverrides drives -N/-p/-f onto an already-constructed
// State using only pagerstate's existing exported surface: GotoTop plus
// ScrollDown for -N (reusing setTopPos's clamp rather than adding an
// absolute-goto-line method), synthesized key events through the
// reducer for -p (the same mode-machine path reducer_test.go's search
// tests drive), and a direct Mode assignment plus GotoBottom for -f.
// Applied in this order so follow mode's jump-to-bottom always wins if
// more than one of the three is given.
func applyStartupOverrides(s *pagerstate.State, r *pagerstate.Reducer, resolved config.Resolved) {
	if resolved.StartLine > 0 {
		s.GotoTop()
		s.ScrollDown(resolved.StartLine - 1)
	}

	if resolved.Pattern != "" {
		s.Mode = pagerstate.SearchInput{Forward: true}
		for _, c := range resolved.Pattern {
			r.HandleKey(s, tcell.NewEventKey(tcell.KeyRune, c, tcell.ModNone))
		}
		r.HandleKey(s, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	}

	if resolved.Follow {
		s.Mode = pagerstate.Follow{}
		s.GotoBottom()
	}
}
