package main

import (
	"flag"
	"fmt"
	"io"

	"vpager/internal/config"
)

// parsedArgs is what flag parsing hands back to main: the files to open
// (possibly empty, meaning read stdin) and the config.Overrides CLI flags
// resolve into (spec §6 "CLI surface").
type parsedArgs struct {
	files []string
	ov    config.Overrides
}

// parseArgs parses args (os.Args[1:]) against the flag set spec §6's CLI
// surface table defines. Short and long spellings of the same flag share
// one destination variable, the way the stdlib flag package is meant to
// be used for aliases (grounded on the flag.NewFlagSet usage in
// DevGuyRash-mcp-launch/main.go — no third-party CLI/arg-parsing library
// appears anywhere in the example pack, so this stays on the standard
// library rather than inventing a dependency the corpus never reaches
// for).
func parseArgs(args []string, out io.Writer) (parsedArgs, error) {
	fs := flag.NewFlagSet("vpager", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprint(out, usageText)
	}

	var pa parsedArgs

	fs.BoolVar(&pa.ov.LineNumbers, "n", false, "start with the line-number gutter enabled")
	fs.BoolVar(&pa.ov.LineNumbers, "line-numbers", false, "start with the line-number gutter enabled")
	fs.BoolVar(&pa.ov.Follow, "f", false, "enter follow mode after opening")
	fs.BoolVar(&pa.ov.Follow, "follow", false, "enter follow mode after opening")
	fs.IntVar(&pa.ov.StartLine, "N", 0, "open at line N (1-based)")
	fs.StringVar(&pa.ov.Pattern, "p", "", "pre-commit a search pattern on startup")
	fs.BoolVar(&pa.ov.Wrap, "w", false, "enable line wrap")
	fs.BoolVar(&pa.ov.Wrap, "wrap", false, "enable line wrap")
	fs.StringVar(&pa.ov.Theme, "t", "", "theme name")
	fs.BoolVar(&pa.ov.NoSyntax, "no-syntax", false, "disable syntax highlighting")
	fs.BoolVar(&pa.ov.Plain, "plain", false, "disable syntax highlighting and the gutter")
	fs.IntVar(&pa.ov.TabWidth, "tab-width", 0, "tab display width")
	fs.StringVar(&pa.ov.DiffAgainst, "diff", "", "switch to diff mode: the first positional FILE is the old side, this is the new side")

	if err := fs.Parse(args); err != nil {
		return pa, err
	}
	pa.files = fs.Args()
	return pa, nil
}

const usageText = `vpager - terminal pager

USAGE:
    vpager [OPTIONS] [FILE...]

With no FILE, or FILE "-", reads standard input.

OPTIONS:
    -n, --line-numbers   Start with the line-number gutter enabled
    -f, --follow         Enter follow mode after opening
    -N <N>               Open at line N (1-based)
    -p <REGEX>           Pre-commit a search pattern on startup
    -w, --wrap           Enable line wrap
    -t <THEME>           Theme name
        --no-syntax      Disable syntax highlighting
        --plain          Disable syntax highlighting and the gutter
        --tab-width <N>  Tab display width (default 4)
        --diff <FILE2>   Switch to diff mode: first positional = old, this = new
`
