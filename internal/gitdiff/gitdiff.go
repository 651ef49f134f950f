// Package gitdiff implements buffer.GitChangeLoader by shelling out to
// `git diff` and parsing its unified-diff hunk headers into a per-line
// change map. The core never parses diff output itself (spec §4.1 "Git
// changes", §6 "Git integration" — "the collaborator is the sole parser
// of external diff output").
//
// Grounded directly on sacenox-symb's internal/tui/gitdiff.go
// (GitFileMarkers/ParseDiffMarkers/parseHunkHeader/parseRange), adapted
// from that package's three-way editor.GutterMark enum to
// buffer.ChangeKind and from a context.Context-taking signature to the
// plain buffer.GitChangeLoader interface the core depends on.
package gitdiff

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"vpager/internal/buffer"
)

// runFn is a seam over exec.Command's output so tests can supply
// canned diff output without a real git repository, mirroring
// kk-code-lab-rdir/internal/state/reducer.go's userHomeDirFn pattern.
var runFn = runGitDiff

// Loader implements buffer.GitChangeLoader.
type Loader struct{}

// New returns a Loader. There is no setup: each call to Changes shells
// out fresh, since the working tree may have changed between an open
// and a reload (spec §6: "once at open and once per reload").
func New() Loader { return Loader{} }

// Changes runs `git diff --unified=0 -- path` in path's directory and
// parses the result. A path outside any git repository, or with no
// uncommitted changes, yields a nil map and a nil error — not finding
// changes to report is not a failure (spec §7's error-kind table has no
// "not a repo" kind; only Io/BadRegex/BadKeySpec/ThemeMissing/
// ClipboardUnavailable exist).
func (Loader) Changes(path string) (map[int]buffer.ChangeKind, error) {
	out, err := runFn(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("git diff unavailable")
		return nil, nil
	}
	return parseDiff(out)
}

func runGitDiff(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	cmd := exec.Command("git", "diff", "--unified=0", "--", abs)
	cmd.Dir = filepath.Dir(abs)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	// A non-repo or untracked file makes git exit non-zero; that's not
	// our failure to report, so the caller treats any error as "no
	// changes" rather than propagating it.
	_ = cmd.Run()
	return stdout.String(), nil
}

// parseDiff walks unified-diff hunk headers ("@@ -old +new @@") and
// classifies every new-file line a hunk touches: a hunk that removes no
// old lines is a pure addition, one that adds no new lines marks the
// line before it as a deletion, and anything else is a modification.
func parseDiff(diff string) (map[int]buffer.ChangeKind, error) {
	if strings.TrimSpace(diff) == "" {
		return nil, nil
	}

	changes := make(map[int]buffer.ChangeKind)
	for _, line := range strings.Split(diff, "\n") {
		if !strings.HasPrefix(line, "@@ ") {
			continue
		}
		newStart, newCount, oldCount, ok := parseHunkHeader(line)
		if !ok {
			continue
		}

		switch {
		case newCount == 0:
			row := newStart - 1
			if row < 0 {
				row = 0
			}
			changes[row] = buffer.ChangeDeletedBefore
		case oldCount == 0:
			for i := 0; i < newCount; i++ {
				changes[newStart-1+i] = buffer.ChangeAdded
			}
		default:
			for i := 0; i < newCount; i++ {
				changes[newStart-1+i] = buffer.ChangeModified
			}
		}
	}

	if len(changes) == 0 {
		return nil, nil
	}
	return changes, nil
}

// parseHunkHeader extracts newStart, newCount, oldCount from a line
// shaped "@@ -oldStart[,oldCount] +newStart[,newCount] @@[ context]".
func parseHunkHeader(line string) (newStart, newCount, oldCount int, ok bool) {
	idx := strings.Index(line[3:], " @@")
	if idx < 0 {
		return 0, 0, 0, false
	}
	header := line[3 : 3+idx]

	parts := strings.Fields(header)
	if len(parts) != 2 {
		return 0, 0, 0, false
	}

	_, oldCount = parseRange(strings.TrimPrefix(parts[0], "-"))
	newStart, newCount = parseRange(strings.TrimPrefix(parts[1], "+"))
	if newStart == 0 {
		return 0, 0, 0, false
	}
	return newStart, newCount, oldCount, true
}

// parseRange parses "start,count" or "start" (count defaults to 1, the
// form git uses when a hunk touches exactly one line).
func parseRange(s string) (start, count int) {
	if idx := strings.IndexByte(s, ','); idx >= 0 {
		start, _ = strconv.Atoi(s[:idx])
		count, _ = strconv.Atoi(s[idx+1:])
		return start, count
	}
	start, _ = strconv.Atoi(s)
	return start, 1
}
