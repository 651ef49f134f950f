// Package clipboard implements the pager's platform clipboard
// collaborator: the concrete Write the pagerstate.Clipboard interface
// calls into on visual-mode yank (spec §6 "Clipboard").
//
// Grounded on the atotto/clipboard usage in sacenox-symb's
// internal/tui/editor/editor.go, which calls clipboard.WriteAll/ReadAll
// directly against the OS clipboard rather than through a platform-
// specific shim.
package clipboard

import (
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"

	"vpager/internal/perr"
)

// writeAllFn is a seam over clipboard.WriteAll so tests can exercise the
// error path without an actual X11/Wayland/pbcopy clipboard present,
// mirroring kk-code-lab-rdir/internal/state/reducer.go's userHomeDirFn.
var writeAllFn = clipboard.WriteAll

// Writer implements pagerstate.Clipboard.
type Writer struct{}

// New returns a Writer. There is no setup: atotto/clipboard resolves the
// platform mechanism (xclip/xsel/wl-clipboard/pbcopy/clip.exe) lazily on
// first use.
func New() Writer { return Writer{} }

// Write hands text to the platform clipboard, wrapping any failure (no
// clipboard utility installed, no display, ...) as
// perr.KindClipboardUnavailable so callers can surface it into
// status_message without caring which platform mechanism failed (spec §7
// "ClipboardUnavailable").
func (Writer) Write(text string) error {
	if err := writeAllFn(text); err != nil {
		log.Warn().Err(err).Msg("clipboard write failed")
		return perr.Wrap(perr.KindClipboardUnavailable, "", err)
	}
	return nil
}
