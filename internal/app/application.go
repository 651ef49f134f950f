// Package app is the pager's composition root: it owns the terminal
// screen, wires the document model, reducer, and renderer together, and
// runs the event loop spec §1 places outside the core ("deliberately
// out of scope: CLI parsing and process bootstrap; ... terminal
// raw-mode setup, teardown, and low-level key/mouse decoding; ...
// invocation of a filesystem watcher and an external git process").
//
// Grounded on kk-code-lab-rdir/internal/app's Application/NewApplication
// split (a screen plus the state/reducer/renderer triad, built once at
// startup and torn down by Close), generalized from rdir's
// directory-explorer domain to the pager's document/viewport one.
package app

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"vpager/internal/pagerstate"
	"vpager/internal/render"
	"vpager/internal/watcher"
)

// Application holds everything the event loop needs for the life of the
// process.
type Application struct {
	screen   tcell.Screen
	state    *pagerstate.State
	reducer  *pagerstate.Reducer
	renderer *render.Renderer

	// watchers maps a document's index in state.Documents to the
	// watcher following its backing file, for every document
	// buffer.Document.Reloadable() allowed one to be created for. A
	// signal from any of them, a background document's included, goes
	// to Reducer.OnWatchEvent, which reloads only the active document
	// and only in follow mode; a background document is not reloaded by
	// its own watcher.
	watchers map[int]*watcher.Watcher
}

// New builds an Application over an already-constructed State and
// Reducer, opening a real terminal screen and a Watcher for every
// reloadable document. New draws nothing: the first frame is drawn by
// Run, so CLI overrides (follow mode, start line, pre-committed search
// pattern) applied to state between New and Run show up in it.
func New(state *pagerstate.State, reducer *pagerstate.Reducer, theme render.ColorTheme, syntax *chroma.Style) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal screen: %w", err)
	}
	if state.Config.General.Mouse {
		screen.EnableMouse()
	}

	w, h := screen.Size()
	state.ContentWidth = w
	state.ContentHeight = h

	app := &Application{
		screen:   screen,
		state:    state,
		reducer:  reducer,
		renderer: render.NewRenderer(screen, theme, syntax),
		watchers: map[int]*watcher.Watcher{},
	}

	for i, doc := range state.Documents {
		if !doc.Reloadable() {
			continue
		}
		wch, err := watcher.New(doc.Path())
		if err != nil {
			log.Warn().Err(err).Str("path", doc.Path()).Msg("could not watch file for changes")
			continue
		}
		app.watchers[i] = wch
	}

	return app, nil
}

// Close tears down the terminal and every running watcher. Safe to call
// once, at process exit.
func (app *Application) Close() error {
	for _, w := range app.watchers {
		w.Close()
	}
	app.screen.Fini()
	return nil
}
