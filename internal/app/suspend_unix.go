//go:build !windows

package app

import (
	"syscall"

	"github.com/gdamore/tcell/v2"
)

// suspendToShell backgrounds the pager the way `less`/`more` do on
// Ctrl-Z: return the terminal to the shell, then stop this process with
// SIGTSTP so the shell's job control resumes it later with `fg`.
func (app *Application) suspendToShell() {
	_ = app.screen.Suspend()
	// Stop only this process; avoid signalling the entire process group
	// (which can include the wrapper shell function/process that
	// launched vpager, breaking job control like `fg`).
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	if app.state.Config.General.Mouse {
		app.screen.EnableMouse()
	}
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.state.ContentWidth = w
		app.state.ContentHeight = h
	}
	return true
}
