// Package perr provides the typed error kinds surfaced by the pager core.
//
// The core never panics on otherwise-valid user input; every failure path
// either aborts startup with a Kind of Io (see cmd/vpager) or is wrapped in
// one of these Kinds and routed into the status line by the mode machine.
package perr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so callers can branch without string matching.
type Kind int

const (
	// KindIO covers open/read/decompress/mmap/watch failures.
	KindIO Kind = iota
	// KindBadRegex covers search or filter pattern compile failures.
	KindBadRegex
	// KindBadKeySpec covers unrecognized key specifications from config.
	KindBadKeySpec
	// KindThemeMissing covers a theme name that fell back to the default.
	KindThemeMissing
	// KindClipboardUnavailable covers a missing clipboard collaborator.
	KindClipboardUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindBadRegex:
		return "bad_regex"
	case KindBadKeySpec:
		return "bad_key_spec"
	case KindThemeMissing:
		return "theme_missing"
	case KindClipboardUnavailable:
		return "clipboard_unavailable"
	default:
		return "unknown"
	}
}

// Error is a typed error carrying a Kind, an optional context string (a
// path, a pattern, a key spec) and the underlying cause.
type Error struct {
	Kind    Kind
	Context string
	Cause   error
}

func (e *Error) Error() string {
	if e.Context != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.Context, e.Cause)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Context)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds a typed error with no context string.
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

// Wrap builds a typed error with a context string (path, pattern, ...).
func Wrap(kind Kind, context string, cause error) *Error {
	return &Error{Kind: kind, Context: context, Cause: cause}
}

// Is reports whether err is a *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
