// Package applog configures the process-wide zerolog logger.
//
// The terminal's alternate screen owns stdout/stderr for the life of the
// program, so diagnostics never go there — they go to a file under the
// user's config directory (see DefaultPath). Grounded on the rs/zerolog usage in the
// sacenox-symb reference repo (internal/mcp, internal/delta), which logs
// through the package-level zerolog/log logger rather than threading a
// *zerolog.Logger through every call site.
package applog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init opens (creating parent directories as needed) a log file at path and
// points the global zerolog logger at it, filtered to level. An empty path
// disables file logging and routes everything to io.Discard so log.*
// call sites never need to guard on whether logging is configured.
func Init(path string, level string) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if path == "" {
		log.Logger = zerolog.New(io.Discard)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// DefaultPath returns ~/.config/vpager/vpager.log, mirroring the config
// file location convention in internal/config.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vpager", "vpager.log")
}
