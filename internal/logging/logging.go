// Package logging configures the global zerolog logger. The TUI owns the
// terminal, so logs always go to a file under the data directory; nothing may
// write to stdout or stderr while the program is running.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init routes the global logger to a log file and applies the level. Returns
// a close function for shutdown.
func Init(dataDir, level string) (func(), error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, "stargazer.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	zerolog.SetGlobalLevel(parseLevel(level))
	log.Logger = zerolog.New(f).With().Timestamp().Logger()

	return func() { f.Close() }, nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
