// Package logging builds the process-wide zerolog logger for the binaries.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured
const DefaultLevel = "info"

// New returns a logger writing to out at level. Terminals get a console
// writer, anything else gets JSON lines. Every event carries a per-run id
// and the binary name.
func New(out *os.File, level, binary string) (zerolog.Logger, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var w io.Writer = out
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	return NewWithWriter(w, lvl, binary), nil
}

// NewWithWriter is New without terminal detection
func NewWithWriter(w io.Writer, lvl zerolog.Level, binary string) zerolog.Logger {
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("run", uuid.NewString()).
		Str("bin", binary).
		Logger()
}
