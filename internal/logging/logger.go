// Package logging builds the zerolog logger used by the CLI and the engine.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Config controls level, format and destination.
type Config struct {
	Level  string `yaml:"level,omitempty"`  // trace, debug, info, warn, error
	Format string `yaml:"format,omitempty"` // console or json
	Output string `yaml:"output,omitempty"` // stderr, stdout or a file path
}

// DefaultConfig logs warnings and above to stderr in console format.
func DefaultConfig() Config {
	return Config{Level: "warn", Format: "console", Output: "stderr"}
}

// NopCloser is returned for outputs that need no cleanup.
var NopCloser io.Closer = nopCloser{}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger writing to cfg.Output. The caller closes the returned
// Closer once logging is done; it releases the log file, if any.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	w, closer, err := openOutput(cfg.Output)
	if err != nil {
		return zerolog.Nop(), NopCloser, err
	}
	return NewWithWriter(cfg, w), closer, nil
}

// NewWithWriter creates a logger writing to w, ignoring cfg.Output.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.WarnLevel
	}

	if cfg.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: !isTerminal(w)}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func openOutput(output string) (io.Writer, io.Closer, error) {
	switch output {
	case "stderr", "":
		return os.Stderr, NopCloser, nil
	case "stdout":
		return os.Stdout, NopCloser, nil
	default:
		f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, f, nil
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
