package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLogLevel is the default log level
const DefaultLogLevel = "info"

var (
	logger *zerolog.Logger
	// LogLevels are all the available log levels
	LogLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
)

// InitLogger inits the main logger
// The TUI owns stdout and stderr so callers usually pass a file writer.
func InitLogger(w io.Writer) {
	writer := w
	if w == nil {
		writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(writer).With().Timestamp().Logger()
	logger = &l
}

// NewLogger returns a logger tagged with the calling func's name
func NewLogger(funcName string) zerolog.Logger {
	if logger == nil {
		InitLogger(nil)
	}
	return logger.With().Str("func", funcName).Logger()
}

// SetVerbosity sets the global verbosity for all logs
func SetVerbosity(verbosity string) error {
	level, err := zerolog.ParseLevel(verbosity)
	if err != nil {
		return fmt.Errorf("Wrong verbosity %s, allowed values: %s", verbosity, GetLogLevelsAsString())
	}

	zerolog.SetGlobalLevel(level)
	return nil
}

// GetLogLevelsAsString returns log levels as a string ready to be displayed
func GetLogLevelsAsString() string {
	return strings.Join(LogLevels, ", ")
}
