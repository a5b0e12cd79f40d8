// Package logging builds the command-line logger.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Verbosity values accepted by --verbosity.
const (
	VerbosityQuiet = "quiet"
	VerbosityInfo  = "info"
	VerbosityDebug = "debug"
)

// Formats accepted by --log-format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup creates a zerolog logger writing to w. Format "json" writes one JSON
// object per line; "text" (or empty) uses the console writer.
func Setup(verbosity, format string, w io.Writer) (zerolog.Logger, error) {
	level, err := parseVerbosity(verbosity)
	if err != nil {
		return zerolog.Logger{}, err
	}

	var out io.Writer
	switch strings.ToLower(format) {
	case FormatJSON:
		out = w
	case FormatText, "":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	default:
		return zerolog.Logger{}, fmt.Errorf("unknown log format %q, expected text or json", format)
	}

	return zerolog.New(out).With().Timestamp().Logger().Level(level), nil
}

func parseVerbosity(v string) (zerolog.Level, error) {
	switch strings.ToLower(v) {
	case VerbosityQuiet:
		return zerolog.ErrorLevel, nil
	case VerbosityInfo, "":
		return zerolog.InfoLevel, nil
	case VerbosityDebug:
		return zerolog.DebugLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown verbosity %q, expected quiet, info or debug", v)
}
