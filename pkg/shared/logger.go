package shared

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the console logger used by the command line tools.
func NewLogger(app string, debug bool) zerolog.Logger {
	return NewLoggerTo(os.Stderr, app, debug)
}

// NewLoggerTo builds a console logger writing to out.
func NewLoggerTo(out io.Writer, app string, debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}
