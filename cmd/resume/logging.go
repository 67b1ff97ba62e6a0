package main

import (
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// newLogger returns a console logger on w. -q keeps warnings and errors,
// -v adds debug output.
func newLogger(w io.Writer, f commonFlags) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case f.quiet:
		level = zerolog.WarnLevel
	case f.verbose:
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    color.NoColor,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
