// Package zerologadapter forwards diagnostic lines into a github.com/rs/zerolog logger.
package zerologadapter

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xarray/diag"
)

// New returns a Callback that writes each line to l at the level recovered
// from the line's tag.
func New(l zerolog.Logger) diag.Callback {
	return func(msg string) {
		level, _ := diag.LevelOf(msg)
		zl := mapLevel(level)
		// Drop early if below the logger's level (no Event allocation).
		if zl < l.GetLevel() {
			return
		}
		l.WithLevel(zl).Str("source", "diag").Msg(msg)
	}
}

// Register makes l the process-wide diagnostic sink.
func Register(l zerolog.Logger) { diag.Register(New(l)) }

// Use builds a JSON zerolog logger on w (default os.Stderr) at min, registers
// it and returns it.
func Use(w io.Writer, min diag.Level) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := zerolog.New(w).Level(mapLevel(min))
	Register(l)
	return l
}

// mapLevel converts diag levels to zerolog levels. Fatal maps to Error so
// zerolog never exits the process.
func mapLevel(l diag.Level) zerolog.Level {
	switch {
	case l <= diag.LevelTrace:
		return zerolog.TraceLevel
	case l <= diag.LevelDebug:
		return zerolog.DebugLevel
	case l <= diag.LevelInfo:
		return zerolog.InfoLevel
	case l <= diag.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
