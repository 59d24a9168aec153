// Package slogadapter forwards diagnostic lines into a log/slog logger.
package slogadapter

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/xarray/diag"
)

// New returns a Callback that writes each line to l. diag levels share
// slog's numeric scale, so the level tag maps directly.
func New(l *slog.Logger) diag.Callback {
	if l == nil {
		l = slog.Default()
	}
	return func(msg string) {
		level, _ := diag.LevelOf(msg)
		l.LogAttrs(context.Background(), slog.Level(level), msg, slog.String("source", "diag"))
	}
}

// Register makes l the process-wide diagnostic sink.
func Register(l *slog.Logger) { diag.Register(New(l)) }

// UseJSON registers a slog JSON handler on w (default os.Stderr) filtering
// below min, and returns the slog logger.
func UseJSON(w io.Writer, min diag.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.Level(min)}))
	Register(l)
	return l
}

// UseText is UseJSON with slog's text handler.
func UseText(w io.Writer, min diag.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.Level(min)}))
	Register(l)
	return l
}
