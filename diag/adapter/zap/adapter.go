// Package zapadapter forwards diagnostic lines into a go.uber.org/zap logger.
package zapadapter

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xarray/diag"
)

// sourceKey tags forwarded entries; the line already holds its own
// timestamp, level tag and fields.
const sourceKey = "source"

// New returns a Callback that writes each line to l at the level recovered
// from the line's tag. Lines without a tag are logged at Info.
func New(l *zap.Logger) diag.Callback {
	if l == nil {
		l = zap.NewNop()
	}
	return func(msg string) {
		level, _ := diag.LevelOf(msg)
		// Check avoids building fields for disabled levels.
		if ce := l.Check(toZapLevel(level), msg); ce != nil {
			ce.Write(zap.String(sourceKey, "diag"))
		}
	}
}

// Register makes l the process-wide diagnostic sink.
func Register(l *zap.Logger) { diag.Register(New(l)) }

func toZapLevel(l diag.Level) zapcore.Level {
	switch {
	case l <= diag.LevelDebug:
		return zapcore.DebugLevel // zap has no trace; map to debug
	case l <= diag.LevelInfo:
		return zapcore.InfoLevel
	case l <= diag.LevelWarn:
		return zapcore.WarnLevel
	default:
		// Fatal lines are logged as errors: the diag Logger already unwinds,
		// and zap's Fatal would exit the process.
		return zapcore.ErrorLevel
	}
}
