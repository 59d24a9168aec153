package zapadapter

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is an explicit, code-first zap setup for diagnostics.
type Config struct {
	Writer  io.Writer // default: os.Stderr
	Console bool      // console encoder instead of JSON
	Level   zapcore.Level
}

// NewLogger builds the zap logger described by cfg. zap's own timestamp is
// disabled because every diagnostic line carries one.
func NewLogger(cfg Config) *zap.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	encCfg := zapcore.EncoderConfig{
		LevelKey:    "level",
		MessageKey:  "message",
		LineEnding:  zapcore.DefaultLineEnding,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(cfg.Level))
	return zap.New(core)
}

// Use builds a zap logger from cfg, registers it as the diagnostic sink and
// returns it so the host can Sync it on shutdown.
func Use(cfg Config) *zap.Logger {
	l := NewLogger(cfg)
	Register(l)
	return l
}
