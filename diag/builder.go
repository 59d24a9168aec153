package diag

import "github.com/trickstertwo/xclock"

// Config for constructing a Logger.
type Config struct {
	Callback Callback     // optional; nil follows the process-wide registry
	MinLevel Level
	Clock    xclock.Clock // optional; defaults to xclock.Default() at emit time
	Caller   bool         // prefix lines with file:line of the call site
}

// Builder separates construction from representation.
type Builder struct {
	cfg Config
}

func NewBuilder() *Builder {
	return &Builder{cfg: Config{MinLevel: LevelInfo}}
}

// WithCallback pins the logger to cb instead of the registry's active sink.
func (b *Builder) WithCallback(cb Callback) *Builder {
	b.cfg.Callback = cb
	return b
}

func (b *Builder) WithMinLevel(l Level) *Builder {
	b.cfg.MinLevel = l
	return b
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

func (b *Builder) WithCaller(on bool) *Builder {
	b.cfg.Caller = on
	return b
}

// Build constructs the Logger.
func (b *Builder) Build() (*Logger, error) {
	if b.cfg.MinLevel < LevelTrace || b.cfg.MinLevel > LevelFatal {
		return nil, ErrInvalidLevel
	}
	return newLogger(b.cfg), nil
}
