package diag

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"
)

// Logger formats diagnostics and delivers each line to exactly one Callback.
// A Logger is safe for concurrent use; whether the sink is depends on the sink.
type Logger struct {
	callback   Callback     // nil: resolve Active() per line
	clock      xclock.Clock // nil: xclock.Default() per line
	minLevel   Level
	caller     bool
	baseFields []Field
	st         *stats
}

func newLogger(cfg Config) *Logger {
	return &Logger{
		callback: cfg.Callback,
		clock:    cfg.Clock,
		minLevel: cfg.MinLevel,
		caller:   cfg.Caller,
		st:       &stats{},
	}
}

var global atomic.Pointer[Logger]

// SetGlobal replaces the process-wide Logger used by L and the package-level
// helpers. Passing nil restores the lazily built default.
func SetGlobal(l *Logger) { global.Store(l) }

// L returns the process-wide Logger. Until SetGlobal is called it is a
// LevelInfo logger that writes through the active Callback.
func L() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	global.CompareAndSwap(nil, newLogger(Config{MinLevel: LevelInfo}))
	return global.Load()
}

// Enabled reports whether lines at level would be emitted. Fatal is always
// emitted.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.minLevel || level >= LevelFatal
}

func (l *Logger) Trace() *Event { return getEvent(l, LevelTrace) }
func (l *Logger) Debug() *Event { return getEvent(l, LevelDebug) }
func (l *Logger) Info() *Event  { return getEvent(l, LevelInfo) }
func (l *Logger) Warn() *Event  { return getEvent(l, LevelWarn) }
func (l *Logger) Error() *Event { return getEvent(l, LevelError) }
func (l *Logger) Fatal() *Event { return getEvent(l, LevelFatal) }

func (l *Logger) Debugf(format string, args ...any) { l.logf(1, LevelDebug, format, args) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(1, LevelInfo, format, args) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(1, LevelWarn, format, args) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(1, LevelError, format, args) }

// Fatalf emits a Fatal line and panics with *FatalError.
func (l *Logger) Fatalf(format string, args ...any) { l.logf(1, LevelFatal, format, args) }

// With returns a child logger whose lines carry fs before the event fields.
// The child shares the parent's sink and counters.
func (l *Logger) With(fs ...Field) *Logger {
	child := *l
	child.baseFields = append(append([]Field(nil), l.baseFields...), fs...)
	return &child
}

// Stats returns a snapshot of the emission counters.
func (l *Logger) Stats() StatsSnapshot { return l.st.snapshot() }

func (l *Logger) logf(skip int, level Level, format string, args []any) {
	if !l.Enabled(level) {
		return
	}
	l.emit(skip+1, level, fmt.Sprintf(format, args...), nil)
}

// emit formats one line and calls the sink once. skip counts the frames
// between emit's caller and the user call site.
func (l *Logger) emit(skip int, level Level, msg string, fields []Field) {
	if !l.Enabled(level) {
		return
	}
	var at time.Time
	if l.clock != nil {
		at = l.clock.Now()
	} else {
		at = xclock.Now()
	}
	var src string
	if l.caller {
		if _, file, line, ok := runtime.Caller(skip + 1); ok {
			src = fmt.Sprintf("%s:%d", filepath.Base(file), line)
		}
	}

	buf := getBuf()
	formatLine(buf, at, level, src, msg, l.baseFields, fields)
	text := string(buf.b)
	putBuf(buf)

	cb := l.callback
	if cb == nil {
		cb = Active()
	}
	l.st.emitted.Add(1)
	cb(text)

	if level >= LevelFatal {
		l.st.fatal.Add(1)
		panic(&FatalError{Msg: text})
	}
}
