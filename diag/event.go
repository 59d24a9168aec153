package diag

import (
	"fmt"
	"sync"
	"time"
)

// Event builds a single diagnostic line.
// Usage: l.Warn().Str("column", "threshold").Int("size", n).Msg("adopted foreign region")
type Event struct {
	l      *Logger
	level  Level
	fields []Field
}

var eventPool = sync.Pool{
	New: func() any { return &Event{fields: make([]Field, 0, 8)} },
}

func getEvent(l *Logger, level Level) *Event {
	ev := eventPool.Get().(*Event)
	ev.l = l
	ev.level = level
	ev.fields = ev.fields[:0]
	return ev
}

func (e *Event) putBack() {
	if cap(e.fields) > 128 {
		e.fields = make([]Field, 0, 8)
	}
	e.l = nil
	eventPool.Put(e)
}

func (e *Event) Str(k, v string) *Event {
	e.fields = append(e.fields, Str(k, v))
	return e
}

func (e *Event) Int(k string, v int) *Event { return e.Int64(k, int64(v)) }

func (e *Event) Int64(k string, v int64) *Event {
	e.fields = append(e.fields, Int64(k, v))
	return e
}

func (e *Event) Uint64(k string, v uint64) *Event {
	e.fields = append(e.fields, Uint64(k, v))
	return e
}

func (e *Event) Float64(k string, v float64) *Event {
	e.fields = append(e.fields, Float64(k, v))
	return e
}

func (e *Event) Bool(k string, v bool) *Event {
	e.fields = append(e.fields, Bool(k, v))
	return e
}

func (e *Event) Dur(k string, v time.Duration) *Event {
	e.fields = append(e.fields, Dur(k, v))
	return e
}

func (e *Event) Err(err error) *Event {
	if err == nil {
		return e
	}
	e.fields = append(e.fields, Err("error", err))
	return e
}

func (e *Event) Any(k string, v any) *Event {
	e.fields = append(e.fields, Any(k, v))
	return e
}

// Msg formats the line and hands it to the sink. At LevelFatal it then
// panics with *FatalError.
func (e *Event) Msg(msg string) {
	l, level, fields := e.l, e.level, e.fields
	// Return the event before a fatal emit unwinds the stack.
	defer e.putBack()
	l.emit(1, level, msg, fields)
}

// Msgf is Msg with fmt.Sprintf formatting.
func (e *Event) Msgf(format string, args ...any) {
	l, level, fields := e.l, e.level, e.fields
	defer e.putBack()
	l.emit(1, level, fmt.Sprintf(format, args...), fields)
}
