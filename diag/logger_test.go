package diag

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/trickstertwo/xclock"
)

// recorder is a Callback that keeps every line it receives.
type recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *recorder) sink(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, msg)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

var frozenAt = time.Date(2025, 1, 1, 13, 4, 5, 0, time.UTC)

func newTestLogger(t *testing.T, rec *recorder, min Level) *Logger {
	t.Helper()
	l, err := NewBuilder().
		WithCallback(rec.sink).
		WithMinLevel(min).
		WithClock(xclock.NewFrozen(frozenAt)).
		Build()
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	return l
}

func TestEventLineFormat(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	l := newTestLogger(t, rec, LevelDebug)

	l.Info().Str("column", "split threshold").Int("size", 42).Bool("foreign", true).Dur("took", time.Millisecond).Msg("column adopted")

	lines := rec.all()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	want := `[13:04:05] INFO column adopted column="split threshold" size=42 foreign=true took=1ms`
	if lines[0] != want {
		t.Fatalf("line mismatch:\n got %q\nwant %q", lines[0], want)
	}
}

func TestMinLevelFilter(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	l := newTestLogger(t, rec, LevelWarn)

	l.Info().Msg("not emitted")
	l.Debugf("nor this %d", 1)
	l.Warnf("kept %d", 2)

	lines := rec.all()
	if len(lines) != 1 || !strings.HasSuffix(lines[0], "WARN kept 2") {
		t.Fatalf("lines = %q", lines)
	}
	if got := l.Stats().Emitted; got != 1 {
		t.Fatalf("emitted = %d, want 1", got)
	}
}

func TestWithPrependsBoundFields(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	l := newTestLogger(t, rec, LevelInfo)
	child := l.With(Str("model", "m1"), Int64("trees", 3))
	child.Error().Err(errors.New("bad node")).Msg("load failed")

	lines := rec.all()
	want := `[13:04:05] ERROR load failed model=m1 trees=3 error="bad node"`
	if len(lines) != 1 || lines[0] != want {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	if l.Stats().Emitted != 1 {
		t.Fatal("child should share the parent's counters")
	}
}

func TestCallerPrefix(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	l, err := NewBuilder().
		WithCallback(rec.sink).
		WithClock(xclock.NewFrozen(frozenAt)).
		WithCaller(true).
		Build()
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}

	l.Info().Msg("via event")
	l.Infof("via %s", "printf")

	lines := rec.all()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.Contains(line, "INFO logger_test.go:") {
			t.Fatalf("missing call site in %q", line)
		}
	}
}

func TestFatalEmitsOnceThenPanics(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	l := newTestLogger(t, rec, LevelError)

	defer func() {
		r := recover()
		fe, ok := r.(*FatalError)
		if !ok {
			t.Fatalf("recovered %v (%T), want *FatalError", r, r)
		}
		lines := rec.all()
		if len(lines) != 1 || lines[0] != fe.Msg {
			t.Fatalf("lines = %q, panic msg %q", lines, fe.Msg)
		}
		if fe.Msg != "[13:04:05] FATAL cannot grow column n=7" {
			t.Fatalf("fatal text %q", fe.Msg)
		}
		if s := l.Stats(); s.Emitted != 1 || s.Fatal != 1 {
			t.Fatalf("stats = %+v", s)
		}
	}()
	l.Fatal().Int("n", 7).Msg("cannot grow column")
	t.Fatal("Fatal returned")
}

func TestBuildRejectsInvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := NewBuilder().WithMinLevel(LevelFatal + 1).Build(); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("err = %v, want ErrInvalidLevel", err)
	}
}

func TestFieldValues(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	l := newTestLogger(t, rec, LevelTrace)
	l.Trace().
		Uint64("u", 18446744073709551615).
		Float64("f", 0.25).
		Str("empty", "").
		Any("nil", nil).
		Any("dur", 2*time.Second).
		Any("struct", struct{}{}).
		Msgf("n=%d", 5)

	want := `[13:04:05] TRACE n=5 u=18446744073709551615 f=0.25 empty="" nil=null dur=2s struct=unknown`
	if got := rec.all(); len(got) != 1 || got[0] != want {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestLevelOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		line string
		want Level
		ok   bool
	}{
		{"[13:04:05] WARN x", LevelWarn, true},
		{"[13:04:05] FATAL", LevelFatal, true},
		{"[13:04:05] DEBUG main.go:3: y", LevelDebug, true},
		{"[13:04:05] warn lowercase is not a tag", LevelInfo, false},
		{"plain text", LevelInfo, false},
		{"[unterminated", LevelInfo, false},
	}
	for _, tc := range cases {
		got, ok := LevelOf(tc.line)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("LevelOf(%q) = %v,%v want %v,%v", tc.line, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Level{
		"trace": LevelTrace, "DEBUG": LevelDebug, "": LevelInfo,
		"Warning": LevelWarn, "error": LevelError, " fatal ": LevelFatal,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("err = %v, want ErrInvalidLevel", err)
	}
}
