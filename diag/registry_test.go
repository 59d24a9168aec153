package diag

import (
	"testing"

	"github.com/trickstertwo/xclock"
)

// These tests swap process-wide state and must not run in parallel.

// withDefault swaps the built-in sink for the duration of a test.
func withDefault(t *testing.T, cb Callback) {
	t.Helper()
	old := defaultCallback
	defaultCallback = cb
	t.Cleanup(func() {
		defaultCallback = old
		Register(nil)
		SetGlobal(nil)
	})
}

func TestActiveDefaultsUntilRegister(t *testing.T) {
	def := &recorder{}
	withDefault(t, def.sink)

	Active()("probe")
	Emit("hello")
	if got := def.all(); len(got) != 2 || got[0] != "probe" || got[1] != "hello" {
		t.Fatalf("default sink saw %q", got)
	}
}

func TestRegisteredSinkGetsEachLineOnce(t *testing.T) {
	def := &recorder{}
	withDefault(t, def.sink)

	host := &recorder{}
	Register(host.sink)

	l, err := NewBuilder().WithClock(xclock.NewFrozen(frozenAt)).Build()
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	SetGlobal(l)

	Warn().Int("cap", 8).Msg("grow")
	Infof("loaded %d trees", 12)

	got := host.all()
	want := []string{
		"[13:04:05] WARN grow cap=8",
		"[13:04:05] INFO loaded 12 trees",
	}
	if len(got) != len(want) {
		t.Fatalf("host saw %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if n := len(def.all()); n != 0 {
		t.Fatalf("default sink saw %d lines after Register", n)
	}
}

func TestReRegisterReplaces(t *testing.T) {
	def := &recorder{}
	withDefault(t, def.sink)

	first, second := &recorder{}, &recorder{}
	Register(first.sink)
	prev := Replace(second.sink)

	Emit("x")
	if len(first.all()) != 0 || len(second.all()) != 1 {
		t.Fatalf("first=%d second=%d", len(first.all()), len(second.all()))
	}
	prev("back")
	if got := first.all(); len(got) != 1 || got[0] != "back" {
		t.Fatalf("Replace should return the previous sink, first saw %q", got)
	}

	Register(nil)
	Emit("y")
	if got := def.all(); len(got) != 1 || got[0] != "y" {
		t.Fatalf("default after reset saw %q", got)
	}
}

func TestGlobalLoggerIsLazy(t *testing.T) {
	def := &recorder{}
	withDefault(t, def.sink)
	SetGlobal(nil)

	l := L()
	if l == nil || L() != l {
		t.Fatal("L() should build one default logger and keep it")
	}
	if l.Enabled(LevelDebug) || !l.Enabled(LevelInfo) {
		t.Fatal("default logger should emit from Info")
	}
	Debug().Msg("dropped")
	Error().Msg("kept")
	if got := def.all(); len(got) != 1 {
		t.Fatalf("default sink saw %q", got)
	}
}
