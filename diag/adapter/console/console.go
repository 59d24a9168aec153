// Package console is the default diagnostic sink: one line per message on a
// writer, usually standard error, with the timestamp dimmed and the level
// tag coloured when the destination is a terminal.
//
// It does not import diag so that diag can use it as its default.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode selects when ANSI colours are written.
type ColorMode uint8

const (
	Auto ColorMode = iota // colour only when writing to a terminal
	Always
	Never
)

// ParseColorMode accepts "auto", "always" and "never"; empty means Auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return Auto, nil
	case "always":
		return Always, nil
	case "never":
		return Never, nil
	}
	return Auto, fmt.Errorf("console: unknown color mode %q", s)
}

var (
	stampColor = forced(color.Faint)
	levelColor = map[string]*color.Color{
		"TRACE": forced(color.FgHiBlack),
		"DEBUG": forced(color.FgCyan),
		"INFO":  forced(color.FgGreen),
		"WARN":  forced(color.FgYellow),
		"ERROR": forced(color.FgRed),
		"FATAL": forced(color.FgHiRed, color.Bold),
	}
)

// forced builds a colour that ignores color.NoColor: the sink decides itself.
func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

type sink struct {
	mu      sync.Mutex
	w       io.Writer
	colored bool
}

// New returns a sink writing each message plus a newline to w. With Auto,
// colours are used only when w is a terminal *os.File.
func New(w io.Writer, mode ColorMode) func(string) {
	if w == nil {
		w = os.Stderr
	}
	s := &sink{w: w}
	switch mode {
	case Always:
		s.colored = true
	case Auto:
		if f, ok := w.(*os.File); ok {
			s.colored = isTerminal(f)
		}
	}
	return s.write
}

// Stderr returns the sink used by diag before anything else is registered.
func Stderr() func(string) { return std(os.Stderr, color.Error, Auto) }

// Stdout writes to standard output instead.
func Stdout() func(string) { return std(os.Stdout, color.Output, Auto) }

// Std builds a standard-stream sink with an explicit colour mode. On Windows
// coloured output goes through a colorable writer.
func Std(f *os.File, mode ColorMode) func(string) {
	switch f {
	case os.Stdout:
		return std(f, color.Output, mode)
	case os.Stderr:
		return std(f, color.Error, mode)
	}
	return New(f, mode)
}

func std(f *os.File, colorable io.Writer, mode ColorMode) func(string) {
	on := mode == Always || (mode == Auto && isTerminal(f))
	if !on {
		return New(f, Never)
	}
	return New(colorable, Always)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (s *sink) write(msg string) {
	line := msg
	if s.colored {
		line = colorize(msg)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.w, line)
	_, _ = io.WriteString(s.w, "\n")
}

// colorize decorates "[stamp] LEVEL rest"; other text is returned as is.
func colorize(msg string) string {
	if !strings.HasPrefix(msg, "[") {
		return msg
	}
	end := strings.Index(msg, "] ")
	if end < 0 {
		return msg
	}
	stamp, rest := msg[:end+1], msg[end+2:]
	tag, tail, _ := strings.Cut(rest, " ")
	c, ok := levelColor[tag]
	if !ok {
		return stampColor.Sprint(stamp) + " " + rest
	}
	out := stampColor.Sprint(stamp) + " " + c.Sprint(tag)
	if tail != "" {
		out += " " + tail
	}
	return out
}
