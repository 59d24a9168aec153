package diag

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Line layout: "[15:04:05] LEVEL file.go:12: message k=v k=v".
const stampLayout = "15:04:05"

// buffer is a pooled scratch space for one line.
type buffer struct{ b []byte }

var bufPool = sync.Pool{New: func() any { return &buffer{b: make([]byte, 0, 256)} }}

func getBuf() *buffer {
	buf := bufPool.Get().(*buffer)
	buf.b = buf.b[:0]
	return buf
}

func putBuf(buf *buffer) {
	if cap(buf.b) <= 64*1024 {
		bufPool.Put(buf)
	}
}

func formatLine(buf *buffer, at time.Time, level Level, src, msg string, base, fields []Field) {
	buf.b = append(buf.b, '[')
	buf.b = at.AppendFormat(buf.b, stampLayout)
	buf.b = append(buf.b, "] "...)
	buf.b = append(buf.b, level.String()...)
	buf.b = append(buf.b, ' ')
	if src != "" {
		buf.b = append(buf.b, src...)
		buf.b = append(buf.b, ": "...)
	}
	buf.b = append(buf.b, msg...)
	for i := range base {
		appendField(buf, &base[i])
	}
	for i := range fields {
		appendField(buf, &fields[i])
	}
}

func appendField(buf *buffer, f *Field) {
	buf.b = append(buf.b, ' ')
	buf.b = append(buf.b, f.K...)
	buf.b = append(buf.b, '=')
	switch f.Kind {
	case KindString:
		appendText(buf, f.Str)
	case KindInt64:
		buf.b = strconv.AppendInt(buf.b, f.Int64, 10)
	case KindUint64:
		buf.b = strconv.AppendUint(buf.b, f.Uint64, 10)
	case KindFloat64:
		appendFloat(buf, f.Float64)
	case KindBool:
		buf.b = strconv.AppendBool(buf.b, f.Bool)
	case KindDuration:
		buf.b = append(buf.b, f.Dur.String()...)
	case KindError:
		if f.Err == nil {
			buf.b = append(buf.b, "null"...)
		} else {
			buf.b = strconv.AppendQuote(buf.b, f.Err.Error())
		}
	case KindAny:
		appendAny(buf, f.Any)
	default:
		buf.b = append(buf.b, "null"...)
	}
}

func appendFloat(buf *buffer, v float64) {
	switch {
	case math.IsNaN(v):
		buf.b = append(buf.b, "NaN"...)
	case math.IsInf(v, 1):
		buf.b = append(buf.b, "+Inf"...)
	case math.IsInf(v, -1):
		buf.b = append(buf.b, "-Inf"...)
	default:
		buf.b = strconv.AppendFloat(buf.b, v, 'g', -1, 64)
	}
}

// appendText writes s bare unless it holds spaces, quotes, control bytes or
// invalid UTF-8, in which case it is quoted.
func appendText(buf *buffer, s string) {
	if s == "" || strings.ContainsAny(s, " \"=") || !utf8.ValidString(s) {
		buf.b = strconv.AppendQuote(buf.b, s)
		return
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7f {
			buf.b = strconv.AppendQuote(buf.b, s)
			return
		}
	}
	buf.b = append(buf.b, s...)
}

func appendAny(buf *buffer, v any) {
	switch vv := v.(type) {
	case nil:
		buf.b = append(buf.b, "null"...)
	case string:
		appendText(buf, vv)
	case bool:
		buf.b = strconv.AppendBool(buf.b, vv)
	case int:
		buf.b = strconv.AppendInt(buf.b, int64(vv), 10)
	case int32:
		buf.b = strconv.AppendInt(buf.b, int64(vv), 10)
	case int64:
		buf.b = strconv.AppendInt(buf.b, vv, 10)
	case uint:
		buf.b = strconv.AppendUint(buf.b, uint64(vv), 10)
	case uint32:
		buf.b = strconv.AppendUint(buf.b, uint64(vv), 10)
	case uint64:
		buf.b = strconv.AppendUint(buf.b, vv, 10)
	case float32:
		appendFloat(buf, float64(vv))
	case float64:
		appendFloat(buf, vv)
	case time.Duration:
		buf.b = append(buf.b, vv.String()...)
	case error:
		buf.b = strconv.AppendQuote(buf.b, vv.Error())
	default:
		buf.b = append(buf.b, "unknown"...)
	}
}

// LevelOf recovers the level tag of a line produced by a Logger. Sinks that
// forward into leveled backends use it; ok is false for foreign text.
func LevelOf(line string) (level Level, ok bool) {
	if !strings.HasPrefix(line, "[") {
		return LevelInfo, false
	}
	end := strings.Index(line, "] ")
	if end < 0 {
		return LevelInfo, false
	}
	rest := line[end+2:]
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		rest = rest[:i]
	}
	switch rest {
	case "TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL":
		l, err := ParseLevel(rest)
		return l, err == nil
	}
	return LevelInfo, false
}
