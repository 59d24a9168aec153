package diag

// Package-level helpers over L().
// Usage: diag.Warn().Int("size", n).Msg("column truncated")

func Trace() *Event { return L().Trace() }
func Debug() *Event { return L().Debug() }
func Info() *Event  { return L().Info() }
func Warn() *Event  { return L().Warn() }
func Error() *Event { return L().Error() }
func Fatal() *Event { return L().Fatal() }

func Debugf(format string, args ...any) { L().logf(1, LevelDebug, format, args) }
func Infof(format string, args ...any)  { L().logf(1, LevelInfo, format, args) }
func Warnf(format string, args ...any)  { L().logf(1, LevelWarn, format, args) }
func Errorf(format string, args ...any) { L().logf(1, LevelError, format, args) }
func Fatalf(format string, args ...any) { L().logf(1, LevelFatal, format, args) }
