// Package log provides structured logging for the QPSC cipher core. It
// wraps Go's log/slog with a per-subsystem child-logger convenience so a
// subsystem (currently the cipher engine in the root package) can tag its
// own log lines without pulling in a heavier logging dependency.
//
// Nothing in this package ever logs key material or keystream output: field
// values under a sensitive key name (key, master_key, round_key, keystream,
// ...) are redacted before they reach the handler, not merely by convention
// at call sites.
package log

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with QPSC-specific context and a key-material
// redaction guard.
type Logger struct {
	inner *slog.Logger
}

// defaultLogger is the process-wide logger used by the package-level
// convenience functions.
var defaultLogger *Logger

func init() {
	defaultLogger = New(slog.LevelInfo)
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level slog.Level) *Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{inner: slog.New(h)}
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler. This
// is useful for testing or for writing to a custom destination.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// Module returns a child logger with an additional "module" attribute. This
// is the primary way a subsystem obtains its own contextual logger; the
// cipher engine uses Module("qpsc").
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// Block returns a child logger tagged with the keystream block index j under
// generation. generateBlockLocked and its callers use this instead of
// spelling out "block" by hand at every log call, so the field name and
// type stay consistent across the cipher engine.
func (l *Logger) Block(j uint64) *Logger {
	return &Logger{inner: l.inner.With("block", j)}
}

// Round returns a child logger tagged with the current round index r,
// for the per-round trace lines emitted from inside the S-box/linear/
// add-round-key loop.
func (l *Logger) Round(r int) *Logger {
	return &Logger{inner: l.inner.With("round", r)}
}

// With returns a child logger with additional key-value context. Any value
// paired with a sensitive key (see sensitiveFields) is redacted before it
// is attached, so a call site that accidentally passes a key element or a
// keystream slice cannot leak it into logs.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(sanitize(args)...)}
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, sanitize(args)...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, sanitize(args)...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, sanitize(args)...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, sanitize(args)...) }

// redacted is substituted for the value of any sensitive field.
const redacted = "[redacted]"

// sensitiveFields names the argument keys this package refuses to log the
// value of: master key elements, derived round keys, and raw keystream
// output. Shapes, counts, indices, and parameters (p, m, level, nonce
// length) are not sensitive and pass through unchanged.
var sensitiveFields = map[string]struct{}{
	"key":        {},
	"master_key": {},
	"round_key":  {},
	"round_keys": {},
	"keystream":  {},
}

// sanitize walks args the way slog reads them (a string key followed by its
// value, or a single slog.Attr) and replaces the value of any sensitive key
// with redacted. Attributes nested inside a slog group are not inspected.
// args is copied rather than mutated in place so the caller's slice is left
// untouched.
func sanitize(args []any) []any {
	if len(args) == 0 {
		return args
	}
	out := append([]any(nil), args...)
	for i := 0; i < len(out); i++ {
		switch a := out[i].(type) {
		case slog.Attr:
			if _, sensitive := sensitiveFields[a.Key]; sensitive {
				out[i] = slog.String(a.Key, redacted)
			}
		case string:
			if i+1 < len(out) {
				if _, sensitive := sensitiveFields[a]; sensitive {
					out[i+1] = redacted
				}
				i++
			}
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Package-level convenience functions -- delegate to defaultLogger.
// ---------------------------------------------------------------------------

// Debug logs at LevelDebug using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at LevelInfo using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at LevelWarn using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at LevelError using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
