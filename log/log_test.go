package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// newTestLogger returns a Logger that writes JSON into buf.
func newTestLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})
	return NewWithHandler(h)
}

// ---------------------------------------------------------------------------
// Logger.Module / Block / Round
// ---------------------------------------------------------------------------

func TestLogger_Module(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug)
	child := l.Module("sbox")

	child.Info("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}

	if entry["module"] != "sbox" {
		t.Fatalf("module = %v, want %q", entry["module"], "sbox")
	}
	if entry["msg"] != "hello" {
		t.Fatalf("msg = %v, want %q", entry["msg"], "hello")
	}
}

func TestLogger_BlockAndRoundChain(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug)
	child := l.Module("schedule").Block(7).Round(3)

	child.Info("round key applied")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}

	if entry["module"] != "schedule" {
		t.Fatalf("module = %v, want %q", entry["module"], "schedule")
	}
	if v, ok := entry["block"].(float64); !ok || v != 7 {
		t.Fatalf("block = %v, want 7", entry["block"])
	}
	if v, ok := entry["round"].(float64); !ok || v != 3 {
		t.Fatalf("round = %v, want 3", entry["round"])
	}
}

// ---------------------------------------------------------------------------
// Key-material redaction
// ---------------------------------------------------------------------------

func TestLogger_RedactsSensitiveFieldsViaWith(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug).With("key", []int{1, 2, 3}, "level", "SEC80")

	l.Info("initialized")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}
	if entry["key"] != redacted {
		t.Fatalf("key = %v, want redaction placeholder %q", entry["key"], redacted)
	}
	if entry["level"] != "SEC80" {
		t.Fatalf("level = %v, want unredacted %q", entry["level"], "SEC80")
	}
}

func TestLogger_RedactsSensitiveFieldsViaLogCall(t *testing.T) {
	for _, field := range []string{"key", "master_key", "round_key", "round_keys", "keystream"} {
		var buf bytes.Buffer
		l := newTestLogger(&buf, slog.LevelDebug)

		l.Info("emitting", field, "sensitive-value", "nonce_len", 4)

		var entry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("unmarshal for field %q: %v (raw: %s)", field, err, buf.String())
		}
		if entry[field] != redacted {
			t.Fatalf("field %q = %v, want redaction placeholder %q", field, entry[field], redacted)
		}
		if v, ok := entry["nonce_len"].(float64); !ok || v != 4 {
			t.Fatalf("nonce_len = %v, want 4 (unredacted, not a sensitive field)", entry["nonce_len"])
		}
	}
}

func TestLogger_OddArgsPassThroughUnredacted(t *testing.T) {
	// sanitize must not panic or drop data when args has no trailing value.
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug)

	l.Info("dangling key", "truncation", 12, "key")

	if buf.Len() == 0 {
		t.Fatal("expected a log line, got none")
	}
}

// ---------------------------------------------------------------------------
// Logger levels
// ---------------------------------------------------------------------------

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		level  slog.Level
		logFn  func(l *Logger)
		expect bool // whether message should appear
	}{
		{slog.LevelInfo, func(l *Logger) { l.Debug("nope") }, false},
		{slog.LevelInfo, func(l *Logger) { l.Info("yes") }, true},
		{slog.LevelInfo, func(l *Logger) { l.Warn("yes") }, true},
		{slog.LevelInfo, func(l *Logger) { l.Error("yes") }, true},
		{slog.LevelWarn, func(l *Logger) { l.Info("nope") }, false},
		{slog.LevelWarn, func(l *Logger) { l.Warn("yes") }, true},
		{slog.LevelDebug, func(l *Logger) { l.Debug("yes") }, true},
	}

	for i, tt := range tests {
		var buf bytes.Buffer
		l := newTestLogger(&buf, tt.level)
		tt.logFn(l)

		got := buf.Len() > 0
		if got != tt.expect {
			t.Errorf("test %d: output=%v, want %v (level=%v, buf=%s)",
				i, got, tt.expect, tt.level, buf.String())
		}
	}
}

// ---------------------------------------------------------------------------
// Structured key-value args
// ---------------------------------------------------------------------------

func TestLogger_KeyValueArgs(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelInfo)

	l.Info("keystream block generated", "index", 100, "truncation", 24)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// slog renders numbers as float64 in JSON.
	if v, ok := entry["index"].(float64); !ok || v != 100 {
		t.Fatalf("index = %v, want 100", entry["index"])
	}
	if v, ok := entry["truncation"].(float64); !ok || v != 24 {
		t.Fatalf("truncation = %v, want 24", entry["truncation"])
	}
}

// ---------------------------------------------------------------------------
// Default logger
// ---------------------------------------------------------------------------

func TestDefaultLogger(t *testing.T) {
	// The package init() sets a default logger; verify it is not nil and
	// does not panic.
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}

	// Replace the default with a test logger and verify the package-level
	// functions use it.
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelInfo)
	SetDefault(l)
	defer SetDefault(New(slog.LevelInfo)) // restore

	Info("test info", "k", "v")

	if !strings.Contains(buf.String(), "test info") {
		t.Fatalf("output missing 'test info': %s", buf.String())
	}

	// SetDefault(nil) should be a no-op.
	SetDefault(nil)
	if Default() != l {
		t.Fatal("SetDefault(nil) replaced the logger")
	}
}

// ---------------------------------------------------------------------------
// Package-level functions
// ---------------------------------------------------------------------------

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug)
	SetDefault(l)
	defer SetDefault(New(slog.LevelInfo))

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")

	out := buf.String()
	for _, msg := range []string{"d", "i", "w", "e"} {
		if !strings.Contains(out, msg) {
			t.Errorf("missing message %q in output", msg)
		}
	}
}
