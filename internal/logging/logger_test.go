package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(level)
	return slog.New(newConsoleHandler(buf, lvl))
}

func TestConsoleHandlerPromotesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewComponentLogger(newTestLogger(&buf, slog.LevelInfo), "watcher")

	logger.Info("new scan record", String("id_number", "D1234"))

	line := buf.String()
	if !strings.Contains(line, " INFO watcher: new scan record") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "id_number=D1234") {
		t.Fatalf("missing attribute: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should not appear as key=value: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo)

	logger.Info("match complete", String("name", "Brandon Smith"), Error(errors.New("boom failure")))

	line := buf.String()
	if !strings.Contains(line, `name="Brandon Smith"`) {
		t.Fatalf("expected quoted value: %q", line)
	}
	if !strings.Contains(line, `error="boom failure"`) {
		t.Fatalf("expected quoted error: %q", line)
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelWarn)

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info record should have been filtered: %q", out)
	}
	if !strings.Contains(out, "WARN kept") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
