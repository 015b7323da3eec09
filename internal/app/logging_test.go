package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"bogus", LogLevelInfo},
		{"", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogLevelWarn, &buf)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("low-level messages not filtered:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("high-level messages missing:\n%s", out)
	}
}

func TestLoggerFormatsArgs(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogLevelInfo, &buf)
	l.Info("opened %s (%d tabs)", "a.md", 3)
	if !strings.Contains(buf.String(), "opened a.md (3 tabs)") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestLoggerComponentTag(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogLevelInfo, &buf).WithComponent("session")
	l.Info("hello")
	if !strings.Contains(buf.String(), "session: hello") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestNullLoggerDiscards(t *testing.T) {
	// Must not panic despite the nil writer.
	NullLogger.Error("dropped")
	NullLogger.WithComponent("x").Info("dropped")
}
