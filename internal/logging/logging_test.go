// ABOUTME: Tests for the diagnostic console logger.
// ABOUTME: Covers level parsing, writer output, and console line retention.
package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewWritesToAllWriters(t *testing.T) {
	var a, b bytes.Buffer
	logger := New("info", &a, &b)

	logger.Error("load failed", zap.Error(errors.New("boom")))
	logger.Debug("hidden")

	for name, buf := range map[string]*bytes.Buffer{"a": &a, "b": &b} {
		out := buf.String()
		if !strings.Contains(out, "load failed") || !strings.Contains(out, "boom") {
			t.Errorf("writer %s missing entry: %q", name, out)
		}
		if strings.Contains(out, "hidden") {
			t.Errorf("writer %s should not contain debug output", name)
		}
	}
}

func TestConsoleRetainsTail(t *testing.T) {
	console := NewConsole(3)
	logger := New("debug", console)

	for _, msg := range []string{"one", "two", "three", "four"} {
		logger.Info(msg)
	}

	lines := console.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "two") || !strings.Contains(lines[2], "four") {
		t.Errorf("unexpected lines: %v", lines)
	}

	tail := console.Tail(1)
	if len(tail) != 1 || !strings.Contains(tail[0], "four") {
		t.Errorf("Tail(1) = %v", tail)
	}
}
