// ABOUTME: Diagnostic console logger built on zap.
// ABOUTME: Provides level parsing, writer-backed loggers, and an in-memory console buffer.
package logging

import (
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel converts a string level to zapcore.Level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New returns a console-encoded logger writing to each of ws.
func New(level string, ws ...io.Writer) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.CallerKey = ""

	syncers := make([]zapcore.WriteSyncer, 0, len(ws))
	for _, w := range ws {
		syncers = append(syncers, zapcore.AddSync(w))
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.NewMultiWriteSyncer(syncers...),
		zap.NewAtomicLevelAt(ParseLevel(level)),
	)
	return zap.New(core)
}

// Console keeps the most recent log lines in memory for on-screen display.
type Console struct {
	mu    sync.Mutex
	max   int
	lines []string
}

// NewConsole returns a console retaining at most max lines.
func NewConsole(max int) *Console {
	if max <= 0 {
		max = 100
	}
	return &Console{max: max}
}

// Write implements io.Writer. Each call may carry several newline-terminated entries.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		c.lines = append(c.lines, line)
	}
	if over := len(c.lines) - c.max; over > 0 {
		c.lines = append([]string(nil), c.lines[over:]...)
	}
	return len(p), nil
}

// Lines returns a copy of the retained lines, oldest first.
func (c *Console) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

// Tail returns up to n most recent lines.
func (c *Console) Tail(n int) []string {
	lines := c.Lines()
	if n >= 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
