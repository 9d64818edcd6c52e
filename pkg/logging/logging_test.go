package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "logs", "client.log")

	logger, err := New(dest, "CLIENT", "debug")
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("moved", zap.String("move", "e2e4"))
	logger.Sync()

	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"DEBUG", "CLIENT", "moved", "e2e4", " | "} {
		if !strings.Contains(string(b), want) {
			t.Errorf("log %q does not contain %q", b, want)
		}
	}
}

func TestNewWithoutDestination(t *testing.T) {
	logger, err := New("", "CLIENT", "info")
	if err != nil {
		t.Fatal(err)
	}
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected a no-op logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
