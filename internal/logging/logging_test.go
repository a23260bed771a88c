package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_EmptyPathIsNop(t *testing.T) {
	logger, err := New("", true)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Error("Expected no-op logger for empty path")
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "chatwidget.log")

	logger, err := New(path, false)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	logger.Error("chat request failed", zap.String("kind", "network"))
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "chat request failed") {
		t.Errorf("log missing error entry: %s", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Errorf("debug entry written without verbose: %s", out)
	}
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatwidget.log")

	logger, err := New(path, true)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Error("Expected debug level when verbose")
	}
}
