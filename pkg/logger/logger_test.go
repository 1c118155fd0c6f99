package logger

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/qwitter/cli/pkg/config"
)

func TestLoggerFunctions_NoNilPointers(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logger function panicked: %v", r)
		}
	}()

	logger = nil
	Debug("test debug", "key", "value")
	Info("test info", "key", "value")
	Warn("test warn", "key", "value")
	Error("test error", "key", "value")
}

func TestInitWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, log.InfoLevel)

	Debug("hidden message", "post_id", 7)
	Info("dispatch finished", "kind", "react", "post_id", 7)

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Error("debug output should be filtered at info level")
	}
	if !strings.Contains(out, "dispatch finished") || !strings.Contains(out, "post_id=7") {
		t.Errorf("expected info line with key/value pairs, got %q", out)
	}
}

func TestInitVerboseEnablesDebug(t *testing.T) {
	dir := t.TempDir()
	if err := config.Init(filepath.Join(dir, "config.toml")); err != nil {
		t.Fatalf("config init: %v", err)
	}

	Init(true)
	if GetLogger() == nil {
		t.Fatal("logger should be initialized")
	}
	if GetLogger().GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", GetLogger().GetLevel())
	}

	Init(false)
	if GetLogger().GetLevel() != log.InfoLevel {
		t.Errorf("expected info level from config, got %v", GetLogger().GetLevel())
	}
}
