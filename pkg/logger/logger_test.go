package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewLogger(t *testing.T) {
	// Create a new logger without webhooks
	l := NewLogger("", "")
	if l == nil {
		t.Fatal("Expected logger to be created, got nil")
	}

	// Test that logger methods don't panic
	l.Info("Test info message", "TEST")
	l.Warn("Test warning message", "TEST")
	l.Debug("Test debug message", "TEST")
	l.System("Test system message", "TEST")
	l.Success("Test success message", "TEST")

	l.Close()
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelCritical, "CRITICAL"},
		{LevelError, "ERROR"},
		{LevelWarn, "WARN"},
		{LevelSuccess, "SUCCESS"},
		{LevelInfo, "INFO"},
		{LevelDebug, "DEBUG"},
		{LevelSystem, "SYSTEM"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLogLevelColor(t *testing.T) {
	levels := []LogLevel{
		LevelCritical,
		LevelError,
		LevelWarn,
		LevelSuccess,
		LevelInfo,
		LevelDebug,
		LevelSystem,
	}

	for _, level := range levels {
		t.Run(level.String(), func(t *testing.T) {
			if color := level.Color(); color == "" {
				t.Error("Expected color to be non-empty")
			}
		})
	}
}

func TestLogFilesCreated(t *testing.T) {
	l := NewLogger("", "")
	defer l.Close()

	l.Info("mensaje de prueba", "TEST")

	if _, err := os.Stat(filepath.Join(".", "logs", "combined.log")); err != nil {
		t.Errorf("combined.log no existe: %v", err)
	}
	if _, err := os.Stat(filepath.Join(".", "logs", "error.log")); err != nil {
		t.Errorf("error.log no existe: %v", err)
	}
}

func TestGetReturnsSameInstance(t *testing.T) {
	a := Get()
	b := Get()
	if a != b {
		t.Error("Get() debe devolver siempre la misma instancia")
	}
}
