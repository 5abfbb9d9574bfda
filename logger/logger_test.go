package logger

import (
	"testing"
	"time"
)

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected default format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected default output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp enabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"bad level", Config{Level: "verbose", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-service")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	l.Info("test message")
}

func TestWithModule(t *testing.T) {
	l := NewDefault("test").WithModule("user")
	if l == nil {
		t.Fatal("expected non-nil module logger")
	}
	l.Debug("module-scoped message")
}

func TestFields(t *testing.T) {
	m := Fields("module", "user", "count", 3)
	if m["module"] != "user" {
		t.Errorf("expected module=user, got %v", m["module"])
	}
	if m["count"] != 3 {
		t.Errorf("expected count=3, got %v", m["count"])
	}
}

func TestFieldsOddArgs(t *testing.T) {
	m := Fields("module", "user", "dangling")
	if len(m) != 1 {
		t.Errorf("expected dangling key to be dropped, got %v", m)
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("initialize", 1500*time.Millisecond)
	if m[FieldDuration] != int64(1500) {
		t.Errorf("expected duration_ms=1500, got %v", m[FieldDuration])
	}
}

func TestRegistryGetFallback(t *testing.T) {
	l := Get("never-registered")
	if l == nil {
		t.Fatal("expected fallback module logger, got nil")
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	custom := NewDefault("custom")
	Register("custom-module", custom)
	if got := Get("custom-module"); got != custom {
		t.Error("expected registered logger instance")
	}
}
