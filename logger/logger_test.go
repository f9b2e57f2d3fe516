package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newJSONLogger(level string) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewWithWriter(&Config{Level: level, Format: FormatJSON}, "test-svc", buf), buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got none")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("failed to decode %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l, buf := newJSONLogger("invalid-level")
	l.Info("hello")
	if buf.Len() == 0 {
		t.Error("expected info to be logged when level falls back to info")
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newJSONLogger("warn")
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got %q", buf.String())
	}
	l.Warn("kept")
	if m := decodeLine(t, buf); m["message"] != "kept" {
		t.Errorf("expected message 'kept', got %v", m["message"])
	}
}

func TestFieldsAreWritten(t *testing.T) {
	l, buf := newJSONLogger("debug")
	l.Debug("attached", Fields("prefix", "REDIS", "pool", true))

	m := decodeLine(t, buf)
	if m["prefix"] != "REDIS" {
		t.Errorf("expected prefix=REDIS, got %v", m["prefix"])
	}
	if m["pool"] != true {
		t.Errorf("expected pool=true, got %v", m["pool"])
	}
	if m[FieldService] != "test-svc" {
		t.Errorf("expected service tag, got %v", m[FieldService])
	}
}

func TestWithComponent(t *testing.T) {
	l, buf := newJSONLogger("info")
	l.WithComponent("redis").Info("x")
	if m := decodeLine(t, buf); m[FieldComponent] != "redis" {
		t.Errorf("expected component=redis, got %v", m[FieldComponent])
	}
}

func TestWithContext(t *testing.T) {
	l, buf := newJSONLogger("info")
	ctx := ContextWithRequestID(context.Background(), "abc123")
	l.WithContext(ctx).Info("x")
	if m := decodeLine(t, buf); m[FieldRequestID] != "abc123" {
		t.Errorf("expected request_id=abc123, got %v", m[FieldRequestID])
	}
}

func TestWithContextNoValues(t *testing.T) {
	l := NewDefault("test")
	if got := l.WithContext(context.Background()); got != l {
		t.Error("expected same logger when context carries nothing")
	}
}

func TestWithError(t *testing.T) {
	l, buf := newJSONLogger("info")
	l.WithError(errors.New("boom")).Error("failed")
	if m := decodeLine(t, buf); m["error"] != "boom" {
		t.Errorf("expected error=boom, got %v", m["error"])
	}
}

func TestNop(t *testing.T) {
	Nop().Error("nothing happens")
}

func TestFieldHelpers(t *testing.T) {
	f := ErrorFields("attach", errors.New("bad url"))
	if f[FieldOperation] != "attach" || f[FieldError] != "bad url" {
		t.Errorf("unexpected error fields: %v", f)
	}
	d := DurationFields("ping", 1500*time.Millisecond)
	if d[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", d[FieldDuration])
	}
	odd := Fields("a", 1, "dangling")
	if len(odd) != 1 {
		t.Errorf("expected dangling key to be ignored, got %v", odd)
	}
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != FormatConsole || cfg.Output != "stdout" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	bad := Config{Level: "loud", Format: FormatJSON}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for invalid level")
	}
	bad = Config{Level: "info", Format: "xml"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestRegistryGet(t *testing.T) {
	l, _ := newJSONLogger("info")
	Register("named", l)
	if Get("named") != l {
		t.Error("expected registered logger")
	}
	if Get("unregistered") == nil {
		t.Error("expected fallback logger")
	}
}
