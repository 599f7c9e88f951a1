// pkg/logging/logger_test.go
package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf)

	logger.Info(context.Background(), "tick complete", "tick", 42)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "tick complete" {
		t.Errorf("msg = %v, expected tick complete", entry["msg"])
	}
	if entry["tick"] != float64(42) {
		t.Errorf("tick = %v, expected 42", entry["tick"])
	}
}

func TestLogger_CorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf)

	ctx := WithCorrelationID(context.Background(), "run-7")
	logger.Info(ctx, "wave spawned")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["correlation_id"] != "run-7" {
		t.Errorf("correlation_id = %v, expected run-7", entry["correlation_id"])
	}
}

func TestLogger_GeneratedCorrelationID(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "")
	if GetCorrelationID(ctx) == "" {
		t.Error("empty correlation ID not replaced with a generated one")
	}
}

func TestGetCorrelationID_Absent(t *testing.T) {
	if id := GetCorrelationID(context.Background()); id != "" {
		t.Errorf("GetCorrelationID on bare context = %q, expected empty", id)
	}
}

func TestLogger_ErrorFormatting(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf)

	logger.Error(context.Background(), "load failed", errors.New("bad file"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["error"] != "bad file" {
		t.Errorf("error = %v, expected bad file", entry["error"])
	}
}

func TestWrapError(t *testing.T) {
	base := errors.New("boom")

	wrapped := WrapError(base, "loading scenario %q", "default")
	if wrapped == nil {
		t.Fatal("WrapError returned nil for a non-nil error")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error lost its cause")
	}
	if wrapped.Error() != `loading scenario "default": boom` {
		t.Errorf("message = %q", wrapped.Error())
	}

	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) must stay nil")
	}
}
