package colors

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestStructuredDebugIsGatedByDebugMode(t *testing.T) {
	_, stderr := captureOutput(t)
	EnableStructuredLogging()
	SetDebug(false)
	defer SetDebug(false)

	StructuredDebug("catalog", "load", "skipped", nil, "", nil)
	if stderr.Len() != 0 {
		t.Fatalf("expected no structured output when debug disabled, got %q", stderr.String())
	}

	SetDebug(true)
	StructuredWarn("catalog", "load", "failed", errors.New("connection refused"), "embedded", map[string]interface{}{"sellers": 12})

	var entry StructuredLogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(stderr.String())), &entry); err != nil {
		t.Fatalf("output is not one JSON line: %v (%q)", err, stderr.String())
	}
	if entry.Level != LevelWarn || entry.Component != "catalog" || entry.Status != "failed" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if entry.Error != "connection refused" || entry.ID != "embedded" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if entry.Fields["sellers"] != float64(12) {
		t.Errorf("fields not kept: %v", entry.Fields)
	}
}

func TestStructuredLoggingCanBeDisabled(t *testing.T) {
	_, stderr := captureOutput(t)
	SetDebug(true)
	defer SetDebug(false)
	DisableStructuredLogging()
	defer EnableStructuredLogging()

	StructuredInfo("tui", "start", "skipped", nil, "", nil)
	if stderr.Len() != 0 {
		t.Fatalf("expected no structured output when disabled, got %q", stderr.String())
	}
}

func TestStructuredLogKeepsEnvelopeOnBadFields(t *testing.T) {
	_, stderr := captureOutput(t)
	SetDebug(true)
	defer SetDebug(false)
	EnableStructuredLogging()

	StructuredError("httpapi", "encode", "failed", nil, "", map[string]interface{}{"ch": make(chan int)})

	if !strings.Contains(stderr.String(), `"component":"httpapi"`) || !strings.Contains(stderr.String(), "marshal_error") {
		t.Errorf("unexpected output %q", stderr.String())
	}
}
