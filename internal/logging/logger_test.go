package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"grasp/internal/logging"
)

func TestConsoleLoggerWritesAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("connected", "host", "localhost", "attempt", 3)

	out := buf.String()
	if !strings.Contains(out, "INFO") {
		t.Fatalf("missing level label: %q", out)
	}
	if !strings.Contains(out, "connected") {
		t.Fatalf("missing message: %q", out)
	}
	if !strings.Contains(out, "host=localhost") || !strings.Contains(out, "attempt=3") {
		t.Fatalf("missing attrs: %q", out)
	}
}

func TestConsoleLoggerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info record should be suppressed: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestJSONLoggerEmitsValidRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("spawned", "pid", 42)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid JSON output %q: %v", buf.String(), err)
	}
	if record["msg"] != "spawned" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if record["pid"] != float64(42) {
		t.Fatalf("unexpected pid: %v", record["pid"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
