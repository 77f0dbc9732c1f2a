package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	cblog "github.com/charmbracelet/log"

	"github.com/alexisbeaulieu97/prism/internal/ports"
)

func TestLoggerIncludesCorrelationIDAndLayer(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:     &buf,
		Level:      "debug",
		Formatter:  cblog.JSONFormatter,
		Layer:      "infrastructure",
		Component:  "persistence",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := ports.WithCorrelationID(context.Background(), "abc123")
	logger.Info(ctx, "loaded preferences", "path", "/tmp/prefs.json")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected log output, got empty string")
	}

	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("failed to parse log line %q: %v", line, err)
	}

	if payload["layer"] != "infrastructure" {
		t.Fatalf("expected layer to be infrastructure, got %v", payload["layer"])
	}
	if payload["component"] != "persistence" {
		t.Fatalf("expected component field, got %v", payload["component"])
	}
	if payload["correlation_id"] != "abc123" {
		t.Fatalf("expected correlation_id to be abc123, got %v", payload["correlation_id"])
	}
	if payload["path"] != "/tmp/prefs.json" {
		t.Fatalf("expected path to be recorded, got %v", payload["path"])
	}
	if payload["msg"] != "loaded preferences" {
		t.Fatalf("expected message to be recorded, got %v", payload["msg"])
	}
}

func TestLoggerWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:    &buf,
		Formatter: cblog.JSONFormatter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child := logger.With("component", "syncbus").(*Logger)
	child.Warn(context.Background(), "poll tick failed", "field", "accentColor")

	line := strings.TrimSpace(buf.String())
	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}

	if payload["component"] != "syncbus" {
		t.Fatalf("expected component=syncbus, got %v", payload["component"])
	}
	if payload["field"] != "accentColor" {
		t.Fatalf("expected field accentColor, got %v", payload["field"])
	}
	if payload["layer"] != "infrastructure" {
		t.Fatalf("expected default layer infrastructure, got %v", payload["layer"])
	}
}

func TestNoOpLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{
		Writer:    &buf,
		Formatter: cblog.JSONFormatter,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	noOp := NewNoOpLogger()
	noOp.Info(context.Background(), "hello world")

	if buf.Len() != 0 {
		t.Fatalf("expected no output from noop logger, got %s", buf.String())
	}

	// ensure With on noop doesn't panic and returns the same instance
	if noOp.With("key", "value") != noOp {
		t.Fatalf("expected With to return same no-op logger instance")
	}

	// Base logger still writes.
	logger.Info(context.Background(), "emitted")
	if buf.Len() == 0 {
		t.Fatal("expected base logger to write output")
	}
}

func TestBufferedLoggerStoresAndFlushes(t *testing.T) {
	buffer := NewEventBuffer(10)
	bufLogger := NewBufferedLogger(buffer)

	ctx := ports.WithCorrelationID(context.Background(), "buffered")
	bufLogger.Info(ctx, "config not found, using defaults", "component", "config")
	bufLogger.With("component", "cli").Error(ctx, "state dir unwritable", "attempt", 1)

	var output bytes.Buffer
	delegate, err := New(Options{Writer: &output, Formatter: cblog.JSONFormatter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buffer.Flush(delegate)

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}

	var first map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("failed to parse first log line: %v", err)
	}
	if first["msg"] != "config not found, using defaults" || first["component"] != "config" {
		t.Fatalf("unexpected first event payload: %+v", first)
	}

	var second map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("failed to parse second log line: %v", err)
	}
	if second["msg"] != "state dir unwritable" || second["component"] != "cli" {
		t.Fatalf("unexpected second event payload: %+v", second)
	}
	if second["correlation_id"] != "buffered" {
		t.Fatalf("expected correlation id to be preserved, got %v", second["correlation_id"])
	}
	if first["phase"] != "startup" || second["phase"] != "startup" {
		t.Fatalf("expected replayed records to be tagged phase=startup: %+v %+v", first, second)
	}
	if buffer.Len() != 0 {
		t.Fatalf("expected flush to empty the buffer, %d left", buffer.Len())
	}
}

func TestEventBufferReportsDroppedRecords(t *testing.T) {
	buffer := NewEventBuffer(2)
	bufLogger := NewBufferedLogger(buffer, "command", "get")
	for _, msg := range []string{"one", "two", "three"} {
		bufLogger.Info(context.Background(), msg)
	}

	var output bytes.Buffer
	delegate, err := New(Options{Writer: &output, Formatter: cblog.JSONFormatter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buffer.Flush(delegate)

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected a drop warning and 2 records, got %d: %s", len(lines), output.String())
	}

	var warning, last map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &warning); err != nil {
		t.Fatalf("failed to parse warning: %v", err)
	}
	if warning["msg"] != "startup log records dropped" || warning["dropped"] != float64(1) {
		t.Fatalf("unexpected warning payload: %+v", warning)
	}
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatalf("failed to parse last record: %v", err)
	}
	if last["msg"] != "three" || last["command"] != "get" {
		t.Fatalf("unexpected last record: %+v", last)
	}
}

func TestLoggerFormatOptionSelectsFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Writer: &buf, Format: "json", Component: "controller"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info(context.Background(), "hydrated", "fields", 9)

	payload := make(map[string]interface{})
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &payload); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if payload["component"] != "controller" {
		t.Fatalf("expected component=controller, got %v", payload["component"])
	}
}

func TestParseFormatRejectsUnknownName(t *testing.T) {
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
	formatter, err := ParseFormat("LOGFMT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if formatter != cblog.LogfmtFormatter {
		t.Fatalf("expected logfmt formatter, got %v", formatter)
	}
}
