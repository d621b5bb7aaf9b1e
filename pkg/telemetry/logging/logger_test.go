package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"edusignal-hq/veritas/pkg/config"
)

func TestNewLoggerDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Writer: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Info("hello", "key", "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("default format is not JSON: %v", err)
	}
	if entry["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", entry["msg"])
	}
	if entry["key"] != "value" {
		t.Errorf("key = %v, want value", entry["key"])
	}
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	if _, err := New(Config{Level: "chatty"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewLoggerInvalidFormat(t *testing.T) {
	if _, err := New(Config{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("should be filtered")
	if buf.Len() != 0 {
		t.Errorf("info record written at warn level: %q", buf.String())
	}

	logger.Warn("should appear")
	if buf.Len() == 0 {
		t.Error("warn record not written at warn level")
	}
}

func TestLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Format: "text", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("analysis completed", "confidence", 0.7)
	if !strings.Contains(buf.String(), "msg=\"analysis completed\"") {
		t.Errorf("text output missing message: %q", buf.String())
	}
}

func TestLoggerRedactsSubmittedText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{RedactPII: true, Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("analysis requested",
		"text", "My name is Jordan and my email is jordan@school.edu",
		"word_count", 10,
	)

	out := buf.String()
	if strings.Contains(out, "jordan@school.edu") {
		t.Errorf("submitted text leaked into log output: %q", out)
	}
	if strings.Contains(out, "My name is Jordan") {
		t.Errorf("text attribute not redacted: %q", out)
	}
	if !strings.Contains(out, "word_count") {
		t.Errorf("non-sensitive attribute dropped: %q", out)
	}
}

func TestLoggerRedactsDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{RedactPII: true, Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	derived := logger.With("component", "server")
	derived.Info("contact on file", "contact", "teacher@district.org")

	if strings.Contains(buf.String(), "teacher@district.org") {
		t.Errorf("email leaked through derived logger: %q", buf.String())
	}
}

func TestLoggerCustomRedactPattern(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{
		RedactPII: true,
		Writer:    &buf,
		RedactPatterns: []config.RedactPattern{
			{Name: "student_id", Pattern: `SID-\d{6}`, Replacement: "SID-******"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("lookup", "record", "student SID-123456 flagged")
	if strings.Contains(buf.String(), "SID-123456") {
		t.Errorf("custom pattern not applied: %q", buf.String())
	}
}

func TestContextFields(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")
	ctx = WithTraceID(ctx, "trace-99")

	fields := ContextFields(ctx)
	if len(fields) != 4 {
		t.Fatalf("expected 4 field elements, got %d", len(fields))
	}
	if fields[0] != "request_id" || fields[1] != "req-42" {
		t.Errorf("request_id not extracted: %v", fields)
	}
	if GetRequestID(context.Background()) != "" {
		t.Error("GetRequestID on empty context should return empty string")
	}
}
