package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewConsoleWritesComponentPrefix(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "minutes.log")
	logger, err := New(Options{Level: "info", Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	scoped := NewComponentLogger(logger, "processor")
	scoped.Info("transcript stored", String("transcript_id", "abc"), Int("items", 3))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO processor: transcript stored") {
		t.Fatalf("unexpected log line: %q", line)
	}
	if !strings.Contains(line, "transcript_id=abc") || !strings.Contains(line, "items=3") {
		t.Fatalf("expected attrs in log line: %q", line)
	}
}

func TestNewConsoleFiltersBelowLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "minutes.log")
	logger, err := New(Options{Level: "warn", Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("should be dropped")
	logger.Warn("should appear")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "should be dropped") {
		t.Fatalf("info record leaked past warn level: %q", string(data))
	}
	if !strings.Contains(string(data), "should appear") {
		t.Fatalf("warn record missing: %q", string(data))
	}
}

func TestNewJSONEmitsStructuredRecords(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "minutes.log")
	logger, err := New(Options{Level: "info", Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("extraction complete", Int("attempts", 2))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("parse json record: %v", err)
	}
	if record["msg"] != "extraction complete" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("unexpected level: %v", record["level"])
	}
	if record["attempts"] != float64(2) {
		t.Fatalf("unexpected attempts: %v", record["attempts"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestErrorAttrNil(t *testing.T) {
	attr := Error(nil)
	if attr.Value.String() != "<nil>" {
		t.Fatalf("expected <nil> placeholder, got %q", attr.Value.String())
	}
}
