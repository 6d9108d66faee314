package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogOutputsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelInfo, &buf)

	log.Info("scrape finished", Fields{"cards": 5})

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("expected level INFO, got %q", entry.Level)
	}
	if entry.Message != "scrape finished" {
		t.Errorf("expected message 'scrape finished', got %q", entry.Message)
	}
	if entry.Timestamp == "" {
		t.Error("expected a timestamp")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelWarn, &buf)

	log.Debug("debug message", nil)
	log.Info("info message", nil)
	if buf.Len() != 0 {
		t.Errorf("expected messages below WARN to be discarded, got %q", buf.String())
	}

	log.Warn("warn message", nil)
	if buf.Len() == 0 {
		t.Error("expected WARN message to be written")
	}
}

func TestErrorIncludesErrorField(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelError, &buf)

	log.Error("render failed", Fields{"url": "https://example.com"}, errors.New("boom"))

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry.Error != "boom" {
		t.Errorf("expected error field 'boom', got %q", entry.Error)
	}
}

func TestOneLinePerEntry(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelInfo, &buf)

	log.Info("first", nil)
	log.Info("second", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 log lines, got %d", len(lines))
	}
}
