package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestPrintInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	logger.PrintInfo("starting server", map[string]string{"addr": ":4000"})

	line := buf.String()
	if !strings.HasSuffix(line, "\n") {
		t.Fatal("log entry should end with a newline")
	}

	var entry struct {
		Level      string            `json:"level"`
		Message    string            `json:"message"`
		Properties map[string]string `json:"properties"`
		Trace      string            `json:"trace"`
	}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("entry is not valid JSON: %v", err)
	}
	if entry.Level != "INFO" || entry.Message != "starting server" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Properties["addr"] != ":4000" {
		t.Errorf("properties = %v", entry.Properties)
	}
	if entry.Trace != "" {
		t.Error("info entries should not carry a stack trace")
	}
}

func TestPrintErrorIncludesTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	logger.PrintError(errors.New("something broke"))

	var entry struct {
		Level   string `json:"level"`
		Message string `json:"message"`
		Trace   string `json:"trace"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("entry is not valid JSON: %v", err)
	}
	if entry.Level != "ERROR" || entry.Message != "something broke" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Trace == "" {
		t.Error("error entries should carry a stack trace")
	}
}

func TestMinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelError)

	logger.PrintInfo("noise", nil)
	if buf.Len() != 0 {
		t.Errorf("info below min level should be dropped, got %q", buf.String())
	}

	logger.PrintError(errors.New("kept"))
	if buf.Len() == 0 {
		t.Error("error at min level should be written")
	}
}

func TestWriterAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo)

	if _, err := logger.Write([]byte("http: proxy error")); err != nil {
		t.Fatalf("write: %v", err)
	}

	var entry struct {
		Level   string `json:"level"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("entry is not valid JSON: %v", err)
	}
	if entry.Level != "ERROR" {
		t.Errorf("level = %q, want ERROR", entry.Level)
	}
	if entry.Message != "http: proxy error" {
		t.Errorf("message = %q", entry.Message)
	}
}
