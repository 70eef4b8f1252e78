package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestZerologLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("test-component", &buf)
	log.Infof("hello %s", "world")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if entry["component"] != "test-component" {
		t.Fatalf("component = %v", entry["component"])
	}
	if entry["message"] != "hello world" {
		t.Fatalf("message = %v", entry["message"])
	}
}

func TestZerologLogger_StructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("test", &buf)
	log.Debugw("load updated", map[string]any{"workshop_id": "ws-a", "load": 0.4})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if entry["workshop_id"] != "ws-a" {
		t.Fatalf("workshop_id = %v", entry["workshop_id"])
	}
}
