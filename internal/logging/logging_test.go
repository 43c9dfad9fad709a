package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "json", "info")
	log.Info().Str("case_id", "HP1").Msg("classified")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["case_id"] != "HP1" || entry["message"] != "classified" {
		t.Errorf("entry = %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing timestamp")
	}
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "text", "info")
	log.Warn().Str("field", "vek").Msg("expected a non-negative integer")

	out := buf.String()
	if strings.HasPrefix(out, "{") {
		t.Fatalf("text format produced JSON: %q", out)
	}
	for _, want := range []string{"WRN", "field=vek", "expected a non-negative integer"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "json", "warn")
	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buf.String())
	}
	log.Warn().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn not logged: %q", buf.String())
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "json", "")
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("output = %q", out)
	}
}
