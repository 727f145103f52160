package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestJSONLoggerCarriesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, DebugLevel)

	log.Info("Shell", "window created", map[string]interface{}{
		"width":  1200,
		"height": 800,
	})

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if line["component"] != "Shell" {
		t.Errorf("component = %v, want Shell", line["component"])
	}
	if line["message"] != "window created" {
		t.Errorf("message = %v, want %q", line["message"], "window created")
	}
	if line["width"] != float64(1200) {
		t.Errorf("width = %v, want 1200", line["width"])
	}
}

func TestErrorEventIncludesError(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, ErrorLevel)

	log.Error("Dispatcher", errors.New("handler exploded"), nil)

	if !strings.Contains(buf.String(), "handler exploded") {
		t.Fatalf("error text missing from output: %s", buf.String())
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, InfoLevel)

	log.Debug("Shell", "should be dropped", nil)

	if buf.Len() != 0 {
		t.Fatalf("debug event emitted at info level: %s", buf.String())
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("SHELL_LOG_LEVEL", "warn")
	if got := levelFromEnv(); got != WarnLevel {
		t.Errorf("levelFromEnv() = %v, want WarnLevel", got)
	}

	t.Setenv("SHELL_LOG_LEVEL", "")
	t.Setenv("SHELL_DEBUG", "1")
	if got := levelFromEnv(); got != DebugLevel {
		t.Errorf("levelFromEnv() = %v, want DebugLevel", got)
	}
}
