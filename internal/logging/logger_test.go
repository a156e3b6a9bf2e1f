package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestOutputIsJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	fields := Fields{"wallet": "0xabc"}
	Error("battle failed", errors.New("boom"), fields)

	var line map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected one json line, got %q: %v", buf.String(), err)
	}
	if line["level"] != "error" || line["msg"] != "battle failed" || line["error"] != "boom" || line["wallet"] != "0xabc" {
		t.Fatalf("unexpected line: %v", line)
	}
	if _, ok := fields["error"]; ok {
		t.Fatalf("caller fields must not be modified")
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	old := minLevel
	minLevel = levelRank["info"]
	defer func() { minLevel = old }()

	Debug("hidden", nil)
	Info("shown", nil)
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
