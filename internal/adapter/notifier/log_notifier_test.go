package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogNotifier_Notify(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	if err := n.Notify(context.Background(), newAccount(t, "Id-1"), "debited 100 to Id-2"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected a json log line, got %q: %v", buf.String(), err)
	}
	if line["account_id"] != "Id-1" {
		t.Errorf("account_id = %v", line["account_id"])
	}
	if line["message"] != "debited 100 to Id-2" {
		t.Errorf("message = %v", line["message"])
	}
	if line["level"] != "info" {
		t.Errorf("level = %v", line["level"])
	}
}
