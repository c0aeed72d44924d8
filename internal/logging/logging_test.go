package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetup_JSONOutputAndLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	logger := setup(&buf, "warn", false)

	logger.Info().Msg("hidden")
	logger.Warn().Str("path", "raven.jpg").Msg("image missing")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "warn" || entry["path"] != "raven.jpg" || entry["message"] != "image missing" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestSetup_UnknownLevelDefaultsToInfo(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	setup(&buf, "loud", false)

	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Fatalf("level = %s, want info", got)
	}
}
