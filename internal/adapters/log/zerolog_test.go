package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/spcloud/urlship/internal/ports"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf))

	log := adapter.With(ports.String("run_id", "r-1"))
	log.Warn("entry exceeds payload budget",
		ports.String("key", "a.wav"),
		ports.Int("bytes", 2100),
		ports.Duration("duration", 2*time.Millisecond),
		ports.Err(errors.New("boom")),
	)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal log line %q: %v", buf.String(), err)
	}
	if line["level"] != "warn" {
		t.Errorf("level = %v, want warn", line["level"])
	}
	if line["run_id"] != "r-1" {
		t.Errorf("run_id = %v, want r-1", line["run_id"])
	}
	if line["key"] != "a.wav" {
		t.Errorf("key = %v, want a.wav", line["key"])
	}
	if line["bytes"] != float64(2100) {
		t.Errorf("bytes = %v, want 2100", line["bytes"])
	}
	if line["error"] != "boom" {
		t.Errorf("error = %v, want boom", line["error"])
	}
	if line["message"] != "entry exceeds payload budget" {
		t.Errorf("message = %v", line["message"])
	}
}

func TestZerologAdapter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))

	adapter.Debug("hidden", ports.String("k", "v"))
	if buf.Len() != 0 {
		t.Errorf("debug line written at info level: %q", buf.String())
	}
	adapter.Info("shown")
	if buf.Len() == 0 {
		t.Error("info line not written")
	}
}

func TestNewNoopLogger(t *testing.T) {
	log := NewNoopLogger().With(ports.String("run_id", "r"))
	log.Error("discarded", ports.Err(errors.New("boom")))
	if NewNoopLogger().Logger().GetLevel() != zerolog.Disabled {
		t.Error("noop logger is not disabled")
	}
}
