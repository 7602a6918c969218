package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewProductionEmitsJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New("production", "info", buf)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	log.Info().Str("k", "v").Msg("hello")
	out := buf.String()
	if !strings.Contains(out, `"message":"hello"`) || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("output = %q, want JSON fields", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := New("production", "warn", buf)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")
	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info record not filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestNewDefaultsToInfo(t *testing.T) {
	log, err := New("production", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("level = %s, want info", log.GetLevel())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("production", "chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
