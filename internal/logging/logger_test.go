package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestComponentField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "debug")
	log := l.Component("proxy")
	log.Info().Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if line["component"] != "proxy" {
		t.Fatalf("expected component proxy, got %v", line["component"])
	}
	if line["app"] != "friday" {
		t.Fatalf("expected app friday, got %v", line["app"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn").Component("hud")
	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Fatalf("expected info to be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected warn to be written, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"info":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
		"":      zerolog.InfoLevel,
		"loud":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "friday.log")
	l, err := New(Config{File: path, Level: "info"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log := l.Component("console")
	log.Info().Msg("ready")
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "ready") {
		t.Fatalf("expected log line in file, got %q", string(data))
	}
	if l.Path() != path {
		t.Fatalf("expected path %s, got %s", path, l.Path())
	}
}
