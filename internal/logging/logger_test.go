package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologAdapterFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewLogger(&buf, "calc")

	logger.Info("evaluated",
		String("op", "mul"),
		Int("bits", 128),
		Uint64("words", 4),
		Float64("ratio", 0.5),
		Bool("overflow", true),
		Duration("elapsed", 3*time.Millisecond),
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	checks := map[string]any{
		"component": "calc",
		"message":   "evaluated",
		"level":     "info",
		"op":        "mul",
		"bits":      float64(128),
		"words":     float64(4),
		"ratio":     0.5,
		"overflow":  true,
	}
	for k, want := range checks {
		if entry[k] != want {
			t.Errorf("field %s: expected %v, got %v", k, want, entry[k])
		}
	}
	if _, ok := entry["elapsed"]; !ok {
		t.Error("expected elapsed field")
	}
}

func TestZerologAdapterError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogger(&buf, "server").Error("request failed", errors.New("boom"), String("path", "/calculate"))

	out := buf.String()
	for _, want := range []string{`"level":"error"`, `"error":"boom"`, `"path":"/calculate"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestWithCarriesFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogger(&buf, "batch").With(String("file", "ops.txt")).Info("line", Int("n", 2))
	if !strings.Contains(buf.String(), `"file":"ops.txt"`) {
		t.Errorf("expected inherited field, got %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConsoleLoggerFiltersLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, "repl", zerolog.InfoLevel)
	logger.Debug("hidden")
	logger.Info("shown", String("op", "add"))
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be filtered")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "op=add") {
		t.Errorf("unexpected console output %q", out)
	}
}

func TestNopDiscards(t *testing.T) {
	t.Parallel()
	logger := Nop()
	logger.Info("nothing")
	logger.Error("nothing", errors.New("x"))
	logger.Printf("%d", 1)
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	var logger Logger = NewStdLoggerAdapter(stdlog.New(&buf, "", 0))

	logger.Info("start", String("addr", ":8080"))
	logger.Error("stop", errors.New("closed"))
	logger.Debug("tick")
	logger.Println("plain", 1)

	want := "[INFO] start addr=:8080\n[ERROR] stop: closed\n[DEBUG] tick\nplain 1\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
