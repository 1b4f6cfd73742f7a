package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/bncalc/internal/testutil"
)

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "result.txt")
	res := evaluate(t, "mul", "0d6", "0d7")

	if err := WriteResultToFile(res, OutputConfig{OutputFile: path, Format: FormatDec}); err != nil {
		t.Fatalf("WriteResultToFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{"# Operation: mul", "# Layout: 128 bits", "# Overflow: false", "a = 6", "b = 7", "product = 42"} {
		if !strings.Contains(content, want) {
			t.Errorf("file missing %q:\n%s", want, content)
		}
	}
}

func TestWriteResultToFileDisabled(t *testing.T) {
	t.Parallel()
	if err := WriteResultToFile(evaluate(t, "add", "1", "1"), OutputConfig{}); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	res := evaluate(t, "sub", "0d10", "0d4")

	t.Run("Quiet", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "out.txt")
		if err := DisplayResultWithConfig(&buf, res, OutputConfig{Quiet: true, Format: FormatDec, OutputFile: path}); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "6\n" {
			t.Errorf("quiet output = %q", buf.String())
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected file to be written: %v", err)
		}
	})

	t.Run("Standard", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "out.txt")
		if err := DisplayResultWithConfig(&buf, res, OutputConfig{Format: FormatHex, OutputFile: path}); err != nil {
			t.Fatal(err)
		}
		got := testutil.StripAnsiCodes(buf.String())
		if !strings.Contains(got, "difference = 0x6") || !strings.Contains(got, "Result saved to: "+path) {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("UnwritablePath", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		if err := os.WriteFile(blocker, nil, 0o600); err != nil {
			t.Fatal(err)
		}
		err := DisplayResultWithConfig(&bytes.Buffer{}, res, OutputConfig{OutputFile: filepath.Join(blocker, "out.txt")})
		if err == nil {
			t.Error("expected an error when the parent is a file")
		}
	})
}
