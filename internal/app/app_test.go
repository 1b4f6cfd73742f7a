package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bncalc/internal/calibration"
	"github.com/agbru/bncalc/internal/config"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/logging"
	"github.com/agbru/bncalc/internal/service"
	"github.com/agbru/bncalc/internal/testutil"
	"github.com/agbru/bncalc/internal/verify"
	"github.com/agbru/bncalc/pkg/models"
)

// testConfig is a 64-bit layout of 16-bit words with the remaining
// settings at their defaults.
func testConfig(op, a, b string) config.AppConfig {
	return config.AppConfig{
		Op:          op,
		A:           a,
		B:           b,
		Bits:        64,
		WordBits:    16,
		Format:      "hex",
		Input:       "hex",
		Timeout:     time.Minute,
		MaxExponent: config.DefaultMaxExponent,
		Port:        config.DefaultPort,
		LogLevel:    "info",
		NoColor:     true,
	}
}

func newTestApp(cfg config.AppConfig) (*Application, *bytes.Buffer) {
	var errBuf bytes.Buffer
	return &Application{Config: cfg, ErrWriter: &errBuf, Logger: logging.Nop()}, &errBuf
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("Valid args create application", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		app, err := New([]string{"bncalc", "-op", "MUL", "-a", "6", "-b", "7", "-input", "dec"}, &errBuf)
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}
		if app.Config.Op != "mul" || app.Config.Input != "dec" {
			t.Errorf("config = %+v", app.Config)
		}
		if app.Logger == nil {
			t.Error("Logger should not be nil")
		}
	})

	t.Run("Invalid operation returns error", func(t *testing.T) {
		t.Parallel()
		var errBuf bytes.Buffer
		if _, err := New([]string{"bncalc", "-op", "frobnicate"}, &errBuf); err == nil {
			t.Fatal("expected an error")
		}
		if !strings.Contains(errBuf.String(), "unrecognized operation") {
			t.Errorf("stderr = %q", errBuf.String())
		}
	})

	t.Run("Help flag", func(t *testing.T) {
		t.Parallel()
		_, err := New([]string{"bncalc", "-h"}, &bytes.Buffer{})
		if !IsHelpError(err) {
			t.Errorf("IsHelpError(%v) = false", err)
		}
	})

	t.Run("Calibration profile selects the word width", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "profile.json")
		p := calibration.NewProfile()
		p.Bits = config.DefaultBits
		p.OptimalWordBits = 16
		if err := p.SaveProfile(path); err != nil {
			t.Fatal(err)
		}

		app, err := New([]string{"bncalc", "-calibration-profile", path}, &bytes.Buffer{})
		if err != nil {
			t.Fatal(err)
		}
		if app.Config.WordBits != 16 {
			t.Errorf("WordBits = %d, want 16", app.Config.WordBits)
		}
	})

	t.Run("Profile for another capacity is ignored", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "profile.json")
		p := calibration.NewProfile()
		p.Bits = 256
		p.OptimalWordBits = 8
		if err := p.SaveProfile(path); err != nil {
			t.Fatal(err)
		}

		app, err := New([]string{"bncalc", "-calibration-profile", path}, &bytes.Buffer{})
		if err != nil {
			t.Fatal(err)
		}
		if app.Config.WordBits != config.DefaultWordBits {
			t.Errorf("WordBits = %d, want %d", app.Config.WordBits, config.DefaultWordBits)
		}
	})
}

func TestApplicationRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      func() config.AppConfig
		ctx      func() (context.Context, context.CancelFunc)
		wantCode int
		want     []string
	}{
		{
			name:     "Add",
			cfg:      func() config.AppConfig { return testConfig("add", "0x10", "0x20") },
			wantCode: apperrors.ExitSuccess,
			want:     []string{"Execution Configuration", "64 bits (4 x 16-bit words)", "sum = 0x30"},
		},
		{
			name: "DecimalWithDetails",
			cfg: func() config.AppConfig {
				c := testConfig("divmod", "100", "7")
				c.Input, c.Format, c.Details = "dec", "dec", true
				return c
			},
			wantCode: apperrors.ExitSuccess,
			want:     []string{"--- divmod on", "quotient = 14", "remainder = 2", "Evaluation time"},
		},
		{
			name:     "UnaryIgnoresB",
			cfg:      func() config.AppConfig { return testConfig("isqrt", "0x10000", "junk") },
			wantCode: apperrors.ExitSuccess,
			want:     []string{"root = 0x100"},
		},
		{
			name:     "Cmp",
			cfg:      func() config.AppConfig { return testConfig("cmp", "1", "2") },
			wantCode: apperrors.ExitSuccess,
			want:     []string{"cmp = -1 (a < b)"},
		},
		{
			name:     "OverflowWraps",
			cfg:      func() config.AppConfig { return testConfig("decr", "0", "") },
			wantCode: apperrors.ExitSuccess,
			want:     []string{"result = 0xffffffffffffffff", "OVERFLOW"},
		},
		{
			name: "StrictOverflow",
			cfg: func() config.AppConfig {
				c := testConfig("pow", "0x10", "0d16")
				c.Strict = true
				return c
			},
			wantCode: apperrors.ExitErrorOverflow,
			want:     []string{"Status: Overflow"},
		},
		{
			name:     "DivisionByZero",
			cfg:      func() config.AppConfig { return testConfig("div", "1", "0") },
			wantCode: apperrors.ExitErrorConfig,
			want:     []string{"Status: Rejected", "division by zero"},
		},
		{
			name:     "OperandTooLong",
			cfg:      func() config.AppConfig { return testConfig("add", strings.Repeat("1", 500), "1") },
			wantCode: apperrors.ExitErrorConfig,
			want:     []string{"maximum length"},
		},
		{
			name: "Verified",
			cfg: func() config.AppConfig {
				c := testConfig("mul", "0xffff", "0xffff")
				c.Verify = true
				return c
			},
			wantCode: apperrors.ExitSuccess,
			want:     []string{"verification on", "product = 0xfffe0001"},
		},
		{
			name: "Canceled",
			cfg:  func() config.AppConfig { return testConfig("add", "1", "1") },
			ctx: func() (context.Context, context.CancelFunc) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx, cancel
			},
			wantCode: apperrors.ExitErrorCanceled,
			want:     []string{"Canceled"},
		},
		{
			name: "Timeout",
			cfg: func() config.AppConfig {
				c := testConfig("add", "1", "1")
				c.Timeout = time.Nanosecond
				return c
			},
			wantCode: apperrors.ExitErrorTimeout,
			want:     []string{"Timeout"},
		},
		{
			name: "UnsupportedWord",
			cfg: func() config.AppConfig {
				c := testConfig("add", "1", "1")
				c.WordBits = 12
				return c
			},
			wantCode: apperrors.ExitErrorConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx, cancel := context.Background(), context.CancelFunc(func() {})
			if tt.ctx != nil {
				ctx, cancel = tt.ctx()
			}
			defer cancel()

			app, _ := newTestApp(tt.cfg())
			var out bytes.Buffer
			if code := app.Run(ctx, &out); code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d. Output:\n%s", code, tt.wantCode, out.String())
			}
			output := testutil.StripAnsiCodes(out.String())
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q. Output:\n%s", want, output)
				}
			}
		})
	}
}

func TestRunQuiet(t *testing.T) {
	t.Parallel()
	cfg := testConfig("divmod", "0d100", "0d7")
	cfg.Quiet = true
	cfg.Format = "dec"
	app, _ := newTestApp(cfg)

	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if got := out.String(); got != "14 2\n" {
		t.Errorf("quiet output = %q, want %q", got, "14 2\n")
	}
}

func TestRunJSON(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig("shl", "1", "0d63")
		cfg.JSONOutput = true
		app, _ := newTestApp(cfg)

		var out bytes.Buffer
		if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d", code)
		}
		var resp models.CalculationResponse
		if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON %q: %v", out.String(), err)
		}
		if resp.Op != "shl" || len(resp.Outputs) != 1 || resp.Outputs[0].Hex != "8000000000000000" {
			t.Errorf("response = %+v", resp)
		}
		if resp.Overflow {
			t.Error("shifts never report overflow")
		}
	})

	t.Run("Error keeps the exit code", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig("incr", "0xffffffffffffffff", "")
		cfg.JSONOutput = true
		cfg.Strict = true
		app, _ := newTestApp(cfg)

		var out bytes.Buffer
		if code := app.Run(context.Background(), &out); code != apperrors.ExitErrorOverflow {
			t.Fatalf("exit code = %d", code)
		}
		var resp models.CalculationResponse
		if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON %q: %v", out.String(), err)
		}
		if !resp.Overflow || resp.Error == "" {
			t.Errorf("response = %+v", resp)
		}
	})
}

func TestRunOutputFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "result.txt")
	cfg := testConfig("mul", "6", "7")
	cfg.OutputFile = path
	app, _ := newTestApp(cfg)

	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(testutil.StripAnsiCodes(out.String()), "Result saved to: "+path) {
		t.Errorf("output = %q", out.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Operation: mul") || !strings.Contains(string(data), "0x2a") {
		t.Errorf("file content = %q", data)
	}

	cfg.OutputFile = filepath.Join(t.TempDir(), "missing", "result.txt")
	app, errBuf := newTestApp(cfg)
	if code := app.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
	if !strings.Contains(errBuf.String(), "Error saving result") {
		t.Errorf("stderr = %q", errBuf.String())
	}
}

func writeBatch(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunBatch(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig("", "", "")
		cfg.BatchFile = writeBatch(t, "# sums\nadd 1 2\nmul 3 4\ncmp 5 5\ndecr 0\n")
		app, _ := newTestApp(cfg)

		var out bytes.Buffer
		if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d. Output:\n%s", code, out.String())
		}
		output := testutil.StripAnsiCodes(out.String())
		for _, want := range []string{"Batch Summary", "0xc", "4 evaluated, 0 failed, 1 overflowed.", "Global Status: Success"} {
			if !strings.Contains(output, want) {
				t.Errorf("output should contain %q. Output:\n%s", want, output)
			}
		}
	})

	t.Run("JSON", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig("", "", "")
		cfg.JSONOutput = true
		cfg.BatchFile = writeBatch(t, "add 1 2\ndiv 1 0\n")
		app, _ := newTestApp(cfg)

		var out bytes.Buffer
		if code := app.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
			t.Fatalf("exit code = %d", code)
		}
		var resps []models.CalculationResponse
		if err := json.Unmarshal(out.Bytes(), &resps); err != nil {
			t.Fatalf("invalid JSON %q: %v", out.String(), err)
		}
		if len(resps) != 2 || resps[0].Outputs[0].Decimal != "3" || !strings.Contains(resps[1].Error, "division by zero") {
			t.Errorf("responses = %+v", resps)
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig("", "", "")
		cfg.BatchFile = filepath.Join(t.TempDir(), "absent.txt")
		app, errBuf := newTestApp(cfg)
		if code := app.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorConfig {
			t.Errorf("exit code = %d", code)
		}
		if !strings.Contains(errBuf.String(), "Error opening batch file") {
			t.Errorf("stderr = %q", errBuf.String())
		}
	})

	t.Run("Malformed line", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig("", "", "")
		cfg.BatchFile = writeBatch(t, "add 1 2\nadd 1\n")
		app, errBuf := newTestApp(cfg)
		if code := app.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorConfig {
			t.Errorf("exit code = %d", code)
		}
		if !strings.Contains(errBuf.String(), "line 2") {
			t.Errorf("stderr = %q", errBuf.String())
		}
	})
}

func TestRunREPL(t *testing.T) {
	t.Parallel()
	cfg := testConfig("", "", "")
	cfg.Interactive = true
	app, _ := newTestApp(cfg)
	app.In = strings.NewReader("mul 6 7\nformat dec\nadd 0d40 0d2\nexit\n")

	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	output := testutil.StripAnsiCodes(out.String())
	for _, want := range []string{"product = 0x2a", "sum = 42", "Goodbye!"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q. Output:\n%s", want, output)
		}
	}
}

func TestRunCalibration(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "calibration.json")
	cfg := testConfig("", "", "")
	cfg.Calibrate = true
	cfg.CalibrationProfile = path
	app, _ := newTestApp(cfg)

	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d. Output:\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "Recommendation for this machine") {
		t.Errorf("output = %s", out.String())
	}
	if !calibration.ProfileExists(path) {
		t.Error("profile was not saved")
	}
}

func TestRunCompletion(t *testing.T) {
	t.Parallel()
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		cfg := testConfig("", "", "")
		cfg.Completion = shell
		app, _ := newTestApp(cfg)

		var out bytes.Buffer
		if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
			t.Errorf("%s: exit code = %d", shell, code)
		}
		if !strings.Contains(out.String(), "divmod") {
			t.Errorf("%s: completion does not list operations", shell)
		}
	}

	cfg := testConfig("", "", "")
	cfg.Completion = "tcsh"
	app, errBuf := newTestApp(cfg)
	if code := app.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorConfig {
		t.Errorf("unsupported shell: exit code = %d", code)
	}
	if !strings.Contains(errBuf.String(), "Error generating completion") {
		t.Errorf("stderr = %q", errBuf.String())
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
		text string
	}{
		{"Nil", nil, apperrors.ExitSuccess, ""},
		{"Mismatch", fmt.Errorf("checking: %w", &verify.MismatchError{Op: "mul", Output: "product", Want: "1", Got: "2"}), apperrors.ExitErrorMismatch, "Status: Mismatch"},
		{"TooLong", fmt.Errorf("operand 1: %w", service.ErrOperandTooLong), apperrors.ExitErrorConfig, "Status: Rejected"},
		{"Overflow", apperrors.NewOverflowError("add", 64), apperrors.ExitErrorOverflow, "Status: Overflow"},
		{"Deadline", context.DeadlineExceeded, apperrors.ExitErrorTimeout, "Timeout"},
		{"Generic", errors.New("boom"), apperrors.ExitErrorGeneric, "unexpected error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			if got := exitCode(tt.err, &out); got != tt.want {
				t.Errorf("exitCode = %d, want %d", got, tt.want)
			}
			if !strings.Contains(testutil.StripAnsiCodes(out.String()), tt.text) {
				t.Errorf("output %q should contain %q", out.String(), tt.text)
			}
		})
	}
}

func TestSetupLifecycle(t *testing.T) {
	t.Parallel()
	ctx, lc := SetupLifecycle(context.Background(), time.Hour)
	if _, ok := ctx.Deadline(); !ok {
		t.Error("lifecycle context has no deadline")
	}
	lc.Cleanup()
	if ctx.Err() == nil {
		t.Error("Cleanup did not cancel the context")
	}

	ctx, cancel := SetupContext(context.Background(), 0)
	defer cancel()
	if _, ok := ctx.Deadline(); ok {
		t.Error("a zero timeout should not set a deadline")
	}
}
