// Package config provides the configuration management for bncalc. It
// defines the configuration structure, parses command-line flags, applies
// BNCALC_* environment overrides and an optional TOML profile, and validates
// the result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agbru/bncalc/internal/calc"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/logging"
)

// EnvPrefix is the prefix of every environment variable read by bncalc.
const EnvPrefix = "BNCALC_"

// Default configuration values.
const (
	// DefaultBits is the default layout capacity.
	DefaultBits = 1024
	// DefaultWordBits is the default word width.
	DefaultWordBits = 32
	// DefaultOp is the operation evaluated when -op is omitted.
	DefaultOp = "add"
	// DefaultFormat selects how results are displayed.
	DefaultFormat = "hex"
	// DefaultInput selects how unprefixed operands are parsed.
	DefaultInput = "hex"
	// DefaultTimeout bounds a single evaluation or batch.
	DefaultTimeout = 30 * time.Second
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultMaxExponent bounds the exponent accepted by pow, whose cost is
	// linear in the exponent.
	DefaultMaxExponent uint64 = 1 << 20
)

// Output and input formats.
var (
	validFormats = []string{"hex", "dec", "both"}
	validInputs  = []string{"hex", "dec"}
	validWords   = []int{8, 16, 32}
)

// AppConfig aggregates the parameters parsed from the command line, the
// environment and the profile.
type AppConfig struct {
	// Op is the operation to evaluate.
	Op string
	// A and B are the operands. Unary operations ignore B.
	A, B string
	// Bits is the layout capacity in bits.
	Bits int
	// WordBits is the word width: 8, 16 or 32.
	WordBits int
	// Format is the display format of results: hex, dec or both.
	Format string
	// Input is the default base of operands without a 0x or 0d prefix.
	Input string
	// Timeout bounds the evaluation.
	Timeout time.Duration
	// Strict turns an overflowed result into an error.
	Strict bool
	// Verify checks results against the reference oracle.
	Verify bool
	// MaxExponent bounds the exponent accepted by pow.
	MaxExponent uint64
	// Details adds the layout, timings and overflow state to the report.
	Details bool
	// JSONOutput prints the result as JSON.
	JSONOutput bool
	// ServerMode starts the HTTP API.
	ServerMode bool
	// Port is the listen port in server mode.
	Port string
	// Interactive starts the REPL.
	Interactive bool
	// BatchFile names a file of expressions to evaluate concurrently.
	BatchFile string
	// Calibrate benchmarks the word widths for the configured capacity.
	Calibrate bool
	// CalibrationProfile is where calibration results are stored. Empty means
	// ~/.bncalc_calibration.json.
	CalibrationProfile string
	// ProfileFile is a TOML file providing defaults.
	ProfileFile string
	// NoColor disables colored output. NO_COLOR is honored too.
	NoColor bool
	// Quiet prints only the result.
	Quiet bool
	// OutputFile also writes the result to this path.
	OutputFile string
	// Completion prints a shell completion script for bash, zsh, fish or powershell.
	Completion string
	// LogLevel is the zerolog level name.
	LogLevel string
}

// EvaluatorOptions converts the configuration into calc options.
func (c AppConfig) EvaluatorOptions() []calc.Option {
	return []calc.Option{
		calc.WithStrict(c.Strict),
		calc.WithMaxExponent(c.MaxExponent),
		calc.WithInput(calc.Format(c.Input)),
	}
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(availableOps []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if !slices.Contains(validWords, c.WordBits) {
		return apperrors.NewConfigError("unsupported word width %d: valid widths are 8, 16 and 32", c.WordBits)
	}
	if c.Bits <= 0 || c.Bits%c.WordBits != 0 {
		return apperrors.NewConfigError("capacity %d is not a positive multiple of the %d-bit word", c.Bits, c.WordBits)
	}
	if c.Bits/c.WordBits < 2 {
		return apperrors.NewConfigError("capacity %d holds fewer than two %d-bit words", c.Bits, c.WordBits)
	}
	if !slices.Contains(validFormats, c.Format) {
		return apperrors.NewConfigError("unrecognized format: '%s'. Valid formats are: [%s]", c.Format, strings.Join(validFormats, ", "))
	}
	if !slices.Contains(validInputs, c.Input) {
		return apperrors.NewConfigError("unrecognized input base: '%s'. Valid bases are: [%s]", c.Input, strings.Join(validInputs, ", "))
	}
	if c.MaxExponent == 0 {
		return apperrors.NewConfigError("max exponent must be strictly positive")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.needsOp() && !slices.Contains(availableOps, c.Op) {
		return apperrors.NewConfigError("unrecognized operation: '%s'. Valid operations are: [%s]", c.Op, strings.Join(availableOps, ", "))
	}
	return nil
}

// needsOp reports whether the run mode evaluates the single -op expression.
func (c AppConfig) needsOp() bool {
	return !c.ServerMode && !c.Interactive && !c.Calibrate && c.BatchFile == "" && c.Completion == ""
}

// ParseConfig parses args into an AppConfig. Values come, in decreasing
// priority, from flags, BNCALC_* environment variables, the TOML profile and
// the defaults. Parse and validation errors are reported on errorWriter
// together with the usage text.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableOps []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	opHelp := fmt.Sprintf("Operation to evaluate, one of [%s].", strings.Join(availableOps, ", "))

	config := AppConfig{}
	fs.StringVar(&config.Op, "op", DefaultOp, opHelp)
	fs.StringVar(&config.A, "a", "0", "First operand (hex by default; 0x and 0d prefixes select the base).")
	fs.StringVar(&config.B, "b", "0", "Second operand.")
	fs.IntVar(&config.Bits, "bits", DefaultBits, "Layout capacity in bits.")
	fs.IntVar(&config.WordBits, "word", DefaultWordBits, "Word width in bits: 8, 16 or 32.")
	fs.StringVar(&config.Format, "format", DefaultFormat, "Result format: hex, dec or both.")
	fs.StringVar(&config.Input, "input", DefaultInput, "Base of unprefixed operands: hex or dec.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.Strict, "strict", false, "Fail when a result overflows the layout.")
	fs.BoolVar(&config.Verify, "verify", false, "Check results against the math/big reference.")
	fs.Uint64Var(&config.MaxExponent, "max-exponent", DefaultMaxExponent, "Largest exponent accepted by pow.")
	fs.BoolVar(&config.Details, "d", false, "Display layout, timing and overflow details.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.StringVar(&config.BatchFile, "batch", "", "Evaluate every expression of a file concurrently.")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Benchmark word widths for the configured capacity.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Path to the calibration profile (default: ~/.bncalc_calibration.json).")
	fs.StringVar(&config.ProfileFile, "profile", "", "TOML file providing default settings.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")
	fs.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error or disabled.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if err := applyProfile(&config, fs); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	applyEnvOverrides(&config, fs)

	config.Op = strings.ToLower(config.Op)
	config.Format = strings.ToLower(config.Format)
	config.Input = strings.ToLower(config.Input)
	if err := config.Validate(availableOps); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
