package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of EnvPrefix+key, or defaultVal if unset.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvUint64 returns EnvPrefix+key parsed as uint64, or defaultVal if unset
// or invalid.
func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt returns EnvPrefix+key parsed as int, or defaultVal if unset or
// invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns EnvPrefix+key as a bool. "true", "1" and "yes" are true;
// "false", "0" and "no" are false, case-insensitively.
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns EnvPrefix+key parsed as a duration ("30s", "2m").
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet reports whether any of names was given on the command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides applies BNCALC_* variables to every setting whose flag
// was not given explicitly:
//
//	BNCALC_OP, BNCALC_A, BNCALC_B, BNCALC_BITS, BNCALC_WORD, BNCALC_FORMAT,
//	BNCALC_INPUT, BNCALC_TIMEOUT, BNCALC_STRICT, BNCALC_VERIFY,
//	BNCALC_MAX_EXPONENT, BNCALC_DETAILS, BNCALC_JSON, BNCALC_SERVER,
//	BNCALC_PORT, BNCALC_INTERACTIVE, BNCALC_BATCH, BNCALC_CALIBRATE,
//	BNCALC_CALIBRATION_PROFILE, BNCALC_NO_COLOR, BNCALC_QUIET,
//	BNCALC_OUTPUT, BNCALC_LOG_LEVEL
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyNumericOverrides(config, fs)
	applyStringOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "bits") {
		config.Bits = getEnvInt("BITS", config.Bits)
	}
	if !isFlagSet(fs, "word") {
		config.WordBits = getEnvInt("WORD", config.WordBits)
	}
	if !isFlagSet(fs, "max-exponent") {
		config.MaxExponent = getEnvUint64("MAX_EXPONENT", config.MaxExponent)
	}
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	overrides := []struct {
		flags []string
		key   string
		dst   *string
	}{
		{[]string{"op"}, "OP", &config.Op},
		{[]string{"a"}, "A", &config.A},
		{[]string{"b"}, "B", &config.B},
		{[]string{"format"}, "FORMAT", &config.Format},
		{[]string{"input"}, "INPUT", &config.Input},
		{[]string{"port"}, "PORT", &config.Port},
		{[]string{"batch"}, "BATCH", &config.BatchFile},
		{[]string{"calibration-profile"}, "CALIBRATION_PROFILE", &config.CalibrationProfile},
		{[]string{"output", "o"}, "OUTPUT", &config.OutputFile},
		{[]string{"log-level"}, "LOG_LEVEL", &config.LogLevel},
	}
	for _, o := range overrides {
		if !isFlagSet(fs, o.flags...) {
			*o.dst = getEnvString(o.key, *o.dst)
		}
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	overrides := []struct {
		flags []string
		key   string
		dst   *bool
	}{
		{[]string{"strict"}, "STRICT", &config.Strict},
		{[]string{"verify"}, "VERIFY", &config.Verify},
		{[]string{"d", "details"}, "DETAILS", &config.Details},
		{[]string{"json"}, "JSON", &config.JSONOutput},
		{[]string{"server"}, "SERVER", &config.ServerMode},
		{[]string{"interactive"}, "INTERACTIVE", &config.Interactive},
		{[]string{"calibrate"}, "CALIBRATE", &config.Calibrate},
		{[]string{"no-color"}, "NO_COLOR", &config.NoColor},
		{[]string{"quiet", "q"}, "QUIET", &config.Quiet},
	}
	for _, o := range overrides {
		if !isFlagSet(fs, o.flags...) {
			*o.dst = getEnvBool(o.key, *o.dst)
		}
	}
}
