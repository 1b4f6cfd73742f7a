package config

import (
	"flag"
	"fmt"
	"time"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
)

// Profile is the TOML document loaded with -profile or BNCALC_PROFILE. Every
// key is optional; absent keys leave the defaults in place.
//
//	word_bits = 16
//	bits = 256
//	format = "both"
//	timeout = "10s"
//	max_exponent = 65536
type Profile struct {
	WordBits    *int    `toml:"word_bits"`
	Bits        *int    `toml:"bits"`
	Format      string  `toml:"format"`
	Input       string  `toml:"input"`
	Timeout     string  `toml:"timeout"`
	Strict      *bool   `toml:"strict"`
	Verify      *bool   `toml:"verify"`
	MaxExponent *int64  `toml:"max_exponent"`
	Port        string  `toml:"port"`
	LogLevel    string  `toml:"log_level"`
	NoColor     *bool   `toml:"no_color"`
	Calibration *string `toml:"calibration_profile"`
}

// LoadProfile decodes the TOML profile at path. Unknown keys are rejected so
// that typos do not go unnoticed.
func LoadProfile(path string) (Profile, error) {
	var p Profile
	meta, err := toml.DecodeFile(path, &p)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Profile{}, fmt.Errorf("profile %s: unknown key %q", path, undecoded[0].String())
	}
	return p, nil
}

// applyProfile loads the profile named by -profile or BNCALC_PROFILE and
// copies its values into config for every flag not set explicitly.
func applyProfile(config *AppConfig, fs *flag.FlagSet) error {
	if !isFlagSet(fs, "profile") {
		config.ProfileFile = getEnvString("PROFILE", config.ProfileFile)
	}
	if config.ProfileFile == "" {
		return nil
	}
	p, err := LoadProfile(config.ProfileFile)
	if err != nil {
		return err
	}
	return p.apply(config, fs)
}

func (p Profile) apply(config *AppConfig, fs *flag.FlagSet) error {
	if p.WordBits != nil && !isFlagSet(fs, "word") {
		config.WordBits = *p.WordBits
	}
	if p.Bits != nil && !isFlagSet(fs, "bits") {
		config.Bits = *p.Bits
	}
	if p.Format != "" && !isFlagSet(fs, "format") {
		config.Format = p.Format
	}
	if p.Input != "" && !isFlagSet(fs, "input") {
		config.Input = p.Input
	}
	if p.Timeout != "" && !isFlagSet(fs, "timeout") {
		d, err := time.ParseDuration(p.Timeout)
		if err != nil {
			return fmt.Errorf("profile timeout %q: %w", p.Timeout, err)
		}
		config.Timeout = d
	}
	if p.Strict != nil && !isFlagSet(fs, "strict") {
		config.Strict = *p.Strict
	}
	if p.Verify != nil && !isFlagSet(fs, "verify") {
		config.Verify = *p.Verify
	}
	if p.MaxExponent != nil && !isFlagSet(fs, "max-exponent") {
		v, err := safecast.Conv[uint64](*p.MaxExponent)
		if err != nil {
			return fmt.Errorf("profile max_exponent %d: %w", *p.MaxExponent, err)
		}
		config.MaxExponent = v
	}
	if p.Port != "" && !isFlagSet(fs, "port") {
		config.Port = p.Port
	}
	if p.LogLevel != "" && !isFlagSet(fs, "log-level") {
		config.LogLevel = p.LogLevel
	}
	if p.NoColor != nil && !isFlagSet(fs, "no-color") {
		config.NoColor = *p.NoColor
	}
	if p.Calibration != nil && !isFlagSet(fs, "calibration-profile") {
		config.CalibrationProfile = *p.Calibration
	}
	return nil
}
