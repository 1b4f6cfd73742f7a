package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	apperrors "github.com/agbru/bncalc/internal/errors"
)

// CalibrationProfile stores the outcome of a calibration run together with
// the hardware it was measured on, so a cached result can be rejected when
// the machine changes.
type CalibrationProfile struct {
	CPUModel  string `json:"cpu_model"`
	NumCPU    int    `json:"num_cpu"`
	GOARCH    string `json:"goarch"`
	GOOS      string `json:"goos"`
	GoVersion string `json:"go_version"`

	// Bits is the capacity the benchmark ran at.
	Bits int `json:"bits"`
	// OptimalWordBits is the recommended word width for Bits.
	OptimalWordBits int `json:"optimal_word_bits"`
	// Measurements holds the raw timings.
	Measurements []ProfileMeasurement `json:"measurements,omitempty"`

	CalibratedAt    time.Time `json:"calibrated_at"`
	CalibrationTime string    `json:"calibration_time"`

	ProfileVersion int `json:"profile_version"`
}

// ProfileMeasurement is the serialized form of a Measurement.
type ProfileMeasurement struct {
	WordBits int    `json:"word_bits"`
	Op       string `json:"op"`
	NsPerOp  int64  `json:"ns_per_op"`
}

const (
	// CurrentProfileVersion is the current version of the profile format.
	CurrentProfileVersion = 1

	// DefaultProfileFileName is the default name for the calibration profile file.
	DefaultProfileFileName = ".bncalc_calibration.json"
)

// GetDefaultProfilePath returns the profile path in the user's home
// directory, or the bare file name when no home directory is known.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// NewProfile creates a profile stamped with the current hardware.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		CPUModel:       fmt.Sprintf("%s-%d-cores", runtime.GOARCH, runtime.NumCPU()),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		CalibratedAt:   time.Now(),
		ProfileVersion: CurrentProfileVersion,
	}
}

// SetMeasurements records ms in the profile.
func (p *CalibrationProfile) SetMeasurements(ms []Measurement) {
	p.Measurements = p.Measurements[:0]
	for _, m := range ms {
		if m.Err != nil {
			continue
		}
		p.Measurements = append(p.Measurements, ProfileMeasurement{WordBits: m.WordBits, Op: m.Op, NsPerOp: m.PerOp.Nanoseconds()})
	}
}

// LoadProfile loads a calibration profile from path, or from the default
// path when path is empty.
func LoadProfile(path string) (*CalibrationProfile, error) {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.WrapError(err, "reading calibration profile %s", path)
	}
	var profile CalibrationProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, apperrors.WrapError(err, "parsing calibration profile %s", path)
	}
	return &profile, nil
}

// SaveProfile writes the profile to path, or to the default path when path
// is empty.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return apperrors.WrapError(err, "encoding calibration profile")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return apperrors.WrapError(err, "writing calibration profile %s", path)
	}
	return nil
}

// IsValid reports whether the profile was produced by this profile version
// on hardware matching the current machine and names a usable width.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil || p.ProfileVersion != CurrentProfileVersion {
		return false
	}
	if p.NumCPU != runtime.NumCPU() || p.GOARCH != runtime.GOARCH {
		return false
	}
	switch p.OptimalWordBits {
	case 8, 16, 32:
		return p.Bits > 0 && p.Bits%p.OptimalWordBits == 0
	}
	return false
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

func (p *CalibrationProfile) String() string {
	if p == nil {
		return "<nil profile>"
	}
	return fmt.Sprintf("CalibrationProfile{CPU: %s, Bits: %d, Word: %d bits, Measurements: %d, Calibrated: %s}",
		p.CPUModel, p.Bits, p.OptimalWordBits, len(p.Measurements), p.CalibratedAt.Format(time.RFC3339))
}

// LoadOrCreateProfile loads the profile at path. It returns a fresh profile
// and false when the file is missing, unreadable or invalid here.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	profile, err := LoadProfile(path)
	if err != nil || !profile.IsValid() {
		return NewProfile(), false
	}
	return profile, true
}

// ProfileExists checks if a calibration profile exists at the given path.
func ProfileExists(path string) bool {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	_, err := os.Stat(path)
	return err == nil
}
