// Package app wires configuration, the evaluation service and the run modes
// (single expression, batch, REPL, HTTP server, calibration) of bncalc.
package app

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bncalc/internal/config"
	"github.com/agbru/bncalc/internal/verify"
)

// Build-time variables set via -ldflags, for example:
//
//	go build -ldflags="-X github.com/agbru/bncalc/internal/app.Version=v1.2.3 -X github.com/agbru/bncalc/internal/app.Commit=abc123"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args contain a version flag in any
// position, so "bncalc -server --version" prints the version too.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-V" {
			return true
		}
	}
	return false
}

// PrintVersion writes the build and runtime details.
func PrintVersion(out io.Writer) {
	info := GetVersionInfo()
	fmt.Fprintf(out, "bncalc %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:     %s\n", info.Commit)
	fmt.Fprintf(out, "  Built:      %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go version: %s\n", info.GoVersion)
	fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", info.OS, info.Arch)
	fmt.Fprintf(out, "  Oracle:     %s\n", info.Oracle)
	fmt.Fprintf(out, "  Default:    %d bits in %d-bit words\n", info.DefaultBits, info.DefaultWordBits)
}

// VersionData is the machine-readable form of PrintVersion.
type VersionData struct {
	Version         string `json:"version"`
	Commit          string `json:"commit"`
	BuildDate       string `json:"build_date"`
	GoVersion       string `json:"go_version"`
	OS              string `json:"os"`
	Arch            string `json:"arch"`
	Oracle          string `json:"oracle"`
	DefaultBits     int    `json:"default_bits"`
	DefaultWordBits int    `json:"default_word_bits"`
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:         Version,
		Commit:          Commit,
		BuildDate:       BuildDate,
		GoVersion:       runtime.Version(),
		OS:              runtime.GOOS,
		Arch:            runtime.GOARCH,
		Oracle:          verify.NewOracle().Name(),
		DefaultBits:     config.DefaultBits,
		DefaultWordBits: config.DefaultWordBits,
	}
}
