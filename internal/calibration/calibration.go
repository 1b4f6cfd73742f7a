// Package calibration benchmarks the supported word widths at a given
// capacity and persists the fastest one as a profile.
package calibration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/bncalc/internal/cli"
	"github.com/agbru/bncalc/internal/config"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/ui"
)

// CalibrationOptions configures the calibration process.
type CalibrationOptions struct {
	// Bits is the capacity to benchmark.
	Bits int
	// ProfilePath is where the profile is saved or loaded. Empty selects
	// the default path.
	ProfilePath string
	// SaveProfile stores the results.
	SaveProfile bool
	// LoadProfile reuses a valid profile for the same capacity instead of
	// measuring.
	LoadProfile bool
	// Iterations overrides MicroBenchIterations when positive.
	Iterations int
	// Progress draws a spinner while measuring.
	Progress bool
}

// RunCalibration benchmarks every word width at bits, prints the results
// and saves the recommendation to the default profile.
func RunCalibration(ctx context.Context, out io.Writer, bits int) int {
	return RunCalibrationWithOptions(ctx, out, CalibrationOptions{Bits: bits, SaveProfile: true})
}

// RunCalibrationWithOptions executes calibration with the specified options
// and returns an exit code.
func RunCalibrationWithOptions(ctx context.Context, out io.Writer, opts CalibrationOptions) int {
	fmt.Fprintf(out, "--- Calibration Mode: Finding the Fastest Word Width for %d bits ---\n", opts.Bits)
	path := opts.ProfilePath
	if path == "" {
		path = GetDefaultProfilePath()
	}

	if opts.LoadProfile {
		if profile, loaded := LoadOrCreateProfile(path); loaded && profile.Bits == opts.Bits {
			printCachedProfile(out, path, profile)
			return apperrors.ExitSuccess
		}
	}

	mb := NewMicroBenchmark(opts.Bits)
	if opts.Iterations > 0 {
		mb.Iterations = opts.Iterations
	}

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	total := 0
	if opts.Progress {
		total = 1
	}
	go cli.DisplayProgress(&wg, done, total, out)

	start := time.Now()
	results, err := mb.Run(ctx)
	elapsed := time.Since(start)
	close(done)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(out, "\n%sCalibration interrupted.%s\n", ui.ColorYellow(), ui.ColorReset())
		return apperrors.HandleCalculationError(err, elapsed, out, ui.ColorProvider{})
	}

	best, ok := Recommend(results)
	printCalibrationResults(out, results, best)
	if !ok {
		fmt.Fprintf(out, "\n%sCalibration failed: no word width can hold %d bits.%s\n", ui.ColorRed(), opts.Bits, ui.ColorReset())
		return apperrors.ExitErrorConfig
	}

	fmt.Fprintf(out, "\n%sRecommendation for this machine: %s-bits %d -word %d%s\n",
		ui.ColorGreen(), ui.ColorYellow(), opts.Bits, best, ui.ColorReset())

	if opts.SaveProfile {
		profile := NewProfile()
		profile.Bits = opts.Bits
		profile.OptimalWordBits = best
		profile.SetMeasurements(results)
		profile.CalibrationTime = elapsed.String()
		if err := profile.SaveProfile(path); err != nil {
			fmt.Fprintf(out, "%sWarning: failed to save profile: %v%s\n", ui.ColorYellow(), err, ui.ColorReset())
		} else {
			fmt.Fprintf(out, "%sCalibration profile saved to %s%s\n", ui.ColorGreen(), path, ui.ColorReset())
		}
	}
	return apperrors.ExitSuccess
}

// LoadCachedCalibration applies the word width of a valid profile measured
// at cfg.Bits. It returns cfg unchanged and false otherwise.
func LoadCachedCalibration(cfg config.AppConfig, profilePath string) (config.AppConfig, bool) {
	profile, loaded := LoadOrCreateProfile(profilePath)
	if !loaded || profile.Bits != cfg.Bits {
		return cfg, false
	}
	cfg.WordBits = profile.OptimalWordBits
	return cfg, true
}
