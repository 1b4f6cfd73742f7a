package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/bncalc/internal/calc"
	"github.com/agbru/bncalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Format is hex, dec or both.
	Format string
	// Quiet prints the bare values only.
	Quiet bool
	// Details adds layout, operands and timing.
	Details bool
}

// WriteResultToFile writes res to config.OutputFile with a commented header.
// It is a no-op when no file is configured.
func WriteResultToFile(res calc.Result, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# bncalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Operation: %s\n", res.Op)
	fmt.Fprintf(file, "# Layout: %s\n", res.Layout)
	fmt.Fprintf(file, "# Duration: %s\n", res.Duration)
	fmt.Fprintf(file, "# Overflow: %t\n", res.Overflow)
	fmt.Fprintf(file, "\n")
	for _, o := range res.Operands {
		fmt.Fprintf(file, "%s = %s\n", o.Name, FormatValue(o, config.Format))
	}
	if res.Cmp != nil {
		fmt.Fprintf(file, "cmp = %d\n", *res.Cmp)
	}
	for _, o := range res.Outputs {
		fmt.Fprintf(file, "%s = %s\n", o.Name, FormatValue(o, config.Format))
	}
	return file.Close()
}

// DisplayResultWithConfig displays res according to config and saves it to
// the configured file, if any.
func DisplayResultWithConfig(out io.Writer, res calc.Result, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, res, config.Format)
	} else {
		DisplayResult(res, config.Format, config.Details, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(res, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "%sResult saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
