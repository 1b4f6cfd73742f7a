package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/bncalc/internal/ui"
)

// printCalibrationResults formats the measurements as a table, marking the
// recommended width.
func printCalibrationResults(out io.Writer, results []Measurement, best int) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sWord%s\t│ %sOperation%s\t│ %sTime per op%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s\t┼%s\t┼%s\n", strings.Repeat("─", 8), strings.Repeat("─", 11), strings.Repeat("─", 20))
	for _, res := range results {
		duration := fmt.Sprintf("%sN/A (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		if res.Err == nil {
			duration = res.PerOp.String()
		}
		highlight := ""
		if res.WordBits == best && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%d-bit%s\t│ %s\t│ %s%s%s%s\n",
			ui.ColorCyan(), res.WordBits, ui.ColorReset(), res.Op, ui.ColorYellow(), duration, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

// printCachedProfile reports a profile that is reused instead of measured.
func printCachedProfile(out io.Writer, path string, p *CalibrationProfile) {
	fmt.Fprintf(out, "%sLoaded existing calibration profile from %s%s\n", ui.ColorGreen(), path, ui.ColorReset())
	fmt.Fprintf(out, "Profile: %s\n", p)
	fmt.Fprintf(out, "\n%sUsing cached calibration: %s-word %d%s\n",
		ui.ColorGreen(), ui.ColorYellow(), p.OptimalWordBits, ui.ColorReset())
}
