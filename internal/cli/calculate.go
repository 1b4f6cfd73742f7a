package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bncalc/internal/calc"
	"github.com/agbru/bncalc/internal/config"
	"github.com/agbru/bncalc/internal/ui"
)

// PrintExecutionConfig displays the layout, timeout and environment before
// an evaluation starts.
func PrintExecutionConfig(cfg config.AppConfig, layout calc.LayoutInfo, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Layout: %s%s%s, timeout %s%s%s.\n",
		ui.ColorMagenta(), layout, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	mode := "wrapping"
	if cfg.Strict {
		mode = "strict"
	}
	verify := "off"
	if cfg.Verify {
		verify = "on"
	}
	fmt.Fprintf(out, "Overflow mode: %s%s%s, verification %s%s%s.\n",
		ui.ColorCyan(), mode, ui.ColorReset(), ui.ColorCyan(), verify, ui.ColorReset())
}
