package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/bncalc/internal/calc"
	"github.com/agbru/bncalc/internal/ui"
)

// Display formats accepted by FormatValue.
const (
	FormatHex  = "hex"
	FormatDec  = "dec"
	FormatBoth = "both"
)

// FormatValue renders one output in the requested format. Hex values drop
// the layout's zero padding and carry a 0x prefix so they read back
// unambiguously.
func FormatValue(o calc.Output, format string) string {
	switch format {
	case FormatDec:
		return o.Decimal
	case FormatBoth:
		return fmt.Sprintf("0x%s (%s)", trimHex(o.Hex), o.Decimal)
	default:
		return "0x" + trimHex(o.Hex)
	}
}

func trimHex(s string) string {
	if s = strings.TrimLeft(s, "0"); s == "" {
		return "0"
	}
	return s
}

// FormatCmp renders a comparison result as a relation between a and b.
func FormatCmp(c int) string {
	switch {
	case c < 0:
		return "a < b"
	case c > 0:
		return "a > b"
	}
	return "a == b"
}

// DisplayResult prints the outputs of res, one per line, followed by an
// overflow warning when the result wrapped. With details it also reports
// the layout, the operands and the evaluation time.
func DisplayResult(res calc.Result, format string, details bool, out io.Writer) {
	if details {
		fmt.Fprintf(out, "%s--- %s on %s ---%s\n", ui.ColorBold(), res.Op, res.Layout, ui.ColorReset())
		for _, o := range res.Operands {
			fmt.Fprintf(out, "%s = %s%s%s\n", o.Name, ui.ColorCyan(), FormatValue(o, format), ui.ColorReset())
		}
	}
	if res.Cmp != nil {
		fmt.Fprintf(out, "cmp = %s%d%s (%s)\n", ui.ColorGreen(), *res.Cmp, ui.ColorReset(), FormatCmp(*res.Cmp))
	}
	for _, o := range res.Outputs {
		fmt.Fprintf(out, "%s = %s%s%s\n", o.Name, ui.ColorGreen(), FormatValue(o, format), ui.ColorReset())
	}
	if res.Overflow {
		fmt.Fprintf(out, "%s\n", ui.Alert("OVERFLOW: the result wrapped modulo 2^"+fmt.Sprint(res.Layout.Bits)))
	}
	if details {
		fmt.Fprintf(out, "Evaluation time: %s%s%s\n", ui.ColorYellow(), FormatExecutionDuration(res.Duration), ui.ColorReset())
	}
}

// FormatQuietResult joins the outputs of res on one line for scripting.
// Comparisons print -1, 0 or 1.
func FormatQuietResult(res calc.Result, format string) string {
	if res.Cmp != nil {
		return fmt.Sprint(*res.Cmp)
	}
	values := make([]string, len(res.Outputs))
	for i, o := range res.Outputs {
		values[i] = FormatValue(o, format)
	}
	return strings.Join(values, " ")
}

// DisplayQuietResult prints FormatQuietResult followed by a newline.
func DisplayQuietResult(out io.Writer, res calc.Result, format string) {
	fmt.Fprintln(out, FormatQuietResult(res, format))
}
