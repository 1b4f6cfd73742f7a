package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/bncalc/internal/calc"
	"github.com/agbru/bncalc/internal/service"
	"github.com/agbru/bncalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Format is the initial result format: hex, dec or both.
	Format string
	// Input is the initial base of unprefixed operands.
	Input calc.Format
	// Timeout bounds each evaluation.
	Timeout time.Duration
}

// REPL is an interactive session evaluating one operation per line.
type REPL struct {
	config  REPLConfig
	service service.Service
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a session over svc reading stdin and writing stdout.
func NewREPL(svc service.Service, config REPLConfig) *REPL {
	if config.Format == "" {
		config.Format = FormatHex
	}
	if config.Input == "" {
		config.Input = calc.FormatHex
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &REPL{config: config, service: svc, in: os.Stdin, out: os.Stdout}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and evaluates commands until exit or end of input.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"bn> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		line := strings.TrimSpace(input)
		if line != "" && !r.processCommand(line) {
			return
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%sbncalc interactive mode%s, %s\n\n", ui.ColorBold(), ui.ColorReset(), r.service.Layout())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<op> <a> [b]%s     - Evaluate an operation (see list)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sformat <f>%s       - Result format: hex, dec or both\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sinput <base>%s     - Base of unprefixed operands: hex or dec\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slayout%s           - Display the capacity\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s             - List operations\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s             - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s      - Leave interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "Operands take a 0x (hex) or 0d (decimal) prefix; unprefixed ones use the input base.\n")
}

// processCommand executes one line. It returns false when the session
// should end.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "format", "f":
		r.cmdFormat(args)
	case "input", "in":
		r.cmdInput(args)
	case "layout":
		fmt.Fprintf(r.out, "Layout: %s%s%s\n", ui.ColorCyan(), r.service.Layout(), ui.ColorReset())
	case "list", "ls":
		r.cmdList()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if _, ok := calc.Lookup(cmd); ok {
			r.evaluate(cmd, args)
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func (r *REPL) evaluate(op string, operands []string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	res, err := r.service.Calculate(ctx, calc.Request{Op: op, Operands: operands, Input: r.config.Input})
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	DisplayResult(res, r.config.Format, false, r.out)
}

func (r *REPL) cmdFormat(args []string) {
	if len(args) != 1 || (args[0] != FormatHex && args[0] != FormatDec && args[0] != FormatBoth) {
		fmt.Fprintf(r.out, "%sUsage: format hex|dec|both%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	r.config.Format = args[0]
	fmt.Fprintf(r.out, "Result format: %s%s%s\n", ui.ColorGreen(), r.config.Format, ui.ColorReset())
}

func (r *REPL) cmdInput(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: input hex|dec%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	f, ok := calc.ParseFormat(args[0])
	if !ok {
		fmt.Fprintf(r.out, "%sUnknown base: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	r.config.Input = f
	fmt.Fprintf(r.out, "Operand base: %s%s%s\n", ui.ColorGreen(), f, ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable operations:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, op := range r.service.Operations() {
		args := "a"
		if op.Arity == 2 {
			args = "a b"
		}
		fmt.Fprintf(r.out, "  %s%-7s%s %-4s - %s\n", ui.ColorYellow(), op.Name, ui.ColorReset(), args, op.Description)
	}
	fmt.Fprintln(r.out)
}
