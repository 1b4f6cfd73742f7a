package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/bncalc/internal/calc"
	"github.com/agbru/bncalc/internal/calibration"
	"github.com/agbru/bncalc/internal/cli"
	"github.com/agbru/bncalc/internal/config"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/logging"
	"github.com/agbru/bncalc/internal/orchestration"
	"github.com/agbru/bncalc/internal/server"
	"github.com/agbru/bncalc/internal/service"
	"github.com/agbru/bncalc/internal/ui"
	"github.com/agbru/bncalc/internal/verify"
	"github.com/agbru/bncalc/pkg/models"
)

// Application is one bncalc invocation: a parsed configuration and the
// streams it reports on.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// ErrWriter receives diagnostics and logs (typically os.Stderr).
	ErrWriter io.Writer
	// In feeds the REPL. Nil means os.Stdin.
	In io.Reader
	// Logger is the structured logger shared by every mode.
	Logger logging.Logger
}

// New parses args (program name first) into an Application. When a
// calibration profile is named outside calibration mode, its recommended
// word width replaces the configured one.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "bncalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, calc.Names())
	if err != nil {
		return nil, err
	}

	if !cfg.Calibrate && cfg.CalibrationProfile != "" {
		if calibrated, ok := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); ok {
			cfg = calibrated
		}
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}

	return &Application{
		Config:    cfg,
		ErrWriter: errWriter,
		Logger:    logging.NewConsoleLogger(errWriter, "bncalc", level),
	}, nil
}

// Run dispatches to the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Logger == nil {
		a.Logger = logging.Nop()
	}

	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.ServerMode:
		return a.runServer()
	case a.Config.Interactive:
		return a.runREPL(out)
	case a.Config.Calibrate:
		return a.runCalibration(ctx, out)
	case a.Config.BatchFile != "":
		return a.runBatch(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

// newService builds the evaluation pipeline shared by every mode: the
// evaluator for the configured layout, logging and Prometheus observers,
// and the reference oracle when verification is enabled.
func (a *Application) newService() (service.Service, error) {
	observer := calc.NewMultiObserver(calc.NewLoggingObserver(a.Logger), calc.NewMetricsObserver())
	opts := append(a.Config.EvaluatorOptions(), calc.WithObserver(observer))
	e, err := calc.NewEvaluator(a.Config.WordBits, a.Config.Bits, opts...)
	if err != nil {
		return nil, err
	}
	var svcOpts []service.Option
	if a.Config.Verify {
		oracle := verify.NewOracle()
		a.Logger.Debug("verification enabled", logging.String("oracle", oracle.Name()))
		svcOpts = append(svcOpts, service.WithOracle(oracle))
	}
	return service.NewCalculatorService(e, svcOpts...), nil
}

func (a *Application) buildService() (service.Service, int) {
	svc, err := a.newService()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return nil, apperrors.ExitErrorConfig
	}
	return svc, apperrors.ExitSuccess
}

func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, calc.Names()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) runServer() int {
	svc, code := a.buildService()
	if svc == nil {
		return code
	}
	srv := server.NewServer(svc, a.Config, server.WithLogger(a.Logger))
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) runREPL(out io.Writer) int {
	svc, code := a.buildService()
	if svc == nil {
		return code
	}
	repl := cli.NewREPL(svc, cli.REPLConfig{
		Format:  a.Config.Format,
		Input:   calc.Format(a.Config.Input),
		Timeout: a.Config.Timeout,
	})
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, lc := SetupLifecycle(ctx, a.Config.Timeout)
	defer lc.Cleanup()
	return calibration.RunCalibrationWithOptions(ctx, out, calibration.CalibrationOptions{
		Bits:        a.Config.Bits,
		ProfilePath: a.Config.CalibrationProfile,
		SaveProfile: true,
		Progress:    !a.Config.Quiet && cli.IsInteractive(out),
	})
}

// runBatch evaluates every expression of the batch file concurrently.
func (a *Application) runBatch(ctx context.Context, out io.Writer) int {
	f, err := os.Open(a.Config.BatchFile)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error opening batch file: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer f.Close()

	items, err := orchestration.ParseBatch(f)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error reading batch file: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	svc, code := a.buildService()
	if svc == nil {
		return code
	}

	ctx, lc := SetupLifecycle(ctx, a.Config.Timeout)
	defer lc.Cleanup()

	quiet := a.Config.Quiet || a.Config.JSONOutput
	if !quiet {
		cli.PrintExecutionConfig(a.Config, svc.Layout(), out)
	}
	progressOut := out
	if quiet {
		progressOut = io.Discard
	}
	a.Logger.Debug("batch loaded", logging.String("file", a.Config.BatchFile), logging.Int("items", len(items)))
	results := orchestration.ExecuteBatch(ctx, svc, items, !quiet, progressOut)

	if a.Config.JSONOutput {
		resps := make([]models.CalculationResponse, len(results))
		for i, r := range results {
			resps[i] = service.ToResponse(r.Result, r.Err)
		}
		if err := printJSON(resps, out); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return orchestration.AnalyzeBatchResults(results, a.Config.Format, io.Discard)
	}
	return orchestration.AnalyzeBatchResults(results, a.Config.Format, out)
}

// runCalculate evaluates the single -op expression.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	svc, code := a.buildService()
	if svc == nil {
		return code
	}

	ctx, lc := SetupLifecycle(ctx, a.Config.Timeout)
	defer lc.Cleanup()

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, svc.Layout(), out)
	}

	res, err := svc.Calculate(ctx, a.request())

	if a.Config.JSONOutput {
		if err := printJSON(service.ToResponse(res, err), out); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return exitCode(err, io.Discard)
	}
	if err != nil {
		return exitCode(err, out)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Format:     a.Config.Format,
		Quiet:      a.Config.Quiet,
		Details:    a.Config.Details,
	}
	if err := cli.DisplayResultWithConfig(out, res, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// request builds the single-expression request, taking as many operands as
// the operation needs.
func (a *Application) request() calc.Request {
	operands := []string{a.Config.A, a.Config.B}
	if op, ok := calc.Lookup(a.Config.Op); ok && op.Arity < len(operands) {
		operands = operands[:op.Arity]
	}
	return calc.Request{Op: a.Config.Op, Operands: operands}
}

// exitCode reports err on out and maps it to an exit code. Oracle
// disagreements and oversized operands are classified here because the
// generic handler cannot see the verify and service packages.
func exitCode(err error, out io.Writer) int {
	var mismatch *verify.MismatchError
	switch {
	case err == nil:
		return apperrors.ExitSuccess
	case errors.As(err, &mismatch):
		fmt.Fprintf(out, "%sStatus: Mismatch.%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
		return apperrors.ExitErrorMismatch
	case errors.Is(err, service.ErrOperandTooLong):
		fmt.Fprintf(out, "Status: Rejected. %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.HandleCalculationError(err, 0, out, ui.ColorProvider{})
}

// IsHelpError reports whether err means -help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

func printJSON(v any, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
