// Package orchestration runs batches of evaluations concurrently and
// summarizes their outcome.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/bncalc/internal/calc"
	"github.com/agbru/bncalc/internal/cli"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/service"
	"github.com/agbru/bncalc/internal/ui"
	"github.com/agbru/bncalc/internal/verify"
)

// BatchResult is the outcome of one batch item.
type BatchResult struct {
	Line    int
	Request calc.Request
	// Result is populated even on error when the evaluator got far enough.
	Result calc.Result
	Err    error
}

// ExecuteBatch evaluates items concurrently, at most GOMAXPROCS at a time,
// and returns the results in input order. A failing item does not stop the
// others; cancelling ctx does. When progress is set a spinner is drawn on
// out while the batch runs.
func ExecuteBatch(ctx context.Context, svc service.Service, items []BatchItem, progress bool, out io.Writer) []BatchResult {
	results := make([]BatchResult, len(items))
	done := make(chan struct{}, len(items))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	total := len(items)
	if !progress {
		total = 0
	}
	go cli.DisplayProgress(&displayWg, done, total, out)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, item := range items {
		g.Go(func() error {
			res, err := svc.Calculate(ctx, item.Request)
			results[i] = BatchResult{Line: item.Line, Request: item.Request, Result: res, Err: err}
			done <- struct{}{}
			return nil
		})
	}

	_ = g.Wait()
	close(done)
	displayWg.Wait()
	return results
}

// AnalyzeBatchResults prints a summary table of results and returns the
// exit code: success when every item evaluated, ExitErrorMismatch when
// verification disagreed, otherwise the code of the first failure.
// Wrapped results are counted but are not failures.
func AnalyzeBatchResults(results []BatchResult, format string, out io.Writer) int {
	var firstErr error
	failures, overflows := 0, 0
	mismatch := false

	fmt.Fprintf(out, "\n--- Batch Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sLine%s\t%sOperation%s\t%sResult%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for _, r := range results {
		value := "-"
		var status string
		switch {
		case r.Err != nil:
			failures++
			if firstErr == nil {
				firstErr = r.Err
			}
			var m *verify.MismatchError
			if errors.As(r.Err, &m) {
				mismatch = true
			}
			status = fmt.Sprintf("%sFailure (%v)%s", ui.ColorRed(), r.Err, ui.ColorReset())
		case r.Result.Overflow:
			overflows++
			value = cli.FormatQuietResult(r.Result, format)
			status = ui.Alert("Overflow")
		default:
			value = cli.FormatQuietResult(r.Result, format)
			status = fmt.Sprintf("%sSuccess%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "%d\t%s%s%s\t%s\t%s\n", r.Line, ui.ColorBlue(), r.Request.Op, ui.ColorReset(), value, status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	fmt.Fprintf(out, "\n%d evaluated, %d failed, %d overflowed.\n", len(results), failures, overflows)
	switch {
	case mismatch:
		fmt.Fprintf(out, "Global Status: CRITICAL ERROR! A result disagreed with the reference oracle.\n")
		return apperrors.ExitErrorMismatch
	case failures > 0:
		fmt.Fprintf(out, "Global Status: Failure.\n")
		return apperrors.HandleCalculationError(firstErr, 0, out, ui.ColorProvider{})
	}
	fmt.Fprintf(out, "Global Status: Success.\n")
	return apperrors.ExitSuccess
}
