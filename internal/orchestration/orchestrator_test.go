package orchestration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/agbru/bncalc/internal/calc"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/service"
	"github.com/agbru/bncalc/internal/testutil"
	"github.com/agbru/bncalc/internal/verify"
)

func newService(t *testing.T, opts ...calc.Option) service.Service {
	t.Helper()
	e, err := calc.NewEvaluator(16, 64, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return service.NewCalculatorService(e)
}

func items(reqs ...calc.Request) []BatchItem {
	out := make([]BatchItem, len(reqs))
	for i, r := range reqs {
		out[i] = BatchItem{Line: i + 1, Request: r}
	}
	return out
}

func TestExecuteBatch(t *testing.T) {
	t.Parallel()
	batch := items(
		calc.Request{Op: "add", Operands: []string{"1", "2"}},
		calc.Request{Op: "div", Operands: []string{"1", "0"}},
		calc.Request{Op: "incr", Operands: []string{"ffffffffffffffff"}},
		calc.Request{Op: "pow", Operands: []string{"3", "0d4"}},
	)
	results := ExecuteBatch(context.Background(), newService(t), batch, false, io.Discard)
	if len(results) != len(batch) {
		t.Fatalf("expected %d results, got %d", len(batch), len(results))
	}
	for i, r := range results {
		if r.Line != i+1 {
			t.Errorf("result %d out of order: line %d", i, r.Line)
		}
	}
	if results[0].Err != nil || results[0].Result.Outputs[0].Decimal != "3" {
		t.Errorf("add: %+v", results[0])
	}
	if results[1].Err == nil {
		t.Error("div by zero should fail")
	}
	if !results[2].Result.Overflow {
		t.Error("incr of max should overflow")
	}
	if results[3].Result.Outputs[0].Decimal != "81" {
		t.Errorf("pow: %+v", results[3].Result.Outputs)
	}
}

func TestExecuteBatchCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := ExecuteBatch(ctx, newService(t), items(calc.Request{Op: "add", Operands: []string{"1", "2"}}), false, io.Discard)
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", results[0].Err)
	}
}

func TestAnalyzeBatchResults(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	ok := ExecuteBatch(context.Background(), svc, items(
		calc.Request{Op: "mul", Operands: []string{"0d6", "0d7"}},
		calc.Request{Op: "decr", Operands: []string{"0"}},
	), false, io.Discard)

	tests := []struct {
		name     string
		results  []BatchResult
		expected int
		contains []string
	}{
		{
			name:     "SuccessWithOverflow",
			results:  ok,
			expected: apperrors.ExitSuccess,
			contains: []string{"0x2a", "Overflow", "2 evaluated, 0 failed, 1 overflowed", "Global Status: Success"},
		},
		{
			name: "Failure",
			results: append(ok[:1:1], BatchResult{Line: 3, Request: calc.Request{Op: "div"},
				Err: apperrors.NewValidationError("b", "division by zero", "0")}),
			expected: apperrors.ExitErrorConfig,
			contains: []string{"Failure (validation error for 'b': division by zero)", "Global Status: Failure"},
		},
		{
			name: "StrictOverflow",
			results: []BatchResult{{Line: 1, Request: calc.Request{Op: "incr"},
				Err: apperrors.NewOverflowError("incr", 64)}},
			expected: apperrors.ExitErrorOverflow,
		},
		{
			name: "Mismatch",
			results: []BatchResult{
				{Line: 1, Request: calc.Request{Op: "mul"}, Err: &verify.MismatchError{Op: "mul", Output: "product", Want: "42", Got: "43"}},
				{Line: 2, Request: calc.Request{Op: "add"}, Err: context.DeadlineExceeded},
			},
			expected: apperrors.ExitErrorMismatch,
			contains: []string{"CRITICAL ERROR"},
		},
		{
			name:     "Empty",
			expected: apperrors.ExitSuccess,
			contains: []string{"0 evaluated"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if got := AnalyzeBatchResults(tt.results, "hex", &buf); got != tt.expected {
				t.Errorf("exit code = %d, want %d\n%s", got, tt.expected, buf.String())
			}
			out := testutil.StripAnsiCodes(buf.String())
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("missing %q in:\n%s", want, out)
				}
			}
		})
	}
}
