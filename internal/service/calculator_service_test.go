package service

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/agbru/bncalc/internal/calc"
	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/internal/verify"
)

// lyingOracle agrees with math/big except for mul, where it is off by one.
type lyingOracle struct{ verify.BigOracle }

func (lyingOracle) Compute(op string, x []*big.Int, bits int) (verify.Expected, error) {
	exp, err := verify.BigOracle{}.Compute(op, x, bits)
	if err == nil && op == "mul" {
		exp.Outputs[0].Add(exp.Outputs[0], big.NewInt(1))
	}
	return exp, err
}

func newEvaluator(t *testing.T, opts ...calc.Option) calc.Evaluator {
	t.Helper()
	e, err := calc.NewEvaluator(32, 128, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestNewCalculatorService(t *testing.T) {
	t.Parallel()
	e := newEvaluator(t)

	svc := NewCalculatorService(e)
	if svc.maxOperandLen != DefaultMaxOperandLength(e.Layout()) {
		t.Errorf("expected default operand limit, got %d", svc.maxOperandLen)
	}
	if svc.oracle != nil {
		t.Error("oracle should be disabled by default")
	}

	svc = NewCalculatorService(e, WithMaxOperandLength(10), WithOracle(verify.BigOracle{}))
	if svc.maxOperandLen != 10 {
		t.Errorf("expected limit 10, got %d", svc.maxOperandLen)
	}
	if svc.Layout() != e.Layout() {
		t.Error("layout should come from the evaluator")
	}
	if len(svc.Operations()) != len(calc.Operations()) {
		t.Error("operations should come from the evaluator")
	}
}

func TestDefaultMaxOperandLength(t *testing.T) {
	t.Parallel()
	// 2^128-1 has 39 decimal digits.
	got := DefaultMaxOperandLength(calc.LayoutInfo{Bits: 128})
	if got < 41 {
		t.Errorf("limit %d cannot hold a prefixed 128-bit decimal", got)
	}
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     []Option
		evalOpts []calc.Option
		req      calc.Request
		want     string
		overflow bool
		check    func(error) bool
	}{
		{
			name: "Success",
			req:  calc.Request{Op: "add", Operands: []string{"0d40", "0d2"}},
			want: "42",
		},
		{
			name:     "WrappedOverflow",
			req:      calc.Request{Op: "incr", Operands: []string{strings.Repeat("f", 32)}},
			want:     "0",
			overflow: true,
		},
		{
			name:     "StrictOverflow",
			evalOpts: []calc.Option{calc.WithStrict(true)},
			req:      calc.Request{Op: "incr", Operands: []string{strings.Repeat("f", 32)}},
			overflow: true,
			check: func(err error) bool {
				var o apperrors.OverflowError
				return errors.As(err, &o)
			},
		},
		{
			name: "OperandTooLong",
			opts: []Option{WithMaxOperandLength(4)},
			req:  calc.Request{Op: "add", Operands: []string{"1", "12345"}},
			check: func(err error) bool {
				return errors.Is(err, ErrOperandTooLong)
			},
		},
		{
			name: "Verified",
			opts: []Option{WithOracle(verify.BigOracle{})},
			req:  calc.Request{Op: "divmod", Operands: []string{"0d100", "0d7"}},
			want: "14",
		},
		{
			name: "VerificationMismatch",
			opts: []Option{WithOracle(lyingOracle{})},
			req:  calc.Request{Op: "mul", Operands: []string{"6", "7"}},
			check: func(err error) bool {
				var m *verify.MismatchError
				return errors.As(err, &m) && m.Output == "product"
			},
		},
		{
			name: "EvaluatorErrorSkipsVerification",
			opts: []Option{WithOracle(lyingOracle{})},
			req:  calc.Request{Op: "div", Operands: []string{"1", "0"}},
			check: func(err error) bool {
				var v apperrors.ValidationError
				return errors.As(err, &v)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewCalculatorService(newEvaluator(t, tt.evalOpts...), tt.opts...)
			res, err := svc.Calculate(context.Background(), tt.req)
			if tt.check != nil {
				if !tt.check(err) {
					t.Fatalf("unexpected error: %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Overflow != tt.overflow {
				t.Errorf("overflow = %v, want %v", res.Overflow, tt.overflow)
			}
			if tt.want != "" && (len(res.Outputs) == 0 || res.Outputs[0].Decimal != tt.want) {
				t.Errorf("expected %s, got %+v", tt.want, res.Outputs)
			}
		})
	}
}

func TestCalculateCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewCalculatorService(newEvaluator(t))
	if _, err := svc.Calculate(ctx, calc.Request{Op: "add", Operands: []string{"1", "2"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
