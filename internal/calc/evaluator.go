// Package calc evaluates named operations on fixed-capacity integers. It
// parses textual operands into bignum values of the configured layout,
// rejects inputs that would violate the library's preconditions, runs the
// operation and reports the outputs together with the overflow state.
package calc

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/pkg/bignum"
)

// Request is one operation to evaluate.
type Request struct {
	// Op is the operation name.
	Op string
	// Operands holds the textual operands. A 0x prefix selects hexadecimal,
	// 0d selects decimal; otherwise Input (or the evaluator default) applies.
	Operands []string
	// Input overrides the default base of unprefixed operands.
	Input Format
}

// Output is one value in both textual forms.
type Output struct {
	Name    string
	Hex     string
	Decimal string
}

// LayoutInfo describes the capacity an evaluator works with.
type LayoutInfo struct {
	Bits      int
	WordBits  int
	Words     int
	HexDigits int
}

func (l LayoutInfo) String() string {
	return fmt.Sprintf("%d bits (%d x %d-bit words)", l.Bits, l.Words, l.WordBits)
}

// Result is the outcome of an evaluation.
type Result struct {
	Op       string
	Operands []Output
	Outputs  []Output
	// Cmp is set by cmp only.
	Cmp      *int
	Overflow bool
	Duration time.Duration
	Layout   LayoutInfo
}

// Evaluator evaluates requests against one layout. Implementations are safe
// for concurrent use.
type Evaluator interface {
	Evaluate(ctx context.Context, req Request) (Result, error)
	Layout() LayoutInfo
	Operations() []Operation
}

// NewEvaluator returns an Evaluator over bits-bit values stored in
// wordBits-bit words.
func NewEvaluator(wordBits, bits int, opts ...Option) (Evaluator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch wordBits {
	case 8:
		return newEvaluator[uint8](bits, o)
	case 16:
		return newEvaluator[uint16](bits, o)
	case 32:
		return newEvaluator[uint32](bits, o)
	default:
		return nil, apperrors.NewConfigError("unsupported word width %d", wordBits)
	}
}

type evaluator[W bignum.Word] struct {
	layout *bignum.Layout[W]
	opts   options
	funcs  map[string]evalFunc[W]
}

func newEvaluator[W bignum.Word](bits int, o options) (*evaluator[W], error) {
	l, err := bignum.NewLayout[W](bits)
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	return &evaluator[W]{layout: l, opts: o, funcs: builtins[W]()}, nil
}

func (e *evaluator[W]) Layout() LayoutInfo {
	return LayoutInfo{
		Bits:      e.layout.Bits(),
		WordBits:  e.layout.WordBits(),
		Words:     e.layout.Words(),
		HexDigits: e.layout.HexDigits(),
	}
}

func (e *evaluator[W]) Operations() []Operation { return Operations() }

func (e *evaluator[W]) Evaluate(ctx context.Context, req Request) (res Result, err error) {
	res = Result{Op: req.Op, Layout: e.Layout()}
	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		e.opts.observer.Observe(Event{
			Op:       req.Op,
			Layout:   res.Layout,
			Duration: res.Duration,
			Overflow: res.Overflow,
			Err:      err,
		})
	}()

	op, ok := Lookup(req.Op)
	if !ok {
		return res, apperrors.NewValidationError("op", "unknown operation", req.Op)
	}
	if len(req.Operands) != op.Arity {
		return res, apperrors.NewValidationError("operands",
			fmt.Sprintf("%s takes %d operand(s), got %d", op.Name, op.Arity, len(req.Operands)), len(req.Operands))
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	input := req.Input
	if input == "" {
		input = e.opts.input
	}
	args := make([]*bignum.Int[W], len(req.Operands))
	for i, s := range req.Operands {
		x, err := e.parse(operandName(i), s, input)
		if err != nil {
			return res, err
		}
		args[i] = x
		res.Operands = append(res.Operands, output(operandName(i), x))
	}

	outs, cmp, err := e.funcs[op.Name](ctx, e, args)
	if err != nil {
		return res, err
	}
	res.Cmp = cmp
	for i, z := range outs {
		res.Outputs = append(res.Outputs, output(op.Outputs[i], z))
		res.Overflow = res.Overflow || z.Overflow()
	}
	if res.Overflow && e.opts.strict {
		return res, apperrors.NewOverflowError(op.Name, e.layout.Bits())
	}
	return res, nil
}

// parse reads one operand, rejecting values that do not fit the layout.
func (e *evaluator[W]) parse(name, s string, input Format) (*bignum.Int[W], error) {
	digits, base := splitPrefix(s, input)
	if digits == "" {
		return nil, apperrors.NewValidationError(name, "empty operand", s)
	}
	var (
		x   *bignum.Int[W]
		err error
	)
	if base == FormatDec {
		x, err = e.layout.FromDecimal(digits)
	} else {
		x, err = e.layout.FromHex(digits)
	}
	var syntaxErr *bignum.SyntaxError
	if errors.As(err, &syntaxErr) {
		return nil, apperrors.NewValidationError(name,
			fmt.Sprintf("invalid %s digit at offset %d", base, syntaxErr.Offset), s)
	}
	if err != nil {
		return nil, err
	}
	if x.Overflow() {
		return nil, apperrors.NewValidationError(name,
			fmt.Sprintf("value does not fit the %d-bit layout", e.layout.Bits()), s)
	}
	return x, nil
}

func output[W bignum.Word](name string, x *bignum.Int[W]) Output {
	return Output{Name: name, Hex: x.Hex(), Decimal: x.Decimal()}
}

func operandName(i int) string {
	return string(rune('a' + i))
}
