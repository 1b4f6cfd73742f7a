// Package service wraps an evaluator with the input limits and optional
// cross-check that the HTTP server and the REPL share.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/agbru/bncalc/internal/calc"
	"github.com/agbru/bncalc/internal/verify"
)

// ErrOperandTooLong is returned when an operand exceeds the configured
// maximum length, before any parsing takes place.
var ErrOperandTooLong = errors.New("operand exceeds the maximum length")

// Service evaluates requests on behalf of a front end.
type Service interface {
	// Calculate validates and evaluates req. A result is returned alongside
	// an OverflowError in strict mode.
	Calculate(ctx context.Context, req calc.Request) (calc.Result, error)
	// Layout describes the capacity of the underlying evaluator.
	Layout() calc.LayoutInfo
	// Operations lists the operations the service accepts.
	Operations() []calc.Operation
}

// CalculatorService is the default Service.
type CalculatorService struct {
	evaluator     calc.Evaluator
	oracle        verify.Oracle
	maxOperandLen int
}

var _ Service = (*CalculatorService)(nil)

// Option configures a CalculatorService.
type Option func(*CalculatorService)

// WithOracle enables verification of every successful result against o.
func WithOracle(o verify.Oracle) Option {
	return func(s *CalculatorService) { s.oracle = o }
}

// WithMaxOperandLength bounds the textual length of each operand. Zero
// derives the bound from the layout.
func WithMaxOperandLength(n int) Option {
	return func(s *CalculatorService) {
		if n > 0 {
			s.maxOperandLen = n
		}
	}
}

// NewCalculatorService returns a service over e.
func NewCalculatorService(e calc.Evaluator, opts ...Option) *CalculatorService {
	s := &CalculatorService{evaluator: e}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxOperandLen == 0 {
		s.maxOperandLen = DefaultMaxOperandLength(e.Layout())
	}
	return s
}

// DefaultMaxOperandLength allows a full-width decimal operand plus a
// prefix and generous digit grouping.
func DefaultMaxOperandLength(l calc.LayoutInfo) int {
	decimalDigits := l.Bits*302/1000 + 1
	return 2 * (decimalDigits + 2)
}

// Calculate implements Service.
func (s *CalculatorService) Calculate(ctx context.Context, req calc.Request) (calc.Result, error) {
	for i, operand := range req.Operands {
		if len(operand) > s.maxOperandLen {
			return calc.Result{Op: req.Op, Layout: s.evaluator.Layout()},
				fmt.Errorf("operand %d (%d characters, limit %d): %w", i+1, len(operand), s.maxOperandLen, ErrOperandTooLong)
		}
	}

	res, err := s.evaluator.Evaluate(ctx, req)
	if err != nil || s.oracle == nil {
		return res, err
	}
	if err := verify.Check(s.oracle, res); err != nil {
		return res, err
	}
	return res, nil
}

// Layout implements Service.
func (s *CalculatorService) Layout() calc.LayoutInfo { return s.evaluator.Layout() }

// Operations implements Service.
func (s *CalculatorService) Operations() []calc.Operation { return s.evaluator.Operations() }
