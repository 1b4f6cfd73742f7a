package calc

import (
	"context"

	"fortio.org/safecast"

	apperrors "github.com/agbru/bncalc/internal/errors"
	"github.com/agbru/bncalc/pkg/bignum"
)

// evalFunc runs one operation on parsed operands. Operands are owned by the
// call and may be reused as results.
type evalFunc[W bignum.Word] func(ctx context.Context, e *evaluator[W], args []*bignum.Int[W]) ([]*bignum.Int[W], *int, error)

// binary adapts a three-address method such as (*Int).Add.
func binary[W bignum.Word](f func(z, x, y *bignum.Int[W]) *bignum.Int[W]) evalFunc[W] {
	return func(_ context.Context, e *evaluator[W], args []*bignum.Int[W]) ([]*bignum.Int[W], *int, error) {
		return []*bignum.Int[W]{f(e.layout.New(), args[0], args[1])}, nil, nil
	}
}

// unary adapts an in-place method such as (*Int).Incr.
func unary[W bignum.Word](f func(x *bignum.Int[W]) *bignum.Int[W]) evalFunc[W] {
	return func(_ context.Context, _ *evaluator[W], args []*bignum.Int[W]) ([]*bignum.Int[W], *int, error) {
		return []*bignum.Int[W]{f(args[0])}, nil, nil
	}
}

func checkDivisor[W bignum.Word](y *bignum.Int[W]) error {
	if y.IsZero() {
		return apperrors.NewValidationError("b", "division by zero", "0")
	}
	return nil
}

// shiftCount converts the second operand of a shift. Counts beyond the
// capacity all clear the value, so they are clamped to it.
func shiftCount[W bignum.Word](e *evaluator[W], n *bignum.Int[W]) uint {
	bits, _ := safecast.Conv[uint](e.layout.Bits())
	v, truncated := n.Uint64()
	s, err := safecast.Conv[uint](v)
	if truncated || err != nil || s > bits {
		return bits
	}
	return s
}

func builtins[W bignum.Word]() map[string]evalFunc[W] {
	return map[string]evalFunc[W]{
		"add":    binary((*bignum.Int[W]).Add),
		"sub":    binary((*bignum.Int[W]).Sub),
		"mul":    binary((*bignum.Int[W]).Mul),
		"and":    binary((*bignum.Int[W]).And),
		"or":     binary((*bignum.Int[W]).Or),
		"xor":    binary((*bignum.Int[W]).Xor),
		"andnot": binary((*bignum.Int[W]).AndNot),
		"incr":   unary((*bignum.Int[W]).Incr),
		"decr":   unary((*bignum.Int[W]).Decr),
		"not": func(_ context.Context, e *evaluator[W], args []*bignum.Int[W]) ([]*bignum.Int[W], *int, error) {
			return []*bignum.Int[W]{e.layout.New().Not(args[0])}, nil, nil
		},
		"isqrt": func(_ context.Context, e *evaluator[W], args []*bignum.Int[W]) ([]*bignum.Int[W], *int, error) {
			return []*bignum.Int[W]{e.layout.New().Sqrt(args[0])}, nil, nil
		},
		"div": func(_ context.Context, e *evaluator[W], args []*bignum.Int[W]) ([]*bignum.Int[W], *int, error) {
			if err := checkDivisor(args[1]); err != nil {
				return nil, nil, err
			}
			return []*bignum.Int[W]{e.layout.New().Div(args[0], args[1])}, nil, nil
		},
		"mod": func(_ context.Context, e *evaluator[W], args []*bignum.Int[W]) ([]*bignum.Int[W], *int, error) {
			if err := checkDivisor(args[1]); err != nil {
				return nil, nil, err
			}
			return []*bignum.Int[W]{e.layout.New().Mod(args[0], args[1])}, nil, nil
		},
		"divmod": func(_ context.Context, e *evaluator[W], args []*bignum.Int[W]) ([]*bignum.Int[W], *int, error) {
			if err := checkDivisor(args[1]); err != nil {
				return nil, nil, err
			}
			q, r := e.layout.New().DivMod(args[0], args[1], e.layout.New())
			return []*bignum.Int[W]{q, r}, nil, nil
		},
		"pow": func(ctx context.Context, e *evaluator[W], args []*bignum.Int[W]) ([]*bignum.Int[W], *int, error) {
			n, truncated := args[1].Uint64()
			if truncated || n > e.opts.maxExponent {
				return nil, nil, apperrors.NewValidationError("b", "exponent exceeds the configured maximum", args[1].String())
			}
			z := e.layout.New()
			if err := z.ExpContext(ctx, args[0], args[1]); err != nil {
				return nil, nil, err
			}
			return []*bignum.Int[W]{z}, nil, nil
		},
		"shl": func(_ context.Context, e *evaluator[W], args []*bignum.Int[W]) ([]*bignum.Int[W], *int, error) {
			return []*bignum.Int[W]{e.layout.New().Lsh(args[0], shiftCount(e, args[1]))}, nil, nil
		},
		"shr": func(_ context.Context, e *evaluator[W], args []*bignum.Int[W]) ([]*bignum.Int[W], *int, error) {
			return []*bignum.Int[W]{e.layout.New().Rsh(args[0], shiftCount(e, args[1]))}, nil, nil
		},
		"cmp": func(_ context.Context, _ *evaluator[W], args []*bignum.Int[W]) ([]*bignum.Int[W], *int, error) {
			c := args[0].Cmp(args[1])
			return nil, &c, nil
		},
	}
}
