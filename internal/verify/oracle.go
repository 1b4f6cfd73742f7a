// Package verify cross-checks evaluation results against an exact reference.
// The reference computes every operation on unbounded integers and reduces
// the outcome modulo 2^bits, which is the contract of the fixed-capacity
// library: wrapped value plus overflow flag.
package verify

import (
	"fmt"
	"math/big"

	"github.com/agbru/bncalc/internal/calc"
)

// Expected is the reference outcome of one operation.
type Expected struct {
	Outputs  []*big.Int
	Cmp      *int
	Overflow bool
}

// Oracle computes reference outcomes.
type Oracle interface {
	// Name identifies the backend ("math/big" or "gmp").
	Name() string
	// Compute evaluates op on operands reduced to a bits-bit capacity.
	Compute(op string, operands []*big.Int, bits int) (Expected, error)
}

// MismatchError reports a result that disagrees with the oracle.
type MismatchError struct {
	Op     string
	Output string
	Want   string
	Got    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: %s mismatch: want %s, got %s", e.Op, e.Output, e.Want, e.Got)
}

// Check recomputes res with o and returns a *MismatchError on the first
// difference in outputs, comparison or overflow state.
func Check(o Oracle, res calc.Result) error {
	operands := make([]*big.Int, len(res.Operands))
	for i, in := range res.Operands {
		v, ok := new(big.Int).SetString(in.Decimal, 10)
		if !ok {
			return fmt.Errorf("verify: operand %s is not decimal: %q", in.Name, in.Decimal)
		}
		operands[i] = v
	}
	want, err := o.Compute(res.Op, operands, res.Layout.Bits)
	if err != nil {
		return err
	}
	if len(want.Outputs) != len(res.Outputs) {
		return &MismatchError{Op: res.Op, Output: "outputs",
			Want: fmt.Sprint(len(want.Outputs)), Got: fmt.Sprint(len(res.Outputs))}
	}
	for i, out := range res.Outputs {
		if w := want.Outputs[i].String(); w != out.Decimal {
			return &MismatchError{Op: res.Op, Output: out.Name, Want: w, Got: out.Decimal}
		}
	}
	if (want.Cmp == nil) != (res.Cmp == nil) || want.Cmp != nil && *want.Cmp != *res.Cmp {
		return &MismatchError{Op: res.Op, Output: "cmp", Want: fmtCmp(want.Cmp), Got: fmtCmp(res.Cmp)}
	}
	if want.Overflow != res.Overflow {
		return &MismatchError{Op: res.Op, Output: "overflow",
			Want: fmt.Sprint(want.Overflow), Got: fmt.Sprint(res.Overflow)}
	}
	return nil
}

func fmtCmp(c *int) string {
	if c == nil {
		return "none"
	}
	return fmt.Sprint(*c)
}

// BigOracle is the math/big reference.
type BigOracle struct{}

// Name returns "math/big".
func (BigOracle) Name() string { return "math/big" }

// Compute implements Oracle.
func (BigOracle) Compute(op string, x []*big.Int, bits int) (Expected, error) {
	m := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	wrap := func(v *big.Int) Expected {
		over := v.Sign() < 0 || v.Cmp(m) >= 0
		return Expected{Outputs: []*big.Int{v.Mod(v, m)}, Overflow: over}
	}
	exact := func(vs ...*big.Int) Expected { return Expected{Outputs: vs} }

	if err := checkArity(op, len(x)); err != nil {
		return Expected{}, err
	}
	switch op {
	case "add":
		return wrap(new(big.Int).Add(x[0], x[1])), nil
	case "sub":
		return wrap(new(big.Int).Sub(x[0], x[1])), nil
	case "mul":
		return wrap(new(big.Int).Mul(x[0], x[1])), nil
	case "incr":
		return wrap(new(big.Int).Add(x[0], big.NewInt(1))), nil
	case "decr":
		return wrap(new(big.Int).Sub(x[0], big.NewInt(1))), nil
	case "div", "mod", "divmod":
		if x[1].Sign() == 0 {
			return Expected{}, fmt.Errorf("verify: %s by zero", op)
		}
		q, r := new(big.Int).QuoRem(x[0], x[1], new(big.Int))
		switch op {
		case "div":
			return exact(q), nil
		case "mod":
			return exact(r), nil
		}
		return exact(q, r), nil
	case "pow":
		return Expected{
			Outputs:  []*big.Int{new(big.Int).Exp(x[0], x[1], m)},
			Overflow: powOverflows(x[0], x[1], bits),
		}, nil
	case "isqrt":
		return exact(new(big.Int).Sqrt(x[0])), nil
	case "and":
		return exact(new(big.Int).And(x[0], x[1])), nil
	case "or":
		return exact(new(big.Int).Or(x[0], x[1])), nil
	case "xor":
		return exact(new(big.Int).Xor(x[0], x[1])), nil
	case "andnot":
		return exact(new(big.Int).AndNot(x[0], x[1])), nil
	case "not":
		ones := new(big.Int).Sub(m, big.NewInt(1))
		return exact(ones.Xor(ones, x[0])), nil
	case "shl":
		v := new(big.Int).Lsh(x[0], shiftCount(x[1], bits))
		return exact(v.Mod(v, m)), nil
	case "shr":
		return exact(new(big.Int).Rsh(x[0], shiftCount(x[1], bits))), nil
	case "cmp":
		c := x[0].Cmp(x[1])
		return Expected{Cmp: &c}, nil
	}
	return Expected{}, fmt.Errorf("verify: unsupported operation %q", op)
}

func checkArity(op string, n int) error {
	desc, ok := calc.Lookup(op)
	if !ok {
		return fmt.Errorf("verify: unsupported operation %q", op)
	}
	if desc.Arity != n {
		return fmt.Errorf("verify: %s takes %d operand(s), got %d", op, desc.Arity, n)
	}
	return nil
}

// powOverflows reports whether base**exp >= 2^bits without materializing
// huge powers: for base >= 2 an exponent of at least bits always overflows.
func powOverflows(base, exp *big.Int, bits int) bool {
	if base.Cmp(big.NewInt(2)) < 0 || exp.Sign() == 0 {
		return false
	}
	if exp.Cmp(big.NewInt(int64(bits))) >= 0 {
		return true
	}
	p := new(big.Int).Exp(base, exp, nil)
	return p.BitLen() > bits
}

// shiftCount clamps a shift operand to the capacity.
func shiftCount(n *big.Int, bits int) uint {
	if n.Cmp(big.NewInt(int64(bits))) > 0 {
		return uint(bits)
	}
	return uint(n.Uint64())
}
