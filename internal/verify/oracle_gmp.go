//go:build gmp

// The GMP oracle needs libgmp and the gmp build tag:
//
//	go test -tags=gmp ./internal/verify

package verify

import (
	"fmt"
	"math/big"

	"github.com/ncw/gmp"
)

// NewOracle returns the GMP-backed oracle.
func NewOracle() Oracle { return GMPOracle{} }

// GMPOracle computes the arithmetic operations with GMP and delegates the
// bitwise ones to BigOracle.
type GMPOracle struct{}

// Name returns "gmp".
func (GMPOracle) Name() string { return "gmp" }

func toGMP(x *big.Int) *gmp.Int {
	z, _ := new(gmp.Int).SetString(x.String(), 10)
	return z
}

func fromGMP(x *gmp.Int) *big.Int {
	z, _ := new(big.Int).SetString(x.String(), 10)
	return z
}

// Compute implements Oracle.
func (o GMPOracle) Compute(op string, x []*big.Int, bits int) (Expected, error) {
	if err := checkArity(op, len(x)); err != nil {
		return Expected{}, err
	}
	g := make([]*gmp.Int, len(x))
	for i, v := range x {
		g[i] = toGMP(v)
	}
	m := new(gmp.Int).Lsh(gmp.NewInt(1), uint(bits))
	wrap := func(v *gmp.Int) Expected {
		over := v.Sign() < 0 || v.Cmp(m) >= 0
		if v.Sign() < 0 {
			v.Add(v, m)
		}
		_, r := new(gmp.Int).QuoRem(v, m, new(gmp.Int))
		return Expected{Outputs: []*big.Int{fromGMP(r)}, Overflow: over}
	}

	switch op {
	case "add":
		return wrap(new(gmp.Int).Add(g[0], g[1])), nil
	case "sub":
		return wrap(new(gmp.Int).Sub(g[0], g[1])), nil
	case "mul":
		return wrap(new(gmp.Int).Mul(g[0], g[1])), nil
	case "div", "mod", "divmod":
		if g[1].Sign() == 0 {
			return Expected{}, fmt.Errorf("verify: %s by zero", op)
		}
		q, r := new(gmp.Int).QuoRem(g[0], g[1], new(gmp.Int))
		switch op {
		case "div":
			return Expected{Outputs: []*big.Int{fromGMP(q)}}, nil
		case "mod":
			return Expected{Outputs: []*big.Int{fromGMP(r)}}, nil
		}
		return Expected{Outputs: []*big.Int{fromGMP(q), fromGMP(r)}}, nil
	case "pow":
		v := new(gmp.Int).Exp(g[0], g[1], m)
		return Expected{Outputs: []*big.Int{fromGMP(v)}, Overflow: powOverflows(x[0], x[1], bits)}, nil
	}
	return BigOracle{}.Compute(op, x, bits)
}
