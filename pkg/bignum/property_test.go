package bignum

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genWords generates the little-endian words of a 128-bit value.
func genWords() gopter.Gen {
	return gen.SliceOfN(layout128.Words(), gen.UInt32())
}

func fromWords(ws []uint32) *Int[uint32] {
	return layout128.New().SetWords(ws)
}

func TestArithmeticProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("sub undoes add", prop.ForAll(
		func(a, b []uint32) bool {
			x, y := fromWords(a), fromWords(b)
			z := layout128.New().Add(x, y)
			z.Sub(z, y)
			return z.Equal(x)
		},
		genWords(), genWords(),
	))

	properties.Property("add overflows iff sum is below an operand", prop.ForAll(
		func(a, b []uint32) bool {
			x, y := fromWords(a), fromWords(b)
			z := layout128.New().Add(x, y)
			return z.Overflow() == z.Less(x)
		},
		genWords(), genWords(),
	))

	properties.Property("divmod reconstructs the dividend", prop.ForAll(
		func(a, b []uint32) bool {
			x, y := fromWords(a), fromWords(b)
			if y.IsZero() {
				y.Incr()
			}
			q, r := layout128.New(), layout128.New()
			q.DivMod(x, y, r)
			back := layout128.New().Mul(q, y)
			back.Add(back, r)
			return r.Less(y) && back.Equal(x) && !back.Overflow()
		},
		genWords(), genWords(),
	))

	properties.Property("divmod by a small divisor matches math/big", prop.ForAll(
		func(a []uint32, d uint32) bool {
			if d == 0 {
				d = 1
			}
			x := fromWords(a)
			q, r := layout128.New(), layout128.New()
			q.DivMod(x, layout128.FromUint64(uint64(d)), r)
			bq, br := new(big.Int).QuoRem(toBig(t, x), big.NewInt(int64(d)), new(big.Int))
			return toBig(t, q).Cmp(bq) == 0 && toBig(t, r).Cmp(br) == 0
		},
		genWords(), gen.UInt32(),
	))

	properties.Property("comparison is a total order", prop.ForAll(
		func(a, b []uint32) bool {
			x, y := fromWords(a), fromWords(b)
			c := x.Cmp(y)
			return c == -y.Cmp(x) &&
				(c < 0) == x.Less(y) &&
				(c > 0) == x.Greater(y) &&
				(c == 0) == x.Equal(y) &&
				x.Cmp(y) == toBig(t, x).Cmp(toBig(t, y))
		},
		genWords(), genWords(),
	))

	properties.Property("shifting left then right clears the high bits", prop.ForAll(
		func(a []uint32, s uint) bool {
			x := fromWords(a)
			z := layout128.New().Lsh(x, s)
			z.Rsh(z, s)
			mask := layout128.Max()
			mask.Rsh(mask, s)
			return z.Equal(layout128.New().And(x, mask))
		},
		genWords(), gen.UIntRange(0, 160),
	))

	properties.Property("hex and decimal round trip", prop.ForAll(
		func(a []uint32) bool {
			x := fromWords(a)
			h, err := layout128.FromHex(x.Hex())
			if err != nil {
				return false
			}
			d, err := layout128.FromDecimal(x.Decimal())
			if err != nil {
				return false
			}
			return h.Equal(x) && d.Equal(x) && x.Decimal() == toBig(t, x).String()
		},
		genWords(),
	))

	properties.Property("sqrt brackets the operand", prop.ForAll(
		func(a []uint32) bool {
			x := fromWords(a)
			root := layout128.New().Sqrt(x)
			return toBig(t, root).Cmp(new(big.Int).Sqrt(toBig(t, x))) == 0
		},
		genWords(),
	))

	properties.TestingRun(t)
}
