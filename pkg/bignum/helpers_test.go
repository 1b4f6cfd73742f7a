package bignum

import (
	"math/big"
	"math/rand"
	"testing"
)

// toBig converts x to a math/big value through its hexadecimal form.
func toBig[W Word](t testing.TB, x *Int[W]) *big.Int {
	t.Helper()
	b, ok := new(big.Int).SetString(x.Text(), 16)
	if !ok {
		t.Fatalf("cannot parse %q back into big.Int", x.Text())
	}
	return b
}

// fromBig converts b, reduced modulo the capacity, into a value of l.
func fromBig[W Word](t testing.TB, l *Layout[W], b *big.Int) *Int[W] {
	t.Helper()
	m := new(big.Int).Mod(b, modulus(l))
	x, err := l.FromHex(m.Text(16))
	if err != nil {
		t.Fatalf("FromHex(%s): %v", m.Text(16), err)
	}
	return x
}

func modulus[W Word](l *Layout[W]) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(l.Bits()))
}

// randomInt returns a value with a random number of significant words so
// that both short and full-width operands are exercised.
func randomInt[W Word](rng *rand.Rand, l *Layout[W]) *Int[W] {
	words := make([]W, l.Words())
	used := 1 + rng.Intn(l.Words())
	for i := 0; i < used; i++ {
		words[i] = W(rng.Uint64())
	}
	return l.New().SetWords(words)
}

func mustPanic(t *testing.T, want string, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic %q, got none", want)
		}
		if msg, ok := r.(string); ok && msg != want {
			t.Fatalf("expected panic %q, got %q", want, msg)
		}
	}()
	f()
}
