package bignum

// DivMod sets z to the quotient x / y and r to the remainder x mod y and
// returns the pair (z, r). r may be nil when the remainder is not needed.
// It panics if y == 0 or if z and r are the same value.
//
// The quotient is built one word at a time. Dividend words are appended,
// most significant first, to a window holding the running remainder; each
// window then yields one quotient digit and leaves the exact remainder for
// the next step.
func (z *Int[W]) DivMod(x, y, r *Int[W]) (*Int[W], *Int[W]) {
	l := z.bind(x, y)
	if r != nil {
		if r == z {
			panic("bignum: quotient and remainder alias")
		}
		r.bind(x)
	}
	if y.IsZero() {
		panic("bignum: division by zero")
	}

	a := l.acquire()
	defer l.release(a)

	n := l.words
	quo := a.alloc(n)
	win := a.alloc(n + 1)

	if cmpVV(x.w, y.w) < 0 {
		copy(win, x.w)
	} else {
		shifted := a.alloc(n + 1)
		ydigits := significantWords(y.w)
		for i := significantWords(x.w) - 1; i >= 0; i-- {
			copy(win[1:], win[:n])
			win[0] = x.w[i]
			d := divDigit(win, y.w, ydigits, shifted, l.wbits)
			copy(quo[1:], quo[:n-1])
			quo[0] = d
		}
	}

	copy(z.w, quo)
	if r != nil {
		copy(r.w, win[:n])
	}
	return z, r
}

// Div sets z = x / y and returns z. It panics if y == 0.
func (z *Int[W]) Div(x, y *Int[W]) *Int[W] {
	l := z.bind(x, y)
	a := l.acquire()
	defer l.release(a)
	rem := l.scratch(a)
	z.DivMod(x, y, &rem)
	return z
}

// Mod sets z = x mod y and returns z. It panics if y == 0.
func (z *Int[W]) Mod(x, y *Int[W]) *Int[W] {
	l := z.bind(x, y)
	a := l.acquire()
	defer l.release(a)
	quo := l.scratch(a)
	quo.DivMod(x, y, z)
	return z
}

// divDigit returns the quotient digit of win / d and leaves the remainder in
// win. win has one more word than d and satisfies win < d * base, so the
// digit fits in a word. shifted is scratch of len(win) words.
//
// When both operands are single words the native division is used.
// Otherwise d is subtracted from the window and the subtractions counted,
// taking multiples d * 2^b from the top bit down so that at most one
// subtraction per digit bit is needed.
func divDigit[W Word](win, d []W, ddigits int, shifted []W, wb uint) W {
	if ddigits == 1 && significantWords(win) == 1 {
		q := win[0] / d[0]
		win[0] %= d[0]
		return q
	}
	var q W
	for b := int(wb) - 1; b >= 0; b-- {
		shlInto(shifted, d, uint(b), wb)
		if cmpVV(win, shifted) >= 0 {
			subVV(win, win, shifted)
			q |= W(1) << uint(b)
		}
	}
	return q
}
