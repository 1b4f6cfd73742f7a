package bignum

// Mul sets z = x * y using schoolbook multiplication and returns z.
//
// Row i holds x * y[i] shifted by i words; only the words below the capacity
// are computed and the row is accumulated into the running sum. A carry out
// of a row, a non-zero partial product that falls entirely beyond the top
// word, or a carry out of the accumulation raises the overflow indicator.
func (z *Int[W]) Mul(x, y *Int[W]) *Int[W] {
	l := z.bind(x, y)
	a := l.acquire()
	defer l.release(a)

	n := l.words
	sum := a.alloc(n)
	row := a.alloc(n)
	overflow := false

	for i := 0; i < n; i++ {
		yi := y.w[i]
		if yi == 0 {
			continue
		}
		clear(row[:i])
		if mulAddVWW(row[i:], x.w[:n-i], yi, 0, l.wbits) != 0 {
			overflow = true
		}
		if !overflow {
			for _, xj := range x.w[n-i:] {
				if xj != 0 {
					overflow = true
					break
				}
			}
		}
		if addVV(sum, sum, row, l.wbits) != 0 {
			overflow = true
		}
	}

	copy(z.w, sum)
	if overflow {
		z.overflow = true
	}
	return z
}
