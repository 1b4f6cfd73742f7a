package bignum

import "context"

// expCheckInterval is the number of multiplications between two context
// checks in ExpContext.
const expCheckInterval = 1024

// Exp sets z = x**y and returns z. y == 0 yields 1.
//
// The result is built by multiplying by x while counting a copy of y down
// to zero, so the cost is y multiplications. Overflow in any multiplication
// raises the indicator of z.
func (z *Int[W]) Exp(x, y *Int[W]) *Int[W] {
	_ = z.ExpContext(context.Background(), x, y)
	return z
}

// ExpContext is like Exp but checks ctx periodically and returns its error
// if it is done. z is left unchanged in that case.
func (z *Int[W]) ExpContext(ctx context.Context, x, y *Int[W]) error {
	l := z.bind(x, y)
	a := l.acquire()
	defer l.release(a)

	base, count, acc := l.scratch(a), l.scratch(a), l.scratch(a)
	base.Set(x)
	count.Set(y)
	acc.SetUint64(1)

	for i := 0; !count.IsZero(); i++ {
		if i%expCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		acc.Mul(&acc, &base)
		count.Decr()
	}

	copy(z.w, acc.w)
	if acc.overflow {
		z.overflow = true
	}
	return nil
}

// Sqrt sets z to the floor of the square root of x and returns z.
//
// It binary-searches the candidates between 0 and x, comparing mid*mid
// against x. A square that overflows the capacity counts as too large.
func (z *Int[W]) Sqrt(x *Int[W]) *Int[W] {
	l := z.bind(x)
	a := l.acquire()
	defer l.release(a)

	lo, hi, mid, sq, root := l.scratch(a), l.scratch(a), l.scratch(a), l.scratch(a), l.scratch(a)
	hi.Set(x)

	for lo.Leq(&hi) {
		mid.Sub(&hi, &lo)
		mid.Rsh(&mid, 1)
		mid.Add(&mid, &lo)

		sq.ResetOverflow()
		sq.Mul(&mid, &mid)
		if !sq.Overflow() && sq.Leq(x) {
			root.Set(&mid)
			lo.Set(&mid).Incr()
			continue
		}
		if mid.IsZero() {
			break
		}
		hi.Set(&mid).Decr()
	}

	copy(z.w, root.w)
	return z
}
