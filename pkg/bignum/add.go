package bignum

// Add sets z = x + y and returns z. A carry out of the top word raises the
// overflow indicator of z; the result wraps.
func (z *Int[W]) Add(x, y *Int[W]) *Int[W] {
	l := z.bind(x, y)
	if addVV(z.w, x.w, y.w, l.wbits) != 0 {
		z.overflow = true
	}
	return z
}

// Sub sets z = x - y and returns z. If x < y the result wraps modulo the
// capacity and the overflow indicator of z is raised.
func (z *Int[W]) Sub(x, y *Int[W]) *Int[W] {
	z.bind(x, y)
	if subVV(z.w, x.w, y.w) != 0 {
		z.overflow = true
	}
	return z
}

// Incr adds one to z in place. Incrementing the maximum value wraps to zero
// and raises the overflow indicator.
func (z *Int[W]) Incr() *Int[W] {
	z.mustLayout()
	for i := range z.w {
		z.w[i]++
		if z.w[i] != 0 {
			return z
		}
	}
	z.overflow = true
	return z
}

// Decr subtracts one from z in place. Decrementing zero wraps to the maximum
// value and raises the overflow indicator.
func (z *Int[W]) Decr() *Int[W] {
	z.mustLayout()
	for i := range z.w {
		z.w[i]--
		if z.w[i] != ^W(0) {
			return z
		}
	}
	z.overflow = true
	return z
}
