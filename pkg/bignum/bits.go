package bignum

// And sets z = x & y and returns z.
func (z *Int[W]) And(x, y *Int[W]) *Int[W] {
	z.bind(x, y)
	for i := range z.w {
		z.w[i] = x.w[i] & y.w[i]
	}
	return z
}

// Or sets z = x | y and returns z.
func (z *Int[W]) Or(x, y *Int[W]) *Int[W] {
	z.bind(x, y)
	for i := range z.w {
		z.w[i] = x.w[i] | y.w[i]
	}
	return z
}

// Xor sets z = x ^ y and returns z.
func (z *Int[W]) Xor(x, y *Int[W]) *Int[W] {
	z.bind(x, y)
	for i := range z.w {
		z.w[i] = x.w[i] ^ y.w[i]
	}
	return z
}

// AndNot sets z = x &^ y and returns z.
func (z *Int[W]) AndNot(x, y *Int[W]) *Int[W] {
	z.bind(x, y)
	for i := range z.w {
		z.w[i] = x.w[i] &^ y.w[i]
	}
	return z
}

// Not sets z = ^x, the complement within the capacity, and returns z.
func (z *Int[W]) Not(x *Int[W]) *Int[W] {
	z.bind(x)
	for i := range z.w {
		z.w[i] = ^x.w[i]
	}
	return z
}

// Lsh sets z = x << s and returns z. Bits shifted past the top word are
// discarded without raising the overflow indicator; shifting by the capacity
// or more yields zero.
func (z *Int[W]) Lsh(x *Int[W], s uint) *Int[W] {
	l := z.bind(x)
	wb := l.wbits
	n := len(z.w)
	if s/wb >= uint(n) {
		clear(z.w)
		return z
	}
	ws, bs := int(s/wb), s%wb
	// Descending order keeps z == x safe: word i only reads words <= i.
	for i := n - 1; i >= 0; i-- {
		src := i - ws
		var v W
		if src >= 0 {
			v = x.w[src] << bs
			if bs != 0 && src > 0 {
				v |= x.w[src-1] >> (wb - bs)
			}
		}
		z.w[i] = v
	}
	return z
}

// Rsh sets z = x >> s and returns z. Shifting by the capacity or more yields
// zero.
func (z *Int[W]) Rsh(x *Int[W], s uint) *Int[W] {
	l := z.bind(x)
	wb := l.wbits
	n := len(z.w)
	if s/wb >= uint(n) {
		clear(z.w)
		return z
	}
	ws, bs := int(s/wb), s%wb
	for i := 0; i < n; i++ {
		src := i + ws
		var v W
		if src < n {
			v = x.w[src] >> bs
			if bs != 0 && src+1 < n {
				v |= x.w[src+1] << (wb - bs)
			}
		}
		z.w[i] = v
	}
	return z
}
