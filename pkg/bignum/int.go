package bignum

// Int is an unsigned integer of fixed capacity. The zero value has no
// capacity yet: it adopts the layout of the operands the first time it is
// used as the receiver of an arithmetic method. Values obtained from a
// Layout are ready to use.
type Int[W Word] struct {
	layout   *Layout[W]
	w        []W
	overflow bool
}

// bind attaches z to the layout shared by the operands, allocating storage
// for a zero-value receiver, and panics if capacities disagree.
func (z *Int[W]) bind(x *Int[W], ys ...*Int[W]) *Layout[W] {
	l := x.mustLayout()
	for _, y := range ys {
		if !l.compatible(y.mustLayout()) {
			panic("bignum: layout mismatch")
		}
	}
	switch {
	case z.layout == nil:
		z.layout = l
		z.w = make([]W, l.words)
	case !z.layout.compatible(l):
		panic("bignum: layout mismatch")
	}
	return l
}

func (x *Int[W]) mustLayout() *Layout[W] {
	if x == nil || x.layout == nil {
		panic("bignum: value is not bound to a layout")
	}
	return x.layout
}

// Layout returns the layout x is bound to, or nil for an unused zero value.
func (x *Int[W]) Layout() *Layout[W] { return x.layout }

// Overflow reports whether any operation since the last ResetOverflow
// produced a result that did not fit in x.
func (x *Int[W]) Overflow() bool { return x.overflow }

// ResetOverflow clears the overflow indicator.
func (z *Int[W]) ResetOverflow() { z.overflow = false }

// SetZero sets z to 0.
func (z *Int[W]) SetZero() *Int[W] {
	z.mustLayout()
	clear(z.w)
	return z
}

// Set copies the words of x into z. The overflow indicator of z is left as is.
func (z *Int[W]) Set(x *Int[W]) *Int[W] {
	z.bind(x)
	copy(z.w, x.w)
	return z
}

// Clone returns a new value with the same words and indicator as x.
func (x *Int[W]) Clone() *Int[W] {
	l := x.mustLayout()
	z := &Int[W]{layout: l, w: make([]W, l.words), overflow: x.overflow}
	copy(z.w, x.w)
	return z
}

// SetUint64 sets z to v. On layouts narrower than 64 bits the high bits that
// do not fit raise the overflow indicator.
func (z *Int[W]) SetUint64(v uint64) *Int[W] {
	wb := z.mustLayout().wbits
	clear(z.w)
	for i := 0; i < len(z.w) && v != 0; i++ {
		z.w[i] = W(v)
		v >>= wb
	}
	if v != 0 {
		z.overflow = true
	}
	return z
}

// Uint64 returns the low 64 bits of x. The second result reports that a
// higher word was non-zero and the value was truncated.
func (x *Int[W]) Uint64() (uint64, bool) {
	wb := x.mustLayout().wbits
	per := int(64 / wb)
	var v uint64
	for i := 0; i < len(x.w) && i < per; i++ {
		v |= uint64(x.w[i]) << (uint(i) * wb)
	}
	for i := per; i < len(x.w); i++ {
		if x.w[i] != 0 {
			return v, true
		}
	}
	return v, false
}

// Words returns a copy of the words of x, least significant first.
func (x *Int[W]) Words() []W {
	x.mustLayout()
	return append([]W(nil), x.w...)
}

// SetWords sets z from ws, least significant first. Non-zero words beyond
// the capacity of z raise the overflow indicator.
func (z *Int[W]) SetWords(ws []W) *Int[W] {
	z.mustLayout()
	clear(z.w)
	n := copy(z.w, ws)
	for _, w := range ws[n:] {
		if w != 0 {
			z.overflow = true
			break
		}
	}
	return z
}

// BitLen returns the length of x in bits, 0 for zero.
func (x *Int[W]) BitLen() int {
	wb := x.mustLayout().wbits
	for i := len(x.w) - 1; i >= 0; i-- {
		if w := x.w[i]; w != 0 {
			n := 0
			for ; w != 0; w >>= 1 {
				n++
			}
			return i*int(wb) + n
		}
	}
	return 0
}

// Bit returns bit i of x. Bits beyond the capacity are 0.
func (x *Int[W]) Bit(i uint) uint {
	wb := x.mustLayout().wbits
	wi := i / wb
	if wi >= uint(len(x.w)) {
		return 0
	}
	return uint(x.w[wi]>>(i%wb)) & 1
}
