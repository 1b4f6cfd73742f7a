package bignum

// Cmp compares x and y and returns -1 if x < y, 0 if x == y and +1 if x > y.
func (x *Int[W]) Cmp(y *Int[W]) int {
	x.same(y)
	return cmpVV(x.w, y.w)
}

// Greater reports whether x > y.
func (x *Int[W]) Greater(y *Int[W]) bool {
	x.same(y)
	for i := len(x.w) - 1; i >= 0; i-- {
		if x.w[i] != y.w[i] {
			return x.w[i] > y.w[i]
		}
	}
	return false
}

// Less reports whether x < y.
func (x *Int[W]) Less(y *Int[W]) bool {
	x.same(y)
	for i := len(x.w) - 1; i >= 0; i-- {
		if x.w[i] != y.w[i] {
			return x.w[i] < y.w[i]
		}
	}
	return false
}

// Geq reports whether x >= y.
func (x *Int[W]) Geq(y *Int[W]) bool {
	return !x.Less(y)
}

// Leq reports whether x <= y.
func (x *Int[W]) Leq(y *Int[W]) bool {
	return !x.Greater(y)
}

// Equal reports whether x == y.
func (x *Int[W]) Equal(y *Int[W]) bool {
	x.same(y)
	for i := len(x.w) - 1; i >= 0; i-- {
		if x.w[i] != y.w[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether x == 0.
func (x *Int[W]) IsZero() bool {
	x.mustLayout()
	for i := len(x.w) - 1; i >= 0; i-- {
		if x.w[i] != 0 {
			return false
		}
	}
	return true
}

func (x *Int[W]) same(y *Int[W]) {
	if !x.mustLayout().compatible(y.mustLayout()) {
		panic("bignum: layout mismatch")
	}
}
