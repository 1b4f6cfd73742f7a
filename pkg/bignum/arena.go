package bignum

// arena hands out word slices from one pre-allocated buffer. Everything
// allocated from it is released at once when the arena goes back to its
// layout's pool.
//
// An arena is not safe for concurrent use; each operation acquires its own.
type arena[W Word] struct {
	buf []W
	off int
}

// alloc returns a zeroed slice of n words. If the buffer is exhausted it
// falls back to a regular allocation so callers never see a short slice.
func (a *arena[W]) alloc(n int) []W {
	if a.off+n > len(a.buf) {
		return make([]W, n)
	}
	s := a.buf[a.off : a.off+n : a.off+n]
	a.off += n
	clear(s)
	return s
}

// remaining returns the number of words still available.
func (a *arena[W]) remaining() int {
	return len(a.buf) - a.off
}
