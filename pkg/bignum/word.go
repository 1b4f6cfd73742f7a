package bignum

import "math/bits"

// Word is the digit type of an Int.
type Word interface {
	~uint8 | ~uint16 | ~uint32
}

// wordBits returns the width of W in bits.
func wordBits[W Word]() uint {
	return uint(bits.Len64(uint64(^W(0))))
}

// significantWords returns the index of the highest non-zero word plus one.
// A zero value reports 1.
func significantWords[W Word](x []W) int {
	for i := len(x) - 1; i > 0; i-- {
		if x[i] != 0 {
			return i + 1
		}
	}
	return 1
}

// cmpVV compares two equal-length word vectors from the most significant word down.
func cmpVV[W Word](x, y []W) int {
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] > y[i]:
			return 1
		case x[i] < y[i]:
			return -1
		}
	}
	return 0
}

// addVV sets z = x + y word by word and returns the carry out of the top word.
func addVV[W Word](z, x, y []W, wb uint) W {
	var carry uint64
	for i := range z {
		t := uint64(x[i]) + uint64(y[i]) + carry
		z[i] = W(t)
		carry = t >> wb
	}
	return W(carry)
}

// subVV sets z = x - y word by word and returns the borrow out of the top word.
func subVV[W Word](z, x, y []W) W {
	var borrow uint64
	for i := range z {
		t := uint64(x[i]) - uint64(y[i]) - borrow
		z[i] = W(t)
		borrow = t >> 63
	}
	return W(borrow)
}

// mulAddVWW sets z = x*y + c and returns the carry out of the top word.
// The double-width product of two words plus a word always fits in 64 bits.
func mulAddVWW[W Word](z, x []W, y W, c uint64, wb uint) uint64 {
	for i := range z {
		t := uint64(x[i])*uint64(y) + c
		z[i] = W(t)
		c = t >> wb
	}
	return c
}

// shlInto sets dst = src << s for 0 <= s < wb, where len(dst) == len(src)+1.
func shlInto[W Word](dst, src []W, s, wb uint) {
	n := len(src)
	if s == 0 {
		copy(dst, src)
		dst[n] = 0
		return
	}
	dst[n] = src[n-1] >> (wb - s)
	for i := n - 1; i > 0; i-- {
		dst[i] = src[i]<<s | src[i-1]>>(wb-s)
	}
	dst[0] = src[0] << s
}
