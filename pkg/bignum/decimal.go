package bignum

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// decimalChunk returns the largest power of ten that fits in a word of wb
// bits together with its exponent.
func decimalChunk(wb uint) (uint64, int) {
	switch wb {
	case 8:
		return 100, 2
	case 16:
		return 10000, 4
	default:
		return 1000000000, 9
	}
}

// Decimal returns the base-10 form of x, computed by repeated division by
// the largest power of ten that fits in one word.
func (x *Int[W]) Decimal() string {
	l := x.mustLayout()
	if x.IsZero() {
		return "0"
	}
	chunk, width := decimalChunk(l.wbits)

	a := l.acquire()
	defer l.release(a)
	q, r, d := l.scratch(a), l.scratch(a), l.scratch(a)
	q.Set(x)
	d.SetUint64(chunk)

	var parts []uint64
	for !q.IsZero() {
		q.DivMod(&q, &d, &r)
		v, _ := r.Uint64()
		parts = append(parts, v)
	}

	var sb strings.Builder
	sb.Grow(len(parts) * width)
	sb.WriteString(strconv.FormatUint(parts[len(parts)-1], 10))
	for i := len(parts) - 2; i >= 0; i-- {
		s := strconv.FormatUint(parts[i], 10)
		sb.WriteString(strings.Repeat("0", width-len(s)))
		sb.WriteString(s)
	}
	return sb.String()
}

// SetDecimal sets z to the value of the base-10 string s and returns z.
// Values beyond the capacity wrap and raise the overflow indicator. On a
// syntax error z is left unchanged and a *SyntaxError is returned.
func (z *Int[W]) SetDecimal(s string) (*Int[W], error) {
	l := z.mustLayout()
	if s == "" {
		return nil, &SyntaxError{Func: "SetDecimal", Input: s}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, &SyntaxError{Func: "SetDecimal", Input: s, Offset: i}
		}
	}
	_, width := decimalChunk(l.wbits)

	a := l.acquire()
	defer l.release(a)
	acc, scale, part := l.scratch(a), l.scratch(a), l.scratch(a)

	first := len(s) % width
	if first == 0 {
		first = width
	}
	for start, end := 0, first; start < len(s); start, end = end, end+width {
		v, _ := strconv.ParseUint(s[start:end], 10, 64)
		scale.SetUint64(pow10(end - start))
		acc.Mul(&acc, &scale)
		acc.Add(&acc, part.SetUint64(v))
	}

	copy(z.w, acc.w)
	if acc.overflow {
		z.overflow = true
	}
	return z, nil
}

func pow10(n int) uint64 {
	p := uint64(1)
	for ; n > 0; n-- {
		p *= 10
	}
	return p
}

// String returns the decimal form of x.
func (x *Int[W]) String() string {
	if x == nil || x.layout == nil {
		return "<nil>"
	}
	return x.Decimal()
}

// Format implements fmt.Formatter. It accepts 'x' and 'X' for minimal
// hexadecimal and 'd', 's' and 'v' for decimal.
func (x *Int[W]) Format(s fmt.State, ch rune) {
	if x == nil || x.layout == nil {
		io.WriteString(s, "<nil>")
		return
	}
	switch ch {
	case 'x':
		io.WriteString(s, x.Text())
	case 'X':
		io.WriteString(s, strings.ToUpper(x.Text()))
	case 'd', 's', 'v':
		io.WriteString(s, x.Decimal())
	default:
		fmt.Fprintf(s, "%%!%c(bignum.Int=%s)", ch, x.Decimal())
	}
}
