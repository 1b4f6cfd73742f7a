package bignum

import (
	"errors"
	"strings"
)

const hexDigits = "0123456789abcdef"

func hexValue(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// SetHex sets z to the value of the big-endian hexadecimal string s and
// returns z. There is no prefix; each word takes wordBits/4 characters and
// the string may be shorter than the fixed width. Input ends at the first
// NUL byte, if any.
//
// Digits beyond the capacity are dropped. If any of them is non-zero the
// overflow indicator of z is raised. On a syntax error z is left unchanged
// and a *SyntaxError is returned.
func (z *Int[W]) SetHex(s string) (*Int[W], error) {
	wb := z.mustLayout().wbits
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	for i := 0; i < len(s); i++ {
		if _, ok := hexValue(s[i]); !ok {
			return nil, &SyntaxError{Func: "SetHex", Input: s, Offset: i}
		}
	}

	clear(z.w)
	per := int(wb / 4)
	fits := len(z.w) * per
	for k := 0; k < len(s) && k < fits; k++ {
		v, _ := hexValue(s[len(s)-1-k])
		z.w[k/per] |= W(v) << (4 * uint(k%per))
	}
	for k := fits; k < len(s); k++ {
		if s[len(s)-1-k] != '0' {
			z.overflow = true
			break
		}
	}
	return z, nil
}

// PutHex writes the low-order len(buf) hexadecimal digits of x into buf,
// big-endian and zero-padded, and returns the number of digits written.
// A buffer shorter than x.Layout().HexDigits() receives only the low digits.
func (x *Int[W]) PutHex(buf []byte) int {
	wb := x.mustLayout().wbits
	per := int(wb / 4)
	for k := range buf {
		var d W
		if wi := k / per; wi < len(x.w) {
			d = x.w[wi] >> (4 * uint(k%per)) & 0xf
		}
		buf[len(buf)-1-k] = hexDigits[int(d)]
	}
	return len(buf)
}

// AppendHex appends the fixed-width hexadecimal form of x to dst.
func (x *Int[W]) AppendHex(dst []byte) []byte {
	n := x.mustLayout().HexDigits()
	start := len(dst)
	dst = append(dst, make([]byte, n)...)
	x.PutHex(dst[start:])
	return dst
}

// Hex returns the fixed-width, zero-padded, lower-case hexadecimal form of x.
func (x *Int[W]) Hex() string {
	return string(x.AppendHex(nil))
}

// Text returns the hexadecimal form of x without leading zeros; zero is "0".
func (x *Int[W]) Text() string {
	s := strings.TrimLeft(x.Hex(), "0")
	if s == "" {
		return "0"
	}
	return s
}

// MarshalText implements encoding.TextMarshaler using the fixed-width
// hexadecimal form.
func (x *Int[W]) MarshalText() ([]byte, error) {
	if x == nil || x.layout == nil {
		return nil, errors.New("bignum: MarshalText on unbound value")
	}
	return x.AppendHex(nil), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. z must already be bound
// to a layout.
func (z *Int[W]) UnmarshalText(text []byte) error {
	if z.layout == nil {
		return errors.New("bignum: UnmarshalText on unbound value")
	}
	_, err := z.SetHex(string(text))
	return err
}
