package bignum

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidLayout is returned by NewLayout for capacities that cannot be
// represented with the requested word width.
var ErrInvalidLayout = errors.New("bignum: invalid layout")

// minWords is the smallest supported capacity in words.
const minWords = 2

// Layout fixes the capacity of a family of Int values: the word type W and
// the number of words. Values created from the same layout, or from layouts
// with the same word count, can be combined in one operation.
//
// A Layout owns a pool of scratch arenas used by multiplication, division and
// the derived operations, so steady-state arithmetic does not allocate.
// Layouts are safe for concurrent use and must not be copied.
type Layout[W Word] struct {
	words  int
	wbits  uint
	arenas sync.Pool
}

// Default is the 1024-bit layout of 32-bit words.
var Default = MustLayout[uint32](1024)

// NewLayout returns a layout holding totalBits bits in words of type W.
// totalBits must be a positive multiple of the word width giving at least
// two words.
func NewLayout[W Word](totalBits int) (*Layout[W], error) {
	wb := wordBits[W]()
	if totalBits <= 0 || totalBits%int(wb) != 0 {
		return nil, fmt.Errorf("%w: %d bits is not a positive multiple of the %d-bit word", ErrInvalidLayout, totalBits, wb)
	}
	words := totalBits / int(wb)
	if words < minWords {
		return nil, fmt.Errorf("%w: %d bits gives %d word(s), need at least %d", ErrInvalidLayout, totalBits, words, minWords)
	}
	return &Layout[W]{words: words, wbits: wb}, nil
}

// MustLayout is like NewLayout but panics on an invalid capacity.
func MustLayout[W Word](totalBits int) *Layout[W] {
	l, err := NewLayout[W](totalBits)
	if err != nil {
		panic(err)
	}
	return l
}

// Words returns the capacity in words.
func (l *Layout[W]) Words() int { return l.words }

// WordBits returns the word width in bits.
func (l *Layout[W]) WordBits() int { return int(l.wbits) }

// Bits returns the total capacity in bits.
func (l *Layout[W]) Bits() int { return l.words * int(l.wbits) }

// HexDigits returns the width of the fixed-width hexadecimal form.
func (l *Layout[W]) HexDigits() int { return l.words * int(l.wbits/4) }

// String describes the layout, e.g. "1024 bits (32 x 32-bit words)".
func (l *Layout[W]) String() string {
	return fmt.Sprintf("%d bits (%d x %d-bit words)", l.Bits(), l.words, l.wbits)
}

// New returns a zero value bound to l.
func (l *Layout[W]) New() *Int[W] {
	return &Int[W]{layout: l, w: make([]W, l.words)}
}

// FromUint64 returns a new value holding v.
func (l *Layout[W]) FromUint64(v uint64) *Int[W] {
	return l.New().SetUint64(v)
}

// FromHex returns a new value parsed from the big-endian hexadecimal s.
func (l *Layout[W]) FromHex(s string) (*Int[W], error) {
	return l.New().SetHex(s)
}

// FromDecimal returns a new value parsed from the decimal s.
func (l *Layout[W]) FromDecimal(s string) (*Int[W], error) {
	return l.New().SetDecimal(s)
}

// Max returns the largest representable value, base^n - 1.
func (l *Layout[W]) Max() *Int[W] {
	z := l.New()
	for i := range z.w {
		z.w[i] = ^W(0)
	}
	return z
}

// compatible reports whether values of l and m can be combined.
func (l *Layout[W]) compatible(m *Layout[W]) bool {
	return l == m || l.words == m.words
}

// scratchWords is the arena size covering the largest single operation
// (square root: five values).
func (l *Layout[W]) scratchWords() int {
	return 6*l.words + 4
}

func (l *Layout[W]) acquire() *arena[W] {
	a, _ := l.arenas.Get().(*arena[W])
	if a == nil {
		a = &arena[W]{buf: make([]W, l.scratchWords())}
	}
	a.off = 0
	return a
}

func (l *Layout[W]) release(a *arena[W]) {
	if a == nil {
		return
	}
	a.off = 0
	l.arenas.Put(a)
}

// scratch returns a zero value bound to l whose storage lives in a.
// It must not outlive the arena's release.
func (l *Layout[W]) scratch(a *arena[W]) Int[W] {
	return Int[W]{layout: l, w: a.alloc(l.words)}
}
