/*
Package bignum implements unsigned integer arithmetic over a fixed number of
words.

An Int is a little-endian sequence of words (word 0 is least significant)
whose length is fixed by the Layout it was created from. Nothing ever grows:
results that do not fit wrap modulo base^n, where base is 2^wordBits and n is
the layout's word count, and the receiver's overflow indicator is raised.

	l := bignum.MustLayout[uint32](128)
	a := l.FromUint64(100)
	b := l.FromUint64(7)
	q, r := l.New(), l.New()
	q.DivMod(a, b, r) // q == 14, r == 2

Word width is chosen with the type parameter (uint8, uint16 or uint32) and
total capacity with the Layout. Every Int used in one operation must share
the same capacity.

# Overflow

Add, Sub, Incr, Decr, Mul, Exp, SetUint64, SetHex and SetDecimal raise the
receiver's overflow indicator when the true result does not fit. The
indicator is never cleared implicitly; it accumulates across operations until
ResetOverflow is called. Uint64 reports truncation through its second result
instead.

# Aliasing

The receiver of every arithmetic method may be the same value as any of its
operands. DivMod additionally requires the quotient and remainder receivers
to be distinct.

# Preconditions

Division by zero, mixing capacities and using an Int that was never bound to
a layout are programmer errors and panic. Malformed text input is reported
through *SyntaxError.

# Concurrency

Distinct values may be used from distinct goroutines. A single value must not
be mutated concurrently. Layouts are safe for concurrent use.
*/
package bignum
