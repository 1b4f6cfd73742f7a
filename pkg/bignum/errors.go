package bignum

import "fmt"

// SyntaxError reports malformed text input to SetHex or SetDecimal.
type SyntaxError struct {
	// Func is the parsing method that failed.
	Func string
	// Input is the rejected text.
	Input string
	// Offset is the byte offset of the first invalid character.
	Offset int
}

func (e *SyntaxError) Error() string {
	if e.Offset >= len(e.Input) {
		return fmt.Sprintf("bignum.%s: empty input", e.Func)
	}
	return fmt.Sprintf("bignum.%s: invalid character %q at offset %d", e.Func, e.Input[e.Offset], e.Offset)
}
