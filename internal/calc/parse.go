package calc

import "strings"

// splitPrefix strips surrounding space, digit-group underscores and a base
// prefix from s, returning the digits and their base.
func splitPrefix(s string, def Format) (string, Format) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if len(s) >= 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			return s[2:], FormatHex
		case 'd', 'D':
			return s[2:], FormatDec
		}
	}
	return s, def
}

// ParseFormat maps "hex" and "dec" (any case) to a Format.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatHex, FormatDec:
		return f, true
	}
	return "", false
}
