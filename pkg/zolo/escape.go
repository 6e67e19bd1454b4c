package zolo

import (
	"strings"
	"unicode/utf8"
)

// decodeEscapes resolves backslash escapes in the content of a quoted
// string. It returns the decoded text, or the rune offset of the first
// bad escape and ok=false. Offsets are relative to the start of s and
// refer to the source text, so callers can report positions without
// accounting for the decoding.
func decodeEscapes(s string) (decoded string, badAt int, ok bool) {
	if !strings.ContainsRune(s, '\\') {
		return s, 0, true
	}
	runes := []rune(s)
	var sb strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			return "", i, false
		}
		i++
		switch runes[i] {
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case 'u':
			v, n := hexRune(runes[i+1:], 4)
			if n == 0 {
				return "", i - 1, false
			}
			sb.WriteRune(v)
			i += n
		case 'U':
			v, n := hexRune(runes[i+1:], 8)
			if n == 0 {
				return "", i - 1, false
			}
			sb.WriteRune(v)
			i += n
		default:
			return "", i - 1, false
		}
	}
	return sb.String(), 0, true
}

// hexRune reads exactly width hex digits from runes and returns the
// decoded code point and the number of runes consumed. It returns n=0
// when the digits are missing, short, or form an invalid code point.
func hexRune(runes []rune, width int) (r rune, n int) {
	if len(runes) < width {
		return 0, 0
	}
	var v int64
	for i := 0; i < width; i++ {
		d := hexDigit(runes[i])
		if d < 0 {
			return 0, 0
		}
		v = v<<4 | int64(d)
	}
	if v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
		return 0, 0
	}
	return rune(v), width
}

func hexDigit(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	}
	return -1
}
