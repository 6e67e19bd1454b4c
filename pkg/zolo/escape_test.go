package zolo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeEscapes(t *testing.T) {
	type tc struct {
		input string
		want  string
	}

	tests := map[string]tc{
		"no escapes":    {input: "plain text", want: "plain text"},
		"backslash":     {input: `a\\b`, want: `a\b`},
		"quote":         {input: `say \"hi\"`, want: `say "hi"`},
		"newline":       {input: `one\ntwo`, want: "one\ntwo"},
		"tab":           {input: `a\tb`, want: "a\tb"},
		"carriage":      {input: `a\rb`, want: "a\rb"},
		"nul":           {input: `a\0b`, want: "a\x00b"},
		"unicode short": {input: `\u0041`, want: "A"},
		"unicode long":  {input: `\U0001F600`, want: "\U0001F600"},
		"mixed":         {input: `\tA\\`, want: "\tA\\"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, _, ok := decodeEscapes(tt.input)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeEscapes_Invalid(t *testing.T) {
	type tc struct {
		input     string
		wantBadAt int
	}

	tests := map[string]tc{
		"unknown escape":     {input: `a\qb`, wantBadAt: 1},
		"trailing backslash": {input: `abc\`, wantBadAt: 3},
		"short hex":          {input: `\u12`, wantBadAt: 0},
		"bad hex digit":      {input: `\u12zz`, wantBadAt: 0},
		"surrogate":          {input: `\uD800`, wantBadAt: 0},
		"out of range":       {input: `\UFFFFFFFF`, wantBadAt: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, badAt, ok := decodeEscapes(tt.input)
			require.False(t, ok)
			require.Equal(t, tt.wantBadAt, badAt)
		})
	}
}
