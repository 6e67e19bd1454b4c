// Package zolo implements parsing, serialization, and editor tooling
// support for the Zolo configuration format.
package zolo

import "fmt"

// TokenKind classifies a semantic token span.
type TokenKind int

const (
	// TokenKey covers a key, its optional parenthesized hint, and the
	// trailing colon.
	TokenKey TokenKind = iota
	// TokenString covers a string value, including surrounding quotes.
	TokenString
	// TokenNumber covers an integer or float value.
	TokenNumber
	// TokenBoolean covers a boolean literal.
	TokenBoolean
	// TokenComment covers a comment from its marker to end of line.
	TokenComment
	// TokenOperator covers structural punctuation such as a list dash
	// or a block-scalar marker.
	TokenOperator
	// TokenReference covers an ecosystem-relative @. reference value.
	TokenReference
)

var tokenKindNames = map[TokenKind]string{
	TokenKey:       "Key",
	TokenString:    "String",
	TokenNumber:    "Number",
	TokenBoolean:   "Boolean",
	TokenComment:   "Comment",
	TokenOperator:  "Operator",
	TokenReference: "Reference",
}

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

// Token modifier bit flags.
const (
	// ModDeclaration marks a token that declares a name (keys).
	ModDeclaration = 1 << 0
	// ModReadonly marks a token whose value is explicitly typed and
	// exempt from inference.
	ModReadonly = 1 << 1
)

// Token is a single semantic token. Line and Col are 0-based; Col and
// Length are measured in runes of the source line, before any escape
// decoding.
type Token struct {
	Line      int
	Col       int
	Length    int
	Kind      TokenKind
	Modifiers int

	// Hint holds the type-hint name when Kind is TokenKey and the key
	// carried a parenthesized hint.
	Hint string
}

// End returns the column just past the token span.
func (t Token) End() int {
	return t.Col + t.Length
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Hint != "" {
		return fmt.Sprintf("%s(%s) at %d:%d len=%d", t.Kind, t.Hint, t.Line, t.Col, t.Length)
	}
	return fmt.Sprintf("%s at %d:%d len=%d", t.Kind, t.Line, t.Col, t.Length)
}

// Pos is a 0-based position in a document.
type Pos struct {
	Line int
	Col  int
}

// Range is a half-open span between two positions.
type Range struct {
	Start Pos
	End   Pos
}

func lineRange(line, startCol, endCol int) Range {
	return Range{Start: Pos{Line: line, Col: startCol}, End: Pos{Line: line, Col: endCol}}
}
