package zolo

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// keyLinePattern matches "key:", "key: value", and "key(hint): value".
// The colon is only a key separator when followed by a space or the end
// of the line.
var keyLinePattern = regexp.MustCompile(`^([^\s:()#]+)(?:\(([^()\s]*)\))?:(?: (.*))?$`)

// keyLine is the decomposition of a successfully matched key line.
type keyLine struct {
	key     string
	hint    string // "" when absent
	hasHint bool
	rest    string // inline value text, "" when absent
	// keyLen is the rune length of the span from the key through the
	// trailing colon, hint included.
	keyLen int
}

// splitKeyLine attempts to interpret content as a key line.
func splitKeyLine(content string) (keyLine, bool) {
	m := keyLinePattern.FindStringSubmatch(content)
	if m == nil {
		return keyLine{}, false
	}
	kl := keyLine{key: m[1], rest: m[3]}
	if strings.Contains(content[:len(content)-len(m[3])], "(") {
		kl.hasHint = true
		kl.hint = m[2]
	}
	kl.keyLen = utf8.RuneCountInString(m[1]) + 1
	if kl.hasHint {
		kl.keyLen += utf8.RuneCountInString(m[2]) + 2
	}
	return kl, true
}

// isListItem reports whether content is a list-item line.
func isListItem(content string) bool {
	return strings.HasPrefix(content, "- ")
}

// parsedValue is the result of parsing the value portion of a line.
type parsedValue struct {
	node    Node
	tokens  []Token
	errMsg  string // non-empty when the value carried a problem
	errCode string
	errRng  Range
}

// parseValue parses the scalar value text of a key or list-item line.
// lineNo and baseCol locate the first rune of text in the source so
// token and diagnostic spans can be computed; caps controls inline
// comments and escape handling, hint is the key's type hint ("" for
// none).
func parseValue(text string, lineNo, baseCol int, caps capabilities, hint string) parsedValue {
	var pv parsedValue
	runes := []rune(text)

	// Hints only resolve in kinds that carry typed values.
	if !caps.typedValues {
		hint = ""
	}

	valueEnd := len(runes)
	commentAt := -1
	if caps.inlineComments {
		commentAt = inlineCommentIndex(runes)
		if commentAt >= 0 {
			valueEnd = commentAt
			for valueEnd > 0 && runes[valueEnd-1] == ' ' {
				valueEnd--
			}
		}
	}
	for valueEnd > 0 && runes[valueEnd-1] == ' ' {
		valueEnd--
	}

	raw := string(runes[:valueEnd])
	switch {
	case raw == "":
		pv.node = &Null{}
	case caps.escapes && runes[0] == '"':
		pv.node, pv.errMsg, pv.errCode, pv.errRng = parseQuoted(runes[:valueEnd], lineNo, baseCol, hint)
		pv.tokens = append(pv.tokens, Token{
			Line: lineNo, Col: baseCol, Length: valueEnd,
			Kind: valueTokenKind(pv.node), Modifiers: valueModifiers(hint),
		})
	default:
		node, msg := resolveHint(raw, hint)
		pv.node = node
		if msg != "" {
			pv.errMsg = msg
			pv.errCode = CodeTypeMismatch
			pv.errRng = lineRange(lineNo, baseCol, baseCol+valueEnd)
		}
		pv.tokens = append(pv.tokens, Token{
			Line: lineNo, Col: baseCol, Length: valueEnd,
			Kind: valueTokenKind(node), Modifiers: valueModifiers(hint),
		})
	}

	if commentAt >= 0 {
		pv.tokens = append(pv.tokens, Token{
			Line: lineNo, Col: baseCol + commentAt, Length: len(runes) - commentAt,
			Kind: TokenComment,
		})
	}
	return pv
}

// parseQuoted handles a double-quoted value. The returned range is only
// meaningful when an error message is present.
func parseQuoted(runes []rune, lineNo, baseCol int, hint string) (Node, string, string, Range) {
	closing := -1
	for i := 1; i < len(runes); i++ {
		if runes[i] == '\\' {
			i++
			continue
		}
		if runes[i] == '"' {
			closing = i
			break
		}
	}
	inner := ""
	if closing < 0 {
		inner = string(runes[1:])
	} else {
		inner = string(runes[1:closing])
	}

	decoded, badAt, ok := decodeEscapes(inner)
	if !ok {
		return &String{Value: inner}, "invalid escape sequence", CodeBadEscape,
			lineRange(lineNo, baseCol+1+badAt, baseCol+1+badAt+2)
	}
	node, msg := resolveHint(decoded, hint)
	if msg != "" {
		return node, msg, CodeTypeMismatch, lineRange(lineNo, baseCol, baseCol+len(runes))
	}
	if closing < 0 {
		return node, "unterminated string", CodeUnterminated,
			lineRange(lineNo, baseCol, baseCol+len(runes))
	}
	if closing < len(runes)-1 {
		return node, "content after closing quote", CodeMalformedLine,
			lineRange(lineNo, baseCol+closing+1, baseCol+len(runes))
	}
	return node, "", "", Range{}
}

// inlineCommentIndex finds the rune index of an inline comment marker:
// a # outside quotes, either at the start of the value or preceded by a
// space. Returns -1 when there is none.
func inlineCommentIndex(runes []rune) int {
	inQuote := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if inQuote {
			if r == '\\' {
				i++
			} else if r == '"' {
				inQuote = false
			}
			continue
		}
		switch r {
		case '"':
			inQuote = true
		case '#':
			if i == 0 || runes[i-1] == ' ' {
				return i
			}
		}
	}
	return -1
}

// valueTokenKind maps a parsed node to its semantic token kind.
func valueTokenKind(n Node) TokenKind {
	switch v := n.(type) {
	case *Integer, *Float:
		return TokenNumber
	case *Boolean:
		return TokenBoolean
	case *String:
		if strings.HasPrefix(v.Value, refMarker) {
			return TokenReference
		}
		return TokenString
	default:
		return TokenString
	}
}

// valueModifiers returns the modifier bits for a value token.
func valueModifiers(hint string) int {
	if hint != "" {
		return ModReadonly
	}
	return 0
}

// refMarker prefixes ecosystem-relative reference strings. The core
// treats them as plain strings; only their token kind differs.
const refMarker = "@."

// stripColumns removes up to n leading columns of whitespace from text,
// counting a tab as one indent unit. Content beyond n columns keeps its
// relative indentation.
func stripColumns(text string, n int) string {
	col := 0
	i := 0
	for i < len(text) && col < n {
		switch text[i] {
		case ' ':
			col++
		case '\t':
			col += indentUnit
		default:
			return text[i:]
		}
		i++
	}
	return text[i:]
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
