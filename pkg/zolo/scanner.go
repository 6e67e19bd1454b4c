package zolo

import "strings"

// indentUnit is the number of spaces per nesting level.
const indentUnit = 4

// line is a single physical source line after scanning.
type line struct {
	index   int    // 0-based line number
	text    string // raw text, line ending stripped
	content string // text with leading indentation removed
	indent  int    // leading whitespace width in columns
	blank   bool   // whitespace-only line
	hasTab  bool   // indentation contained a tab
}

// scan splits source text into lines and measures indentation. Tabs in
// indentation are recorded for diagnosis and counted as one indent unit
// each so parsing can continue.
func scan(text string) []line {
	raw := strings.Split(text, "\n")
	if n := len(raw); n > 0 && raw[n-1] == "" {
		raw = raw[:n-1]
	}
	lines := make([]line, len(raw))
	for i, t := range raw {
		t = strings.TrimSuffix(t, "\r")
		l := line{index: i, text: t}
		w := 0
		j := 0
		for j < len(t) {
			switch t[j] {
			case ' ':
				w++
			case '\t':
				l.hasTab = true
				w += indentUnit
			default:
				goto measured
			}
			j++
		}
	measured:
		l.indent = w
		l.content = t[j:]
		l.blank = l.content == ""
		lines[i] = l
	}
	return lines
}
