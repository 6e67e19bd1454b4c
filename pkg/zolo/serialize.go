package zolo

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Dumps serializes a data mapping to source text. It is the structural
// inverse of parsing: type hints are emitted only for values whose
// runtime type could not be recovered under string-first parsing, so
// plain strings never carry a hint while integers, floats, and booleans
// always do. Comments and original formatting are not reproduced.
//
// Dumps fails when the mapping is structurally impossible to express,
// for example a key containing the key/value delimiter or an empty
// nested mapping; it never emits text that would not parse back.
func Dumps(node Node) (string, error) {
	m, ok := node.(*Mapping)
	if !ok {
		return "", fmt.Errorf("document root must be a mapping, not %s", node.Kind())
	}
	var sb strings.Builder
	if err := writeMapping(&sb, m, 0, false); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeMapping(sb *strings.Builder, m *Mapping, indent int, inNamed bool) error {
	pad := strings.Repeat(" ", indent)
	for _, key := range m.Keys {
		if err := checkKey(key); err != nil {
			return err
		}
		value := m.Entries[key]
		// Reserved names only open named blocks at generic levels.
		reserved, isReserved := namedKinds[key]
		isReserved = isReserved && !inNamed
		switch v := value.(type) {
		case *Null:
			fmt.Fprintf(sb, "%s%s:\n", pad, key)
		case *Integer:
			fmt.Fprintf(sb, "%s%s(int): %d\n", pad, key, v.Value)
		case *Float:
			fmt.Fprintf(sb, "%s%s(float): %s\n", pad, key, strconv.FormatFloat(v.Value, 'g', -1, 64))
		case *Boolean:
			fmt.Fprintf(sb, "%s%s(bool): %t\n", pad, key, v.Value)
		case *TypeError:
			// Re-emitting the raw text under the same hint reproduces
			// the node; quoting protects raw text a plain scalar would
			// mangle.
			raw := v.Raw
			if !plainScalarSafe(raw) {
				raw = quoteString(raw)
			}
			fmt.Fprintf(sb, "%s%s(%s): %s\n", pad, key, v.Hint, raw)
		case *String:
			if err := writeStringValue(sb, pad, key, v.Value, indent); err != nil {
				return err
			}
		case *Mapping:
			if isReserved && reserved.caps().verbatim {
				return fmt.Errorf("key %q opens a verbatim block and cannot hold a mapping", key)
			}
			if v.Len() == 0 {
				return fmt.Errorf("cannot serialize empty mapping for key %q", key)
			}
			fmt.Fprintf(sb, "%s%s:\n", pad, key)
			if err := writeMapping(sb, v, indent+indentUnit, isReserved); err != nil {
				return err
			}
		case *Sequence:
			if v.Len() == 0 {
				return fmt.Errorf("cannot serialize empty sequence for key %q", key)
			}
			fmt.Fprintf(sb, "%s%s:\n", pad, key)
			if isReserved && reserved.caps().verbatim {
				if err := writeVerbatim(sb, key, reserved, v, indent+indentUnit); err != nil {
					return err
				}
			} else if err := writeItems(sb, key, v, indent+indentUnit); err != nil {
				return err
			}
		default:
			return fmt.Errorf("cannot serialize value of kind %s for key %q", value.Kind(), key)
		}
	}
	return nil
}

// writeStringValue emits a string as a plain scalar, a quoted scalar,
// or a literal block, whichever parses back to the same value.
func writeStringValue(sb *strings.Builder, pad, key, v string, indent int) error {
	if blockSafe(v) {
		fmt.Fprintf(sb, "%s%s: |\n", pad, key)
		inner := strings.Repeat(" ", indent+indentUnit)
		for _, ln := range strings.Split(v, "\n") {
			if ln == "" {
				sb.WriteByte('\n')
				continue
			}
			fmt.Fprintf(sb, "%s%s\n", inner, ln)
		}
		return nil
	}
	if plainScalarSafe(v) {
		fmt.Fprintf(sb, "%s%s: %s\n", pad, key, v)
		return nil
	}
	fmt.Fprintf(sb, "%s%s: %s\n", pad, key, quoteString(v))
	return nil
}

func writeItems(sb *strings.Builder, key string, seq *Sequence, indent int) error {
	pad := strings.Repeat(" ", indent)
	for _, item := range seq.Items {
		s, ok := item.(*String)
		if !ok {
			return fmt.Errorf("sequence under key %q holds a %s; list items are always strings", key, item.Kind())
		}
		switch {
		case plainScalarSafe(s.Value):
			fmt.Fprintf(sb, "%s- %s\n", pad, s.Value)
		default:
			fmt.Fprintf(sb, "%s- %s\n", pad, quoteString(s.Value))
		}
	}
	return nil
}

func writeVerbatim(sb *strings.Builder, key string, kind BlockKind, seq *Sequence, indent int) error {
	pad := strings.Repeat(" ", indent)
	for _, item := range seq.Items {
		s, ok := item.(*String)
		if !ok {
			return fmt.Errorf("verbatim block %q holds a %s; its items are always strings", key, item.Kind())
		}
		v := s.Value
		if v == "" || strings.Contains(v, "\n") || strings.TrimRight(v, " ") != v {
			return fmt.Errorf("verbatim block %q cannot express item %q", key, v)
		}
		if kind.caps().lineComments && strings.HasPrefix(strings.TrimLeft(v, " "), "#") {
			return fmt.Errorf("verbatim block %q cannot express item %q", key, v)
		}
		if kind != BlockRaw && strings.TrimLeft(v, " ") != v {
			return fmt.Errorf("verbatim block %q cannot express item %q", key, v)
		}
		fmt.Fprintf(sb, "%s%s\n", pad, v)
	}
	return nil
}

// checkKey rejects keys that cannot appear on a key line.
func checkKey(key string) error {
	if key == "" {
		return fmt.Errorf("cannot serialize empty key")
	}
	if strings.ContainsAny(key, " \t\n:()#") {
		return fmt.Errorf("cannot serialize key %q: keys may not contain whitespace, colons, parentheses, or comment markers", key)
	}
	return nil
}

// plainScalarSafe reports whether v survives a round trip when written
// without quotes after "key: ".
func plainScalarSafe(v string) bool {
	if v == "" || v == "|" || v == ">" {
		return false
	}
	if v != strings.TrimSpace(v) {
		return false
	}
	if strings.HasPrefix(v, "\"") || strings.HasPrefix(v, "#") {
		return false
	}
	if strings.Contains(v, " #") {
		return false
	}
	for _, r := range v {
		if r == '\n' || r == '\t' || !unicode.IsPrint(r) && r != ' ' {
			return false
		}
	}
	return true
}

// blockSafe reports whether a multi-line string can be written as a
// literal block without loss.
func blockSafe(v string) bool {
	if !strings.Contains(v, "\n") || strings.HasSuffix(v, "\n") {
		return false
	}
	lines := strings.Split(v, "\n")
	for i, ln := range lines {
		if ln == "" {
			if i == 0 || i == len(lines)-1 {
				return false
			}
			continue
		}
		if strings.TrimRight(ln, " ") != ln {
			return false
		}
		if i == 0 && strings.TrimLeft(ln, " ") != ln {
			return false
		}
		if strings.TrimSpace(ln) == "" {
			return false
		}
		for _, r := range ln {
			if r != ' ' && !unicode.IsPrint(r) && r != '\t' {
				return false
			}
			if r == '\t' {
				return false
			}
		}
	}
	return true
}

// quoteString renders v as a double-quoted scalar with escapes.
func quoteString(v string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range v {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if unicode.IsPrint(r) || r == ' ' {
				sb.WriteRune(r)
			} else if r <= 0xFFFF {
				fmt.Fprintf(&sb, `\u%04X`, r)
			} else {
				fmt.Fprintf(&sb, `\U%08X`, r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
