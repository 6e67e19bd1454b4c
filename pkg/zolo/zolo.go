// Package zolo parses and serializes the zolo configuration format, a
// line-oriented, indentation-scoped mapping language. A single parse
// pass produces the data mapping, a semantic token stream for editor
// tooling, and a list of positioned diagnostics; the parser never
// aborts on malformed input.
//
// Values are strings unless an explicit parenthesized type hint says
// otherwise, so "enabled: yes" is the string "yes" while
// "enabled(bool): true" is a boolean. See Tokenize for the full parse
// surface and Dumps for the inverse direction.
package zolo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// A RuleSet adds file-type specific validation on top of a parse. The
// core is file-type agnostic; callers that recognize a filename
// convention can inspect the result and return extra diagnostics.
type RuleSet interface {
	Check(res *ParseResult) []Diagnostic
}

// TokenizeWith parses text and then applies rules, appending whatever
// diagnostics the rules produce. A nil rules is the same as Tokenize.
func TokenizeWith(text, filename string, rules RuleSet) *ParseResult {
	res := Tokenize(text, filename)
	if rules != nil {
		res.Diagnostics = append(res.Diagnostics, rules.Check(res)...)
	}
	return res
}

// Loads parses text and returns only the data mapping. Diagnostics are
// discarded; malformed regions degrade per the parser's recovery rules.
// Use LoadStrict when errors should fail the load.
func Loads(text string) (*Mapping, error) {
	return Tokenize(text, "").Data, nil
}

// LoadStrict parses text and fails with a *ParseError when any
// error-severity diagnostic was produced.
func LoadStrict(text string) (*Mapping, error) {
	res := Tokenize(text, "")
	if err := res.Err(); err != nil {
		return nil, err
	}
	return res.Data, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Mapping, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	res := Tokenize(string(b), path)
	return res.Data, nil
}

// Dump serializes node and writes it to path.
func Dump(node Node, path string) error {
	text, err := Dumps(node)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FileKind returns the filename-convention kind of path: the part of
// the base name before the first dot. "service.web.zolo" has kind
// "service". An empty string means the name carries no kind.
func FileKind(path string) string {
	base := filepath.Base(path)
	i := strings.IndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[:i]
}
