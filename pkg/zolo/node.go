package zolo

import "fmt"

// Kind identifies the runtime type of a Node.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindNull
	KindMapping
	KindSequence
	KindTypeError
)

var kindNames = map[Kind]string{
	KindString:    "string",
	KindInteger:   "integer",
	KindFloat:     "float",
	KindBoolean:   "boolean",
	KindNull:      "null",
	KindMapping:   "mapping",
	KindSequence:  "sequence",
	KindTypeError: "type error",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Node is a parsed Zolo value. Values without an explicit type hint are
// always strings; Integer, Float, and Boolean only ever appear when the
// source carried a hint.
type Node interface {
	Kind() Kind
}

// String is a string value, the default for every unhinted scalar.
type String struct {
	Value string
}

func (*String) Kind() Kind { return KindString }

// Integer is an int-hinted value.
type Integer struct {
	Value int64
}

func (*Integer) Kind() Kind { return KindInteger }

// Float is a float-hinted value.
type Float struct {
	Value float64
}

func (*Float) Kind() Kind { return KindFloat }

// Boolean is a bool-hinted value.
type Boolean struct {
	Value bool
}

func (*Boolean) Kind() Kind { return KindBoolean }

// Null is the value of a key with neither an inline value nor children.
type Null struct{}

func (*Null) Kind() Kind { return KindNull }

// TypeError marks a value whose hint coercion or validation failed. The
// raw source text is preserved so nothing is lost.
type TypeError struct {
	Hint    string
	Raw     string
	Message string
}

func (*TypeError) Kind() Kind { return KindTypeError }

// Sequence is an ordered list of values.
type Sequence struct {
	Items []Node
}

func (*Sequence) Kind() Kind { return KindSequence }

// Append adds an item to the sequence.
func (s *Sequence) Append(n Node) {
	s.Items = append(s.Items, n)
}

// Len returns the number of items.
func (s *Sequence) Len() int {
	return len(s.Items)
}

// Mapping is an ordered key/value collection. Keys are unique; when a
// duplicate arrives the first value wins and the newcomer is dropped.
type Mapping struct {
	Keys    []string
	Entries map[string]Node
}

func (*Mapping) Kind() Kind { return KindMapping }

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{Entries: make(map[string]Node)}
}

// Set inserts key with value n. It reports false if the key already
// exists, in which case the existing value is kept.
func (m *Mapping) Set(key string, n Node) bool {
	if _, ok := m.Entries[key]; ok {
		return false
	}
	m.Keys = append(m.Keys, key)
	m.Entries[key] = n
	return true
}

// Replace overwrites the value of an existing key, preserving order.
// The key must already exist.
func (m *Mapping) Replace(key string, n Node) {
	if _, ok := m.Entries[key]; !ok {
		m.Set(key, n)
		return
	}
	m.Entries[key] = n
}

// Get returns the value for key.
func (m *Mapping) Get(key string) (Node, bool) {
	n, ok := m.Entries[key]
	return n, ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.Keys)
}
