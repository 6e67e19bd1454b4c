package zolo

import "fmt"

// BlockKind names the category of an indentation-scoped subtree. Most
// blocks are generic; a few reserved key names open blocks with their
// own parsing rules.
type BlockKind int

const (
	// BlockGeneric is an ordinary nested mapping or sequence.
	BlockGeneric BlockKind = iota
	// BlockPaths holds one path-like string per line, verbatim except
	// for full-line comments. Paths may carry the @. reference marker.
	BlockPaths
	// BlockRaw holds fully verbatim lines; nothing inside it is a
	// comment, a key, or a typed value.
	BlockRaw
	// BlockEnv holds a flat set of typed key/value pairs with no
	// further nesting.
	BlockEnv
)

var blockKindNames = map[BlockKind]string{
	BlockGeneric: "generic",
	BlockPaths:   "paths",
	BlockRaw:     "raw",
	BlockEnv:     "env",
}

// String returns the lowercase name of the block kind.
func (k BlockKind) String() string {
	if name, ok := blockKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("BlockKind(%d)", k)
}

// capabilities is the per-kind rule set. Kinds differ only in these
// flags; there is no per-kind parsing code.
type capabilities struct {
	typedValues    bool // keys, hints, and value coercion apply
	lineComments   bool // full-line # comments are recognized
	inlineComments bool // trailing # comments are recognized
	escapes        bool // quoted strings and backslash escapes apply
	verbatim       bool // every line is a literal sequence item
	flat           bool // children may not open nested blocks
}

// kindCaps is initialized once and never mutated, so it is safe to
// share across concurrent parses.
var kindCaps = map[BlockKind]capabilities{
	BlockGeneric: {typedValues: true, lineComments: true, inlineComments: true, escapes: true},
	BlockEnv:     {typedValues: true, lineComments: true, inlineComments: true, escapes: true, flat: true},
	BlockPaths:   {lineComments: true, verbatim: true},
	BlockRaw:     {verbatim: true},
}

// namedKinds maps reserved key names to the block kind they open when
// they have no inline value.
var namedKinds = map[string]BlockKind{
	"paths": BlockPaths,
	"raw":   BlockRaw,
	"env":   BlockEnv,
}

// caps returns the capability flags for the kind.
func (k BlockKind) caps() capabilities {
	return kindCaps[k]
}

// frame is one level of the block stack. indent is the column at which
// the frame's children appear.
type frame struct {
	indent    int
	kind      BlockKind
	startLine int
	path      []string

	// Exactly one of mapping and seq is non-nil, depending on whether
	// the frame collects key/value pairs or list/verbatim items.
	mapping *Mapping
	seq     *Sequence
}

// blockTracker is the indentation stack. The bottom frame is the root
// mapping and is never popped.
type blockTracker struct {
	frames []frame
}

func newBlockTracker(root *Mapping) *blockTracker {
	return &blockTracker{frames: []frame{{
		indent:  0,
		kind:    BlockGeneric,
		mapping: root,
	}}}
}

// top returns the innermost frame.
func (bt *blockTracker) top() *frame {
	return &bt.frames[len(bt.frames)-1]
}

// push opens a child frame. Child indentation must strictly increase.
func (bt *blockTracker) push(f frame) error {
	if f.indent <= bt.top().indent {
		return fmt.Errorf("block at indent %d does not nest inside indent %d", f.indent, bt.top().indent)
	}
	bt.frames = append(bt.frames, f)
	return nil
}

// popTo pops frames until the child indent of the top frame is at most
// indent. It reports whether the resulting top frame matches indent
// exactly; a false return means the document dedented to a level that
// was never pushed.
func (bt *blockTracker) popTo(indent int) bool {
	for len(bt.frames) > 1 && bt.top().indent > indent {
		bt.frames = bt.frames[:len(bt.frames)-1]
	}
	return bt.top().indent == indent
}
