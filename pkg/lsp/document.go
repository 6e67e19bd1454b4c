package lsp

import (
	"sync"
	"unicode"

	"github.com/zolo-lang/go/pkg/zolo"
)

// utf16RuneLen mirrors utf16.RuneLen, which is unavailable before Go 1.23.
func utf16RuneLen(r rune) int {
	switch {
	case 0 <= r && r < 0xD800, 0xE000 <= r && r < 0x10000:
		return 1
	case 0x10000 <= r && r <= unicode.MaxRune:
		return 2
	default:
		return -1
	}
}

// Document represents an open .zolo file with its parsed state.
type Document struct {
	URI     string
	Content string
	Version int
	Result  *zolo.ParseResult
}

// DocumentManager tracks all open documents.
type DocumentManager struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentManager creates a new document manager.
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		docs: make(map[string]*Document),
	}
}

// Open opens a new document and parses it.
func (dm *DocumentManager) Open(uri, content string, version int) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc := &Document{
		URI:     uri,
		Content: content,
		Version: version,
	}

	parseDocument(doc)
	dm.docs[uri] = doc
	return doc
}

// Update updates an existing document with new content.
func (dm *DocumentManager) Update(uri, content string, version int) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.docs[uri]
	if !ok {
		doc = &Document{URI: uri}
		dm.docs[uri] = doc
	}
	doc.Content = content
	doc.Version = version

	parseDocument(doc)
	return doc
}

// Close closes a document.
func (dm *DocumentManager) Close(uri string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	delete(dm.docs, uri)
}

// Get retrieves a document by URI.
func (dm *DocumentManager) Get(uri string) *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.docs[uri]
}

// All returns all open documents.
func (dm *DocumentManager) All() []*Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	docs := make([]*Document, 0, len(dm.docs))
	for _, doc := range dm.docs {
		docs = append(docs, doc)
	}
	return docs
}

// parseDocument reparses the document content. Every edit is a full
// reparse; the parser is a single pass and documents are small.
func parseDocument(doc *Document) {
	doc.Result = zolo.Tokenize(doc.Content, uriToPath(doc.URI))
}

// uriToPath converts a file:// URI to a file path.
func uriToPath(uri string) string {
	const prefix = "file://"
	if len(uri) > len(prefix) && uri[:len(prefix)] == prefix {
		return uri[len(prefix):]
	}
	return uri
}

// Position represents a position in a document (0-indexed). Character
// is measured in UTF-16 code units, per the protocol.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range represents a range in a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location represents a location in a document.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// runeToUTF16 converts a rune column in lineText to a UTF-16 column.
func runeToUTF16(lineText string, runeCol int) int {
	units := 0
	i := 0
	for _, r := range lineText {
		if i >= runeCol {
			break
		}
		units += utf16RuneLen(r)
		i++
	}
	return units
}

// utf16ToRune converts a UTF-16 column in lineText to a rune column.
func utf16ToRune(lineText string, utf16Col int) int {
	units := 0
	i := 0
	for _, r := range lineText {
		if units >= utf16Col {
			break
		}
		units += utf16RuneLen(r)
		i++
	}
	return i
}

// lineText returns the raw source text of a parsed line, or "".
func lineText(res *zolo.ParseResult, line int) string {
	if res == nil || line < 0 || line >= len(res.Lines) {
		return ""
	}
	return res.Lines[line]
}

// toDocPos converts a protocol position to a rune-based parser
// position.
func toDocPos(res *zolo.ParseResult, pos Position) zolo.Pos {
	return zolo.Pos{
		Line: pos.Line,
		Col:  utf16ToRune(lineText(res, pos.Line), pos.Character),
	}
}

// toProtocolRange converts a rune-based parser range to a protocol
// range.
func toProtocolRange(res *zolo.ParseResult, rng zolo.Range) Range {
	return Range{
		Start: Position{
			Line:      rng.Start.Line,
			Character: runeToUTF16(lineText(res, rng.Start.Line), rng.Start.Col),
		},
		End: Position{
			Line:      rng.End.Line,
			Character: runeToUTF16(lineText(res, rng.End.Line), rng.End.Col),
		},
	}
}
