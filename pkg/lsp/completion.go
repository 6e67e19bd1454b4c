package lsp

import (
	"encoding/json"
	"strings"

	"github.com/zolo-lang/go/pkg/lsp/log"
	"github.com/zolo-lang/go/pkg/zolo"
)

// CompletionParams represents textDocument/completion parameters.
type CompletionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
	Context      *CompletionContext     `json:"context,omitempty"`
}

// CompletionContext contains additional information about the context.
type CompletionContext struct {
	TriggerKind      int    `json:"triggerKind"`
	TriggerCharacter string `json:"triggerCharacter,omitempty"`
}

// CompletionList represents a list of completion items.
type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

// CompletionItem represents a completion suggestion.
type CompletionItem struct {
	Label         string             `json:"label"`
	Kind          CompletionItemKind `json:"kind,omitempty"`
	Detail        string             `json:"detail,omitempty"`
	Documentation *MarkupContent     `json:"documentation,omitempty"`
	InsertText    string             `json:"insertText,omitempty"`
}

// CompletionItemKind represents the kind of completion item.
type CompletionItemKind int

const (
	CompletionItemKindValue    CompletionItemKind = 12
	CompletionItemKindEnum     CompletionItemKind = 13
	CompletionItemKindKeyword  CompletionItemKind = 14
	CompletionItemKindProperty CompletionItemKind = 10
	CompletionItemKindModule   CompletionItemKind = 9
)

// handleCompletion handles textDocument/completion requests.
// Completion fails soft: any position it cannot make sense of yields an
// empty list, never an error.
func (s *Server) handleCompletion(params json.RawMessage) (any, *Error) {
	var p CompletionParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	log.Server("Completion request at %s:%d:%d", p.TextDocument.URI, p.Position.Line, p.Position.Character)

	doc := s.docs.Get(p.TextDocument.URI)
	if doc == nil || doc.Result == nil {
		return CompletionList{Items: []CompletionItem{}}, nil
	}

	items := completionsAt(doc.Result, toDocPos(doc.Result, p.Position))
	return CompletionList{Items: items}, nil
}

// completionsAt computes completion items for a rune-based position.
func completionsAt(res *zolo.ParseResult, pos zolo.Pos) []CompletionItem {
	text := lineText(res, pos.Line)
	runes := []rune(text)
	col := pos.Col
	if col > len(runes) {
		col = len(runes)
	}
	before := string(runes[:col])

	if inHintParens(before) {
		return hintCompletions()
	}
	if strings.Contains(before, ": ") || strings.HasSuffix(before, ":") {
		return valueCompletions(before)
	}
	return keyCompletions(res, pos.Line)
}

// inHintParens reports whether the cursor sits inside the parentheses
// of a key's type hint.
func inHintParens(before string) bool {
	open := strings.LastIndexByte(before, '(')
	if open < 0 {
		return false
	}
	rest := before[open+1:]
	return !strings.ContainsAny(rest, "): ")
}

// hintCompletions lists the closed hint set.
func hintCompletions() []CompletionItem {
	names := zolo.HintNames()
	items := make([]CompletionItem, 0, len(names))
	for _, name := range names {
		item := CompletionItem{
			Label:  name,
			Kind:   CompletionItemKindEnum,
			Detail: "type hint",
		}
		if doc, ok := zolo.HintDoc(name); ok {
			item.Documentation = &MarkupContent{Kind: "markdown", Value: doc}
		}
		items = append(items, item)
	}
	return items
}

// valueCompletions suggests value literals. Only bool-hinted keys have
// a closed value set; everything else is free-form.
func valueCompletions(before string) []CompletionItem {
	if !strings.Contains(before, "(bool)") {
		return []CompletionItem{}
	}
	return []CompletionItem{
		{Label: "true", Kind: CompletionItemKindValue},
		{Label: "false", Kind: CompletionItemKindValue},
	}
}

// keyCompletions suggests keys for the block containing line: the
// reserved block openers plus the sibling keys already present, so an
// editor can offer consistent naming across documents.
func keyCompletions(res *zolo.ParseResult, line int) []CompletionItem {
	var items []CompletionItem

	blockKind := zolo.BlockGeneric
	var path []string
	if line >= 0 && line < len(res.Contexts) {
		blockKind = res.Contexts[line].Kind
		path = res.Contexts[line].Path
	}

	// Verbatim blocks take raw lines, not keys.
	if blockKind == zolo.BlockPaths || blockKind == zolo.BlockRaw {
		return []CompletionItem{}
	}

	if blockKind == zolo.BlockGeneric {
		for _, name := range []string{"paths", "raw", "env"} {
			items = append(items, CompletionItem{
				Label:      name,
				Kind:       CompletionItemKindModule,
				Detail:     "opens a " + name + " block",
				InsertText: name + ":",
			})
		}
	}

	for _, key := range siblingKeys(res.Data, path) {
		items = append(items, CompletionItem{
			Label:  key,
			Kind:   CompletionItemKindProperty,
			Detail: "existing key",
		})
	}
	return items
}

// siblingKeys walks the data mapping down path and returns its keys.
func siblingKeys(m *zolo.Mapping, path []string) []string {
	for _, seg := range path {
		child, ok := m.Get(seg)
		if !ok {
			return nil
		}
		cm, ok := child.(*zolo.Mapping)
		if !ok {
			return nil
		}
		m = cm
	}
	return m.Keys
}
