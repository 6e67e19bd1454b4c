package lsp

import (
	"encoding/json"

	"github.com/zolo-lang/go/pkg/lsp/log"
	"github.com/zolo-lang/go/pkg/zolo"
)

// Semantic token types. The order must match the legend announced in
// the initialize response, and the values deliberately mirror
// zolo.TokenKind so the parser's kinds map straight to indices.
const (
	tokenTypeProperty  = 0 // keys
	tokenTypeString    = 1 // string values and continuations
	tokenTypeNumber    = 2 // int and float values
	tokenTypeKeyword   = 3 // boolean literals
	tokenTypeComment   = 4 // comments
	tokenTypeOperator  = 5 // list dashes and block-scalar markers
	tokenTypeDecorator = 6 // @. reference values
)

// Semantic token modifiers (bit flags). The bits match the parser's
// modifier bits, so they pass through unchanged.
const (
	tokenModDeclaration = 1 << 0
	tokenModReadonly    = 1 << 1
)

// semanticTokensLegend returns the fixed legend, established once at
// initialize and never changed for the lifetime of the server.
func semanticTokensLegend() SemanticTokensLegend {
	return SemanticTokensLegend{
		TokenTypes: []string{
			"property",  // 0: keys
			"string",    // 1: strings
			"number",    // 2: numbers
			"keyword",   // 3: booleans
			"comment",   // 4: comments
			"operator",  // 5: structural punctuation
			"decorator", // 6: references
		},
		TokenModifiers: []string{
			"declaration", // 0: keys declare names
			"readonly",    // 1: explicitly hinted values
		},
	}
}

// SemanticTokensParams represents textDocument/semanticTokens/full
// parameters.
type SemanticTokensParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// SemanticTokens represents the result of a semantic tokens request.
type SemanticTokens struct {
	Data []int `json:"data"`
}

// semanticToken represents a single semantic token before encoding.
// Columns and lengths are in UTF-16 code units.
type semanticToken struct {
	line      int
	startChar int
	length    int
	tokenType int
	modifiers int
}

// handleSemanticTokensFull handles textDocument/semanticTokens/full.
func (s *Server) handleSemanticTokensFull(params json.RawMessage) (any, *Error) {
	var p SemanticTokensParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	doc := s.docs.Get(p.TextDocument.URI)
	if doc == nil || doc.Result == nil {
		return SemanticTokens{Data: []int{}}, nil
	}

	tokens := collectSemanticTokens(doc.Result)
	data := encodeSemanticTokens(tokens)

	log.Server("Semantic tokens for %s: %d tokens", p.TextDocument.URI, len(tokens))
	return SemanticTokens{Data: data}, nil
}

// collectSemanticTokens translates the parser's rune-based token stream
// into protocol tokens. The parser already guarantees strictly
// increasing, non-overlapping order.
func collectSemanticTokens(res *zolo.ParseResult) []semanticToken {
	tokens := make([]semanticToken, 0, len(res.Tokens))
	for _, t := range res.Tokens {
		text := lineText(res, t.Line)
		start := runeToUTF16(text, t.Col)
		end := runeToUTF16(text, t.End())
		tokens = append(tokens, semanticToken{
			line:      t.Line,
			startChar: start,
			length:    end - start,
			tokenType: int(t.Kind),
			modifiers: t.Modifiers,
		})
	}
	return tokens
}

// encodeSemanticTokens encodes tokens into the LSP delta format:
// [deltaLine, deltaStartChar, length, tokenType, tokenModifiers].
func encodeSemanticTokens(tokens []semanticToken) []int {
	if len(tokens) == 0 {
		return []int{}
	}

	data := make([]int, 0, len(tokens)*5)

	prevLine := 0
	prevChar := 0

	for _, t := range tokens {
		deltaLine := t.line - prevLine
		deltaChar := t.startChar
		if deltaLine == 0 {
			deltaChar = t.startChar - prevChar
		}

		data = append(data, deltaLine, deltaChar, t.length, t.tokenType, t.modifiers)

		prevLine = t.line
		prevChar = t.startChar
	}

	return data
}
