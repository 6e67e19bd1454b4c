package lsp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zolo-lang/go/pkg/lsp/log"
	"github.com/zolo-lang/go/pkg/zolo"
)

// HoverParams represents textDocument/hover parameters.
type HoverParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// Hover represents the result of a hover request.
type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

// MarkupContent represents markup content for hover.
type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// handleHover handles textDocument/hover requests. Hover never fails a
// request; anything unresolvable returns a null result.
func (s *Server) handleHover(params json.RawMessage) (any, *Error) {
	var p HoverParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: err.Error()}
	}

	log.Server("Hover request at %s:%d:%d", p.TextDocument.URI, p.Position.Line, p.Position.Character)

	doc := s.docs.Get(p.TextDocument.URI)
	if doc == nil || doc.Result == nil {
		return nil, nil
	}

	tok, ok := doc.Result.TokenAt(toDocPos(doc.Result, p.Position))
	if !ok {
		return nil, nil
	}

	value := hoverText(doc.Result, tok)
	if value == "" {
		return nil, nil
	}

	rng := toProtocolRange(doc.Result, zolo.Range{
		Start: zolo.Pos{Line: tok.Line, Col: tok.Col},
		End:   zolo.Pos{Line: tok.Line, Col: tok.End()},
	})
	return Hover{
		Contents: MarkupContent{Kind: "markdown", Value: value},
		Range:    &rng,
	}, nil
}

// hoverText builds markdown for a token.
func hoverText(res *zolo.ParseResult, tok zolo.Token) string {
	switch tok.Kind {
	case zolo.TokenKey:
		return hoverForKey(res, tok)
	case zolo.TokenReference:
		return "**Ecosystem reference**\n\nA string value addressed relative to the surrounding ecosystem. " +
			"The parser keeps it as a plain string; resolution happens outside the core."
	case zolo.TokenBoolean:
		return "Boolean value. Booleans only exist under a `(bool)` hint; the literals are `true` and `false`."
	case zolo.TokenNumber:
		if doc := hintDocForLine(res, tok.Line); doc != "" {
			return doc
		}
		return "Numeric value from an `(int)` or `(float)` hint."
	case zolo.TokenString:
		if tok.Modifiers&tokenModReadonly != 0 {
			if doc := hintDocForLine(res, tok.Line); doc != "" {
				return doc
			}
		}
		return ""
	default:
		return ""
	}
}

func hoverForKey(res *zolo.ParseResult, tok zolo.Token) string {
	text := lineText(res, tok.Line)
	name := keyName(text, tok)

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**", name)
	if tok.Hint != "" {
		fmt.Fprintf(&sb, " `(%s)`", tok.Hint)
		if doc, ok := zolo.HintDoc(tok.Hint); ok {
			sb.WriteString("\n\n")
			sb.WriteString(doc)
		}
		return sb.String()
	}

	if tok.Line < len(res.Contexts) {
		ctx := res.Contexts[tok.Line]
		if len(ctx.Path) > 0 {
			fmt.Fprintf(&sb, "\n\nIn block `%s`.", strings.Join(ctx.Path, "."))
		}
	}
	sb.WriteString("\n\nValue is a string unless a type hint is given.")
	return sb.String()
}

// keyName extracts the bare key name from a key token span, which also
// covers the optional hint and the trailing colon.
func keyName(text string, tok zolo.Token) string {
	runes := []rune(text)
	if tok.Col >= len(runes) {
		return ""
	}
	end := tok.End()
	if end > len(runes) {
		end = len(runes)
	}
	span := string(runes[tok.Col:end])
	if i := strings.IndexAny(span, "(:"); i >= 0 {
		span = span[:i]
	}
	return span
}

// hintDocForLine finds the key token of a line and returns its hint
// documentation, if the key carries a hint.
func hintDocForLine(res *zolo.ParseResult, line int) string {
	for _, t := range res.Tokens {
		if t.Line != line {
			continue
		}
		if t.Kind == zolo.TokenKey && t.Hint != "" {
			if doc, ok := zolo.HintDoc(t.Hint); ok {
				return doc
			}
		}
	}
	return ""
}
