package lsp

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

// newTestServer returns a server with one open document, bypassing the
// JSON-RPC transport.
func newTestServer(uri, content string) *Server {
	s := &Server{docs: NewDocumentManager()}
	s.docs.Open(uri, content, 1)
	return s
}

func TestHover(t *testing.T) {
	const uri = "file:///config.zolo"

	type tc struct {
		content      string
		pos          Position
		wantNil      bool
		wantContains []string
	}

	tests := map[string]tc{
		"hinted key": {
			content:      "timeout(int): 30\n",
			pos:          Position{Line: 0, Character: 2},
			wantContains: []string{"**timeout**", "(int)"},
		},
		"bare key": {
			content:      "server:\n    host: localhost\n",
			pos:          Position{Line: 1, Character: 5},
			wantContains: []string{"**host**", "server", "string unless a type hint"},
		},
		"reference value": {
			content:      "plugin: @.tools.fmt\n",
			pos:          Position{Line: 0, Character: 10},
			wantContains: []string{"Ecosystem reference"},
		},
		"boolean value": {
			content:      "debug(bool): true\n",
			pos:          Position{Line: 0, Character: 14},
			wantContains: []string{"Boolean"},
		},
		"unhinted string value": {
			content: "name: widget\n",
			pos:     Position{Line: 0, Character: 8},
			wantNil: true,
		},
		"whitespace": {
			content: "a: b\n",
			pos:     Position{Line: 0, Character: 2},
			wantNil: true,
		},
		"past end of line": {
			content: "a: b\n",
			pos:     Position{Line: 0, Character: 40},
			wantNil: true,
		},
		"empty document": {
			content: "",
			pos:     Position{Line: 0, Character: 0},
			wantNil: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(uri, tt.content)

			params, _ := json.Marshal(HoverParams{
				TextDocument: TextDocumentIdentifier{URI: uri},
				Position:     tt.pos,
			})
			result, rpcErr := s.handleHover(params)
			if rpcErr != nil {
				t.Fatalf("handleHover: %v", rpcErr)
			}

			if tt.wantNil {
				if result != nil {
					t.Fatalf("expected nil hover, got %+v", result)
				}
				return
			}

			hover, ok := result.(Hover)
			if !ok {
				t.Fatalf("expected Hover, got %T", result)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(hover.Contents.Value, want) {
					t.Errorf("hover %q missing %q", hover.Contents.Value, want)
				}
			}
			if hover.Range == nil {
				t.Error("hover has no range")
			}
		})
	}
}

func TestCompletion(t *testing.T) {
	const uri = "file:///config.zolo"

	type tc struct {
		content    string
		pos        Position
		wantLabels []string
		wantAbsent []string
		wantEmpty  bool
	}

	tests := map[string]tc{
		"hint position": {
			content:    "timeout(\n",
			pos:        Position{Line: 0, Character: 8},
			wantLabels: []string{"bool", "float", "int", "ratio", "str", "time", "timestamp", "version"},
		},
		"partial hint": {
			content:    "timeout(in\n",
			pos:        Position{Line: 0, Character: 10},
			wantLabels: []string{"int"},
		},
		"bool value position": {
			content:    "debug(bool): \n",
			pos:        Position{Line: 0, Character: 13},
			wantLabels: []string{"true", "false"},
		},
		"plain value position": {
			content:   "name: \n",
			pos:       Position{Line: 0, Character: 6},
			wantEmpty: true,
		},
		"key position at root": {
			content:    "host: localhost\n\n",
			pos:        Position{Line: 1, Character: 0},
			wantLabels: []string{"paths", "raw", "env", "host"},
		},
		"key position inside block": {
			content:    "server:\n    host: a\n    \n",
			pos:        Position{Line: 2, Character: 4},
			wantLabels: []string{"host"},
		},
		"inside raw block": {
			content:   "raw:\n    anything goes\n    \n",
			pos:       Position{Line: 2, Character: 4},
			wantEmpty: true,
		},
		"inside env block": {
			content:    "env:\n    HOME: /root\n    \n",
			pos:        Position{Line: 2, Character: 4},
			wantLabels: []string{"HOME"},
			wantAbsent: []string{"paths", "raw", "env"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(uri, tt.content)

			params, _ := json.Marshal(CompletionParams{
				TextDocument: TextDocumentIdentifier{URI: uri},
				Position:     tt.pos,
			})
			result, rpcErr := s.handleCompletion(params)
			if rpcErr != nil {
				t.Fatalf("handleCompletion: %v", rpcErr)
			}

			list, ok := result.(CompletionList)
			if !ok {
				t.Fatalf("expected CompletionList, got %T", result)
			}

			if tt.wantEmpty {
				if len(list.Items) != 0 {
					t.Fatalf("expected no completions, got %+v", list.Items)
				}
				return
			}

			labels := make(map[string]bool, len(list.Items))
			for _, item := range list.Items {
				labels[item.Label] = true
			}
			for _, want := range tt.wantLabels {
				if !labels[want] {
					t.Errorf("missing completion %q in %v", want, list.Items)
				}
			}
			for _, absent := range tt.wantAbsent {
				if labels[absent] {
					t.Errorf("unexpected completion %q", absent)
				}
			}
		})
	}
}

func TestCompletionHintDocs(t *testing.T) {
	s := newTestServer("file:///t.zolo", "x(\n")

	params, _ := json.Marshal(CompletionParams{
		TextDocument: TextDocumentIdentifier{URI: "file:///t.zolo"},
		Position:     Position{Line: 0, Character: 2},
	})
	result, rpcErr := s.handleCompletion(params)
	if rpcErr != nil {
		t.Fatalf("handleCompletion: %v", rpcErr)
	}

	list := result.(CompletionList)
	for _, item := range list.Items {
		if item.Documentation == nil || item.Documentation.Value == "" {
			t.Errorf("hint %q has no documentation", item.Label)
		}
	}
}

func TestSemanticTokensEncoding(t *testing.T) {
	type tc struct {
		tokens []semanticToken
		want   []int
	}

	tests := map[string]tc{
		"empty": {
			tokens: nil,
			want:   []int{},
		},
		"single token": {
			tokens: []semanticToken{
				{line: 0, startChar: 0, length: 5, tokenType: 0, modifiers: 1},
			},
			want: []int{0, 0, 5, 0, 1},
		},
		"same line delta": {
			tokens: []semanticToken{
				{line: 0, startChar: 0, length: 5, tokenType: 0, modifiers: 1},
				{line: 0, startChar: 6, length: 4, tokenType: 1, modifiers: 0},
			},
			want: []int{0, 0, 5, 0, 1, 0, 6, 4, 1, 0},
		},
		"line change resets column": {
			tokens: []semanticToken{
				{line: 0, startChar: 4, length: 3, tokenType: 0, modifiers: 1},
				{line: 2, startChar: 4, length: 7, tokenType: 1, modifiers: 0},
			},
			want: []int{0, 4, 3, 0, 1, 2, 4, 7, 1, 0},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := encodeSemanticTokens(tt.tokens)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("encodeSemanticTokens = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSemanticTokensFull(t *testing.T) {
	const uri = "file:///config.zolo"
	// One key token and one reference token.
	s := newTestServer(uri, "plugin: @.tools.fmt\n")

	params, _ := json.Marshal(SemanticTokensParams{
		TextDocument: TextDocumentIdentifier{URI: uri},
	})
	result, rpcErr := s.handleSemanticTokensFull(params)
	if rpcErr != nil {
		t.Fatalf("handleSemanticTokensFull: %v", rpcErr)
	}

	tokens, ok := result.(SemanticTokens)
	if !ok {
		t.Fatalf("expected SemanticTokens, got %T", result)
	}

	want := []int{
		0, 0, 7, tokenTypeProperty, tokenModDeclaration,
		0, 8, 11, tokenTypeDecorator, 0,
	}
	if !reflect.DeepEqual(tokens.Data, want) {
		t.Errorf("data = %v, want %v", tokens.Data, want)
	}
}

func TestSemanticTokensUTF16(t *testing.T) {
	const uri = "file:///config.zolo"
	// The emoji is two UTF-16 code units, so the inline comment after it
	// starts further out in protocol columns than in rune columns.
	s := newTestServer(uri, "name: \U0001F600 # smile\n")

	params, _ := json.Marshal(SemanticTokensParams{
		TextDocument: TextDocumentIdentifier{URI: uri},
	})
	result, rpcErr := s.handleSemanticTokensFull(params)
	if rpcErr != nil {
		t.Fatalf("handleSemanticTokensFull: %v", rpcErr)
	}

	data := result.(SemanticTokens).Data
	// key, value, comment
	want := []int{
		0, 0, 5, tokenTypeProperty, tokenModDeclaration,
		0, 6, 2, tokenTypeString, 0,
		0, 3, 7, tokenTypeComment, 0,
	}
	if !reflect.DeepEqual(data, want) {
		t.Errorf("data = %v, want %v", data, want)
	}
}

func TestPositionEncoding(t *testing.T) {
	type tc struct {
		text     string
		runeCol  int
		utf16Col int
	}

	tests := map[string]tc{
		"ascii":         {text: "hello", runeCol: 3, utf16Col: 3},
		"bmp non-ascii": {text: "порт: 1", runeCol: 4, utf16Col: 4},
		"astral before": {text: "\U0001F600 x", runeCol: 2, utf16Col: 3},
		"start":         {text: "abc", runeCol: 0, utf16Col: 0},
		"end":           {text: "ab\U0001F600", runeCol: 3, utf16Col: 4},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := runeToUTF16(tt.text, tt.runeCol); got != tt.utf16Col {
				t.Errorf("runeToUTF16(%q, %d) = %d, want %d", tt.text, tt.runeCol, got, tt.utf16Col)
			}
			if got := utf16ToRune(tt.text, tt.utf16Col); got != tt.runeCol {
				t.Errorf("utf16ToRune(%q, %d) = %d, want %d", tt.text, tt.utf16Col, got, tt.runeCol)
			}
		})
	}
}
