package zolo

import "strings"

// LineContext records which block governed a source line, for consumers
// that need cursor context (completion, external rule sets).
type LineContext struct {
	Kind   BlockKind
	Indent int // column at which keys/items of the block appear
	Path   []string
}

// ParseResult is everything a single parse produces. It is owned by the
// caller; the parser retains no state between calls.
type ParseResult struct {
	Filename    string
	Data        *Mapping
	Tokens      []Token
	Diagnostics []Diagnostic
	Lines       []string
	Contexts    []LineContext
}

// TokenAt returns the token covering pos, if any.
func (r *ParseResult) TokenAt(pos Pos) (Token, bool) {
	for _, t := range r.Tokens {
		if t.Line > pos.Line {
			break
		}
		if t.Line == pos.Line && pos.Col >= t.Col && pos.Col < t.End() {
			return t, true
		}
	}
	return Token{}, false
}

// Err returns a ParseError when any error-severity diagnostic was
// produced, for callers that want strict loading.
func (r *ParseResult) Err() error {
	var errs []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			errs = append(errs, d)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ParseError{Diagnostics: errs}
}

// pendingMode distinguishes the ways a key without an inline value can
// be completed by subsequent lines.
type pendingMode int

const (
	pendingBare    pendingMode = iota // key: — mapping, sequence, fold, or null
	pendingLiteral                    // key: | — newline-preserving block
	pendingFolded                     // key: > — space-folded block
)

// pendingValue tracks a key whose value is still being determined.
type pendingValue struct {
	key        string
	keyLine    int
	keyIndent  int
	mode       pendingMode
	named      bool      // reserved key that opens a named block
	namedKind  BlockKind // valid when named
	baseline   int       // indent of the first collected line, -1 before
	buf        []string
	owner      *Mapping // nil when the surrounding frame is not a mapping
	attached   bool     // false when a duplicate key reserved no slot
	flatParent bool     // surrounding block forbids nesting
}

type parser struct {
	filename string
	lines    []line
	tracker  *blockTracker
	root     *Mapping
	diags    DiagnosticList
	tokens   []Token
	contexts []LineContext
	pending  *pendingValue
}

// Tokenize parses source text in a single pass and returns the data
// mapping, the semantic token stream, and all diagnostics. It never
// fails: malformed input degrades to diagnostics, not errors.
func Tokenize(text, filename string) *ParseResult {
	p := &parser{
		filename: filename,
		lines:    scan(text),
		root:     NewMapping(),
	}
	p.tracker = newBlockTracker(p.root)
	p.contexts = make([]LineContext, len(p.lines))

	for i := range p.lines {
		p.processLine(p.lines[i])
		top := p.tracker.top()
		p.contexts[i] = LineContext{Kind: top.kind, Indent: top.indent, Path: top.path}
	}
	if p.pending != nil {
		p.finishPending()
	}

	raw := make([]string, len(p.lines))
	for i, l := range p.lines {
		raw[i] = l.text
	}
	return &ParseResult{
		Filename:    filename,
		Data:        p.root,
		Tokens:      p.tokens,
		Diagnostics: p.diags.Diagnostics(),
		Lines:       raw,
		Contexts:    p.contexts,
	}
}

// emit appends a token, enforcing the strictly-increasing ordering
// invariant. A violation is a parser bug, surfaced as an internal
// diagnostic rather than silent bad output.
func (p *parser) emit(t Token) {
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		if t.Line < last.Line || (t.Line == last.Line && t.Col < last.End()) {
			p.diags.Add(Diagnostic{
				Range:    lineRange(t.Line, t.Col, t.End()),
				Severity: SeverityError,
				Code:     CodeInternal,
				Message:  "internal error: semantic token emitted out of order",
			})
			return
		}
	}
	p.tokens = append(p.tokens, t)
}

func (p *parser) processLine(l line) {
	if l.hasTab {
		p.diags.Addf(lineRange(l.index, 0, l.indent), CodeTabIndent,
			"tab in indentation; use %d spaces per level", indentUnit)
	}
	if l.blank {
		if p.pending != nil && p.pending.mode == pendingLiteral && p.pending.baseline >= 0 {
			p.pending.buf = append(p.pending.buf, "")
		}
		return
	}
	if p.pending != nil && p.continuePending(l) {
		return
	}
	p.processNormal(l)
}

// continuePending feeds a line to the open pending value. It reports
// whether the line was consumed; false means the pending value was
// closed and the line still needs normal processing.
func (p *parser) continuePending(l line) bool {
	pd := p.pending
	childIndent := pd.keyIndent + indentUnit

	switch pd.mode {
	case pendingLiteral, pendingFolded:
		if pd.baseline < 0 {
			if l.indent > pd.keyIndent {
				pd.baseline = l.indent
				p.collect(l)
				return true
			}
			p.finishPending()
			return false
		}
		if l.indent >= pd.baseline {
			p.collect(l)
			return true
		}
		p.finishPending()
		return false

	case pendingBare:
		if l.indent <= pd.keyIndent {
			p.finishPending()
			return false
		}
		if pd.baseline >= 0 {
			// Already collecting folded continuation lines.
			if l.indent >= pd.baseline {
				p.collect(l)
				return true
			}
			p.finishPending()
			return false
		}
		if pd.named && pd.namedKind.caps().verbatim {
			p.openVerbatim(pd)
			p.pending = nil
			top := p.tracker.top()
			if l.indent < top.indent {
				p.diags.Addf(lineRange(l.index, 0, l.indent), CodeBadIndent,
					"unexpected indentation")
			}
			p.verbatimItem(l, top)
			return true
		}
		content := strings.TrimRight(l.content, " ")
		if strings.HasPrefix(content, "#") {
			// A comment does not decide between block and continuation.
			p.emit(Token{Line: l.index, Col: l.indent, Length: runeLen(content), Kind: TokenComment})
			return true
		}
		if l.indent == childIndent {
			if _, isKey := splitKeyLine(content); isKey || isListItem(content) || content == "-" {
				p.openBlock(pd, l, isListItem(content) || content == "-")
				p.pending = nil
				p.processNormal(l)
				return true
			}
		}
		// Deeper than the expected child indent, or no key separator:
		// the line is literal content of a folded continuation.
		pd.baseline = l.indent
		p.collect(l)
		return true
	}
	return false
}

// collect appends one line to the pending buffer and tokenizes it.
func (p *parser) collect(l line) {
	pd := p.pending
	content := strings.TrimRight(l.content, " ")
	if pd.mode == pendingLiteral {
		pd.buf = append(pd.buf, strings.TrimRight(stripColumns(l.text, pd.baseline), " "))
	} else {
		pd.buf = append(pd.buf, content)
	}
	p.emit(Token{Line: l.index, Col: l.indent, Length: runeLen(content), Kind: TokenString})
}

// finishPending closes the open pending value and stores the result.
func (p *parser) finishPending() {
	pd := p.pending
	p.pending = nil

	var value Node
	switch {
	case pd.mode == pendingLiteral:
		buf := pd.buf
		for len(buf) > 0 && buf[len(buf)-1] == "" {
			buf = buf[:len(buf)-1]
		}
		value = &String{Value: strings.Join(buf, "\n")}
	case len(pd.buf) == 0:
		if pd.mode == pendingBare {
			value = &Null{}
		} else {
			value = &String{Value: ""}
		}
	default:
		value = &String{Value: strings.Join(pd.buf, " ")}
	}
	if pd.attached {
		pd.owner.Replace(pd.key, value)
	}
}

// openBlock resolves a bare pending key into a nested mapping or
// sequence frame.
func (p *parser) openBlock(pd *pendingValue, l line, asSequence bool) {
	if pd.flatParent {
		p.diags.Addf(lineRange(pd.keyLine, pd.keyIndent, pd.keyIndent+runeLen(pd.key)+1),
			CodeNestingInBlock, "nested block under %q is not allowed inside an env block", pd.key)
	}
	kind := BlockGeneric
	if pd.named {
		kind = pd.namedKind
	}
	f := frame{
		indent:    pd.keyIndent + indentUnit,
		kind:      kind,
		startLine: l.index,
		path:      childPath(p.tracker.top().path, pd.key),
	}
	if asSequence {
		f.seq = &Sequence{}
		if pd.attached {
			pd.owner.Replace(pd.key, f.seq)
		}
	} else {
		f.mapping = NewMapping()
		if pd.attached {
			pd.owner.Replace(pd.key, f.mapping)
		}
	}
	if err := p.tracker.push(f); err != nil {
		p.diags.Add(Diagnostic{
			Range:    lineRange(l.index, 0, l.indent),
			Severity: SeverityError,
			Code:     CodeInternal,
			Message:  "internal error: " + err.Error(),
		})
	}
}

// openVerbatim resolves a reserved bare key into a verbatim frame.
func (p *parser) openVerbatim(pd *pendingValue) {
	seq := &Sequence{}
	if pd.attached {
		pd.owner.Replace(pd.key, seq)
	}
	f := frame{
		indent:    pd.keyIndent + indentUnit,
		kind:      pd.namedKind,
		startLine: pd.keyLine,
		path:      childPath(p.tracker.top().path, pd.key),
		seq:       seq,
	}
	if err := p.tracker.push(f); err != nil {
		p.diags.Add(Diagnostic{
			Range:    lineRange(pd.keyLine, 0, pd.keyIndent),
			Severity: SeverityError,
			Code:     CodeInternal,
			Message:  "internal error: " + err.Error(),
		})
	}
}

func (p *parser) processNormal(l line) {
	top := p.tracker.top()
	if top.kind.caps().verbatim && l.indent >= top.indent {
		p.verbatimItem(l, top)
		return
	}

	if l.indent > top.indent {
		p.diags.Addf(lineRange(l.index, 0, l.indent), CodeBadIndent,
			"unexpected indentation")
	} else if l.indent < top.indent {
		if !p.tracker.popTo(l.indent) {
			p.diags.Addf(lineRange(l.index, 0, l.indent), CodeUnknownDedent,
				"dedent to unknown indentation level")
			p.recoverAt(l)
		}
		top = p.tracker.top()
		if top.kind.caps().verbatim && l.indent >= top.indent {
			p.verbatimItem(l, top)
			return
		}
	}
	top = p.tracker.top()
	caps := top.kind.caps()
	content := strings.TrimRight(l.content, " ")

	if caps.lineComments && strings.HasPrefix(content, "#") {
		p.emit(Token{Line: l.index, Col: l.indent, Length: runeLen(content), Kind: TokenComment})
		return
	}
	if isListItem(content) || content == "-" {
		p.listItem(l, content, top)
		return
	}
	if kl, ok := splitKeyLine(content); ok {
		p.keyLine(l, kl, top)
		return
	}
	p.diags.Addf(lineRange(l.index, l.indent, l.indent+runeLen(content)), CodeMalformedLine,
		"cannot parse line: expected a key, list item, or comment")
	p.emit(Token{Line: l.index, Col: l.indent, Length: runeLen(content), Kind: TokenString})
}

// recoverAt opens a fresh frame at the line's indentation after a
// dedent matched no open frame. Entries attach to the document root so
// parsing continues with best-effort data.
func (p *parser) recoverAt(l line) {
	f := frame{indent: l.indent, kind: BlockGeneric, startLine: l.index, mapping: p.root}
	if err := p.tracker.push(f); err != nil {
		p.diags.Add(Diagnostic{
			Range:    lineRange(l.index, 0, l.indent),
			Severity: SeverityError,
			Code:     CodeInternal,
			Message:  "internal error: " + err.Error(),
		})
	}
}

// verbatimItem handles one line inside a paths or raw block.
func (p *parser) verbatimItem(l line, top *frame) {
	caps := top.kind.caps()
	content := strings.TrimRight(l.content, " ")
	if caps.lineComments && strings.HasPrefix(content, "#") {
		p.emit(Token{Line: l.index, Col: l.indent, Length: runeLen(content), Kind: TokenComment})
		return
	}
	item := content
	if top.kind == BlockRaw {
		item = strings.TrimRight(stripColumns(l.text, top.indent), " ")
	}
	top.seq.Append(&String{Value: item})

	kind := TokenString
	if strings.HasPrefix(content, refMarker) {
		kind = TokenReference
	}
	p.emit(Token{Line: l.index, Col: l.indent, Length: runeLen(content), Kind: kind})
}

// listItem handles a "- value" line.
func (p *parser) listItem(l line, content string, top *frame) {
	p.emit(Token{Line: l.index, Col: l.indent, Length: 1, Kind: TokenOperator})
	if content == "-" {
		p.diags.Addf(lineRange(l.index, l.indent, l.indent+1), CodeMalformedLine,
			"list item requires a value")
		return
	}
	rest, lead := trimLeadingSpaces(content[2:])
	baseCol := l.indent + 2 + lead

	if top.mapping != nil {
		p.diags.Addf(lineRange(l.index, l.indent, l.indent+runeLen(content)), CodeMixedBlock,
			"list item in a block of keys")
	}
	pv := parseValue(rest, l.index, baseCol, top.kind.caps(), "")
	p.addValueDiag(pv)
	for _, t := range pv.tokens {
		p.emit(t)
	}
	if top.seq != nil {
		top.seq.Append(pv.node)
	}
}

// keyLine handles "key:", "key: value", and "key(hint): value" lines.
func (p *parser) keyLine(l line, kl keyLine, top *frame) {
	p.emit(Token{
		Line: l.index, Col: l.indent, Length: kl.keyLen,
		Kind: TokenKey, Modifiers: ModDeclaration, Hint: kl.hint,
	})

	hint := kl.hint
	if kl.hasHint && !knownHint(kl.hint) {
		hintStart := l.indent + runeLen(kl.key)
		p.diags.Addf(lineRange(l.index, hintStart, hintStart+runeLen(kl.hint)+2), CodeUnknownHint,
			"unrecognized type hint %q", kl.hint)
		hint = ""
	}

	if top.seq != nil {
		p.diags.Addf(lineRange(l.index, l.indent, l.indent+kl.keyLen), CodeMixedBlock,
			"key in a block of list items")
	}
	owner := top.mapping

	rest, lead := trimLeadingSpaces(kl.rest)
	restCol := l.indent + kl.keyLen + 1 + lead

	if rest == "" || rest == "|" || rest == ">" {
		attached := false
		if owner != nil {
			attached = owner.Set(kl.key, &Null{})
			if !attached {
				p.diags.Addf(lineRange(l.index, l.indent, l.indent+kl.keyLen), CodeDuplicateKey,
					"duplicate key %q; first value wins", kl.key)
			}
		}
		pd := &pendingValue{
			key:        kl.key,
			keyLine:    l.index,
			keyIndent:  l.indent,
			mode:       pendingBare,
			baseline:   -1,
			owner:      owner,
			attached:   attached,
			flatParent: top.kind.caps().flat,
		}
		switch rest {
		case "|":
			pd.mode = pendingLiteral
		case ">":
			pd.mode = pendingFolded
		default:
			if top.kind == BlockGeneric && !kl.hasHint {
				if nk, ok := namedKinds[kl.key]; ok {
					pd.named = true
					pd.namedKind = nk
				}
			}
		}
		if rest != "" {
			p.emit(Token{Line: l.index, Col: restCol, Length: 1, Kind: TokenOperator})
		}
		p.pending = pd
		return
	}

	pv := parseValue(rest, l.index, restCol, top.kind.caps(), hint)
	p.addValueDiag(pv)
	for _, t := range pv.tokens {
		p.emit(t)
	}
	if owner != nil && !owner.Set(kl.key, pv.node) {
		p.diags.Addf(lineRange(l.index, l.indent, l.indent+kl.keyLen), CodeDuplicateKey,
			"duplicate key %q; first value wins", kl.key)
	}
}

func (p *parser) addValueDiag(pv parsedValue) {
	if pv.errCode != "" {
		p.diags.Addf(pv.errRng, pv.errCode, "%s", pv.errMsg)
	}
}

func childPath(parent []string, key string) []string {
	path := make([]string, len(parent)+1)
	copy(path, parent)
	path[len(parent)] = key
	return path
}

func trimLeadingSpaces(s string) (string, int) {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return s[n:], n
}
