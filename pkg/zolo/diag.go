package zolo

import (
	"fmt"
	"strings"
)

// Severity grades a diagnostic. Values match the LSP severity scale.
type Severity int

const (
	SeverityError       Severity = 1
	SeverityWarning     Severity = 2
	SeverityInformation Severity = 3
	SeverityHint        Severity = 4
)

// Diagnostic codes. Syntax and type problems are recoverable and never
// stop a parse; CodeInternal marks a parser bug rather than bad input.
const (
	CodeTabIndent      = "Z0001"
	CodeBadIndent      = "Z0002"
	CodeUnknownDedent  = "Z0003"
	CodeMalformedLine  = "Z0004"
	CodeDuplicateKey   = "Z0005"
	CodeTypeMismatch   = "Z0006"
	CodeUnknownHint    = "Z0007"
	CodeMixedBlock     = "Z0008"
	CodeUnterminated   = "Z0009"
	CodeBadEscape      = "Z0010"
	CodeNestingInBlock = "Z0011"
	CodeInternal       = "Z0999"
)

// Diagnostic is a problem found during parsing. Diagnostics are data:
// they are collected and returned, never thrown.
type Diagnostic struct {
	Range    Range
	Severity Severity
	Code     string
	Message  string
}

// Error implements the error interface, formatting the diagnostic the
// way compilers print positions (1-based line and column).
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Range.Start.Line+1, d.Range.Start.Col+1, d.Code, d.Message)
}

// DiagnosticList accumulates diagnostics in source order.
type DiagnosticList struct {
	diags []Diagnostic
}

// Add appends a diagnostic.
func (dl *DiagnosticList) Add(d Diagnostic) {
	dl.diags = append(dl.diags, d)
}

// Addf creates and appends an error-severity diagnostic.
func (dl *DiagnosticList) Addf(rng Range, code string, format string, args ...any) {
	dl.diags = append(dl.diags, Diagnostic{
		Range:    rng,
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Len returns the number of collected diagnostics.
func (dl *DiagnosticList) Len() int {
	return len(dl.diags)
}

// Diagnostics returns the collected diagnostics.
func (dl *DiagnosticList) Diagnostics() []Diagnostic {
	return dl.diags
}

// ParseError aggregates diagnostics for the strict loading API.
type ParseError struct {
	Diagnostics []Diagnostic
}

// Error implements the error interface, joining all diagnostics.
func (e *ParseError) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].Error()
	}
	var sb strings.Builder
	for i, d := range e.Diagnostics {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(d.Error())
	}
	return sb.String()
}
