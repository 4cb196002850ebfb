// Package syntax scans a lexed token stream into content lines and
// assembles them into a tree of raw components via a BEGIN/END stack
// machine. It never aborts on malformed input: a bad content line is
// recorded with a local error and the scan continues; a BEGIN/END name
// mismatch is a recoverable error that keeps the best-guess structure.
package syntax

import (
	"strings"

	"github.com/aimcal/aim/ical/lex"
	"github.com/aimcal/aim/ical/span"
)

// ErrorKind distinguishes the recoverable lexical/syntactic errors this
// layer can produce.
type ErrorKind int

const (
	ErrUnterminatedQuote ErrorKind = iota
	ErrMissingColon
	ErrEmptyName
	ErrMismatchedNesting
	ErrUnexpectedEnd
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnterminatedQuote:
		return "unterminated quote"
	case ErrMissingColon:
		return "missing colon"
	case ErrEmptyName:
		return "empty property name"
	case ErrMismatchedNesting:
		return "mismatched BEGIN/END nesting"
	case ErrUnexpectedEnd:
		return "END without matching BEGIN"
	default:
		return "unknown syntax error"
	}
}

// Error is a recoverable lexical or syntactic diagnostic with a span.
type Error struct {
	Kind    ErrorKind
	Message string
	Span    span.Span
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

// ParamValue is one value of a (possibly list-valued) parameter, as
// written in the source — quoting is preserved but backslash escapes are
// not decoded here.
type ParamValue struct {
	Value  string
	Quoted bool
	Span   span.Span
}

// Param is a single `NAME=value[,value...]` parameter attached to a
// content line.
type Param struct {
	Name     string
	NameSpan span.Span
	Values   []ParamValue
	Span     span.Span
}

// ContentLine is one logical (unfolded) line of an iCalendar document:
// `NAME;param=value;...:VALUE`.
type ContentLine struct {
	Name      string
	NameSpan  span.Span
	Params    []Param
	Value     string
	ValueSpan span.Span
	Span      span.Span
	Err       *Error
}

// ParamValues returns the raw string values of the named parameter
// (case-insensitive), or nil if absent.
func (c *ContentLine) ParamValues(name string) []string {
	for _, p := range c.Params {
		if strings.EqualFold(p.Name, name) {
			out := make([]string, len(p.Values))
			for i, v := range p.Values {
				out[i] = v.Value
			}
			return out
		}
	}
	return nil
}

// Param1 returns the first value of the named parameter and whether it
// was present.
func (c *ContentLine) Param1(name string) (string, bool) {
	vs := c.ParamValues(name)
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// ScanLines tokenizes every logical line of src (after unfolding) into
// ContentLine records. A line-level error never stops the scan.
func ScanLines(src []byte) []ContentLine {
	logical := lex.Unfold(src)
	lines := make([]ContentLine, 0, len(logical))
	for _, segs := range logical {
		lines = append(lines, scanOne(segs))
	}
	return lines
}

func scanOne(segs []lex.Segment) ContentLine {
	joined := lex.Join(segs)
	full := lex.MapSpan(segs, span.Span{Start: 0, End: len(joined)})
	l := lex.New(joined, 0)

	line := ContentLine{Span: full}

	first := l.Next()
	if first.Kind != lex.Name {
		// Not a well-formed content line: record the whole line as the name,
		// flag it, and stop — the value layer has nothing to work with.
		line.Name = joined
		line.NameSpan = full
		line.Err = &Error{Kind: ErrEmptyName, Message: "content line does not start with a property/component name", Span: full}
		return line
	}
	line.Name = first.Value
	line.NameSpan = lex.MapSpan(segs, first.Span)

	tok := l.Next()
	for tok.Kind == lex.Semicolon {
		param, next, perr := scanParam(l, segs)
		line.Params = append(line.Params, param)
		if perr != nil {
			line.Err = perr
			return line
		}
		tok = next
	}

	if tok.Kind != lex.Colon {
		line.Err = &Error{Kind: ErrMissingColon, Message: "content line missing ':' before end of line", Span: lex.MapSpan(segs, tok.Span)}
		return line
	}

	valTok := l.Next()
	line.Value = valTok.Value
	line.ValueSpan = lex.MapSpan(segs, valTok.Span)
	return line
}

// scanParam consumes one `NAME=value[,value]` parameter starting after a
// semicolon has already been consumed by the caller, returning the
// parameter and the token that terminated it (the next `;` or `:`).
func scanParam(l *lex.Lexer, segs []lex.Segment) (Param, lex.Token, *Error) {
	nameTok := l.Next()
	if nameTok.Kind != lex.Name {
		return Param{}, lex.Token{}, &Error{Kind: ErrEmptyName, Message: "expected parameter name", Span: lex.MapSpan(segs, nameTok.Span)}
	}
	param := Param{Name: nameTok.Value, NameSpan: lex.MapSpan(segs, nameTok.Span)}

	eq := l.Next()
	if eq.Kind != lex.Equals {
		return Param{}, lex.Token{}, &Error{Kind: ErrMissingColon, Message: "expected '=' after parameter name", Span: lex.MapSpan(segs, eq.Span)}
	}

	start := nameTok.Span
	for {
		vt := l.Next()
		switch vt.Kind {
		case lex.QuotedString:
			// An unterminated quote consumes to end of line without a
			// closing '"', so its token spans one byte less than the
			// value plus both quotes.
			if vt.Span.End-vt.Span.Start < len(vt.Value)+2 {
				return param, lex.Token{}, &Error{Kind: ErrUnterminatedQuote, Message: "unterminated quoted parameter value", Span: lex.MapSpan(segs, vt.Span)}
			}
			param.Values = append(param.Values, ParamValue{Value: vt.Value, Quoted: true, Span: lex.MapSpan(segs, vt.Span)})
		case lex.Text, lex.Name:
			param.Values = append(param.Values, ParamValue{Value: vt.Value, Quoted: false, Span: lex.MapSpan(segs, vt.Span)})
		default:
			param.Span = lex.MapSpan(segs, span.Span{Start: start.Start, End: vt.Span.Start})
			return param, vt, nil
		}

		after := l.Next()
		if after.Kind != lex.Comma {
			param.Span = lex.MapSpan(segs, span.Span{Start: start.Start, End: after.Span.Start})
			return param, after, nil
		}
	}
}
