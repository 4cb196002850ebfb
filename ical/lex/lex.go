// Package lex turns a raw iCalendar byte stream into a flat token sequence.
//
// It performs RFC 5545 line unfolding (a CRLF followed by a single SP or
// HTAB continues the previous logical line) and splits each logical line
// into name/parameter/value tokens. Lexing never fails: malformed input
// becomes tokens the syntax layer rejects with spans, so a single bad
// content line never aborts the whole scan.
package lex

import "github.com/aimcal/aim/ical/span"

// Kind identifies a token category.
type Kind int

const (
	Name Kind = iota
	Equals
	Semicolon
	Colon
	Comma
	Text
	QuotedString
	EOL
	EOF
)

func (k Kind) String() string {
	switch k {
	case Name:
		return "NAME"
	case Equals:
		return "="
	case Semicolon:
		return ";"
	case Colon:
		return ":"
	case Comma:
		return ","
	case Text:
		return "TEXT"
	case QuotedString:
		return "QUOTED-STRING"
	case EOL:
		return "EOL"
	case EOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// Token is a single lexical unit with its source span.
type Token struct {
	Kind  Kind
	Value string
	Span  span.Span
}

// Segment is a slice of the original source buffer produced by unfolding,
// paired with the span it occupies in that buffer. Multiple segments join
// to form one logical (unfolded) line.
type Segment struct {
	Value string
	Span  span.Span
}

// Unfold splits src into logical lines, each represented as a sequence of
// segments. CRLF is the canonical separator; a bare LF is also accepted on
// input. A CRLF or LF immediately followed by a single SP or HTAB folds
// into the previous logical line rather than starting a new one.
func Unfold(src []byte) [][]Segment {
	var lines [][]Segment
	var cur []Segment
	lineStart := 0
	i := 0
	n := len(src)

	flushSegment := func(end int) {
		if end > lineStart {
			cur = append(cur, Segment{Value: string(src[lineStart:end]), Span: span.Span{Start: lineStart, End: end}})
		}
	}

	for i < n {
		c := src[i]
		if c == '\r' || c == '\n' {
			eolLen := 1
			if c == '\r' && i+1 < n && src[i+1] == '\n' {
				eolLen = 2
			}
			next := i + eolLen
			if next < n && (src[next] == ' ' || src[next] == '\t') {
				// Folded continuation: keep the segment up to the EOL, then
				// resume after the single whitespace fold marker.
				flushSegment(i)
				lineStart = next + 1
				i = lineStart
				continue
			}
			// Logical line ends here.
			flushSegment(i)
			if len(cur) > 0 {
				lines = append(lines, cur)
			}
			cur = nil
			i = next
			lineStart = i
			continue
		}
		i++
	}
	flushSegment(i)
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// Join concatenates the segments' values, preserving byte-exact
// concatenation of the original (unfolded) line.
func Join(segs []Segment) string {
	total := 0
	for _, s := range segs {
		total += len(s.Value)
	}
	buf := make([]byte, 0, total)
	for _, s := range segs {
		buf = append(buf, s.Value...)
	}
	return string(buf)
}

// LineSpan returns the span covering the first segment's start through the
// last segment's end, per the multi-segment string-storage invariant.
func LineSpan(segs []Segment) span.Span {
	if len(segs) == 0 {
		return span.Span{}
	}
	return span.Span{Start: segs[0].Span.Start, End: segs[len(segs)-1].Span.End}
}

// MapSpan translates a span relative to Join(segs) into an absolute
// source span. Folding can make the joined text's offsets discontinuous
// with the source buffer, so a flat base+offset computation is wrong once
// a token crosses a fold boundary: this walks the segment table instead.
func MapSpan(segs []Segment, rel span.Span) span.Span {
	return span.Span{Start: mapOffset(segs, rel.Start), End: mapOffset(segs, rel.End)}
}

// mapOffset finds the absolute source offset corresponding to a byte
// offset into Join(segs).
func mapOffset(segs []Segment, off int) int {
	consumed := 0
	for _, s := range segs {
		l := len(s.Value)
		if off <= consumed+l {
			return s.Span.Start + (off - consumed)
		}
		consumed += l
	}
	if len(segs) == 0 {
		return off
	}
	last := segs[len(segs)-1]
	return last.Span.End
}

// Lexer tokenizes one unfolded logical line at a time.
//
// Only the name/parameter prefix (up to the first unquoted colon) is
// tokenized structurally. Once that colon is consumed, the remainder of
// the line is a single opaque value token: RFC 5545 values may contain
// colons, semicolons, and commas with meanings that depend on the
// property's value kind, so splitting them here would be guesswork. The
// value parsers (package value) and text-list decoder own that split.
type Lexer struct {
	line      string
	base      int // offset of line[0] in the original source buffer
	pos       int
	valueMode bool
}

// New creates a Lexer over a single unfolded logical line. base is the
// source offset corresponding to line[0], used to compute absolute spans.
func New(line string, base int) *Lexer {
	return &Lexer{line: line, base: base}
}

func (l *Lexer) span(start, end int) span.Span {
	return span.Span{Start: l.base + start, End: l.base + end}
}

func isNameByte(c byte) bool {
	return c == '-' || (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// Next returns the next token. Once the line is exhausted it returns EOL
// tokens forever (callers should stop after receiving one).
func (l *Lexer) Next() Token {
	if l.pos >= len(l.line) {
		return Token{Kind: EOL, Span: l.span(l.pos, l.pos)}
	}

	if l.valueMode {
		start := l.pos
		l.pos = len(l.line)
		return Token{Kind: Text, Value: l.line[start:], Span: l.span(start, l.pos)}
	}

	c := l.line[l.pos]
	switch c {
	case '=':
		t := Token{Kind: Equals, Value: "=", Span: l.span(l.pos, l.pos+1)}
		l.pos++
		return t
	case ';':
		t := Token{Kind: Semicolon, Value: ";", Span: l.span(l.pos, l.pos+1)}
		l.pos++
		return t
	case ':':
		t := Token{Kind: Colon, Value: ":", Span: l.span(l.pos, l.pos+1)}
		l.pos++
		l.valueMode = true
		return t
	case ',':
		t := Token{Kind: Comma, Value: ",", Span: l.span(l.pos, l.pos+1)}
		l.pos++
		return t
	case '"':
		return l.quotedString()
	}

	if isNameByte(c) {
		return l.name()
	}
	return l.text()
}

func (l *Lexer) name() Token {
	start := l.pos
	for l.pos < len(l.line) && isNameByte(l.line[l.pos]) {
		l.pos++
	}
	return Token{Kind: Name, Value: l.line[start:l.pos], Span: l.span(start, l.pos)}
}

// quotedString passes characters through literally until the closing
// quote; backslash escapes are decoded later, by the value layer, not
// here. An unterminated quote yields everything to end of line as the
// token value — the syntax layer is responsible for flagging the error.
func (l *Lexer) quotedString() Token {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.line) && l.line[l.pos] != '"' {
		l.pos++
	}
	if l.pos < len(l.line) {
		l.pos++ // closing quote
		return Token{Kind: QuotedString, Value: l.line[start+1 : l.pos-1], Span: l.span(start, l.pos)}
	}
	// Unterminated: value omits the (missing) closing quote.
	return Token{Kind: QuotedString, Value: l.line[start+1:], Span: l.span(start, l.pos)}
}

// text consumes a run of characters that aren't one of the structural
// delimiters, used for unquoted parameter values (the property value
// after the colon is returned whole by Next's value mode instead).
func (l *Lexer) text() Token {
	start := l.pos
	for l.pos < len(l.line) {
		switch l.line[l.pos] {
		case '=', ';', ':', ',', '"':
			goto done
		}
		l.pos++
	}
done:
	return Token{Kind: Text, Value: l.line[start:l.pos], Span: l.span(start, l.pos)}
}
