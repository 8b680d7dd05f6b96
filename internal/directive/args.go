package directive

import (
	"strings"

	"cite/internal/source"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokEq
	tokComma
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of directive"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokEq:
		return "'='"
	case tokComma:
		return "','"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	}
	return "unknown token"
}

type token struct {
	kind tokenKind
	text string // decoded value for strings, literal text otherwise
	span source.Span
}

// argScanner tokenizes a directive's argument text. Offsets are
// absolute file offsets so every token carries a reportable span.
type argScanner struct {
	file source.FileID
	text string
	base uint32
	pos  int
}

func newArgScanner(file source.FileID, text string, base uint32) *argScanner {
	return &argScanner{file: file, text: text, base: base}
}

func (s *argScanner) spanAt(start, end int) source.Span {
	return source.Span{
		File:  s.file,
		Start: s.base + mustU32(start),
		End:   s.base + mustU32(end),
	}
}

func (s *argScanner) skipSpaces() {
	for s.pos < len(s.text) && (s.text[s.pos] == ' ' || s.text[s.pos] == '\t') {
		s.pos++
	}
}

// next returns the next token or a ParseError for bytes the directive
// grammar has no place for.
func (s *argScanner) next() (token, *ParseError) {
	s.skipSpaces()
	if s.pos >= len(s.text) {
		return token{kind: tokEOF, span: s.spanAt(s.pos, s.pos)}, nil
	}

	start := s.pos
	ch := s.text[s.pos]
	switch {
	case ch == '=':
		s.pos++
		return token{kind: tokEq, text: "=", span: s.spanAt(start, s.pos)}, nil
	case ch == ',':
		s.pos++
		return token{kind: tokComma, text: ",", span: s.spanAt(start, s.pos)}, nil
	case ch == '(':
		s.pos++
		return token{kind: tokLParen, text: "(", span: s.spanAt(start, s.pos)}, nil
	case ch == ')':
		s.pos++
		return token{kind: tokRParen, text: ")", span: s.spanAt(start, s.pos)}, nil
	case ch == '"':
		return s.scanString()
	case isIdentStart(ch):
		for s.pos < len(s.text) && isIdentByte(s.text[s.pos]) {
			s.pos++
		}
		return token{kind: tokIdent, text: s.text[start:s.pos], span: s.spanAt(start, s.pos)}, nil
	}
	return token{}, malformed(s.spanAt(start, start+1), "unexpected character %q in directive arguments", string(ch))
}

// scanString decodes a double-quoted string with \" \\ \n \t escapes.
func (s *argScanner) scanString() (token, *ParseError) {
	start := s.pos
	s.pos++ // opening quote
	var b strings.Builder
	for s.pos < len(s.text) {
		ch := s.text[s.pos]
		switch ch {
		case '"':
			s.pos++
			return token{kind: tokString, text: b.String(), span: s.spanAt(start, s.pos)}, nil
		case '\\':
			if s.pos+1 >= len(s.text) {
				return token{}, malformed(s.spanAt(start, s.pos+1), "unterminated string in directive arguments")
			}
			s.pos++
			switch s.text[s.pos] {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				return token{}, malformed(s.spanAt(s.pos-1, s.pos+1), "unsupported escape \\%s in directive string", string(s.text[s.pos]))
			}
			s.pos++
		default:
			b.WriteByte(ch)
			s.pos++
		}
	}
	return token{}, malformed(s.spanAt(start, len(s.text)), "unterminated string in directive arguments")
}

func isIdentStart(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}
