package sll

import "fmt"

// TokenKind classifies SLL tokens.
type TokenKind string

const (
	TokEOF   TokenKind = "EOF"
	TokIdent TokenKind = "IDENT"
	TokPunct TokenKind = "PUNCT"
)

// Token is a lexeme with its byte offset in the source.
type Token struct {
	Kind TokenKind
	Val  string
	Pos  int
}

func (t Token) String() string {
	if t.Kind == TokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Val)
}

// Lexer splits SLL source into tokens. Whitespace is insignificant and
// '#' starts a comment running to the end of the line.
type Lexer struct {
	Text   string
	Pos    int
	Buffer *Token
}

// NewLexer creates a lexer over text.
func NewLexer(text string) *Lexer {
	return &Lexer{Text: text}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() Token {
	if l.Buffer == nil {
		tok := l.nextToken()
		l.Buffer = &tok
	}
	return *l.Buffer
}

// Next consumes and returns the next token.
func (l *Lexer) Next() Token {
	if l.Buffer != nil {
		tok := *l.Buffer
		l.Buffer = nil
		return tok
	}
	return l.nextToken()
}

// Expect consumes the next token and panics with a *ParseError unless it
// has the given kind and, when value is not empty, the given value.
func (l *Lexer) Expect(kind TokenKind, value string) Token {
	tok := l.Next()
	if tok.Kind != kind || (value != "" && tok.Val != value) {
		want := string(kind)
		if value != "" {
			want = fmt.Sprintf("%q", value)
		}
		panic(&ParseError{Pos: tok.Pos, Msg: fmt.Sprintf("expected %s, found %s", want, tok)})
	}
	return tok
}

func (l *Lexer) skipWsComments() {
	for l.Pos < len(l.Text) {
		ch := l.Text[l.Pos]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v' {
			l.Pos++
			continue
		}
		if ch == '#' {
			for l.Pos < len(l.Text) && l.Text[l.Pos] != '\n' {
				l.Pos++
			}
			continue
		}
		break
	}
}

func (l *Lexer) nextToken() Token {
	l.skipWsComments()
	if l.Pos >= len(l.Text) {
		return Token{Kind: TokEOF, Pos: l.Pos}
	}

	start := l.Pos
	ch := l.Text[l.Pos]
	switch {
	case ch == '(' || ch == ')' || ch == ',' || ch == '=' || ch == ';':
		l.Pos++
		return Token{Kind: TokPunct, Val: string(ch), Pos: start}
	case isLetter(ch):
		for l.Pos < len(l.Text) && isWordChar(l.Text[l.Pos]) {
			l.Pos++
		}
		return Token{Kind: TokIdent, Val: l.Text[start:l.Pos], Pos: start}
	}
	panic(&ParseError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", ch)})
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isWordChar(ch byte) bool {
	return isLetter(ch) || ('0' <= ch && ch <= '9') || ch == '_'
}

func isUpper(ch byte) bool {
	return 'A' <= ch && ch <= 'Z'
}

func isLower(ch byte) bool {
	return 'a' <= ch && ch <= 'z'
}
