package lexer

import (
	"fmt"
	"strconv"

	"lox/interpreter-go/pkg/token"
)

// LexError reports a scanning failure with a 1-based source position.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("[line %d:%d] %s", e.Line, e.Col, e.Msg)
}

// Lexer scans Lox source into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 1-based column of cur within line
	tokens []token.Token

	// position of the current token's first byte
	tokStartLine int
	tokStartCol  int
}

// New creates a lexer for the given source.
func New(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  1,
	}
}

// Scan tokenizes the whole source, ending with an EOF token. It stops at the
// first lexical error.
func (l *Lexer) Scan() ([]token.Token, error) {
	for !l.isAtEnd() {
		l.skipIgnored()
		if l.isAtEnd() {
			break
		}
		l.start = l.cur
		l.tokStartLine = l.line
		l.tokStartCol = l.col
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, token.Token{Type: token.EOF, Line: l.line, Column: l.col})
	return l.tokens, nil
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.cur]
}

func (l *Lexer) peekNext() byte {
	if l.cur+1 >= len(l.src) {
		return 0
	}
	return l.src[l.cur+1]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

// match consumes the next byte when it equals expected.
func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.src[l.cur] != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) skipIgnored() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			if l.peekNext() != '/' {
				return
			}
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) addToken(tt token.Type, literal any) {
	l.tokens = append(l.tokens, token.Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: literal,
		Line:    l.tokStartLine,
		Column:  l.tokStartCol,
	})
}

func (l *Lexer) errorf(format string, args ...any) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: fmt.Sprintf(format, args...)}
}

func (l *Lexer) scanToken() error {
	ch := l.advance()
	switch ch {
	case '(':
		l.addToken(token.LPAREN, nil)
	case ')':
		l.addToken(token.RPAREN, nil)
	case '{':
		l.addToken(token.LBRACE, nil)
	case '}':
		l.addToken(token.RBRACE, nil)
	case ',':
		l.addToken(token.COMMA, nil)
	case '.':
		l.addToken(token.DOT, nil)
	case ';':
		l.addToken(token.SEMICOLON, nil)
	case '+':
		l.addToken(token.PLUS, nil)
	case '-':
		l.addToken(token.MINUS, nil)
	case '*':
		l.addToken(token.STAR, nil)
	case '/':
		l.addToken(token.SLASH, nil)
	case '!':
		if l.match('=') {
			l.addToken(token.NEQ, nil)
		} else {
			l.addToken(token.BANG, nil)
		}
	case '=':
		if l.match('=') {
			l.addToken(token.EQ, nil)
		} else {
			l.addToken(token.ASSIGN, nil)
		}
	case '<':
		if l.match('=') {
			l.addToken(token.LESS_EQ, nil)
		} else {
			l.addToken(token.LESS, nil)
		}
	case '>':
		if l.match('=') {
			l.addToken(token.GREATER_EQ, nil)
		} else {
			l.addToken(token.GREATER, nil)
		}
	case '"':
		return l.scanString()
	default:
		if isDigit(ch) {
			return l.scanNumber()
		}
		if isAlpha(ch) {
			l.scanIdentifier()
			return nil
		}
		return l.errorf("unexpected character %q", ch)
	}
	return nil
}

func (l *Lexer) scanString() error {
	for !l.isAtEnd() && l.peek() != '"' {
		l.advance()
	}
	if l.isAtEnd() {
		return l.errorf("unterminated string")
	}
	l.advance() // closing quote
	value := l.src[l.start+1 : l.cur-1]
	l.addToken(token.STRING, value)
	return nil
}

func (l *Lexer) scanNumber() error {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	value, err := strconv.ParseFloat(l.src[l.start:l.cur], 64)
	if err != nil {
		return l.errorf("invalid number literal %q", l.src[l.start:l.cur])
	}
	l.addToken(token.NUMBER, value)
	return nil
}

func (l *Lexer) scanIdentifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	lexeme := l.src[l.start:l.cur]
	if tt, ok := token.Keywords[lexeme]; ok {
		switch tt {
		case token.TRUE:
			l.addToken(tt, true)
		case token.FALSE:
			l.addToken(tt, false)
		default:
			l.addToken(tt, nil)
		}
		return
	}
	l.addToken(token.IDENT, nil)
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlphaNumeric(ch byte) bool { return isAlpha(ch) || isDigit(ch) }
