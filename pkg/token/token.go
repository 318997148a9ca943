package token

import "fmt"

// Type identifies the lexical category of a token.
type Type int

const (
	// Special
	EOF Type = iota
	ILLEGAL

	// Punctuation
	LPAREN // "("
	RPAREN // ")"
	LBRACE // "{"
	RBRACE // "}"
	COMMA
	DOT
	SEMICOLON

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	BANG
	ASSIGN     // "="
	EQ         // "=="
	NEQ        // "!="
	LESS       // "<"
	LESS_EQ    // "<="
	GREATER    // ">"
	GREATER_EQ // ">="

	// Literals & identifiers
	IDENT
	STRING
	NUMBER

	// Keywords
	AND
	CLASS
	ELSE
	FALSE
	FOR
	FUN
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE
)

var typeNames = map[Type]string{
	EOF:        "EOF",
	ILLEGAL:    "ILLEGAL",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACE:     "{",
	RBRACE:     "}",
	COMMA:      ",",
	DOT:        ".",
	SEMICOLON:  ";",
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	BANG:       "!",
	ASSIGN:     "=",
	EQ:         "==",
	NEQ:        "!=",
	LESS:       "<",
	LESS_EQ:    "<=",
	GREATER:    ">",
	GREATER_EQ: ">=",
	IDENT:      "identifier",
	STRING:     "string",
	NUMBER:     "number",
	AND:        "and",
	CLASS:      "class",
	ELSE:       "else",
	FALSE:      "false",
	FOR:        "for",
	FUN:        "fun",
	IF:         "if",
	NIL:        "nil",
	OR:         "or",
	PRINT:      "print",
	RETURN:     "return",
	SUPER:      "super",
	THIS:       "this",
	TRUE:       "true",
	VAR:        "var",
	WHILE:      "while",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown_token_%d", int(t))
}

// Keywords maps reserved words to their token types.
var Keywords = map[string]Type{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// Token is a lexical token with its source position. Line and Column are
// 1-based. Literal carries the decoded value for STRING and NUMBER tokens.
type Token struct {
	Type    Type
	Lexeme  string
	Literal any
	Line    int
	Column  int
}

func (t Token) String() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", t.Lexeme)
}
