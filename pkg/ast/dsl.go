package ast

import "lox/interpreter-go/pkg/token"

// Short constructors for building trees by hand in tests. Tokens built here
// carry no useful position; the parser is the only producer of real spans.

func nameTok(name string) token.Token {
	return token.Token{Type: token.IDENT, Lexeme: name}
}

func opTok(tt token.Type, lexeme string) token.Token {
	return token.Token{Type: tt, Lexeme: lexeme}
}

var operatorTypes = map[string]token.Type{
	"+":   token.PLUS,
	"-":   token.MINUS,
	"*":   token.STAR,
	"/":   token.SLASH,
	"!":   token.BANG,
	"==":  token.EQ,
	"!=":  token.NEQ,
	"<":   token.LESS,
	"<=":  token.LESS_EQ,
	">":   token.GREATER,
	">=":  token.GREATER_EQ,
	"and": token.AND,
	"or":  token.OR,
}

func Op(lexeme string) token.Token {
	if tt, ok := operatorTypes[lexeme]; ok {
		return opTok(tt, lexeme)
	}
	return opTok(token.ILLEGAL, lexeme)
}

// Literal helpers.

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

// Expression helpers.

func Ref(name string) *Variable {
	return NewVariable(nameTok(name))
}

func AssignTo(name string, value Expression) *Assign {
	return NewAssign(nameTok(name), value)
}

func GetProp(object Expression, name string) *Get {
	return NewGet(object, nameTok(name))
}

func SetProp(object Expression, name string, value Expression) *Set {
	return NewSet(object, nameTok(name), value)
}

func Group(expr Expression) *Grouping {
	return NewGrouping(expr)
}

func Bin(operator string, left, right Expression) *Binary {
	return NewBinary(left, Op(operator), right)
}

func Logic(operator string, left, right Expression) *Logical {
	return NewLogical(left, Op(operator), right)
}

func Un(operator string, operand Expression) *Unary {
	return NewUnary(Op(operator), operand)
}

func CallExpr(callee Expression, args ...Expression) *Call {
	return NewCall(callee, opTok(token.RPAREN, ")"), args)
}

func Self() *This {
	return NewThis(opTok(token.THIS, "this"))
}

// Statement helpers.

func Print(expr Expression) *PrintStmt {
	return NewPrintStmt(expr)
}

func ExprStmt(expr Expression) *ExpressionStmt {
	return NewExpressionStmt(expr)
}

func Var(name string, initializer Expression) *VarDecl {
	return NewVarDecl(nameTok(name), initializer)
}

func BlockOf(statements ...Statement) *Block {
	return NewBlock(statements)
}

func If(condition Expression, then Statement, elseBranch Statement) *IfStmt {
	return NewIfStmt(condition, then, elseBranch)
}

func While(condition Expression, body Statement) *WhileStmt {
	return NewWhileStmt(condition, body)
}

func Fun(name string, params []string, body ...Statement) *FunctionDecl {
	tokens := make([]token.Token, 0, len(params))
	for _, p := range params {
		tokens = append(tokens, nameTok(p))
	}
	return NewFunctionDecl(nameTok(name), tokens, NewBlock(body))
}

func Return(value Expression) *ReturnStmt {
	return NewReturnStmt(opTok(token.RETURN, "return"), value)
}

func Class(name string, superclass string, methods ...*FunctionDecl) *ClassDecl {
	var super *Variable
	if superclass != "" {
		super = Ref(superclass)
	}
	return NewClassDecl(nameTok(name), super, methods)
}

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}
