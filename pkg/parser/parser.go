package parser

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/lexer"
	"lox/interpreter-go/pkg/token"
)

// ParseError reports a syntax failure at a specific token.
type ParseError struct {
	Tok token.Token
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %d:%d] parse error at %s: %s", e.Tok.Line, e.Tok.Column, e.Tok, e.Msg)
}

// Parser builds an AST from a token stream by recursive descent. Precedence,
// tightest last: assignment, or, and, equality, comparison, additive,
// multiplicative, unary, call/property, primary.
type Parser struct {
	tokens []token.Token
	cur    int
}

// New creates a parser over a pre-scanned token stream. The stream must end
// with an EOF token.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseSource scans and parses a complete source string.
func ParseSource(src string) (*ast.Program, error) {
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		return nil, err
	}
	return New(tokens).ParseProgram()
}

// ParseProgram consumes the whole stream as a sequence of declarations.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	var statements []ast.Statement
	for !p.check(token.EOF) {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return ast.NewProgram(statements), nil
}

// ParseExpression consumes the stream as a single expression. Used by the
// REPL to evaluate expression input.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.check(token.EOF) && !p.check(token.SEMICOLON) {
		return nil, p.errorAtCurrent("unexpected trailing input")
	}
	return expr, nil
}

//-----------------------------------------------------------------------------
// Declarations & statements
//-----------------------------------------------------------------------------

func (p *Parser) declaration() (ast.Statement, error) {
	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.IDENT, "expected class name")
	if err != nil {
		return nil, err
	}
	var superclass *ast.Variable
	if p.match(token.LESS) {
		superName, err := p.consume(token.IDENT, "expected superclass name")
		if err != nil {
			return nil, err
		}
		superclass = ast.NewVariable(superName)
	}
	if _, err := p.consume(token.LBRACE, "expected '{' before class body"); err != nil {
		return nil, err
	}
	var methods []*ast.FunctionDecl
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		method, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if _, err := p.consume(token.RBRACE, "expected '}' after class body"); err != nil {
		return nil, err
	}
	return ast.NewClassDecl(name, superclass, methods), nil
}

func (p *Parser) function(kind string) (*ast.FunctionDecl, error) {
	name, err := p.consume(token.IDENT, "expected "+kind+" name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LPAREN, "expected '(' after "+kind+" name"); err != nil {
		return nil, err
	}
	var params []token.Token
	if !p.check(token.RPAREN) {
		for {
			param, err := p.consume(token.IDENT, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LBRACE, "expected '{' before "+kind+" body"); err != nil {
		return nil, err
	}
	body, err := p.blockStatements()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDecl(name, params, ast.NewBlock(body)), nil
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.IDENT, "expected variable name")
	if err != nil {
		return nil, err
	}
	var initializer ast.Expression
	if p.match(token.ASSIGN) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return ast.NewVarDecl(name, initializer), nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.LBRACE):
		statements, err := p.blockStatements()
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(statements), nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after value"); err != nil {
		return nil, err
	}
	return ast.NewPrintStmt(expr), nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()
	var value ast.Expression
	if !p.check(token.SEMICOLON) {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		value = expr
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return ast.NewReturnStmt(keyword, value), nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LPAREN, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after if condition"); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Statement
	if p.match(token.ELSE) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfStmt(condition, then, elseBranch), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LPAREN, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStmt(condition, body), nil
}

// forStatement desugars `for (init; cond; step) body` into a while loop
// wrapped in a block that owns the initializer's scope.
func (p *Parser) forStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LPAREN, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var initializer ast.Statement
	var err error
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer, err = p.varDeclaration()
		if err != nil {
			return nil, err
		}
	default:
		initializer, err = p.expressionStatement()
		if err != nil {
			return nil, err
		}
	}

	var condition ast.Expression
	if !p.check(token.SEMICOLON) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after loop condition"); err != nil {
		return nil, err
	}

	var step ast.Expression
	if !p.check(token.RPAREN) {
		step, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if step != nil {
		body = ast.NewBlock([]ast.Statement{body, ast.NewExpressionStmt(step)})
	}
	if condition == nil {
		condition = ast.NewBooleanLiteral(true)
	}
	var loop ast.Statement = ast.NewWhileStmt(condition, body)
	if initializer != nil {
		loop = ast.NewBlock([]ast.Statement{initializer, loop})
	}
	return loop, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return ast.NewExpressionStmt(expr), nil
}

func (p *Parser) blockStatements() ([]ast.Statement, error) {
	var statements []ast.Statement
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(token.RBRACE, "expected '}' after block"); err != nil {
		return nil, err
	}
	return statements, nil
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}
	if !p.match(token.ASSIGN) {
		return expr, nil
	}
	equals := p.previous()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	switch target := expr.(type) {
	case *ast.Variable:
		return ast.NewAssign(target.Name, value), nil
	case *ast.Get:
		return ast.NewSet(target.Object, target.Name, value), nil
	default:
		return nil, &ParseError{Tok: equals, Msg: "invalid assignment target"}
	}
}

func (p *Parser) logicOr() (ast.Expression, error) {
	return p.binaryLevel(p.logicAnd, true, token.OR)
}

func (p *Parser) logicAnd() (ast.Expression, error) {
	return p.binaryLevel(p.equality, true, token.AND)
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binaryLevel(p.comparison, false, token.EQ, token.NEQ)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binaryLevel(p.additive, false, token.GREATER, token.GREATER_EQ, token.LESS, token.LESS_EQ)
}

func (p *Parser) additive() (ast.Expression, error) {
	return p.binaryLevel(p.multiplicative, false, token.PLUS, token.MINUS)
}

func (p *Parser) multiplicative() (ast.Expression, error) {
	return p.binaryLevel(p.unary, false, token.STAR, token.SLASH)
}

// binaryLevel parses one left-associative precedence level. Logical levels
// produce Logical nodes so the evaluator can short-circuit.
func (p *Parser) binaryLevel(next func() (ast.Expression, error), logical bool, types ...token.Type) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(types...) {
		operator := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		if logical {
			expr = ast.NewLogical(expr, operator, right)
		} else {
			expr = ast.NewBinary(expr, operator, right)
		}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(token.BANG, token.MINUS) {
		operator := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(operator, operand), nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(token.LPAREN):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(token.DOT):
			name, err := p.consume(token.IDENT, "expected property name after '.'")
			if err != nil {
				return nil, err
			}
			expr = ast.NewGet(expr, name)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	var args []ast.Expression
	if !p.check(token.RPAREN) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren, err := p.consume(token.RPAREN, "expected ')' after arguments")
	if err != nil {
		return nil, err
	}
	return ast.NewCall(callee, paren, args), nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(token.NUMBER):
		return ast.NewNumberLiteral(p.previous().Literal.(float64)), nil
	case p.match(token.STRING):
		return ast.NewStringLiteral(p.previous().Literal.(string)), nil
	case p.match(token.TRUE):
		return ast.NewBooleanLiteral(true), nil
	case p.match(token.FALSE):
		return ast.NewBooleanLiteral(false), nil
	case p.match(token.NIL):
		return ast.NewNilLiteral(), nil
	case p.match(token.THIS):
		return ast.NewThis(p.previous()), nil
	case p.match(token.IDENT):
		return ast.NewVariable(p.previous()), nil
	case p.match(token.LPAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return ast.NewGrouping(expr), nil
	default:
		return nil, p.errorAtCurrent("expected expression")
	}
}

//-----------------------------------------------------------------------------
// Token stream helpers
//-----------------------------------------------------------------------------

func (p *Parser) peek() token.Token {
	if p.cur >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.cur]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.cur-1]
}

func (p *Parser) check(tt token.Type) bool {
	return p.peek().Type == tt
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Type != token.EOF {
		p.cur++
	}
	return tok
}

func (p *Parser) match(types ...token.Type) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt token.Type, msg string) (token.Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAtCurrent(msg)
}

func (p *Parser) errorAtCurrent(msg string) error {
	return &ParseError{Tok: p.peek(), Msg: msg}
}
