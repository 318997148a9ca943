package parser

import (
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, err := ParseSource(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return program
}

func parseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	program := parseProgram(t, src+";")
	if len(program.Statements) != 1 {
		t.Fatalf("expected one statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected expression statement, got %s", program.Statements[0].NodeType())
	}
	return stmt.Expr
}

func TestParseVarDeclaration(t *testing.T) {
	program := parseProgram(t, "var x = 1;")
	decl, ok := program.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected var declaration, got %s", program.Statements[0].NodeType())
	}
	if decl.Name.Lexeme != "x" {
		t.Fatalf("unexpected name %q", decl.Name.Lexeme)
	}
	lit, ok := decl.Initializer.(*ast.NumberLiteral)
	if !ok || lit.Value != 1 {
		t.Fatalf("unexpected initializer %#v", decl.Initializer)
	}
}

func TestParseVarDeclarationWithoutInitializer(t *testing.T) {
	program := parseProgram(t, "var x;")
	decl := program.Statements[0].(*ast.VarDecl)
	if decl.Initializer != nil {
		t.Fatalf("expected nil initializer, got %#v", decl.Initializer)
	}
}

func TestParseAdditiveBindsTighterThanComparison(t *testing.T) {
	expr := parseExpr(t, "1 + 2 < 3 * 4")
	cmp, ok := expr.(*ast.Binary)
	if !ok || cmp.Operator.Type != token.LESS {
		t.Fatalf("expected comparison at root, got %#v", expr)
	}
	left, ok := cmp.Left.(*ast.Binary)
	if !ok || left.Operator.Type != token.PLUS {
		t.Fatalf("expected addition on the left, got %#v", cmp.Left)
	}
	right, ok := cmp.Right.(*ast.Binary)
	if !ok || right.Operator.Type != token.STAR {
		t.Fatalf("expected multiplication on the right, got %#v", cmp.Right)
	}
}

func TestParseMultiplicativeBindsTighterThanAdditive(t *testing.T) {
	expr := parseExpr(t, "1 + 2 * 3")
	add, ok := expr.(*ast.Binary)
	if !ok || add.Operator.Type != token.PLUS {
		t.Fatalf("expected addition at root, got %#v", expr)
	}
	mul, ok := add.Right.(*ast.Binary)
	if !ok || mul.Operator.Type != token.STAR {
		t.Fatalf("expected multiplication under addition, got %#v", add.Right)
	}
}

func TestParseLogicalPrecedence(t *testing.T) {
	// or is looser than and: a or b and c => a or (b and c)
	expr := parseExpr(t, "a or b and c")
	or, ok := expr.(*ast.Logical)
	if !ok || or.Operator.Type != token.OR {
		t.Fatalf("expected or at root, got %#v", expr)
	}
	and, ok := or.Right.(*ast.Logical)
	if !ok || and.Operator.Type != token.AND {
		t.Fatalf("expected and under or, got %#v", or.Right)
	}
}

func TestParseEqualityLooserThanComparison(t *testing.T) {
	expr := parseExpr(t, "a < b == c < d")
	eq, ok := expr.(*ast.Binary)
	if !ok || eq.Operator.Type != token.EQ {
		t.Fatalf("expected equality at root, got %#v", expr)
	}
}

func TestParseUnaryChain(t *testing.T) {
	expr := parseExpr(t, "!!ok")
	outer, ok := expr.(*ast.Unary)
	if !ok || outer.Operator.Type != token.BANG {
		t.Fatalf("expected unary at root, got %#v", expr)
	}
	if _, ok := outer.Operand.(*ast.Unary); !ok {
		t.Fatalf("expected nested unary, got %#v", outer.Operand)
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	expr := parseExpr(t, "a = b = 1")
	assign, ok := expr.(*ast.Assign)
	if !ok || assign.Name.Lexeme != "a" {
		t.Fatalf("expected assignment to a, got %#v", expr)
	}
	inner, ok := assign.Value.(*ast.Assign)
	if !ok || inner.Name.Lexeme != "b" {
		t.Fatalf("expected nested assignment to b, got %#v", assign.Value)
	}
}

func TestParsePropertyAssignment(t *testing.T) {
	expr := parseExpr(t, "point.x = 1")
	set, ok := expr.(*ast.Set)
	if !ok {
		t.Fatalf("expected set expression, got %#v", expr)
	}
	if set.Name.Lexeme != "x" {
		t.Fatalf("unexpected property %q", set.Name.Lexeme)
	}
	obj, ok := set.Object.(*ast.Variable)
	if !ok || obj.Name.Lexeme != "point" {
		t.Fatalf("unexpected object %#v", set.Object)
	}
}

func TestParseChainedCallsAndProperties(t *testing.T) {
	expr := parseExpr(t, "obj.method(1)(2).field")
	get, ok := expr.(*ast.Get)
	if !ok || get.Name.Lexeme != "field" {
		t.Fatalf("expected property access at root, got %#v", expr)
	}
	outerCall, ok := get.Object.(*ast.Call)
	if !ok || len(outerCall.Arguments) != 1 {
		t.Fatalf("expected call under property, got %#v", get.Object)
	}
	innerCall, ok := outerCall.Callee.(*ast.Call)
	if !ok {
		t.Fatalf("expected nested call, got %#v", outerCall.Callee)
	}
	if _, ok := innerCall.Callee.(*ast.Get); !ok {
		t.Fatalf("expected method access at the bottom, got %#v", innerCall.Callee)
	}
}

func TestParseCallArgumentsInOrder(t *testing.T) {
	expr := parseExpr(t, "f(1, 2, 3)")
	call := expr.(*ast.Call)
	if len(call.Arguments) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(call.Arguments))
	}
	for idx, want := range []float64{1, 2, 3} {
		lit, ok := call.Arguments[idx].(*ast.NumberLiteral)
		if !ok || lit.Value != want {
			t.Fatalf("argument %d: expected %v, got %#v", idx, want, call.Arguments[idx])
		}
	}
}

func TestParseGrouping(t *testing.T) {
	expr := parseExpr(t, "(1 + 2) * 3")
	mul, ok := expr.(*ast.Binary)
	if !ok || mul.Operator.Type != token.STAR {
		t.Fatalf("expected multiplication at root, got %#v", expr)
	}
	if _, ok := mul.Left.(*ast.Grouping); !ok {
		t.Fatalf("expected grouping on the left, got %#v", mul.Left)
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	program := parseProgram(t, "fun add(a, b) { return a + b; }")
	fn, ok := program.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected function declaration, got %s", program.Statements[0].NodeType())
	}
	if fn.Name.Lexeme != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected signature %q/%d", fn.Name.Lexeme, len(fn.Params))
	}
	if _, ok := fn.Body.Statements[0].(*ast.ReturnStmt); !ok {
		t.Fatalf("expected return in body, got %#v", fn.Body.Statements[0])
	}
}

func TestParseClassDeclaration(t *testing.T) {
	program := parseProgram(t, "class Point < Base { init(x) { this.x = x; } norm() { return this.x; } }")
	class, ok := program.Statements[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected class declaration, got %s", program.Statements[0].NodeType())
	}
	if class.Name.Lexeme != "Point" {
		t.Fatalf("unexpected class name %q", class.Name.Lexeme)
	}
	if class.Superclass == nil || class.Superclass.Name.Lexeme != "Base" {
		t.Fatalf("unexpected superclass %#v", class.Superclass)
	}
	if len(class.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(class.Methods))
	}
}

func TestParseIfElse(t *testing.T) {
	program := parseProgram(t, "if (x > 0) print x; else print 0;")
	stmt, ok := program.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected if statement, got %s", program.Statements[0].NodeType())
	}
	if stmt.Else == nil {
		t.Fatalf("expected else branch")
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	program := parseProgram(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	block, ok := program.Statements[0].(*ast.Block)
	if !ok {
		t.Fatalf("expected block wrapper, got %s", program.Statements[0].NodeType())
	}
	if _, ok := block.Statements[0].(*ast.VarDecl); !ok {
		t.Fatalf("expected initializer first, got %#v", block.Statements[0])
	}
	loop, ok := block.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected while loop, got %#v", block.Statements[1])
	}
	body, ok := loop.Body.(*ast.Block)
	if !ok || len(body.Statements) != 2 {
		t.Fatalf("expected body plus step, got %#v", loop.Body)
	}
}

func TestParseErrorPositions(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing semicolon", "print 1"},
		{"missing paren", "if (x { print x; }"},
		{"missing expression", "var x = ;"},
		{"invalid assignment target", "1 = 2;"},
		{"unclosed block", "{ print 1;"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSource(tc.src)
			if err == nil {
				t.Fatalf("expected parse error for %q", tc.src)
			}
			if _, ok := err.(*ParseError); !ok {
				t.Fatalf("expected ParseError, got %T: %v", err, err)
			}
		})
	}
}

func TestParsePositionsAreRecorded(t *testing.T) {
	program := parseProgram(t, "var point = nil;\npoint.x;")
	stmt := program.Statements[1].(*ast.ExpressionStmt)
	get := stmt.Expr.(*ast.Get)
	if get.Name.Line != 2 || get.Name.Column != 7 {
		t.Fatalf("unexpected property token position %d:%d", get.Name.Line, get.Name.Column)
	}
}
