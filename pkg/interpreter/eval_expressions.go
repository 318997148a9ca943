package interpreter

import (
	"errors"
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil
	case *ast.Grouping:
		return i.evaluateExpression(n.Expr, env)
	case *ast.Variable:
		return i.lookupVariable(n.Name, env)
	case *ast.This:
		return i.lookupVariable(n.Keyword, env)
	case *ast.Assign:
		return i.evaluateAssign(n, env)
	case *ast.Get:
		return i.evaluateGet(n, env)
	case *ast.Set:
		return i.evaluateSet(n, env)
	case *ast.Logical:
		return i.evaluateLogical(n, env)
	case *ast.Unary:
		return i.evaluateUnary(n, env)
	case *ast.Binary:
		return i.evaluateBinary(n, env)
	case *ast.Call:
		return i.evaluateCall(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) lookupVariable(name token.Token, env *runtime.Environment) (runtime.Value, error) {
	val, err := env.Get(name.Lexeme)
	if err != nil {
		return nil, wrapEnvError(err, name)
	}
	return val, nil
}

func (i *Interpreter) evaluateAssign(expr *ast.Assign, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluateExpression(expr.Value, env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(expr.Name.Lexeme, value); err != nil {
		return nil, wrapEnvError(err, expr.Name)
	}
	return value, nil
}

func (i *Interpreter) evaluateGet(expr *ast.Get, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	switch obj := object.(type) {
	case runtime.NilValue:
		return nil, newError(ErrNilPropertyAccess, expr.Name, "Cannot read property '%s' of nil.", expr.Name.Lexeme)
	case *runtime.InstanceValue:
		if val, ok := obj.Fields[expr.Name.Lexeme]; ok {
			return val, nil
		}
		if method := obj.Class.FindMethod(expr.Name.Lexeme); method != nil {
			return &runtime.BoundMethodValue{Receiver: obj, Method: method}, nil
		}
		return nil, newError(ErrUndefinedProperty, expr.Name, "Undefined property '%s'.", expr.Name.Lexeme)
	default:
		return nil, newError(ErrType, expr.Name, "Only instances have properties.")
	}
}

func (i *Interpreter) evaluateSet(expr *ast.Set, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	switch obj := object.(type) {
	case runtime.NilValue:
		return nil, newError(ErrNilPropertyAccess, expr.Name, "Cannot set property '%s' of nil.", expr.Name.Lexeme)
	case *runtime.InstanceValue:
		value, err := i.evaluateExpression(expr.Value, env)
		if err != nil {
			return nil, err
		}
		obj.Fields[expr.Name.Lexeme] = value
		return value, nil
	default:
		return nil, newError(ErrType, expr.Name, "Only instances have fields.")
	}
}

// evaluateLogical short-circuits: the right operand is not evaluated when the
// left operand decides the result, and the deciding operand's value is
// returned untouched (no coercion to bool).
func (i *Interpreter) evaluateLogical(expr *ast.Logical, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Type {
	case token.OR:
		if runtime.IsTruthy(left) {
			return left, nil
		}
	case token.AND:
		if !runtime.IsTruthy(left) {
			return left, nil
		}
	default:
		return nil, fmt.Errorf("unsupported logical operator %s", expr.Operator)
	}
	return i.evaluateExpression(expr.Right, env)
}

func (i *Interpreter) evaluateUnary(expr *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Type {
	case token.BANG:
		return runtime.BoolValue{Val: !runtime.IsTruthy(operand)}, nil
	case token.MINUS:
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, newError(ErrType, expr.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateBinary(expr *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}

	op := expr.Operator
	switch op.Type {
	case token.EQ:
		return runtime.BoolValue{Val: runtime.Equals(left, right)}, nil
	case token.NEQ:
		return runtime.BoolValue{Val: !runtime.Equals(left, right)}, nil
	case token.PLUS:
		if ln, ok := left.(runtime.NumberValue); ok {
			if rn, ok := right.(runtime.NumberValue); ok {
				return runtime.NumberValue{Val: ln.Val + rn.Val}, nil
			}
		}
		if ls, ok := left.(runtime.StringValue); ok {
			if rs, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: ls.Val + rs.Val}, nil
			}
		}
		return nil, newError(ErrType, op, "Operands must be two numbers or two strings.")
	}

	ln, lok := left.(runtime.NumberValue)
	rn, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return nil, newError(ErrType, op, "Operands must be numbers.")
	}

	switch op.Type {
	case token.MINUS:
		return runtime.NumberValue{Val: ln.Val - rn.Val}, nil
	case token.STAR:
		return runtime.NumberValue{Val: ln.Val * rn.Val}, nil
	case token.SLASH:
		if rn.Val == 0 {
			return nil, newError(ErrDivisionByZero, op, "Division by zero.")
		}
		return runtime.NumberValue{Val: ln.Val / rn.Val}, nil
	case token.GREATER:
		return runtime.BoolValue{Val: ln.Val > rn.Val}, nil
	case token.GREATER_EQ:
		return runtime.BoolValue{Val: ln.Val >= rn.Val}, nil
	case token.LESS:
		return runtime.BoolValue{Val: ln.Val < rn.Val}, nil
	case token.LESS_EQ:
		return runtime.BoolValue{Val: ln.Val <= rn.Val}, nil
	default:
		return nil, fmt.Errorf("unsupported binary operator %s", op)
	}
}

func (i *Interpreter) evaluateCall(call *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	callable, ok := callee.(runtime.Callable)
	if !ok {
		return nil, newError(ErrNotCallable, call.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, newError(ErrArityMismatch, call.Paren,
			"Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(i, args)
}

// wrapEnvError attaches the offending name token to an environment failure.
func wrapEnvError(err error, tok token.Token) error {
	var undef *runtime.UndefinedVariableError
	if errors.As(err, &undef) {
		return newError(ErrUndefinedVariable, tok, "Undefined variable '%s'.", undef.Name)
	}
	return err
}
