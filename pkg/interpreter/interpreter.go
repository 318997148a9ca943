package interpreter

import (
	"fmt"
	"io"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of Lox AST nodes. Evaluation is synchronous
// and single-threaded; recursion depth tracks AST nesting and is bounded by
// the Go call stack.
type Interpreter struct {
	globals *runtime.Environment
	stdout  io.Writer
}

// New returns an interpreter with builtins installed in a fresh global
// environment. Print output goes to os.Stdout unless redirected.
func New() *Interpreter {
	i := &Interpreter{
		globals: runtime.NewEnvironment(nil),
		stdout:  os.Stdout,
	}
	installBuiltins(i.globals)
	return i
}

// SetOutput redirects print statement output.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.stdout = w
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.globals
}

// Interpret executes a program's declarations in order. The first runtime
// error halts execution and propagates; the interpreter never recovers or
// substitutes values.
func (i *Interpreter) Interpret(program *ast.Program) error {
	for _, stmt := range program.Statements {
		if err := i.executeStatement(stmt, i.globals); err != nil {
			if _, ok := err.(returnSignal); ok {
				return fmt.Errorf("return outside function")
			}
			return err
		}
	}
	return nil
}

// Evaluate computes a single expression against the global environment. Used
// by the REPL to echo results.
func (i *Interpreter) Evaluate(expr ast.Expression) (runtime.Value, error) {
	return i.evaluateExpression(expr, i.globals)
}

func (i *Interpreter) executeStatement(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.PrintStmt:
		val, err := i.evaluateExpression(n.Expr, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.stdout, runtime.Show(val))
		return nil
	case *ast.ExpressionStmt:
		_, err := i.evaluateExpression(n.Expr, env)
		return err
	case *ast.VarDecl:
		var value runtime.Value = runtime.NilValue{}
		if n.Initializer != nil {
			v, err := i.evaluateExpression(n.Initializer, env)
			if err != nil {
				return err
			}
			value = v
		}
		env.Define(n.Name.Lexeme, value)
		return nil
	case *ast.Block:
		return i.executeBlock(n.Statements, runtime.NewEnvironment(env))
	case *ast.IfStmt:
		cond, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return err
		}
		if runtime.IsTruthy(cond) {
			return i.executeStatement(n.Then, env)
		}
		if n.Else != nil {
			return i.executeStatement(n.Else, env)
		}
		return nil
	case *ast.WhileStmt:
		for {
			cond, err := i.evaluateExpression(n.Condition, env)
			if err != nil {
				return err
			}
			if !runtime.IsTruthy(cond) {
				return nil
			}
			if err := i.executeStatement(n.Body, env); err != nil {
				return err
			}
		}
	case *ast.FunctionDecl:
		env.Define(n.Name.Lexeme, &runtime.FunctionValue{Declaration: n, Closure: env})
		return nil
	case *ast.ReturnStmt:
		var value runtime.Value = runtime.NilValue{}
		if n.Value != nil {
			v, err := i.evaluateExpression(n.Value, env)
			if err != nil {
				return err
			}
			value = v
		}
		return returnSignal{value: value}
	case *ast.ClassDecl:
		return i.executeClassDecl(n, env)
	default:
		return fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) executeBlock(statements []ast.Statement, scope *runtime.Environment) error {
	for _, stmt := range statements {
		if err := i.executeStatement(stmt, scope); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeClassDecl(decl *ast.ClassDecl, env *runtime.Environment) error {
	var superclass *runtime.ClassValue
	if decl.Superclass != nil {
		superVal, err := i.evaluateExpression(decl.Superclass, env)
		if err != nil {
			return err
		}
		sc, ok := superVal.(*runtime.ClassValue)
		if !ok {
			return newError(ErrType, decl.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	methods := make(map[string]*runtime.FunctionValue, len(decl.Methods))
	for _, method := range decl.Methods {
		methods[method.Name.Lexeme] = &runtime.FunctionValue{Declaration: method, Closure: env}
	}

	env.Define(decl.Name.Lexeme, &runtime.ClassValue{
		Name:       decl.Name.Lexeme,
		Superclass: superclass,
		Methods:    methods,
	})
	return nil
}

// CallFunction runs a user-defined function body in a fresh scope chained to
// the function's closure. Implements runtime.Caller.
func (i *Interpreter) CallFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	scope := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		scope.Define(param.Lexeme, args[idx])
	}

	err := i.executeBlock(fn.Declaration.Body.Statements, scope)
	if ret, ok := err.(returnSignal); ok {
		if fn.IsInitializer {
			return i.boundThis(fn)
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	if fn.IsInitializer {
		return i.boundThis(fn)
	}
	return runtime.NilValue{}, nil
}

// boundThis fetches the receiver an initializer was bound to. Initializers
// always evaluate to their instance regardless of how the body exits.
func (i *Interpreter) boundThis(fn *runtime.FunctionValue) (runtime.Value, error) {
	this, err := fn.Closure.Get("this")
	if err != nil {
		return nil, fmt.Errorf("initializer missing receiver: %w", err)
	}
	return this, nil
}

// returnSignal unwinds a function body back to its call frame. It travels on
// the error path but is control flow, not a runtime error.
type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return outside function"
}
