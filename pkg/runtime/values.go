package runtime

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindNativeFunction
	KindBoundMethod
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindBoundMethod:
		return "bound_method"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// Caller is the slice of the interpreter that callables need: the ability to
// run a function body against an environment. It breaks the import cycle
// between this package and the evaluator.
type Caller interface {
	CallFunction(fn *FunctionValue, args []Value) (Value, error)
}

// Callable is the capability shared by every invocable value. Arity is fixed;
// the evaluator checks it before Call.
type Callable interface {
	Value
	Arity() int
	Call(interp Caller, args []Value) (Value, error)
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Functions & methods
//-----------------------------------------------------------------------------

// FunctionValue is a user-defined function closed over its defining scope.
type FunctionValue struct {
	Declaration   *ast.FunctionDecl
	Closure       *Environment
	IsInitializer bool
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Arity() int { return len(v.Declaration.Params) }

func (v *FunctionValue) Call(interp Caller, args []Value) (Value, error) {
	return interp.CallFunction(v, args)
}

// Bind returns a copy of the function whose closure carries the receiver as
// `this`. A bound method named init becomes an initializer: it always
// evaluates to the receiver.
func (v *FunctionValue) Bind(receiver Value) *FunctionValue {
	scope := NewEnvironment(v.Closure)
	scope.Define("this", receiver)
	return &FunctionValue{
		Declaration:   v.Declaration,
		Closure:       scope,
		IsInitializer: v.Declaration.Name.Lexeme == "init",
	}
}

type NativeFunc func(args []Value) (Value, error)

// NativeFunctionValue is a host-provided builtin.
type NativeFunctionValue struct {
	Name  string
	NArgs int
	Impl  NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v *NativeFunctionValue) Arity() int { return v.NArgs }

func (v *NativeFunctionValue) Call(_ Caller, args []Value) (Value, error) {
	return v.Impl(args)
}

// BoundMethodValue captures a receiver and the method retrieved from its
// class, deferring the bind until invocation.
type BoundMethodValue struct {
	Receiver Value
	Method   *FunctionValue
}

func (v *BoundMethodValue) Kind() Kind { return KindBoundMethod }

func (v *BoundMethodValue) Arity() int { return v.Method.Arity() }

func (v *BoundMethodValue) Call(interp Caller, args []Value) (Value, error) {
	return v.Method.Bind(v.Receiver).Call(interp, args)
}

//-----------------------------------------------------------------------------
// Classes & instances
//-----------------------------------------------------------------------------

// ClassValue is a class declaration at runtime. Calling it constructs an
// instance and runs init when the class declares one.
type ClassValue struct {
	Name       string
	Superclass *ClassValue
	Methods    map[string]*FunctionValue
}

func (v *ClassValue) Kind() Kind { return KindClass }

// FindMethod resolves a method by name, walking the superclass chain.
func (v *ClassValue) FindMethod(name string) *FunctionValue {
	if m, ok := v.Methods[name]; ok {
		return m
	}
	if v.Superclass != nil {
		return v.Superclass.FindMethod(name)
	}
	return nil
}

func (v *ClassValue) Arity() int {
	if init := v.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (v *ClassValue) Call(interp Caller, args []Value) (Value, error) {
	instance := NewInstance(v)
	if init := v.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// InstanceValue holds per-object state as an explicit name-to-value mapping.
// Fields have no schema; Set creates them on demand. The mapping is the only
// mutable part of the value model.
type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, Fields: make(map[string]Value)}
}

func (v *InstanceValue) Kind() Kind { return KindInstance }

//-----------------------------------------------------------------------------
// Shared semantics helpers
//-----------------------------------------------------------------------------

// IsTruthy applies the language's truthiness rule: nil and false are falsy,
// everything else (including 0 and "") is truthy.
func IsTruthy(val Value) bool {
	switch v := val.(type) {
	case BoolValue:
		return v.Val
	case NilValue:
		return false
	default:
		return true
	}
}

// Equals implements `==`: strict, never errors. Values of different kinds are
// never equal; scalars compare by value, instances and callables by identity.
func Equals(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case NilValue:
		return true
	case BoolValue:
		return av.Val == b.(BoolValue).Val
	case NumberValue:
		return av.Val == b.(NumberValue).Val
	case StringValue:
		return av.Val == b.(StringValue).Val
	default:
		return a == b
	}
}
