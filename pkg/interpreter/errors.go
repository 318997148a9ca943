package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/token"
)

// ErrorKind classifies runtime failures. The language surfaces a single error
// type; the kind exists so tests can assert on the failure cause without
// string matching.
type ErrorKind int

const (
	ErrUndefinedVariable ErrorKind = iota
	ErrNilPropertyAccess
	ErrUndefinedProperty
	ErrType
	ErrNotCallable
	ErrArityMismatch
	ErrDivisionByZero
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUndefinedVariable:
		return "undefined_variable"
	case ErrNilPropertyAccess:
		return "nil_property_access"
	case ErrUndefinedProperty:
		return "undefined_property"
	case ErrType:
		return "type_error"
	case ErrNotCallable:
		return "not_callable"
	case ErrArityMismatch:
		return "arity_mismatch"
	case ErrDivisionByZero:
		return "division_by_zero"
	default:
		return fmt.Sprintf("unknown_error_%d", int(k))
	}
}

// RuntimeError is the single error kind raised during evaluation. It carries
// the token of the operation that failed; the message plus that position is
// the entire user-visible diagnostic.
type RuntimeError struct {
	Tok  token.Token
	Kind ErrorKind
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d:%d] %s", e.Tok.Line, e.Tok.Column, e.Msg)
}

func newError(kind ErrorKind, tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Tok: tok, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
