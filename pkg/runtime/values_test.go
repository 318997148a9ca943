package runtime

import (
	"testing"

	"lox/interpreter-go/pkg/ast"
)

func TestTruthiness(t *testing.T) {
	cases := []struct {
		name string
		val  Value
		want bool
	}{
		{"nil", NilValue{}, false},
		{"false", BoolValue{Val: false}, false},
		{"true", BoolValue{Val: true}, true},
		{"zero", NumberValue{Val: 0}, true},
		{"number", NumberValue{Val: 3.5}, true},
		{"empty string", StringValue{Val: ""}, true},
		{"string", StringValue{Val: "x"}, true},
		{"instance", NewInstance(&ClassValue{Name: "T"}), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTruthy(tc.val); got != tc.want {
				t.Fatalf("IsTruthy(%#v) = %v, want %v", tc.val, got, tc.want)
			}
		})
	}
}

func TestEqualsSameKind(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nil == nil", NilValue{}, NilValue{}, true},
		{"numbers equal", NumberValue{Val: 2}, NumberValue{Val: 2}, true},
		{"numbers differ", NumberValue{Val: 2}, NumberValue{Val: 3}, false},
		{"strings equal", StringValue{Val: "a"}, StringValue{Val: "a"}, true},
		{"strings differ", StringValue{Val: "a"}, StringValue{Val: "b"}, false},
		{"bools equal", BoolValue{Val: true}, BoolValue{Val: true}, true},
		{"bools differ", BoolValue{Val: true}, BoolValue{Val: false}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Equals(tc.a, tc.b); got != tc.want {
				t.Fatalf("Equals(%#v, %#v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestEqualsCrossKindIsAlwaysFalse(t *testing.T) {
	values := []Value{
		NilValue{},
		BoolValue{Val: false},
		NumberValue{Val: 1},
		StringValue{Val: "1"},
		NewInstance(&ClassValue{Name: "T"}),
	}
	for i, a := range values {
		for j, b := range values {
			if i == j {
				continue
			}
			if Equals(a, b) {
				t.Fatalf("cross-kind Equals(%#v, %#v) should be false", a, b)
			}
		}
	}
}

func TestEqualsInstancesByIdentity(t *testing.T) {
	class := &ClassValue{Name: "T"}
	a := NewInstance(class)
	b := NewInstance(class)
	if !Equals(a, a) {
		t.Fatalf("instance should equal itself")
	}
	if Equals(a, b) {
		t.Fatalf("distinct instances should not be equal")
	}
}

func TestClassFindMethodWalksSuperclassChain(t *testing.T) {
	base := &ClassValue{
		Name:    "Base",
		Methods: map[string]*FunctionValue{"greet": {Declaration: ast.Fun("greet", nil)}},
	}
	derived := &ClassValue{Name: "Derived", Superclass: base, Methods: map[string]*FunctionValue{}}

	if derived.FindMethod("greet") == nil {
		t.Fatalf("expected inherited method")
	}
	if derived.FindMethod("absent") != nil {
		t.Fatalf("expected nil for missing method")
	}
}

func TestClassArityFollowsInit(t *testing.T) {
	plain := &ClassValue{Name: "Plain", Methods: map[string]*FunctionValue{}}
	if plain.Arity() != 0 {
		t.Fatalf("class without init should have arity 0, got %d", plain.Arity())
	}

	withInit := &ClassValue{
		Name:    "Point",
		Methods: map[string]*FunctionValue{"init": {Declaration: ast.Fun("init", []string{"x", "y"})}},
	}
	if withInit.Arity() != 2 {
		t.Fatalf("expected init arity 2, got %d", withInit.Arity())
	}
}

func TestBindMarksInitializer(t *testing.T) {
	closure := NewEnvironment(nil)
	init := &FunctionValue{Declaration: ast.Fun("init", nil), Closure: closure}
	other := &FunctionValue{Declaration: ast.Fun("norm", nil), Closure: closure}
	receiver := NewInstance(&ClassValue{Name: "T"})

	bound := init.Bind(receiver)
	if !bound.IsInitializer {
		t.Fatalf("bound init should be an initializer")
	}
	if this, err := bound.Closure.Get("this"); err != nil || this != Value(receiver) {
		t.Fatalf("bound closure should carry the receiver, got %#v (%v)", this, err)
	}
	if other.Bind(receiver).IsInitializer {
		t.Fatalf("non-init method must not become an initializer")
	}
}

func TestShowFormatting(t *testing.T) {
	class := &ClassValue{Name: "Point", Methods: map[string]*FunctionValue{}}
	cases := []struct {
		name string
		val  Value
		want string
	}{
		{"nil", NilValue{}, "nil"},
		{"true", BoolValue{Val: true}, "true"},
		{"false", BoolValue{Val: false}, "false"},
		{"integer number", NumberValue{Val: 3}, "3"},
		{"negative integer", NumberValue{Val: -7}, "-7"},
		{"fractional number", NumberValue{Val: 2.5}, "2.5"},
		{"string", StringValue{Val: "hi"}, "hi"},
		{"function", &FunctionValue{Declaration: ast.Fun("add", nil)}, "<fn add>"},
		{"native", &NativeFunctionValue{Name: "clock"}, "<native fn>"},
		{"class", class, "Point"},
		{"instance", NewInstance(class), "Point instance"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Show(tc.val); got != tc.want {
				t.Fatalf("Show(%#v) = %q, want %q", tc.val, got, tc.want)
			}
		})
	}
}

func TestShowQuotedQuotesStringsOnly(t *testing.T) {
	if got := ShowQuoted(StringValue{Val: "hi"}); got != `"hi"` {
		t.Fatalf("unexpected quoted string %q", got)
	}
	if got := ShowQuoted(NumberValue{Val: 3}); got != "3" {
		t.Fatalf("unexpected quoted number %q", got)
	}
}
