package interpreter

import (
	"time"

	"lox/interpreter-go/pkg/runtime"
)

// installBuiltins defines the native functions every program can see.
func installBuiltins(globals *runtime.Environment) {
	globals.Define("clock", &runtime.NativeFunctionValue{
		Name:  "clock",
		NArgs: 0,
		Impl: func(_ []runtime.Value) (runtime.Value, error) {
			return runtime.NumberValue{Val: float64(time.Now().UnixNano()) / 1e9}, nil
		},
	})
}
