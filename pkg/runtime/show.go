package runtime

import (
	"fmt"
	"math"
	"strconv"
)

// Show renders a value in the language's display format, as used by print.
// Numbers with no fractional part drop the decimal point.
func Show(val Value) string {
	switch v := val.(type) {
	case NilValue:
		return "nil"
	case BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case NumberValue:
		if v.Val == math.Trunc(v.Val) && !math.IsInf(v.Val, 0) {
			return strconv.FormatFloat(v.Val, 'f', 0, 64)
		}
		return strconv.FormatFloat(v.Val, 'g', -1, 64)
	case StringValue:
		return v.Val
	case *FunctionValue:
		return fmt.Sprintf("<fn %s>", v.Declaration.Name.Lexeme)
	case *NativeFunctionValue:
		return "<native fn>"
	case *BoundMethodValue:
		return fmt.Sprintf("<fn %s>", v.Method.Declaration.Name.Lexeme)
	case *ClassValue:
		return v.Name
	case *InstanceValue:
		return v.Class.Name + " instance"
	default:
		return fmt.Sprintf("<%s>", val.Kind())
	}
}

// ShowQuoted is Show except strings render with surrounding quotes, for
// contexts that echo values back (the REPL).
func ShowQuoted(val Value) string {
	if s, ok := val.(StringValue); ok {
		return strconv.Quote(s.Val)
	}
	return Show(val)
}
