package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flare-lang/flare/internal/types"
)

// String renders a value for REPL output: "null", "true"/"false",
// decimal integers, two-decimal floats, bracketed vectors and lists.
func (v Value) String() string {
	switch v.typ.Kind {
	case types.Null:
		return "null"
	case types.Bool:
		return strconv.FormatBool(v.AsBool())
	case types.Int64:
		return strconv.FormatInt(v.AsInt64(), 10)
	case types.Float64:
		return strconv.FormatFloat(v.AsFloat64(), 'f', 2, 64)
	case types.VecInt64:
		elems := v.VecInt64()
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = strconv.FormatInt(e, 10)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case types.VecFloat64:
		elems := v.VecFloat64()
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = formatVecFloat(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case types.List:
		elems := v.List()
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case types.Fn:
		return v.typ.String()
	}
	return fmt.Sprintf("<%s>", v.typ)
}

// formatVecFloat keeps a trailing ".0" on integral elements so vector
// output always reads as floats.
func formatVecFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
