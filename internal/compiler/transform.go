package compiler

import (
	"math"

	"github.com/flare-lang/flare/internal/codegen"
	"github.com/flare-lang/flare/internal/types"
	"github.com/flare-lang/flare/internal/value"
)

// BackendType translates a language type to its back-end representation.
// Reference types travel as an opaque 64-bit word holding the heap
// handle.
func BackendType(ctx *codegen.Context, t types.Type) *codegen.Type {
	switch t.Kind {
	case types.Bool:
		return ctx.I1Type()
	case types.Float64:
		return ctx.F64Type()
	default:
		return ctx.I64Type()
	}
}

// BackendFnType translates a function signature.
func BackendFnType(ctx *codegen.Context, sig *types.FnType) *codegen.Type {
	params := make([]*codegen.Type, len(sig.Args))
	for i, a := range sig.Args {
		params[i] = BackendType(ctx, a)
	}
	return ctx.FnType(BackendType(ctx, sig.Ret), params)
}

// constFromValue embeds a Value as a back-end constant. Scalars become
// typed constants; reference payloads become their handle word.
func constFromValue(ctx *codegen.Context, v value.Value) codegen.Value {
	switch v.Type().Kind {
	case types.Bool:
		return ctx.ConstBool(v.AsBool())
	case types.Float64:
		return ctx.ConstFloat(v.Raw())
	default:
		return ctx.ConstInt(ctx.I64Type(), v.Raw())
	}
}

// nullConst is the Null sentinel as an i64 constant.
func nullConst(ctx *codegen.Context) codegen.Value {
	return ctx.ConstInt(ctx.I64Type(), uint64(math.MaxInt64))
}
