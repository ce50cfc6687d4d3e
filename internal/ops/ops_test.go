package ops

import (
	"testing"

	"github.com/flare-lang/flare/internal/ast"
	"github.com/flare-lang/flare/internal/codegen"
	"github.com/flare-lang/flare/internal/types"
)

func operandFor(ctx *codegen.Context, k types.Kind) codegen.Value {
	switch k {
	case types.Bool:
		return ctx.ConstBool(true)
	case types.Float64:
		return ctx.ConstFloat(0x3FF0000000000000) // 1.0
	default:
		return ctx.ConstInt(ctx.I64Type(), 1)
	}
}

// Every row of the operator table must both infer and lower.
func TestTableRowsInferAndLower(t *testing.T) {
	ctx, err := codegen.NewContext()
	if err != nil {
		t.Fatal(err)
	}
	mod, err := ctx.CreateModule("ops_test")
	if err != nil {
		t.Fatal(err)
	}
	builder, err := ctx.CreateBuilder()
	if err != nil {
		t.Fatal(err)
	}

	for key, wantKind := range Entries() {
		op := ast.BinaryOp(key[0])
		lhsTy := types.Type{Kind: types.Kind(key[1])}
		rhsTy := types.Type{Kind: types.Kind(key[2])}

		res, err := Infer(op, lhsTy, rhsTy, nil)
		if err != nil {
			t.Fatalf("Infer(%v, %v, %v) error: %v", op, lhsTy, rhsTy, err)
		}
		if res.Kind != wantKind {
			t.Fatalf("Infer(%v, %v, %v): got=%v want=%v", op, lhsTy, rhsTy, res.Kind, wantKind)
		}

		fn := mod.AddFunction("probe", ctx.FnType(ctx.I64Type(), nil))
		builder.PositionAtEnd(ctx.AppendBasicBlock(fn, "entry"))
		lhs := operandFor(ctx, lhsTy.Kind)
		rhs := operandFor(ctx, rhsTy.Kind)
		if _, err := Compile(builder, op, lhs, rhs, lhsTy, rhsTy, nil); err != nil {
			t.Fatalf("Compile(%v, %v, %v) error: %v", op, lhsTy, rhsTy, err)
		}
	}
}

// Combinations outside the table are type inference errors.
func TestMissingRowsFail(t *testing.T) {
	missing := []struct {
		op       ast.BinaryOp
		lhs, rhs types.Kind
	}{
		{ast.Add, types.Int64, types.Float64},
		{ast.Add, types.Bool, types.Bool},
		{ast.Less, types.Bool, types.Bool},
		{ast.Add, types.VecInt64, types.VecInt64},
		{ast.Equal, types.Int64, types.Bool},
		{ast.Rem, types.Bool, types.Bool},
		{ast.Add, types.Null, types.Null},
	}
	for _, m := range missing {
		_, err := Infer(m.op, types.Type{Kind: m.lhs}, types.Type{Kind: m.rhs}, nil)
		if err == nil {
			t.Fatalf("Infer(%v, %v, %v): expected error, got none", m.op, m.lhs, m.rhs)
		}
	}
}

// The table carries exactly the closed operation set: 5 Bool rows plus
// 14 rows each for Int64 and Float64.
func TestTableSize(t *testing.T) {
	if got, want := len(Entries()), 5+14+14; got != want {
		t.Fatalf("table size: got=%d want=%d", got, want)
	}
}
