package ops

import (
	"fmt"

	"github.com/flare-lang/flare/internal/ast"
	"github.com/flare-lang/flare/internal/codegen"
	"github.com/flare-lang/flare/internal/diag"
	"github.com/flare-lang/flare/internal/types"
)

// Compile lowers one binary operation: signed arithmetic for integer
// operands, float arithmetic for float operands, ICmp with signed
// predicates and FCmp with unordered predicates for comparisons. Boolean
// Or/And/Xor reuse the bitwise ops on the i1 payload.
func Compile(b *codegen.Builder, op ast.BinaryOp, lhs, rhs codegen.Value, lhsTy, rhsTy types.Type, span *diag.Span) (codegen.Value, error) {
	k := [2]types.Kind{lhsTy.Kind, rhsTy.Kind}
	isInt := k[0] == types.Int64 && k[1] == types.Int64
	isFloat := k[0] == types.Float64 && k[1] == types.Float64
	isBool := k[0] == types.Bool && k[1] == types.Bool

	switch op {
	case ast.Add:
		if isInt {
			return b.BuildIntAdd(lhs, rhs, "addtmp"), nil
		}
		if isFloat {
			return b.BuildFloatAdd(lhs, rhs, "addtmp"), nil
		}
	case ast.Sub:
		if isInt {
			return b.BuildIntSub(lhs, rhs, "subtmp"), nil
		}
		if isFloat {
			return b.BuildFloatSub(lhs, rhs, "subtmp"), nil
		}
	case ast.Mul:
		if isInt {
			return b.BuildIntMul(lhs, rhs, "multmp"), nil
		}
		if isFloat {
			return b.BuildFloatMul(lhs, rhs, "multmp"), nil
		}
	case ast.Div:
		if isInt {
			return b.BuildIntDiv(lhs, rhs, "divtmp"), nil
		}
		if isFloat {
			return b.BuildFloatDiv(lhs, rhs, "divtmp"), nil
		}
	case ast.Rem:
		if isInt || isFloat {
			return b.BuildRem(lhs, rhs, "remtmp"), nil
		}
	case ast.Or:
		if isInt || isFloat || isBool {
			return b.BuildOr(lhs, rhs, "ortmp"), nil
		}
	case ast.And:
		if isInt || isFloat || isBool {
			return b.BuildAnd(lhs, rhs, "andtmp"), nil
		}
	case ast.Xor:
		if isInt || isFloat || isBool {
			return b.BuildXor(lhs, rhs, "xortmp"), nil
		}
	case ast.Equal:
		if isInt || isBool {
			return b.BuildIntCompare(codegen.IntEQ, lhs, rhs, "eqtmp"), nil
		}
		if isFloat {
			return b.BuildFloatCompare(codegen.FloatUEQ, lhs, rhs, "eqtmp"), nil
		}
	case ast.NotEqual:
		if isInt || isBool {
			return b.BuildIntCompare(codegen.IntNE, lhs, rhs, "neqtmp"), nil
		}
		if isFloat {
			return b.BuildFloatCompare(codegen.FloatUNE, lhs, rhs, "neqtmp"), nil
		}
	case ast.Less:
		if isInt || isBool {
			return b.BuildIntCompare(codegen.IntSLT, lhs, rhs, "lttmp"), nil
		}
		if isFloat {
			return b.BuildFloatCompare(codegen.FloatULT, lhs, rhs, "lttmp"), nil
		}
	case ast.LessOrEqual:
		if isInt || isBool {
			return b.BuildIntCompare(codegen.IntSLE, lhs, rhs, "letmp"), nil
		}
		if isFloat {
			return b.BuildFloatCompare(codegen.FloatULE, lhs, rhs, "letmp"), nil
		}
	case ast.Greater:
		if isInt || isBool {
			return b.BuildIntCompare(codegen.IntSGT, lhs, rhs, "gttmp"), nil
		}
		if isFloat {
			return b.BuildFloatCompare(codegen.FloatUGT, lhs, rhs, "gttmp"), nil
		}
	case ast.GreaterOrEqual:
		if isInt || isBool {
			return b.BuildIntCompare(codegen.IntSGE, lhs, rhs, "getmp"), nil
		}
		if isFloat {
			return b.BuildFloatCompare(codegen.FloatUGE, lhs, rhs, "getmp"), nil
		}
	}

	return nil, diag.Compile(
		fmt.Sprintf("Unsupported binary op: '%s'", op),
		fmt.Sprintf("no lowering for '%s' over %s and %s", op, lhsTy, rhsTy),
		span,
	)
}
