package ops

import (
	"fmt"

	"github.com/flare-lang/flare/internal/ast"
	"github.com/flare-lang/flare/internal/diag"
	"github.com/flare-lang/flare/internal/types"
)

type opKey struct {
	op  ast.BinaryOp
	lhs types.Kind
	rhs types.Kind
}

// table is the complete closed set of binary operations. Anything not
// listed is a type error; there is no implicit promotion.
var table = map[opKey]types.Type{}

func def(op ast.BinaryOp, lhs, rhs, res types.Kind) {
	table[opKey{op, lhs, rhs}] = types.Type{Kind: res}
}

func init() {
	def(ast.Equal, types.Bool, types.Bool, types.Bool)
	def(ast.NotEqual, types.Bool, types.Bool, types.Bool)
	def(ast.Or, types.Bool, types.Bool, types.Bool)
	def(ast.And, types.Bool, types.Bool, types.Bool)
	def(ast.Xor, types.Bool, types.Bool, types.Bool)

	def(ast.Add, types.Int64, types.Int64, types.Int64)
	def(ast.Sub, types.Int64, types.Int64, types.Int64)
	def(ast.Mul, types.Int64, types.Int64, types.Int64)
	def(ast.Div, types.Int64, types.Int64, types.Int64)
	def(ast.Rem, types.Int64, types.Int64, types.Int64)
	def(ast.Or, types.Int64, types.Int64, types.Int64)
	def(ast.And, types.Int64, types.Int64, types.Int64)
	def(ast.Xor, types.Int64, types.Int64, types.Int64)
	def(ast.Equal, types.Int64, types.Int64, types.Bool)
	def(ast.Less, types.Int64, types.Int64, types.Bool)
	def(ast.Greater, types.Int64, types.Int64, types.Bool)
	def(ast.LessOrEqual, types.Int64, types.Int64, types.Bool)
	def(ast.GreaterOrEqual, types.Int64, types.Int64, types.Bool)
	def(ast.NotEqual, types.Int64, types.Int64, types.Bool)

	def(ast.Add, types.Float64, types.Float64, types.Float64)
	def(ast.Sub, types.Float64, types.Float64, types.Float64)
	def(ast.Mul, types.Float64, types.Float64, types.Float64)
	def(ast.Div, types.Float64, types.Float64, types.Float64)
	def(ast.Rem, types.Float64, types.Float64, types.Float64)
	def(ast.Or, types.Float64, types.Float64, types.Float64)
	def(ast.And, types.Float64, types.Float64, types.Float64)
	def(ast.Xor, types.Float64, types.Float64, types.Float64)
	def(ast.Equal, types.Float64, types.Float64, types.Bool)
	def(ast.Less, types.Float64, types.Float64, types.Bool)
	def(ast.Greater, types.Float64, types.Float64, types.Bool)
	def(ast.LessOrEqual, types.Float64, types.Float64, types.Bool)
	def(ast.GreaterOrEqual, types.Float64, types.Float64, types.Bool)
	def(ast.NotEqual, types.Float64, types.Float64, types.Bool)
}

// Infer looks up the result type of (op, lhs, rhs).
func Infer(op ast.BinaryOp, lhs, rhs types.Type, span *diag.Span) (types.Type, error) {
	if res, ok := table[opKey{op, lhs.Kind, rhs.Kind}]; ok {
		return res, nil
	}
	return types.TNull, diag.Compile(
		"Type inference error",
		fmt.Sprintf("No such op: '%s' for types: %s %s", op, lhs, rhs),
		span,
	)
}

// Entries returns a copy of every (op, lhs, rhs) → result row. Tests use
// it to check table exhaustiveness against lowering.
func Entries() map[[3]int]types.Kind {
	out := make(map[[3]int]types.Kind, len(table))
	for k, v := range table {
		out[[3]int{int(k.op), int(k.lhs), int(k.rhs)}] = v.Kind
	}
	return out
}
