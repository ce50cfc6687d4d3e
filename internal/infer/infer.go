// Package infer annotates every AST node with one of the closed set of
// types in a single pass over the expression tree.
package infer

import (
	"fmt"

	"github.com/flare-lang/flare/internal/ast"
	"github.com/flare-lang/flare/internal/diag"
	"github.com/flare-lang/flare/internal/ops"
	"github.com/flare-lang/flare/internal/types"
)

// Env resolves names that are not in the local scope: globals created by
// earlier inputs and declared function signatures.
type Env interface {
	GlobalType(name string) (types.Type, bool)
	FnSig(name string) (*types.FnType, bool)
}

// Exprs infers an expression sequence left to right and returns the type
// of the last expression. An empty sequence has type Null.
func Exprs(exprs []*ast.Expr, env Env, locals map[string]types.Type) (types.Type, error) {
	res := types.TNull
	for _, e := range exprs {
		var err error
		res, err = Expr(e, env, locals)
		if err != nil {
			return types.TNull, err
		}
	}
	return res, nil
}

// Expr infers one expression, memoising the result on the node.
func Expr(e *ast.Expr, env Env, locals map[string]types.Type) (types.Type, error) {
	if e.Typed {
		return e.Typ, nil
	}

	switch body := e.Body.(type) {
	case *ast.NullLit:
		e.SetType(types.TNull)
	case *ast.BoolLit:
		e.SetType(types.TBool)
	case *ast.IntLit:
		e.SetType(types.TInt64)
	case *ast.FloatLit:
		e.SetType(types.TFloat64)
	case *ast.VecIntLit:
		e.SetType(types.TVecInt64)
	case *ast.VecFloatLit:
		e.SetType(types.TVecFloat64)

	case *ast.Assign:
		t, err := Expr(body.Init, env, locals)
		if err != nil {
			return types.TNull, err
		}
		locals[body.Name] = t
		e.SetType(t)

	case *ast.Var:
		if t, ok := locals[body.Name]; ok {
			e.SetType(t)
			break
		}
		if t, ok := env.GlobalType(body.Name); ok {
			e.SetType(t)
			break
		}
		return types.TNull, diag.Compile("Unknown variable", body.Name, e.Span)

	case *ast.Binary:
		lt, err := Expr(body.LHS, env, locals)
		if err != nil {
			return types.TNull, err
		}
		rt, err := Expr(body.RHS, env, locals)
		if err != nil {
			return types.TNull, err
		}
		res, err := ops.Infer(body.Op, lt, rt, e.Span)
		if err != nil {
			return types.TNull, err
		}
		e.SetType(res)

	case *ast.Call:
		for _, arg := range body.Args {
			if _, err := Expr(arg, env, locals); err != nil {
				return types.TNull, err
			}
		}
		if sig, ok := env.FnSig(body.Name); ok {
			e.SetType(sig.Ret)
			break
		}
		if t, ok := env.GlobalType(body.Name); ok && t.Kind == types.Fn {
			e.SetType(t.Sig.Ret)
			break
		}
		return types.TNull, diag.Compile("Unknown variable", body.Name, e.Span)

	case *ast.Cond:
		pt, err := Expr(body.Pred, env, locals)
		if err != nil {
			return types.TNull, err
		}
		if pt.Kind != types.Bool {
			return types.TNull, diag.Compile(
				"Condition must be a bool type",
				fmt.Sprintf("Found %s here", pt),
				e.Span,
			)
		}
		tt, err := Exprs(body.Then, env, locals)
		if err != nil {
			return types.TNull, err
		}
		et, err := Exprs(body.Else, env, locals)
		if err != nil {
			return types.TNull, err
		}
		if !tt.Equal(et) {
			return types.TNull, diag.Compile(
				"Both branches of condition must have the same type",
				fmt.Sprintf("Found %s in the true branch and %s in the false branch", tt, et),
				e.Span,
			)
		}
		e.SetType(tt)

	default:
		return types.TNull, diag.Compile(
			fmt.Sprintf("Cannot infer type for %T", body),
			"Unknown or ambiguous type for expression",
			e.Span,
		)
	}

	return e.Typ, nil
}

// Function infers a function's body under its parameter types and
// returns the function's return type.
func Function(fn *ast.Function, env Env) (types.Type, error) {
	locals := make(map[string]types.Type, len(fn.Args))
	for _, p := range fn.Args {
		locals[p.Name] = p.Type
	}
	return Exprs(fn.Body, env, locals)
}
