package compiler

import (
	"fmt"

	"github.com/flare-lang/flare/internal/ast"
	"github.com/flare-lang/flare/internal/codegen"
	"github.com/flare-lang/flare/internal/diag"
	"github.com/flare-lang/flare/internal/ops"
	"github.com/flare-lang/flare/internal/value"
)

func (c *Compiler) compileExpr(e *ast.Expr) (codegen.Value, error) {
	switch body := e.Body.(type) {
	case *ast.NullLit:
		return nullConst(c.ctx), nil

	case *ast.BoolLit:
		return c.ctx.ConstBool(body.Val), nil

	case *ast.IntLit:
		return c.ctx.ConstInt(c.ctx.I64Type(), uint64(body.Val)), nil

	case *ast.FloatLit:
		return constFromValue(c.ctx, value.FromFloat64(body.Val)), nil

	case *ast.VecIntLit:
		// The vector is allocated host-side at compile time; generated
		// code carries only its stable handle.
		v := value.FromVecInt64(body.Elems)
		c.module().OwnLiteral(v)
		return c.ctx.ConstInt(c.ctx.I64Type(), v.Raw()), nil

	case *ast.VecFloatLit:
		v := value.FromVecFloat64(body.Elems)
		c.module().OwnLiteral(v)
		return c.ctx.ConstInt(c.ctx.I64Type(), v.Raw()), nil

	case *ast.Var:
		if slot, ok := c.vars[body.Name]; ok {
			ty, err := e.Type()
			if err != nil {
				return nil, err
			}
			return c.builder.BuildLoad(BackendType(c.ctx, ty), slot, body.Name), nil
		}
		if g, ok := c.module().GetGlobal(body.Name); ok {
			ptrTy := c.ctx.PtrType(BackendType(c.ctx, g.Type))
			addr := c.ctx.ConstHostPtr(ptrTy, g.Cell)
			return c.builder.BuildLoad(BackendType(c.ctx, g.Type), addr, body.Name), nil
		}
		return nil, diag.Compile(
			fmt.Sprintf("Undefined variable: '%s'", body.Name),
			"Define the variable before using it",
			e.Span,
		)

	case *ast.Assign:
		return c.compileAssign(e, body)

	case *ast.Binary:
		lhs, err := c.compileExpr(body.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := c.compileExpr(body.RHS)
		if err != nil {
			return nil, err
		}
		lt, err := body.LHS.Type()
		if err != nil {
			return nil, err
		}
		rt, err := body.RHS.Type()
		if err != nil {
			return nil, err
		}
		return ops.Compile(c.builder, body.Op, lhs, rhs, lt, rt, e.Span)

	case *ast.Call:
		args := make([]codegen.Value, 0, len(body.Args))
		for _, a := range body.Args {
			v, err := c.compileExpr(a)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		callee, ok := c.module().Backend.GetFunction(body.Name)
		if !ok {
			return nil, diag.Compile(
				fmt.Sprintf("Undefined function '%s'", body.Name),
				"Function not found",
				e.Span,
			)
		}
		return c.builder.BuildCall(callee, args, "calltmp"), nil

	case *ast.Cond:
		return c.compileCond(e, body)
	}

	return nil, diag.Compile(
		fmt.Sprintf("Compiler: unknown expression: %T", e.Body),
		"",
		e.Span,
	)
}

// compileAssign stores into a local stack slot or a global's host cell.
// Globals also update the in-memory globals map so later inputs see the
// slot's type.
func (c *Compiler) compileAssign(e *ast.Expr, body *ast.Assign) (codegen.Value, error) {
	ty, err := body.Init.Type()
	if err != nil {
		return nil, err
	}
	val, err := c.compileExpr(body.Init)
	if err != nil {
		return nil, err
	}

	if body.Global {
		// The map entry gets the constant's value when it is known at
		// compile time; the emitted store writes the live word either way.
		initWord := value.NullWord
		if cv, ok := val.(*codegen.ConstValue); ok {
			initWord = cv.Bits
		}
		g := c.module().AddGlobal(body.Name, value.FromRaw(ty, initWord))
		ptrTy := c.ctx.PtrType(BackendType(c.ctx, ty))
		addr := c.ctx.ConstHostPtr(ptrTy, g.Cell)
		c.builder.BuildStore(addr, val)
		return val, nil
	}

	slot, ok := c.vars[body.Name]
	if !ok {
		slot = c.entryBlockAlloca(body.Name, BackendType(c.ctx, ty))
		c.vars[body.Name] = slot
	}
	c.builder.BuildStore(slot, val)
	return val, nil
}

// compileCond lowers if/else into then, else and merge blocks with a phi
// joining the two arm values.
func (c *Compiler) compileCond(e *ast.Expr, body *ast.Cond) (codegen.Value, error) {
	parent := c.fnVal

	pred, err := c.compileExpr(body.Pred)
	if err != nil {
		return nil, err
	}

	thenBB := c.ctx.AppendBasicBlock(parent, "then")
	elseBB := c.ctx.AppendBasicBlock(parent, "else")
	mergeBB := c.ctx.AppendBasicBlock(parent, "ifcont")

	c.builder.BuildCondBr(pred, thenBB, elseBB)

	c.builder.PositionAtEnd(thenBB)
	var thenVal codegen.Value
	for _, te := range body.Then {
		if thenVal, err = c.compileExpr(te); err != nil {
			return nil, err
		}
	}
	c.builder.BuildBr(mergeBB)
	thenEnd := c.builder.InsertBlock()

	c.builder.PositionAtEnd(elseBB)
	elseVal := nullConst(c.ctx)
	for _, ee := range body.Else {
		if elseVal, err = c.compileExpr(ee); err != nil {
			return nil, err
		}
	}
	c.builder.BuildBr(mergeBB)
	elseEnd := c.builder.InsertBlock()

	c.builder.PositionAtEnd(mergeBB)
	ty, err := e.Type()
	if err != nil {
		return nil, err
	}
	phi := c.builder.BuildPhi(BackendType(c.ctx, ty), "iftmp")
	phi.AddIncoming(
		[]codegen.Value{thenVal, elseVal},
		[]*codegen.BasicBlock{thenEnd, elseEnd},
	)
	return phi, nil
}
