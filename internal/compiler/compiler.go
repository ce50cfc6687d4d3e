// Package compiler lowers typed AST functions into back-end IR emitted
// into the active module.
package compiler

import (
	"fmt"

	"github.com/flare-lang/flare/internal/ast"
	"github.com/flare-lang/flare/internal/codegen"
	"github.com/flare-lang/flare/internal/diag"
	"github.com/flare-lang/flare/internal/infer"
	"github.com/flare-lang/flare/internal/module"
	"github.com/flare-lang/flare/internal/types"
	"github.com/flare-lang/flare/internal/value"
)

// Compiler lowers one function into the active module. It keeps the
// per-function table of local stack slots and the handle of the function
// under construction.
type Compiler struct {
	moduleName string
	ctx        *codegen.Context
	builder    *codegen.Builder
	modules    map[string]*module.RuntimeModule
	fn         *ast.Function

	vars  map[string]*codegen.Instr // name → alloca slot
	fnVal *codegen.FnValue
}

// New creates a Compiler for one function.
func New(moduleName string, ctx *codegen.Context, builder *codegen.Builder, modules map[string]*module.RuntimeModule, fn *ast.Function) *Compiler {
	return &Compiler{
		moduleName: moduleName,
		ctx:        ctx,
		builder:    builder,
		modules:    modules,
		fn:         fn,
		vars:       make(map[string]*codegen.Instr),
	}
}

func (c *Compiler) module() *module.RuntimeModule {
	return c.modules[c.moduleName]
}

// Compile type-checks and lowers the function, returning its back-end
// handle and return type.
func (c *Compiler) Compile() (*codegen.FnValue, types.Type, error) {
	rtm := c.module()

	locals := make(map[string]types.Type, len(c.fn.Args))
	for _, p := range c.fn.Args {
		locals[p.Name] = p.Type
	}
	retTy, err := infer.Exprs(c.fn.Body, rtm, locals)
	if err != nil {
		return nil, types.TNull, err
	}

	fnVal := c.compilePrototype(retTy)

	// An extern has no body; only its prototype is emitted.
	if len(c.fn.Body) == 0 {
		return fnVal, retTy, nil
	}

	entry := c.ctx.AppendBasicBlock(fnVal, "entry")
	c.builder.PositionAtEnd(entry)
	c.fnVal = fnVal

	for i, prm := range fnVal.Params() {
		name := c.fn.Args[i].Name
		prm.SetName(name)
		slot := c.entryBlockAlloca(name, prm.Type())
		c.builder.BuildStore(slot, prm)
		c.vars[name] = slot
	}

	var last codegen.Value
	for _, e := range c.fn.Body {
		last, err = c.compileExpr(e)
		if err != nil {
			fnVal.Delete()
			return nil, types.TNull, err
		}
	}

	if retTy.IsScalar() {
		c.builder.BuildRet(last)
	} else {
		c.builder.BuildAggregateRet([]codegen.Value{last})
	}

	if err := fnVal.Verify(); err != nil {
		fnVal.Delete()
		return nil, types.TNull, diag.Compile(
			fmt.Sprintf("Compile function: '%s' failed", c.fn.Name),
			err.Error(),
			nil,
		)
	}
	return fnVal, retTy, nil
}

// compilePrototype emits the function's declaration into the active
// module and records its signature for later calls and inference.
func (c *Compiler) compilePrototype(retTy types.Type) *codegen.FnValue {
	rtm := c.module()

	sig := &types.FnType{Ret: retTy}
	for _, p := range c.fn.Args {
		sig.Args = append(sig.Args, p.Type)
	}
	fnVal := rtm.Backend.AddFunction(c.fn.Name, BackendFnType(c.ctx, sig))
	rtm.SetFnSig(c.fn.Name, sig)
	rtm.AddGlobal(c.fn.Name, value.FromFn(sig))
	return fnVal
}

// entryBlockAlloca hoists a stack slot into the function's entry block
// through a subsidiary builder, positioned before the first instruction
// or at the block's end when it is still empty.
func (c *Compiler) entryBlockAlloca(name string, ty *codegen.Type) *codegen.Instr {
	sub, err := c.ctx.CreateBuilder()
	if err != nil {
		panic("codegen: unable to create builder")
	}
	entry := c.fnVal.EntryBlock()
	if first := entry.First(); first != nil {
		sub.PositionBefore(first)
	} else {
		sub.PositionAtEnd(entry)
	}
	return sub.BuildAlloca(ty, name)
}
