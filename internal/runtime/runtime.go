// Package runtime drives the compile pipeline for each REPL input and
// owns the incremental execution model: the back-end context, the named
// runtime modules, and the registry of user functions retained across
// inputs.
package runtime

import (
	"github.com/flare-lang/flare/internal/ast"
	"github.com/flare-lang/flare/internal/builtins"
	"github.com/flare-lang/flare/internal/codegen"
	"github.com/flare-lang/flare/internal/compiler"
	"github.com/flare-lang/flare/internal/diag"
	"github.com/flare-lang/flare/internal/extern"
	"github.com/flare-lang/flare/internal/module"
	"github.com/flare-lang/flare/internal/parser"
	"github.com/flare-lang/flare/internal/types"
	"github.com/flare-lang/flare/internal/value"
)

// ReplModule is the name of the module recreated for every input.
const ReplModule = "repl"

// Runtime owns one back-end context and builder, the named modules, and
// the ordered registry of previously parsed user functions. It is
// single-threaded; one runtime lives per process.
type Runtime struct {
	ctx     *codegen.Context
	builder *codegen.Builder
	modules map[string]*module.RuntimeModule

	// Retained user functions, in first-definition order. Redefinition
	// replaces the body but keeps the position, so re-lowering stays
	// deterministic.
	fnOrder []string
	fns     map[string]*ast.Function
}

// New creates a runtime: a fresh context and builder, the registered
// intrinsics bound into the back-end symbol table, and the runtime
// handed to the builtins package so intrinsics can reach it.
func New() (*Runtime, error) {
	ctx, err := codegen.NewContext()
	if err != nil {
		return nil, diag.Runtime("unable to create context: %v", err)
	}
	builder, err := ctx.CreateBuilder()
	if err != nil {
		return nil, diag.Runtime("unable to create builder: %v", err)
	}

	rt := &Runtime{
		ctx:     ctx,
		builder: builder,
		modules: make(map[string]*module.RuntimeModule),
		fns:     make(map[string]*ast.Function),
	}

	for _, d := range extern.All() {
		codegen.AddSymbol(d.Name, d.Fn)
	}
	builtins.Bind(rt)
	return rt, nil
}

// GetModule returns a runtime module by name; intrinsics use this to
// reach the active REPL module.
func (r *Runtime) GetModule(name string) (*module.RuntimeModule, bool) {
	m, ok := r.modules[name]
	return m, ok
}

// DumpModule renders a module's IR; it implements builtins.Runtime.
func (r *Runtime) DumpModule(name string) (string, bool) {
	m, ok := r.modules[name]
	if !ok || m.Backend == nil {
		return "", false
	}
	return m.Backend.DumpString(), true
}

// Close releases module-owned heap values.
func (r *Runtime) Close() {
	for _, m := range r.modules {
		m.Close()
	}
}

// ParseEval runs the full pipeline for one input line and returns the
// value of its top-level expressions, or Null when the input defined
// functions only.
func (r *Runtime) ParseEval(source string) (value.Value, error) {
	// The REPL module and its engine are recreated for every input so a
	// redefinition can never alias a body the old engine already bound.
	rtm, ok := r.modules[ReplModule]
	if !ok {
		rtm = module.New(ReplModule)
		r.modules[ReplModule] = rtm
	}
	if err := rtm.Reset(r.ctx); err != nil {
		return value.NullVal(), diag.Runtime("unable to create module: %v", err)
	}

	r.declareExterns(rtm)

	// Re-lower every retained function into the fresh module, in
	// retention order. This is the price of recreating the module.
	for _, name := range r.fnOrder {
		if _, _, err := compiler.New(ReplModule, r.ctx, r.builder, r.modules, r.fns[name]).Compile(); err != nil {
			return value.NullVal(), err
		}
	}

	fns, err := parser.Parse(source)
	if err != nil {
		return value.NullVal(), err
	}

	var topRet types.Type
	hasTop := false
	for _, fn := range fns {
		_, retTy, err := compiler.New(ReplModule, r.ctx, r.builder, r.modules, fn).Compile()
		if err != nil {
			return value.NullVal(), err
		}
		if fn.TopLevel {
			topRet = retTy
			hasTop = true
			continue
		}
		// Retain only after successful lowering; a failing input leaves
		// the registry untouched.
		if _, exists := r.fns[fn.Name]; !exists {
			r.fnOrder = append(r.fnOrder, fn.Name)
		}
		r.fns[fn.Name] = fn
	}

	if !hasTop {
		return value.NullVal(), nil
	}
	return r.invokeTopLevel(rtm, topRet)
}

// declareExterns re-adds every registered external's prototype to a
// fresh module and records its signature and global slot.
func (r *Runtime) declareExterns(rtm *module.RuntimeModule) {
	for _, d := range extern.All() {
		sig := d.Sig()
		rtm.Backend.AddFunction(d.Name, compiler.BackendFnType(r.ctx, sig))
		rtm.SetFnSig(d.Name, sig)
		rtm.AddGlobal(d.Name, value.FromFn(sig))
	}
}

// invokeTopLevel resolves the freshly compiled wrapper's address and
// calls it through the stub matching its return type.
func (r *Runtime) invokeTopLevel(rtm *module.RuntimeModule, retTy types.Type) (val value.Value, err error) {
	entry, aerr := rtm.Engine.FunctionAddress(ast.TopLevelName)
	if aerr != nil {
		return value.NullVal(), diag.Runtime("unable to resolve top-level: %v", aerr)
	}

	// Generated code traps — a division by zero, an unresolved symbol —
	// surface as a runtime error rather than tearing down the REPL.
	defer func() {
		if p := recover(); p != nil {
			val = value.NullVal()
			err = diag.Runtime("execution fault: %v", p)
		}
	}()

	var raw uint64
	if retTy.IsScalar() {
		raw = callScalar(entry)
	} else {
		raw = callAggregate(entry)
	}
	return value.FromRaw(retTy, raw), nil
}

// callScalar invokes a nullary function whose result is a scalar
// payload in a single register.
func callScalar(fn codegen.CompiledFunc) uint64 {
	return fn()
}

// callAggregate invokes a nullary function whose result is a one-field
// aggregate wrapping a reference payload.
func callAggregate(fn codegen.CompiledFunc) uint64 {
	return fn()
}
