// Package module holds the per-module runtime state that survives REPL
// evaluations: the globals map with its stable host cells and the
// declared function signatures. The back-end module and execution
// engine handles it carries are replaced on every evaluation.
package module

import (
	"github.com/flare-lang/flare/internal/codegen"
	"github.com/flare-lang/flare/internal/types"
	"github.com/flare-lang/flare/internal/value"
)

// Global is one named slot. Cell is the host word generated code loads
// and stores through; its address stays stable for as long as the
// RuntimeModule lives, across engine recreations.
type Global struct {
	Type types.Type
	Cell *uint64
	Val  value.Value
}

// Value reassembles the slot's current contents into a Value.
func (g *Global) Value() value.Value {
	return value.FromRaw(g.Type, *g.Cell)
}

// RuntimeModule owns a back-end module handle, its execution engine,
// the globals map and the declared function signatures.
type RuntimeModule struct {
	Name    string
	Backend *codegen.Module
	Engine  *codegen.ExecutionEngine

	globals  map[string]*Global
	fns      map[string]*types.FnType
	literals []value.Value
}

// New creates an empty runtime module; Reset attaches the first back-end
// module and engine.
func New(name string) *RuntimeModule {
	return &RuntimeModule{
		Name:    name,
		globals: make(map[string]*Global),
		fns:     make(map[string]*types.FnType),
	}
}

// Reset replaces the back-end module and engine with fresh ones. Globals
// and declared signatures survive; every handle from the previous
// generation is dropped.
func (m *RuntimeModule) Reset(ctx *codegen.Context) error {
	backend, err := ctx.CreateModule(m.Name)
	if err != nil {
		return err
	}
	engine, err := backend.CreateExecutionEngine()
	if err != nil {
		return err
	}
	m.Backend = backend
	m.Engine = engine
	return nil
}

// AddGlobal inserts or overwrites a global. An existing slot keeps its
// cell so addresses already embedded in generated code stay valid.
func (m *RuntimeModule) AddGlobal(name string, v value.Value) *Global {
	if g, ok := m.globals[name]; ok {
		g.Type = v.Type()
		g.Val = v
		*g.Cell = v.Raw()
		return g
	}
	cell := new(uint64)
	*cell = v.Raw()
	g := &Global{Type: v.Type(), Cell: cell, Val: v}
	m.globals[name] = g
	return g
}

// GetGlobal looks up a global slot.
func (m *RuntimeModule) GetGlobal(name string) (*Global, bool) {
	g, ok := m.globals[name]
	return g, ok
}

// SetFnSig records a declared function's signature.
func (m *RuntimeModule) SetFnSig(name string, sig *types.FnType) {
	m.fns[name] = sig
}

// GlobalType implements infer.Env.
func (m *RuntimeModule) GlobalType(name string) (types.Type, bool) {
	if g, ok := m.globals[name]; ok {
		return g.Type, true
	}
	return types.TNull, false
}

// FnSig implements infer.Env.
func (m *RuntimeModule) FnSig(name string) (*types.FnType, bool) {
	sig, ok := m.fns[name]
	return sig, ok
}

// OwnLiteral records a heap literal whose handle was embedded into
// generated code, so the module can release it on Close.
func (m *RuntimeModule) OwnLiteral(v value.Value) {
	m.literals = append(m.literals, v)
}

// Close releases every heap literal the module took ownership of.
func (m *RuntimeModule) Close() {
	for _, v := range m.literals {
		v.Release()
	}
	m.literals = nil
}
