package compiler

import (
	"strings"
	"testing"

	"github.com/flare-lang/flare/internal/codegen"
	"github.com/flare-lang/flare/internal/module"
	"github.com/flare-lang/flare/internal/parser"
	"github.com/flare-lang/flare/internal/types"
)

func lower(t *testing.T, input string) (*module.RuntimeModule, types.Type) {
	t.Helper()
	ctx, err := codegen.NewContext()
	if err != nil {
		t.Fatal(err)
	}
	builder, err := ctx.CreateBuilder()
	if err != nil {
		t.Fatal(err)
	}
	rtm := module.New("repl")
	if err := rtm.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	modules := map[string]*module.RuntimeModule{"repl": rtm}

	fns, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", input, err)
	}
	var retTy types.Type
	for _, fn := range fns {
		if _, retTy, err = New("repl", ctx, builder, modules, fn).Compile(); err != nil {
			t.Fatalf("Compile(%q) error: %v", input, err)
		}
	}
	return rtm, retTy
}

func run(t *testing.T, rtm *module.RuntimeModule, name string, args ...uint64) uint64 {
	t.Helper()
	fn, err := rtm.Engine.FunctionAddress(name)
	if err != nil {
		t.Fatal(err)
	}
	return fn(args...)
}

func TestLowerScalarFunction(t *testing.T) {
	rtm, retTy := lower(t, "def addone |n: Int64| { n + 1 }")
	if retTy.Kind != types.Int64 {
		t.Fatalf("return type: got=%v want Int64", retTy)
	}
	if got := run(t, rtm, "addone", 41); got != 42 {
		t.Fatalf("got=%d want=42", got)
	}
}

// Parameter and local slots must all be hoisted into the entry block.
func TestAllocasHoistedToEntry(t *testing.T) {
	rtm, _ := lower(t, "def f |a: Int64, b: Int64| { t = a + b; if t > 0 { u = t; u } else { 0 } }")
	fn, ok := rtm.Backend.GetFunction("f")
	if !ok {
		t.Fatal("function not found")
	}
	entry := fn.EntryBlock()
	allocas := 0
	for _, in := range entry.Instrs {
		if in.Op == codegen.OpAlloca {
			allocas++
		}
	}
	// a, b, t and the branch-local u all live in entry.
	if allocas != 4 {
		t.Fatalf("entry allocas: got=%d want=4", allocas)
	}
	for _, bb := range fn.Blocks[1:] {
		for _, in := range bb.Instrs {
			if in.Op == codegen.OpAlloca {
				t.Fatalf("alloca found outside entry block %q", bb.Name)
			}
		}
	}
}

func TestCondLowersToPhi(t *testing.T) {
	rtm, _ := lower(t, "def pick |b: Bool| { if b { 10 } else { 20 } }")
	ir := rtm.Backend.DumpString()
	for _, want := range []string{"then:", "else:", "ifcont:", "phi"} {
		if !strings.Contains(ir, want) {
			t.Fatalf("IR missing %q:\n%s", want, ir)
		}
	}
	if got := run(t, rtm, "pick", 1); got != 10 {
		t.Fatalf("got=%d want=10", got)
	}
	if got := run(t, rtm, "pick", 0); got != 20 {
		t.Fatalf("got=%d want=20", got)
	}
}

func TestGlobalAssignKeepsCellStable(t *testing.T) {
	rtm, _ := lower(t, "x = 7; x")
	g, ok := rtm.GetGlobal("x")
	if !ok {
		t.Fatal("global x not recorded")
	}
	cell := g.Cell

	if got := run(t, rtm, "top-level"); got != 7 {
		t.Fatalf("got=%d want=7", got)
	}

	// Overwriting the slot reuses the cell, so addresses already
	// embedded in generated code stay valid.
	rtm.AddGlobal("x", g.Value())
	g2, _ := rtm.GetGlobal("x")
	if g2.Cell != cell {
		t.Fatalf("global cell address changed on overwrite")
	}
}

func TestVectorLiteralReturnsHandle(t *testing.T) {
	rtm, retTy := lower(t, "[1,2,3]")
	if retTy.Kind != types.VecInt64 {
		t.Fatalf("return type: got=%v want VecInt64", retTy)
	}
	raw := run(t, rtm, "top-level")
	if raw == 0 {
		t.Fatalf("vector literal returned a zero handle")
	}
}

func TestVerifyFailureDeletesFunction(t *testing.T) {
	// A structurally broken function must not survive in the module.
	// Build one by hand with an empty entry block, check that Verify
	// rejects it, then Delete it as Compile does on verification failure.
	ctx, err := codegen.NewContext()
	if err != nil {
		t.Fatal(err)
	}
	mod, err := ctx.CreateModule("m")
	if err != nil {
		t.Fatal(err)
	}
	fn := mod.AddFunction("broken", ctx.FnType(ctx.I64Type(), nil))
	ctx.AppendBasicBlock(fn, "entry") // left empty: no terminator
	if err := fn.Verify(); err == nil {
		t.Fatal("Verify: expected error")
	}
	fn.Delete()
	if _, ok := mod.GetFunction("broken"); ok {
		t.Fatal("broken function still in module after Delete")
	}
}
