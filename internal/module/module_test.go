package module

import (
	"testing"

	"github.com/flare-lang/flare/internal/codegen"
	"github.com/flare-lang/flare/internal/types"
	"github.com/flare-lang/flare/internal/value"
)

func TestResetReplacesHandlesKeepsGlobals(t *testing.T) {
	ctx, err := codegen.NewContext()
	if err != nil {
		t.Fatal(err)
	}
	m := New("repl")
	if err := m.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	first := m.Backend

	g := m.AddGlobal("x", value.FromInt64(3))
	m.SetFnSig("f", &types.FnType{Ret: types.TInt64})

	if err := m.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if m.Backend == first {
		t.Fatal("Reset did not replace the back-end module")
	}
	g2, ok := m.GetGlobal("x")
	if !ok || g2.Cell != g.Cell {
		t.Fatal("global slot did not survive Reset with a stable cell")
	}
	if _, ok := m.FnSig("f"); !ok {
		t.Fatal("declared signature did not survive Reset")
	}
}

func TestGlobalTypeAndValue(t *testing.T) {
	ctx, _ := codegen.NewContext()
	m := New("repl")
	_ = m.Reset(ctx)

	m.AddGlobal("pi", value.FromFloat64(3.14))
	ty, ok := m.GlobalType("pi")
	if !ok || ty.Kind != types.Float64 {
		t.Fatalf("GlobalType: got=%v ok=%v", ty, ok)
	}
	g, _ := m.GetGlobal("pi")
	if g.Value().AsFloat64() != 3.14 {
		t.Fatalf("Value: got=%v", g.Value().AsFloat64())
	}

	if _, ok := m.GlobalType("nope"); ok {
		t.Fatal("GlobalType resolved an unknown name")
	}
}

func TestCloseReleasesLiterals(t *testing.T) {
	ctx, _ := codegen.NewContext()
	m := New("repl")
	_ = m.Reset(ctx)

	before := value.Live()
	m.OwnLiteral(value.FromVecInt64([]int64{1, 2}))
	m.OwnLiteral(value.FromVecFloat64([]float64{1.5}))
	if value.Live() != before+2 {
		t.Fatalf("live: got=%d want=%d", value.Live(), before+2)
	}
	m.Close()
	if value.Live() != before {
		t.Fatalf("after Close: live got=%d want=%d", value.Live(), before)
	}
}
