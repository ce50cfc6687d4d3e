package value

import (
	"math"
	"testing"

	"github.com/flare-lang/flare/internal/types"
)

func TestScalarPayloads(t *testing.T) {
	if got := FromInt64(-7); got.AsInt64() != -7 {
		t.Fatalf("Int64 roundtrip: got=%d", got.AsInt64())
	}
	if got := FromFloat64(2.5); got.AsFloat64() != 2.5 {
		t.Fatalf("Float64 roundtrip: got=%v", got.AsFloat64())
	}
	if got := FromBool(true); !got.AsBool() || got.Raw() != 1 {
		t.Fatalf("Bool payload: got raw=%d", got.Raw())
	}
	if got := FromBool(false); got.AsBool() || got.Raw() != 0 {
		t.Fatalf("Bool payload: got raw=%d", got.Raw())
	}
	if got := NullVal(); got.Raw() != uint64(math.MaxInt64) {
		t.Fatalf("Null sentinel: got raw=%d", got.Raw())
	}
}

// FromRaw must reassemble exactly what generated code returned.
func TestFromRawRoundtrip(t *testing.T) {
	orig := FromFloat64(-3.25)
	back := FromRaw(types.TFloat64, orig.Raw())
	if back.AsFloat64() != -3.25 {
		t.Fatalf("FromRaw Float64: got=%v", back.AsFloat64())
	}

	vec := FromVecInt64([]int64{4, 5, 6})
	defer vec.Release()
	back = FromRaw(types.TVecInt64, vec.Raw())
	got := back.VecInt64()
	if len(got) != 3 || got[0] != 4 || got[2] != 6 {
		t.Fatalf("FromRaw VecInt64: got=%v", got)
	}
}

func TestScalarPayloadsNeverAliasArena(t *testing.T) {
	before := Live()
	_ = FromInt64(123456)
	_ = FromFloat64(1.5)
	_ = FromBool(true)
	_ = NullVal()
	if Live() != before {
		t.Fatalf("scalar construction touched the arena: %d -> %d", before, Live())
	}
}

func TestRetainRelease(t *testing.T) {
	before := Live()
	v := FromVecFloat64([]float64{1.5})
	if Live() != before+1 {
		t.Fatalf("alloc: live got=%d want=%d", Live(), before+1)
	}
	v.Retain()
	v.Release()
	if Live() != before+1 {
		t.Fatalf("after retain+release: live got=%d want=%d", Live(), before+1)
	}
	v.Release()
	if Live() != before {
		t.Fatalf("after final release: live got=%d want=%d", Live(), before)
	}
	if v.VecFloat64() != nil {
		t.Fatalf("released handle still resolves")
	}
}

func TestDisplay(t *testing.T) {
	list := FromList([]Value{FromInt64(1), FromBool(true)})
	defer list.Release()
	vi := FromVecInt64([]int64{1, 2, 3})
	defer vi.Release()
	vf := FromVecFloat64([]float64{1, 2.5})
	defer vf.Release()

	tests := []struct {
		v    Value
		want string
	}{
		{NullVal(), "null"},
		{FromBool(true), "true"},
		{FromBool(false), "false"},
		{FromInt64(42), "42"},
		{FromInt64(-1), "-1"},
		{FromFloat64(2), "2.00"},
		{FromFloat64(-0.125), "-0.12"},
		{vi, "[1, 2, 3]"},
		{vf, "[1.0, 2.5]"},
		{list, "[1, true]"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Fatalf("display: got=%q want=%q", got, tt.want)
		}
	}
}
