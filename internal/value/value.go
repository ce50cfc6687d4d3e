package value

import (
	"math"

	"github.com/flare-lang/flare/internal/types"
)

// NullWord is the reserved payload for Null values.
const NullWord = uint64(math.MaxInt64)

// Value is the ABI unit that round-trips through generated code: a type
// tag paired with a 64-bit payload word. Scalars live inline in the word;
// reference types carry a handle into the refcounted heap arena.
type Value struct {
	typ types.Type
	raw uint64
}

// NullVal is the canonical Null value.
func NullVal() Value {
	return Value{typ: types.TNull, raw: NullWord}
}

// FromBool stores the bool in the low bit of the payload.
func FromBool(b bool) Value {
	var w uint64
	if b {
		w = 1
	}
	return Value{typ: types.TBool, raw: w}
}

// FromInt64 stores the integer verbatim.
func FromInt64(v int64) Value {
	return Value{typ: types.TInt64, raw: uint64(v)}
}

// FromFloat64 stores the float's bit pattern.
func FromFloat64(v float64) Value {
	return Value{typ: types.TFloat64, raw: math.Float64bits(v)}
}

// FromVecInt64 allocates the vector on the heap arena and stores its
// handle. The caller receives the single owning reference.
func FromVecInt64(v []int64) Value {
	return Value{typ: types.TVecInt64, raw: alloc(v)}
}

// FromVecFloat64 allocates the vector on the heap arena.
func FromVecFloat64(v []float64) Value {
	return Value{typ: types.TVecFloat64, raw: alloc(v)}
}

// FromList allocates a heterogeneous list on the heap arena.
func FromList(v []Value) Value {
	return Value{typ: types.TList, raw: alloc(v)}
}

// FromFn builds the Fn-typed value recorded for a declared function. A
// prototype has no runtime object behind it, so the payload is zero;
// calls go through the module's symbol resolution, never through this
// word.
func FromFn(sig *types.FnType) Value {
	return Value{typ: types.NewFn(sig.Args, sig.Ret)}
}

// FromRaw reassembles a Value from a type tag and a payload word, as
// returned by a JIT-compiled top-level function.
func FromRaw(t types.Type, raw uint64) Value {
	return Value{typ: t, raw: raw}
}

// Type returns the value's type tag.
func (v Value) Type() types.Type { return v.typ }

// Raw returns the payload word.
func (v Value) Raw() uint64 { return v.raw }

// IsNull reports whether the value is Null.
func (v Value) IsNull() bool { return v.typ.Kind == types.Null }

// AsBool reads a Bool payload.
func (v Value) AsBool() bool { return v.raw&1 != 0 }

// AsInt64 reads an Int64 payload.
func (v Value) AsInt64() int64 { return int64(v.raw) }

// AsFloat64 reads a Float64 payload.
func (v Value) AsFloat64() float64 { return math.Float64frombits(v.raw) }

// VecInt64 resolves the heap object behind a VecInt64 payload.
func (v Value) VecInt64() []int64 {
	data, _ := lookup(v.raw).([]int64)
	return data
}

// VecFloat64 resolves the heap object behind a VecFloat64 payload.
func (v Value) VecFloat64() []float64 {
	data, _ := lookup(v.raw).([]float64)
	return data
}

// List resolves the heap object behind a List payload.
func (v Value) List() []Value {
	data, _ := lookup(v.raw).([]Value)
	return data
}

// Retain takes an extra reference on a heap-backed value. Scalars are
// unaffected.
func (v Value) Retain() {
	if !v.typ.IsScalar() {
		retain(v.raw)
	}
}

// Release drops a reference on a heap-backed value, freeing the arena
// slot when the count reaches zero.
func (v Value) Release() {
	if !v.typ.IsScalar() {
		release(v.raw)
	}
}
