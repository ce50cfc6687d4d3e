// Package builtins registers the host intrinsics callable from
// generated code. Registration happens once at package init; the live
// runtime is bound afterwards so intrinsics that inspect it can reach
// the active REPL module.
package builtins

import (
	"fmt"
	"math"
	"strconv"

	"github.com/flare-lang/flare/internal/extern"
	"github.com/flare-lang/flare/internal/types"
	"github.com/flare-lang/flare/internal/value"
)

// Runtime is the slice of the live runtime that intrinsics need.
type Runtime interface {
	DumpModule(name string) (string, bool)
}

var current Runtime

// Bind hands the live runtime to the intrinsics. It is called once from
// runtime construction; the binding is single-writer by convention.
func Bind(rt Runtime) {
	current = rt
}

func init() {
	extern.Register(&extern.Descriptor{
		Name: "print",
		Args: []types.Type{types.TFloat64},
		Ret:  types.TFloat64,
		Fn:   printFloat,
	})
	extern.Register(&extern.Descriptor{
		Name: "dump_module",
		Ret:  types.TNull,
		Fn:   dumpModule,
	})
	extern.Register(&extern.Descriptor{
		Name: "test",
		Ret:  types.TVecInt64,
		Fn:   testVec,
	})
}

// printFloat prints its argument and returns it.
func printFloat(args []uint64) uint64 {
	f := math.Float64frombits(args[0])
	fmt.Println(strconv.FormatFloat(f, 'g', -1, 64))
	return args[0]
}

// dumpModule prints the active REPL module's IR and returns Null.
func dumpModule(args []uint64) uint64 {
	if current != nil {
		if ir, ok := current.DumpModule("repl"); ok {
			fmt.Print(ir)
		}
	}
	return value.NullWord
}

// testVec returns the vector [1, 2, 3]; a smoke intrinsic for the
// reference-payload path across the call boundary.
func testVec(args []uint64) uint64 {
	return value.FromVecInt64([]int64{1, 2, 3}).Raw()
}
