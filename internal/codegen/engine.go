package codegen

import (
	"fmt"
	"math"
)

// ExecutionEngine resolves function names in a module to callable
// entry points. The engine evaluates the module's IR directly; from the
// caller's side a resolved function behaves like a C-ABI entry point
// taking and returning raw 64-bit payload words.
type ExecutionEngine struct {
	module *Module
}

// CompiledFunc is the callable form of a resolved function.
type CompiledFunc func(args ...uint64) uint64

// FunctionAddress resolves a defined function by name.
func (e *ExecutionEngine) FunctionAddress(name string) (CompiledFunc, error) {
	fn, ok := e.module.GetFunction(name)
	if !ok {
		return nil, fmt.Errorf("undefined symbol: %q", name)
	}
	return func(args ...uint64) uint64 {
		return e.run(fn, args)
	}, nil
}

// run evaluates one function activation. Declarations dispatch to the
// registered native symbol of the same name.
func (e *ExecutionEngine) run(fn *FnValue, args []uint64) uint64 {
	if fn.IsDeclaration() {
		native, ok := lookupSymbol(fn.Name)
		if !ok {
			panic(fmt.Sprintf("codegen: unresolved external %q", fn.Name))
		}
		return native(args)
	}

	fr := &frame{
		args:    args,
		regs:    make(map[*Instr]uint64),
		allocas: make(map[*Instr]*uint64),
	}

	block := fn.EntryBlock()
	var prev *BasicBlock
	for {
		next, done, ret := e.runBlock(fr, block, prev)
		if done {
			return ret
		}
		prev = block
		block = next
	}
}

type frame struct {
	args    []uint64
	regs    map[*Instr]uint64
	allocas map[*Instr]*uint64
}

func (fr *frame) eval(v Value) uint64 {
	switch v := v.(type) {
	case *ConstValue:
		return v.Bits
	case *Param:
		return fr.args[v.Idx]
	case *Instr:
		return fr.regs[v]
	}
	panic(fmt.Sprintf("codegen: operand %T has no runtime value", v))
}

// cell resolves a pointer operand to the memory it designates: an
// alloca's frame slot or a host cell embedded as a constant.
func (fr *frame) cell(v Value) *uint64 {
	switch v := v.(type) {
	case *Instr:
		if v.Op == OpAlloca {
			return fr.allocas[v]
		}
	case *ConstPtr:
		return v.Cell
	}
	panic(fmt.Sprintf("codegen: %T is not an addressable pointer", v))
}

func (e *ExecutionEngine) runBlock(fr *frame, block, prev *BasicBlock) (*BasicBlock, bool, uint64) {
	for _, in := range block.Instrs {
		switch in.Op {
		case OpAdd:
			fr.regs[in] = uint64(int64(fr.eval(in.Args[0])) + int64(fr.eval(in.Args[1])))
		case OpSub:
			fr.regs[in] = uint64(int64(fr.eval(in.Args[0])) - int64(fr.eval(in.Args[1])))
		case OpMul:
			fr.regs[in] = uint64(int64(fr.eval(in.Args[0])) * int64(fr.eval(in.Args[1])))
		case OpSDiv:
			fr.regs[in] = uint64(int64(fr.eval(in.Args[0])) / int64(fr.eval(in.Args[1])))
		case OpSRem:
			fr.regs[in] = uint64(int64(fr.eval(in.Args[0])) % int64(fr.eval(in.Args[1])))

		case OpFAdd:
			fr.regs[in] = fbits(fval(fr.eval(in.Args[0])) + fval(fr.eval(in.Args[1])))
		case OpFSub:
			fr.regs[in] = fbits(fval(fr.eval(in.Args[0])) - fval(fr.eval(in.Args[1])))
		case OpFMul:
			fr.regs[in] = fbits(fval(fr.eval(in.Args[0])) * fval(fr.eval(in.Args[1])))
		case OpFDiv:
			fr.regs[in] = fbits(fval(fr.eval(in.Args[0])) / fval(fr.eval(in.Args[1])))
		case OpFRem:
			fr.regs[in] = fbits(math.Mod(fval(fr.eval(in.Args[0])), fval(fr.eval(in.Args[1]))))

		case OpOr:
			fr.regs[in] = fr.eval(in.Args[0]) | fr.eval(in.Args[1])
		case OpAnd:
			fr.regs[in] = fr.eval(in.Args[0]) & fr.eval(in.Args[1])
		case OpXor:
			fr.regs[in] = fr.eval(in.Args[0]) ^ fr.eval(in.Args[1])

		case OpICmp:
			fr.regs[in] = boolBits(icmp(in.IPred, int64(fr.eval(in.Args[0])), int64(fr.eval(in.Args[1]))))
		case OpFCmp:
			fr.regs[in] = boolBits(fcmp(in.FPred, fval(fr.eval(in.Args[0])), fval(fr.eval(in.Args[1]))))

		case OpAlloca:
			fr.allocas[in] = new(uint64)
		case OpLoad:
			fr.regs[in] = *fr.cell(in.Args[0])
		case OpStore:
			*fr.cell(in.Args[0]) = fr.eval(in.Args[1])

		case OpCall:
			args := make([]uint64, len(in.Args))
			for k, a := range in.Args {
				args[k] = fr.eval(a)
			}
			fr.regs[in] = e.run(in.Callee, args)

		case OpBr:
			return in.Targets[0], false, 0
		case OpCondBr:
			if fr.eval(in.Args[0])&1 != 0 {
				return in.Targets[0], false, 0
			}
			return in.Targets[1], false, 0

		case OpPhi:
			var found bool
			for _, inc := range in.Incoming {
				if inc.Block == prev {
					fr.regs[in] = fr.eval(inc.Val)
					found = true
					break
				}
			}
			if !found {
				panic(fmt.Sprintf("codegen: phi %q has no incoming edge from %q", in.Name, prev.Name))
			}

		case OpRet, OpAggRet:
			if len(in.Args) == 0 {
				return nil, true, 0
			}
			return nil, true, fr.eval(in.Args[0])
		}
	}
	panic(fmt.Sprintf("codegen: block %q fell off the end", block.Name))
}

func fval(bits uint64) float64 { return math.Float64frombits(bits) }
func fbits(f float64) uint64   { return math.Float64bits(f) }

func boolBits(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func icmp(pred IntPredicate, a, b int64) bool {
	switch pred {
	case IntEQ:
		return a == b
	case IntNE:
		return a != b
	case IntSLT:
		return a < b
	case IntSLE:
		return a <= b
	case IntSGT:
		return a > b
	case IntSGE:
		return a >= b
	}
	return false
}

func fcmp(pred FloatPredicate, a, b float64) bool {
	// Unordered predicates: any comparison with NaN is satisfied.
	if math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	switch pred {
	case FloatUEQ:
		return a == b
	case FloatUNE:
		return a != b
	case FloatULT:
		return a < b
	case FloatULE:
		return a <= b
	case FloatUGT:
		return a > b
	case FloatUGE:
		return a >= b
	}
	return false
}
