package codegen

import "fmt"

// Value is anything that can appear as an instruction operand: a
// constant, a host-pointer constant, a function parameter, a function
// reference, or the result of another instruction. Handles borrow their
// lifetime from the owning Context and must not be retained across a
// module teardown.
type Value interface {
	Type() *Type
}

// ConstValue is an i1/i64/double constant. Floats store their bit
// pattern, matching the payload convention of the value ABI.
type ConstValue struct {
	typ  *Type
	Bits uint64
}

func (c *ConstValue) Type() *Type { return c.typ }

// ConstPtr is a host-memory address embedded into generated code. Loads
// and stores through it touch the referenced cell directly, which is how
// globals keep their state across module recreations.
type ConstPtr struct {
	typ  *Type
	Cell *uint64
}

func (c *ConstPtr) Type() *Type { return c.typ }

// Param is a formal parameter of a function.
type Param struct {
	fn   *FnValue
	Idx  int
	name string
	typ  *Type
}

func (p *Param) Type() *Type { return p.typ }

// SetName assigns the parameter's display name.
func (p *Param) SetName(name string) { p.name = name }

// Opcode enumerates the IR instruction set.
type Opcode int

const (
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpSDiv
	OpSRem
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFRem
	OpOr
	OpAnd
	OpXor
	OpICmp
	OpFCmp
	OpAlloca
	OpLoad
	OpStore
	OpCall
	OpBr
	OpCondBr
	OpPhi
	OpRet
	OpAggRet
)

// IntPredicate selects an integer comparison.
type IntPredicate int

const (
	IntEQ IntPredicate = iota
	IntNE
	IntSLT
	IntSLE
	IntSGT
	IntSGE
)

// FloatPredicate selects a float comparison. The unordered predicates
// treat NaN operands as satisfying the relation, matching how the
// lowerer emits float comparisons.
type FloatPredicate int

const (
	FloatUEQ FloatPredicate = iota
	FloatUNE
	FloatULT
	FloatULE
	FloatUGT
	FloatUGE
)

// PhiIncoming is one (value, predecessor) pair of a phi.
type PhiIncoming struct {
	Val   Value
	Block *BasicBlock
}

// Instr is one emitted instruction. Its result, when it has one, is the
// instruction value itself.
type Instr struct {
	Op       Opcode
	typ      *Type
	Name     string
	Args     []Value
	IPred    IntPredicate
	FPred    FloatPredicate
	Targets  []*BasicBlock
	Incoming []PhiIncoming
	Callee   *FnValue

	block *BasicBlock
}

func (i *Instr) Type() *Type { return i.typ }

// IsTerminator reports whether the instruction ends its block.
func (i *Instr) IsTerminator() bool {
	switch i.Op {
	case OpBr, OpCondBr, OpRet, OpAggRet:
		return true
	}
	return false
}

// AddIncoming appends (value, predecessor) pairs to a phi.
func (i *Instr) AddIncoming(vals []Value, blocks []*BasicBlock) {
	if i.Op != OpPhi {
		panic(fmt.Sprintf("codegen: AddIncoming on %v", i.Op))
	}
	for k := range vals {
		i.Incoming = append(i.Incoming, PhiIncoming{Val: vals[k], Block: blocks[k]})
	}
}

// BasicBlock is a straight-line run of instructions ending in a
// terminator.
type BasicBlock struct {
	Name   string
	fn     *FnValue
	Instrs []*Instr
}

// Parent returns the owning function.
func (b *BasicBlock) Parent() *FnValue { return b.fn }

// First returns the block's first instruction, or nil when empty.
func (b *BasicBlock) First() *Instr {
	if len(b.Instrs) == 0 {
		return nil
	}
	return b.Instrs[0]
}

// Terminator returns the block's final instruction when it terminates
// the block.
func (b *BasicBlock) Terminator() *Instr {
	if n := len(b.Instrs); n > 0 && b.Instrs[n-1].IsTerminator() {
		return b.Instrs[n-1]
	}
	return nil
}

// FnValue is a declared or defined function in a module.
type FnValue struct {
	Name   string
	typ    *Type // FnKind
	module *Module
	params []*Param
	Blocks []*BasicBlock
}

func (f *FnValue) Type() *Type { return f.typ }

// IsDeclaration reports whether the function has no body, i.e. it is an
// external prototype resolved through the symbol table.
func (f *FnValue) IsDeclaration() bool { return len(f.Blocks) == 0 }

// Params returns the function's formal parameters.
func (f *FnValue) Params() []*Param { return f.params }

// EntryBlock returns the function's first basic block, or nil.
func (f *FnValue) EntryBlock() *BasicBlock {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// Delete removes the function from its module, discarding any partially
// emitted body.
func (f *FnValue) Delete() {
	if f.module == nil {
		return
	}
	f.module.removeFunction(f)
	f.module = nil
	f.Blocks = nil
}
