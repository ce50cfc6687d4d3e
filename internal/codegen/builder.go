package codegen

// Builder emits instructions at an insertion point. PositionBefore lets
// a subsidiary builder hoist allocas into a function's entry block.
type Builder struct {
	ctx    *Context
	block  *BasicBlock
	before *Instr // insert before this instruction; nil appends at end
}

// PositionAtEnd moves the insertion point to the end of a block.
func (b *Builder) PositionAtEnd(bb *BasicBlock) {
	b.block = bb
	b.before = nil
}

// PositionBefore moves the insertion point to just before an
// instruction.
func (b *Builder) PositionBefore(instr *Instr) {
	b.block = instr.block
	b.before = instr
}

// InsertBlock returns the block the builder is positioned in.
func (b *Builder) InsertBlock() *BasicBlock { return b.block }

func (b *Builder) insert(instr *Instr) *Instr {
	if b.block == nil {
		panic("codegen: builder has no insertion point")
	}
	instr.block = b.block
	if b.before == nil {
		b.block.Instrs = append(b.block.Instrs, instr)
		return instr
	}
	for i, in := range b.block.Instrs {
		if in == b.before {
			b.block.Instrs = append(b.block.Instrs[:i], append([]*Instr{instr}, b.block.Instrs[i:]...)...)
			return instr
		}
	}
	b.block.Instrs = append(b.block.Instrs, instr)
	return instr
}

func (b *Builder) binary(op Opcode, typ *Type, lhs, rhs Value, name string) *Instr {
	return b.insert(&Instr{Op: op, typ: typ, Name: name, Args: []Value{lhs, rhs}})
}

// BuildIntAdd emits an i64 addition.
func (b *Builder) BuildIntAdd(lhs, rhs Value, name string) *Instr {
	return b.binary(OpAdd, b.ctx.i64, lhs, rhs, name)
}

// BuildIntSub emits an i64 subtraction.
func (b *Builder) BuildIntSub(lhs, rhs Value, name string) *Instr {
	return b.binary(OpSub, b.ctx.i64, lhs, rhs, name)
}

// BuildIntMul emits an i64 multiplication.
func (b *Builder) BuildIntMul(lhs, rhs Value, name string) *Instr {
	return b.binary(OpMul, b.ctx.i64, lhs, rhs, name)
}

// BuildIntDiv emits a signed i64 division.
func (b *Builder) BuildIntDiv(lhs, rhs Value, name string) *Instr {
	return b.binary(OpSDiv, b.ctx.i64, lhs, rhs, name)
}

// BuildFloatAdd emits a double addition.
func (b *Builder) BuildFloatAdd(lhs, rhs Value, name string) *Instr {
	return b.binary(OpFAdd, b.ctx.f64, lhs, rhs, name)
}

// BuildFloatSub emits a double subtraction.
func (b *Builder) BuildFloatSub(lhs, rhs Value, name string) *Instr {
	return b.binary(OpFSub, b.ctx.f64, lhs, rhs, name)
}

// BuildFloatMul emits a double multiplication.
func (b *Builder) BuildFloatMul(lhs, rhs Value, name string) *Instr {
	return b.binary(OpFMul, b.ctx.f64, lhs, rhs, name)
}

// BuildFloatDiv emits a double division.
func (b *Builder) BuildFloatDiv(lhs, rhs Value, name string) *Instr {
	return b.binary(OpFDiv, b.ctx.f64, lhs, rhs, name)
}

// BuildRem emits a remainder; the opcode follows the operand type.
func (b *Builder) BuildRem(lhs, rhs Value, name string) *Instr {
	if lhs.Type().IsFloat() {
		return b.binary(OpFRem, b.ctx.f64, lhs, rhs, name)
	}
	return b.binary(OpSRem, b.ctx.i64, lhs, rhs, name)
}

// BuildOr emits a bitwise or over the operands' raw words.
func (b *Builder) BuildOr(lhs, rhs Value, name string) *Instr {
	return b.binary(OpOr, lhs.Type(), lhs, rhs, name)
}

// BuildAnd emits a bitwise and over the operands' raw words.
func (b *Builder) BuildAnd(lhs, rhs Value, name string) *Instr {
	return b.binary(OpAnd, lhs.Type(), lhs, rhs, name)
}

// BuildXor emits a bitwise xor over the operands' raw words.
func (b *Builder) BuildXor(lhs, rhs Value, name string) *Instr {
	return b.binary(OpXor, lhs.Type(), lhs, rhs, name)
}

// BuildIntCompare emits a signed integer comparison yielding i1.
func (b *Builder) BuildIntCompare(pred IntPredicate, lhs, rhs Value, name string) *Instr {
	in := b.binary(OpICmp, b.ctx.i1, lhs, rhs, name)
	in.IPred = pred
	return in
}

// BuildFloatCompare emits an unordered float comparison yielding i1.
func (b *Builder) BuildFloatCompare(pred FloatPredicate, lhs, rhs Value, name string) *Instr {
	in := b.binary(OpFCmp, b.ctx.i1, lhs, rhs, name)
	in.FPred = pred
	return in
}

// BuildAlloca emits a stack slot for one value of the given type.
func (b *Builder) BuildAlloca(typ *Type, name string) *Instr {
	return b.insert(&Instr{Op: OpAlloca, typ: b.ctx.PtrType(typ), Name: name})
}

// BuildLoad reads a value of the given type through a pointer.
func (b *Builder) BuildLoad(typ *Type, ptr Value, name string) *Instr {
	return b.insert(&Instr{Op: OpLoad, typ: typ, Name: name, Args: []Value{ptr}})
}

// BuildStore writes a value through a pointer.
func (b *Builder) BuildStore(ptr Value, val Value) *Instr {
	return b.insert(&Instr{Op: OpStore, Args: []Value{ptr, val}})
}

// BuildCall emits a direct call.
func (b *Builder) BuildCall(callee *FnValue, args []Value, name string) *Instr {
	return b.insert(&Instr{
		Op:     OpCall,
		typ:    callee.typ.Ret,
		Name:   name,
		Args:   args,
		Callee: callee,
	})
}

// BuildCondBr branches on an i1 condition.
func (b *Builder) BuildCondBr(cond Value, then, els *BasicBlock) *Instr {
	return b.insert(&Instr{Op: OpCondBr, Args: []Value{cond}, Targets: []*BasicBlock{then, els}})
}

// BuildBr branches unconditionally.
func (b *Builder) BuildBr(target *BasicBlock) *Instr {
	return b.insert(&Instr{Op: OpBr, Targets: []*BasicBlock{target}})
}

// BuildPhi emits a phi of the given type; incoming edges are attached
// with AddIncoming.
func (b *Builder) BuildPhi(typ *Type, name string) *Instr {
	return b.insert(&Instr{Op: OpPhi, typ: typ, Name: name})
}

// BuildRet emits a scalar return.
func (b *Builder) BuildRet(val Value) *Instr {
	return b.insert(&Instr{Op: OpRet, Args: []Value{val}})
}

// BuildAggregateRet wraps the values into a one-shot aggregate return so
// reference payloads cross the call boundary as a single word.
func (b *Builder) BuildAggregateRet(vals []Value) *Instr {
	return b.insert(&Instr{Op: OpAggRet, Args: vals})
}
