package codegen

// Context owns every IR handle: types, modules, functions, blocks and
// values all borrow their lifetime from it. One context lives per
// runtime.
type Context struct {
	i1  *Type
	i64 *Type
	f64 *Type
}

// NewContext creates a fresh code-generation context.
func NewContext() (*Context, error) {
	return &Context{
		i1:  &Type{Kind: I1},
		i64: &Type{Kind: I64},
		f64: &Type{Kind: F64},
	}, nil
}

// I1Type returns the 1-bit integer type.
func (c *Context) I1Type() *Type { return c.i1 }

// I64Type returns the 64-bit integer type.
func (c *Context) I64Type() *Type { return c.i64 }

// F64Type returns the 64-bit float type.
func (c *Context) F64Type() *Type { return c.f64 }

// PtrType returns a pointer type over elem.
func (c *Context) PtrType(elem *Type) *Type {
	return &Type{Kind: PtrKind, Elem: elem}
}

// StructType returns an aggregate over the given field types.
func (c *Context) StructType(fields []*Type) *Type {
	return &Type{Kind: StructKind, Fields: fields}
}

// FnType returns a function type.
func (c *Context) FnType(ret *Type, params []*Type) *Type {
	return &Type{Kind: FnKind, Ret: ret, Params: params}
}

// ConstInt builds an integer constant of the given type.
func (c *Context) ConstInt(typ *Type, v uint64) *ConstValue {
	return &ConstValue{typ: typ, Bits: v}
}

// ConstBool builds an i1 constant.
func (c *Context) ConstBool(v bool) *ConstValue {
	var bits uint64
	if v {
		bits = 1
	}
	return &ConstValue{typ: c.i1, Bits: bits}
}

// ConstFloat builds a double constant from its bit pattern.
func (c *Context) ConstFloat(bits uint64) *ConstValue {
	return &ConstValue{typ: c.f64, Bits: bits}
}

// ConstHostPtr embeds a host memory cell as a typed pointer constant.
func (c *Context) ConstHostPtr(typ *Type, cell *uint64) *ConstPtr {
	return &ConstPtr{typ: typ, Cell: cell}
}

// CreateModule creates an empty module bound to this context.
func (c *Context) CreateModule(name string) (*Module, error) {
	return &Module{Name: name, ctx: c, fnIndex: make(map[string]*FnValue)}, nil
}

// CreateBuilder creates an instruction builder with no position.
func (c *Context) CreateBuilder() (*Builder, error) {
	return &Builder{ctx: c}, nil
}

// AppendBasicBlock appends a new block to the function.
func (c *Context) AppendBasicBlock(fn *FnValue, name string) *BasicBlock {
	bb := &BasicBlock{Name: name, fn: fn}
	fn.Blocks = append(fn.Blocks, bb)
	return bb
}
