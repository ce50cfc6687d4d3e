package codegen

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Dump renders the module's IR as text, for the dump_module intrinsic
// and for debugging lowering output.
func (m *Module) Dump(w io.Writer) {
	fmt.Fprintf(w, "; module %q\n", m.Name)
	for _, fn := range m.fns {
		fn.dump(w)
	}
}

// DumpString renders the module IR into a string.
func (m *Module) DumpString() string {
	var b strings.Builder
	m.Dump(&b)
	return b.String()
}

func (f *FnValue) dump(w io.Writer) {
	p := &printer{names: make(map[Value]string)}
	params := make([]string, len(f.params))
	for i, prm := range f.params {
		name := prm.name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		p.names[prm] = "%" + name
		params[i] = fmt.Sprintf("%s %%%s", prm.typ, name)
	}

	if f.IsDeclaration() {
		fmt.Fprintf(w, "\ndeclare %s @\"%s\"(%s)\n", f.typ.Ret, f.Name, strings.Join(params, ", "))
		return
	}

	fmt.Fprintf(w, "\ndefine %s @\"%s\"(%s) {\n", f.typ.Ret, f.Name, strings.Join(params, ", "))
	for _, bb := range f.Blocks {
		fmt.Fprintf(w, "%s:\n", bb.Name)
		for _, in := range bb.Instrs {
			fmt.Fprintf(w, "  %s\n", p.instr(in))
		}
	}
	fmt.Fprintln(w, "}")
}

type printer struct {
	names map[Value]string
	next  int
}

func (p *printer) ref(v Value) string {
	switch v := v.(type) {
	case *ConstValue:
		if v.Type().Kind == F64 {
			return fmt.Sprintf("%s %g", v.Type(), math.Float64frombits(v.Bits))
		}
		return fmt.Sprintf("%s %d", v.Type(), int64(v.Bits))
	case *ConstPtr:
		return fmt.Sprintf("%s @host", v.Type())
	case *FnValue:
		return "@\"" + v.Name + "\""
	}
	if name, ok := p.names[v]; ok {
		return fmt.Sprintf("%s %s", v.Type(), name)
	}
	return "<?>"
}

func (p *printer) def(in *Instr) string {
	base := in.Name
	if base == "" {
		base = "tmp"
	}
	p.next++
	name := fmt.Sprintf("%%%s.%d", base, p.next)
	p.names[in] = name
	return name
}

var opNames = map[Opcode]string{
	OpAdd:  "add",
	OpSub:  "sub",
	OpMul:  "mul",
	OpSDiv: "sdiv",
	OpSRem: "srem",
	OpFAdd: "fadd",
	OpFSub: "fsub",
	OpFMul: "fmul",
	OpFDiv: "fdiv",
	OpFRem: "frem",
	OpOr:   "or",
	OpAnd:  "and",
	OpXor:  "xor",
}

var ipredNames = map[IntPredicate]string{
	IntEQ: "eq", IntNE: "ne", IntSLT: "slt", IntSLE: "sle", IntSGT: "sgt", IntSGE: "sge",
}

var fpredNames = map[FloatPredicate]string{
	FloatUEQ: "ueq", FloatUNE: "une", FloatULT: "ult", FloatULE: "ule", FloatUGT: "ugt", FloatUGE: "uge",
}

func (p *printer) instr(in *Instr) string {
	switch in.Op {
	case OpAdd, OpSub, OpMul, OpSDiv, OpSRem, OpFAdd, OpFSub, OpFMul, OpFDiv, OpFRem, OpOr, OpAnd, OpXor:
		lhs, rhs := p.ref(in.Args[0]), p.ref(in.Args[1])
		return fmt.Sprintf("%s = %s %s, %s", p.def(in), opNames[in.Op], lhs, rhs)
	case OpICmp:
		lhs, rhs := p.ref(in.Args[0]), p.ref(in.Args[1])
		return fmt.Sprintf("%s = icmp %s %s, %s", p.def(in), ipredNames[in.IPred], lhs, rhs)
	case OpFCmp:
		lhs, rhs := p.ref(in.Args[0]), p.ref(in.Args[1])
		return fmt.Sprintf("%s = fcmp %s %s, %s", p.def(in), fpredNames[in.FPred], lhs, rhs)
	case OpAlloca:
		return fmt.Sprintf("%s = alloca %s", p.def(in), in.typ.Elem)
	case OpLoad:
		ptr := p.ref(in.Args[0])
		return fmt.Sprintf("%s = load %s, %s", p.def(in), in.typ, ptr)
	case OpStore:
		return fmt.Sprintf("store %s, %s", p.ref(in.Args[1]), p.ref(in.Args[0]))
	case OpCall:
		args := make([]string, len(in.Args))
		for i, a := range in.Args {
			args[i] = p.ref(a)
		}
		callee := "@\"" + in.Callee.Name + "\""
		return fmt.Sprintf("%s = call %s %s(%s)", p.def(in), in.typ, callee, strings.Join(args, ", "))
	case OpBr:
		return fmt.Sprintf("br label %%%s", in.Targets[0].Name)
	case OpCondBr:
		return fmt.Sprintf("br %s, label %%%s, label %%%s", p.ref(in.Args[0]), in.Targets[0].Name, in.Targets[1].Name)
	case OpPhi:
		parts := make([]string, len(in.Incoming))
		for i, inc := range in.Incoming {
			parts[i] = fmt.Sprintf("[ %s, %%%s ]", p.ref(inc.Val), inc.Block.Name)
		}
		return fmt.Sprintf("%s = phi %s %s", p.def(in), in.typ, strings.Join(parts, ", "))
	case OpRet:
		return fmt.Sprintf("ret %s", p.ref(in.Args[0]))
	case OpAggRet:
		parts := make([]string, len(in.Args))
		for i, a := range in.Args {
			parts[i] = p.ref(a)
		}
		return fmt.Sprintf("ret aggregate { %s }", strings.Join(parts, ", "))
	}
	return "<?>"
}
