package codegen

import "strings"

// TypeKind discriminates the IR type nodes.
type TypeKind int

const (
	I1 TypeKind = iota
	I64
	F64
	PtrKind
	StructKind
	FnKind
)

// Type is an IR type handle. Scalar types are interned on the Context;
// pointer, struct and function types are built on demand.
type Type struct {
	Kind   TypeKind
	Elem   *Type   // PtrKind
	Fields []*Type // StructKind
	Ret    *Type   // FnKind
	Params []*Type // FnKind
}

func (t *Type) String() string {
	switch t.Kind {
	case I1:
		return "i1"
	case I64:
		return "i64"
	case F64:
		return "double"
	case PtrKind:
		return t.Elem.String() + "*"
	case StructKind:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.String()
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case FnKind:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return t.Ret.String() + " (" + strings.Join(parts, ", ") + ")"
	}
	return "?"
}

// IsFloat reports whether values of the type are interpreted as float
// bit patterns.
func (t *Type) IsFloat() bool { return t.Kind == F64 }
