package types

import (
	"fmt"
	"strings"
)

// Kind enumerates the closed set of value types.
type Kind int

const (
	Null Kind = iota
	Bool
	Int64
	Float64
	VecInt64
	VecFloat64
	List
	Fn
)

// Type is either one of the scalar/reference kinds or a function type
// carrying its signature. The zero value is Null.
type Type struct {
	Kind Kind
	Sig  *FnType // non-nil iff Kind == Fn
}

// FnType is the signature of a declared or user-defined function.
type FnType struct {
	Args []Type
	Ret  Type
}

var (
	TNull       = Type{Kind: Null}
	TBool       = Type{Kind: Bool}
	TInt64      = Type{Kind: Int64}
	TFloat64    = Type{Kind: Float64}
	TVecInt64   = Type{Kind: VecInt64}
	TVecFloat64 = Type{Kind: VecFloat64}
	TList       = Type{Kind: List}
)

// NewFn builds a function type from its argument and return types.
func NewFn(args []Type, ret Type) Type {
	return Type{Kind: Fn, Sig: &FnType{Args: args, Ret: ret}}
}

// IsScalar reports whether values of this type are stored inline in the
// payload word rather than behind a heap reference.
func (t Type) IsScalar() bool {
	switch t.Kind {
	case Null, Bool, Int64, Float64:
		return true
	}
	return false
}

// Equal compares two types structurally.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind != Fn {
		return true
	}
	if len(t.Sig.Args) != len(o.Sig.Args) {
		return false
	}
	for i := range t.Sig.Args {
		if !t.Sig.Args[i].Equal(o.Sig.Args[i]) {
			return false
		}
	}
	return t.Sig.Ret.Equal(o.Sig.Ret)
}

func (t Type) String() string {
	switch t.Kind {
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case Int64:
		return "Int64"
	case Float64:
		return "Float64"
	case VecInt64:
		return "Int64[]"
	case VecFloat64:
		return "Float64[]"
	case List:
		return "[]"
	case Fn:
		var b strings.Builder
		b.WriteString("Fn(")
		for i, a := range t.Sig.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteString(") -> ")
		b.WriteString(t.Sig.Ret.String())
		return b.String()
	}
	return fmt.Sprintf("Kind(%d)", int(t.Kind))
}

// Parse converts a human type name, as written in function parameter
// declarations, into a Type.
func Parse(s string) (Type, error) {
	switch s {
	case "Null":
		return TNull, nil
	case "Bool":
		return TBool, nil
	case "Int64":
		return TInt64, nil
	case "Float64":
		return TFloat64, nil
	case "Int64[]":
		return TVecInt64, nil
	case "Float64[]":
		return TVecFloat64, nil
	case "[]":
		return TList, nil
	}
	return TNull, fmt.Errorf("unknown type name: %q", s)
}
