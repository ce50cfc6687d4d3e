package ast

import (
	"github.com/flare-lang/flare/internal/diag"
	"github.com/flare-lang/flare/internal/types"
)

// Expr is one expression node: a body, the type the inference pass
// memoised onto it, and an optional source span for diagnostics.
type Expr struct {
	Body  Body
	Typ   types.Type
	Typed bool
	Span  *diag.Span
}

// New wraps a body and span into an untyped expression.
func New(body Body, span *diag.Span) *Expr {
	return &Expr{Body: body, Span: span}
}

// SetType memoises the inferred type.
func (e *Expr) SetType(t types.Type) {
	e.Typ = t
	e.Typed = true
}

// Type returns the memoised type. The inference pass must have visited
// the node first.
func (e *Expr) Type() (types.Type, error) {
	if !e.Typed {
		return types.TNull, diag.Compile("Unknown expression type", "expression was not visited by type inference", e.Span)
	}
	return e.Typ, nil
}

// Body is the closed sum of expression forms.
type Body interface {
	exprBody()
}

// NullLit is the written or synthesised null literal.
type NullLit struct{}

// BoolLit is a true/false literal.
type BoolLit struct {
	Val bool
}

// IntLit is a 64-bit integer literal.
type IntLit struct {
	Val int64
}

// FloatLit is a 64-bit float literal.
type FloatLit struct {
	Val float64
}

// VecIntLit is an integer vector literal.
type VecIntLit struct {
	Elems []int64
}

// VecFloatLit is a float vector literal; mixed int/float literals are
// promoted into this form by the parser.
type VecFloatLit struct {
	Elems []float64
}

// Var references a local or global by name.
type Var struct {
	Name string
}

// Assign binds the initializer's value to a name. Global is set for
// assignments written at the top level of an input.
type Assign struct {
	Name   string
	Init   *Expr
	Global bool
}

// Binary applies a binary operator to two operands.
type Binary struct {
	Op  BinaryOp
	LHS *Expr
	RHS *Expr
}

// Dot is the combinator placeholder; it parses but does not type-check.
type Dot struct {
	LHS *Expr
	RHS *Expr
}

// Call invokes a named function with arguments.
type Call struct {
	Name string
	Args []*Expr
}

// Cond is an if/else with expression-sequence arms.
type Cond struct {
	Pred *Expr
	Then []*Expr
	Else []*Expr
}

func (*NullLit) exprBody()     {}
func (*BoolLit) exprBody()     {}
func (*IntLit) exprBody()      {}
func (*FloatLit) exprBody()    {}
func (*VecIntLit) exprBody()   {}
func (*VecFloatLit) exprBody() {}
func (*Var) exprBody()         {}
func (*Assign) exprBody()      {}
func (*Binary) exprBody()      {}
func (*Dot) exprBody()         {}
func (*Call) exprBody()        {}
func (*Cond) exprBody()        {}

// Param is one declared function parameter.
type Param struct {
	Name string
	Type types.Type
}

// Function bundles a parsed definition: its name, typed parameter list,
// body expression sequence, and whether it is the synthesised top-level
// wrapper rather than a user `def`.
type Function struct {
	Name     string
	Args     []Param
	Body     []*Expr
	TopLevel bool
}

// TopLevelName is the name given to the synthesised wrapper around a
// line's bare expressions.
const TopLevelName = "top-level"
