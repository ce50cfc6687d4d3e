package diag

import "fmt"

// ParseError reports a failure in the lexer or parser.
type ParseError struct {
	Msg  string
	Desc string
	Span *Span
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ParseError: %s", e.Msg)
}

// CompileError reports a failure in type inference or lowering.
type CompileError struct {
	Msg  string
	Desc string
	Span *Span
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("CompileError: %s", e.Msg)
}

// RuntimeError reports a back-end failure: context or engine creation,
// function address resolution. It carries no span.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RuntimeError: %s", e.Msg)
}

// Parse builds a *ParseError.
func Parse(msg, desc string, span *Span) error {
	return &ParseError{Msg: msg, Desc: desc, Span: span}
}

// Compile builds a *CompileError.
func Compile(msg, desc string, span *Span) error {
	return &CompileError{Msg: msg, Desc: desc, Span: span}
}

// Runtime builds a *RuntimeError.
func Runtime(format string, args ...interface{}) error {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...)}
}
