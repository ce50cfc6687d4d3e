package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Diagnostic pairs an error with the input it came from so the error's
// span can be rendered against the offending line.
type Diagnostic struct {
	Name  string // input name, e.g. "repl" or a file path
	Input string
	Err   error
}

// New creates a Diagnostic for the given input.
func New(name, input string, err error) *Diagnostic {
	return &Diagnostic{Name: name, Input: input, Err: err}
}

// String renders the diagnostic. Parse and compile errors with a span get
// the full header / line-reference / source-line / caret treatment;
// everything else prints as a bare message.
func (d *Diagnostic) String() string {
	var pe *ParseError
	if errors.As(d.Err, &pe) {
		return d.format("ParseError", pe.Msg, pe.Desc, pe.Span)
	}
	var ce *CompileError
	if errors.As(d.Err, &ce) {
		return d.format("CompileError", ce.Msg, ce.Desc, ce.Span)
	}
	var re *RuntimeError
	if errors.As(d.Err, &re) {
		return fmt.Sprintf("%s: %s", red("RuntimeError"), re.Msg)
	}
	return d.Err.Error()
}

func (d *Diagnostic) format(tag, msg, desc string, span *Span) string {
	if span == nil {
		return fmt.Sprintf("%s: %s", red(tag), msg)
	}

	line := sliceLine(d.Input, span.LineStart, span.LineEnd)
	col := span.Col()
	width := span.LabelEnd - span.LabelStart
	if width < 1 {
		width = 1
	}
	if col > len(line) {
		col = len(line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "** %s: %s\n", red(tag), msg)
	fmt.Fprintf(&b, "%s\n", dim(fmt.Sprintf("- <%s>:%d:%d", d.Name, span.LineNumber, col)))
	fmt.Fprintf(&b, "%s\n", line)
	fmt.Fprintf(&b, "%s%s %s", strings.Repeat(" ", col), yellow(strings.Repeat("^", width)), desc)
	return b.String()
}

// sliceLine extracts [start, end) from input, clamping out-of-range
// offsets instead of panicking on malformed spans.
func sliceLine(input string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(input) {
		end = len(input)
	}
	if start >= end {
		return ""
	}
	return strings.TrimRight(input[start:end], "\n")
}
