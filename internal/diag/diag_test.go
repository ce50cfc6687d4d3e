package diag

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestDiagnosticRendersSpan(t *testing.T) {
	input := "1 + true"
	span := NewSpan(1, 0, len(input), 4, 8)
	err := Compile("Type inference error", "No such op: '+' for types: Int64 Bool", &span)

	out := New("repl", input, err).String()
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("line count: got=%d want=4\n%s", len(lines), out)
	}
	if lines[0] != "** CompileError: Type inference error" {
		t.Fatalf("header: got=%q", lines[0])
	}
	if lines[1] != "- <repl>:1:4" {
		t.Fatalf("reference: got=%q", lines[1])
	}
	if lines[2] != "1 + true" {
		t.Fatalf("source line: got=%q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "    ^^^^") {
		t.Fatalf("caret alignment: got=%q", lines[3])
	}
	if !strings.Contains(lines[3], "No such op") {
		t.Fatalf("description missing: got=%q", lines[3])
	}
}

func TestDiagnosticSecondLine(t *testing.T) {
	input := "1\n2 @\n3"
	// span covers the '@' on line 2
	span := NewSpan(2, 2, 5, 4, 5)
	err := Parse("Unexpected character", "character is not part of the language", &span)

	out := New("repl", input, err).String()
	if !strings.Contains(out, "- <repl>:2:2") {
		t.Fatalf("reference wrong:\n%s", out)
	}
	if !strings.Contains(out, "2 @") {
		t.Fatalf("source line wrong:\n%s", out)
	}
}

func TestSpanlessErrorsPrintBareMessage(t *testing.T) {
	err := Runtime("unable to resolve top-level: %s", "nope")
	out := New("repl", "", err).String()
	if out != "RuntimeError: unable to resolve top-level: nope" {
		t.Fatalf("got=%q", out)
	}

	perr := Parse("Unexpected EOF", "", nil)
	out = New("repl", "", perr).String()
	if out != "ParseError: Unexpected EOF" {
		t.Fatalf("got=%q", out)
	}
}
