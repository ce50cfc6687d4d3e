// Package repl implements the interactive read-eval-print loop.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/flare-lang/flare/internal/diag"
	"github.com/flare-lang/flare/internal/lexer"
	"github.com/flare-lang/flare/internal/runtime"
)

// Color functions for pretty output
var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
)

// REPL drives one runtime over an interactive session.
type REPL struct {
	cfg     *Config
	rt      *runtime.Runtime
	history []string
	version string
}

// New creates a REPL with a fresh runtime.
func New(version string) (*REPL, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(version, cfg)
}

// NewWithConfig creates a REPL over an explicit configuration.
func NewWithConfig(version string, cfg *Config) (*REPL, error) {
	rt, err := runtime.New()
	if err != nil {
		return nil, err
	}
	if !cfg.Color {
		color.NoColor = true
	}
	if version == "" {
		version = "dev"
	}
	return &REPL{cfg: cfg, rt: rt, version: version}, nil
}

var commands = []string{":help", ":quit", ":history", ":reset", ":dump"}

// Start begins the interactive session.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	if f, err := os.Open(r.cfg.HistoryFile); err == nil {
		_, _ = line.ReadHistory(f) // history is optional
		f.Close()
	}
	line.SetMultiLineMode(true)
	line.SetCompleter(func(input string) (c []string) {
		if strings.HasPrefix(input, ":") {
			for _, cmd := range commands {
				if strings.HasPrefix(cmd, input) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	fmt.Fprintf(out, "%s %s\n", bold("Flare"), bold(r.version))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	for {
		input, err := line.Prompt(r.cfg.Prompt)
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if input == ":quit" || input == ":q" || input == ":exit" {
				fmt.Fprintln(out, green("Goodbye!"))
				break
			}
			r.handleCommand(input, out)
			continue
		}

		r.Eval(input, out)
	}

	if f, err := os.Create(r.cfg.HistoryFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// Eval runs one input through the pipeline and prints the result or a
// rendered diagnostic.
func (r *REPL) Eval(input string, out io.Writer) {
	src := string(lexer.Normalize([]byte(input)))
	res, err := r.rt.ParseEval(src)
	if err != nil {
		fmt.Fprintln(out, diag.New("repl", src, err).String())
		return
	}
	fmt.Fprintf(out, "%s %s\n", green("=>"), res)
}

func (r *REPL) handleCommand(input string, out io.Writer) {
	switch {
	case input == ":help":
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "  :help      show this help")
		fmt.Fprintln(out, "  :history   show input history")
		fmt.Fprintln(out, "  :reset     drop all definitions and globals")
		fmt.Fprintln(out, "  :dump      print the current module IR")
		fmt.Fprintln(out, "  :quit      exit")

	case input == ":history":
		for i, h := range r.history {
			fmt.Fprintf(out, "%3d  %s\n", i+1, h)
		}

	case input == ":reset":
		r.rt.Close()
		rt, err := runtime.New()
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			return
		}
		r.rt = rt
		fmt.Fprintln(out, dim("runtime reset"))

	case input == ":dump":
		if ir, ok := r.rt.DumpModule(runtime.ReplModule); ok {
			fmt.Fprint(out, ir)
		} else {
			fmt.Fprintln(out, dim("no module yet"))
		}

	default:
		fmt.Fprintf(out, "%s: unknown command %q\n", red("Error"), input)
	}
}
