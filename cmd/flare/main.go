package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/flare-lang/flare/internal/diag"
	"github.com/flare-lang/flare/internal/lexer"
	"github.com/flare-lang/flare/internal/repl"
	"github.com/flare-lang/flare/internal/runtime"
)

var (
	// Version info - set by ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	red  = color.New(color.FgRed).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}
	if *helpFlag {
		printHelp()
		return
	}

	command := "repl"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	switch command {
	case "repl":
		runREPL()

	case "run":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: flare run <file.fl>")
			os.Exit(1)
		}
		runFile(flag.Arg(1))

	case "version":
		printVersion()

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func runREPL() {
	r, err := repl.New(Version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	r.Start(os.Stdout)
}

func runFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	rt, err := runtime.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	defer rt.Close()

	src := string(lexer.Normalize(data))
	res, err := rt.ParseEval(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, diag.New(path, src, err).String())
		os.Exit(1)
	}
	fmt.Printf("=> %s\n", res)
}

func printVersion() {
	fmt.Printf("%s %s\n", bold("Flare"), Version)
	fmt.Printf("  commit: %s\n", Commit)
	fmt.Printf("  built:  %s\n", BuildTime)
}

func printHelp() {
	fmt.Println(bold("Flare") + " - a JIT-compiled expression language")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  flare [repl]         start the interactive REPL")
	fmt.Println("  flare run <file.fl>  evaluate a source file")
	fmt.Println("  flare version        print version information")
}
