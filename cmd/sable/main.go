package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/parser"
	"github.com/sable-lang/sable/internal/sema"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sable <command> [options]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  check <file>    Parse and type-check a Sable source file\n")
		fmt.Fprintf(os.Stderr, "  repl            Start an interactive session\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "check":
		runCheck(args)
	case "repl":
		runRepl()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runCheck(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: sable check <file>\n")
		os.Exit(1)
	}
	filename := args[0]

	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sable: %v\n", err)
		os.Exit(1)
	}

	reporter := diag.NewReporter()
	unit := parser.New(filename, string(src), reporter).ParseUnit()
	if err := sema.Check(unit, reporter); err != nil {
		fmt.Fprintf(os.Stderr, "sable: internal error: %v\n", err)
		os.Exit(1)
	}

	formatter := diag.NewFormatter(os.Stderr)
	formatter.AddSource(filename, string(src))
	formatter.FormatAll(reporter)

	if reporter.HasErrors() {
		os.Exit(1)
	}
}
