package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterh/liner"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/parser"
	"github.com/sable-lang/sable/internal/sema"
	"github.com/sable-lang/sable/internal/types"
)

const replFilename = "<repl>"

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sable_history")
}

func runRepl() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	history := historyPath()
	if history != "" {
		if f, err := os.Open(history); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Println("Sable REPL. Ctrl+D to exit.")

	for {
		input, err := line.Prompt("sable> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Println()
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "sable: %v\n", err)
			break
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		evalLine(input)
	}

	if history != "" {
		if f, err := os.Create(history); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
}

// evalLine parses and type-checks one line of input as a small compilation
// unit and prints either the diagnostics or the type of the trailing
// expression.
func evalLine(input string) {
	reporter := diag.NewReporter()
	unit := parser.New(replFilename, input, reporter).ParseUnit()
	if err := sema.Check(unit, reporter); err != nil {
		fmt.Fprintf(os.Stderr, "sable: internal error: %v\n", err)
		return
	}

	if reporter.Len() > 0 {
		formatter := diag.NewFormatter(os.Stderr)
		formatter.AddSource(replFilename, input)
		for _, d := range reporter.Diagnostics() {
			formatter.Format(d)
		}
	}
	if reporter.HasErrors() {
		return
	}

	if t := trailingExprType(unit); t != nil {
		fmt.Printf(": %s\n", types.Deref(t))
	}
}

func trailingExprType(unit *ast.Unit) types.Type {
	elems := unit.Body.Elements
	if len(elems) == 0 {
		return nil
	}
	last := elems[len(elems)-1]
	if last.Expr == nil || last.Expr.Type() == nil {
		return nil
	}
	return last.Expr.Type()
}
