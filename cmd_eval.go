package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Jaycadox/MathJIT/internal/diagnostics"
	"github.com/google/subcommands"
)

// evalCmd implements the "eval" subcommand: evaluate a single
// expression (or chained statement) from the command line and exit
// (§6 "Positional: optional math expression").
type evalCmd struct {
	mode    string
	verbose bool
	timings bool
}

func (*evalCmd) Name() string     { return "eval" }
func (*evalCmd) Synopsis() string { return "Evaluate a math expression and exit" }
func (*evalCmd) Usage() string {
	return `eval <expression>:
  Evaluate a single MathJIT expression (or "&"-chained statement list) and exit.
`
}

func (c *evalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "m", "interpret", "evaluation backend: interpret|i|interpreter|jit|j|JIT")
	f.StringVar(&c.mode, "mode", "interpret", "evaluation backend: interpret|i|interpreter|jit|j|JIT")
	f.BoolVar(&c.verbose, "v", false, "print the parsed AST as JSON (tokens, LLVM IR and assembly are not dumped)")
	f.BoolVar(&c.verbose, "verbose", false, "print the parsed AST as JSON (tokens, LLVM IR and assembly are not dumped)")
	f.BoolVar(&c.timings, "t", false, "print a timings table after evaluation")
	f.BoolVar(&c.timings, "timings", false, "print a timings table after evaluation")
}

func (c *evalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	source := strings.Join(f.Args(), " ")
	if source == "" {
		fmt.Fprintln(os.Stderr, "💥 no expression provided")
		return subcommands.ExitUsageError
	}

	b, err := selectBackend(c.mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	defer b.close()

	responses, t, err := evaluateSource(source, b, c.verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, diagnostics.Render(source, err))
		return subcommands.ExitFailure
	}
	for _, resp := range responses {
		fmt.Println(resp.String())
	}
	if c.timings {
		fmt.Print(t.Report())
	}
	return subcommands.ExitSuccess
}
