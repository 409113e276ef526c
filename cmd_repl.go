package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Jaycadox/MathJIT/internal/diagnostics"
	"github.com/chzyer/readline"
	"github.com/google/subcommands"
)

// replCmd implements the "repl" subcommand: an interactive read-eval-
// print loop over stdin, backed by chzyer/readline for line editing and
// history (§6 "REPL protocol").
type replCmd struct {
	mode    string
	verbose bool
	timings bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive MathJIT session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive read-eval-print loop.
`
}

func (c *replCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "m", "interpret", "evaluation backend: interpret|i|interpreter|jit|j|JIT")
	f.StringVar(&c.mode, "mode", "interpret", "evaluation backend: interpret|i|interpreter|jit|j|JIT")
	f.BoolVar(&c.verbose, "v", false, "print the parsed AST as JSON (tokens, LLVM IR and assembly are not dumped)")
	f.BoolVar(&c.verbose, "verbose", false, "print the parsed AST as JSON (tokens, LLVM IR and assembly are not dumped)")
	f.BoolVar(&c.timings, "t", false, "print a timings table after each evaluation")
	f.BoolVar(&c.timings, "timings", false, "print a timings table after each evaluation")
}

func (c *replCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := selectBackend(c.mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	defer b.close()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       ".mathjit_history",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to start REPL: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()
	rl.CaptureExitSignal()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}
		if line == "" {
			continue
		}

		responses, t, err := evaluateSource(line, b, c.verbose)
		if err != nil {
			fmt.Fprintln(os.Stderr, diagnostics.Render(line, err))
			continue
		}
		for _, resp := range responses {
			fmt.Println(resp.String())
		}
		if c.timings {
			fmt.Print(t.Report())
		}
	}
}
