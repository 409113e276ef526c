package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

// knownCommands lists the subcommand names main dispatches without
// rewriting argv.
var knownCommands = map[string]bool{
	"repl": true, "eval": true,
	"help": true, "flags": true, "commands": true,
}

// normalizeArgs implements §6's "a bare positional expression with no
// subcommand is treated as eval <expr>": with no arguments, default to
// an interactive session; with arguments not naming a known subcommand,
// insert "eval" ahead of them.
func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"repl"}
	}
	if knownCommands[args[0]] {
		return args
	}
	return append([]string{"eval"}, args...)
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&evalCmd{}, "")

	os.Args = append([]string{os.Args[0]}, normalizeArgs(os.Args[1:])...)
	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
