// Command cb reports short and long term gains and losses of a cost basis export.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/costbasis/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("cb")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	closeLog, err := cmd.Init(flag.CommandLine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	status := commander.Execute(context.Background())
	closeLog()
	os.Exit(int(status))
}
