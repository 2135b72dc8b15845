package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "delete a recorded wager" }
func (*removeCmd) Usage() string {
	return `btb remove <id>...

  Deletes the given wagers from the ledger.
`
}

func (*removeCmd) SetFlags(_ *flag.FlagSet) {}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	book, err := openBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, id := range f.Args() {
		if err := book.Remove(ctx, id); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing wager %s: %v\n", id, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Removed wager %s.\n", id)
	}
	return subcommands.ExitSuccess
}
