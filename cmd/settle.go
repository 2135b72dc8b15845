package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/jetwong/betbook"
	"github.com/jetwong/betbook/renderer"
)

// settleCmd assigns the final outcome to an active wager.
type settleCmd struct{}

var outcomes = map[string]betbook.Outcome{
	"win":       betbook.Win,
	"lose":      betbook.Lose,
	"half-win":  betbook.HalfWin,
	"half-lose": betbook.HalfLose,
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "settle an active wager with its outcome" }
func (*settleCmd) Usage() string {
	return `btb settle <id> [win|lose|half-win|half-lose]

  Assigns the final outcome to an active wager and computes its profit.
  Without an outcome the one already recorded on the wager is kept.
`
}

func (*settleCmd) SetFlags(_ *flag.FlagSet) {}

func (c *settleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 || f.NArg() > 2 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	var outcome betbook.Outcome
	if f.NArg() == 2 {
		var ok bool
		outcome, ok = outcomes[f.Arg(1)]
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown outcome %q, want win, lose, half-win or half-lose.\n", f.Arg(1))
			return subcommands.ExitUsageError
		}
	}

	book, err := openBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	settled, err := book.Settle(ctx, id, outcome)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error settling wager %s: %v\n", id, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RecordMarkdown(settled))
	return subcommands.ExitSuccess
}
