package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/jetwong/betbook/renderer"
)

// summaryCmd displays the bankroll and performance summary.
type summaryCmd struct {
	all bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display bankroll and performance figures" }
func (*summaryCmd) Usage() string {
	return `btb summary [-all]

  Displays the available bankroll, total stake and profit, winning rate and
  losing streak. With -all the whole ledger is loaded first, so the figures
  cover every record instead of the first page.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Load every page before computing")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := openBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.all {
		for book.HasMore() {
			if err := book.LoadMore(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error loading the ledger: %v\n", err)
				return subcommands.ExitFailure
			}
		}
	}

	printMarkdown(renderer.SummaryMarkdown(book.Stats()))
	return subcommands.ExitSuccess
}

// dailyCmd displays the day by day stake and profit.
type dailyCmd struct {
	all bool
}

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "display the day by day stake and profit" }
func (*dailyCmd) Usage() string {
	return `btb daily [-all]

  Groups the wagers by placement day and displays stake and profit per day.
`
}

func (c *dailyCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Load every page before computing")
}

func (c *dailyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := openBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.all {
		for book.HasMore() {
			if err := book.LoadMore(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error loading the ledger: %v\n", err)
				return subcommands.ExitFailure
			}
		}
	}

	printMarkdown(renderer.DailyMarkdown(book.DailySnapshots()))
	return subcommands.ExitSuccess
}
