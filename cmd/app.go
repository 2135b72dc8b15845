// Package cmd implements the CLI application to manage a betting ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/jetwong/betbook"
	"github.com/jetwong/betbook/remote"
)

// Commands lists every subcommand of the application. A main package
// registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&loginCmd{},
	&logoutCmd{},
	&addCmd{},
	&slipCmd{},
	&listCmd{},
	&moreCmd{},
	&updateCmd{},
	&settleCmd{},
	&removeCmd{},
	&summaryCmd{},
	&dailyCmd{},
	&oddsCmd{},
	&assistCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var baseURL = flag.String("base-url", remote.DefaultBaseURL, "Base URL of the bets service")
var startingCapital = flag.String("starting-capital", "", "Override the starting capital (defaults to the server-side configuration)")

// newClient returns a client authenticated with the stored session.
func newClient() (*remote.Client, error) {
	token, err := remote.LoadToken()
	if err != nil {
		return nil, err
	}
	return remote.New(*baseURL, token), nil
}

// openBook builds the ledger from the stored session and loads its first
// page. The starting capital comes from the server-side user configuration
// unless overridden on the command line.
func openBook(ctx context.Context) (*betbook.Book, error) {
	return openBookSized(ctx, betbook.DefaultPageSize)
}

func bankrollBase(ctx context.Context, client *remote.Client) (decimal.Decimal, error) {
	if *startingCapital != "" {
		capital, err := decimal.NewFromString(*startingCapital)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid -starting-capital %q: %w", *startingCapital, err)
		}
		return capital, nil
	}
	cfg, err := client.Config(ctx)
	if err != nil {
		if betbook.IsUnauthorized(err) {
			return decimal.Zero, err
		}
		// A missing configuration is not fatal, the bankroll just starts at zero.
		log.Printf("cannot fetch user configuration: %v", err)
		return decimal.Zero, nil
	}
	return cfg.StartingCapital, nil
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Fall back to the raw markdown.
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
