package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/jetwong/betbook"
	"github.com/jetwong/betbook/renderer"
)

// updateCmd patches an existing wager. Only the flags actually given are
// applied.
type updateCmd struct {
	league   string
	betType  string
	stake    string
	odds     string
	fee      string
	platform string
	note     string
	tags     string
	place    bool
	draft    bool
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "modify fields of a recorded wager" }
func (*updateCmd) Usage() string {
	return `btb update <id> [options]

  Updates the given wager. Only the provided flags are changed; everything
  else is left as recorded. With -place a draft is activated, committing
  its stake against the bankroll. With -draft an active wager goes back to
  draft.

Usage Examples:
$ btb update 42 -stake 200 -odds 2.05
$ btb update 42 -place
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.league, "league", "", "League name")
	f.StringVar(&c.betType, "type", "", "Bet type")
	f.StringVar(&c.stake, "stake", "", "Stake amount")
	f.StringVar(&c.odds, "odds", "", "Decimal odds")
	f.StringVar(&c.fee, "fee", "", "Flat fee")
	f.StringVar(&c.platform, "platform", "", "Betting platform")
	f.StringVar(&c.note, "note", "", "Free-form note")
	f.StringVar(&c.tags, "tags", "", "Comma-separated tags, replacing the recorded ones")
	f.BoolVar(&c.place, "place", false, "Activate the wager, committing its stake")
	f.BoolVar(&c.draft, "draft", false, "Put the wager back to draft")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	patch, status := c.patch()
	if status != subcommands.ExitSuccess {
		return status
	}

	book, err := openBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	updated, err := book.Update(ctx, id, patch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error updating wager %s: %v\n", id, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RecordMarkdown(updated))
	return subcommands.ExitSuccess
}

func (c *updateCmd) patch() (betbook.Patch, subcommands.ExitStatus) {
	var p betbook.Patch
	if c.league != "" {
		p.League = &c.league
	}
	if c.betType != "" {
		p.BetType = &c.betType
	}
	if c.platform != "" {
		p.Platform = &c.platform
	}
	if c.note != "" {
		p.Note = &c.note
	}
	if c.tags != "" {
		for _, tag := range strings.Split(c.tags, ",") {
			p.Tags = append(p.Tags, strings.TrimSpace(tag))
		}
	}
	for _, v := range []struct {
		raw  string
		dest **decimal.Decimal
		name string
	}{
		{c.stake, &p.Stake, "stake"},
		{c.odds, &p.Odds, "odds"},
		{c.fee, &p.Fee, "fee"},
	} {
		if v.raw == "" {
			continue
		}
		d, err := decimal.NewFromString(v.raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", v.name, err)
			return betbook.Patch{}, subcommands.ExitUsageError
		}
		*v.dest = &d
	}
	if c.place && c.draft {
		fmt.Fprintln(os.Stderr, "-place and -draft are mutually exclusive.")
		return betbook.Patch{}, subcommands.ExitUsageError
	}
	if c.place {
		status := betbook.Active
		p.Status = &status
	}
	if c.draft {
		status := betbook.Draft
		p.Status = &status
	}
	return p, subcommands.ExitSuccess
}
