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
	"github.com/jetwong/betbook/date"
	"github.com/jetwong/betbook/renderer"
)

// addCmd records a single-match wager.
type addCmd struct {
	home      string
	away      string
	league    string
	betType   string
	selection string
	stake     string
	odds      string
	fee       string
	platform  string
	note      string
	tags      string
	betTime   string
	place     bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new wager" }
func (*addCmd) Usage() string {
	return `btb add -home <team> -away <team> -stake <amount> -odds <odds> [options]

  Records a new wager as a draft. With -place the stake is committed right
  away, which requires the bankroll to cover it.

Usage Examples:
$ btb add -home 曼联 -away 利物浦 -league 英超 -stake 100 -odds 1.95 -sel 主胜 -place
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.home, "home", "", "Home team")
	f.StringVar(&c.away, "away", "", "Away team")
	f.StringVar(&c.league, "league", "", "League name")
	f.StringVar(&c.betType, "type", "", "Bet type (defaults to "+betbook.DefaultBetType+")")
	f.StringVar(&c.selection, "sel", "", "Selection, e.g. 主胜")
	f.StringVar(&c.stake, "stake", "0", "Stake amount")
	f.StringVar(&c.odds, "odds", "0", "Decimal odds")
	f.StringVar(&c.fee, "fee", "0", "Flat fee")
	f.StringVar(&c.platform, "platform", "", "Betting platform")
	f.StringVar(&c.note, "note", "", "Free-form note")
	f.StringVar(&c.tags, "tags", "", "Comma-separated tags")
	f.StringVar(&c.betTime, "time", "", "Placement time ("+date.MinuteFormat+"), defaults to now")
	f.BoolVar(&c.place, "place", false, "Commit the stake immediately instead of keeping a draft")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rec, status := c.record()
	if status != subcommands.ExitSuccess {
		return status
	}

	book, err := openBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	added, err := book.Add(ctx, rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding the wager: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RecordMarkdown(added))
	return subcommands.ExitSuccess
}

func (c *addCmd) record() (betbook.Record, subcommands.ExitStatus) {
	stake, err := decimal.NewFromString(c.stake)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing stake: %v\n", err)
		return betbook.Record{}, subcommands.ExitUsageError
	}
	odds, err := decimal.NewFromString(c.odds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing odds: %v\n", err)
		return betbook.Record{}, subcommands.ExitUsageError
	}
	fee, err := decimal.NewFromString(c.fee)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing fee: %v\n", err)
		return betbook.Record{}, subcommands.ExitUsageError
	}

	rec := betbook.Record{
		League:   c.league,
		BetType:  c.betType,
		Stake:    stake,
		Odds:     odds,
		Fee:      fee,
		Platform: c.platform,
		Note:     c.note,
		Legs: []betbook.Leg{{
			HomeTeam:  c.home,
			AwayTeam:  c.away,
			League:    c.league,
			BetType:   c.betType,
			Odds:      odds,
			Selection: c.selection,
		}},
	}
	if c.place {
		rec.Status = betbook.Active
	}
	if c.tags != "" {
		for _, tag := range strings.Split(c.tags, ",") {
			rec.Tags = append(rec.Tags, strings.TrimSpace(tag))
		}
	}
	if c.betTime != "" {
		when, err := date.ParseMinute(c.betTime)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
			return betbook.Record{}, subcommands.ExitUsageError
		}
		rec.BetTime = when
	}
	return rec, subcommands.ExitSuccess
}
