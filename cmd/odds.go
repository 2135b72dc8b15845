package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/jetwong/betbook"
	"github.com/jetwong/betbook/renderer"
)

// oddsCmd displays the matches currently on sale and their odds.
type oddsCmd struct {
	league string
}

func (*oddsCmd) Name() string     { return "odds" }
func (*oddsCmd) Synopsis() string { return "display the matches on sale and their win/draw/lose odds" }
func (*oddsCmd) Usage() string {
	return `btb odds [-league <name>]

  Fetches the football matches currently on sale from the public lottery
  gateway and displays their win/draw/lose odds. Responses are cached for
  the day.
`
}

func (c *oddsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.league, "league", "", "Only matches whose league contains this text")
}

func (c *oddsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	matches, err := betbook.SportteryToday()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching odds: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.league != "" {
		kept := matches[:0]
		for _, m := range matches {
			if strings.Contains(m.League, c.league) {
				kept = append(kept, m)
			}
		}
		matches = kept
	}

	printMarkdown(renderer.OddsMarkdown(matches))
	return subcommands.ExitSuccess
}
