package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/jetwong/betbook"
	"github.com/jetwong/betbook/renderer"
)

// slipCmd records a wager from free-form bet slip text.
type slipCmd struct {
	save bool
}

func (*slipCmd) Name() string     { return "slip" }
func (*slipCmd) Synopsis() string { return "parse a bet slip text into a draft wager" }
func (*slipCmd) Usage() string {
	return `btb slip [-save] [<text>...]

  Parses a pasted bet slip (or OCR output) and shows the draft wager it
  describes. With -save the draft is recorded in the ledger. The text is
  taken from the arguments, or from stdin when none are given.

Usage Examples:
$ btb slip 英超 曼联 vs 利物浦 主胜 赔率 1.85 金额 100
$ pbpaste | btb slip -save
`
}

func (c *slipCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.save, "save", false, "Record the parsed draft in the ledger")
}

func (c *slipCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	text := strings.Join(f.Args(), " ")
	if strings.TrimSpace(text) == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			return subcommands.ExitFailure
		}
		text = string(data)
	}

	slip, err := betbook.ParseSlip(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing slip: %v\n", err)
		return subcommands.ExitFailure
	}
	rec := slip.Record()

	if !c.save {
		fmt.Printf("Recognized %.0f%% of the slip (dry run, use -save to record):\n", slip.Confidence*100)
		printMarkdown(renderer.RecordMarkdown(rec))
		return subcommands.ExitSuccess
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
