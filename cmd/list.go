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

// listCmd shows the first page of the ledger.
type listCmd struct {
	pageSize int
	all      bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the recorded wagers, newest first" }
func (*listCmd) Usage() string {
	return `btb list [-n <page size>] [-all]

  Lists the first page of wagers. With -all every page is loaded.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.pageSize, "n", betbook.DefaultPageSize, "Page size")
	f.BoolVar(&c.all, "all", false, "Load every page")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := openBookSized(ctx, c.pageSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.all {
		for book.HasMore() {
			if err := book.LoadMore(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error loading more wagers: %v\n", err)
				return subcommands.ExitFailure
			}
		}
	}

	printMarkdown(renderer.RecordsMarkdown(book.Records(), book.Total()))
	return subcommands.ExitSuccess
}

// moreCmd pages deeper into the ledger, printing the records past the first
// page.
type moreCmd struct {
	pageSize int
	pages    int
}

func (*moreCmd) Name() string     { return "more" }
func (*moreCmd) Synopsis() string { return "load further pages of the ledger" }
func (*moreCmd) Usage() string {
	return `btb more [-n <page size>] [-pages <count>]

  Loads the given number of extra pages past the first one and prints the
  wagers they contain.
`
}

func (c *moreCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.pageSize, "n", betbook.DefaultPageSize, "Page size")
	f.IntVar(&c.pages, "pages", 1, "Number of extra pages to load")
}

func (c *moreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := openBookSized(ctx, c.pageSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	already := len(book.Records())
	for i := 0; i < c.pages && book.HasMore(); i++ {
		if err := book.LoadMore(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading more wagers: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	loaded := book.Records()[already:]
	if len(loaded) == 0 {
		fmt.Println("Nothing more to load.")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RecordsMarkdown(loaded, book.Total()))
	return subcommands.ExitSuccess
}

// openBookSized is openBook with a custom page size applied before the
// first fetch.
func openBookSized(ctx context.Context, pageSize int) (*betbook.Book, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	capital, err := bankrollBase(ctx, client)
	if err != nil {
		return nil, err
	}
	book := betbook.NewBook(client, capital)
	book.SetPageSize(pageSize)
	if err := book.Bootstrap(ctx); err != nil {
		return nil, err
	}
	return book, nil
}
