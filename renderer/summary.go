// Package renderer renders ledger views as markdown.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/jetwong/betbook"
)

func SummaryMarkdown(s betbook.Stats) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Bankroll Summary")
	doc.PlainText(fmt.Sprintf("Available Bankroll: %s", betbook.CNY(s.Bankroll)))

	doc.H2("Performance")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Stake", betbook.CNY(s.TotalStake).String()},
			{"Total Profit", betbook.CNY(s.TotalProfit).SignedString()},
			{"Settled", fmt.Sprintf("%d", s.SettledCount)},
			{"Won", fmt.Sprintf("%d", s.WinCount)},
			{"Lost", fmt.Sprintf("%d", s.LoseCount)},
			{"Winning Rate", fmt.Sprintf("%.1f%%", s.WinningRate*100)},
			{"Losing Streak", fmt.Sprintf("%d", s.ConsecutiveLosses)},
		},
	})

	return doc.String()
}
