package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	"github.com/jetwong/betbook"
)

func DailyMarkdown(snaps []betbook.DailySnapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Daily Report")

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Stake", "Profit"},
	}
	for _, s := range snaps {
		table.Rows = append(table.Rows, []string{
			s.Date.String(),
			betbook.CNY(s.Stake).String(),
			betbook.CNY(s.Profit).SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// OddsMarkdown renders the in-sale matches and their win/draw/lose odds.
func OddsMarkdown(matches []betbook.MatchOdds) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Matches on Sale")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignRight,
		},
		Header: []string{"Num", "Time", "League", "Match", "Win", "Draw", "Lose"},
	}
	for _, m := range matches {
		table.Rows = append(table.Rows, []string{
			m.Num,
			m.MatchTime,
			m.League,
			m.HomeTeam + " vs " + m.AwayTeam,
			m.Win.StringFixed(2),
			m.Draw.StringFixed(2),
			m.Lose.StringFixed(2),
		})
	}
	doc.Table(table)

	return doc.String()
}
