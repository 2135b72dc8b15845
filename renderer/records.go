package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/jetwong/betbook"
)

// statusLabels are the display names of the lifecycle states.
var statusLabels = map[betbook.Status]string{
	betbook.Draft:   "draft",
	betbook.Active:  "active",
	betbook.Settled: "settled",
}

// outcomeLabels are the display names of the outcomes.
var outcomeLabels = map[betbook.Outcome]string{
	betbook.Pending:  "-",
	betbook.Win:      "win",
	betbook.Lose:     "lose",
	betbook.HalfWin:  "half win",
	betbook.HalfLose: "half lose",
}

func RecordsMarkdown(records []betbook.Record, total int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Bets")
	doc.PlainText(fmt.Sprintf("Showing %d of %d records.", len(records), total))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignRight,
		},
		Header: []string{"ID", "Placed", "Match", "Bet", "Stake", "Odds", "Status", "Outcome", "Profit"},
	}
	for _, r := range records {
		table.Rows = append(table.Rows, []string{
			r.ID,
			r.BetTime.String(),
			r.MatchName,
			r.BetType,
			betbook.CNY(r.Stake).String(),
			r.Odds.StringFixed(2),
			statusLabels[r.Status],
			outcomeLabels[r.Outcome],
			betbook.CNY(r.Profit).SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// RecordMarkdown renders one record in full, legs included.
func RecordMarkdown(r betbook.Record) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(r.MatchName)
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Field", "Value"},
		Rows: [][]string{
			{"ID", r.ID},
			{"League", r.League},
			{"Bet", r.BetType},
			{"Placed", r.BetTime.String()},
			{"Stake", betbook.CNY(r.Stake).String()},
			{"Odds", r.Odds.StringFixed(2)},
			{"Status", statusLabels[r.Status]},
			{"Outcome", outcomeLabels[r.Outcome]},
			{"Profit", betbook.CNY(r.Profit).SignedString()},
		},
	})

	if len(r.Legs) > 1 {
		doc.H2("Legs")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
			Header:    []string{"Match", "League", "Bet", "Selection", "Odds"},
		}
		for _, leg := range r.Legs {
			table.Rows = append(table.Rows, []string{
				leg.HomeTeam + " vs " + leg.AwayTeam,
				leg.League,
				leg.BetType,
				leg.Selection,
				leg.Odds.StringFixed(2),
			})
		}
		doc.Table(table)
	}

	if r.Note != "" {
		doc.H2("Note")
		doc.PlainText(r.Note)
	}

	return doc.String()
}
