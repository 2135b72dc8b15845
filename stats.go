package betbook

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jetwong/betbook/date"
)

// DailySnapshot aggregates the stake and profit of all wagers placed on one
// calendar day, regardless of status. Snapshots are derived, never persisted.
type DailySnapshot struct {
	Date   date.Date       `json:"date"`
	Stake  decimal.Decimal `json:"stake"`
	Profit decimal.Decimal `json:"profit"`
}

// Stats is the derived financial view of the collection. Every value is a
// pure function of the current records (and the starting capital for the
// bankroll), recomputed on access so it is always current.
type Stats struct {
	TotalStake        decimal.Decimal // stake of active and settled records
	TotalProfit       decimal.Decimal // profit of settled records
	WinCount          int             // settled records with a win outcome
	LoseCount         int             // settled records with a lose outcome
	SettledCount      int
	WinningRate       float64 // WinCount over SettledCount, 0 when nothing is settled
	ConsecutiveLosses int
	Bankroll          decimal.Decimal
}

// Stats computes the full derived view in one pass over the collection.
func (b *Book) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return stats(b.records, b.startingCapital)
}

// TotalStake sums the stake of records whose capital is or was committed
// (active and settled).
func (b *Book) TotalStake() decimal.Decimal { return b.Stats().TotalStake }

// TotalProfit sums the realized profit of settled records.
func (b *Book) TotalProfit() decimal.Decimal { return b.Stats().TotalProfit }

// WinCount counts settled wins. Half outcomes are excluded.
func (b *Book) WinCount() int { return b.Stats().WinCount }

// LoseCount counts settled losses. Half outcomes are excluded.
func (b *Book) LoseCount() int { return b.Stats().LoseCount }

// WinningRate is the share of settled records won, 0 with no settled record.
func (b *Book) WinningRate() float64 { return b.Stats().WinningRate }

// ConsecutiveLosses counts the losing streak over settled records in
// collection order (newest first).
func (b *Book) ConsecutiveLosses() int { return b.Stats().ConsecutiveLosses }

// Bankroll is the available capital: starting capital plus realized profit,
// minus the stake committed to active wagers.
func (b *Book) Bankroll() decimal.Decimal { return b.Stats().Bankroll }

func stats(records []Record, startingCapital decimal.Decimal) Stats {
	var s Stats
	activeStake := decimal.Zero
	for _, r := range records {
		switch r.Status {
		case Active:
			s.TotalStake = s.TotalStake.Add(r.Stake)
			activeStake = activeStake.Add(r.Stake)
		case Settled:
			s.TotalStake = s.TotalStake.Add(r.Stake)
			s.TotalProfit = s.TotalProfit.Add(r.Profit)
			s.SettledCount++
			switch r.Outcome {
			case Win:
				s.WinCount++
			case Lose:
				s.LoseCount++
			}
		}
	}
	if s.SettledCount > 0 {
		s.WinningRate = float64(s.WinCount) / float64(s.SettledCount)
	}

	// Scan settled records newest first: a loss extends the streak and a
	// win ends the scan. Half outcomes neither extend nor break the streak.
	for _, r := range records {
		if r.Status != Settled {
			continue
		}
		if r.Outcome == Lose {
			s.ConsecutiveLosses++
		} else if r.Outcome == Win {
			break
		}
	}

	s.Bankroll = startingCapital.Add(s.TotalProfit).Sub(activeStake)
	return s
}

// DailySnapshots groups all records by the calendar day of their placement
// time, summing stake and profit, sorted by ascending date.
func (b *Book) DailySnapshots() []DailySnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	grouped := make(map[date.Date]DailySnapshot)
	for _, r := range b.records {
		day := r.BetTime.Date()
		snap := grouped[day]
		snap.Date = day
		snap.Stake = snap.Stake.Add(r.Stake)
		snap.Profit = snap.Profit.Add(r.Profit)
		grouped[day] = snap
	}

	out := make([]DailySnapshot, 0, len(grouped))
	for _, snap := range grouped {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
