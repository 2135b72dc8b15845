package betbook

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jetwong/betbook/date"
)

// Normalize converts any raw record into the canonical form. It is total:
// missing fields get defaults instead of errors, and it is idempotent, so
// records read back from the remote store can be normalized again safely.
//
// Leg handling: an explicit leg sequence is normalized leg by leg; a record
// without legs gets exactly one leg synthesized from the legacy top-level
// match fields. Derived fields (odds, wager type, bet-type label, league,
// display title, profit) are then recomputed from the legs.
func Normalize(r Record) Record {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.Status == "" {
		r.Status = Draft
	}
	if r.Outcome == "" {
		r.Outcome = Pending
	}
	if r.BetTime.IsZero() {
		r.BetTime = date.Now()
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}

	r.Legs = normalizeLegs(r)

	count := len(r.Legs)
	oddsFromLegs := one
	for _, leg := range r.Legs {
		oddsFromLegs = oddsFromLegs.Mul(leg.Odds)
	}
	// An explicit odds override wins; otherwise the parlay product models
	// the combined payout.
	if r.Odds.IsZero() {
		r.Odds = oddsFromLegs
	}
	if r.Odds.IsZero() {
		r.Odds = one
	}

	if count > 1 {
		r.WagerType = Parlay
	} else if r.WagerType != Parlay {
		r.WagerType = Single
	}

	if r.WagerType == Parlay {
		r.BetType = fmt.Sprintf("%s(%d)", ParlayLeague, count)
	} else {
		r.BetType = r.Legs[0].BetType
	}

	if count == 1 {
		r.League = r.Legs[0].League
	} else {
		r.League = ParlayLeague
	}

	r.MatchName = matchName(r)

	if r.Status == Settled {
		r.Profit = Settle(r.Stake, r.Odds, r.Fee, r.Outcome)
	} else {
		r.Profit = decimal.Zero
	}
	return r
}

// normalizeLegs returns the normalized leg sequence for r, synthesizing one
// from the legacy single-match fields when r carries no legs.
func normalizeLegs(r Record) []Leg {
	if len(r.Legs) > 0 {
		legs := make([]Leg, len(r.Legs))
		for i, leg := range r.Legs {
			if leg.ID == "" {
				leg.ID = fmt.Sprintf("%s-leg-%d", r.ID, i)
			}
			if leg.League == "" {
				leg.League = r.League
			}
			if leg.MatchTime.IsZero() {
				leg.MatchTime = r.BetTime
			}
			if leg.BetType == "" {
				leg.BetType = firstNonEmpty(r.BetType, DefaultBetType)
			}
			if leg.Odds.IsZero() {
				leg.Odds = one
			}
			legs[i] = leg
		}
		return legs
	}

	// Legacy shape: the whole record describes a single match.
	odds := r.Odds
	if odds.IsZero() {
		odds = one
	}
	return []Leg{{
		ID:        fmt.Sprintf("%s-leg-0", r.ID),
		HomeTeam:  firstNonEmpty(r.HomeTeam, r.MatchName),
		AwayTeam:  r.AwayTeam,
		League:    r.League,
		MatchTime: r.BetTime,
		BetType:   firstNonEmpty(r.BetType, DefaultBetType),
		Odds:      odds,
		Stake:     r.Stake,
		Note:      r.Note,
	}}
}

// matchName derives the display title from the normalized legs.
func matchName(r Record) string {
	if len(r.Legs) == 1 {
		leg := r.Legs[0]
		if leg.HomeTeam != "" && leg.AwayTeam != "" {
			return leg.HomeTeam + " vs " + leg.AwayTeam
		}
		return firstNonEmpty(leg.HomeTeam, leg.AwayTeam, r.MatchName, unnamedMatch)
	}
	first := r.Legs[0]
	anchor := firstNonEmpty(first.HomeTeam, first.AwayTeam, first.League, unnamedParlay)
	return fmt.Sprintf("%s 等%d场", anchor, len(r.Legs))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
