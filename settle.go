package betbook

import "github.com/shopspring/decimal"

// Settle computes the signed profit of a settled wager.
//
// The fee is a flat cost subtracted whatever the outcome. Half outcomes
// settle half the stake at the full odds (Asian handicap style). A pending
// or unrecognized outcome yields zero.
//
// Degenerate inputs are the caller's responsibility: odds below 1 produce a
// negative "win" profit, and a zero stake still loses the fee.
func Settle(stake, odds, fee decimal.Decimal, outcome Outcome) decimal.Decimal {
	switch outcome {
	case Win:
		return stake.Mul(odds.Sub(one)).Sub(fee)
	case Lose:
		return stake.Neg().Sub(fee)
	case HalfWin:
		return stake.Mul(odds.Sub(one)).Div(two).Sub(fee)
	case HalfLose:
		return stake.Div(two).Neg().Sub(fee)
	default:
		return decimal.Zero
	}
}
