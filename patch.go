package betbook

import (
	"github.com/shopspring/decimal"

	"github.com/jetwong/betbook/date"
)

// Patch is a partial update to a Record. A nil field leaves the existing
// value untouched; slices replace wholesale when non-nil. Each override is
// applied explicitly rather than by generic merging, so the precedence
// rules stay visible in one place.
type Patch struct {
	MatchName *string
	League    *string
	BetType   *string
	WagerType *WagerType
	Stake     *decimal.Decimal
	Odds      *decimal.Decimal
	Platform  *string
	Outcome   *Outcome
	Status    *Status
	Fee       *decimal.Decimal
	BetTime   *date.Minute
	Tags      []string
	Note      *string
	Legs      []Leg
}

// apply merges the patch onto r field by field. The identifier is never
// patched: once assigned by the remote store it is immutable.
func (p Patch) apply(r Record) Record {
	if p.MatchName != nil {
		r.MatchName = *p.MatchName
	}
	if p.League != nil {
		r.League = *p.League
	}
	if p.BetType != nil {
		r.BetType = *p.BetType
	}
	if p.WagerType != nil {
		r.WagerType = *p.WagerType
	}
	if p.Stake != nil {
		r.Stake = *p.Stake
	}
	if p.Odds != nil {
		r.Odds = *p.Odds
	}
	if p.Platform != nil {
		r.Platform = *p.Platform
	}
	if p.Outcome != nil {
		r.Outcome = *p.Outcome
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Fee != nil {
		r.Fee = *p.Fee
	}
	if p.BetTime != nil {
		r.BetTime = *p.BetTime
	}
	if p.Tags != nil {
		r.Tags = p.Tags
	}
	if p.Note != nil {
		r.Note = *p.Note
	}
	if p.Legs != nil {
		r.Legs = p.Legs
	}
	return r
}

// stake returns the stake the patched record would have.
func (p Patch) stake(r Record) decimal.Decimal {
	if p.Stake != nil {
		return *p.Stake
	}
	return r.Stake
}
