// Package betbook implements a personal betting ledger: it keeps a local,
// normalized collection of wager records synchronized with a remote paginated
// store, and derives bankroll and performance statistics from it.
package betbook

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jetwong/betbook/date"
)

// Outcome is the result assigned to a wager at settlement time.
type Outcome string

const (
	Pending  Outcome = "pending"
	Win      Outcome = "win"
	Lose     Outcome = "lose"
	HalfWin  Outcome = "half-win"
	HalfLose Outcome = "half-lose"
)

// Status is the lifecycle state of a wager record.
//
// The wire values ("saved", "betting", "settled") are those of the remote
// bets collection and of historical records, and must not change.
type Status string

const (
	Draft   Status = "saved"   // recorded but not placed
	Active  Status = "betting" // stake committed, awaiting settlement
	Settled Status = "settled" // outcome assigned, profit computed
)

// WagerType distinguishes a single-match wager from a multi-leg parlay.
type WagerType string

const (
	Single WagerType = "single"
	Parlay WagerType = "parlay"
)

// Display labels derived by the normalizer. They match the historical
// records produced by the original mobile client and must not change.
const (
	// DefaultBetType is the generic bet-type label (win/draw/lose market).
	DefaultBetType = "胜平负"
	// ParlayLeague is the league label of a multi-leg record.
	ParlayLeague = "串关"
	// unnamedMatch is the display title when no participant is known.
	unnamedMatch = "未命名比赛"
	// unnamedParlay is the title anchor when a parlay's first leg is all blank.
	unnamedParlay = "多场串关"
)

// Leg is one match selection within a wager. A single wager has exactly one
// leg; a parlay has several, whose odds multiply.
type Leg struct {
	ID        string          `json:"id"`
	HomeTeam  string          `json:"homeTeam"`
	AwayTeam  string          `json:"awayTeam"`
	League    string          `json:"league"`
	MatchTime date.Minute     `json:"matchTime"`
	BetType   string          `json:"betType"`
	Odds      decimal.Decimal `json:"odds"`
	Stake     decimal.Decimal `json:"stake"`
	Selection string          `json:"selection"`
	Note      string          `json:"note,omitempty"`
}

// Record is the canonical wager record, the unit of the ledger.
//
// A Record freshly built from user input is partial: Normalize fills the
// defaults, synthesizes legs and recomputes every derived field. Records
// held by a Book are always normalized.
type Record struct {
	// ID is a generated identifier for unsaved drafts, and the remote
	// store's key (an opaque decimal string) once persisted. The persisted
	// identifier is immutable and is the sole deduplication key.
	ID        string          `json:"id"`
	MatchName string          `json:"matchName"`
	League    string          `json:"league"`
	BetType   string          `json:"betType"`
	WagerType WagerType       `json:"wagerType"`
	Stake     decimal.Decimal `json:"stake"`
	Odds      decimal.Decimal `json:"odds"`
	Platform  string          `json:"platform"`
	Outcome   Outcome         `json:"result"`
	Status    Status          `json:"status"`
	Profit    decimal.Decimal `json:"profit"`
	Fee       decimal.Decimal `json:"fee"`
	BetTime   date.Minute     `json:"betTime"`
	Tags      []string        `json:"tags"`
	Note      string          `json:"note,omitempty"`
	Legs      []Leg           `json:"legs"`

	// Legacy single-match fields. Older record shapes carry the selection
	// at the top level; Normalize folds them into a synthesized leg.
	HomeTeam string `json:"homeTeam,omitempty"`
	AwayTeam string `json:"awayTeam,omitempty"`
}

// NewID returns a fresh draft record identifier.
func NewID() string { return uuid.NewString() }

var (
	one = decimal.NewFromInt(1)
	two = decimal.NewFromInt(2)
)
