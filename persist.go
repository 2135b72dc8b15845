package betbook

import (
	"encoding/json"
	"log"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jetwong/betbook/date"
)

// PersistedRecord is the wire shape of the remote bets collection: a few
// flat columns the server computes or validates, plus a free-form bet_data
// payload holding everything else.
type PersistedRecord struct {
	ID        int64            `json:"id,omitempty"`
	BetData   json.RawMessage  `json:"bet_data,omitempty"`
	BetTime   string           `json:"bet_time"`
	Status    Status           `json:"status,omitempty"`
	Outcome   Outcome          `json:"result,omitempty"`
	Stake     decimal.Decimal  `json:"stake"`
	Odds      decimal.Decimal  `json:"odds"`
	Profit    *decimal.Decimal `json:"profit"`
	CreatedAt string           `json:"created_at,omitempty"`
	UpdatedAt string           `json:"updated_at,omitempty"`
}

// betData is the read shape of the payload column. Historical payloads may
// carry more than the writer emits (legacy top-level match fields); all of
// them are accepted here and folded back by Normalize.
type betData struct {
	ID        string          `json:"id"`
	MatchName string          `json:"matchName"`
	League    string          `json:"league"`
	BetType   string          `json:"betType"`
	WagerType WagerType       `json:"wagerType"`
	Platform  string          `json:"platform"`
	Fee       decimal.Decimal `json:"fee"`
	Tags      []string        `json:"tags"`
	Note      string          `json:"note"`
	Legs      []Leg           `json:"legs"`
	BetTime   date.Minute     `json:"betTime"`
	Status    Status          `json:"status"`
	Outcome   Outcome         `json:"result"`
	Stake     decimal.Decimal `json:"stake"`
	Odds      decimal.Decimal `json:"odds"`
	HomeTeam  string          `json:"homeTeam"`
	AwayTeam  string          `json:"awayTeam"`
}

// FromPersisted reconciles a persisted record into a (partial) canonical
// Record. The flat columns win over the payload on conflict, because they
// are the source of truth for server-validated fields; the payload fills
// everything else. The result should be passed through Normalize to
// guarantee leg and tag presence and recompute derived display fields.
func FromPersisted(p PersistedRecord) Record {
	var data betData
	if len(p.BetData) > 0 {
		if err := json.Unmarshal(p.BetData, &data); err != nil {
			// A malformed payload loses its extra fields, not the record.
			log.Printf("ignoring malformed bet_data for record %d: %v", p.ID, err)
			data = betData{}
		}
	}

	r := Record{
		MatchName: data.MatchName,
		League:    data.League,
		BetType:   data.BetType,
		WagerType: data.WagerType,
		Platform:  data.Platform,
		Fee:       data.Fee,
		Tags:      data.Tags,
		Note:      data.Note,
		Legs:      data.Legs,
		HomeTeam:  data.HomeTeam,
		AwayTeam:  data.AwayTeam,
	}

	// The server key overrides any draft identifier kept in the payload.
	if p.ID != 0 {
		r.ID = strconv.FormatInt(p.ID, 10)
	} else {
		r.ID = data.ID
	}

	if t, err := date.ParseMinute(p.BetTime); err == nil {
		r.BetTime = t
	} else {
		r.BetTime = data.BetTime
	}

	r.Status = data.Status
	if p.Status != "" {
		r.Status = p.Status
	}
	r.Outcome = data.Outcome
	if p.Outcome != "" {
		r.Outcome = p.Outcome
	}
	r.Stake = data.Stake
	if !p.Stake.IsZero() {
		r.Stake = p.Stake
	}
	r.Odds = data.Odds
	if !p.Odds.IsZero() {
		r.Odds = p.Odds
	}
	if p.Profit != nil {
		r.Profit = *p.Profit
	}
	return r
}

// Persisted splits the record back into the persisted shape: the flat
// columns plus a payload carrying every field they do not cover. The
// payload round-trips losslessly through FromPersisted and Normalize.
func (r Record) Persisted() PersistedRecord {
	var w jsonObjectWriter
	w.Optional("id", r.ID)
	w.Optional("matchName", r.MatchName)
	w.Optional("league", r.League)
	w.Optional("betType", r.BetType)
	w.Optional("wagerType", r.WagerType)
	w.Optional("platform", r.Platform)
	w.Append("fee", r.Fee)
	w.Append("tags", r.Tags)
	w.Optional("note", r.Note)
	w.Append("legs", r.Legs)

	payload, err := w.MarshalJSON()
	if err != nil {
		// Only a marshal failure on our own types can get here.
		log.Printf("cannot marshal bet_data for record %s: %v", r.ID, err)
		payload = []byte("{}")
	}

	profit := r.Profit
	return PersistedRecord{
		BetData: payload,
		BetTime: r.BetTime.String(),
		Status:  r.Status,
		Outcome: r.Outcome,
		Stake:   r.Stake,
		Odds:    r.Odds,
		Profit:  &profit,
	}
}
