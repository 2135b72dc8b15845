package betbook

import (
	"encoding/json"
	"testing"

	"github.com/jetwong/betbook/date"
)

func TestPersistedRoundTrip(t *testing.T) {
	orig := Normalize(Record{
		ID:       "42",
		League:   "英超",
		Platform: "sporttery",
		Stake:    dec("100"),
		Odds:     dec("1.95"),
		Fee:      dec("2"),
		Status:   Settled,
		Outcome:  HalfWin,
		BetTime:  date.MustParseMinute("2025-08-20 19:30"),
		Tags:     []string{"主场", "高赔"},
		Note:     "value pick",
		Legs: []Leg{
			{HomeTeam: "曼联", AwayTeam: "利物浦", BetType: "让球", Odds: dec("1.95"), Selection: "主-1"},
		},
	})

	back := Normalize(FromPersisted(orig.Persisted()))

	gotJSON, wantJSON := toJSON(t, back), toJSON(t, orig)
	if gotJSON != wantJSON {
		t.Errorf("round trip lost data:\n got %s\nwant %s", gotJSON, wantJSON)
	}
}

func TestFromPersisted_ColumnsWin(t *testing.T) {
	// The payload disagrees with the flat columns on everything the server
	// validates. The columns must win.
	payload := `{"id":"draft-1","stake":"1","odds":"1","status":"saved","result":"pending","betTime":"2020-01-01 00:00"}`
	p := PersistedRecord{
		ID:      7,
		BetData: json.RawMessage(payload),
		BetTime: "2025-08-20 19:30:00",
		Status:  Settled,
		Outcome: Win,
		Stake:   dec("100"),
		Odds:    dec("2"),
	}

	r := FromPersisted(p)
	if r.ID != "7" {
		t.Errorf("ID = %q, want server key 7", r.ID)
	}
	if r.Status != Settled || r.Outcome != Win {
		t.Errorf("status/outcome = %q/%q, want settled/win", r.Status, r.Outcome)
	}
	wantDec(t, "Stake", r.Stake, dec("100"))
	wantDec(t, "Odds", r.Odds, dec("2"))
	if got := r.BetTime.String(); got != "2025-08-20 19:30" {
		t.Errorf("BetTime = %q, want second precision truncated", got)
	}
}

func TestFromPersisted_MalformedPayload(t *testing.T) {
	p := PersistedRecord{
		ID:      9,
		BetData: json.RawMessage(`{not json`),
		BetTime: "2025-08-20 19:30",
		Status:  Active,
		Stake:   dec("50"),
		Odds:    dec("1.8"),
	}

	// The record survives on its flat columns alone.
	r := Normalize(FromPersisted(p))
	if r.ID != "9" {
		t.Errorf("ID = %q, want 9", r.ID)
	}
	if r.Status != Active {
		t.Errorf("Status = %q, want %q", r.Status, Active)
	}
	wantDec(t, "Stake", r.Stake, dec("50"))
}

func TestFromPersisted_DraftKeptID(t *testing.T) {
	p := PersistedRecord{
		BetData: json.RawMessage(`{"id":"local-draft"}`),
		BetTime: "2025-08-20 19:30",
	}
	if r := FromPersisted(p); r.ID != "local-draft" {
		t.Errorf("ID = %q, want payload identifier when no server key", r.ID)
	}
}
