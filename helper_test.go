package betbook

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

// dec parses a decimal literal, failing loudly on a typo in the test itself.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// wantDec asserts decimal equality with readable output.
func wantDec(t *testing.T, label string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", label, got, want)
	}
}

// toJSON renders a value for structural comparison in failure messages.
func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

// fakeRemote is an in-memory Remote keeping records newest first, the way
// the real collection is served.
type fakeRemote struct {
	mu      sync.Mutex
	nextID  int64
	items   []PersistedRecord // newest first
	listErr error
	calls   int // List invocations

	// When block is set, List signals entered and stalls until block is
	// closed, so tests can hold a fetch in flight.
	block   chan struct{}
	entered chan struct{}
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{nextID: 1, entered: make(chan struct{}, 1)}
}

func (f *fakeRemote) List(ctx context.Context, page, pageSize int) ([]PersistedRecord, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.block != nil {
		f.entered <- struct{}{}
		<-f.block
	}
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	start := (page - 1) * pageSize
	if start >= len(f.items) {
		return nil, len(f.items), nil
	}
	end := start + pageSize
	if end > len(f.items) {
		end = len(f.items)
	}
	out := make([]PersistedRecord, end-start)
	copy(out, f.items[start:end])
	return out, len(f.items), nil
}

func (f *fakeRemote) Create(ctx context.Context, p PersistedRecord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.nextID
	f.nextID++
	f.items = append([]PersistedRecord{p}, f.items...)
	return p.ID, nil
}

func (f *fakeRemote) Update(ctx context.Context, id string, p PersistedRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return err
	}
	for i := range f.items {
		if f.items[i].ID == n {
			p.ID = n
			f.items[i] = p
			return nil
		}
	}
	return &RemoteError{Status: 404, Message: "bet not found"}
}

func (f *fakeRemote) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return err
	}
	for i := range f.items {
		if f.items[i].ID == n {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return &RemoteError{Status: 404, Message: "bet not found"}
}

// seed stores n settled records remotely, oldest profit first, so tests can
// exercise pagination without going through Add.
func (f *fakeRemote) seed(n int) {
	for i := 0; i < n; i++ {
		r := Normalize(Record{
			MatchName: "seeded",
			Stake:     dec("10"),
			Odds:      dec("2"),
			Status:    Settled,
			Outcome:   Win,
		})
		r.ID = "" // let Create assign the key
		f.Create(context.Background(), r.Persisted())
	}
}
