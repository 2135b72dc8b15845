package betbook

import (
	"context"
	"log"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 20

// Remote is the persistence service the Book synchronizes with. It is a
// plain request/response API over a paginated collection; retry policy, if
// any, belongs to the implementation.
//
// Implementations surface failures as *RemoteError so the Book can branch
// on authorization failures.
type Remote interface {
	// List returns one page (1-based) of persisted records, newest first,
	// along with the total size of the remote collection.
	List(ctx context.Context, page, pageSize int) (items []PersistedRecord, total int, err error)
	// Create stores a new record and returns the assigned identifier.
	Create(ctx context.Context, p PersistedRecord) (id int64, err error)
	// Update replaces the record with the given identifier.
	Update(ctx context.Context, id string, p PersistedRecord) error
	// Delete removes the record with the given identifier.
	Delete(ctx context.Context, id string) error
}

// Book is the betting ledger: it owns the in-memory collection of
// normalized records (newest first) and the pagination state against the
// remote collection.
//
// Mutation order is remote write first, local apply second, so a failed
// write never leaves the collection out of sync. Refresh and LoadMore are
// serialized by an in-flight flag: a call while a fetch is running is a
// no-op, not an error. CRUD calls are not mutually excluded against each
// other; a caller issuing overlapping writes must serialize them itself.
type Book struct {
	remote          Remote
	startingCapital decimal.Decimal

	mu       sync.Mutex
	records  []Record
	page     int
	pageSize int
	total    int
	hasMore  bool
	fetching bool
}

// NewBook creates a ledger synchronized with the given remote collection.
// The starting capital is the externally configured base of the bankroll.
func NewBook(remote Remote, startingCapital decimal.Decimal) *Book {
	return &Book{
		remote:          remote,
		startingCapital: startingCapital,
		pageSize:        DefaultPageSize,
		hasMore:         true,
	}
}

// SetPageSize changes the fetch page size for subsequent fetches.
func (b *Book) SetPageSize(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n > 0 {
		b.pageSize = n
	}
}

// SetStartingCapital replaces the bankroll base.
func (b *Book) SetStartingCapital(c decimal.Decimal) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.startingCapital = c
}

// Records returns a copy of the current collection, newest first.
func (b *Book) Records() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}

// Get returns the record with the given identifier.
func (b *Book) Get(id string) (Record, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Total returns the size of the remote collection as last reported.
func (b *Book) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// HasMore reports whether the remote collection has pages not yet loaded.
func (b *Book) HasMore() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasMore
}

// Page returns the last successfully loaded page.
func (b *Book) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// Bootstrap loads the first page; it is what a new session calls first.
func (b *Book) Bootstrap(ctx context.Context) error { return b.Refresh(ctx) }

// Refresh resets the page cursor and replaces the whole local collection
// with a freshly fetched first page.
func (b *Book) Refresh(ctx context.Context) error {
	b.mu.Lock()
	b.page = 0
	b.hasMore = true
	b.mu.Unlock()
	return b.fetch(ctx, true)
}

// LoadMore fetches the next page and appends the records not already held
// locally. It is a no-op when everything is loaded or a fetch is running.
func (b *Book) LoadMore(ctx context.Context) error {
	b.mu.Lock()
	if !b.hasMore || b.fetching {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()
	return b.fetch(ctx, false)
}

// fetch retrieves one page from the remote collection. With reset it
// fetches page 1 and replaces the collection; otherwise it fetches the page
// after the cursor and appends the records whose identifier is new,
// advancing the cursor only if at least one was. Writers racing the fetch
// can shift page boundaries, so a page made entirely of known records must
// be refetched, not skipped.
//
// The in-flight flag is the only mutual exclusion here: it guards against
// re-entrant Refresh/LoadMore, nothing else.
func (b *Book) fetch(ctx context.Context, reset bool) error {
	b.mu.Lock()
	if b.fetching {
		b.mu.Unlock()
		return nil
	}
	b.fetching = true
	page := b.page + 1
	if reset {
		page = 1
	}
	size := b.pageSize
	b.mu.Unlock()

	items, total, err := b.remote.List(ctx, page, size)

	b.mu.Lock()
	defer func() {
		b.fetching = false
		b.mu.Unlock()
	}()

	if err != nil {
		if IsUnauthorized(err) {
			// No valid session: there is nothing to show, and nothing to report.
			b.records = nil
			b.total = 0
			b.hasMore = false
			return nil
		}
		log.Printf("cannot fetch bets page %d: %v", page, err)
		return err
	}

	fetched := make([]Record, 0, len(items))
	for _, it := range items {
		fetched = append(fetched, Normalize(FromPersisted(it)))
	}

	if reset {
		b.records = fetched
		b.page = 1
	} else {
		seen := make(map[string]struct{}, len(b.records))
		for _, r := range b.records {
			seen[r.ID] = struct{}{}
		}
		// Concurrent writers can duplicate records across page boundaries.
		appended := 0
		for _, r := range fetched {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			b.records = append(b.records, r)
			appended++
		}
		if appended > 0 {
			b.page = page
		}
	}

	b.total = total
	b.hasMore = len(b.records) < total
	return nil
}

// Add normalizes the input, persists it remotely and prepends it to the
// collection. Activating a record requires the bankroll to cover its stake.
func (b *Book) Add(ctx context.Context, input Record) (Record, error) {
	rec := Normalize(input)

	if rec.Status == Active && b.Bankroll().LessThan(rec.Stake) {
		return Record{}, ErrInsufficientFunds
	}

	id, err := b.remote.Create(ctx, rec.Persisted())
	if err != nil {
		return Record{}, err
	}
	rec.ID = strconv.FormatInt(id, 10)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = append([]Record{rec}, b.records...)
	// Count the new record only while some remote pages are still unloaded;
	// otherwise the total would drift past the remote count.
	if len(b.records) <= b.total {
		b.total++
	}
	return rec, nil
}

// Update merges the patch onto the identified record, renormalizes it,
// persists it and replaces it in place. A transition into the active status
// re-checks the bankroll against the patched stake.
func (b *Book) Update(ctx context.Context, id string, p Patch) (Record, error) {
	old, ok := b.Get(id)
	if !ok {
		return Record{}, ErrNotFound
	}

	if p.Status != nil && *p.Status == Active && old.Status != Active {
		if b.Bankroll().LessThan(p.stake(old)) {
			return Record{}, ErrInsufficientFunds
		}
	}

	updated := Normalize(p.apply(old))

	if err := b.remote.Update(ctx, id, updated.Persisted()); err != nil {
		return Record{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, r := range b.records {
		if r.ID == id {
			b.records[i] = updated
			break
		}
	}
	return updated, nil
}

// Remove deletes the record remotely first, then drops it locally.
func (b *Book) Remove(ctx context.Context, id string) error {
	if err := b.remote.Delete(ctx, id); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.records[:0]
	for _, r := range b.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	b.records = kept
	if b.total > 0 {
		b.total--
	}
	return nil
}

// Settle assigns the final outcome to an active record and computes its
// profit. With an empty outcome the record's previously recorded outcome is
// kept.
func (b *Book) Settle(ctx context.Context, id string, outcome Outcome) (Record, error) {
	rec, ok := b.Get(id)
	if !ok {
		return Record{}, ErrNotFound
	}
	if rec.Status != Active {
		return Record{}, ErrInvalidState
	}
	if outcome == "" {
		outcome = rec.Outcome
	}

	settled := Settled
	return b.Update(ctx, id, Patch{Status: &settled, Outcome: &outcome})
}

// Clear empties the local collection without touching the remote store. It
// is the session teardown; it is not synchronized against an in-flight
// fetch, whose late completion can repopulate the collection.
func (b *Book) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = nil
}
