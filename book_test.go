package betbook

import (
	"context"
	"testing"
)

func TestBook_Bootstrap(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(3)
	b := NewBook(remote, dec("1000"))

	if err := b.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap() failed: %v", err)
	}
	if got := len(b.Records()); got != 3 {
		t.Errorf("len(Records()) = %d, want 3", got)
	}
	if b.Total() != 3 {
		t.Errorf("Total() = %d, want 3", b.Total())
	}
	if b.HasMore() {
		t.Error("HasMore() = true, want false once everything is loaded")
	}
}

func TestBook_LoadMore(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(5)
	b := NewBook(remote, dec("1000"))
	b.SetPageSize(2)
	ctx := context.Background()

	if err := b.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	if got := len(b.Records()); got != 2 {
		t.Fatalf("after refresh len = %d, want 2", got)
	}
	if !b.HasMore() {
		t.Fatal("HasMore() = false, want true")
	}

	if err := b.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore() failed: %v", err)
	}
	if got := len(b.Records()); got != 4 {
		t.Errorf("after load more len = %d, want 4", got)
	}
	if b.Page() != 2 {
		t.Errorf("Page() = %d, want 2", b.Page())
	}

	if err := b.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore() failed: %v", err)
	}
	if got := len(b.Records()); got != 5 {
		t.Errorf("after last page len = %d, want 5", got)
	}
	if b.HasMore() {
		t.Error("HasMore() = true, want false")
	}

	// Everything loaded: a further call must not hit the remote.
	calls := remote.calls
	if err := b.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore() failed: %v", err)
	}
	if remote.calls != calls {
		t.Errorf("List called %d more times, want 0", remote.calls-calls)
	}
}

func TestBook_LoadMoreDeduplicates(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(4)
	b := NewBook(remote, dec("1000"))
	b.SetPageSize(2)
	ctx := context.Background()

	if err := b.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}

	// A record created remotely shifts page boundaries: page 2 now starts
	// with a record already held locally.
	remote.seed(1)
	if err := b.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore() failed: %v", err)
	}

	seen := map[string]bool{}
	for _, r := range b.Records() {
		if seen[r.ID] {
			t.Errorf("duplicate record %s in collection", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestBook_LoadMoreAllDuplicatesKeepsCursor(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(4)
	b := NewBook(remote, dec("1000"))
	b.SetPageSize(2)
	ctx := context.Background()

	if err := b.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}

	// Two new remote records push the whole first page into page 2: the
	// next fetch yields only records already held, and the cursor must not
	// advance past them.
	remote.seed(2)
	page := b.Page()
	if err := b.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore() failed: %v", err)
	}
	if b.Page() != page {
		t.Errorf("Page() = %d, want unchanged %d when nothing was appended", b.Page(), page)
	}
	if !b.HasMore() {
		t.Error("HasMore() = false, want true with remote records still unseen")
	}
}

func TestBook_ConcurrentLoadMoreFetchesOnce(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(10)
	b := NewBook(remote, dec("1000"))
	b.SetPageSize(2)
	ctx := context.Background()

	if err := b.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	calls := remote.calls

	// Hold the first fetch in flight; the second call must collapse into a
	// no-op instead of issuing its own.
	remote.block = make(chan struct{})
	first := make(chan error)
	go func() { first <- b.LoadMore(ctx) }()
	<-remote.entered
	if err := b.LoadMore(ctx); err != nil {
		t.Fatalf("overlapping LoadMore() = %v, want a silent no-op", err)
	}
	close(remote.block)
	if err := <-first; err != nil {
		t.Fatalf("LoadMore() failed: %v", err)
	}

	if got := remote.calls - calls; got != 1 {
		t.Errorf("List called %d times, want exactly 1", got)
	}
	if got := len(b.Records()); got != 4 {
		t.Errorf("len(Records()) = %d, want one extra page", got)
	}
}

func TestBook_UnauthorizedResetsCollection(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(3)
	b := NewBook(remote, dec("1000"))
	ctx := context.Background()

	if err := b.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap() failed: %v", err)
	}

	remote.listErr = &RemoteError{Status: 401, Message: "Not authenticated"}
	if err := b.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() after 401 = %v, want absorbed", err)
	}
	if got := len(b.Records()); got != 0 {
		t.Errorf("len(Records()) = %d, want 0 after session loss", got)
	}
	if b.Total() != 0 || b.HasMore() {
		t.Errorf("Total()/HasMore() = %d/%v, want 0/false", b.Total(), b.HasMore())
	}
}

func TestBook_OtherFetchErrorsPropagate(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(3)
	b := NewBook(remote, dec("1000"))
	ctx := context.Background()

	if err := b.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap() failed: %v", err)
	}

	remote.listErr = &RemoteError{Status: 500, Message: "boom"}
	if err := b.Refresh(ctx); err == nil {
		t.Fatal("Refresh() = nil, want the server error")
	}
	// The collection is left as it was.
	if got := len(b.Records()); got != 3 {
		t.Errorf("len(Records()) = %d, want untouched 3", got)
	}
}

func TestBook_Add(t *testing.T) {
	remote := newFakeRemote()
	b := NewBook(remote, dec("1000"))
	ctx := context.Background()

	rec, err := b.Add(ctx, Record{
		HomeTeam: "曼联", AwayTeam: "利物浦",
		Stake: dec("100"), Odds: dec("2"), Status: Active,
	})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if rec.ID != "1" {
		t.Errorf("ID = %q, want the remote key 1", rec.ID)
	}
	records := b.Records()
	if len(records) != 1 || records[0].ID != "1" {
		t.Fatalf("Records() = %v, want the new record prepended", records)
	}
	wantDec(t, "Bankroll", b.Bankroll(), dec("900"))
}

func TestBook_AddInsufficientFunds(t *testing.T) {
	remote := newFakeRemote()
	b := NewBook(remote, dec("50"))

	_, err := b.Add(context.Background(), Record{Stake: dec("100"), Status: Active})
	if err != ErrInsufficientFunds {
		t.Fatalf("Add() = %v, want ErrInsufficientFunds", err)
	}
	if len(b.Records()) != 0 {
		t.Error("record added despite the rejected activation")
	}
	// A draft of any size is fine: no capital is committed.
	if _, err := b.Add(context.Background(), Record{Stake: dec("100"), Status: Draft}); err != nil {
		t.Fatalf("Add(draft) = %v, want nil", err)
	}
}

func TestBook_Update(t *testing.T) {
	remote := newFakeRemote()
	b := NewBook(remote, dec("1000"))
	ctx := context.Background()

	rec, err := b.Add(ctx, Record{HomeTeam: "曼联", AwayTeam: "利物浦", Stake: dec("100"), Odds: dec("2"), Status: Active})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	stake := dec("200")
	updated, err := b.Update(ctx, rec.ID, Patch{Stake: &stake})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	wantDec(t, "Stake", updated.Stake, dec("200"))

	got, ok := b.Get(rec.ID)
	if !ok {
		t.Fatal("updated record vanished")
	}
	wantDec(t, "stored Stake", got.Stake, dec("200"))

	if _, err := b.Update(ctx, "999", Patch{}); err != ErrNotFound {
		t.Errorf("Update(unknown) = %v, want ErrNotFound", err)
	}
}

func TestBook_UpdateActivationChecksBankroll(t *testing.T) {
	remote := newFakeRemote()
	b := NewBook(remote, dec("100"))
	ctx := context.Background()

	rec, err := b.Add(ctx, Record{Stake: dec("150"), Status: Draft})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	active := Active
	if _, err := b.Update(ctx, rec.ID, Patch{Status: &active}); err != ErrInsufficientFunds {
		t.Fatalf("activation = %v, want ErrInsufficientFunds", err)
	}

	// Lowering the stake within the same patch makes the activation valid.
	stake := dec("80")
	if _, err := b.Update(ctx, rec.ID, Patch{Status: &active, Stake: &stake}); err != nil {
		t.Fatalf("activation with lower stake = %v, want nil", err)
	}
	wantDec(t, "Bankroll", b.Bankroll(), dec("20"))
}

func TestBook_Remove(t *testing.T) {
	remote := newFakeRemote()
	b := NewBook(remote, dec("1000"))
	ctx := context.Background()

	rec, err := b.Add(ctx, Record{Stake: dec("10")})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if err := b.Remove(ctx, rec.ID); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if len(b.Records()) != 0 {
		t.Error("record still present after Remove")
	}
	if err := b.Remove(ctx, rec.ID); err == nil {
		t.Error("Remove(gone) = nil, want the remote error")
	}
}

func TestBook_Settle(t *testing.T) {
	remote := newFakeRemote()
	b := NewBook(remote, dec("1000"))
	ctx := context.Background()

	rec, err := b.Add(ctx, Record{Stake: dec("100"), Odds: dec("2"), Status: Active})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	settled, err := b.Settle(ctx, rec.ID, Win)
	if err != nil {
		t.Fatalf("Settle() failed: %v", err)
	}
	if settled.Status != Settled || settled.Outcome != Win {
		t.Errorf("status/outcome = %q/%q, want settled/win", settled.Status, settled.Outcome)
	}
	wantDec(t, "Profit", settled.Profit, dec("100"))
	wantDec(t, "Bankroll", b.Bankroll(), dec("1100"))

	if _, err := b.Settle(ctx, rec.ID, Lose); err != ErrInvalidState {
		t.Errorf("Settle(settled) = %v, want ErrInvalidState", err)
	}
	if _, err := b.Settle(ctx, "999", Win); err != ErrNotFound {
		t.Errorf("Settle(unknown) = %v, want ErrNotFound", err)
	}
}

func TestBook_SettleKeepsRecordedOutcome(t *testing.T) {
	remote := newFakeRemote()
	b := NewBook(remote, dec("1000"))
	ctx := context.Background()

	rec, err := b.Add(ctx, Record{Stake: dec("100"), Odds: dec("2"), Status: Active, Outcome: HalfWin})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	settled, err := b.Settle(ctx, rec.ID, "")
	if err != nil {
		t.Fatalf("Settle() failed: %v", err)
	}
	if settled.Outcome != HalfWin {
		t.Errorf("Outcome = %q, want the recorded half-win", settled.Outcome)
	}
	wantDec(t, "Profit", settled.Profit, dec("50"))
}

func TestBook_Clear(t *testing.T) {
	remote := newFakeRemote()
	remote.seed(3)
	b := NewBook(remote, dec("1000"))
	ctx := context.Background()

	if err := b.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap() failed: %v", err)
	}
	b.Clear()
	if len(b.Records()) != 0 {
		t.Error("Records() not empty after Clear")
	}
	// The remote collection is untouched.
	if err := b.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	if got := len(b.Records()); got != 3 {
		t.Errorf("len(Records()) = %d, want 3 back from the remote", got)
	}
}
