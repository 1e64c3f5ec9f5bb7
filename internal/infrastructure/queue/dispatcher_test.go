package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

type stubAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
	block   chan struct{}
}

func (r *stubAuditRepo) Insert(_ context.Context, e domain.AuditEntry) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return r.err
}

func (r *stubAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDispatcher_PreservesOrderPerEntity(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := int64(1); i <= 50; i++ {
		d.Record(domain.AuditEntry{Entity: "proyecto", EntityID: i, Action: domain.AuditUpdated})
	}
	waitFor(t, func() bool { return repo.count() == 50 })

	repo.mu.Lock()
	defer repo.mu.Unlock()
	for i, e := range repo.entries {
		if e.EntityID != int64(i+1) {
			t.Fatalf("entry %d out of order: got id %d", i, e.EntityID)
		}
	}
}

func TestDispatcher_WriteFailureIsNonFatal(t *testing.T) {
	repo := &stubAuditRepo{err: errors.New("mongo unavailable")}
	d := NewDispatcher(1, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Record(domain.AuditEntry{Entity: "sector"})
	d.Record(domain.AuditEntry{Entity: "sector"})
	waitFor(t, func() bool { return repo.count() == 2 })

	cancel()
	d.Wait()
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	repo := &stubAuditRepo{block: make(chan struct{})}
	d := NewDispatcher(1, repo, zerolog.Nop())
	var dropped int
	d.OnDrop(func() { dropped++ })

	// Not started: the shard buffer fills and further entries are dropped.
	for i := 0; i < channelBuffer+3; i++ {
		d.Record(domain.AuditEntry{Entity: "beneficiaria"})
	}
	if dropped != 3 {
		t.Fatalf("expected 3 dropped entries, got %d", dropped)
	}
	close(repo.block)
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(8, &stubAuditRepo{}, zerolog.Nop())
	first := d.shardIndex("capacitacion")
	for i := 0; i < 10; i++ {
		if d.shardIndex("capacitacion") != first {
			t.Fatalf("shard index changed between calls")
		}
	}
}

func TestDispatcher_ShutdownWritesQueuedEntries(t *testing.T) {
	repo := &stubAuditRepo{block: make(chan struct{})}
	d := NewDispatcher(1, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	// The first entry holds the worker inside Insert while the rest queue up.
	for i := int64(1); i <= 20; i++ {
		d.Record(domain.AuditEntry{Entity: "proyecto", EntityID: i, Action: domain.AuditCreated})
	}
	cancel()
	close(repo.block)
	d.Wait()

	if got := repo.count(); got != 20 {
		t.Fatalf("expected 20 audit entries written on shutdown, got %d", got)
	}
}
