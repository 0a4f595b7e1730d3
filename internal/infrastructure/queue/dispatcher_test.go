package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubPurger struct {
	mu     sync.Mutex
	purged []string
	done   chan string
}

func newStubPurger() *stubPurger {
	return &stubPurger{done: make(chan string, 8)}
}

func (s *stubPurger) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	s.mu.Lock()
	s.purged = append(s.purged, ownerID)
	s.mu.Unlock()
	s.done <- ownerID
	return 1, nil
}

func (s *stubPurger) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.purged...)
}

type stubDedup struct {
	mu     sync.Mutex
	marked map[string]bool
}

func newStubDedup() *stubDedup {
	return &stubDedup{marked: make(map[string]bool)}
}

func (s *stubDedup) IsDuplicate(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked[userID], nil
}

func (s *stubDedup) Mark(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked[userID] = true
	return nil
}

func TestDispatcher_PurgeRuns(t *testing.T) {
	purger := newStubPurger()
	dedup := newStubDedup()
	d := NewDispatcher(2, purger, dedup, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.EnqueuePurge("user-1")

	select {
	case id := <-purger.done:
		if id != "user-1" {
			t.Fatalf("purged wrong user: %s", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("purge never ran")
	}
}

func TestDispatcher_DuplicateSkipped(t *testing.T) {
	purger := newStubPurger()
	dedup := newStubDedup()
	d := NewDispatcher(1, purger, dedup, zerolog.Nop())

	if err := dedup.Mark(context.Background(), "user-1"); err != nil {
		t.Fatalf("mark: %v", err)
	}

	d.process(context.Background(), 0, purgeEvent{UserID: "user-1", RequestedAt: time.Now()})

	if calls := purger.calls(); len(calls) != 0 {
		t.Fatalf("duplicate purge reached the store: %v", calls)
	}
}

func TestDispatcher_ProcessMarksAndPurges(t *testing.T) {
	purger := newStubPurger()
	dedup := newStubDedup()
	d := NewDispatcher(1, purger, dedup, zerolog.Nop())

	d.process(context.Background(), 0, purgeEvent{UserID: "user-2", RequestedAt: time.Now()})

	if calls := purger.calls(); len(calls) != 1 || calls[0] != "user-2" {
		t.Fatalf("expected one purge for user-2, got %v", calls)
	}
	if dup, _ := dedup.IsDuplicate(context.Background(), "user-2"); !dup {
		t.Fatalf("processed purge was not marked")
	}

	// Replay is now a no-op.
	d.process(context.Background(), 0, purgeEvent{UserID: "user-2", RequestedAt: time.Now()})
	if calls := purger.calls(); len(calls) != 1 {
		t.Fatalf("replayed purge reached the store: %v", calls)
	}
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(4, newStubPurger(), newStubDedup(), zerolog.Nop())

	for _, id := range []string{"a", "b", "user-123"} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if d.shardIndex(id) != first {
				t.Fatalf("shard index unstable for %q", id)
			}
		}
		if first < 0 || first >= 4 {
			t.Fatalf("shard index out of range: %d", first)
		}
	}
}
