package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/underground-music/intake/internal/catalog"
	"github.com/underground-music/intake/internal/intake"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC)}
	s := NewStore(ttl, func() *intake.Flow { return intake.NewFlow(intake.Options{}) })
	s.now = clock.now
	return s, clock
}

func TestAcquireReusesSession(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	first, created := s.Acquire(42)
	if !created || first.ID == "" || first.Flow == nil {
		t.Fatalf("first Acquire: created=%v session=%+v", created, first)
	}
	first.Flow.Dispatch(intake.SelectClassType{Type: catalog.Group})

	again, created := s.Acquire(42)
	if created || again != first {
		t.Error("second Acquire should return the same session")
	}
	if again.Flow.State().ClassType != catalog.Group {
		t.Error("session lost its flow state")
	}

	other, created := s.Acquire(7)
	if !created || other.ID == first.ID {
		t.Error("another chat must get its own session")
	}
	if s.Len() != 2 {
		t.Errorf("Len: got %d, want 2", s.Len())
	}
}

func TestAcquireReplacesExpired(t *testing.T) {
	s, clock := newTestStore(time.Hour)
	first, _ := s.Acquire(1)

	clock.advance(59 * time.Minute)
	if got, created := s.Acquire(1); created || got != first {
		t.Fatal("session should still be live")
	}

	clock.advance(61 * time.Minute)
	if s.Get(1) != nil {
		t.Error("Get should not return an expired session")
	}
	fresh, created := s.Acquire(1)
	if !created || fresh == first {
		t.Error("expired session should be replaced")
	}
}

func TestPrune(t *testing.T) {
	s, clock := newTestStore(10 * time.Minute)
	s.Acquire(1)
	clock.advance(5 * time.Minute)
	s.Acquire(2)
	clock.advance(6 * time.Minute)

	removed := s.Prune()
	if len(removed) != 1 || removed[0].ChatID != 1 {
		t.Fatalf("Prune removed %+v, want chat 1", removed)
	}
	if s.Len() != 1 || s.Get(2) == nil {
		t.Error("chat 2 should survive")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	s, clock := newTestStore(0)
	s.Acquire(1)
	clock.advance(1000 * time.Hour)
	if len(s.Prune()) != 0 || s.Get(1) == nil {
		t.Error("zero ttl should keep sessions")
	}
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	s.Acquire(1)
	s.Delete(1)
	if s.Get(1) != nil || s.Len() != 0 {
		t.Error("Delete should forget the session")
	}
}

func TestPruneEveryStopsOnCancel(t *testing.T) {
	s := NewStore(time.Nanosecond, func() *intake.Flow { return intake.NewFlow(intake.Options{}) })
	s.Acquire(1)

	ctx, cancel := context.WithCancel(context.Background())
	pruned := make(chan int, 1)
	done := make(chan struct{})
	go func() {
		s.PruneEvery(ctx, time.Millisecond, func(r []*Session) {
			select {
			case pruned <- len(r):
			default:
			}
		})
		close(done)
	}()

	select {
	case n := <-pruned:
		if n != 1 {
			t.Errorf("pruned %d sessions, want 1", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("PruneEvery never pruned")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("PruneEvery did not stop")
	}
}

func TestConcurrentAcquire(t *testing.T) {
	s, _ := newTestStore(time.Hour)
	var wg sync.WaitGroup
	ids := make([]string, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, _ := s.Acquire(99)
			sess.Lock()
			sess.Flow.Dispatch(intake.ToggleInfo{})
			sess.Unlock()
			ids[i] = sess.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		if id != ids[0] {
			t.Fatalf("concurrent Acquire created several sessions: %v", ids)
		}
	}
}
