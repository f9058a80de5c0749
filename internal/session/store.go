// Package session keeps one intake flow per chat for front ends that serve
// many users at once.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/underground-music/intake/internal/intake"
)

// Session is one chat's intake. Callers hold Lock while dispatching to Flow.
type Session struct {
	ID        string
	ChatID    int64
	Flow      *intake.Flow
	CreatedAt time.Time
	UpdatedAt time.Time

	// MessageID is the chat message that shows the current step, edited in
	// place as the flow moves. Zero means none was sent yet.
	MessageID int

	mu sync.Mutex
}

// Lock serializes work on the session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Store maps chat ids to sessions and expires idle ones.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	ttl      time.Duration
	newFlow  func() *intake.Flow
	now      func() time.Time
}

// NewStore creates a store whose sessions expire after ttl without activity.
// newFlow builds the flow of every new session.
func NewStore(ttl time.Duration, newFlow func() *intake.Flow) *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		newFlow:  newFlow,
		now:      time.Now,
	}
}

// Acquire returns the live session for chatID, creating one when there is
// none or the previous one expired. The second result reports creation.
// Acquire counts as activity.
func (s *Store) Acquire(chatID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess, ok := s.sessions[chatID]; ok && !s.expired(sess, now) {
		sess.UpdatedAt = now
		return sess, false
	}

	sess := &Session{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		Flow:      s.newFlow(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[chatID] = sess
	return sess, true
}

// Get returns the live session for chatID, or nil.
func (s *Store) Get(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok || s.expired(sess, s.now()) {
		return nil
	}
	return sess
}

// Delete forgets chatID's session.
func (s *Store) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// Len returns the number of stored sessions, expired ones included until
// the next Prune.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune removes expired sessions and returns them.
func (s *Store) Prune() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var removed []*Session
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			removed = append(removed, sess)
			delete(s.sessions, id)
		}
	}
	return removed
}

// PruneEvery prunes on every tick of interval until ctx is done. onPrune,
// when set, receives the sessions removed by each pass.
func (s *Store) PruneEvery(ctx context.Context, interval time.Duration, onPrune func([]*Session)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.Prune()
			if onPrune != nil && len(removed) > 0 {
				onPrune(removed)
			}
		}
	}
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.UpdatedAt) > s.ttl
}
