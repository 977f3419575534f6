package intake

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"task-reminder-bot/internal/model"
)

const (
	DefaultTTL      = 30 * time.Minute
	DefaultCapacity = 10000
)

// Store keeps at most one pending intake per owner.
// Entries expire after the configured TTL; the oldest are evicted past capacity.
// Writers hold mu so a Take cannot interleave with a Put or Restore for the same owner.
type Store struct {
	mu      sync.Mutex
	pending *expirable.LRU[int64, model.PendingIntake]
}

// NewStore creates a Store. Non-positive arguments take the defaults.
func NewStore(capacity int, ttl time.Duration) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		pending: expirable.NewLRU[int64, model.PendingIntake](capacity, nil, ttl),
	}
}

// Put stores p, replacing any intake already pending for the same owner.
func (s *Store) Put(p model.PendingIntake) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Add(p.OwnerID, p)
}

// Get returns the pending intake without consuming it.
func (s *Store) Get(ownerID int64) (model.PendingIntake, bool) {
	return s.pending.Get(ownerID)
}

// Take returns the pending intake and removes it.
// Of several concurrent callers for one owner, exactly one gets the intake.
func (s *Store) Take(ownerID int64) (model.PendingIntake, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending.Peek(ownerID)
	if ok {
		s.pending.Remove(ownerID)
	}
	return p, ok
}

// Restore puts back a taken intake unless the owner started a new one meanwhile.
func (s *Store) Restore(p model.PendingIntake) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending.Contains(p.OwnerID) {
		return false
	}
	s.pending.Add(p.OwnerID, p)
	return true
}

// Abandon removes the owner's intake and reports whether one existed.
func (s *Store) Abandon(ownerID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Remove(ownerID)
}

// Len is the number of live intakes.
func (s *Store) Len() int {
	return s.pending.Len()
}
