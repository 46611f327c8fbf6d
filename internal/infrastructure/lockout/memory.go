package lockout

import (
	"context"
	"sync"
	"time"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
)

// DefaultMaxKeys bounds the number of keys a MemoryStore tracks.
const DefaultMaxKeys = 10000

type entry struct {
	failures    int
	lastFailure time.Time
	lockedUntil time.Time
}

// MemoryStore is an in-memory LockoutStore. State is per process. At most maxKeys keys are
// tracked; when full, stale keys are swept and then the least recently failing key is evicted.
type MemoryStore struct {
	mu       sync.Mutex
	data     map[string]*entry
	max      int
	maxKeys  int
	cooldown time.Duration
	now      func() time.Time
}

// NewMemoryStore returns a lockout store with given max attempts and cooldown. maxAttempts 0 = disabled.
func NewMemoryStore(maxAttempts, cooldownSeconds int) *MemoryStore {
	cd := time.Duration(cooldownSeconds) * time.Second
	if cd <= 0 {
		cd = 15 * time.Minute
	}
	return &MemoryStore{
		data:     make(map[string]*entry),
		max:      maxAttempts,
		maxKeys:  DefaultMaxKeys,
		cooldown: cd,
		now:      time.Now,
	}
}

func (s *MemoryStore) IsLocked(ctx context.Context, key string) (bool, int) {
	if s.max <= 0 {
		return false, 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[key]
	if !ok {
		return false, 0
	}
	now := s.now()
	if now.Before(e.lockedUntil) {
		secs := int(e.lockedUntil.Sub(now).Seconds())
		if secs < 1 {
			secs = 1
		}
		return true, secs
	}
	return false, 0
}

func (s *MemoryStore) RecordFailure(ctx context.Context, key string) {
	if s.max <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	e := s.data[key]
	if e == nil {
		if len(s.data) >= s.maxKeys {
			s.makeRoom(now)
		}
		e = &entry{}
		s.data[key] = e
	}
	e.lastFailure = now
	// an expired lock starts a fresh window
	if !e.lockedUntil.IsZero() && !now.Before(e.lockedUntil) {
		e.failures = 0
		e.lockedUntil = time.Time{}
	}
	e.failures++
	if e.failures >= s.max {
		e.lockedUntil = now.Add(s.cooldown)
	}
}

func (s *MemoryStore) RecordSuccess(ctx context.Context, key string) {
	if s.max <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// makeRoom drops keys that are unlocked and have not failed within the cooldown. If the store is
// still full it evicts the unlocked key with the oldest last failure, or the oldest key when all
// are locked. Callers hold s.mu.
func (s *MemoryStore) makeRoom(now time.Time) {
	var oldestUnlocked, oldestAny string
	for k, e := range s.data {
		locked := now.Before(e.lockedUntil)
		if !locked && now.Sub(e.lastFailure) >= s.cooldown {
			delete(s.data, k)
			continue
		}
		if !locked && (oldestUnlocked == "" || e.lastFailure.Before(s.data[oldestUnlocked].lastFailure)) {
			oldestUnlocked = k
		}
		if oldestAny == "" || e.lastFailure.Before(s.data[oldestAny].lastFailure) {
			oldestAny = k
		}
	}
	if len(s.data) < s.maxKeys {
		return
	}
	if oldestUnlocked != "" {
		delete(s.data, oldestUnlocked)
	} else if oldestAny != "" {
		delete(s.data, oldestAny)
	}
}

var _ ports.LockoutStore = (*MemoryStore)(nil)
