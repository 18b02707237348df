package conversation

import (
	"context"
	"log"
	"sync"
	"time"
)

// Store holds all live sessions. Nothing is persisted; a process
// restart starts everyone fresh.
type Store struct {
	mu   sync.RWMutex
	byID map[string]*Session
}

func NewStore() *Store {
	return &Store{byID: make(map[string]*Session)}
}

func (st *Store) add(s *Session) {
	st.mu.Lock()
	st.byID[s.ID] = s
	st.mu.Unlock()
}

// Get looks a session up by id.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.byID[id]
	return s, ok
}

// Delete drops a session.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.byID[id]; !ok {
		return false
	}
	delete(st.byID, id)
	return true
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.byID)
}

// PurgeIdle removes sessions idle longer than ttl and returns how many
// went. Sessions with a send in flight stay: lastActive only moves on
// mutation, and an in-flight send has just mutated.
func (st *Store) PurgeIdle(ttl time.Duration) int {
	cutoff := time.Now().UTC().Add(-ttl)
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.byID {
		if s.LastActive().Before(cutoff) {
			delete(st.byID, id)
			removed++
		}
	}
	return removed
}

// StartJanitor purges idle sessions every interval until ctx is done.
func (st *Store) StartJanitor(ctx context.Context, interval, ttl time.Duration) {
	if interval <= 0 || ttl <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := st.PurgeIdle(ttl); n > 0 {
					log.Printf("conversation: purged %d idle session(s)", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
