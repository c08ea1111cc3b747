package service

import "sync"

// matchLocks serializes read-then-write sequences per match. Each match
// gets its own mutex: operations on different matches never wait on each
// other.
type matchLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newMatchLocks() *matchLocks {
	return &matchLocks{locks: make(map[uint]*sync.Mutex)}
}

// acquire locks the mutex for matchID and returns the unlock function.
func (l *matchLocks) acquire(matchID uint) func() {
	l.mu.Lock()
	m, ok := l.locks[matchID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[matchID] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// evict drops the mutex for matchID so the map does not grow with every
// match ever played. Only call after the terminal status has been
// persisted: a late caller that recreates the entry will re-read the
// match under its own lock and be rejected on the status check.
func (l *matchLocks) evict(matchID uint) {
	l.mu.Lock()
	delete(l.locks, matchID)
	l.mu.Unlock()
}
