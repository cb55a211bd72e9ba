package services

import "sync"

// matchLocks serializes work on a single match id. Entries are dropped once no
// goroutine holds or waits for them.
type matchLocks struct {
	mu    sync.Mutex
	locks map[int]*matchLock
}

type matchLock struct {
	mu   sync.Mutex
	refs int
}

func newMatchLocks() *matchLocks {
	return &matchLocks{locks: make(map[int]*matchLock)}
}

// Lock blocks until the caller owns id and returns the release func.
func (l *matchLocks) Lock(id int) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &matchLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *matchLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
