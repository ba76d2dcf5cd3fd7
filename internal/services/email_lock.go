package services

import (
	"strings"
	"sync"
)

// emailLock serializes work per email address within one process
type emailLock struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newEmailLock() *emailLock {
	return &emailLock{locks: make(map[string]*lockEntry)}
}

// Lock blocks until the email's lock is held and returns its release func.
// Entries are dropped once nobody holds or waits for them.
func (l *emailLock) Lock(email string) func() {
	key := strings.ToLower(strings.TrimSpace(email))

	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &lockEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *emailLock) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
