package deletion

import "sync"

// accountLocks hands out one mutex per account ID so that concurrent
// deletions of the same account serialize in-process. Entries are reference
// counted and removed once the last holder releases them.
type accountLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	m    sync.Mutex
	refs int
}

func newAccountLocks() *accountLocks {
	return &accountLocks{entries: make(map[string]*lockEntry)}
}

// lock blocks until the per-account mutex is held and returns the release
// function.
func (l *accountLocks) lock(accountID string) func() {
	l.mu.Lock()
	e, ok := l.entries[accountID]
	if !ok {
		e = &lockEntry{}
		l.entries[accountID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.m.Lock()

	return func() {
		e.m.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, accountID)
		}
		l.mu.Unlock()
	}
}

// len reports the number of live entries. Used by tests.
func (l *accountLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
