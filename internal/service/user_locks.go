package service

import "sync"

// UserLocks serializes writers per user id. Different users never block
// each other; entries are dropped once nobody holds or waits for them.
type UserLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[string]*userLock)}
}

// Lock blocks until the caller owns userID and returns the matching unlock.
func (l *UserLocks) Lock(userID string) (unlock func()) {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()
	return func() {
		ul.mu.Unlock()
		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}

func (l *UserLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
