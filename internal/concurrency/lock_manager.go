package concurrency

import (
	"sync"
)

// LockManager hands out named locks. The transaction layer uses one lock per
// player id so each player's transactions run strictly sequentially.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// LockPair acquires the locks for two keys in a stable order so callers that
// need both (e.g. a ledger transfer) cannot deadlock against each other.
// The returned func releases both locks.
func (lm *LockManager) LockPair(a, b string) func() {
	if a == b {
		mu := lm.GetLock(a)
		mu.Lock()
		return mu.Unlock
	}
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	muFirst := lm.GetLock(first)
	muSecond := lm.GetLock(second)
	muFirst.Lock()
	muSecond.Lock()
	return func() {
		muSecond.Unlock()
		muFirst.Unlock()
	}
}
