package payment

import "sync"

// referenceLocker serializes lifecycle transitions per txnReference.
// Concurrent initiate calls for the same reference take turns; different
// references do not contend.
type referenceLocker struct {
	mu    sync.Mutex
	locks map[string]*referenceLock
}

type referenceLock struct {
	mu      sync.Mutex
	waiters int
}

func newReferenceLocker() *referenceLocker {
	return &referenceLocker{locks: make(map[string]*referenceLock)}
}

// Acquire blocks until the lock for the reference is held and returns the
// release function. The lock entry is dropped once the last holder releases.
func (l *referenceLocker) Acquire(txnReference string) func() {
	l.mu.Lock()
	lock, ok := l.locks[txnReference]
	if !ok {
		lock = &referenceLock{}
		l.locks[txnReference] = lock
	}
	lock.waiters++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.waiters--
		if lock.waiters == 0 {
			delete(l.locks, txnReference)
		}
		l.mu.Unlock()
	}
}
