package session

import "sync"

// SlotLocks serializes rapid-fire mutations per quote slot. Each session
// owns its own set, so concurrent lead sessions in one process cannot
// cross-contaminate. A caller hitting an already-locked key is dropped,
// not queued; the user's next action re-triggers naturally.
type SlotLocks struct {
	mu   sync.Mutex
	held map[string]bool
}

func NewSlotLocks() *SlotLocks {
	return &SlotLocks{held: make(map[string]bool)}
}

// TryAcquire locks the key and reports success. A false return means a
// mutation for this slot is already in flight.
func (l *SlotLocks) TryAcquire(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return false
	}
	l.held[key] = true
	return true
}

// Release unlocks the key. Safe to call for a key that is not held.
func (l *SlotLocks) Release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
}

// Held reports whether a mutation currently holds the key.
func (l *SlotLocks) Held(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held[key]
}
