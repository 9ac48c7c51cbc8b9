package service

import "sync"

// keyedMutex serializes operations per entity id. Ledger writes lock per
// brand, lifecycle mutations lock per ticket; operations on different
// keys never contend. Entries are retained for the process lifetime,
// which is bounded by the number of distinct brands/tickets touched.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
