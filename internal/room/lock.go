package room

import "sync"

// guard is the reader-writer discipline protecting the whole Room.
//
// Public mutators cascade into each other (add player -> start game ->
// begin day), which would need a writer-reentrant lock. Go's sync.RWMutex
// is deliberately not reentrant, so the cascade is restructured instead:
// only public methods call lock/rlock, and every internal transition is a
// ...Locked helper that assumes the write lock is already held. Reads
// never nest into writes. Timer callbacks go through lock() fresh.
type guard struct {
	mu sync.RWMutex
}

func (g *guard) lock()    { g.mu.Lock() }
func (g *guard) unlock()  { g.mu.Unlock() }
func (g *guard) rlock()   { g.mu.RLock() }
func (g *guard) runlock() { g.mu.RUnlock() }
