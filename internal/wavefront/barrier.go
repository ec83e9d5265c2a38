// Package wavefront implements the synchronization used by the lanes that
// cooperate on one sparse row: a reusable counting barrier and the
// binary-tree reduction over a lane-indexed scratch array.
package wavefront

import "sync"

// Barrier is a reusable barrier for a fixed number of parties.
// A Barrier is owned by exactly one wavefront; it must not be shared across rows.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	waiting    int
	generation uint64
}

// NewBarrier returns a barrier for n parties. n < 1 is treated as 1.
func NewBarrier(n int) *Barrier {
	if n < 1 {
		n = 1
	}

	b := &Barrier{parties: n}
	b.cond = sync.NewCond(&b.mu)

	return b
}

// Parties returns the number of lanes that must reach Wait.
func (b *Barrier) Parties() int {
	return b.parties
}

// Wait blocks until all parties have called Wait for the current generation.
// Writes made before Wait by any party are visible to every party after it.
func (b *Barrier) Wait() {
	if b.parties == 1 {
		return
	}

	b.mu.Lock()
	gen := b.generation
	b.waiting++

	if b.waiting == b.parties {
		b.waiting = 0
		b.generation++
		b.mu.Unlock()
		b.cond.Broadcast()

		return
	}

	for gen == b.generation {
		b.cond.Wait()
	}
	b.mu.Unlock()
}
