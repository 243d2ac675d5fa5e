// Package ring implements a wait-free single-producer/single-consumer ring
// buffer, generic over the element type.
//
// It is the transport primitive for all three cross-thread rings the engine
// uses: control->audio commands, and audio->control sound/sequence returns.
// Push and Pop never allocate, never block, and never take a lock: they
// coordinate through a single atomic write index and a single atomic read
// index, each touched by exactly one side.
package ring

import "sync/atomic"

// Ring is a bounded SPSC queue. The zero value is not usable; construct with
// New. A Ring must have exactly one goroutine calling Push and exactly one
// (possibly different) goroutine calling Pop.
type Ring[T any] struct {
	buf  []T
	mask uint64

	// writeIdx is owned by the producer; readIdx is owned by the consumer.
	// Each side only ever reads the other's index, never writes it.
	writeIdx atomic.Uint64
	readIdx  atomic.Uint64
}

// New creates a Ring with room for at least capacity elements. Capacity is
// rounded up to the next power of two so index wraparound is a mask, not a
// modulo, keeping Push/Pop branch-free on the hot path.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	size := nextPowerOfTwo(uint64(capacity))
	return &Ring[T]{
		buf:  make([]T, size),
		mask: size - 1,
	}
}

func nextPowerOfTwo(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// Cap returns the ring's fixed capacity.
func (r *Ring[T]) Cap() int {
	return int(r.mask + 1)
}

// Push appends v to the ring. It returns false, leaving the ring unchanged,
// if the ring is full. Push is called by the producer only.
func (r *Ring[T]) Push(v T) bool {
	w := r.writeIdx.Load()
	rd := r.readIdx.Load()
	if w-rd >= uint64(len(r.buf)) {
		return false
	}
	r.buf[w&r.mask] = v
	r.writeIdx.Store(w + 1)
	return true
}

// Pop removes and returns the oldest element. ok is false if the ring is
// empty. Pop is called by the consumer only.
func (r *Ring[T]) Pop() (v T, ok bool) {
	rd := r.readIdx.Load()
	w := r.writeIdx.Load()
	if rd == w {
		return v, false
	}
	v = r.buf[rd&r.mask]
	var zero T
	r.buf[rd&r.mask] = zero // drop the reference so the consumer, not the audio thread, frees it
	r.readIdx.Store(rd + 1)
	return v, true
}

// Len returns a snapshot of the number of queued elements. Safe from either
// side; the value may be stale by the time the caller observes it.
func (r *Ring[T]) Len() int {
	return int(r.writeIdx.Load() - r.readIdx.Load())
}
