// Copyright 2016 by Thorsten von Eicken, see LICENSE file

// Package ring implements a fixed-capacity, lock-free single-producer/
// single-consumer queue of symbol.Duration values. It decouples the
// collector's edge interrupt handler (the sole producer) from the main-loop
// parser feed (the sole consumer): the producer never reads the read index,
// the consumer never reads the write index beyond what Count allows, and
// the shared element count is the only state touched by both sides, always
// through sync/atomic.
//
// Capacity is rounded up to a power of two so that index wrapping is a mask
// instead of a modulo, the same trick used by mask-indexed ring buffers
// elsewhere in the retrieval pack.
package ring

import (
	"sync/atomic"

	"github.com/tve/rfcode/symbol"
)

// Buffer is a fixed-capacity circular queue of symbol.Duration. The zero
// value is not usable; construct one with New.
type Buffer struct {
	data  []symbol.Duration
	mask  uint32
	write uint32 // producer-owned
	read  uint32 // consumer-owned
	count int32  // atomic, incremented by the producer, decremented by the consumer
}

// New returns a Buffer with room for at least capacity elements, rounded up
// to the next power of two (a minimum of 256, per the reference design's
// SC_BUFFERSIZE).
func New(capacity int) *Buffer {
	if capacity < 256 {
		capacity = 256
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &Buffer{
		data: make([]symbol.Duration, size),
		mask: uint32(size - 1),
	}
}

// Cap returns the buffer's capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Push stores d at the write index and publishes it to the consumer. It is
// the only method the producer (the edge ISR) may call. If the buffer is
// full the new sample is dropped and Push returns false: the ISR never
// blocks and the dropped sample will simply cause the in-progress packet to
// fail matching and reset cleanly, per the collector's error handling.
func (b *Buffer) Push(d symbol.Duration) bool {
	if atomic.LoadInt32(&b.count) == int32(len(b.data)) {
		return false
	}
	b.data[b.write&b.mask] = d
	b.write++
	atomic.AddInt32(&b.count, 1)
	return true
}

// Pop removes and returns the oldest duration, or (0, false) if the buffer
// is empty. It is the only method the consumer (the main loop) may call.
func (b *Buffer) Pop() (symbol.Duration, bool) {
	if atomic.LoadInt32(&b.count) == 0 {
		return 0, false
	}
	d := b.data[b.read&b.mask]
	b.read++
	atomic.AddInt32(&b.count, -1)
	return d, true
}

// Count returns the number of durations currently queued.
func (b *Buffer) Count() int {
	return int(atomic.LoadInt32(&b.count))
}

// SnapshotLastN copies the most recent n durations (n <= out capacity and n
// <= Cap()) ending at the current write position into out, for diagnostics.
// It does not consume them and must not be called concurrently with Push
// (it reads the producer-owned write index); it is intended to be called
// from the consumer side while the producer is otherwise known to be
// quiescent, e.g. during a diagnostic dump. It returns the number of
// entries written.
func (b *Buffer) SnapshotLastN(n int, out []symbol.Duration) int {
	if n > len(out) {
		n = len(out)
	}
	if n > len(b.data) {
		n = len(b.data)
	}
	if avail := b.Count(); n > avail {
		n = avail
	}
	start := (b.write - uint32(n)) & b.mask
	for i := 0; i < n; i++ {
		out[i] = b.data[(start+uint32(i))&b.mask]
	}
	return n
}
