// MIT License
//
// Copyright (c) 2022-2026 Dactor Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package mailbox

import (
	"sync"
	"sync/atomic"

	"github.com/stephanfeb/dactor/envelope"
)

// node is a link in the MPSC queue, specialized for *envelope.Envelope.
type node struct {
	next atomic.Pointer[node]
	data *envelope.Envelope
}

// nodePool avoids a per-message allocation by recycling consumed nodes.
var nodePool = sync.Pool{New: func() any { return new(node) }}

// Default is an unbounded, lock-free MPSC mailbox.
//
// Concurrency model
//   - Multi-Producer, Single-Consumer: many goroutines may call Enqueue
//     concurrently, but Dequeue must only ever be called by one goroutine
//     at a time (the dispatcher pump).
//
// Characteristics
//   - Strict FIFO ordering across all producers.
//   - Lock-free: Enqueue and Dequeue never block on a mutex.
//   - Near-zero allocations: consumed nodes are returned to a sync.Pool.
//   - IsEmpty is O(1); Len performs an O(n) traversal and is meant for
//     diagnostics, not hot-path use.
type Default struct {
	head  atomic.Pointer[node] // consumer only
	_pad1 [64]byte
	tail  atomic.Pointer[node] // producers only
	_pad2 [64]byte

	disposed atomic.Bool
}

var _ Mailbox = (*Default)(nil)

// NewDefault creates a Default mailbox, seeded with a dummy node so the
// first producer can link through it rather than special-casing an empty
// queue.
func NewDefault() *Default {
	dummy := nodePool.Get().(*node)
	dummy.next.Store(nil)
	dummy.data = nil

	m := &Default{}
	m.head.Store(dummy)
	m.tail.Store(dummy)
	return m
}

// Enqueue places e at the tail of the mailbox. Never blocks, and never
// fails unless the mailbox has been disposed.
func (m *Default) Enqueue(e *envelope.Envelope) error {
	if m.disposed.Load() {
		return errDisposed
	}
	n := nodePool.Get().(*node)
	n.data = e
	n.next.Store(nil)

	prev := m.tail.Swap(n)
	prev.next.Store(n)
	return nil
}

// Dequeue removes and returns the envelope at the head of the mailbox, or
// nil if empty or disposed. Must be called by a single consumer goroutine.
func (m *Default) Dequeue() *envelope.Envelope {
	if m.disposed.Load() {
		return nil
	}

	head := m.head.Load()
	next := head.next.Load()
	if next == nil {
		return nil
	}

	m.head.Store(next)
	value := next.data

	head.next.Store(nil)
	nodePool.Put(head)
	return value
}

// Len returns a best-effort snapshot node count via an O(n) traversal.
func (m *Default) Len() int64 {
	h := m.head.Load()
	n := h.next.Load()
	var count int64
	for n != nil {
		count++
		n = n.next.Load()
	}
	return count
}

// IsEmpty reports whether the mailbox currently holds no envelopes.
func (m *Default) IsEmpty() bool {
	head := m.head.Load()
	return head.next.Load() == nil
}

// Dispose marks the mailbox unusable. Subsequent Enqueue calls fail.
func (m *Default) Dispose() {
	m.disposed.Store(true)
}
