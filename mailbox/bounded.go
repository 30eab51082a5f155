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
	gods "github.com/Workiva/go-datastructures/queue"

	"github.com/stephanfeb/dactor/envelope"
)

// Bounded is a fixed-capacity mailbox backed by a ring buffer.
//
// Unlike the teacher's blocking bounded mailbox, Enqueue here never
// blocks: it uses the ring buffer's non-blocking Offer, returning errFull
// when the mailbox is at capacity. The single-threaded dispatcher pump
// cannot afford a producer call that blocks waiting for the consumer it
// shares a goroutine pool with, so a full bounded mailbox is treated the
// same as "actor not alive" by callers: the envelope goes to the
// dead-letter queue instead.
type Bounded struct {
	underlying *gods.RingBuffer
}

var _ Mailbox = (*Bounded)(nil)

// NewBounded creates a bounded mailbox with the given capacity. Capacity
// must be positive.
func NewBounded(capacity int) *Bounded {
	return &Bounded{underlying: gods.NewRingBuffer(uint64(capacity))}
}

// Enqueue inserts e into the mailbox, returning errFull if it is at
// capacity or errDisposed if it has been disposed.
func (b *Bounded) Enqueue(e *envelope.Envelope) error {
	ok, err := b.underlying.Offer(e)
	if err != nil {
		return errDisposed
	}
	if !ok {
		return errFull
	}
	return nil
}

// Dequeue removes and returns the envelope at the head of the mailbox, or
// nil if empty.
func (b *Bounded) Dequeue() *envelope.Envelope {
	if b.underlying.Len() == 0 {
		return nil
	}
	item, err := b.underlying.Get()
	if err != nil {
		return nil
	}
	if v, ok := item.(*envelope.Envelope); ok {
		return v
	}
	return nil
}

// IsEmpty reports whether the mailbox currently holds no envelopes.
func (b *Bounded) IsEmpty() bool {
	return b.underlying.Len() == 0
}

// Len returns the current number of queued envelopes.
func (b *Bounded) Len() int64 {
	return int64(b.underlying.Len())
}

// Dispose releases the underlying ring buffer and unblocks any internal
// waiters. The mailbox must not be used after Dispose.
func (b *Bounded) Dispose() {
	b.underlying.Dispose()
}
