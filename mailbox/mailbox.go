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

// Package mailbox defines the per-actor envelope queue contract and ships
// an unbounded and a bounded implementation.
package mailbox

import "github.com/stephanfeb/dactor/envelope"

// Mailbox is the contract for an actor's message queue.
//
// Concurrency and ordering
//   - Implementations MUST be safe for concurrent Enqueue calls from many
//     producers (MPSC).
//   - Dequeue is called from the single dispatcher pump goroutine; it is
//     not safe for multiple concurrent consumers.
//   - Ordering is strict FIFO: envelopes are dequeued in the order they
//     were enqueued.
//
// Non-blocking behavior
//   - Enqueue never blocks. An unbounded mailbox always returns nil; a
//     bounded mailbox returns an error when full, leaving it to the
//     caller (the dispatcher's tell path) to route the envelope to the
//     dead-letter queue instead.
//   - Dequeue never blocks; it returns nil when the mailbox is empty.
//
// Resource management
//   - Dispose releases resources and marks the mailbox unusable. After
//     Dispose, Enqueue returns an error and Dequeue returns nil.
type Mailbox interface {
	// Enqueue pushes an envelope into the mailbox.
	Enqueue(e *envelope.Envelope) error
	// Dequeue removes and returns the envelope at the head of the
	// mailbox, or nil if it is currently empty.
	Dequeue() *envelope.Envelope
	// IsEmpty reports whether the mailbox currently holds no envelopes.
	IsEmpty() bool
	// Len returns a best-effort snapshot of the number of envelopes
	// currently queued.
	Len() int64
	// Dispose releases resources held by the mailbox. The mailbox must
	// not be used after Dispose returns.
	Dispose()
}
