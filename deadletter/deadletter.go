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

// Package deadletter holds envelopes the runtime could not deliver:
// messages sent to an actor that is no longer alive, or that arrived at a
// full bounded mailbox.
package deadletter

import (
	"container/list"
	"sync"

	"github.com/stephanfeb/dactor/envelope"
	"github.com/stephanfeb/dactor/metric"
)

// DefaultCapacity is the queue capacity used when none is configured.
const DefaultCapacity = 1000

// Entry records one undeliverable envelope alongside the sender that sent
// it and the recipient it was addressed to.
type Entry struct {
	Envelope  *envelope.Envelope
	Sender    envelope.Ref
	Recipient string
}

// Queue is a bounded FIFO of dead letters. Once full, pushing a new entry
// evicts the oldest one and increments the eviction counter.
type Queue struct {
	mu       sync.Mutex
	capacity int
	entries  *list.List

	sink metric.Sink

	total   int64
	evicted int64
}

// New creates a Queue with the given capacity, reporting to sink (which
// may be nil). A non-positive capacity is treated as DefaultCapacity.
func New(capacity int, sink metric.Sink) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		capacity: capacity,
		entries:  list.New(),
		sink:     sink,
	}
}

// Push adds an entry to the queue, evicting the oldest entry first if the
// queue is already at capacity.
func (q *Queue) Push(e Entry) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.entries.Len() >= q.capacity {
		q.entries.Remove(q.entries.Front())
		q.evicted++
		if q.sink != nil {
			q.sink.Increment(metric.DeadLettersEvicted, 1, nil)
		}
	}
	q.entries.PushBack(e)
	q.total++
	if q.sink != nil {
		q.sink.Increment(metric.DeadLetters, 1, metric.Tags{"recipient": e.Recipient})
	}
}

// Entries returns a snapshot of the currently retained dead letters,
// oldest first.
func (q *Queue) Entries() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Entry, 0, q.entries.Len())
	for el := q.entries.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(Entry))
	}
	return out
}

// Len returns the number of dead letters currently retained.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.entries.Len()
}

// Total returns the total number of entries ever pushed, including those
// since evicted.
func (q *Queue) Total() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.total
}

// Evicted returns the number of entries discarded to make room for newer
// ones.
func (q *Queue) Evicted() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.evicted
}
