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

package trace

import "sync"

// InMemory is a fixed-capacity ring buffer of trace events, giving callers
// (tests, diagnostic endpoints) a lazy-sequence style view over the most
// recent activity without unbounded growth.
type InMemory struct {
	mu       sync.Mutex
	capacity int
	events   []Event
	start    int
	count    int
	dropped  int64
}

var _ Sink = (*InMemory)(nil)

// NewInMemory creates a ring buffer holding at most capacity events. A
// non-positive capacity is treated as 1.
func NewInMemory(capacity int) *InMemory {
	if capacity <= 0 {
		capacity = 1
	}
	return &InMemory{
		capacity: capacity,
		events:   make([]Event, capacity),
	}
}

// Record appends an event, evicting the oldest entry once the buffer is
// full.
func (m *InMemory) Record(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.count < m.capacity {
		m.events[(m.start+m.count)%m.capacity] = e
		m.count++
		return
	}
	m.events[m.start] = e
	m.start = (m.start + 1) % m.capacity
	m.dropped++
}

// Events returns a copy of the currently retained events, oldest first.
func (m *InMemory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Event, m.count)
	for i := 0; i < m.count; i++ {
		out[i] = m.events[(m.start+i)%m.capacity]
	}
	return out
}

// Dropped reports how many events were evicted to make room for newer
// ones.
func (m *InMemory) Dropped() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}
