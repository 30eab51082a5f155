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

package metric

import (
	"sync"
	"time"
)

// InMemory is a thread-safe, in-process Sink useful for tests and for
// development wiring where a real metrics backend isn't available.
type InMemory struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string][]time.Duration
}

var _ Sink = (*InMemory)(nil)

// NewInMemory creates an empty InMemory sink.
func NewInMemory() *InMemory {
	return &InMemory{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string][]time.Duration),
	}
}

func (s *InMemory) Increment(name string, count int64, _ Tags) {
	if count == 0 {
		count = 1
	}
	s.mu.Lock()
	s.counters[name] += count
	s.mu.Unlock()
}

func (s *InMemory) Decrement(name string, count int64, _ Tags) {
	if count == 0 {
		count = 1
	}
	s.mu.Lock()
	s.counters[name] -= count
	s.mu.Unlock()
}

func (s *InMemory) Gauge(name string, value float64, _ Tags) {
	s.mu.Lock()
	s.gauges[name] = value
	s.mu.Unlock()
}

func (s *InMemory) Timing(name string, d time.Duration, _ Tags) {
	s.mu.Lock()
	s.timings[name] = append(s.timings[name], d)
	s.mu.Unlock()
}

// Counter returns the current value of a counter metric.
func (s *InMemory) Counter(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[name]
}

// GaugeValue returns the current value of a gauge metric.
func (s *InMemory) GaugeValue(name string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gauges[name]
}

// Timings returns a copy of the recorded durations for a timing metric.
func (s *InMemory) Timings(name string) []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.timings[name]))
	copy(out, s.timings[name])
	return out
}
