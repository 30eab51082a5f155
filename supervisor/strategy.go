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

// Package supervisor implements the retry-bounded restart strategies a
// supervisor actor consults when a child fails: one-for-one (a counter per
// child) and all-for-one (a single counter shared by every supervised
// child), both within a sliding retry window.
package supervisor

import (
	"sync"
	"time"
)

// Decision is the action a Strategy's Decider chose for a failed child.
type Decision int

const (
	// Resume leaves the child exactly as it is; its mailbox, if
	// non-empty, is simply rescheduled on the next dispatcher tick.
	Resume Decision = iota
	// Restart stops the failed child (or, under an all-for-one strategy,
	// every supervised child) and respawns it from its stored factory.
	Restart
	// Stop removes the failed child from supervision permanently.
	Stop
	// Escalate propagates the failure to the supervisor's own supervisor,
	// defaulting to Stop when none exists.
	Escalate
)

// String returns the human-readable name of the decision.
func (d Decision) String() string {
	switch d {
	case Resume:
		return "resume"
	case Restart:
		return "restart"
	case Stop:
		return "stop"
	case Escalate:
		return "escalate"
	default:
		return "unknown"
	}
}

// Decider chooses a Decision for a child that failed with err, given the
// stack captured at the point of failure. Callers supply this; the
// Strategy only layers retry-budget bookkeeping on top of it.
type Decider func(childID string, err error, stack []byte) Decision

// AlwaysRestart is a Decider that always chooses Restart, the default used
// by router worker pools.
func AlwaysRestart(string, error, []byte) Decision { return Restart }

// counter is the per-child (one-for-one) or shared (all-for-one) retry
// bookkeeping: a count plus the time of the most recent counted restart,
// from which the window is measured.
type counter struct {
	count       uint32
	windowStart time.Time
}

// Strategy is a supervision strategy: a user-supplied Decider plus a
// bounded retry window enforced uniformly regardless of what the Decider
// returns.
//
// One-for-one (RestartAll()==false) tracks one counter per child id.
// All-for-one (RestartAll()==true) tracks a single counter shared by every
// child the owning supervisor tracks; Handle itself only ever reports the
// decision for the failed child, it is the supervisor actor's job to
// restart every sibling when the decision is Restart and RestartAll is
// set.
type Strategy struct {
	mu sync.Mutex

	decide     Decider
	restartAll bool
	maxRetries uint32
	window     time.Duration

	counters map[string]*counter
	shared   *counter
}

// Option configures a Strategy at construction time.
type Option func(*Strategy)

// WithMaxRetries bounds the number of Restart decisions honored within a
// window before failures are forced to Stop. Zero (the default) means
// unbounded: the Decider's own choice always stands.
func WithMaxRetries(n uint32) Option {
	return func(s *Strategy) { s.maxRetries = n }
}

// WithWindow sets the sliding window after which a child's (or the shared)
// retry counter resets to zero. Zero (the default) disables the reset: the
// counter only ever grows.
func WithWindow(d time.Duration) Option {
	return func(s *Strategy) { s.window = d }
}

// NewOneForOne creates a one-for-one Strategy: only the failed child is
// affected by its own decision and its own retry counter.
func NewOneForOne(decide Decider, opts ...Option) *Strategy {
	s := &Strategy{
		decide:   decide,
		counters: make(map[string]*counter),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewAllForOne creates an all-for-one Strategy: a single retry counter is
// shared by every child the owning supervisor tracks, and a Restart
// decision is meant to be applied by the caller to every sibling, not only
// the one that failed.
func NewAllForOne(decide Decider, opts ...Option) *Strategy {
	s := &Strategy{
		decide:     decide,
		restartAll: true,
		shared:     &counter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RestartAll reports whether this is an all-for-one strategy.
func (s *Strategy) RestartAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restartAll
}

// Handle consults the retry budget first: if it is already exhausted for
// childID (or for the shared all-for-one counter), the decision is forced
// to Stop regardless of the Decider. Otherwise the Decider's choice stands,
// and a Restart decision increments the relevant counter.
func (s *Strategy) Handle(childID string, err error, stack []byte) Decision {
	s.mu.Lock()
	c := s.counterFor(childID)

	now := time.Now()
	if s.window > 0 && !c.windowStart.IsZero() && now.Sub(c.windowStart) > s.window {
		c.count = 0
		c.windowStart = time.Time{}
	}

	exhausted := s.maxRetries > 0 && c.count >= s.maxRetries
	s.mu.Unlock()

	if exhausted {
		return Stop
	}

	decision := s.decide(childID, err, stack)
	if decision == Restart {
		s.mu.Lock()
		c.windowStart = now
		c.count++
		s.mu.Unlock()
	}
	return decision
}

// counterFor returns the counter backing childID, creating it on first
// use. Callers must hold s.mu.
func (s *Strategy) counterFor(childID string) *counter {
	if s.restartAll {
		if s.shared == nil {
			s.shared = &counter{}
		}
		return s.shared
	}
	c, ok := s.counters[childID]
	if !ok {
		c = &counter{}
		s.counters[childID] = c
	}
	return c
}

// Reset clears the retry bookkeeping for childID (one-for-one) or the
// shared counter (all-for-one).
func (s *Strategy) Reset(childID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restartAll {
		s.shared = &counter{}
		return
	}
	delete(s.counters, childID)
}

// RetryCount reports the current retry count for childID (one-for-one) or
// the shared counter (all-for-one), for diagnostics and tests.
func (s *Strategy) RetryCount(childID string) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restartAll {
		if s.shared == nil {
			return 0
		}
		return s.shared.count
	}
	c, ok := s.counters[childID]
	if !ok {
		return 0
	}
	return c.count
}
