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

// Package timer is the per-actor keyed timer scheduler: single-shot,
// fixed-delay, and fixed-rate deliveries built on go-quartz.
package timer

import (
	"context"
	"sync"
	"time"

	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	"github.com/stephanfeb/dactor/envelope"
	"github.com/stephanfeb/dactor/log"
)

// entry tracks the live timer registered under a key. A job's callback
// holds the *entry it was scheduled for and compares it by identity
// against the map's current value before delivering, so cancelling or
// replacing a key stops an in-flight fixed-delay chain from continuing.
type entry struct {
	kind string
}

const (
	kindSingle     = "single"
	kindFixedDelay = "fixed_delay"
	kindFixedRate  = "fixed_rate"
)

// Scheduler is one actor's keyed timer scheduler. It owns a private
// go-quartz scheduler instance; timers never outlive the actor they
// belong to.
type Scheduler struct {
	mu       sync.Mutex
	quartz   quartz.Scheduler
	entries  map[string]*entry
	disposed *atomic.Bool
	logger   log.Logger
	owner    envelope.Ref
}

// New creates a Scheduler that delivers timer messages to owner. The
// underlying quartz scheduler is started immediately; its lifetime is
// bound to this Scheduler's Dispose.
func New(owner envelope.Ref, logger log.Logger) *Scheduler {
	qs, _ := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))
	qs.Start(context.Background())

	return &Scheduler{
		quartz:   qs,
		entries:  make(map[string]*entry),
		disposed: atomic.NewBool(false),
		logger:   logger,
		owner:    owner,
	}
}

// StartSingle cancels any existing entry registered under key, then
// schedules a one-shot delivery of message after delay.
func (s *Scheduler) StartSingle(key string, message any, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed.Load() {
		return
	}

	s.cancelLocked(key)
	e := &entry{kind: kindSingle}
	s.entries[key] = e

	s.scheduleOnce(key, e, message, delay, false)
}

// StartFixedDelay cancels any existing entry registered under key, then
// schedules a chain of one-shots: each firing delivers message and only
// then schedules the next one, so the gap between deliveries is at least
// delay regardless of how long the previous handler ran.
func (s *Scheduler) StartFixedDelay(key string, message any, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed.Load() {
		return
	}

	s.cancelLocked(key)
	e := &entry{kind: kindFixedDelay}
	s.entries[key] = e

	s.scheduleOnce(key, e, message, delay, true)
}

// StartFixedRate cancels any existing entry registered under key, then
// schedules a periodic tick every interval for as long as the entry
// remains present.
func (s *Scheduler) StartFixedRate(key string, message any, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed.Load() {
		return
	}

	s.cancelLocked(key)
	e := &entry{kind: kindFixedRate}
	s.entries[key] = e

	fn := job.NewFunctionJob[bool](func(context.Context) (bool, error) {
		s.deliverIfLive(key, e, message)
		return true, nil
	})
	detail := quartz.NewJobDetail(fn, quartz.NewJobKey(key))
	_ = s.quartz.ScheduleJob(detail, quartz.NewSimpleTrigger(interval))
}

// scheduleOnce installs a single RunOnceTrigger job for key. When chain is
// true, the job's callback reschedules itself after delivering, forming
// the fixed-delay chain.
func (s *Scheduler) scheduleOnce(key string, e *entry, message any, delay time.Duration, chain bool) {
	fn := job.NewFunctionJob[bool](func(context.Context) (bool, error) {
		delivered := s.deliverIfLive(key, e, message)
		if delivered && chain {
			s.mu.Lock()
			if !s.disposed.Load() {
				if cur, ok := s.entries[key]; ok && cur == e {
					s.scheduleOnce(key, e, message, delay, chain)
				}
			}
			s.mu.Unlock()
		} else if delivered {
			s.mu.Lock()
			if cur, ok := s.entries[key]; ok && cur == e {
				delete(s.entries, key)
			}
			s.mu.Unlock()
		}
		return delivered, nil
	})
	detail := quartz.NewJobDetail(fn, quartz.NewJobKey(key))
	_ = s.quartz.ScheduleJob(detail, quartz.NewRunOnceTrigger(delay))
}

// deliverIfLive tells the owner the message if, and only if, key's entry
// is still e — the entry that scheduled this firing. It returns whether
// delivery happened.
func (s *Scheduler) deliverIfLive(key string, e *entry, message any) bool {
	s.mu.Lock()
	cur, ok := s.entries[key]
	live := ok && cur == e && !s.disposed.Load()
	s.mu.Unlock()
	if !live {
		return false
	}
	if err := s.owner.Tell(message, nil); err != nil {
		s.logger.Warnf("timer: delivery of key %q failed: %v", key, err)
	}
	return true
}

// Cancel removes key's entry and guarantees no further deliveries for it.
func (s *Scheduler) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(key)
}

func (s *Scheduler) cancelLocked(key string) {
	if _, ok := s.entries[key]; ok {
		delete(s.entries, key)
		_ = s.quartz.DeleteJob(quartz.NewJobKey(key))
	}
}

// CancelAll cancels and removes every entry.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		s.cancelLocked(key)
	}
}

// IsActive reports whether key currently has a live entry.
func (s *Scheduler) IsActive(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	return ok
}

// ActiveTimers returns the keys currently registered.
func (s *Scheduler) ActiveTimers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for key := range s.entries {
		out = append(out, key)
	}
	return out
}

// Dispose cancels every entry and marks the scheduler unusable. Safe to
// call more than once. After Dispose, no timer message reaches the
// owner.
func (s *Scheduler) Dispose() {
	if s.disposed.Swap(true) {
		return
	}
	s.mu.Lock()
	for key := range s.entries {
		delete(s.entries, key)
		_ = s.quartz.DeleteJob(quartz.NewJobKey(key))
	}
	s.mu.Unlock()
	s.quartz.Stop()
}
