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

package timer_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stephanfeb/dactor/envelope"
	"github.com/stephanfeb/dactor/log"
	"github.com/stephanfeb/dactor/timer"
)

// recordingRef collects every message delivered via Tell. It satisfies
// envelope.Ref without pulling in the actor package, which would create an
// import cycle (actor depends on timer).
type recordingRef struct {
	mu       sync.Mutex
	received []any
}

func (r *recordingRef) Tell(message any, _ envelope.Ref) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received = append(r.received, message)
	return nil
}

func (r *recordingRef) Name() string { return "probe" }

func (r *recordingRef) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.received)
}

func (r *recordingRef) messages() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]any, len(r.received))
	copy(out, r.received)
	return out
}

func eventually(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.True(t, cond(), "condition not met within %s", timeout)
}

func TestStartSingleDeliversOnce(t *testing.T) {
	ref := &recordingRef{}
	s := timer.New(ref, log.DiscardLogger)
	defer s.Dispose()

	s.StartSingle("greet", "hello", 20*time.Millisecond)
	assert.True(t, s.IsActive("greet"))

	eventually(t, time.Second, func() bool { return ref.count() == 1 })
	assert.Equal(t, []any{"hello"}, ref.messages())

	// the one-shot entry removes itself once delivered.
	eventually(t, time.Second, func() bool { return !s.IsActive("greet") })

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, ref.count(), "single-shot must not redeliver")
}

func TestStartSingleReplacesPriorEntry(t *testing.T) {
	ref := &recordingRef{}
	s := timer.New(ref, log.DiscardLogger)
	defer s.Dispose()

	s.StartSingle("k", "first", 200*time.Millisecond)
	s.StartSingle("k", "second", 20*time.Millisecond)

	eventually(t, time.Second, func() bool { return ref.count() == 1 })
	time.Sleep(250 * time.Millisecond)

	assert.Equal(t, []any{"second"}, ref.messages())
}

func TestStartFixedRateDeliversRepeatedly(t *testing.T) {
	ref := &recordingRef{}
	s := timer.New(ref, log.DiscardLogger)
	defer s.Dispose()

	s.StartFixedRate("tick", "tick", 15*time.Millisecond)
	eventually(t, time.Second, func() bool { return ref.count() >= 3 })
	assert.True(t, s.IsActive("tick"))
}

func TestStartFixedDelayMaintainsGapBetweenDeliveries(t *testing.T) {
	ref := &recordingRef{}
	s := timer.New(ref, log.DiscardLogger)
	defer s.Dispose()

	const delay = 30 * time.Millisecond
	start := time.Now()
	s.StartFixedDelay("gap", "m", delay)

	eventually(t, time.Second, func() bool { return ref.count() >= 2 })
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 2*delay)
}

func TestCancelStopsFurtherDeliveries(t *testing.T) {
	ref := &recordingRef{}
	s := timer.New(ref, log.DiscardLogger)
	defer s.Dispose()

	s.StartFixedRate("tick", "tick", 10*time.Millisecond)
	eventually(t, time.Second, func() bool { return ref.count() >= 1 })

	s.Cancel("tick")
	assert.False(t, s.IsActive("tick"))

	n := ref.count()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, n, ref.count(), "cancelled key must not deliver again")
}

func TestCancelAllRemovesEveryEntry(t *testing.T) {
	ref := &recordingRef{}
	s := timer.New(ref, log.DiscardLogger)
	defer s.Dispose()

	s.StartSingle("a", "a", time.Second)
	s.StartFixedRate("b", "b", 10*time.Millisecond)
	require.Len(t, s.ActiveTimers(), 2)

	s.CancelAll()
	assert.Empty(t, s.ActiveTimers())
	assert.False(t, s.IsActive("a"))
	assert.False(t, s.IsActive("b"))
}

func TestDisposePreventsFurtherDeliveriesAndIsIdempotent(t *testing.T) {
	ref := &recordingRef{}
	s := timer.New(ref, log.DiscardLogger)

	s.StartFixedRate("tick", "tick", 10*time.Millisecond)
	eventually(t, time.Second, func() bool { return ref.count() >= 1 })

	s.Dispose()
	assert.Empty(t, s.ActiveTimers())

	n := ref.count()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, n, ref.count())

	// Dispose must tolerate being called more than once.
	require.NotPanics(t, func() { s.Dispose() })

	// every operation is a no-op after disposal.
	s.StartSingle("x", "x", 0)
	assert.False(t, s.IsActive("x"))
}
