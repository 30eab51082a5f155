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

// Package dispatcher is the cooperative single-pump scheduler: one logical
// goroutine fairly interleaves every actor's mailbox, detaching each
// handler invocation into its own goroutine so that an actor awaiting an
// ask never blocks the pump itself.
package dispatcher

import (
	"sync"
	"sync/atomic"

	gods "github.com/Workiva/go-datastructures/queue"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/stephanfeb/dactor/envelope"
	"github.com/stephanfeb/dactor/log"
	"github.com/stephanfeb/dactor/mailbox"
)

// Target is what the dispatcher schedules and invokes. It is deliberately
// narrow: the dispatcher knows nothing about actor behaviors, supervision,
// or contexts — only that a Target owns a mailbox and can be asked to
// process one envelope.
type Target interface {
	// ActorID returns the id the dispatcher schedules this target under.
	ActorID() string
	// Mailbox returns the target's mailbox.
	Mailbox() mailbox.Mailbox
	// Invoke processes e. It must not panic across the call boundary;
	// implementations are expected to recover internally and route
	// failures to supervision themselves.
	Invoke(e *envelope.Envelope)
}

// Dispatcher is the message pump described in spec §4.3: a ready queue of
// mailbox ids, a set-membership mirror of that queue, and an "in flight"
// set that acts as a per-actor mutex so a mailbox is never selected while
// its previous handler is still running.
type Dispatcher struct {
	mu       sync.Mutex
	ready    *gods.Queue
	readySet mapset.Set[string]
	inFlight mapset.Set[string]
	targets  map[string]Target

	logger  log.Logger
	wg      sync.WaitGroup
	started atomic.Bool
	stopped atomic.Bool
}

// New creates a Dispatcher. Run must be called to start the pump goroutine.
func New(logger log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.DiscardLogger
	}
	return &Dispatcher{
		ready:    gods.New(64),
		readySet: mapset.NewThreadUnsafeSet[string](),
		inFlight: mapset.NewThreadUnsafeSet[string](),
		targets:  make(map[string]Target),
		logger:   logger,
	}
}

// Register makes t schedulable. Called once at spawn.
func (d *Dispatcher) Register(t Target) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.targets[t.ActorID()] = t
}

// Unregister removes t from scheduling. Called at stop, after the target's
// mailbox has been disposed, so any already-ready entry becomes a no-op the
// next time the pump reaches it.
func (d *Dispatcher) Unregister(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.targets, id)
}

// Schedule enqueues id onto the ready queue, exactly as spec §4.3
// describes: iff it is not already ready and the owner is not currently in
// flight. Safe to call from any goroutine — this is the one operation
// `tell` invokes outside the pump's own scheduling context.
func (d *Dispatcher) Schedule(id string) {
	d.mu.Lock()
	if d.stopped.Load() || d.readySet.Contains(id) || d.inFlight.Contains(id) {
		d.mu.Unlock()
		return
	}
	d.readySet.Add(id)
	d.mu.Unlock()

	if err := d.ready.Put(id); err != nil {
		d.logger.Warnf("dispatcher: schedule %q failed: %v", id, err)
		d.mu.Lock()
		d.readySet.Remove(id)
		d.mu.Unlock()
	}
}

// Run starts the pump goroutine. Idempotent.
func (d *Dispatcher) Run() {
	if d.started.Swap(true) {
		return
	}
	go d.loop()
}

// loop is the pump: wait for the ready set to be non-empty, take the front
// mailbox, dequeue one envelope, dispatch it. Poll's blocking Get doubles
// as the "wake signal" spec §4.3 asks for — there is no separate condition
// variable, since Get already parks until Put or Dispose.
func (d *Dispatcher) loop() {
	for {
		items, err := d.ready.Get(1)
		if err != nil {
			// The ready queue was disposed: the pump exits.
			return
		}
		id, ok := items[0].(string)
		if !ok {
			continue
		}
		d.dispatchReady(id)
	}
}

func (d *Dispatcher) dispatchReady(id string) {
	d.mu.Lock()
	d.readySet.Remove(id)
	target, ok := d.targets[id]
	if !ok {
		// Stopped between Schedule and now: drop it, per §4.3's "if
		// disposed, drop it" rule.
		d.mu.Unlock()
		return
	}
	d.inFlight.Add(id)
	d.mu.Unlock()

	mb := target.Mailbox()
	e := mb.Dequeue()
	if e == nil {
		d.mu.Lock()
		d.inFlight.Remove(id)
		d.mu.Unlock()
		return
	}

	d.wg.Add(1)
	go d.dispatchOne(id, target, mb, e)
}

// dispatchOne runs one handler invocation detached from the pump
// goroutine, then performs §4.3.1 step 6: drop "in flight" membership and
// reschedule if the mailbox still has pending work.
func (d *Dispatcher) dispatchOne(id string, target Target, mb mailbox.Mailbox, e *envelope.Envelope) {
	defer d.wg.Done()

	target.Invoke(e)

	d.mu.Lock()
	d.inFlight.Remove(id)
	_, stillRegistered := d.targets[id]
	d.mu.Unlock()

	if stillRegistered && !mb.IsEmpty() {
		d.Schedule(id)
	}
}

// Stop disposes the ready queue — waking the pump goroutine for the last
// time — and waits for every in-flight handler invocation to finish.
func (d *Dispatcher) Stop() {
	if d.stopped.Swap(true) {
		return
	}
	d.ready.Dispose()
	d.wg.Wait()
}
